// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/event-management/internal/lib/jwt"
	"github.com/magabrotheeeer/event-management/internal/lib/password"
	"github.com/magabrotheeeer/event-management/internal/models"
)

// ErrUsernameTaken возвращается при регистрации с занятым username.
var ErrUsernameTaken = errors.New("username is already taken")

// ErrEmailTaken возвращается при регистрации с занятой почтой.
var ErrEmailTaken = errors.New("email is already in use")

// ErrInvalidCredentials возвращается при неверном username или пароле.
// Ошибка одна для обоих случаев, чтобы не раскрывать наличие учётной записи.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ExistsUserByUsername проверяет, занят ли username.
	ExistsUserByUsername(ctx context.Context, username string) (bool, error)

	// ExistsUserByEmail проверяет, занята ли почта.
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью user.
//
// Username проверяется раньше почты: при конфликте обоих полей
// возвращается ErrUsernameTaken. Повторная регистрация не идемпотентна.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	const op = "auth.Register"
	taken, err := s.users.ExistsUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return "", ErrUsernameTaken
	}

	taken, err = s.users.ExistsUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return "", ErrEmailTaken
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UID:           uuid.NewString(),
		Email:         email,
		Username:      username,
		PasswordHash:  hashed,
		Role:          models.RoleUser, // дефолтная роль при регистрации
		Enabled:       true,
		EmailVerified: false,
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
//
// Возвращает токен и данные пользователя для ответа клиенту.
// Серверного состояния сессии нет: токен самодостаточен.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает имя пользователя и роль из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (username, role string, err error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", "", err
	}
	return claims.Username, claims.Role, nil
}

// SeedDefaultUsers создает учётные записи admin и user, если их ещё нет.
// Вызывается при старте приложения.
func (s *AuthService) SeedDefaultUsers(ctx context.Context) error {
	const op = "auth.SeedDefaultUsers"
	defaults := []struct {
		username string
		email    string
		rawPass  string
		role     string
	}{
		{username: "admin", email: "admin@example.com", rawPass: "admin123", role: models.RoleAdmin},
		{username: "user", email: "user@example.com", rawPass: "user123", role: models.RoleUser},
	}

	for _, d := range defaults {
		exists, err := s.users.ExistsUserByUsername(ctx, d.username)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			continue
		}
		hashed, err := password.GetHash(d.rawPass)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		user := models.User{
			UID:           uuid.NewString(),
			Email:         d.email,
			Username:      d.username,
			PasswordHash:  hashed,
			Role:          d.role,
			Enabled:       true,
			EmailVerified: true,
		}
		if _, err := s.users.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
