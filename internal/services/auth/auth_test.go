package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/event-management/internal/lib/jwt"
	"github.com/magabrotheeeer/event-management/internal/lib/password"
	"github.com/magabrotheeeer/event-management/internal/models"
	services "github.com/magabrotheeeer/event-management/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ExistsUserByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) ExistsUserByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username, role string) (string, error) {
	args := m.Called(username, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		username   string
		password   string
		setupMocks func(r *UserRepoMock)
		wantUID    string
		wantErr    error
	}{
		{
			name:     "successful registration",
			email:    "a@x.com",
			username: "alice",
			password: "pw1secret",
			setupMocks: func(r *UserRepoMock) {
				r.On("ExistsUserByUsername", mock.Anything, "alice").Return(false, nil).Once()
				r.On("ExistsUserByEmail", mock.Anything, "a@x.com").Return(false, nil).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "a@x.com" &&
						user.Username == "alice" &&
						user.UID != "" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "pw1secret" &&
						user.Role == models.RoleUser &&
						user.Enabled &&
						!user.EmailVerified
				})).Return("some-uuid-string", nil).Once()
			},
			wantUID: "some-uuid-string",
		},
		{
			name:     "duplicate username",
			email:    "b@x.com",
			username: "alice",
			password: "pw2secret",
			setupMocks: func(r *UserRepoMock) {
				r.On("ExistsUserByUsername", mock.Anything, "alice").Return(true, nil).Once()
			},
			wantErr: services.ErrUsernameTaken,
		},
		{
			name:     "duplicate email",
			email:    "a@x.com",
			username: "bob",
			password: "pw3secret",
			setupMocks: func(r *UserRepoMock) {
				r.On("ExistsUserByUsername", mock.Anything, "bob").Return(false, nil).Once()
				r.On("ExistsUserByEmail", mock.Anything, "a@x.com").Return(true, nil).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name:     "repository error",
			email:    "c@x.com",
			username: "carol",
			password: "pw4secret",
			setupMocks: func(r *UserRepoMock) {
				r.On("ExistsUserByUsername", mock.Anything, "carol").Return(false, errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := services.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo)

			uid, err := svc.Register(context.Background(), tt.email, tt.username, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUID, uid)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("pw1secret")
	require.NoError(t, err)

	storedUser := &models.User{
		UID:          "uid-1",
		Email:        "a@x.com",
		Username:     "alice",
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Enabled:      true,
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "pw1secret",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser, nil).Once()
				j.On("GenerateToken", "alice", models.RoleUser).Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "whatever1",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "nobody").Return(nil, errors.New("no rows")).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrongpass",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := services.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			token, user, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, storedUser.Username, user.Username)
				assert.Equal(t, storedUser.Role, user.Role)
				assert.Equal(t, storedUser.Email, user.Email)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginIssuesParsableToken(t *testing.T) {
	hashed, err := password.GetHash("admin123")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUserByUsername", mock.Anything, "admin").Return(&models.User{
		UID:          "uid-admin",
		Email:        "admin@example.com",
		Username:     "admin",
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}, nil).Once()

	maker := customjwt.NewJWTMaker("test_secret", 15*time.Minute)
	svc := services.NewAuthService(repo, maker)

	token, _, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthService_SeedDefaultUsers(t *testing.T) {
	repo := new(UserRepoMock)
	jwtMock := new(JwtMakerMock)
	svc := services.NewAuthService(repo, jwtMock)

	repo.On("ExistsUserByUsername", mock.Anything, "admin").Return(false, nil).Once()
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Username == "admin" && user.Role == models.RoleAdmin && user.EmailVerified
	})).Return("uid-admin", nil).Once()
	repo.On("ExistsUserByUsername", mock.Anything, "user").Return(true, nil).Once()

	err := svc.SeedDefaultUsers(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
