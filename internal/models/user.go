// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и служебные флаги.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Роль пишется в JWT и проверяется на уровне сервисов.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID           string    // Уникальный идентификатор пользователя
	Email         string    // Электронная почта (уникальная)
	Username      string    // Имя пользователя (уникальное)
	PasswordHash  string    // Хэш пароля пользователя, исходный пароль не хранится
	Role          string    // Роль пользователя, admin или user
	Enabled       bool      // Признак активной учётной записи
	EmailVerified bool      // Признак подтверждённой почты
	CreatedAt     time.Time // Дата создания учётной записи
}
