// Package models содержит доменную модель пользователя системы — нутрициолога,
// включающую данные учётной записи, хэш пароля и роль.
// Структура используется в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного нутрициолога.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или nutritionist
	CreatedAt    time.Time // Дата регистрации
}
