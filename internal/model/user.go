package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type Account struct {
	Username string
	Password string // пароль или bcrypt-хэш, в зависимости от конфигурации
}

type UserClaims struct {
	jwt.RegisteredClaims
}

// AuthData результат входа через HTTP API
type AuthData struct {
	Username    string
	AccessToken string
}
