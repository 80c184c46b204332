package auth

import (
	"errors"
	"mermaid_slot/internal/config"
	"mermaid_slot/internal/repository"
	"mermaid_slot/internal/service"

	"go.uber.org/zap"
)

var (
	ErrEmptyCredentials     = errors.New("username and password must not be empty")
	ErrMalformedCredentials = errors.New("username must not contain commas, credentials must not contain line breaks")
	ErrInvalidCredentials   = errors.New("invalid username or password")
)

type serv struct {
	accountRepo repository.AccountRepository
	jwtConfig   config.JWTConfig
	hashing     bool
	logger      *zap.Logger
}

// NewAuthService jwtConfig может быть nil, тогда токен доступа не выдаётся
func NewAuthService(accountRepo repository.AccountRepository, jwtConfig config.JWTConfig, hashing bool, logger *zap.Logger) service.AuthService {
	return &serv{
		accountRepo: accountRepo,
		jwtConfig:   jwtConfig,
		hashing:     hashing,
		logger:      logger,
	}
}
