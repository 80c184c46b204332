package auth

import (
	"context"
	"errors"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/repository"
	"mermaid_slot/pkg/pass"
	"mermaid_slot/pkg/token"
	"strings"

	"go.uber.org/zap"
)

func (s *serv) Login(ctx context.Context, username, password string) (*model.AuthData, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	// Получение учётной записи по имени
	account, err := s.accountRepo.Get(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Верификация пароля
	if !s.verify(account.Password, password) {
		s.logger.Warn("failed login", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	data := &model.AuthData{Username: account.Username}
	if s.jwtConfig == nil {
		return data, nil
	}

	// Создать access токен
	data.AccessToken, err = token.GenerateAccessToken(
		account.Username,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *serv) verify(stored, password string) bool {
	if s.hashing {
		return pass.VerifyPassword(stored, password)
	}
	return pass.VerifyPlain(stored, password)
}
