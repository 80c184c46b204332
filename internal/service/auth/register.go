package auth

import (
	"context"
	"mermaid_slot/internal/model"
	"mermaid_slot/pkg/pass"
	"strings"

	"go.uber.org/zap"
)

func (s *serv) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}
	// запись в файле это одна строка "username,password"
	if strings.ContainsAny(username, ",\r\n") || strings.ContainsAny(password, "\r\n") {
		return ErrMalformedCredentials
	}

	stored := password
	if s.hashing {
		hash, err := pass.HashPassword(password)
		if err != nil {
			return err
		}
		stored = hash
	}

	err := s.accountRepo.Create(ctx, &model.Account{
		Username: username,
		Password: stored,
	})
	if err != nil {
		return err
	}

	s.logger.Info("account registered", zap.String("username", username))
	return nil
}
