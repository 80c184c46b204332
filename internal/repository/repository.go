package repository

import (
	"context"
	"errors"
	"mermaid_slot/internal/model"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// AccountRepository хранилище учётных записей
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Get(ctx context.Context, username string) (*model.Account, error)
}

// RoundRepository история сыгранных раундов
type RoundRepository interface {
	Save(ctx context.Context, outcome *model.RoundOutcome) error
	// List возвращает последние раунды игрока, новые первыми
	List(ctx context.Context, username string, limit int) ([]*model.RoundOutcome, error)
}

// StatsRepository статистика сессии игрока
type StatsRepository interface {
	Record(ctx context.Context, username string, outcome *model.RoundOutcome) error
	Get(ctx context.Context, username string) (*model.SessionStats, error)
}
