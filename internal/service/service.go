package service

import (
	"context"
	"mermaid_slot/internal/model"

	"github.com/shopspring/decimal"
)

// GameService игровая сессия одного игрока
type GameService interface {
	// Spin запускает раунд в фоне. Результат приходит в канал после окончания раунда.
	Spin(ctx context.Context) (<-chan model.SpinResult, error)
	SetCoinValue(v decimal.Decimal) (decimal.Decimal, error)
	SetBetMultiplier(m int) (int, error)
	State() model.GameStateSnapshot
	Stats(ctx context.Context) (*model.SessionStats, error)
	History(ctx context.Context, limit int) ([]*model.RoundOutcome, error)
	Username() string
	Close()
}

type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*model.AuthData, error)
}
