package model

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrSpinInProgress    = errors.New("spin already in progress")
	ErrInsufficientFunds = errors.New("insufficient balance for total bet")
)

// GameState состояние игровой сессии. Живёт только в памяти.
type GameState struct {
	mu sync.RWMutex

	balance       decimal.Decimal
	coinValue     decimal.Decimal
	betMultiplier int
	totalBet      decimal.Decimal
	spinning      bool
	bonusChance   float64
}

// GameStateSnapshot копия состояния для слоя отображения
type GameStateSnapshot struct {
	Balance       decimal.Decimal
	CoinValue     decimal.Decimal
	BetMultiplier int
	TotalBet      decimal.Decimal
	Spinning      bool
	BonusChance   float64
}

func NewGameState(balance, coinValue decimal.Decimal, betMultiplier int, bonusChance float64) *GameState {
	return &GameState{
		balance:       balance,
		coinValue:     coinValue,
		betMultiplier: betMultiplier,
		totalBet:      coinValue.Mul(decimal.NewFromInt(int64(betMultiplier))),
		bonusChance:   bonusChance,
	}
}

func (s *GameState) Snapshot() GameStateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return GameStateSnapshot{
		Balance:       s.balance,
		CoinValue:     s.coinValue,
		BetMultiplier: s.betMultiplier,
		TotalBet:      s.totalBet,
		Spinning:      s.spinning,
		BonusChance:   s.bonusChance,
	}
}

func (s *GameState) Balance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

func (s *GameState) TotalBet() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalBet
}

func (s *GameState) Spinning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spinning
}

// Credit зачисляет выигрыш и возвращает новый баланс
func (s *GameState) Credit(amount decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = s.balance.Add(amount)
	return s.balance
}

// BeginSpin атомарно проверяет ставку, списывает её и поднимает флаг вращения.
// Ничего не меняет, если вращение уже идёт или ставка недопустима.
func (s *GameState) BeginSpin() (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spinning {
		return decimal.Zero, ErrSpinInProgress
	}
	if !s.totalBet.IsPositive() || s.balance.LessThan(s.totalBet) {
		return decimal.Zero, ErrInsufficientFunds
	}
	s.balance = s.balance.Sub(s.totalBet)
	s.spinning = true
	return s.totalBet, nil
}

func (s *GameState) EndSpin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spinning = false
}

// SetCoinValue сохраняет уже ограниченное значение монеты и пересчитывает ставку
func (s *GameState) SetCoinValue(v decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coinValue = v
	s.totalBet = s.coinValue.Mul(decimal.NewFromInt(int64(s.betMultiplier)))
}

func (s *GameState) SetBetMultiplier(m int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.betMultiplier = m
	s.totalBet = s.coinValue.Mul(decimal.NewFromInt(int64(s.betMultiplier)))
}

func (s *GameState) SetBonusChance(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bonusChance = v
}
