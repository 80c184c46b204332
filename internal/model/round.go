package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sound события звука для слоя отображения
type Sound string

const (
	SoundSpin     Sound = "spin"
	SoundSmallWin Sound = "smallwin"
	SoundJackpot  Sound = "jackpot"
)

// SymbolWin выигрыш одного символа за проход
type SymbolWin struct {
	Symbol *Symbol
	Count  int
	Tier   Tier
	Payout decimal.Decimal
}

// RoundStep один выигрышный проход (первичная доска или каскад)
type RoundStep struct {
	Index           int
	Wins            []SymbolWin
	BaseWin         decimal.Decimal // до бонуса
	Win             decimal.Decimal // после бонуса
	BonusTriggered  bool
	BonusMultiplier float64
	Removed         int
}

// RoundOutcome итог одного спина со всеми каскадами
type RoundOutcome struct {
	ID              string
	Username        string
	Stake           decimal.Decimal
	TotalWin        decimal.Decimal
	ConsecutiveWins int
	Summary         string
	Steps           []RoundStep
	BonusTriggered  bool
	BonusMultiplier float64 // последний сработавший множитель
	Balance         decimal.Decimal
	Aborted         bool
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Cascades количество каскадов (удалений) за спин
func (o *RoundOutcome) Cascades() int {
	return len(o.Steps)
}

// SpinResult доставляется из фоновой задачи после окончания раунда
type SpinResult struct {
	Outcome *RoundOutcome
	Err     error
}
