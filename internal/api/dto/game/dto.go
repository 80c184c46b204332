package game

import "github.com/shopspring/decimal"

type CoinRequest struct {
	Value decimal.Decimal `json:"value"` // Значение монеты, ограничивается настройками
}

type MultiplierRequest struct {
	Value int `json:"value"` // Множитель ставки, ограничивается настройками
}

type StateResponse struct {
	Username      string          `json:"username"`
	Balance       decimal.Decimal `json:"balance"`
	CoinValue     decimal.Decimal `json:"coin_value"`
	BetMultiplier int             `json:"bet_multiplier"`
	TotalBet      decimal.Decimal `json:"total_bet"`
	Spinning      bool            `json:"spinning"`
	BonusChance   float64         `json:"bonus_chance"`
}

type SpinResponse struct {
	RoundID         string          `json:"round_id"`
	Stake           decimal.Decimal `json:"stake"`
	TotalWin        decimal.Decimal `json:"total_win"`
	Balance         decimal.Decimal `json:"balance"`
	ConsecutiveWins int             `json:"consecutive_wins"`
	BonusTriggered  bool            `json:"bonus_triggered"`
	BonusMultiplier float64         `json:"bonus_multiplier,omitempty"`
	Summary         string          `json:"summary"`
	Steps           []Step          `json:"steps"`
	Aborted         bool            `json:"aborted,omitempty"`
	StartedAt       string          `json:"started_at"`
}

// Step один выигрышный проход раунда
type Step struct {
	Index           int             `json:"index"`
	Wins            []SymbolWin     `json:"wins"`
	BaseWin         decimal.Decimal `json:"base_win"` // Выигрыш до бонуса
	Win             decimal.Decimal `json:"win"`      // Выигрыш после бонуса
	BonusTriggered  bool            `json:"bonus_triggered"`
	BonusMultiplier float64         `json:"bonus_multiplier,omitempty"`
	Removed         int             `json:"removed"` // Удалено ячеек
}

type SymbolWin struct {
	Symbol string          `json:"symbol"`
	Glyph  string          `json:"glyph"`
	Count  int             `json:"count"`
	Tier   int             `json:"tier"`
	Payout decimal.Decimal `json:"payout"`
}

type StatsResponse struct {
	TotalSpins    int             `json:"total_spins"`
	TotalBet      decimal.Decimal `json:"total_bet"`
	TotalPayout   decimal.Decimal `json:"total_payout"`
	CurrentRTP    float64         `json:"current_rtp"`
	WindowRTP     float64         `json:"window_rtp"`
	WindowSize    int             `json:"window_size"`
	BonusTriggers int             `json:"bonus_triggers"`
	MaxCascades   int             `json:"max_cascades"`
	BiggestWin    decimal.Decimal `json:"biggest_win"`
}

type HistoryResponse struct {
	Rounds []SpinResponse `json:"rounds"`
}

type Event struct {
	Kind       string           `json:"kind"`
	Text       string           `json:"text,omitempty"`
	DurationMs int64            `json:"duration_ms,omitempty"`
	Sound      string           `json:"sound,omitempty"`
	Balance    *decimal.Decimal `json:"balance,omitempty"`
	Chance     *float64         `json:"chance,omitempty"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}
