package model

import "github.com/shopspring/decimal"

// SessionStats статистика игровой сессии
type SessionStats struct {
	TotalSpins    int
	TotalBet      decimal.Decimal
	TotalPayout   decimal.Decimal
	CurrentRTP    float64 // TotalPayout/TotalBet*100
	WindowRTP     float64 // RTP в окне последних спинов
	WindowSize    int
	BonusTriggers int
	MaxCascades   int
	BiggestWin    decimal.Decimal
}
