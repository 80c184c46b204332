package slot

import (
	"mermaid_slot/internal/config"
	"mermaid_slot/internal/model"

	"github.com/shopspring/decimal"
)

// BetController ограничивает параметры ставки и пересчитывает общую ставку.
// Проверку на идущее вращение делает вызывающий.
type BetController struct {
	coin       config.CoinParams
	multiplier config.MultiplierParams
}

func NewBetController(coin config.CoinParams, multiplier config.MultiplierParams) *BetController {
	return &BetController{
		coin:       coin,
		multiplier: multiplier,
	}
}

func (b *BetController) ClampCoinValue(v decimal.Decimal) decimal.Decimal {
	return decimal.Min(b.coin.Max, decimal.Max(b.coin.Min, v))
}

func (b *BetController) ClampBetMultiplier(m int) int {
	return min(b.multiplier.Max, max(b.multiplier.Min, m))
}

// SetCoinValue записывает ограниченное значение монеты и возвращает его
func (b *BetController) SetCoinValue(state *model.GameState, v decimal.Decimal) decimal.Decimal {
	v = b.ClampCoinValue(v)
	state.SetCoinValue(v)
	return v
}

func (b *BetController) SetBetMultiplier(state *model.GameState, m int) int {
	m = b.ClampBetMultiplier(m)
	state.SetBetMultiplier(m)
	return m
}
