package slot

import (
	"sync"

	"mermaid_slot/internal/config"

	"github.com/shopspring/decimal"
)

// BonusController хранит шанс бонусного множителя ("mermaid chance").
// Шанс растёт на проигрышах и повторных выигрышах, сбрасывается при срабатывании.
type BonusController struct {
	mu     sync.Mutex
	params config.BonusParams
	chance float64
	rnd    RandSource
}

func NewBonusController(params config.BonusParams, rnd RandSource) *BonusController {
	if rnd == nil {
		rnd = NewRandSource()
	}
	b := &BonusController{
		params: params,
		rnd:    rnd,
	}
	b.chance = b.clamp(params.StartChance)
	return b
}

func (b *BonusController) Chance() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chance
}

// OnRoundLoss увеличивает шанс после раунда без выигрыша
func (b *BonusController) OnRoundLoss() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chance = b.clamp(b.chance + b.params.LossStep)
	return b.chance
}

// OnWinNoBonus увеличивает шанс, если это повторный выигрыш в спине
func (b *BonusController) OnWinNoBonus(consecutive int) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if consecutive > 1 {
		b.chance = b.clamp(b.chance + b.params.StreakStep)
	}
	return b.chance
}

// RollAndMaybeTrigger бросает u; при u < chance срабатывает множитель
// min + u2*range, выигрыш умножается, шанс падает до минимума.
func (b *BonusController) RollAndMaybeTrigger(win decimal.Decimal) (bool, float64, decimal.Decimal) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rnd.Float64() >= b.chance {
		return false, 0, win
	}

	multiplier := b.params.MultiplierMin + b.rnd.Float64()*(b.params.MultiplierMax-b.params.MultiplierMin)
	b.chance = b.params.MinChance
	return true, multiplier, win.Mul(decimal.NewFromFloat(multiplier))
}

func (b *BonusController) clamp(v float64) float64 {
	return min(b.params.MaxChance, max(b.params.MinChance, v))
}
