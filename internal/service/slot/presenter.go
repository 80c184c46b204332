package slot

import (
	"time"

	"mermaid_slot/internal/model"

	"github.com/shopspring/decimal"
)

// Presenter слой отображения. Вызывается синхронно из горутины раунда,
// получает только копии поля.
type Presenter interface {
	RenderGrid(grid model.Grid)
	RenderCell(row, col int, symbol *model.Symbol)
	RenderCellScale(row, col, percent int)
	ShowMessage(text string, duration time.Duration)
	UpdateBalance(balance decimal.Decimal)
	UpdateBonusChance(chance float64)
	PlaySound(sound model.Sound)
}

type nopPresenter struct{}

func (nopPresenter) RenderGrid(model.Grid) {}
func (nopPresenter) RenderCell(int, int, *model.Symbol) {}
func (nopPresenter) RenderCellScale(int, int, int) {}
func (nopPresenter) ShowMessage(string, time.Duration) {}
func (nopPresenter) UpdateBalance(decimal.Decimal) {}
func (nopPresenter) UpdateBonusChance(float64) {}
func (nopPresenter) PlaySound(model.Sound) {}
