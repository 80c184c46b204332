package slot

import (
	"math/rand/v2"

	"mermaid_slot/internal/model"
)

// RandSource источник равномерных чисел в [0,1)
type RandSource interface {
	Float64() float64
}

type defaultSource struct{}

func (defaultSource) Float64() float64 {
	return rand.Float64()
}

// NewRandSource источник на основе math/rand/v2
func NewRandSource() RandSource {
	return defaultSource{}
}

// WeightedPicker выбирает символ по таблице вероятностей
type WeightedPicker struct {
	table *model.SymbolTable
	rnd   RandSource
}

func NewWeightedPicker(table *model.SymbolTable, rnd RandSource) *WeightedPicker {
	if rnd == nil {
		rnd = NewRandSource()
	}
	return &WeightedPicker{
		table: table,
		rnd:   rnd,
	}
}

// Pick идёт по таблице по порядку, накапливая вероятность, и возвращает первый
// символ с u <= суммы. Если из-за погрешности ничего не подошло - последний символ.
func (p *WeightedPicker) Pick() *model.Symbol {
	u := p.rnd.Float64()
	var running float64
	for i := 0; i < p.table.Len(); i++ {
		s := p.table.At(i)
		running += s.Probability
		if u <= running {
			return s
		}
	}
	return p.table.Last()
}
