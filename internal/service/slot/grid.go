package slot

import (
	"mermaid_slot/internal/model"
)

// GridModel операции над полем: заполнение, подсчёт, отметка совпадений и каскад
type GridModel struct {
	picker *WeightedPicker
	rows   int
	cols   int
}

func NewGridModel(picker *WeightedPicker, rows, cols int) *GridModel {
	return &GridModel{
		picker: picker,
		rows:   rows,
		cols:   cols,
	}
}

// New создаёт новое случайно заполненное поле
func (m *GridModel) New() model.Grid {
	g := model.NewGrid(m.rows, m.cols)
	m.Fill(g)
	return g
}

// Fill заполняет каждую ячейку независимо
func (m *GridModel) Fill(g model.Grid) {
	for r := range g {
		for c := range g[r] {
			g[r][c] = m.picker.Pick()
		}
	}
}

// CountBySymbol считает символы по всему полю, пустые ячейки пропускаются
func (m *GridModel) CountBySymbol(g model.Grid) map[*model.Symbol]int {
	counts := make(map[*model.Symbol]int)
	for r := range g {
		for c := range g[r] {
			if s := g[r][c]; s != nil {
				counts[s]++
			}
		}
	}
	return counts
}

// MarkMatches отмечает все ячейки символов, число которых на поле >= threshold.
// Смежность не учитывается.
func (m *GridModel) MarkMatches(g model.Grid, counts map[*model.Symbol]int, threshold int) (model.Mask, bool) {
	mask := model.NewMask(g.Rows(), g.Cols())
	hasWin := false
	for r := range g {
		for c := range g[r] {
			s := g[r][c]
			if s != nil && counts[s] >= threshold {
				mask[r][c] = true
				hasWin = true
			}
		}
	}
	return mask, hasWin
}

// RemoveMarked возвращает копию поля с очищенными отмеченными ячейками.
// Исходное поле не меняется.
func (m *GridModel) RemoveMarked(g model.Grid, mask model.Mask) model.Grid {
	out := g.Clone()
	for r := range out {
		for c := range out[r] {
			if mask[r][c] {
				out[r][c] = nil
			}
		}
	}
	return out
}

// Cascade для каждой колонки сдвигает оставшиеся символы вниз с сохранением порядка,
// затем заполняет освободившиеся ячейки сверху вниз. Колонки независимы.
func (m *GridModel) Cascade(g model.Grid) {
	rows := g.Rows()
	for c := 0; c < g.Cols(); c++ {
		write := rows - 1
		for r := rows - 1; r >= 0; r-- {
			if g[r][c] == nil {
				continue
			}
			g[write][c] = g[r][c]
			write--
		}
		for r := 0; r <= write; r++ {
			g[r][c] = m.picker.Pick()
		}
	}
}

// TierFor ступень выплаты по количеству: 8-9, 10-11, 12+.
// Границы сдвигаются вместе с порогом.
func TierFor(count, threshold int) model.Tier {
	switch {
	case count < threshold:
		return model.TierNone
	case count < threshold+2:
		return model.Tier1
	case count < threshold+4:
		return model.Tier2
	default:
		return model.Tier3
	}
}
