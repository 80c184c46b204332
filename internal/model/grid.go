package model

import "strings"

// Grid игровое поле: строки сверху вниз, nil пустая ячейка
type Grid [][]*Symbol

// Mask матрица отмеченных (выигравших) ячеек, параллельная Grid
type Mask [][]bool

func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]*Symbol, cols)
	}
	return g
}

func NewMask(rows, cols int) Mask {
	m := make(Mask, rows)
	for r := range m {
		m[r] = make([]bool, cols)
	}
	return m
}

func (g Grid) Rows() int {
	return len(g)
}

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Clone делает независимую копию поля (символы общие, они неизменяемые)
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r := range g {
		out[r] = make([]*Symbol, len(g[r]))
		copy(out[r], g[r])
	}
	return out
}

func (g Grid) Empty() int {
	n := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c] == nil {
				n++
			}
		}
	}
	return n
}

// Column returns a copy of column c, top to bottom.
func (g Grid) Column(c int) []*Symbol {
	col := make([]*Symbol, len(g))
	for r := range g {
		col[r] = g[r][c]
	}
	return col
}

func (g Grid) String() string {
	var sb strings.Builder
	for r := range g {
		for c := range g[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if g[r][c] == nil {
				sb.WriteString("·")
				continue
			}
			sb.WriteString(g[r][c].Glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m Mask) Count() int {
	n := 0
	for r := range m {
		for c := range m[r] {
			if m[r][c] {
				n++
			}
		}
	}
	return n
}
