package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// probabilityEpsilon допуск при проверке суммы вероятностей таблицы
const probabilityEpsilon = 1e-6

// Tier ступень выплаты по количеству символов на поле
type Tier int

const (
	TierNone Tier = iota
	Tier1         // 8-9 символов
	Tier2         // 10-11 символов
	Tier3         // 12 и больше
)

var (
	ErrEmptySymbolTable   = errors.New("symbol table is empty")
	ErrInvalidProbability = errors.New("symbol probability must be in (0, 1]")
	ErrProbabilitySum     = errors.New("symbol probabilities must sum to 1")
	ErrDuplicateSymbol    = errors.New("duplicate symbol id")
)

type Symbol struct {
	ID          string
	Glyph       string
	Name        string
	Probability float64
	Payouts     [3]decimal.Decimal
}

// Payout returns the bet multiplier for the given tier, zero for TierNone.
func (s *Symbol) Payout(t Tier) decimal.Decimal {
	if t < Tier1 || t > Tier3 {
		return decimal.Zero
	}
	return s.Payouts[t-1]
}

func (s *Symbol) String() string {
	if s == nil {
		return ""
	}
	return s.Glyph
}

// SymbolTable упорядоченный список символов. Порядок важен для выбора символа.
type SymbolTable struct {
	symbols []*Symbol
}

func NewSymbolTable(symbols []Symbol) (*SymbolTable, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptySymbolTable
	}

	seen := make(map[string]struct{}, len(symbols))
	table := &SymbolTable{symbols: make([]*Symbol, 0, len(symbols))}
	var sum float64
	for i := range symbols {
		s := symbols[i]
		if s.Probability <= 0 || s.Probability > 1 || math.IsNaN(s.Probability) {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidProbability, s.ID, s.Probability)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, s.ID)
		}
		seen[s.ID] = struct{}{}
		sum += s.Probability
		table.symbols = append(table.symbols, &s)
	}

	if math.Abs(sum-1) > probabilityEpsilon {
		return nil, fmt.Errorf("%w: got %.6f", ErrProbabilitySum, sum)
	}
	return table, nil
}

// Symbols returns the symbols in table order. The slice is a copy, the symbols are shared.
func (t *SymbolTable) Symbols() []*Symbol {
	out := make([]*Symbol, len(t.symbols))
	copy(out, t.symbols)
	return out
}

func (t *SymbolTable) Len() int {
	return len(t.symbols)
}

func (t *SymbolTable) At(i int) *Symbol {
	return t.symbols[i]
}

func (t *SymbolTable) Last() *Symbol {
	return t.symbols[len(t.symbols)-1]
}

// ByID ищет символ по идентификатору
func (t *SymbolTable) ByID(id string) (*Symbol, bool) {
	for _, s := range t.symbols {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Rarest returns the symbol with the lowest probability, first one wins on ties.
func (t *SymbolTable) Rarest() *Symbol {
	rarest := t.symbols[0]
	for _, s := range t.symbols[1:] {
		if s.Probability < rarest.Probability {
			rarest = s
		}
	}
	return rarest
}
