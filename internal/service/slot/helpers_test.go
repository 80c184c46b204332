package slot

import (
	"math"
	"testing"
	"time"

	"mermaid_slot/internal/config"
	"mermaid_slot/internal/config/env"
	"mermaid_slot/internal/model"

	"github.com/shopspring/decimal"
)

// testConfig каноническая конфигурация с переопределениями для тестов
type testConfig struct {
	config.GameConfig
	symbols     *model.SymbolTable
	maxCascades int
	anim        config.AnimationParams
}

func (c *testConfig) Symbols() *model.SymbolTable {
	if c.symbols != nil {
		return c.symbols
	}
	return c.GameConfig.Symbols()
}

func (c *testConfig) MaxCascades() int {
	if c.maxCascades > 0 {
		return c.maxCascades
	}
	return c.GameConfig.MaxCascades()
}

func (c *testConfig) Animation() config.AnimationParams {
	return c.anim
}

// newTestConfig без задержек анимации
func newTestConfig() *testConfig {
	return &testConfig{
		GameConfig: env.DefaultGameConfig(),
		anim: config.AnimationParams{
			ScaleMax:  130,
			ScaleMin:  70,
			ScaleStep: 10,
		},
	}
}

// scripted выдаёт заранее заданные числа, затем fallback
type scripted struct {
	vals     []float64
	i        int
	fallback float64
}

func (s *scripted) Float64() float64 {
	if s.i < len(s.vals) {
		v := s.vals[s.i]
		s.i++
		return v
	}
	return s.fallback
}

func (s *scripted) add(vals ...float64) *scripted {
	s.vals = append(s.vals, vals...)
	return s
}

// uFor значение u, при котором Pick выбирает символ id (середина его интервала)
func uFor(t testing.TB, table *model.SymbolTable, id string) float64 {
	t.Helper()
	var running float64
	for _, s := range table.Symbols() {
		if s.ID == id {
			return running + s.Probability/2
		}
		running += s.Probability
	}
	t.Fatalf("unknown symbol %s", id)
	return 0
}

// picks u для последовательности символов, counts задаёт сколько раз каждый
func picks(t testing.TB, table *model.SymbolTable, counts ...any) []float64 {
	t.Helper()
	var out []float64
	for i := 0; i < len(counts); i += 2 {
		id := counts[i].(string)
		n := counts[i+1].(int)
		for j := 0; j < n; j++ {
			out = append(out, uFor(t, table, id))
		}
	}
	return out
}

func symbol(t testing.TB, table *model.SymbolTable, id string) *model.Symbol {
	t.Helper()
	s, ok := table.ByID(id)
	if !ok {
		t.Fatalf("unknown symbol %s", id)
	}
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func waitResult(t *testing.T, ch <-chan model.SpinResult) model.SpinResult {
	t.Helper()
	select {
	case res, ok := <-ch:
		if !ok {
			t.Fatal("result channel closed without result")
		}
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("round did not finish")
	}
	return model.SpinResult{}
}
