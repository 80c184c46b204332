package slot

import (
	"math"
	"math/rand/v2"
	"testing"

	"mermaid_slot/internal/config/env"
	"mermaid_slot/internal/model"
)

func TestPickBoundaries(t *testing.T) {
	table := env.DefaultGameConfig().Symbols()

	cases := []struct {
		u    float64
		want string
	}{
		{0, "fish"},
		{0.19, "fish"},
		{0.1900001, "crab"},
		{0.3, "crab"},
		{0.999, "treasure"},
		{1.5, "treasure"},
	}
	for _, c := range cases {
		p := NewWeightedPicker(table, &scripted{vals: []float64{c.u}})
		if got := p.Pick().ID; got != c.want {
			t.Errorf("u=%v: expected %s, got %s", c.u, c.want, got)
		}
	}
}

func TestPickFallsBackToLast(t *testing.T) {
	// сумма чуть меньше 1 в пределах допуска
	table, err := model.NewSymbolTable([]model.Symbol{
		{ID: "a", Probability: 0.5},
		{ID: "b", Probability: 0.4999995},
	})
	if err != nil {
		t.Fatal(err)
	}

	p := NewWeightedPicker(table, &scripted{vals: []float64{0.9999999}})
	if got := p.Pick().ID; got != "b" {
		t.Errorf("expected fallback to last symbol, got %s", got)
	}
}

func TestPickConvergesToProbabilities(t *testing.T) {
	table := env.DefaultGameConfig().Symbols()
	p := NewWeightedPicker(table, rand.New(rand.NewPCG(42, 7)))

	const n = 200000
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		counts[p.Pick().ID]++
	}

	for _, s := range table.Symbols() {
		freq := float64(counts[s.ID]) / n
		if math.Abs(freq-s.Probability) > 0.005 {
			t.Errorf("%s: expected frequency %.3f, got %.3f", s.ID, s.Probability, freq)
		}
	}
}
