package slot

import (
	"testing"

	"mermaid_slot/internal/config"
	"mermaid_slot/internal/model"
)

func TestBetControllerClamps(t *testing.T) {
	b := NewBetController(
		config.CoinParams{Min: dec("1"), Max: dec("10"), Initial: dec("1")},
		config.MultiplierParams{Min: 1, Max: 10, Initial: 1},
	)
	state := model.NewGameState(dec("1000"), dec("1"), 1, 0.1)

	mults := []struct{ in, want int }{{0, 1}, {-5, 1}, {1, 1}, {7, 7}, {10, 10}, {99, 10}}
	for _, m := range mults {
		if got := b.SetBetMultiplier(state, m.in); got != m.want {
			t.Errorf("multiplier %d: expected %d, got %d", m.in, m.want, got)
		}
		if state.Snapshot().BetMultiplier != m.want {
			t.Errorf("state multiplier not updated for %d", m.in)
		}
	}

	coins := []struct{ in, want string }{{"0", "1"}, {"0.5", "1"}, {"2.5", "2.5"}, {"10", "10"}, {"100", "10"}}
	for _, c := range coins {
		if got := b.SetCoinValue(state, dec(c.in)); !got.Equal(dec(c.want)) {
			t.Errorf("coin %s: expected %s, got %s", c.in, c.want, got)
		}
	}

	// последняя монета 10, множитель 10
	if !state.TotalBet().Equal(dec("100")) {
		t.Errorf("expected total bet 100, got %s", state.TotalBet())
	}
}
