package slot

import (
	"testing"

	"mermaid_slot/internal/config/env"
)

func TestWithoutDelays(t *testing.T) {
	base := env.DefaultGameConfig()
	cfg := WithoutDelays(base)

	a := cfg.Animation()
	if a.SpinFrames != 0 || a.SpinDelayBase != 0 || a.SpinDelayStep != 0 {
		t.Errorf("spin animation not disabled: %+v", a)
	}
	if a.ScaleDelay != 0 || a.CascadeDelay != 0 || a.RevealDelay != 0 {
		t.Errorf("cascade delays not disabled: %+v", a)
	}

	orig := base.Animation()
	if a.WinMessage != orig.WinMessage || a.BonusMessage != orig.BonusMessage || a.TotalMessage != orig.TotalMessage {
		t.Errorf("message durations changed: %+v", a)
	}
	if a.ScaleMax != orig.ScaleMax || a.ScaleStep != orig.ScaleStep {
		t.Errorf("scale frames changed: %+v", a)
	}
	if cfg.MatchThreshold() != base.MatchThreshold() || cfg.Symbols() != base.Symbols() {
		t.Error("game parameters must pass through")
	}
}
