package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"mermaid_slot/internal/model"

	"github.com/shopspring/decimal"
)

type soundLog []model.Sound

func (l *soundLog) Play(s model.Sound) { *l = append(*l, s) }

func TestPresenterDraws(t *testing.T) {
	var buf bytes.Buffer
	sounds := &soundLog{}
	p := New(&buf, sounds, false)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	fish := &model.Symbol{ID: "fish", Glyph: "F"}
	crab := &model.Symbol{ID: "crab", Glyph: "C"}
	g := model.Grid{{fish, crab}, {crab, fish}}

	p.SetPlayer("ariel")
	p.UpdateBalance(decimal.RequireFromString("999.5"))
	p.UpdateBonusChance(0.15)
	p.RenderGrid(g)

	// поле копируется, изменения движка не видны
	g[0][0] = crab

	buf.Reset()
	p.ShowMessage("You Won $0.25!", time.Second)
	out := buf.String()

	for _, want := range []string{"Player: ariel", "Balance: $999.50", "Mermaid Chance: 15%", "F C\nC F\n", "You Won $0.25!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}

	now = now.Add(2 * time.Second)
	buf.Reset()
	p.RenderCell(0, 0, nil)
	out = buf.String()
	if strings.Contains(out, "You Won") {
		t.Error("expired message must not be drawn")
	}
	if !strings.Contains(out, "   C\n") {
		t.Errorf("cleared cell must be blank, got %q", out)
	}

	p.PlaySound(model.SoundJackpot)
	if len(*sounds) != 1 || (*sounds)[0] != model.SoundJackpot {
		t.Errorf("unexpected sounds %v", *sounds)
	}
}

func TestRenderCellOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, nil, true)
	p.RenderCell(5, 5, nil)
	if buf.Len() != 0 {
		t.Error("out of range cell must be ignored")
	}
	p.PlaySound(model.SoundSpin)
}
