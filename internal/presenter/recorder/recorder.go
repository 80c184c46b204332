package recorder

import (
	"sync"
	"time"

	"mermaid_slot/internal/model"

	"github.com/shopspring/decimal"
)

// Recorder сохраняет обращения движка к слою отображения в порядке поступления.
// Используется HTTP API и тестами.
type Recorder struct {
	mu     sync.Mutex
	events []model.PresenterEvent
	limit  int
}

// New создаёт Recorder. При limit > 0 хранятся только последние limit событий.
func New(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) add(e model.PresenterEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = r.events[len(r.events)-r.limit:]
	}
}

func (r *Recorder) RenderGrid(grid model.Grid) {
	r.add(model.PresenterEvent{Kind: model.EventGrid, Grid: grid})
}

func (r *Recorder) RenderCell(row, col int, symbol *model.Symbol) {
	e := model.PresenterEvent{Kind: model.EventCell, Row: row, Col: col}
	if symbol != nil {
		e.Symbol = symbol.ID
	}
	r.add(e)
}

func (r *Recorder) RenderCellScale(row, col, percent int) {
	r.add(model.PresenterEvent{Kind: model.EventScale, Row: row, Col: col, Percent: percent})
}

func (r *Recorder) ShowMessage(text string, duration time.Duration) {
	r.add(model.PresenterEvent{Kind: model.EventMessage, Text: text, Duration: duration})
}

func (r *Recorder) UpdateBalance(balance decimal.Decimal) {
	r.add(model.PresenterEvent{Kind: model.EventBalance, Balance: balance})
}

func (r *Recorder) UpdateBonusChance(chance float64) {
	r.add(model.PresenterEvent{Kind: model.EventChance, Chance: chance})
}

func (r *Recorder) PlaySound(sound model.Sound) {
	r.add(model.PresenterEvent{Kind: model.EventSound, Sound: sound})
}

// Events копия накопленных событий
func (r *Recorder) Events() []model.PresenterEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.PresenterEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Drain возвращает накопленные события и очищает журнал
func (r *Recorder) Drain() []model.PresenterEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

// Filter события заданных видов
func Filter(events []model.PresenterEvent, kinds ...model.EventKind) []model.PresenterEvent {
	var out []model.PresenterEvent
	for _, e := range events {
		for _, k := range kinds {
			if e.Kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
