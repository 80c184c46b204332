package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventGrid    EventKind = "grid"
	EventCell    EventKind = "cell"
	EventScale   EventKind = "scale"
	EventMessage EventKind = "message"
	EventBalance EventKind = "balance"
	EventChance  EventKind = "chance"
	EventSound   EventKind = "sound"
)

// PresenterEvent одно обращение движка к слою отображения
type PresenterEvent struct {
	Kind     EventKind
	Row      int
	Col      int
	Percent  int
	Symbol   string // ID символа, пусто для очищенной ячейки
	Grid     Grid
	Text     string
	Duration time.Duration
	Balance  decimal.Decimal
	Chance   float64
	Sound    Sound
}
