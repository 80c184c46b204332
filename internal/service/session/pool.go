package session

import (
	"sync"

	"mermaid_slot/internal/model"
	"mermaid_slot/internal/service"
)

// EventSource журнал событий отображения сессии
type EventSource interface {
	Drain() []model.PresenterEvent
}

// Session игровая сессия вместе с её журналом событий
type Session struct {
	Game   service.GameService
	Events EventSource
}

type Factory func(username string) Session

// Pool держит по одной сессии на игрока, создаёт их при первом обращении
type Pool struct {
	mu       sync.Mutex
	sessions map[string]Session
	factory  Factory
}

func NewPool(factory Factory) *Pool {
	return &Pool{
		sessions: make(map[string]Session),
		factory:  factory,
	}
}

func (p *Pool) Get(username string) Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sessions[username]
	if !ok {
		s = p.factory(username)
		p.sessions[username] = s
	}
	return s
}

// Close закрывает все сессии
func (p *Pool) Close() {
	p.mu.Lock()
	sessions := p.sessions
	p.sessions = make(map[string]Session)
	p.mu.Unlock()

	for _, s := range sessions {
		s.Game.Close()
	}
}
