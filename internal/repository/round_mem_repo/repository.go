package round_mem_repo

import (
	"context"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/repository"
	"sync"
)

// DefaultCapacity сколько раундов хранится на игрока
const DefaultCapacity = 100

// repo хранит последние раунды каждого игрока в кольцевом буфере
type repo struct {
	mtx      sync.RWMutex
	capacity int
	rounds   map[string][]*model.RoundOutcome
}

func NewRoundRepository(capacity int) repository.RoundRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &repo{
		capacity: capacity,
		rounds:   make(map[string][]*model.RoundOutcome),
	}
}

func (r *repo) Save(_ context.Context, outcome *model.RoundOutcome) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	list := append(r.rounds[outcome.Username], outcome)
	if len(list) > r.capacity {
		list = list[len(list)-r.capacity:]
	}
	r.rounds[outcome.Username] = list
	return nil
}

func (r *repo) List(_ context.Context, username string, limit int) ([]*model.RoundOutcome, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	list := r.rounds[username]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]*model.RoundOutcome, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out, nil
}
