package stats_repo

import (
	"context"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/repository"
	repoModel "mermaid_slot/internal/repository/stats_repo/model"
	"sync"

	"github.com/shopspring/decimal"
)

// DefaultWindowSize размер окна для RTP последних спинов
const DefaultWindowSize = 500

var hundred = decimal.NewFromInt(100)

// StateRepo статистика игроков в памяти
type StateRepo struct {
	mtx        sync.RWMutex
	windowSize int
	players    map[string]*repoModel.PlayerState
}

// NewStatsRepository Конструктор репозитория статистики
func NewStatsRepository(windowSize int) repository.StatsRepository {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &StateRepo{
		windowSize: windowSize,
		players:    make(map[string]*repoModel.PlayerState),
	}
}

func (r *StateRepo) player(username string) *repoModel.PlayerState {
	st, ok := r.players[username]
	if !ok {
		st = &repoModel.PlayerState{
			SpinWindow: make([]repoModel.SpinResult, 0),
			WindowSize: r.windowSize,
		}
		r.players[username] = st
	}
	return st
}

// Record Обновление статистики после спина
func (r *StateRepo) Record(_ context.Context, username string, outcome *model.RoundOutcome) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st := r.player(username)
	bet, payout := outcome.Stake, outcome.TotalWin

	st.TotalSpins++
	st.TotalBet = st.TotalBet.Add(bet)
	st.TotalPayout = st.TotalPayout.Add(payout)
	st.CurrentRTP = rtp(st.TotalBet, st.TotalPayout)

	if outcome.BonusTriggered {
		st.BonusTriggers++
	}
	st.MaxCascades = max(st.MaxCascades, outcome.Cascades())
	if payout.GreaterThan(st.BiggestWin) {
		st.BiggestWin = payout
	}

	// Добавляем спин в окно
	st.SpinWindow = append(st.SpinWindow, repoModel.SpinResult{
		Bet:    bet,
		Payout: payout,
	})

	// Поддерживаем размер окна
	if len(st.SpinWindow) > st.WindowSize {
		st.SpinWindow = st.SpinWindow[1:]
	}

	// Пересчитываем RTP в окне
	var windowBet, windowPayout decimal.Decimal
	for _, spin := range st.SpinWindow {
		windowBet = windowBet.Add(spin.Bet)
		windowPayout = windowPayout.Add(spin.Payout)
	}
	st.WindowRTP = rtp(windowBet, windowPayout)
	return nil
}

// Get Копия статистики игрока, нулевая если он ещё не играл
func (r *StateRepo) Get(_ context.Context, username string) (*model.SessionStats, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st, ok := r.players[username]
	if !ok {
		return &model.SessionStats{WindowSize: r.windowSize}, nil
	}
	return &model.SessionStats{
		TotalSpins:    st.TotalSpins,
		TotalBet:      st.TotalBet,
		TotalPayout:   st.TotalPayout,
		CurrentRTP:    st.CurrentRTP,
		WindowRTP:     st.WindowRTP,
		WindowSize:    len(st.SpinWindow),
		BonusTriggers: st.BonusTriggers,
		MaxCascades:   st.MaxCascades,
		BiggestWin:    st.BiggestWin,
	}, nil
}

func rtp(bet, payout decimal.Decimal) float64 {
	if !bet.IsPositive() {
		return 0
	}
	return payout.Div(bet).Mul(hundred).InexactFloat64()
}
