package slot

import (
	"context"
	"errors"
	"sync"
	"time"

	"mermaid_slot/internal/config"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/repository"
	"mermaid_slot/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrSpinInProgress    = model.ErrSpinInProgress
	ErrInsufficientFunds = model.ErrInsufficientFunds
	ErrSessionClosed     = errors.New("game session closed")
)

type serv struct {
	username  string
	cfg       config.GameConfig
	state     *model.GameState
	bet       *BetController
	bonus     *BonusController
	resolver  *RoundResolver
	presenter Presenter
	roundRepo repository.RoundRepository
	statsRepo repository.StatsRepository
	logger    *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewGameService создаёт игровую сессию. rnd может быть nil, тогда используется math/rand/v2.
func NewGameService(
	username string,
	cfg config.GameConfig,
	presenter Presenter,
	roundRepo repository.RoundRepository,
	statsRepo repository.StatsRepository,
	logger *zap.Logger,
	rnd RandSource,
) service.GameService {
	return newServ(username, cfg, presenter, roundRepo, statsRepo, logger, rnd)
}

func newServ(
	username string,
	cfg config.GameConfig,
	presenter Presenter,
	roundRepo repository.RoundRepository,
	statsRepo repository.StatsRepository,
	logger *zap.Logger,
	rnd RandSource,
) *serv {
	if rnd == nil {
		rnd = NewRandSource()
	}
	if presenter == nil {
		presenter = nopPresenter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("username", username))

	coin := cfg.Coin()
	mult := cfg.Multiplier()
	bonus := NewBonusController(cfg.Bonus(), rnd)
	state := model.NewGameState(cfg.StartingBalance(), coin.Initial, mult.Initial, bonus.Chance())

	picker := NewWeightedPicker(cfg.Symbols(), rnd)
	resolver := newRoundResolver(cfg, resolverDeps{
		grid:      NewGridModel(picker, cfg.Rows(), cfg.Cols()),
		frames:    NewGridModel(NewWeightedPicker(cfg.Symbols(), NewRandSource()), cfg.Rows(), cfg.Cols()),
		bonus:     bonus,
		state:     state,
		presenter: presenter,
		logger:    logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &serv{
		username:  username,
		cfg:       cfg,
		state:     state,
		bet:       NewBetController(coin, mult),
		bonus:     bonus,
		resolver:  resolver,
		presenter: presenter,
		roundRepo: roundRepo,
		statsRepo: statsRepo,
		logger:    logger,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *serv) Username() string {
	return s.username
}

func (s *serv) State() model.GameStateSnapshot {
	return s.state.Snapshot()
}

// SetCoinValue ограничивает значение монеты. Во время вращения отклоняется.
func (s *serv) SetCoinValue(v decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Spinning() {
		return s.state.Snapshot().CoinValue, ErrSpinInProgress
	}
	return s.bet.SetCoinValue(s.state, v), nil
}

func (s *serv) SetBetMultiplier(m int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Spinning() {
		return s.state.Snapshot().BetMultiplier, ErrSpinInProgress
	}
	return s.bet.SetBetMultiplier(s.state, m), nil
}

func (s *serv) Stats(ctx context.Context) (*model.SessionStats, error) {
	return s.statsRepo.Get(ctx, s.username)
}

func (s *serv) History(ctx context.Context, limit int) ([]*model.RoundOutcome, error) {
	return s.roundRepo.List(ctx, s.username, limit)
}

// Close отменяет текущий раунд и ждёт его завершения. Повторный вызов безопасен.
func (s *serv) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
