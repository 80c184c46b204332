package slot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mermaid_slot/internal/config"
	"mermaid_slot/internal/model"

	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrCascadeLimit = errors.New("cascade limit exceeded")

const (
	StateIdle       = "idle"
	StateSpinning   = "spinning"
	StateEvaluating = "evaluating"
	StateCascading  = "cascading"

	eventSpin    = "spin"
	eventSettle  = "settle"
	eventCascade = "cascade"
	eventReveal  = "reveal"
	eventFinish  = "finish"
	eventAbort   = "abort"
)

// RoundResolver проводит один спин: анимация, оценка, выплаты, бонус и каскады
// до поля без совпадений. Поле принадлежит только горутине раунда.
type RoundResolver struct {
	grid      *GridModel
	frames    *GridModel // промежуточные кадры, на исход не влияют
	bonus     *BonusController
	state     *model.GameState
	presenter Presenter
	logger    *zap.Logger

	symbols     *model.SymbolTable
	jackpot     *model.Symbol
	threshold   int
	maxCascades int
	anim        config.AnimationParams

	// onTransition вызывается на каждый переход FSM, используется в тестах
	onTransition func(from, to string)
}

type resolverDeps struct {
	grid      *GridModel
	frames    *GridModel
	bonus     *BonusController
	state     *model.GameState
	presenter Presenter
	logger    *zap.Logger
}

func newRoundResolver(cfg config.GameConfig, deps resolverDeps) *RoundResolver {
	return &RoundResolver{
		grid:        deps.grid,
		frames:      deps.frames,
		bonus:       deps.bonus,
		state:       deps.state,
		presenter:   deps.presenter,
		logger:      deps.logger,
		symbols:     cfg.Symbols(),
		jackpot:     cfg.Symbols().Rarest(),
		threshold:   cfg.MatchThreshold(),
		maxCascades: cfg.MaxCascades(),
		anim:        cfg.Animation(),
	}
}

func (r *RoundResolver) newFSM() *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventSpin, Src: []string{StateIdle}, Dst: StateSpinning},
			{Name: eventSettle, Src: []string{StateSpinning}, Dst: StateEvaluating},
			{Name: eventCascade, Src: []string{StateEvaluating}, Dst: StateCascading},
			{Name: eventReveal, Src: []string{StateCascading}, Dst: StateEvaluating},
			{Name: eventFinish, Src: []string{StateEvaluating}, Dst: StateIdle},
			{Name: eventAbort, Src: []string{StateSpinning, StateEvaluating, StateCascading}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				r.logger.Debug("round state", zap.String("event", e.Event), zap.String("from", e.Src), zap.String("to", e.Dst))
				if r.onTransition != nil {
					r.onTransition(e.Src, e.Dst)
				}
			},
		},
	)
}

// Resolve проводит раунд. Ставка уже списана, флаг вращения поднят вызывающим.
// Начисленные выигрыши остаются при отмене или ошибке.
func (r *RoundResolver) Resolve(ctx context.Context, outcome *model.RoundOutcome) error {
	f := r.newFSM()
	if err := f.Event(ctx, eventSpin); err != nil {
		return fmt.Errorf("start round: %w", err)
	}

	err := r.run(ctx, f, outcome)
	if err != nil {
		outcome.Aborted = true
		// ctx может быть уже отменён, переход в idle не должен от него зависеть
		if abortErr := f.Event(context.WithoutCancel(ctx), eventAbort); abortErr != nil {
			r.logger.Warn("round abort transition", zap.Error(abortErr))
		}
	}
	outcome.Balance = r.state.Balance()
	return err
}

func (r *RoundResolver) run(ctx context.Context, f *fsm.FSM, outcome *model.RoundOutcome) error {
	r.presenter.UpdateBalance(r.state.Balance())
	r.presenter.PlaySound(model.SoundSpin)

	g := r.grid.New()
	if err := r.animateSpin(ctx); err != nil {
		return err
	}
	r.presenter.RenderGrid(g.Clone())

	if err := f.Event(ctx, eventSettle); err != nil {
		return err
	}

	var total strings.Builder
	consecutive := 1
	for pass := 0; ; pass++ {
		if pass > r.maxCascades {
			r.logger.Error("cascade limit exceeded",
				zap.String("round_id", outcome.ID),
				zap.Int("max_cascades", r.maxCascades))
			return ErrCascadeLimit
		}

		counts := r.grid.CountBySymbol(g)
		mask, hasWin := r.grid.MarkMatches(g, counts, r.threshold)
		if !hasWin {
			if consecutive > 1 {
				r.presenter.ShowMessage(fmt.Sprintf("Total Amount Won: $%s", outcome.TotalWin.StringFixed(2)), r.anim.TotalMessage)
				fmt.Fprintf(&total, "\nTotal Consecutive Wins: %d\nTotal Win: $%s!", consecutive-1, outcome.TotalWin.StringFixed(2))
				r.logger.Debug("round summary", zap.String("summary", total.String()))
			}
			r.publishChance(r.bonus.OnRoundLoss())
			outcome.Summary = total.String()
			return f.Event(ctx, eventFinish)
		}

		step := r.evaluate(outcome.Stake, counts, consecutive)
		step.Index = pass
		outcome.Steps = append(outcome.Steps, step)
		outcome.TotalWin = outcome.TotalWin.Add(step.Win)
		if step.BonusTriggered {
			outcome.BonusTriggered = true
			outcome.BonusMultiplier = step.BonusMultiplier
		}

		if total.Len() > 0 {
			total.WriteString("\n\n")
		}
		total.WriteString(r.stepMessage(step, consecutive))

		r.presenter.UpdateBalance(r.state.Credit(step.Win))
		consecutive++
		outcome.ConsecutiveWins = consecutive - 1

		if err := f.Event(ctx, eventCascade); err != nil {
			return err
		}
		next, err := r.cascade(ctx, g, mask)
		if err != nil {
			return err
		}
		g = next
		if err := f.Event(ctx, eventReveal); err != nil {
			return err
		}
	}
}

// evaluate считает выплату за проход, звук и бонус. Баланс не трогает.
func (r *RoundResolver) evaluate(stake decimal.Decimal, counts map[*model.Symbol]int, consecutive int) model.RoundStep {
	step := model.RoundStep{}

	jackpot := false
	// порядок таблицы, чтобы сводка была стабильной
	for _, s := range r.symbols.Symbols() {
		count := counts[s]
		tier := TierFor(count, r.threshold)
		if tier == model.TierNone {
			continue
		}
		payout := stake.Mul(s.Payout(tier))
		step.Wins = append(step.Wins, model.SymbolWin{
			Symbol: s,
			Count:  count,
			Tier:   tier,
			Payout: payout,
		})
		step.BaseWin = step.BaseWin.Add(payout)
		step.Removed += count
		if s == r.jackpot {
			jackpot = true
		}
	}

	if jackpot {
		r.presenter.PlaySound(model.SoundJackpot)
	} else {
		r.presenter.PlaySound(model.SoundSmallWin)
	}

	triggered, multiplier, win := r.bonus.RollAndMaybeTrigger(step.BaseWin)
	step.Win = win
	if triggered {
		step.BonusTriggered = true
		step.BonusMultiplier = multiplier
		r.publishChance(r.bonus.Chance())
		r.presenter.ShowMessage(fmt.Sprintf("Mermaid Multiplier (%.1fx): You Won $%s!", multiplier, win.StringFixed(2)), r.anim.BonusMessage)
	} else {
		if consecutive > 1 {
			r.publishChance(r.bonus.OnWinNoBonus(consecutive))
		}
		r.presenter.ShowMessage(fmt.Sprintf("You Won $%s!", win.StringFixed(2)), r.anim.WinMessage)
	}
	return step
}

func (r *RoundResolver) stepMessage(step model.RoundStep, consecutive int) string {
	var sb strings.Builder
	if consecutive > 1 {
		fmt.Fprintf(&sb, "Consecutive Win #%d!\n\n", consecutive)
	}
	sb.WriteString("Wins:\n")
	for _, w := range step.Wins {
		fmt.Fprintf(&sb, "%s x%d: $%s\n", w.Symbol.Glyph, w.Count, w.Payout.StringFixed(2))
	}
	if step.BonusTriggered {
		fmt.Fprintf(&sb, "\nMermaid Multiplier: x%.2f!", step.BonusMultiplier)
	}
	return sb.String()
}

// cascade анимирует исчезновение совпавших ячеек и возвращает новое поле
func (r *RoundResolver) cascade(ctx context.Context, g model.Grid, mask model.Mask) (model.Grid, error) {
	if r.anim.ScaleStep > 0 {
		for scale := r.anim.ScaleMax; scale >= r.anim.ScaleMin; scale -= r.anim.ScaleStep {
			for row := range mask {
				for col := range mask[row] {
					if mask[row][col] {
						r.presenter.RenderCellScale(row, col, scale)
					}
				}
			}
			if err := sleep(ctx, r.anim.ScaleDelay); err != nil {
				return nil, err
			}
		}
	}

	next := r.grid.RemoveMarked(g, mask)
	for row := range mask {
		for col := range mask[row] {
			if mask[row][col] {
				r.presenter.RenderCell(row, col, nil)
			}
		}
	}
	if err := sleep(ctx, r.anim.CascadeDelay); err != nil {
		return nil, err
	}

	r.grid.Cascade(next)
	r.presenter.RenderGrid(next.Clone())
	if err := sleep(ctx, r.anim.RevealDelay); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *RoundResolver) animateSpin(ctx context.Context) error {
	for i := 0; i < r.anim.SpinFrames; i++ {
		r.presenter.RenderGrid(r.frames.New())
		if err := sleep(ctx, r.anim.SpinDelayBase+time.Duration(i)*r.anim.SpinDelayStep); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (r *RoundResolver) publishChance(chance float64) {
	r.state.SetBonusChance(chance)
	r.presenter.UpdateBonusChance(chance)
}

// sleep ждёт d или отмены контекста
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
