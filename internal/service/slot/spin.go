package slot

import (
	"context"
	"errors"

	"mermaid_slot/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spin проверяет ставку, списывает её и запускает раунд в отдельной горутине.
// При идущем вращении возвращает ErrSpinInProgress без изменений состояния.
func (s *serv) Spin(ctx context.Context) (<-chan model.SpinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	stake, err := s.state.BeginSpin()
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			s.presenter.ShowMessage("Invalid bet amount!", s.cfg.Animation().WinMessage)
		}
		return nil, err
	}

	outcome := &model.RoundOutcome{
		ID:        uuid.NewString(),
		Username:  s.username,
		Stake:     stake,
		StartedAt: s.now(),
	}

	// раунд останавливается и по отмене вызывающего, и по Close
	roundCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)

	results := make(chan model.SpinResult, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(results)
		defer stop()
		defer cancel()

		err := s.resolver.Resolve(roundCtx, outcome)
		outcome.FinishedAt = s.now()
		s.state.EndSpin()

		switch {
		case err == nil:
			s.logger.Info("round finished",
				zap.String("round_id", outcome.ID),
				zap.String("stake", outcome.Stake.String()),
				zap.String("win", outcome.TotalWin.String()),
				zap.Int("cascades", outcome.Cascades()),
				zap.Bool("bonus", outcome.BonusTriggered))
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.logger.Info("round cancelled", zap.String("round_id", outcome.ID))
		default:
			s.logger.Error("round failed", zap.String("round_id", outcome.ID), zap.Error(err))
		}

		s.persist(context.WithoutCancel(ctx), outcome)
		results <- model.SpinResult{Outcome: outcome, Err: err}
	}()

	return results, nil
}

// persist сохраняет раунд и статистику. Ошибки хранилища раунд не ломают.
func (s *serv) persist(ctx context.Context, outcome *model.RoundOutcome) {
	if err := s.roundRepo.Save(ctx, outcome); err != nil {
		s.logger.Error("save round", zap.String("round_id", outcome.ID), zap.Error(err))
	}
	if err := s.statsRepo.Record(ctx, s.username, outcome); err != nil {
		s.logger.Error("record stats", zap.String("round_id", outcome.ID), zap.Error(err))
	}
}
