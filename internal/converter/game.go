package converter

import (
	"mermaid_slot/internal/api/dto/game"
	"mermaid_slot/internal/model"
	"time"
)

func ToStateResponse(username string, s model.GameStateSnapshot) game.StateResponse {
	return game.StateResponse{
		Username:      username,
		Balance:       s.Balance,
		CoinValue:     s.CoinValue,
		BetMultiplier: s.BetMultiplier,
		TotalBet:      s.TotalBet,
		Spinning:      s.Spinning,
		BonusChance:   s.BonusChance,
	}
}

func ToSpinResponse(o *model.RoundOutcome) game.SpinResponse {
	return game.SpinResponse{
		RoundID:         o.ID,
		Stake:           o.Stake,
		TotalWin:        o.TotalWin,
		Balance:         o.Balance,
		ConsecutiveWins: o.ConsecutiveWins,
		BonusTriggered:  o.BonusTriggered,
		BonusMultiplier: o.BonusMultiplier,
		Summary:         o.Summary,
		Steps:           toSteps(o.Steps),
		Aborted:         o.Aborted,
		StartedAt:       o.StartedAt.UTC().Format(time.RFC3339),
	}
}

func toSteps(steps []model.RoundStep) []game.Step {
	out := make([]game.Step, 0, len(steps))
	for _, s := range steps {
		out = append(out, game.Step{
			Index:           s.Index,
			Wins:            toSymbolWins(s.Wins),
			BaseWin:         s.BaseWin,
			Win:             s.Win,
			BonusTriggered:  s.BonusTriggered,
			BonusMultiplier: s.BonusMultiplier,
			Removed:         s.Removed,
		})
	}
	return out
}

func toSymbolWins(wins []model.SymbolWin) []game.SymbolWin {
	out := make([]game.SymbolWin, 0, len(wins))
	for _, w := range wins {
		out = append(out, game.SymbolWin{
			Symbol: w.Symbol.ID,
			Glyph:  w.Symbol.Glyph,
			Count:  w.Count,
			Tier:   int(w.Tier),
			Payout: w.Payout,
		})
	}
	return out
}

func ToHistoryResponse(rounds []*model.RoundOutcome) game.HistoryResponse {
	out := game.HistoryResponse{Rounds: make([]game.SpinResponse, 0, len(rounds))}
	for _, o := range rounds {
		out.Rounds = append(out.Rounds, ToSpinResponse(o))
	}
	return out
}

func ToStatsResponse(s *model.SessionStats) game.StatsResponse {
	return game.StatsResponse{
		TotalSpins:    s.TotalSpins,
		TotalBet:      s.TotalBet,
		TotalPayout:   s.TotalPayout,
		CurrentRTP:    s.CurrentRTP,
		WindowRTP:     s.WindowRTP,
		WindowSize:    s.WindowSize,
		BonusTriggers: s.BonusTriggers,
		MaxCascades:   s.MaxCascades,
		BiggestWin:    s.BiggestWin,
	}
}

// ToEventsResponse только сообщения, звуки и числовые показатели, без кадров поля
func ToEventsResponse(events []model.PresenterEvent) game.EventsResponse {
	out := game.EventsResponse{Events: make([]game.Event, 0, len(events))}
	for _, e := range events {
		ev := game.Event{Kind: string(e.Kind)}
		switch e.Kind {
		case model.EventMessage:
			ev.Text = e.Text
			ev.DurationMs = e.Duration.Milliseconds()
		case model.EventSound:
			ev.Sound = string(e.Sound)
		case model.EventBalance:
			balance := e.Balance
			ev.Balance = &balance
		case model.EventChance:
			chance := e.Chance
			ev.Chance = &chance
		default:
			continue
		}
		out.Events = append(out.Events, ev)
	}
	return out
}
