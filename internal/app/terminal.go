package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mermaid_slot/internal/model"
	"mermaid_slot/internal/service/slot"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 10

const helpText = `Commands:
  spin            spin the reels
  coin <value>    set coin value
  bet <n>         set bet multiplier
  stats           session statistics
  history [n]     last rounds
  volume <0-100>  sound volume
  help            this help
  quit            leave the game
`

// readLines читает ввод построчно, канал закрывается на конце ввода
func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

func prompt(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lines:
		return line, ok
	}
}

// play командный цикл игры. Раунд идёт в фоне, ввод читается и во время вращения.
func (s *App) play(ctx context.Context, username string, lines <-chan string) error {
	game := s.ServiceProvider.GameService(ctx, username)
	view := s.ServiceProvider.Presenter()
	sounds := s.ServiceProvider.SoundManager()
	logger := s.ServiceProvider.Logger().With(zap.String("username", username))

	state := game.State()
	view.SetPlayer(username)
	view.UpdateBonusChance(state.BonusChance)
	view.UpdateBalance(state.Balance)
	view.Print(helpText)

	var wg sync.WaitGroup
	defer func() {
		game.Close()
		wg.Wait()
	}()

	for {
		line, ok := prompt(ctx, lines)
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		arg := ""
		if len(fields) > 1 {
			arg = fields[1]
		}

		switch strings.ToLower(fields[0]) {
		case "spin", "s":
			ch, err := game.Spin(ctx)
			if err != nil {
				switch {
				case errors.Is(err, slot.ErrSpinInProgress):
					view.Print("Spin in progress.\n")
				case errors.Is(err, slot.ErrInsufficientFunds):
					// сообщение уже на экране
				default:
					logger.Error("spin", zap.Error(err))
				}
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				res := <-ch
				if res.Err != nil {
					if !errors.Is(res.Err, context.Canceled) {
						logger.Error("round failed", zap.Error(res.Err))
					}
					return
				}
				if res.Outcome.Summary != "" {
					view.Print("\n%s\n", res.Outcome.Summary)
				}
			}()

		case "coin":
			v, err := decimal.NewFromString(arg)
			if err != nil {
				continue
			}
			applied, err := game.SetCoinValue(v)
			if err != nil {
				view.Print("Cannot change the bet while spinning.\n")
				continue
			}
			view.Print("Coin value: $%s, total bet: $%s\n", applied.StringFixed(2), game.State().TotalBet.StringFixed(2))

		case "bet":
			m, err := strconv.Atoi(arg)
			if err != nil {
				continue
			}
			applied, err := game.SetBetMultiplier(m)
			if err != nil {
				view.Print("Cannot change the bet while spinning.\n")
				continue
			}
			view.Print("Bet multiplier: x%d, total bet: $%s\n", applied, game.State().TotalBet.StringFixed(2))

		case "stats":
			st, err := game.Stats(ctx)
			if err != nil {
				logger.Error("stats", zap.Error(err))
				continue
			}
			view.Print("%s", formatStats(st))

		case "history":
			limit := defaultHistoryLimit
			if n, err := strconv.Atoi(arg); err == nil && n > 0 {
				limit = n
			}
			rounds, err := game.History(ctx, limit)
			if err != nil {
				logger.Error("history", zap.Error(err))
				continue
			}
			view.Print("%s", formatHistory(rounds))

		case "volume":
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				continue
			}
			view.Print("Volume: %.0f%%\n", sounds.SetVolume(v/100)*100)

		case "help", "?":
			view.Print(helpText)

		case "quit", "exit", "q":
			return nil
		}
	}
}

func formatStats(st *model.SessionStats) string {
	var sb strings.Builder
	sb.WriteString("Session statistics:\n")
	fmt.Fprintf(&sb, "  Spins:          %d\n", st.TotalSpins)
	fmt.Fprintf(&sb, "  Total bet:      $%s\n", st.TotalBet.StringFixed(2))
	fmt.Fprintf(&sb, "  Total payout:   $%s\n", st.TotalPayout.StringFixed(2))
	fmt.Fprintf(&sb, "  RTP:            %.2f%%\n", st.CurrentRTP)
	fmt.Fprintf(&sb, "  RTP (last %d):  %.2f%%\n", st.WindowSize, st.WindowRTP)
	fmt.Fprintf(&sb, "  Bonus triggers: %d\n", st.BonusTriggers)
	fmt.Fprintf(&sb, "  Max cascades:   %d\n", st.MaxCascades)
	fmt.Fprintf(&sb, "  Biggest win:    $%s\n", st.BiggestWin.StringFixed(2))
	return sb.String()
}

func formatHistory(rounds []*model.RoundOutcome) string {
	if len(rounds) == 0 {
		return "No rounds yet.\n"
	}
	var sb strings.Builder
	for _, o := range rounds {
		fmt.Fprintf(&sb, "%s  bet $%s  won $%s  cascades %d",
			o.StartedAt.Format("15:04:05"), o.Stake.StringFixed(2), o.TotalWin.StringFixed(2), o.Cascades())
		if o.BonusTriggered {
			fmt.Fprintf(&sb, "  mermaid x%.2f", o.BonusMultiplier)
		}
		if o.Aborted {
			sb.WriteString("  (aborted)")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
