package slot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"mermaid_slot/internal/model"
	"mermaid_slot/internal/presenter/recorder"
	"mermaid_slot/internal/repository/round_mem_repo"
	"mermaid_slot/internal/repository/stats_repo"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newTestServ(cfg *testConfig, p Presenter, src RandSource) *serv {
	return newServ("ariel", cfg, p, round_mem_repo.NewRoundRepository(10), stats_repo.NewStatsRepository(10), zap.NewNop(), src)
}

// firstGrid 8 рыб, остальные символы не больше 3
func firstGrid(t *testing.T, cfg *testConfig) []float64 {
	return picks(t, cfg.Symbols(),
		"fish", 8, "crab", 3, "dolphin", 3, "shell", 3, "anchor", 3,
		"trident", 3, "gem", 3, "ship", 2, "treasure", 2)
}

// quietRefill 8 разных символов, новых совпадений не даёт
func quietRefill(t *testing.T, cfg *testConfig) []float64 {
	return picks(t, cfg.Symbols(),
		"crab", 1, "dolphin", 1, "shell", 1, "anchor", 1,
		"trident", 1, "gem", 1, "ship", 1, "treasure", 1)
}

func TestScenarioSingleWin(t *testing.T) {
	cfg := newTestConfig()
	src := &scripted{fallback: 0.99}
	src.add(firstGrid(t, cfg)...)
	src.add(0.99) // бонус не срабатывает
	src.add(quietRefill(t, cfg)...)

	rec := recorder.New(0)
	s := newTestServ(cfg, rec, src)
	var transitions []string
	s.resolver.onTransition = func(from, to string) { transitions = append(transitions, from+">"+to) }
	defer s.Close()

	ch, err := s.Spin(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	res := waitResult(t, ch)
	if res.Err != nil {
		t.Fatal(res.Err)
	}

	o := res.Outcome
	if !o.TotalWin.Equal(dec("0.25")) {
		t.Errorf("expected win 0.25, got %s", o.TotalWin)
	}
	if !o.Balance.Equal(dec("999.25")) || !s.State().Balance.Equal(dec("999.25")) {
		t.Errorf("expected balance 999.25, got %s / %s", o.Balance, s.State().Balance)
	}
	if o.Cascades() != 1 || o.ConsecutiveWins != 1 || o.BonusTriggered {
		t.Errorf("unexpected outcome %+v", o)
	}
	w := o.Steps[0].Wins
	if len(w) != 1 || w[0].Symbol.ID != "fish" || w[0].Count != 8 || w[0].Tier != model.Tier1 {
		t.Errorf("unexpected wins %+v", w)
	}
	if !strings.Contains(o.Summary, "Wins:\n🐟 x8: $0.25\n") {
		t.Errorf("unexpected summary %q", o.Summary)
	}
	// проигрыш в конце раунда поднимает шанс
	if !approx(s.State().BonusChance, 0.15) {
		t.Errorf("expected chance 0.15, got %v", s.State().BonusChance)
	}
	if s.State().Spinning {
		t.Error("spinning flag must be cleared")
	}

	want := []string{"idle>spinning", "spinning>evaluating", "evaluating>cascading", "cascading>evaluating", "evaluating>idle"}
	if strings.Join(transitions, ",") != strings.Join(want, ",") {
		t.Errorf("unexpected transitions %v", transitions)
	}

	events := rec.Events()
	sounds := recorder.Filter(events, model.EventSound)
	if len(sounds) != 2 || sounds[0].Sound != model.SoundSpin || sounds[1].Sound != model.SoundSmallWin {
		t.Errorf("unexpected sounds %+v", sounds)
	}
	scales := recorder.Filter(events, model.EventScale)
	if len(scales) != 8*7 {
		t.Errorf("expected 7 scale frames for 8 cells, got %d", len(scales))
	}
	msgs := recorder.Filter(events, model.EventMessage)
	if len(msgs) != 2 || msgs[0].Text != "You Won $0.25!" || msgs[1].Text != "Total Amount Won: $0.25" {
		t.Errorf("unexpected messages %+v", msgs)
	}

	history, _ := s.History(context.Background(), 10)
	if len(history) != 1 || history[0].ID != o.ID {
		t.Errorf("round must be saved, got %d", len(history))
	}
	stats, _ := s.Stats(context.Background())
	if stats.TotalSpins != 1 || !stats.TotalPayout.Equal(dec("0.25")) {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestScenarioSingleWinWithBonus(t *testing.T) {
	cfg := newTestConfig()
	src := &scripted{fallback: 0.99}
	src.add(firstGrid(t, cfg)...)
	src.add(0.05, 0.5) // срабатывание и множитель 4.5
	src.add(quietRefill(t, cfg)...)

	rec := recorder.New(0)
	s := newTestServ(cfg, rec, src)
	defer s.Close()

	ch, err := s.Spin(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	res := waitResult(t, ch)
	if res.Err != nil {
		t.Fatal(res.Err)
	}

	o := res.Outcome
	if !o.BonusTriggered || !approx(o.BonusMultiplier, 4.5) {
		t.Fatalf("expected bonus x4.5, got %v x%v", o.BonusTriggered, o.BonusMultiplier)
	}
	if !o.Steps[0].BaseWin.Equal(dec("0.25")) || !o.TotalWin.Equal(dec("1.125")) {
		t.Errorf("expected 0.25 -> 1.125, got %s -> %s", o.Steps[0].BaseWin, o.TotalWin)
	}
	if !s.State().Balance.Equal(dec("1000.125")) {
		t.Errorf("expected balance 1000.125, got %s", s.State().Balance)
	}
	// сброс до 0.1 и проигрыш в конце
	if !approx(s.State().BonusChance, 0.15) {
		t.Errorf("expected chance 0.15, got %v", s.State().BonusChance)
	}
	msgs := recorder.Filter(rec.Events(), model.EventMessage)
	if len(msgs) != 2 || msgs[0].Text != "Mermaid Multiplier (4.5x): You Won $1.13!" || msgs[1].Text != "Total Amount Won: $1.13" {
		t.Errorf("unexpected messages %+v", msgs)
	}
	if !strings.Contains(o.Summary, "Mermaid Multiplier: x4.50!") {
		t.Errorf("unexpected summary %q", o.Summary)
	}
}

func TestScenarioNoWin(t *testing.T) {
	cfg := newTestConfig()
	src := &scripted{fallback: 0.99}
	src.add(picks(t, cfg.Symbols(),
		"fish", 4, "crab", 4, "dolphin", 4, "shell", 3, "anchor", 3,
		"trident", 3, "gem", 3, "ship", 3, "treasure", 3)...)

	rec := recorder.New(0)
	s := newTestServ(cfg, rec, src)
	var transitions []string
	s.resolver.onTransition = func(from, to string) { transitions = append(transitions, from+">"+to) }
	defer s.Close()

	ch, err := s.Spin(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	res := waitResult(t, ch)
	if res.Err != nil {
		t.Fatal(res.Err)
	}

	if !s.State().Balance.Equal(dec("999")) {
		t.Errorf("expected balance 999, got %s", s.State().Balance)
	}
	if !res.Outcome.TotalWin.IsZero() || res.Outcome.Cascades() != 0 {
		t.Errorf("unexpected outcome %+v", res.Outcome)
	}
	if !approx(s.State().BonusChance, 0.15) {
		t.Errorf("expected chance 0.15, got %v", s.State().BonusChance)
	}
	if len(recorder.Filter(rec.Events(), model.EventMessage)) != 0 {
		t.Error("no message expected for a plain loss")
	}
	want := "idle>spinning,spinning>evaluating,evaluating>idle"
	if strings.Join(transitions, ",") != want {
		t.Errorf("unexpected transitions %v", transitions)
	}
}

func TestScenarioConsecutiveWins(t *testing.T) {
	cfg := newTestConfig()
	src := &scripted{fallback: 0.99}
	src.add(firstGrid(t, cfg)...)
	src.add(0.99)
	src.add(picks(t, cfg.Symbols(), "fish", 8)...) // снова 8 рыб
	src.add(0.99)
	src.add(quietRefill(t, cfg)...)

	rec := recorder.New(0)
	s := newTestServ(cfg, rec, src)
	defer s.Close()

	ch, err := s.Spin(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	res := waitResult(t, ch)
	if res.Err != nil {
		t.Fatal(res.Err)
	}

	o := res.Outcome
	if o.ConsecutiveWins != 2 || o.Cascades() != 2 {
		t.Errorf("expected 2 consecutive wins, got %d", o.ConsecutiveWins)
	}
	if !o.TotalWin.Equal(dec("0.5")) || !s.State().Balance.Equal(dec("999.5")) {
		t.Errorf("expected win 0.5 and balance 999.5, got %s / %s", o.TotalWin, s.State().Balance)
	}
	// 0.1 + 0.1 за повторный выигрыш + 0.05 за проигрыш
	if !approx(s.State().BonusChance, 0.25) {
		t.Errorf("expected chance 0.25, got %v", s.State().BonusChance)
	}
	if !strings.Contains(o.Summary, "\n\nConsecutive Win #2!\n\nWins:\n") {
		t.Errorf("unexpected summary %q", o.Summary)
	}
	if !strings.HasSuffix(o.Summary, "\nTotal Consecutive Wins: 2\nTotal Win: $0.50!") {
		t.Errorf("unexpected summary tail %q", o.Summary)
	}

	msgs := recorder.Filter(rec.Events(), model.EventMessage)
	last := msgs[len(msgs)-1]
	if last.Text != "Total Amount Won: $0.50" || last.Duration != cfg.Animation().TotalMessage {
		t.Errorf("unexpected total message %+v", last)
	}
}

func TestJackpotSoundForRarestSymbol(t *testing.T) {
	cfg := newTestConfig()
	src := &scripted{fallback: 0.99}
	src.add(picks(t, cfg.Symbols(),
		"treasure", 8, "crab", 3, "dolphin", 3, "shell", 3, "anchor", 3,
		"trident", 3, "gem", 3, "ship", 2, "fish", 2)...)
	src.add(0.99)
	src.add(picks(t, cfg.Symbols(),
		"crab", 1, "dolphin", 1, "shell", 1, "anchor", 1,
		"trident", 1, "gem", 1, "ship", 1, "fish", 1)...)

	rec := recorder.New(0)
	s := newTestServ(cfg, rec, src)
	defer s.Close()

	ch, _ := s.Spin(context.Background())
	res := waitResult(t, ch)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	// 8 сокровищ: 1 * 10
	if !res.Outcome.TotalWin.Equal(dec("10")) {
		t.Errorf("expected win 10, got %s", res.Outcome.TotalWin)
	}
	sounds := recorder.Filter(rec.Events(), model.EventSound)
	if len(sounds) != 2 || sounds[1].Sound != model.SoundJackpot {
		t.Errorf("expected jackpot, got %+v", sounds)
	}
}

func TestTierThreePaysAtFullGrid(t *testing.T) {
	cfg := newTestConfig()
	cfg.maxCascades = 50
	src := &scripted{fallback: 0.99}
	src.add(picks(t, cfg.Symbols(), "crab", 30)...)
	src.add(0.99)
	// после удаления всего поля приходит поле без совпадений
	src.add(picks(t, cfg.Symbols(),
		"fish", 4, "crab", 4, "dolphin", 4, "shell", 3, "anchor", 3,
		"trident", 3, "gem", 3, "ship", 3, "treasure", 3)...)

	s := newTestServ(cfg, nil, src)
	defer s.Close()

	ch, _ := s.Spin(context.Background())
	res := waitResult(t, ch)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	w := res.Outcome.Steps[0].Wins[0]
	if w.Count != 30 || w.Tier != model.Tier3 || !w.Payout.Equal(dec("4")) {
		t.Errorf("unexpected win %+v", w)
	}
}

// gate держит раунд на звуке spin, пока тест не отпустит
type gate struct {
	*recorder.Recorder
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGate() *gate {
	return &gate{
		Recorder: recorder.New(0),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (g *gate) PlaySound(s model.Sound) {
	g.Recorder.PlaySound(s)
	if s == model.SoundSpin {
		g.once.Do(func() { close(g.entered) })
		<-g.release
	}
}

func TestScenarioSpinWhileSpinning(t *testing.T) {
	cfg := newTestConfig()
	src := &scripted{fallback: 0.99}
	src.add(picks(t, cfg.Symbols(),
		"fish", 4, "crab", 4, "dolphin", 4, "shell", 3, "anchor", 3,
		"trident", 3, "gem", 3, "ship", 3, "treasure", 3)...)

	g := newGate()
	s := newTestServ(cfg, g, src)
	defer s.Close()

	ch, err := s.Spin(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	<-g.entered

	before := s.State()
	drawn := src.i
	grids := len(recorder.Filter(g.Events(), model.EventGrid))

	if _, err := s.Spin(context.Background()); !errors.Is(err, ErrSpinInProgress) {
		t.Fatalf("expected ErrSpinInProgress, got %v", err)
	}
	if _, err := s.SetBetMultiplier(5); !errors.Is(err, ErrSpinInProgress) {
		t.Errorf("bet change must be rejected while spinning, got %v", err)
	}
	if _, err := s.SetCoinValue(dec("5")); !errors.Is(err, ErrSpinInProgress) {
		t.Errorf("coin change must be rejected while spinning, got %v", err)
	}

	after := s.State()
	if !after.Balance.Equal(before.Balance) || after.BetMultiplier != before.BetMultiplier || !after.CoinValue.Equal(before.CoinValue) {
		t.Errorf("state changed: %+v -> %+v", before, after)
	}
	if src.i != drawn || len(recorder.Filter(g.Events(), model.EventGrid)) != grids {
		t.Error("rejected spin must not generate a grid")
	}

	close(g.release)
	if res := waitResult(t, ch); res.Err != nil {
		t.Fatal(res.Err)
	}
	if !s.State().Balance.Equal(dec("999")) {
		t.Errorf("expected one stake debited, got %s", s.State().Balance)
	}
}

func TestScenarioBetClamp(t *testing.T) {
	s := newTestServ(newTestConfig(), nil, nil)
	defer s.Close()

	if m, err := s.SetBetMultiplier(0); err != nil || m != 1 {
		t.Errorf("expected 1, got %d (%v)", m, err)
	}
	if m, err := s.SetBetMultiplier(99); err != nil || m != 10 {
		t.Errorf("expected 10, got %d (%v)", m, err)
	}
	if !s.State().TotalBet.Equal(dec("10")) {
		t.Errorf("expected total bet 10, got %s", s.State().TotalBet)
	}
}

func TestInsufficientFunds(t *testing.T) {
	cfg := newTestConfig()
	rec := recorder.New(0)
	s := newTestServ(cfg, rec, nil)
	defer s.Close()

	s.state = model.NewGameState(dec("5"), dec("1"), 10, 0.1)
	if _, err := s.Spin(context.Background()); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !s.State().Balance.Equal(dec("5")) || s.State().Spinning {
		t.Errorf("state must not change: %+v", s.State())
	}
	msgs := recorder.Filter(rec.Events(), model.EventMessage)
	if len(msgs) != 1 || msgs[0].Text != "Invalid bet amount!" {
		t.Errorf("expected notice, got %+v", msgs)
	}
}

func TestCascadeLimit(t *testing.T) {
	cfg := newTestConfig()
	only, err := model.NewSymbolTable([]model.Symbol{{
		ID: "pearl", Glyph: "o", Probability: 1,
		Payouts: [3]decimal.Decimal{dec("1"), dec("1"), dec("1")},
	}})
	if err != nil {
		t.Fatal(err)
	}
	cfg.symbols = only
	cfg.maxCascades = 2

	s := newTestServ(cfg, nil, &scripted{fallback: 0.99})
	defer s.Close()

	ch, _ := s.Spin(context.Background())
	res := waitResult(t, ch)
	if !errors.Is(res.Err, ErrCascadeLimit) {
		t.Fatalf("expected ErrCascadeLimit, got %v", res.Err)
	}
	o := res.Outcome
	if !o.Aborted || o.Cascades() != 3 {
		t.Errorf("expected aborted round with 3 wins, got aborted=%v steps=%d", o.Aborted, o.Cascades())
	}
	// выигрыши до ошибки остаются: 1000 - 1 + 3
	if !s.State().Balance.Equal(dec("1002")) || s.State().Spinning {
		t.Errorf("unexpected state %+v", s.State())
	}
}

func TestCloseCancelsRound(t *testing.T) {
	cfg := newTestConfig()
	cfg.anim.SpinFrames = 1
	cfg.anim.SpinDelayBase = time.Hour

	s := newTestServ(cfg, nil, nil)
	ch, err := s.Spin(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("close did not stop the round")
	}

	res := waitResult(t, ch)
	if !errors.Is(res.Err, context.Canceled) || !res.Outcome.Aborted {
		t.Errorf("expected cancelled round, got %v aborted=%v", res.Err, res.Outcome.Aborted)
	}
	if !s.State().Balance.Equal(dec("999")) || s.State().Spinning {
		t.Errorf("stake stays debited and spinning clears, got %+v", s.State())
	}
	if _, err := s.Spin(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	s.Close()
}

func TestCallerContextCancelsRound(t *testing.T) {
	cfg := newTestConfig()
	cfg.anim.SpinFrames = 1
	cfg.anim.SpinDelayBase = time.Hour

	s := newTestServ(cfg, nil, nil)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := s.Spin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	cancel()

	res := waitResult(t, ch)
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", res.Err)
	}
	// сохранение не зависит от отменённого контекста
	history, _ := s.History(context.Background(), 1)
	if len(history) != 1 || !history[0].Aborted {
		t.Errorf("aborted round must be saved, got %+v", history)
	}
}
