package env

import (
	_ "embed"
	"errors"
	"fmt"
	"mermaid_slot/internal/config"
	"mermaid_slot/internal/model"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default_game.yaml
var defaultGameYAML []byte

type gameFile struct {
	Game gameYAML `yaml:"game"`
}

type gameYAML struct {
	Grid struct {
		Rows int `yaml:"rows"`
		Cols int `yaml:"cols"`
	} `yaml:"grid"`
	MatchThreshold  int     `yaml:"match_threshold"`
	MaxCascades     int     `yaml:"max_cascades"`
	StartingBalance float64 `yaml:"starting_balance"`
	Coin            struct {
		Min     float64 `yaml:"min"`
		Max     float64 `yaml:"max"`
		Initial float64 `yaml:"initial"`
	} `yaml:"coin"`
	Multiplier struct {
		Min     int `yaml:"min"`
		Max     int `yaml:"max"`
		Initial int `yaml:"initial"`
	} `yaml:"multiplier"`
	Bonus struct {
		MinChance       float64 `yaml:"min_chance"`
		MaxChance       float64 `yaml:"max_chance"`
		StartChance     float64 `yaml:"start_chance"`
		LossStep        float64 `yaml:"loss_step"`
		StreakStep      float64 `yaml:"streak_step"`
		MultiplierMin   float64 `yaml:"multiplier_min"`
		MultiplierRange float64 `yaml:"multiplier_range"`
	} `yaml:"bonus"`
	Animation struct {
		SpinFrames    int           `yaml:"spin_frames"`
		SpinDelayBase time.Duration `yaml:"spin_delay_base"`
		SpinDelayStep time.Duration `yaml:"spin_delay_step"`
		ScaleMax      int           `yaml:"scale_max"`
		ScaleMin      int           `yaml:"scale_min"`
		ScaleStep     int           `yaml:"scale_step"`
		ScaleDelay    time.Duration `yaml:"scale_delay"`
		CascadeDelay  time.Duration `yaml:"cascade_delay"`
		RevealDelay   time.Duration `yaml:"reveal_delay"`
		WinMessage    time.Duration `yaml:"win_message"`
		BonusMessage  time.Duration `yaml:"bonus_message"`
		TotalMessage  time.Duration `yaml:"total_message"`
	} `yaml:"animation"`
	Symbols []symbolYAML `yaml:"symbols"`
}

type symbolYAML struct {
	ID          string    `yaml:"id"`
	Glyph       string    `yaml:"glyph"`
	Name        string    `yaml:"name"`
	Probability float64   `yaml:"probability"`
	Payouts     []float64 `yaml:"payouts"`
}

type gameConfig struct {
	symbols         *model.SymbolTable
	rows            int
	cols            int
	matchThreshold  int
	maxCascades     int
	startingBalance decimal.Decimal
	coin            config.CoinParams
	multiplier      config.MultiplierParams
	bonus           config.BonusParams
	animation       config.AnimationParams
}

// NewGameConfigFromYAML читает настройки игры и таблицу символов из YAML файла
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGameConfig(data)
}

// DefaultGameConfig каноническая конфигурация, встроенная в бинарник
func DefaultGameConfig() config.GameConfig {
	cfg, err := ParseGameConfig(defaultGameYAML)
	if err != nil {
		panic("invalid embedded game config: " + err.Error())
	}
	return cfg
}

func ParseGameConfig(data []byte) (config.GameConfig, error) {
	var f gameFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}
	g := f.Game

	if g.Grid.Rows <= 0 || g.Grid.Cols <= 0 {
		return nil, errors.New("grid rows and cols must be positive")
	}
	if g.MatchThreshold <= 0 {
		return nil, errors.New("match_threshold must be positive")
	}
	if g.MaxCascades <= 0 {
		return nil, errors.New("max_cascades must be positive")
	}
	if g.StartingBalance < 0 {
		return nil, errors.New("starting_balance must not be negative")
	}
	if g.Coin.Min <= 0 || g.Coin.Min > g.Coin.Max {
		return nil, fmt.Errorf("invalid coin bounds [%v, %v]", g.Coin.Min, g.Coin.Max)
	}
	if g.Multiplier.Min < 1 || g.Multiplier.Min > g.Multiplier.Max {
		return nil, fmt.Errorf("invalid multiplier bounds [%d, %d]", g.Multiplier.Min, g.Multiplier.Max)
	}
	b := g.Bonus
	if b.MinChance < 0 || b.MinChance > b.MaxChance || b.MaxChance > 1 {
		return nil, fmt.Errorf("invalid bonus chance bounds [%v, %v]", b.MinChance, b.MaxChance)
	}
	if b.LossStep < 0 || b.StreakStep < 0 || b.MultiplierMin <= 0 || b.MultiplierRange < 0 {
		return nil, errors.New("bonus steps and multiplier range must not be negative")
	}

	symbols := make([]model.Symbol, 0, len(g.Symbols))
	for _, s := range g.Symbols {
		if len(s.Payouts) != 3 {
			return nil, fmt.Errorf("symbol %s: expected 3 payout tiers, got %d", s.ID, len(s.Payouts))
		}
		symbols = append(symbols, model.Symbol{
			ID:          s.ID,
			Glyph:       s.Glyph,
			Name:        s.Name,
			Probability: s.Probability,
			Payouts: [3]decimal.Decimal{
				decimal.NewFromFloat(s.Payouts[0]),
				decimal.NewFromFloat(s.Payouts[1]),
				decimal.NewFromFloat(s.Payouts[2]),
			},
		})
	}
	table, err := model.NewSymbolTable(symbols)
	if err != nil {
		return nil, err
	}

	coinMin := decimal.NewFromFloat(g.Coin.Min)
	coinMax := decimal.NewFromFloat(g.Coin.Max)
	a := g.Animation

	return &gameConfig{
		symbols:         table,
		rows:            g.Grid.Rows,
		cols:            g.Grid.Cols,
		matchThreshold:  g.MatchThreshold,
		maxCascades:     g.MaxCascades,
		startingBalance: decimal.NewFromFloat(g.StartingBalance),
		coin: config.CoinParams{
			Min:     coinMin,
			Max:     coinMax,
			Initial: decimal.Min(coinMax, decimal.Max(coinMin, decimal.NewFromFloat(g.Coin.Initial))),
		},
		multiplier: config.MultiplierParams{
			Min:     g.Multiplier.Min,
			Max:     g.Multiplier.Max,
			Initial: min(g.Multiplier.Max, max(g.Multiplier.Min, g.Multiplier.Initial)),
		},
		bonus: config.BonusParams{
			MinChance:     b.MinChance,
			MaxChance:     b.MaxChance,
			StartChance:   min(b.MaxChance, max(b.MinChance, b.StartChance)),
			LossStep:      b.LossStep,
			StreakStep:    b.StreakStep,
			MultiplierMin: b.MultiplierMin,
			MultiplierMax: b.MultiplierMin + b.MultiplierRange,
		},
		animation: config.AnimationParams{
			SpinFrames:    max(0, a.SpinFrames),
			SpinDelayBase: a.SpinDelayBase,
			SpinDelayStep: a.SpinDelayStep,
			ScaleMax:      a.ScaleMax,
			ScaleMin:      a.ScaleMin,
			ScaleStep:     a.ScaleStep,
			ScaleDelay:    a.ScaleDelay,
			CascadeDelay:  a.CascadeDelay,
			RevealDelay:   a.RevealDelay,
			WinMessage:    a.WinMessage,
			BonusMessage:  a.BonusMessage,
			TotalMessage:  a.TotalMessage,
		},
	}, nil
}

func (c *gameConfig) Symbols() *model.SymbolTable {
	return c.symbols
}

func (c *gameConfig) Rows() int {
	return c.rows
}

func (c *gameConfig) Cols() int {
	return c.cols
}

func (c *gameConfig) MatchThreshold() int {
	return c.matchThreshold
}

func (c *gameConfig) MaxCascades() int {
	return c.maxCascades
}

func (c *gameConfig) StartingBalance() decimal.Decimal {
	return c.startingBalance
}

func (c *gameConfig) Coin() config.CoinParams {
	return c.coin
}

func (c *gameConfig) Multiplier() config.MultiplierParams {
	return c.multiplier
}

func (c *gameConfig) Bonus() config.BonusParams {
	return c.bonus
}

func (c *gameConfig) Animation() config.AnimationParams {
	return c.animation
}
