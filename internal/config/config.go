package config

import (
	"mermaid_slot/internal/model"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type GameConfig interface {
	Symbols() *model.SymbolTable
	Rows() int
	Cols() int
	MatchThreshold() int
	MaxCascades() int
	StartingBalance() decimal.Decimal
	Coin() CoinParams
	Multiplier() MultiplierParams
	Bonus() BonusParams
	Animation() AnimationParams
}

type CoinParams struct {
	Min     decimal.Decimal
	Max     decimal.Decimal
	Initial decimal.Decimal
}

type MultiplierParams struct {
	Min     int
	Max     int
	Initial int
}

type BonusParams struct {
	MinChance     float64
	MaxChance     float64
	StartChance   float64
	LossStep      float64 // прибавка шанса за проигранный раунд
	StreakStep    float64 // прибавка за повторный выигрыш без бонуса
	MultiplierMin float64
	MultiplierMax float64 // MultiplierMin + диапазон
}

type AnimationParams struct {
	SpinFrames    int
	SpinDelayBase time.Duration
	SpinDelayStep time.Duration
	ScaleMax      int
	ScaleMin      int
	ScaleStep     int
	ScaleDelay    time.Duration
	CascadeDelay  time.Duration
	RevealDelay   time.Duration
	WinMessage    time.Duration
	BonusMessage  time.Duration
	TotalMessage  time.Duration
}

type HTTPConfig interface {
	Address() string
	SpinRate() float64 // спинов в секунду на игрока
	SpinBurst() int
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type AccountsConfig interface {
	Backend() string // "file" или "postgres"
	FilePath() string
	PasswordHashing() bool
}

type LogConfig interface {
	Level() string
	Format() string
	File() string // пусто: stderr
}

type SoundConfig interface {
	Dir() string
	Volume() float64
}
