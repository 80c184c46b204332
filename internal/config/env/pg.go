package env

import (
	"errors"
	"mermaid_slot/internal/config"
	"os"
)

const (
	dsnName = "PG_DSN"
)

var ErrPGDSNNotFound = errors.New("pg dsn not found")

type pgConfig struct {
	dsn string
}

func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, ErrPGDSNNotFound
	}

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
