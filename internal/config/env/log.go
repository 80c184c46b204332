package env

import (
	"mermaid_slot/internal/config"
	"os"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logFormatEnvName = "LOG_FORMAT"
	logFileEnvName   = "LOG_FILE"
)

type logConfig struct {
	level  string
	format string
	file   string
}

func NewLogConfig() config.LogConfig {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}
	format := os.Getenv(logFormatEnvName)
	if len(format) == 0 {
		format = "console"
	}
	return &logConfig{
		level:  level,
		format: format,
		file:   os.Getenv(logFileEnvName),
	}
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Format() string {
	return cfg.format
}

func (cfg *logConfig) File() string {
	return cfg.file
}
