package env

import (
	"fmt"
	"mermaid_slot/internal/config"
	"os"
	"strconv"
)

const (
	httpAddressEnvName = "HTTP_ADDRESS"
	spinRateEnvName    = "SPIN_RATE"
	spinBurstEnvName   = "SPIN_BURST"

	defaultHTTPAddress = "localhost:8080"
	defaultSpinRate    = 5.0
	defaultSpinBurst   = 5
)

type httpConfig struct {
	address   string
	spinRate  float64
	spinBurst int
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	address := os.Getenv(httpAddressEnvName)
	if len(address) == 0 {
		address = defaultHTTPAddress
	}

	spinRate := defaultSpinRate
	if raw := os.Getenv(spinRateEnvName); len(raw) != 0 {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", spinRateEnvName, raw)
		}
		spinRate = parsed
	}

	spinBurst := defaultSpinBurst
	if raw := os.Getenv(spinBurstEnvName); len(raw) != 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid %s: %q", spinBurstEnvName, raw)
		}
		spinBurst = parsed
	}

	return &httpConfig{
		address:   address,
		spinRate:  spinRate,
		spinBurst: spinBurst,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.address
}

func (cfg *httpConfig) SpinRate() float64 {
	return cfg.spinRate
}

func (cfg *httpConfig) SpinBurst() int {
	return cfg.spinBurst
}
