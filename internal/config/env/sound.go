package env

import (
	"fmt"
	"mermaid_slot/internal/config"
	"os"
	"strconv"
)

const (
	soundDirEnvName    = "SOUND_DIR"
	soundVolumeEnvName = "SOUND_VOLUME"

	defaultSoundDir = "sounds"
)

type soundConfig struct {
	dir    string
	volume float64
}

func NewSoundConfig() (config.SoundConfig, error) {
	dir := os.Getenv(soundDirEnvName)
	if len(dir) == 0 {
		dir = defaultSoundDir
	}

	volume := 0.5
	if raw := os.Getenv(soundVolumeEnvName); len(raw) != 0 {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", soundVolumeEnvName, err)
		}
		volume = parsed
	}

	return &soundConfig{dir: dir, volume: volume}, nil
}

func (cfg *soundConfig) Dir() string {
	return cfg.dir
}

func (cfg *soundConfig) Volume() float64 {
	return cfg.volume
}
