package slot

import "mermaid_slot/internal/config"

type noDelayConfig struct {
	config.GameConfig
}

// WithoutDelays убирает паузы и кадры вращения, длительности сообщений остаются.
// Для сессий без живого экрана (HTTP).
func WithoutDelays(cfg config.GameConfig) config.GameConfig {
	return noDelayConfig{GameConfig: cfg}
}

func (c noDelayConfig) Animation() config.AnimationParams {
	a := c.GameConfig.Animation()
	a.SpinFrames = 0
	a.SpinDelayBase = 0
	a.SpinDelayStep = 0
	a.ScaleDelay = 0
	a.CascadeDelay = 0
	a.RevealDelay = 0
	return a
}
