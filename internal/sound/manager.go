package sound

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"mermaid_slot/internal/model"

	"go.uber.org/zap"
)

// Extension расширение файлов звуков в каталоге
const Extension = ".wav"

// Player воспроизводит загруженный клип с заданным усилением в дБ
type Player interface {
	Play(name string, clip []byte, gainDB float64) error
	Stop(name string)
}

// BellPlayer вместо клипа подаёт терминальный сигнал
type BellPlayer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewBellPlayer(out io.Writer) *BellPlayer {
	return &BellPlayer{out: out}
}

func (p *BellPlayer) Play(_ string, _ []byte, _ float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.out, "\a")
	return err
}

func (p *BellPlayer) Stop(string) {}

// Manager загружает звуки из каталога и проигрывает их с общей громкостью
type Manager struct {
	mu     sync.RWMutex
	dir    string
	clips  map[model.Sound][]byte
	volume float64
	player Player
	logger *zap.Logger
}

func NewManager(dir string, player Player, volume float64, logger *zap.Logger) *Manager {
	return &Manager{
		dir:    dir,
		clips:  make(map[model.Sound][]byte),
		volume: clampVolume(volume),
		player: player,
		logger: logger,
	}
}

// Load читает файлы звуков. Ошибка загрузки логируется, звук остаётся недоступным.
func (m *Manager) Load(sounds ...model.Sound) {
	for _, s := range sounds {
		path := filepath.Join(m.dir, string(s)+Extension)
		data, err := os.ReadFile(path)
		if err != nil {
			m.logger.Warn("load sound", zap.String("sound", string(s)), zap.String("path", path), zap.Error(err))
			continue
		}
		m.mu.Lock()
		m.clips[s] = data
		m.mu.Unlock()
	}
}

// Loaded проверяет, доступен ли звук
func (m *Manager) Loaded(s model.Sound) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clips[s]
	return ok
}

// Play проигрывает звук с начала. Незагруженный звук и нулевая громкость молча пропускаются.
func (m *Manager) Play(s model.Sound) {
	m.mu.RLock()
	clip, ok := m.clips[s]
	volume := m.volume
	m.mu.RUnlock()
	if !ok || volume == 0 {
		return
	}

	m.player.Stop(string(s))
	if err := m.player.Play(string(s), clip, GainDB(volume)); err != nil {
		m.logger.Debug("play sound", zap.String("sound", string(s)), zap.Error(err))
	}
}

func (m *Manager) Stop(s model.Sound) {
	m.player.Stop(string(s))
}

// SetVolume общая громкость в [0,1]
func (m *Manager) SetVolume(v float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clampVolume(v)
	return m.volume
}

func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Close останавливает и выгружает все звуки
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for s := range m.clips {
		m.player.Stop(string(s))
	}
	m.clips = make(map[model.Sound][]byte)
}

// GainDB переводит громкость в усиление, 0 ограничен снизу -80 дБ
func GainDB(volume float64) float64 {
	return 20 * math.Log10(math.Max(volume, 0.0001))
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, 1))
}
