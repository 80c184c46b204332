package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"mermaid_slot/internal/model"

	"github.com/shopspring/decimal"
)

const (
	clearScreen = "\033[H\033[2J"
	dim         = "\033[2m"
	bold        = "\033[1m"
	reset       = "\033[0m"
)

// SoundPlayer проигрыватель звуковых событий
type SoundPlayer interface {
	Play(s model.Sound)
}

// Presenter текстовый вывод игры в терминал.
// Каждое обновление перерисовывает экран целиком.
type Presenter struct {
	mu    sync.Mutex
	out   io.Writer
	sound SoundPlayer
	ansi  bool
	now   func() time.Time

	player   string
	grid     model.Grid
	scale    map[[2]int]int
	balance  decimal.Decimal
	chance   float64
	message  string
	msgUntil time.Time
}

// New ansi=false отключает очистку экрана и цвета
func New(out io.Writer, sound SoundPlayer, ansi bool) *Presenter {
	return &Presenter{
		out:   out,
		sound: sound,
		ansi:  ansi,
		now:   time.Now,
		scale: make(map[[2]int]int),
	}
}

// SetPlayer имя игрока в заголовке
func (p *Presenter) SetPlayer(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.player = name
}

func (p *Presenter) RenderGrid(grid model.Grid) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grid = grid.Clone()
	clear(p.scale)
	p.draw()
}

func (p *Presenter) RenderCell(row, col int, symbol *model.Symbol) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if row >= len(p.grid) || col >= len(p.grid[row]) {
		return
	}
	p.grid[row][col] = symbol
	delete(p.scale, [2]int{row, col})
	p.draw()
}

func (p *Presenter) RenderCellScale(row, col, percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scale[[2]int{row, col}] = percent
	p.draw()
}

func (p *Presenter) ShowMessage(text string, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = text
	p.msgUntil = p.now().Add(duration)
	p.draw()
}

func (p *Presenter) UpdateBalance(balance decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balance = balance
	p.draw()
}

func (p *Presenter) UpdateBonusChance(chance float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chance = chance
	p.draw()
}

func (p *Presenter) PlaySound(s model.Sound) {
	if p.sound != nil {
		p.sound.Play(s)
	}
}

// Print вывод вне игрового поля: ответы на команды, справка
func (p *Presenter) Print(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *Presenter) draw() {
	var sb strings.Builder
	if p.ansi {
		sb.WriteString(clearScreen)
	}

	header := "Secret of the Mermaid"
	if p.player != "" {
		header += " | Player: " + p.player
	}
	sb.WriteString(p.style(bold, header))
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Balance: $%s   Mermaid Chance: %.0f%%\n\n", p.balance.StringFixed(2), p.chance*100)

	for r := range p.grid {
		for c := range p.grid[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.cell(r, c))
		}
		sb.WriteByte('\n')
	}

	if p.message != "" && !p.now().After(p.msgUntil) {
		sb.WriteByte('\n')
		sb.WriteString(p.message)
		sb.WriteByte('\n')
	}
	_, _ = io.WriteString(p.out, sb.String())
}

func (p *Presenter) cell(r, c int) string {
	s := p.grid[r][c]
	if s == nil {
		return "  "
	}
	glyph := s.Glyph
	if scale, ok := p.scale[[2]int{r, c}]; ok {
		if scale < 100 {
			return p.style(dim, glyph)
		}
		if scale > 100 {
			return p.style(bold, glyph)
		}
	}
	return glyph
}

func (p *Presenter) style(code, text string) string {
	if !p.ansi {
		return text
	}
	return code + text + reset
}
