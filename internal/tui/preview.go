// Package tui hosts the interactive terminal previewer: browse
// effects and emotions, watch them animate as colored glyphs, and
// tweak gradient and speed without leaving the shell.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/effects"
	"github.com/san-kum/glyphgen/internal/emotion"
	"github.com/san-kum/glyphgen/internal/engine"
	"github.com/san-kum/glyphgen/internal/palette"
	"github.com/san-kum/glyphgen/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type screen int

const (
	screenMenu screen = iota
	screenPreview
)

type model struct {
	screen screen
	cursor int

	effectNames []string
	selected    string
	effect      core.Effect

	eng       *engine.Engine
	emotion   string
	params    map[string]float64
	gradients []string
	gradient  int

	t       float64
	frame   int
	seed    int64
	speed   float64
	paused  bool
	started time.Time

	width  int
	height int
}

// NewPreviewApp builds the interactive previewer. seed drives the
// effect contexts so the session is reproducible.
func NewPreviewApp(seed int64) *model {
	names := effects.Default.List()
	ev := emotion.FromName("neutral")
	return &model{
		screen:      screenMenu,
		effectNames: names,
		eng:         engine.New(),
		emotion:     "neutral",
		params:      ev.VisualParams(),
		gradients:   palette.GradientNames(),
		seed:        seed,
		speed:       1.0,
		width:       80,
		height:      24,
		started:     time.Now(),
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(66*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenPreview {
			return m, nil
		}
		if !m.paused {
			m.t += 0.066 * m.speed
			m.frame++
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.effectNames)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.selected = m.effectNames[m.cursor]
			eff, err := effects.Default.Get(m.selected)
			if err != nil {
				return m, nil
			}
			m.effect = eff
			m.screen = screenPreview
			m.t = 0
			m.frame = 0
			return m, tick()
		}
	case screenPreview:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.screen = screenMenu
			m.paused = false
		case " ":
			m.paused = !m.paused
		case "g":
			m.gradient = (m.gradient + 1) % len(m.gradients)
		case "r":
			m.seed++
			if eff, err := effects.Default.Get(m.selected); err == nil {
				m.effect = eff
			}
			m.t = 0
			m.frame = 0
		case "+", "=":
			m.speed *= 1.25
		case "-":
			m.speed /= 1.25
			if m.speed < 0.1 {
				m.speed = 0.1
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	switch m.screen {
	case screenPreview:
		return m.previewView()
	default:
		return m.menuView()
	}
}

func (m model) menuView() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Render("glyphgen") + dim.Render(" · effect preview") + "\n\n")

	for i, name := range m.effectNames {
		cursor := "  "
		style := dim
		if i == m.cursor {
			cursor = cyan.Render("> ")
			style = white
		}
		b.WriteString("  " + cursor + style.Render(name) + "\n")
	}

	b.WriteString("\n  " + dimmer.Render("enter: preview  j/k: move  q: quit") + "\n")
	return b.String()
}

func (m model) previewView() string {
	cols := m.width - 4
	rows := m.height - 6
	if cols < 16 {
		cols = 16
	}
	if rows < 8 {
		rows = 8
	}

	ctx := core.NewContext(cols, rows, m.t, m.frame, m.seed, m.params)
	buf := m.eng.RenderBuffer(m.effect, ctx)

	status := viz.StatusRendering.Render("playing")
	if m.paused {
		status = viz.StatusPaused.Render("paused")
	}
	gradient := m.gradients[m.gradient]

	var b strings.Builder
	b.WriteString("  " + cyan.Render(m.selected) +
		dim.Render(fmt.Sprintf("  t=%.1fs  x%.2f  ", m.t, m.speed)) +
		yellow.Render(gradient) + "  " + status + "\n")
	b.WriteString(viz.BufferPreview(buf, gradient, cols, rows))
	b.WriteString("  " + dimmer.Render("space: pause  g: gradient  r: reseed  +/-: speed  esc: back  q: quit") + "\n")
	return b.String()
}

// Run starts the previewer in the alternate screen.
func Run(seed int64) error {
	p := tea.NewProgram(NewPreviewApp(seed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
