package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vertical-vanguard/internal/core"
	"github.com/vovakirdan/vertical-vanguard/internal/replay"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

// maxCatchUpSteps bounds how many simulation steps one frame may run after
// a stall.
const maxCatchUpSteps = 5

// Game is the contract the terminal adapter drives.
// Games contain pure logic; the adapter handles input, timing and display.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState

	// Result returns the recording of a finished game with its final state.
	Result() (replay.Recording, sim.Snapshot, bool)

	SetAutopilot(on bool)
	Autopilot() bool
}

// Factory creates a game for a new session.
type Factory func() (Game, error)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for running the game.
type Model struct {
	game      Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	clock     *core.FixedStep
	held      *heldKeys
	pulse     core.InputFrame // One-shot actions for the next step
	lastTick  time.Time
	gameState core.GameState
	status    string
	tooSmall  bool
	quitting  bool
	runSaved  bool // Whether the run has been journaled for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg.ScreenW and cfg.ScreenH are the minimum screen the game needs.
func NewModel(game Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		clock:  core.NewFixedStep(cfg.TickRate, maxCatchUpSteps),
		held:   newHeldKeys(DefaultHoldWindow),
		pulse:  core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Autopilot):
		m.game.SetAutopilot(!m.game.Autopilot())
		m.held.Release()
		return m, nil
	}

	switch action := m.keys.Action(msg); {
	case action == core.ActionQuit:
		quit := core.NewInputFrame()
		quit.Set(core.ActionQuit)
		m.game.Step(quit)
		m.quitting = true
		m.logger.Info("game quit", "score", m.gameState.Score)
		return m, tea.Quit
	case Holdable(action):
		m.held.Press(action)
	case action != core.ActionNone:
		m.pulse.Set(action)
	}

	return m, nil
}

// handleResize keeps the screen at least as large as the game needs.
// The playfield has a fixed size, so the game itself is never reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(max(msg.Width, m.config.ScreenW), m.config.ScreenH)
	m.help.Width = msg.Width
	m.tooSmall = msg.Width < m.config.ScreenW || msg.Height < m.config.ScreenH+2
	return m, nil
}

// handleTick runs the fixed steps due since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.clock.Step()
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	for range m.clock.Advance(elapsed) {
		m = m.step()
		if m.quitting {
			return m, tea.Quit
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// step runs one simulation tick with the held keys and pending one-shots.
func (m Model) step() Model {
	if m.pulse.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.status = ""
		m.pulse.Clear()
		m.held.Release()
		m.logger.Info("game restarted", "seed", m.config.Seed)
		return m
	}

	frame := m.pulse.Clone()
	m.held.Apply(&frame)
	m.pulse.Clear()

	result := m.game.Step(frame)
	m.held.Decay(m.clock.Step())
	m.gameState = result.State

	if m.gameState.Quit {
		m.quitting = true
	}
	if m.gameState.GameOver && !m.runSaved {
		m.status = m.saveRun()
		m.runSaved = true
	}
	return m
}

// saveRun journals the finished game and returns a status line.
func (m Model) saveRun() string {
	if m.store == nil {
		return "game over"
	}
	rec, final, ok := m.game.Result()
	if !ok {
		return "game over"
	}

	id, err := replay.Save(m.store, rec, final)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return "run not saved"
	}

	m.logger.Info("run saved", "id", id, "score", final.Score, "level", final.Level, "ticks", len(rec.Inputs))
	return fmt.Sprintf("run #%d saved, replay with: vanguard replay %d", id, id)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".vanguard", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		m.status = "screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		m.status = "screenshot failed"
		return
	}
	m.status = "screenshot saved to " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	if m.tooSmall {
		b.WriteString(warnStyle.Render(fmt.Sprintf("terminal too small, need %dx%d", m.config.ScreenW, m.config.ScreenH+2)))
		b.WriteString("\n")
	}
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
