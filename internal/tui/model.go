// Package tui implements the interactive Morse player: transport keys,
// the encoded glyph line with a moving highlight, progress, and an
// output scope. The model polls its Controls on a short tick instead
// of holding playback state of its own, so the coordinator stays the
// single source of truth.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/sounder/internal/playback"
	"github.com/alkime/sounder/internal/tui/components/scope"
	"github.com/alkime/sounder/internal/tui/components/timeline"
	"github.com/alkime/sounder/internal/tui/style"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// refreshInterval is how often the model re-reads the session
	// snapshot. Finer than this buys nothing visually.
	refreshInterval = 50 * time.Millisecond

	displayWidth = 60
	scopeHeight  = 3
)

// tickMsg triggers a snapshot refresh.
type tickMsg struct{}

// Model is the top-level player UI.
type Model struct {
	controls Controls
	keys     KeyMap

	input textinput.Model
	spin  spinner.Model
	bar   progress.Model
	scope scope.Model
	line  timeline.Model

	snap    playback.Snapshot
	editing bool
}

// New creates the player model. All Controls fields except Levels must
// be set.
func New(controls Controls) Model {
	s := spinner.New()
	s.Spinner = spinner.Points

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	snap := controls.Snapshot()

	ti := textinput.New()
	ti.Placeholder = "text to play"
	ti.CharLimit = 256
	ti.Width = displayWidth
	ti.SetValue(snap.Text)

	return Model{
		controls: controls,
		keys:     DefaultKeyMap(),
		input:    ti,
		spin:     s,
		bar:      p,
		scope:    scope.New(controls.Levels, displayWidth, scopeHeight),
		line:     timeline.New(displayWidth),
		snap:     snap,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.scope.Init(), m.refresh())
}

func (m Model) refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles all messages.
func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		inner := min(msg.Width-4, displayWidth)
		if inner < 10 {
			inner = 10
		}
		m.line = m.line.SetWidth(inner)
		m.scope = m.scope.SetWidth(inner)

	case tickMsg:
		m.snap = m.controls.Snapshot()
		return m, m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		barModel, cmd := m.bar.Update(msg)
		m.bar = barModel.(progress.Model) //nolint:forcetypeassert // progress.Model always returns progress.Model
		cmds = append(cmds, cmd)

	case scope.TickMsg:
		var cmd tea.Cmd
		m.scope, cmd = m.scope.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.controls.Stop()
		return m, tea.Quit
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.controls.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.PlayPause):
		m.controls.PlayPause.Toggle()

	case key.Matches(msg, m.keys.Stop):
		m.controls.Stop()

	case key.Matches(msg, m.keys.Loop):
		m.controls.Loop.Toggle()

	case key.Matches(msg, m.keys.SpeedUp):
		m.controls.Speed.Inc()

	case key.Matches(msg, m.keys.SpeedDown):
		m.controls.Speed.Dec()

	case key.Matches(msg, m.keys.EditText):
		m.editing = true
		m.input.SetValue(m.snap.Text)
		m.input.CursorEnd()

		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	}

	m.snap = m.controls.Snapshot()

	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		m.controls.Apply(m.input.Value())
		m.editing = false
		m.input.Blur()
		m.snap = m.controls.Snapshot()

		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		m.input.SetValue(m.snap.Text)

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// View renders the player.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("sounder"))
	sb.WriteString(style.Subtitle.Render("  morse player"))
	sb.WriteString("\n\n")

	sb.WriteString(m.statusLine())
	sb.WriteString("\n\n")

	if m.editing {
		sb.WriteString(m.input.View())
	} else {
		sb.WriteString(style.Muted.Render("text: "))
		sb.WriteString(m.snap.Text)
	}
	sb.WriteString("\n")

	sb.WriteString(m.line.View(m.snap))
	sb.WriteString("\n")

	sb.WriteString(m.bar.ViewAs(m.snap.Progress))
	sb.WriteString(" ")
	sb.WriteString(style.Subtitle.Render(m.timeString()))
	sb.WriteString("\n\n")

	if m.controls.Levels != nil {
		sb.WriteString(m.scope.View())
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.helpLine())

	return sb.String()
}

func (m Model) statusLine() string {
	var s string

	switch m.snap.State {
	case playback.StatePlaying:
		s = m.spin.View() + " " + style.Title.Render("Playing")
	case playback.StatePaused:
		s = style.Warning.Render("Paused")
	case playback.StateFinished:
		s = style.Success.Render("Finished")
	default:
		if m.snap.CanPlay() {
			s = style.Subtitle.Render("Ready")
		} else {
			s = style.Subtitle.Render("Enter some text to play")
		}
	}

	s += style.Subtitle.Render(fmt.Sprintf("  %d wpm", m.snap.WPM))

	if m.snap.Looping {
		s += style.Muted.Render("  looping")
	}

	return s
}

func (m Model) timeString() string {
	return fmt.Sprintf("%.1fs / %.1fs",
		m.snap.CurrentTime.Seconds(),
		m.snap.Sequence.TotalDuration.Seconds())
}

func (m Model) helpLine() string {
	bindings := m.keys.ShortHelp()
	if m.editing {
		bindings = []key.Binding{m.keys.Accept, m.keys.Cancel}
	}

	var sb strings.Builder

	for i, b := range bindings {
		if i > 0 {
			sb.WriteString("  ")
		}

		sb.WriteString(style.Help.Render("["))
		sb.WriteString(style.Key.Render(b.Help().Key))
		sb.WriteString(style.Help.Render("] " + b.Help().Desc))
	}

	return sb.String()
}
