// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeboard/internal/clock"
	"github.com/verte-zerg/typeboard/internal/model"
	"github.com/verte-zerg/typeboard/internal/session"
	statsPkg "github.com/verte-zerg/typeboard/internal/stats"
)

const traceWindow = 5

// ContentSource serves the reference text for a new session.
type ContentSource interface {
	Get(ctx context.Context) model.Content
}

type contentMsg struct {
	content model.Content
}

// tickMsg carries the generation of the session it was scheduled for so
// ticks from a previous run are dropped after a restart.
type tickMsg struct {
	gen int
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctx      context.Context
	source   ContentSource
	clock    clock.Clock
	duration int
	tick     time.Duration
	logger   *slog.Logger

	width  int
	height int

	loading bool
	spinner spinner.Model
	input   textinput.Model

	session *session.Session
	view    session.View
	gen     int
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	timerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#BFBFBF"))
	nextStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock handed to each session.
func WithClock(c clock.Clock) Option {
	return func(m *Model) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithDuration sets the countdown length in seconds.
func WithDuration(seconds int) Option {
	return func(m *Model) {
		if seconds > 0 {
			m.duration = seconds
		}
	}
}

// WithLogger sets the logger. The terminal is owned by the UI, so it
// should write to a file.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModel constructs a typing TUI model.
func NewModel(ctx context.Context, source ContentSource, opts ...Option) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:      ctx,
		source:   source,
		clock:    clock.Real(),
		duration: session.DefaultDuration,
		tick:     time.Second,
		logger:   slog.Default(),
		loading:  true,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = timerStyle

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "start typing"
	m.input.CharLimit = 64
	m.input.Focus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchContent(), textinput.Blink)
}

func (m *Model) fetchContent() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		if source == nil {
			return contentMsg{content: model.DefaultContent()}
		}
		return contentMsg{content: source.Get(ctx)}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.tick, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case contentMsg:
		m.startSession(msg.content)
		return m, nil
	case tickMsg:
		if msg.gen != m.gen || m.session == nil {
			return m, nil
		}
		if !m.session.Tick() {
			return m, nil
		}
		m.view = m.session.View()
		if m.view.Finished {
			m.logResult()
			return m, nil
		}
		return m, m.tickCmd()
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}
	if m.loading || m.session == nil {
		return m, nil
	}
	if m.view.Finished {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyTab {
			return m, m.restart()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value := m.input.Value()
	if value == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.applyInput(value))
}

// applyInput hands the full field value to the session. It returns the
// first countdown tick when the value started the session.
func (m *Model) applyInput(value string) tea.Cmd {
	wasStarted := m.session.State() != session.NotStarted
	m.session.Input(value)
	m.view = m.session.View()
	if m.view.Input != value {
		// The session committed a word; the field restarts empty.
		m.input.SetValue(m.view.Input)
	}
	if m.view.Finished {
		m.logResult()
		return nil
	}
	if !wasStarted && m.session.State() == session.InProgress {
		return m.tickCmd()
	}
	return nil
}

func (m *Model) startSession(c model.Content) {
	m.loading = false
	m.gen++
	m.session = session.New(c, m.clock, session.WithDuration(m.duration))
	m.view = m.session.View()
	m.input.Reset()
	m.logger.Debug("session ready", "title", c.Title, "words", c.WordCount())
}

func (m *Model) restart() tea.Cmd {
	m.loading = true
	m.gen++
	m.session = nil
	m.input.Reset()
	return tea.Batch(m.spinner.Tick, m.fetchContent())
}

func (m *Model) logResult() {
	if m.view.Metrics == nil {
		return
	}
	mt := m.view.Metrics
	m.logger.Info("session finished",
		"correct", mt.Correct,
		"wrong", mt.Wrong,
		"accuracy", mt.Accuracy,
		"elapsed_seconds", mt.ElapsedSeconds,
		"wpm", mt.WPM,
	)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch {
	case m.loading || m.session == nil:
		content = m.spinner.View() + " Fetching today's text..."
	case m.view.Finished:
		content = renderResults(m.view)
	default:
		content = m.renderPractice()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	body := lipgloss.NewStyle().Width(m.contentWidth()).Render(content)
	footer := footerStyle.Render(m.renderFooter())
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	main := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return main + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderPractice() string {
	width := 0
	if m.width > 0 {
		width = m.contentWidth()
	}
	v := m.view
	lines := []string{
		titleStyle.Render(v.Title),
		timerStyle.Render(fmt.Sprintf("%d", v.TimerRemaining)),
		"",
		wrapStyledRunes(buildStyledWords(v.Current, v.Input), width),
	}
	if len(v.Next) > 0 {
		lines = append(lines, wrapStyledRunes(buildPlainWords(v.Next, nextStyle), width))
	}
	lines = append(lines, "", m.input.View())
	if v.ShowTips {
		lines = append(lines, "", footerStyle.Render(session.Tips))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.loading || m.session == nil {
		return "Esc quit"
	}
	if m.view.Finished {
		return "Enter practice again  Esc quit"
	}
	return fmt.Sprintf("Chunk %d/%d  Esc quit", m.view.ChunkIndex+1, m.view.Chunks)
}

// renderResults formats the frozen metrics, progress trace and sources.
func renderResults(v session.View) string {
	var mt session.Metrics
	if v.Metrics != nil {
		mt = *v.Metrics
	}
	judged := mt.Correct + mt.Wrong
	lines := []string{
		titleStyle.Render(v.Title),
		"",
		fmt.Sprintf("Accuracy:  %d / %d = %.0f%%", mt.Correct, judged, mt.Accuracy*100),
		fmt.Sprintf("time(s):  %d", mt.ElapsedSeconds),
		fmt.Sprintf("wpm:  %.0f", mt.WPM),
	}
	if len(v.Trace) > 0 {
		rates := statsPkg.MovingAverage(statsPkg.Rates(v.Trace), traceWindow)
		lines = append(lines, "progress:  "+statsPkg.Sparkline(rates))
	}
	if len(v.Missed) > 0 {
		lines = append(lines, "missed:  "+incorrectStyle.Render(strings.Join(v.Missed, ", ")))
	}
	if len(v.Sources) > 0 {
		lines = append(lines, "", "Sources of the text")
		for _, src := range v.Sources {
			lines = append(lines, "  "+src)
		}
	}
	return strings.Join(lines, "\n")
}

// Run starts the UI on the alternate screen and blocks until it exits.
func Run(ctx context.Context, source ContentSource, opts ...Option) error {
	program := tea.NewProgram(NewModel(ctx, source, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return nil
}
