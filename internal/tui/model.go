// Package tui provides the Bubble Tea prayer walkthrough.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/lumen/internal/bilingual"
	"github.com/verte-zerg/lumen/internal/config"
	"github.com/verte-zerg/lumen/internal/content"
	"github.com/verte-zerg/lumen/internal/logging"
	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/rosary"
	"github.com/verte-zerg/lumen/internal/schedule"
	"github.com/verte-zerg/lumen/internal/stats"
)

// SessionStore is the part of the store the walkthrough needs.
type SessionStore interface {
	RecordSession(ctx context.Context, category model.MysteryCategory, completedAt time.Time, durationSeconds *int, meditationType *string) (model.PrayerSessionRecord, error)
	AllSessions(ctx context.Context) ([]model.PrayerSessionRecord, error)
	SetDisplayMode(ctx context.Context, mode model.DisplayMode) error
}

// Options configures a walkthrough.
type Options struct {
	Config         model.Config
	Store          SessionStore
	Library        *content.Library
	Clock          schedule.Clock
	Logger         *zap.Logger
	MeditationType *string
}

// Model implements the Bubble Tea prayer UI.
type Model struct {
	config         model.Config
	store          SessionStore
	lib            *content.Library
	clock          schedule.Clock
	logger         *zap.Logger
	meditationType *string
	primaryLabel   string
	secondaryLabel string

	seq  rosary.Sequence
	pos  int
	mode model.DisplayMode

	width  int
	height int
	vp     viewport.Model

	startedAt time.Time
	finished  bool
	recorded  *model.PrayerSessionRecord
	streaks   model.StreakState
	errMsg    string
}

var (
	primaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	secondaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mysteryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a prayer walkthrough for opts.Config.Category.
func NewModel(opts Options) (*Model, error) {
	seq, err := rosary.Build(opts.Config.Category, opts.Library)
	if err != nil {
		return nil, fmt.Errorf("failed to build rosary: %w", err)
	}
	clock := opts.Clock
	if clock == nil {
		clock = schedule.RealClock{}
	}
	m := &Model{
		config:         opts.Config,
		store:          opts.Store,
		lib:            opts.Library,
		clock:          clock,
		logger:         logging.OrNop(opts.Logger),
		meditationType: opts.MeditationType,
		primaryLabel:   langLabel(opts.Config.PrimaryLang),
		secondaryLabel: langLabel(opts.Config.SecondaryLang),
		seq:            seq,
		mode:           opts.Config.Mode,
		vp:             viewport.New(0, 0),
		startedAt:      clock.Now(),
	}
	m.loadFooterStats()
	m.refreshContent()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeySpace, tea.KeyEnter, tea.KeyRight:
			m.advance()
			return m, nil
		case tea.KeyBackspace, tea.KeyLeft:
			m.back()
			return m, nil
		case tea.KeyRunes:
			switch string(msg.Runes) {
			case "q":
				return m, tea.Quit
			case "m":
				m.cycleMode()
				return m, nil
			case "l":
				m.advance()
				return m, nil
			case "h":
				m.back()
				return m, nil
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{header, m.renderBody(0), footer}, "\n\n")
	}
	contentWidth := m.contentWidth()
	head := lipgloss.Place(m.width, lipgloss.Height(header), lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(contentWidth).Render(header))
	body := lipgloss.Place(m.width, m.vp.Height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(contentWidth).Render(m.vp.View()))
	foot := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return head + "\n" + body + "\n" + foot
}

// Position returns the index of the current step.
func (m *Model) Position() int {
	return m.pos
}

// Finished reports whether the last step has been passed.
func (m *Model) Finished() bool {
	return m.finished
}

// Mode returns the active display mode.
func (m *Model) Mode() model.DisplayMode {
	return m.mode
}

func (m *Model) advance() {
	if m.finished {
		return
	}
	if m.pos < len(m.seq.Steps)-1 {
		m.pos++
		m.refreshContent()
		return
	}
	m.finish()
	m.refreshContent()
}

func (m *Model) back() {
	if m.finished || m.pos == 0 {
		return
	}
	m.pos--
	m.refreshContent()
}

func (m *Model) cycleMode() {
	m.mode = m.mode.Next()
	m.refreshContent()
	if m.store == nil {
		return
	}
	if err := m.store.SetDisplayMode(context.Background(), m.mode); err != nil {
		m.logger.Warn("failed to save display mode", zap.String("mode", m.mode.String()), zap.Error(err))
		m.errMsg = "display mode not saved"
	}
}

func (m *Model) finish() {
	m.finished = true
	if m.store == nil {
		return
	}
	completedAt := m.clock.Now()
	seconds := int(completedAt.Sub(m.startedAt).Seconds())
	var duration *int
	if seconds > 0 {
		duration = &seconds
	}
	rec, err := m.store.RecordSession(context.Background(), m.config.Category, completedAt, duration, m.meditationType)
	if err != nil {
		m.logger.Error("failed to save session", zap.String("category", m.config.Category.String()), zap.Error(err))
		m.errMsg = "session not saved"
		return
	}
	m.recorded = &rec
	m.logger.Info("session recorded",
		zap.Int64("id", rec.ID),
		zap.String("category", rec.Category.String()),
		zap.Int("duration_seconds", seconds))
	m.loadFooterStats()
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	sessions, err := m.store.AllSessions(context.Background())
	if err != nil {
		m.logger.Warn("failed to load session stats", zap.Error(err))
		return
	}
	m.streaks = stats.NewAggregator(sessions, m.clock).Streaks()
}

func (m *Model) contentWidth() int {
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	headerHeight := lipgloss.Height(m.renderHeader())
	bodyHeight := m.height - headerHeight - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.vp.Width = m.contentWidth()
	m.vp.Height = bodyHeight
	m.refreshContent()
}

func (m *Model) refreshContent() {
	m.vp.SetContent(m.renderBody(m.vp.Width))
	m.vp.GotoTop()
}

func (m *Model) currentStep() rosary.Step {
	return m.seq.Steps[m.pos]
}

func (m *Model) renderHeader() string {
	if m.finished {
		return titleStyle.Render(m.seq.Name)
	}
	step := m.currentStep()
	lines := []string{titleStyle.Render(m.seq.Name)}
	if step.Mystery != nil {
		mystery := fmt.Sprintf("%s Mystery: %s", ordinal(m.seq.Decade(m.pos)), step.Mystery.Title)
		lines = append(lines, mysteryStyle.Render(mystery))
		var detail []string
		if step.Mystery.Reference != "" {
			detail = append(detail, step.Mystery.Reference)
		}
		if step.Mystery.Fruit != "" {
			detail = append(detail, "Fruit: "+step.Mystery.Fruit)
		}
		if len(detail) > 0 {
			lines = append(lines, footerStyle.Render(strings.Join(detail, "  ·  ")))
		}
	}
	lines = append(lines, "", titleStyle.Render(step.Label()))
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(width int) string {
	if m.finished {
		lines := []string{"The Rosary is complete."}
		if m.recorded != nil {
			lines = append(lines, fmt.Sprintf("Session saved at %s.", m.recorded.CompletedAt.Format("15:04")))
		}
		lines = append(lines, "", "Press q to quit.")
		return strings.Join(lines, "\n")
	}
	prayer, ok := m.lib.Prayer(m.currentStep().PrayerID)
	if !ok {
		return errorStyle.Render("Prayer text missing.")
	}
	return renderPrayer(bilingual.FormatLines(prayer.Text, m.mode), width)
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Step %d/%d", minInt(m.pos+1, len(m.seq.Steps)), len(m.seq.Steps)),
		fmt.Sprintf("Progress %d%%", m.progress()),
		m.config.Category.Title(),
		fmt.Sprintf("Streak %s · Best %s", pluralDays(m.streaks.CurrentStreak), pluralDays(m.streaks.LongestStreak)),
		m.modeLabel(),
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.errMsg != "" {
		footer += "  " + errorStyle.Render(m.errMsg)
	}
	return footer
}

func (m *Model) progress() int {
	if m.finished {
		return 100
	}
	return m.seq.Progress(m.pos)
}

func langLabel(tag string) string {
	if tag == "" {
		return ""
	}
	return config.LangName(tag)
}

func (m *Model) modeLabel() string {
	primary, secondary := m.primaryLabel, m.secondaryLabel
	if primary == "" {
		primary = "primary"
	}
	if secondary == "" {
		secondary = "secondary"
	}
	switch m.mode {
	case model.SecondaryOnly:
		return secondary
	case model.PrimaryThenSecondary:
		return primary + " + " + secondary
	case model.SecondaryThenPrimary:
		return secondary + " + " + primary
	default:
		return primary
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func ordinal(n int) string {
	names := []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh"}
	if n >= 1 && n <= len(names) {
		return names[n-1]
	}
	return fmt.Sprintf("#%d", n)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
