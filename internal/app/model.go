package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/swingmatch/swingmatch/internal/capture"
	"github.com/swingmatch/swingmatch/internal/db"
	"github.com/swingmatch/swingmatch/internal/fixtures"
	"github.com/swingmatch/swingmatch/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Tab is a top-level screen.
type Tab int

const (
	TabHome Tab = iota
	TabLibrary
	TabRecord
	TabAILab
	TabMatch
	TabProgress
	TabMore
	tabCount
)

var tabNames = [...]string{"Home", "Library", "Record", "AI Lab", "Match", "Progress", "More"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return tabNames[t]
}

// ParseTab resolves a fixture navigation target such as "ailab".
func ParseTab(s string) (Tab, bool) {
	key := strings.ReplaceAll(strings.ToLower(s), " ", "")
	for t := TabHome; t < tabCount; t++ {
		if strings.ReplaceAll(strings.ToLower(t.String()), " ", "") == key {
			return t, true
		}
	}
	return TabHome, false
}

// LibraryReader is the read side of the local library.
type LibraryReader interface {
	RecentSessions(ctx context.Context, stroke string, limit int) ([]db.Session, error)
	PendingAnalyses(ctx context.Context) ([]db.AnalysisRequest, error)
	CountSessions(ctx context.Context) (int, error)
}

// Deps are the collaborators and settings the model is built from.
type Deps struct {
	Camera    capture.Camera
	Library   capture.Library
	Analyzer  capture.Analyzer
	Store     LibraryReader // optional
	Scheduler capture.Scheduler
	Fixtures  *fixtures.Set
	Logger    *zap.Logger

	Capture    capture.Config
	OpTimeout  time.Duration
	Theme      ui.Theme
	Onboarding bool
}

const toastTTL = 5 * time.Second

type toast struct {
	id    int
	text  string
	isErr bool
}

// Model is the root bubbletea model for the swingmatch TUI.
type Model struct {
	deps   Deps
	logger *zap.Logger
	fx     *fixtures.Set

	// Theme
	theme  ui.Theme
	styles ui.Styles

	// Navigation
	tab Tab

	// Screens
	record     recordState
	home       homeState
	library    libraryState
	ailab      ailabState
	match      matchState
	progress   progressState
	more       moreState
	onboarding onboardingState

	// Profile, as chosen during onboarding
	skillLevel string
	handedness string

	// Local library snapshot
	localSessions []db.Session
	pending       []db.AnalysisRequest
	sessionCount  int

	// Toast
	toast   toast
	toastID int

	// UI state
	width  int
	height int
}

// New creates a model on the Home tab.
func New(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Fixtures == nil {
		deps.Fixtures = fixtures.MustLoad()
	}
	if deps.OpTimeout <= 0 {
		deps.OpTimeout = 10 * time.Second
	}

	m := Model{
		deps:   deps,
		logger: deps.Logger,
		fx:     deps.Fixtures,
		theme:  deps.Theme,
		styles: ui.NewStyles(deps.Theme),
		tab:    TabHome,
	}
	m.record = newRecordState(deps, m.styles)
	m.progress = newProgressState(m.fx)
	m.match.available = m.fx.User.Available
	m.more = newMoreState(m.fx)
	m.skillLevel = m.fx.User.SkillLevel
	m.handedness = m.fx.User.Handedness
	m.onboarding.active = deps.Onboarding
	return m
}

// Init checks camera permission without prompting and loads the local
// library.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		checkPermissionCmd(m.record.gate, m.deps.OpTimeout),
		loadLibraryCmd(m.deps.Store, "", m.deps.OpTimeout),
	)
}

// Theme returns the active theme.
func (m Model) Theme() ui.Theme { return m.theme }

// ActiveTab returns the visible tab.
func (m Model) ActiveTab() Tab { return m.tab }

// Session exposes the capture session.
func (m Model) Session() *capture.Session { return m.record.session }

// Toast returns the visible toast text, if any.
func (m Model) Toast() string { return m.toast.text }

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.record.editor.setWidth(msg.Width)
		return m, nil

	case CaptureTickMsg:
		return m.handleCaptureTick(msg)

	case PermissionCheckedMsg:
		return m.handlePermissionChecked(msg)

	case PermissionAnsweredMsg:
		return m.handlePermissionAnswered(msg)

	case CaptureStartedMsg:
		return m.handleCaptureStarted(msg)

	case CaptureStoppedMsg:
		return m.handleCaptureStopped(msg)

	case SubmitDoneMsg:
		return m.handleSubmitDone(msg)

	case spinner.TickMsg:
		if !m.record.session.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.record.editor.spinner, cmd = m.record.editor.spinner.Update(msg)
		return m, cmd

	case LibraryLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("load library", zap.Error(msg.Err))
			return m, nil
		}
		m.localSessions = msg.Sessions
		m.pending = msg.Pending
		m.sessionCount = msg.Count
		return m, nil

	case ClearToastMsg:
		if msg.ID == m.toast.id {
			m.toast = toast{}
		}
		return m, nil
	}

	// Anything else (cursor blink and the like) belongs to the review editor.
	if m.tab == TabRecord && m.record.session.State() == capture.StateReview {
		cmd := m.record.editor.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == KeyCtrlC {
		return m.quit()
	}

	if m.onboarding.active {
		return m.handleOnboardingKey(key)
	}

	// The review editor owns the keyboard while it is open.
	if m.tab == TabRecord && m.record.session.State() == capture.StateReview {
		return m.handleReviewKey(msg)
	}

	switch key {
	case KeyQuit, KeyQuitUpper:
		return m.quit()

	case KeyTheme:
		m.toggleTheme()
		return m, nil

	case KeyTab:
		return m.switchTab((m.tab + 1) % tabCount)

	case KeyShiftTab:
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	}

	if t, ok := tabKeys[key]; ok {
		return m.switchTab(t)
	}

	switch m.tab {
	case TabHome:
		return m.handleHomeKey(key)
	case TabLibrary:
		return m.handleLibraryKey(key)
	case TabRecord:
		return m.handleRecordKey(key)
	case TabAILab:
		return m.handleAILabKey(key)
	case TabMatch:
		return m.handleMatchKey(key)
	case TabProgress:
		return m.handleProgressKey(key)
	case TabMore:
		return m.handleMoreKey(key)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	h := m.record.session.Cancel()
	if h == "" {
		return m, tea.Quit
	}
	return m, tea.Sequence(stopCaptureCmd(m.deps.Camera, m.record.session.Attempt(), h, m.deps.OpTimeout), tea.Quit)
}

func (m *Model) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.styles = ui.NewStyles(m.theme)
	m.record.editor.applyStyles(m.styles)
	m.logger.Debug("theme toggled", zap.Stringer("theme", m.theme))
}

// switchTab shows t. Leaving the record screen abandons a countdown or
// recording in progress.
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	if t == m.tab {
		return m, nil
	}

	var cmds []tea.Cmd
	if m.tab == TabRecord && m.record.session.InFlight() {
		if cmd := m.cancelCapture(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.tab = t
	switch t {
	case TabHome, TabLibrary, TabAILab:
		cmds = append(cmds, loadLibraryCmd(m.deps.Store, m.library.strokeFilter(m.fx), m.deps.OpTimeout))
	}
	return m, tea.Batch(cmds...)
}

// showToast displays text for toastTTL.
func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toastID++
	m.toast = toast{id: m.toastID, text: text, isErr: isErr}
	return clearToastCmd(m.toastID)
}

// clearToastCmd fires after a delay to clear a toast.
func clearToastCmd(id int) tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return ClearToastMsg{ID: id}
	})
}

// loadLibraryCmd reads local sessions and queued analyses from SQLite.
func loadLibraryCmd(store LibraryReader, stroke string, timeout time.Duration) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		sessions, err := store.RecentSessions(ctx, stroke, 20)
		if err != nil {
			return LibraryLoadedMsg{Err: err}
		}
		pending, err := store.PendingAnalyses(ctx)
		if err != nil {
			return LibraryLoadedMsg{Err: err}
		}
		count, err := store.CountSessions(ctx)
		if err != nil {
			return LibraryLoadedMsg{Err: err}
		}
		return LibraryLoadedMsg{Sessions: sessions, Pending: pending, Count: count}
	}
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var body string
	if m.onboarding.active {
		body = m.renderOnboarding()
	} else {
		switch m.tab {
		case TabHome:
			body = m.renderHome()
		case TabLibrary:
			body = m.renderLibrary()
		case TabRecord:
			body = m.renderRecord()
		case TabAILab:
			body = m.renderAILab()
		case TabMatch:
			body = m.renderMatch()
		case TabProgress:
			body = m.renderProgress()
		case TabMore:
			body = m.renderMore()
		}
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.styles.Divider.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.fitBody(body))
	sections = append(sections, m.styles.Divider.Render(strings.Repeat("─", m.width)))
	if m.toast.text != "" {
		sections = append(sections, m.renderToast())
	}
	sections = append(sections, m.renderFooter())

	return m.styles.App.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("SWINGMATCH")
	if m.onboarding.active {
		return title + m.styles.Dim.Render("  welcome")
	}

	var tabs []string
	for t := TabHome; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	var dot string
	switch m.record.session.State() {
	case capture.StateCountdown, capture.StateRecording:
		dot = "  " + m.styles.RecordingDot.Render("● REC")
	}

	return title + "  " + strings.Join(tabs, "") + dot
}

// fitBody pads or trims the body to the space between header and footer.
func (m Model) fitBody(body string) string {
	lines := strings.Split(body, "\n")
	height := m.bodyHeight()
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = padRight(truncateToWidth(l, m.width), m.width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) bodyHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + divider(1) + divider(1) + toast(1) + footer(1)
	return max(5, m.height-5)
}

func (m Model) renderToast() string {
	if m.toast.isErr {
		return m.styles.Toast.Render("! " + m.toast.text)
	}
	return m.styles.Success.Render("✓ " + m.toast.text)
}

func (m Model) renderFooter() string {
	var parts []string
	add := func(key, desc string) {
		parts = append(parts, m.styles.FooterKey.Render(key)+m.styles.FooterDesc.Render(" "+desc))
	}

	switch {
	case m.onboarding.active:
		add("↑↓", "Choose")
		add("Enter", "Next")
		add("←", "Back")
		add("Esc", "Skip")
	case m.tab == TabRecord && m.record.session.State() == capture.StateReview:
		add("Tab", "Field")
		add("Enter", "Add tag")
		add("x", "Remove tag")
		add("Ctrl+S", "Save")
		add("Ctrl+U", "Analyze")
		add("Esc", "Discard")
	default:
		add("1-7", "Tabs")
		for _, h := range m.screenHints() {
			add(h[0], h[1])
		}
		add("t", m.theme.Toggle().String()+" theme")
		add("q", "Quit")
	}

	return strings.Join(parts, "  ")
}

func (m Model) screenHints() [][2]string {
	switch m.tab {
	case TabHome:
		return [][2]string{{"↑↓", "Select"}, {"Enter", "Open"}}
	case TabLibrary:
		return [][2]string{{"←→", "Section"}, {"f", "Filter"}, {"↑↓", "Scroll"}}
	case TabRecord:
		return m.recordHints()
	case TabAILab:
		return [][2]string{{"↑↓", "Select"}}
	case TabMatch:
		return [][2]string{{"a", "Availability"}, {"v", "List/Map"}}
	case TabProgress:
		return [][2]string{{"←→", "Range"}}
	case TabMore:
		return [][2]string{{"↑↓", "Select"}, {"Enter", "Toggle"}}
	}
	return nil
}

// Helpers

func padRight(s string, width int) string {
	// Get visible length (ignoring ANSI codes)
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncateToWidth cuts s to width display cells, keeping escape sequences
// intact.
func truncateToWidth(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if lipgloss.Width(current)+1+lipgloss.Width(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// formatClock renders seconds as m:ss.
func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}
