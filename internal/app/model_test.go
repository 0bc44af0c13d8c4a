package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/swingmatch/swingmatch/internal/capture"
	"github.com/swingmatch/swingmatch/internal/db"
	"github.com/swingmatch/swingmatch/internal/fixtures"
	"github.com/swingmatch/swingmatch/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Fakes

type fakeScheduler struct {
	next uint64
	live map[uint64]bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{live: make(map[uint64]bool)}
}

func (s *fakeScheduler) Schedule(time.Duration) capture.Timer {
	s.next++
	s.live[s.next] = true
	return &fakeTimer{id: s.next, owner: s}
}

// current returns the single live timer, or 0.
func (s *fakeScheduler) current() uint64 {
	for id := range s.live {
		return id
	}
	return 0
}

type fakeTimer struct {
	id    uint64
	owner *fakeScheduler
}

func (t *fakeTimer) ID() uint64 { return t.id }
func (t *fakeTimer) Stop()      { delete(t.owner.live, t.id) }

type fakeCamera struct {
	mu       sync.Mutex
	status   capture.PermissionStatus
	answer   capture.PermissionStatus
	startErr error
	stopErr  error
	started  int
	stopped  []capture.Handle
	requests int
}

func (c *fakeCamera) PermissionStatus(context.Context) (capture.PermissionStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, nil
}

func (c *fakeCamera) RequestAccess(context.Context) (capture.PermissionStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
	c.status = c.answer
	return c.answer, nil
}

func (c *fakeCamera) StartCapture(context.Context, capture.Options) (capture.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.startErr != nil {
		return "", c.startErr
	}
	c.started++
	return capture.Handle("h-" + string(rune('0'+c.started))), nil
}

func (c *fakeCamera) StopCapture(_ context.Context, h capture.Handle) (capture.MediaRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = append(c.stopped, h)
	if c.stopErr != nil {
		return "", c.stopErr
	}
	return capture.MediaRef("file:///media/" + string(h) + ".mov"), nil
}

func (c *fakeCamera) stoppedHandles() []capture.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capture.Handle(nil), c.stopped...)
}

type fakeSink struct {
	mu       sync.Mutex
	err      error
	payloads []capture.Payload
}

func (f *fakeSink) SaveSession(_ context.Context, p capture.Payload) error {
	return f.take(p)
}

func (f *fakeSink) SubmitForAnalysis(_ context.Context, p capture.Payload) error {
	return f.take(p)
}

func (f *fakeSink) take(p capture.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, p)
	return nil
}

type fakeReader struct {
	sessions []db.Session
	pending  []db.AnalysisRequest
}

func (r *fakeReader) RecentSessions(context.Context, string, int) ([]db.Session, error) {
	return r.sessions, nil
}

func (r *fakeReader) PendingAnalyses(context.Context) ([]db.AnalysisRequest, error) {
	return r.pending, nil
}

func (r *fakeReader) CountSessions(context.Context) (int, error) {
	return len(r.sessions), nil
}

// Harness

type harness struct {
	sched    *fakeScheduler
	camera   *fakeCamera
	library  *fakeSink
	analyzer *fakeSink
	reader   *fakeReader
}

func newHarness() *harness {
	return &harness{
		sched:    newFakeScheduler(),
		camera:   &fakeCamera{status: capture.PermissionGranted, answer: capture.PermissionGranted},
		library:  &fakeSink{},
		analyzer: &fakeSink{},
		reader:   &fakeReader{},
	}
}

func (h *harness) deps() Deps {
	return Deps{
		Camera:    h.camera,
		Library:   h.library,
		Analyzer:  h.analyzer,
		Store:     h.reader,
		Scheduler: h.sched,
		Fixtures:  fixtures.MustLoad(),
		Capture:   capture.Config{Countdown: 3, TickInterval: time.Second},
		OpTimeout: time.Second,
	}
}

func (h *harness) model() Model {
	m := New(h.deps())
	m.width = 100
	m.height = 40
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = update(m, key(k))
	}
	return m
}

// drain runs cmd and every batched command, collecting the messages that
// arrive promptly. Timer-based commands such as the toast expiry and the
// cursor blink are abandoned.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(100 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver feeds every message produced by cmd back into the model, one
// level deep.
func deliver(m Model, cmd tea.Cmd) Model {
	for _, msg := range drain(cmd) {
		m, _ = update(m, msg)
	}
	return m
}

// Tests

func TestNewModel(t *testing.T) {
	h := newHarness()
	m := New(h.deps())

	if m.ActiveTab() != TabHome {
		t.Errorf("tab = %v, want %v", m.ActiveTab(), TabHome)
	}
	if m.Theme() != ui.Light {
		t.Errorf("theme = %v, want light", m.Theme())
	}
	if m.Session().State() != capture.StateSetup {
		t.Errorf("state = %v, want setup", m.Session().State())
	}
	if m.onboarding.active {
		t.Error("onboarding should be off unless asked for")
	}
}

func TestInitChecksPermissionAndLoadsLibrary(t *testing.T) {
	h := newHarness()
	h.reader.sessions = []db.Session{{ID: "a", Stroke: "Serve", Status: db.StatusSaved}}
	m := h.model()

	m = deliver(m, m.Init())

	if !m.record.gate.Granted() {
		t.Errorf("permission = %v, want granted", m.record.gate.CurrentStatus())
	}
	if len(m.localSessions) != 1 {
		t.Fatalf("local sessions = %d, want 1", len(m.localSessions))
	}
	if m.sessionCount != 1 {
		t.Errorf("count = %d, want 1", m.sessionCount)
	}
}

func TestNumberKeysSwitchTabs(t *testing.T) {
	m := newHarness().model()

	for k, want := range tabKeys {
		m = press(m, k)
		if m.ActiveTab() != want {
			t.Errorf("key %q: tab = %v, want %v", k, m.ActiveTab(), want)
		}
	}
}

func TestTabCyclesScreens(t *testing.T) {
	m := newHarness().model()

	m = press(m, "tab")
	if m.ActiveTab() != TabLibrary {
		t.Errorf("tab = %v, want Library", m.ActiveTab())
	}
	m = press(m, "shift+tab", "shift+tab")
	if m.ActiveTab() != TabMore {
		t.Errorf("tab = %v, want More", m.ActiveTab())
	}
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		in   string
		want Tab
		ok   bool
	}{
		{"record", TabRecord, true},
		{"ailab", TabAILab, true},
		{"AI Lab", TabAILab, true},
		{"progress", TabProgress, true},
		{"court", TabHome, false},
	}
	for _, tt := range tests {
		got, ok := ParseTab(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTab(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestThemeToggle(t *testing.T) {
	m := newHarness().model()

	m = press(m, "t")
	if m.Theme() != ui.Dark {
		t.Fatalf("theme = %v, want dark", m.Theme())
	}
	if m.styles.Theme != ui.Dark {
		t.Error("styles were not rebuilt for the dark theme")
	}

	m = press(m, "t")
	if m.Theme() != ui.Light {
		t.Errorf("theme = %v, want light", m.Theme())
	}
}

func TestThemeKeyTypesInReview(t *testing.T) {
	h := newHarness()
	m := recordUntilReview(t, h, 1)

	m = press(m, "t")
	if m.Theme() != ui.Light {
		t.Error("t should be typed into the notes, not toggle the theme")
	}
	if got := m.Session().Review().Notes(); got != "t" {
		t.Errorf("notes = %q, want %q", got, "t")
	}
}

func TestToastClearsOnlyItsOwnID(t *testing.T) {
	m := newHarness().model()

	first := m.showToast("first", false)
	if first == nil {
		t.Fatal("showToast should schedule a clear")
	}
	m.showToast("second", true)

	m, _ = update(m, ClearToastMsg{ID: 1})
	if m.Toast() != "second" {
		t.Errorf("toast = %q, want %q", m.Toast(), "second")
	}

	m, _ = update(m, ClearToastMsg{ID: 2})
	if m.Toast() != "" {
		t.Errorf("toast = %q, want empty", m.Toast())
	}
}

func TestHomeQuickActionNavigates(t *testing.T) {
	m := newHarness().model()

	// Second quick action is AI Analysis.
	m = press(m, "down", "enter")
	if m.ActiveTab() != TabAILab {
		t.Errorf("tab = %v, want AI Lab", m.ActiveTab())
	}
}

func TestLibraryFilterCyclesStrokes(t *testing.T) {
	m := newHarness().model()
	m = press(m, "2")

	m, cmd := update(m, key("f"))
	if got := m.library.strokeFilter(m.fx); got != "Forehand" {
		t.Errorf("filter = %q, want Forehand", got)
	}
	if cmd == nil {
		t.Error("changing the filter should reload the library")
	}

	for range m.fx.Record.Strokes {
		m = press(m, "f")
	}
	if got := m.library.strokeFilter(m.fx); got != "" {
		t.Errorf("filter = %q, want all", got)
	}
}

func TestLibraryShowsLocalSessions(t *testing.T) {
	m := newHarness().model()
	m = press(m, "2")
	m, _ = update(m, LibraryLoadedMsg{Sessions: []db.Session{{
		ID: "x", Stroke: "Volley", Notes: "soft hands", Status: db.StatusSaved, Tags: []string{"net"},
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}}})

	view := m.View()
	for _, want := range []string{"Recorded here", "Volley", "soft hands", "#net"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMatchToggles(t *testing.T) {
	m := newHarness().model()
	m = press(m, "5")
	before := m.match.available

	m = press(m, "a", "v")
	if m.match.available == before {
		t.Error("a should toggle availability")
	}
	if !m.match.mapView {
		t.Error("v should switch to the map view")
	}
	if !strings.Contains(m.View(), "◎ you") {
		t.Error("map view should be rendered")
	}
}

func TestProgressRangeWraps(t *testing.T) {
	m := newHarness().model()
	m = press(m, "6")

	if got := m.progress.current(); got != "Month" {
		t.Fatalf("range = %q, want Month", got)
	}
	m = press(m, "left", "left")
	if got := m.progress.current(); got != "Year" {
		t.Errorf("range = %q, want Year", got)
	}
}

func TestMoreThemeRowTogglesTheme(t *testing.T) {
	m := newHarness().model()
	m = press(m, "7")

	for i, row := range m.more.rows {
		if row.item.ID == themeRowID {
			m.more.cursor = i
		}
	}
	m = press(m, "enter")
	if m.Theme() != ui.Dark {
		t.Errorf("theme = %v, want dark", m.Theme())
	}
}

func TestMoreSwitchRow(t *testing.T) {
	m := newHarness().model()
	m = press(m, "7")

	idx := -1
	for i, row := range m.more.rows {
		if row.item.Title == "Notifications" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("no Notifications row")
	}
	m.more.cursor = idx
	m = press(m, "enter")
	if m.more.rows[idx].item.Enabled {
		t.Error("notifications should be switched off")
	}
}

func TestOnboardingFlow(t *testing.T) {
	h := newHarness()
	d := h.deps()
	d.Onboarding = true
	m := New(d)
	m.width, m.height = 100, 40

	if !strings.Contains(m.View(), "AI-Powered Analysis") {
		t.Error("first onboarding step not shown")
	}

	// Three intro steps, then the skill picker.
	m = press(m, "enter", "enter", "enter")
	if m.onboarding.page != m.skillPage() {
		t.Fatalf("page = %d, want skill page", m.onboarding.page)
	}
	m = press(m, "down", "down", "enter")
	m = press(m, "down", "enter")

	if m.onboarding.active {
		t.Fatal("onboarding should be complete")
	}
	if m.skillLevel != "Advanced" {
		t.Errorf("skill = %q, want Advanced", m.skillLevel)
	}
	if m.handedness != "Left" {
		t.Errorf("handedness = %q, want Left", m.handedness)
	}
}

func TestOnboardingSkip(t *testing.T) {
	h := newHarness()
	d := h.deps()
	d.Onboarding = true
	m := New(d)

	m = press(m, "enter", "esc")
	if m.onboarding.active {
		t.Error("esc should dismiss onboarding")
	}
	if m.skillLevel != m.fx.User.SkillLevel {
		t.Errorf("skill = %q, want fixture default", m.skillLevel)
	}

	// Number keys work once it is gone.
	m = press(m, "3")
	if m.ActiveTab() != TabRecord {
		t.Errorf("tab = %v, want Record", m.ActiveTab())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newHarness().model()
	_, cmd := update(m, key("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestViewRendersWithSize(t *testing.T) {
	m := newHarness().model()
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	for tab := TabHome; tab < tabCount; tab++ {
		m.tab = tab
		view := m.View()
		if !strings.Contains(view, "SWINGMATCH") {
			t.Errorf("%v: view missing header", tab)
		}
		if lines := strings.Count(view, "\n") + 1; lines > 24 {
			t.Errorf("%v: view has %d lines, want <= 24", tab, lines)
		}
	}
}

func TestViewWithoutSize(t *testing.T) {
	m := New(newHarness().deps())
	if view := m.View(); view != "Initializing..." {
		t.Errorf("view = %q, want Initializing...", view)
	}
}

func TestLibraryLoadErrorKeepsSnapshot(t *testing.T) {
	m := newHarness().model()
	m, _ = update(m, LibraryLoadedMsg{Sessions: []db.Session{{ID: "1"}}, Count: 1})
	m, _ = update(m, LibraryLoadedMsg{Err: errors.New("disk gone")})

	if len(m.localSessions) != 1 || m.sessionCount != 1 {
		t.Error("a failed reload should keep the previous snapshot")
	}
}

func TestTruncateToWidthKeepsEscapes(t *testing.T) {
	styled := "\x1b[31mhéllo wörld\x1b[0m"

	got := truncateToWidth(styled, 6)
	if plain := ansi.Strip(got); plain != "héllo…" {
		t.Errorf("plain text = %q, want %q", plain, "héllo…")
	}
	if w := lipgloss.Width(got); w != 6 {
		t.Errorf("width = %d, want 6", w)
	}
	if !strings.HasPrefix(got, "\x1b[31m") {
		t.Errorf("truncated line lost its color: %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("invalid UTF-8: %q", got)
	}

	if got := truncateToWidth(styled, 20); got != styled {
		t.Errorf("short line changed: %q", got)
	}
}

func TestWrapTextUsesDisplayWidth(t *testing.T) {
	got := wrapText("ééééé ééééé ü", 11)
	want := []string{"ééééé ééééé", "ü"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
}
