package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swingmatch/swingmatch/internal/capture"
	"github.com/swingmatch/swingmatch/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// recordState is the record screen: the permission gate, the capture
// session and the setup controls.
type recordState struct {
	session *capture.Session
	gate    *capture.Gate
	editor  reviewEditor

	strokes []string
	stroke  int
	facing  capture.Facing
	mode    capture.Mode
	guide   []string
}

func newRecordState(deps Deps, styles ui.Styles) recordState {
	session := capture.NewSession(deps.Capture, deps.Scheduler)
	logger := deps.Logger
	session.SetObserver(func(from, to capture.State) {
		logger.Debug("capture.state", zap.Stringer("from", from), zap.Stringer("to", to))
	})

	return recordState{
		session: session,
		gate:    capture.NewGate(deps.Camera),
		editor:  newReviewEditor(styles),
		strokes: deps.Fixtures.Record.Strokes,
		facing:  capture.FacingBack,
		mode:    capture.ModeAudioGuided,
		guide:   deps.Fixtures.Record.Guide,
	}
}

func (r recordState) options() capture.Options {
	return capture.Options{
		Facing: r.facing,
		Stroke: r.strokes[r.stroke],
		Mode:   r.mode,
	}
}

// awaitingMedia reports whether the camera has not yet handed over the
// recording under review.
func (r recordState) awaitingMedia() bool {
	return r.session.State() == capture.StateReview && r.session.Media() == ""
}

// Commands. Every camera and collaborator call runs off the event loop and
// reports back with a message.

func checkPermissionCmd(gate *capture.Gate, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		st, err := gate.Check(ctx)
		return PermissionCheckedMsg{Status: st, Err: err}
	}
}

// requestAccessCmd waits for the user to answer the platform prompt, so it
// has no deadline.
func requestAccessCmd(gate *capture.Gate) tea.Cmd {
	return func() tea.Msg {
		st, err := gate.Request(context.Background())
		return PermissionAnsweredMsg{Status: st, Err: err}
	}
}

func startCaptureCmd(camera capture.Camera, attempt uint64, opts capture.Options, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		h, err := camera.StartCapture(ctx, opts)
		return CaptureStartedMsg{Attempt: attempt, Handle: h, Err: err}
	}
}

func stopCaptureCmd(camera capture.Camera, attempt uint64, h capture.Handle, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ref, err := camera.StopCapture(ctx, h)
		return CaptureStoppedMsg{Attempt: attempt, Media: ref, Err: err}
	}
}

func submitCmd(library capture.Library, analyzer capture.Analyzer, action capture.Action, p capture.Payload, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var err error
		if action == capture.ActionUpload {
			err = analyzer.SubmitForAnalysis(ctx, p)
		} else {
			err = library.SaveSession(ctx, p)
		}
		return SubmitDoneMsg{Action: action, Err: err}
	}
}

// Message handlers

// handlePermissionChecked applies the silent startup check. It never
// replaces an answer from an explicit request.
func (m Model) handlePermissionChecked(msg PermissionCheckedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("camera permission check", zap.Error(msg.Err))
		if m.record.gate.Requesting() || m.record.gate.CurrentStatus() != capture.PermissionUndetermined {
			return m, nil
		}
		cmd := m.showToast("Could not reach the camera", true)
		return m, cmd
	}
	if !m.record.gate.ResolveCheck(msg.Status) {
		m.logger.Debug("camera permission check dropped", zap.Stringer("status", msg.Status))
		return m, nil
	}
	m.logger.Debug("camera permission", zap.Stringer("status", msg.Status))
	return m, nil
}

func (m Model) handlePermissionAnswered(msg PermissionAnsweredMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.record.gate.Resolve(capture.PermissionUndetermined)
		m.logger.Warn("camera permission request", zap.Error(msg.Err))
		cmd := m.showToast("Could not reach the camera", true)
		return m, cmd
	}
	m.record.gate.Resolve(msg.Status)
	m.logger.Debug("camera permission", zap.Stringer("status", msg.Status))
	return m, nil
}

func (m Model) handleCaptureTick(msg CaptureTickMsg) (tea.Model, tea.Cmd) {
	s := m.record.session
	switch s.Tick(msg.TimerID) {
	case capture.EventRecordingStarted:
		return m, startCaptureCmd(m.deps.Camera, s.Attempt(), s.Options(), m.deps.OpTimeout)

	case capture.EventAutoStopped:
		cmd := m.afterStop(s.Handle())
		return m, cmd
	}
	return m, nil
}

func (m Model) handleCaptureStarted(msg CaptureStartedMsg) (tea.Model, tea.Cmd) {
	s := m.record.session

	if msg.Err != nil {
		if err := s.CaptureFailed(msg.Attempt, msg.Err); err != nil {
			m.logger.Warn("start capture", zap.Uint64("attempt", msg.Attempt), zap.Error(err))
			cmd := m.showToast("Could not start recording. Press enter to try again", true)
			return m, cmd
		}
		return m, nil
	}

	if s.CaptureStarted(msg.Attempt, msg.Handle) {
		return m, nil
	}

	// The recording ended before the camera answered. Stop the handle; if
	// this attempt is under review the media is attached when it arrives,
	// otherwise the answer is dropped.
	m.logger.Debug("late capture start", zap.Uint64("attempt", msg.Attempt), zap.Stringer("state", s.State()))
	return m, stopCaptureCmd(m.deps.Camera, msg.Attempt, msg.Handle, m.deps.OpTimeout)
}

func (m Model) handleCaptureStopped(msg CaptureStoppedMsg) (tea.Model, tea.Cmd) {
	s := m.record.session

	if msg.Err != nil {
		if err := s.StopFailed(msg.Attempt, msg.Err); err != nil {
			m.logger.Warn("stop capture", zap.Uint64("attempt", msg.Attempt), zap.Error(err))
			cmd := m.showToast("Recording was lost. Please record again", true)
			return m, cmd
		}
		m.logger.Debug("release capture", zap.Uint64("attempt", msg.Attempt), zap.Error(msg.Err))
		return m, nil
	}

	if !s.AttachMedia(msg.Attempt, msg.Media) {
		m.logger.Debug("discard media", zap.Uint64("attempt", msg.Attempt), zap.String("media", string(msg.Media)))
	}
	return m, nil
}

func (m Model) handleSubmitDone(msg SubmitDoneMsg) (tea.Model, tea.Cmd) {
	err := m.record.session.Complete(msg.Err)
	m.record.editor.reset()

	var cmds []tea.Cmd
	switch {
	case errors.Is(err, capture.ErrUpload):
		m.logger.Warn("submit for analysis", zap.Error(err))
		cmds = append(cmds, m.showToast("Upload failed. The recording was not sent", true))
	case err != nil:
		m.logger.Warn("save session", zap.Error(err))
		cmds = append(cmds, m.showToast("Save failed. The recording was not kept", true))
	case msg.Action == capture.ActionUpload:
		cmds = append(cmds, m.showToast("Sent for analysis", false))
	default:
		cmds = append(cmds, m.showToast("Session saved to your library", false))
	}

	cmds = append(cmds, loadLibraryCmd(m.deps.Store, m.library.strokeFilter(m.fx), m.deps.OpTimeout))
	return m, tea.Batch(cmds...)
}

// Key handling outside review.

func (m Model) handleRecordKey(key string) (tea.Model, tea.Cmd) {
	switch m.record.session.State() {
	case capture.StateSetup:
		return m.handleSetupKey(key)

	case capture.StateCountdown:
		if key == KeyEsc {
			cmd := m.cancelCapture()
			return m, cmd
		}

	case capture.StateRecording:
		switch key {
		case KeySpace, KeyEnter:
			h, err := m.record.session.Stop()
			if err != nil {
				return m, nil
			}
			cmd := m.afterStop(h)
			return m, cmd
		case KeyEsc:
			cmd := m.cancelCapture()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleSetupKey(key string) (tea.Model, tea.Cmd) {
	r := &m.record

	switch key {
	case KeyLeft, KeyH:
		r.stroke = (r.stroke + len(r.strokes) - 1) % len(r.strokes)
	case KeyRight, KeyL:
		r.stroke = (r.stroke + 1) % len(r.strokes)
	case KeyFlip:
		if r.facing == capture.FacingBack {
			r.facing = capture.FacingFront
		} else {
			r.facing = capture.FacingBack
		}
	case KeyMode:
		if r.mode == capture.ModeAudioGuided {
			r.mode = capture.ModeManual
		} else {
			r.mode = capture.ModeAudioGuided
		}

	case KeyRetry:
		if r.gate.CurrentStatus() == capture.PermissionDenied {
			return m, m.requestAccess()
		}

	case KeyEnter, KeySpace:
		if !r.gate.Granted() {
			return m, m.requestAccess()
		}
		if err := r.session.BeginCapture(r.gate.CurrentStatus(), r.options()); err != nil {
			m.logger.Debug("begin capture", zap.Error(err))
			return m, nil
		}
		m.logger.Info("capture begun",
			zap.String("stroke", r.options().Stroke),
			zap.String("facing", string(r.facing)),
			zap.String("mode", string(r.mode)))
	}
	return m, nil
}

func (m Model) requestAccess() tea.Cmd {
	if !m.record.gate.BeginRequest() {
		return nil
	}
	return requestAccessCmd(m.record.gate)
}

// afterStop opens the review editor and asks the camera for the recording.
// With no handle yet, the late start answer stops the camera instead.
func (m *Model) afterStop(h capture.Handle) tea.Cmd {
	m.record.editor.reset()
	focus := m.record.editor.focusNotes()
	if h == "" {
		return focus
	}
	return tea.Batch(focus, stopCaptureCmd(m.deps.Camera, m.record.session.Attempt(), h, m.deps.OpTimeout))
}

// cancelCapture discards the session and releases a running camera capture.
func (m *Model) cancelCapture() tea.Cmd {
	attempt := m.record.session.Attempt()
	h := m.record.session.Cancel()
	m.record.editor.reset()
	if h == "" {
		return nil
	}
	return stopCaptureCmd(m.deps.Camera, attempt, h, m.deps.OpTimeout)
}

func (m Model) recordHints() [][2]string {
	switch m.record.session.State() {
	case capture.StateCountdown:
		return [][2]string{{"Esc", "Cancel"}}
	case capture.StateRecording:
		return [][2]string{{"Space", "Stop"}, {"Esc", "Cancel"}}
	}
	hints := [][2]string{{"←→", "Stroke"}, {"f", "Flip"}, {"m", "Mode"}}
	switch {
	case m.record.gate.Granted():
		hints = append(hints, [2]string{"Enter", "Record"})
	case m.record.gate.CurrentStatus() == capture.PermissionDenied:
		hints = append(hints, [2]string{"r", "Retry"})
	default:
		hints = append(hints, [2]string{"Enter", "Allow camera"})
	}
	return hints
}

// View

func (m Model) renderRecord() string {
	switch m.record.session.State() {
	case capture.StateCountdown:
		return m.renderCountdown()
	case capture.StateRecording:
		return m.renderRecording()
	case capture.StateReview:
		return m.renderReview()
	}
	return m.renderSetup()
}

func (m Model) renderSetup() string {
	r := m.record
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Header.Render("Record a session"))
	b.WriteString("\n\n")

	b.WriteString(st.Dim.Render("Stroke  "))
	for i, s := range r.strokes {
		if i == r.stroke {
			b.WriteString(st.ChipOn.Render(s))
		} else {
			b.WriteString(st.Chip.Render(s))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")

	b.WriteString(st.Dim.Render("Camera  ") + st.Text.Render(string(r.facing)))
	b.WriteString(st.Dim.Render("   Mode  ") + st.Text.Render(string(r.mode)))
	b.WriteString("\n\n")

	b.WriteString(st.Subtitle.Render("Positioning"))
	b.WriteString("\n")
	for _, line := range r.guide {
		for _, w := range wrapText(line, max(20, m.width-4)) {
			b.WriteString(st.Dim.Render("  " + w))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	switch {
	case r.gate.Requesting():
		b.WriteString(st.Dim.Render("Waiting for camera permission..."))
	case r.gate.Granted():
		b.WriteString(st.Primary.Render(fmt.Sprintf("Press enter to start. Recording begins after %ds.", r.session.Config().Countdown)))
	case r.gate.CurrentStatus() == capture.PermissionDenied:
		b.WriteString(st.ErrorText.Render("Camera access was denied. Press r to ask again."))
	default:
		b.WriteString(st.Text.Render("SwingMatch needs the camera to record your stroke. Press enter to allow."))
	}

	return b.String()
}

func (m Model) renderCountdown() string {
	s := m.record.session
	st := m.styles

	lines := []string{
		st.Header.Render("Get ready: " + s.Options().Stroke),
		st.Countdown.Render(fmt.Sprintf("%d", s.CountdownRemaining())),
		st.Dim.Render("Esc to cancel"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRecording() string {
	s := m.record.session
	st := m.styles

	clock := formatClock(s.ElapsedSeconds())
	if limit := s.Config().AutoStop; limit > 0 {
		clock += st.Dim.Render(" / " + formatClock(int(limit.Round(time.Second)/time.Second)))
	}

	status := st.Dim.Render("starting camera...")
	if s.Handle() != "" {
		status = st.Dim.Render(string(s.Options().Facing) + " camera, " + string(s.Options().Mode))
	}

	lines := []string{
		st.RecordingDot.Render("● REC") + "  " + st.Timer.Render(clock),
		"",
		st.Text.Render("Recording " + s.Options().Stroke),
		status,
		"",
		st.Dim.Render("Space to stop, Esc to cancel"),
	}
	return strings.Join(lines, "\n")
}
