package capture

import "fmt"

// Session is the capture state machine: Setup → Countdown → Recording →
// Review → Setup. It is not safe for concurrent use; a single event loop
// calls every method.
//
// Only one capture runs at a time. BeginCapture outside Setup is rejected,
// and the session owns at most one live timer, which is stopped on every
// transition out of Countdown or Recording.
type Session struct {
	cfg   Config
	sched Scheduler

	state     State
	countdown int
	elapsed   int
	duration  int
	timer     Timer

	// attempt numbers each entry into Recording so that late camera
	// answers from an abandoned capture are recognised.
	attempt uint64
	handle  Handle
	media   MediaRef
	opts    Options

	review  Review
	pending bool
	action  Action

	observe func(from, to State)
}

// NewSession returns a session in Setup. Countdown is clamped to [1, 3].
func NewSession(cfg Config, sched Scheduler) *Session {
	cfg.Countdown = min(max(cfg.Countdown, 1), 3)
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	return &Session{cfg: cfg, sched: sched}
}

// SetObserver registers fn to be called on every state change.
func (s *Session) SetObserver(fn func(from, to State)) { s.observe = fn }

func (s *Session) State() State { return s.state }
func (s *Session) Config() Config { return s.cfg }
func (s *Session) CountdownRemaining() int { return s.countdown }
func (s *Session) ElapsedSeconds() int { return s.elapsed }
func (s *Session) DurationSeconds() int { return s.duration }
func (s *Session) Attempt() uint64 { return s.attempt }
func (s *Session) Handle() Handle { return s.handle }
func (s *Session) Media() MediaRef { return s.media }
func (s *Session) Options() Options { return s.opts }
func (s *Session) Review() *Review { return &s.review }
func (s *Session) Pending() bool { return s.pending }
func (s *Session) PendingAction() Action { return s.action }
func (s *Session) HasTimer() bool { return s.timer != nil }
func (s *Session) Active() bool { return s.state != StateSetup }
func (s *Session) InFlight() bool { return s.state == StateCountdown || s.state == StateRecording }

// BeginCapture starts the countdown. It returns ErrBusy outside Setup and
// ErrPermissionDenied unless perm is Granted; in both cases nothing changes.
func (s *Session) BeginCapture(perm PermissionStatus, opts Options) error {
	if s.state != StateSetup {
		return ErrBusy
	}
	if perm != PermissionGranted {
		return ErrPermissionDenied
	}
	s.opts = opts
	s.countdown = s.cfg.Countdown
	s.setState(StateCountdown)
	s.timer = s.sched.Schedule(s.cfg.TickInterval)
	return nil
}

// Tick advances the timer identified by id. Firings from a timer the
// session no longer owns are ignored.
func (s *Session) Tick(id uint64) Event {
	if s.timer == nil || s.timer.ID() != id {
		return EventNone
	}

	switch s.state {
	case StateCountdown:
		s.countdown--
		if s.countdown > 0 {
			return EventCountdown
		}
		s.stopTimer()
		s.enterRecording()
		return EventRecordingStarted

	case StateRecording:
		s.elapsed++
		if n := s.cfg.autoStopTicks(); n > 0 && s.elapsed >= n {
			s.finishRecording()
			return EventAutoStopped
		}
		return EventElapsed
	}

	return EventNone
}

// CaptureStarted records the camera handle for attempt. It returns false
// when the attempt is no longer recording; the caller then owns the handle
// and must stop it.
func (s *Session) CaptureStarted(attempt uint64, h Handle) bool {
	if attempt != s.attempt || s.state != StateRecording || s.handle != "" {
		return false
	}
	s.handle = h
	return true
}

// CaptureFailed abandons attempt after the camera could not start and
// returns the session to Setup. Stale failures are ignored and return nil.
func (s *Session) CaptureFailed(attempt uint64, cause error) error {
	if attempt != s.attempt || (s.state != StateRecording && s.state != StateReview) || s.pending {
		return nil
	}
	s.reset()
	return fmt.Errorf("%w: %w", ErrCaptureStart, cause)
}

// Stop ends the recording and enters Review with the elapsed time as the
// duration. The returned handle is empty if the camera has not yet
// acknowledged the start.
func (s *Session) Stop() (Handle, error) {
	if s.state != StateRecording {
		return "", ErrNotRecording
	}
	h := s.handle
	s.finishRecording()
	return h, nil
}

// AttachMedia stores the finished recording for attempt while in Review.
func (s *Session) AttachMedia(attempt uint64, ref MediaRef) bool {
	if attempt != s.attempt || s.state != StateReview || s.media != "" {
		return false
	}
	s.media = ref
	return true
}

// StopFailed abandons the review after the camera could not finish the
// recording. Stale failures are ignored and return nil.
func (s *Session) StopFailed(attempt uint64, cause error) error {
	if attempt != s.attempt || s.state != StateReview || s.pending {
		return nil
	}
	s.reset()
	return fmt.Errorf("%w: %w", ErrCaptureStop, cause)
}

// Cancel discards the session from any state and stops its timer. If a
// recording was running the camera handle is returned so the caller can
// release it.
func (s *Session) Cancel() Handle {
	var h Handle
	if s.state == StateRecording {
		h = s.handle
	}
	s.reset()
	return h
}

// Submit hands the reviewed capture off for action. The session stays in
// Review until Complete is called with the collaborator's answer.
func (s *Session) Submit(a Action) (Payload, error) {
	if s.state != StateReview {
		return Payload{}, ErrNotInReview
	}
	if s.pending {
		return Payload{}, ErrSubmitPending
	}
	s.pending = true
	s.action = a
	return Payload{
		MediaRef:        s.media,
		Notes:           s.review.Notes(),
		Tags:            s.review.Tags(),
		DurationSeconds: s.duration,
		Stroke:          s.opts.Stroke,
	}, nil
}

// Complete finishes a Submit. The session returns to Setup whatever the
// outcome; a failure is returned wrapped in ErrSave or ErrUpload.
func (s *Session) Complete(result error) error {
	if s.state != StateReview || !s.pending {
		return nil
	}
	action := s.action
	s.reset()
	if result == nil {
		return nil
	}
	if action == ActionUpload {
		return fmt.Errorf("%w: %w", ErrUpload, result)
	}
	return fmt.Errorf("%w: %w", ErrSave, result)
}

func (s *Session) enterRecording() {
	s.attempt++
	s.elapsed = 0
	s.handle = ""
	s.media = ""
	s.setState(StateRecording)
	s.timer = s.sched.Schedule(s.cfg.TickInterval)
}

func (s *Session) finishRecording() {
	s.stopTimer()
	s.duration = s.elapsed
	s.review.reset()
	s.pending = false
	s.setState(StateReview)
}

func (s *Session) reset() {
	s.stopTimer()
	s.countdown = 0
	s.elapsed = 0
	s.duration = 0
	s.handle = ""
	s.media = ""
	s.review.reset()
	s.pending = false
	s.setState(StateSetup)
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) setState(to State) {
	from := s.state
	s.state = to
	if from != to && s.observe != nil {
		s.observe(from, to)
	}
}
