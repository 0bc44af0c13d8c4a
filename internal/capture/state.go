// Package capture implements the recording flow of a coaching session:
// camera permission, a countdown, the timed capture itself and the review
// step where notes and tags are attached before the recording is handed to
// the library or to analysis.
//
// Nothing here touches a terminal or a real camera. The flow is driven by
// explicit calls (BeginCapture, Tick, Stop, Submit, ...) from a single event
// loop, and every suspending operation belongs to a collaborator the caller
// runs asynchronously.
package capture

import "time"

// State is the phase of a capture session.
type State int

const (
	StateSetup State = iota
	StateCountdown
	StateRecording
	StateReview
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateCountdown:
		return "countdown"
	case StateRecording:
		return "recording"
	case StateReview:
		return "review"
	}
	return "unknown"
}

// PermissionStatus is the camera access answer from the platform.
type PermissionStatus int

const (
	PermissionUndetermined PermissionStatus = iota
	PermissionDenied
	PermissionGranted
)

func (p PermissionStatus) String() string {
	switch p {
	case PermissionUndetermined:
		return "undetermined"
	case PermissionDenied:
		return "denied"
	case PermissionGranted:
		return "granted"
	}
	return "unknown"
}

// Action is what happens to a reviewed capture.
type Action int

const (
	ActionSave Action = iota
	ActionUpload
)

func (a Action) String() string {
	if a == ActionUpload {
		return "upload"
	}
	return "save"
}

// Event reports what a Tick did, so the caller can issue follow-up work.
type Event int

const (
	EventNone Event = iota
	EventCountdown
	EventRecordingStarted
	EventElapsed
	EventAutoStopped
)

// Config holds the timing of a session.
type Config struct {
	// Countdown is the number of ticks before recording starts.
	Countdown int
	// AutoStop ends the recording after this long. Zero means manual stop only.
	AutoStop time.Duration
	// TickInterval is the period of both the countdown and the elapsed timer.
	TickInterval time.Duration
}

// DefaultConfig matches the manual-stop recording screen.
func DefaultConfig() Config {
	return Config{
		Countdown:    3,
		TickInterval: time.Second,
	}
}

func (c Config) autoStopTicks() int {
	if c.AutoStop <= 0 || c.TickInterval <= 0 {
		return 0
	}
	n := int(c.AutoStop / c.TickInterval)
	if c.AutoStop%c.TickInterval != 0 {
		n++
	}
	return n
}
