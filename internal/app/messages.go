package app

import (
	"github.com/swingmatch/swingmatch/internal/capture"
	"github.com/swingmatch/swingmatch/internal/db"
)

// CaptureTickMsg is a capture timer firing, posted into the event loop by
// the scheduler's delivery func.
type CaptureTickMsg struct {
	TimerID uint64
}

// PermissionCheckedMsg carries the answer to the silent status check made
// at startup.
type PermissionCheckedMsg struct {
	Status capture.PermissionStatus
	Err    error
}

// PermissionAnsweredMsg carries the answer to an explicit access request.
type PermissionAnsweredMsg struct {
	Status capture.PermissionStatus
	Err    error
}

// CaptureStartedMsg is sent when the camera answers a start request.
type CaptureStartedMsg struct {
	Attempt uint64
	Handle  capture.Handle
	Err     error
}

// CaptureStoppedMsg is sent when the camera answers a stop request.
type CaptureStoppedMsg struct {
	Attempt uint64
	Media   capture.MediaRef
	Err     error
}

// SubmitDoneMsg carries the collaborator's answer to a save or upload.
type SubmitDoneMsg struct {
	Action capture.Action
	Err    error
}

// LibraryLoadedMsg carries local sessions and queued analyses read from
// SQLite.
type LibraryLoadedMsg struct {
	Sessions []db.Session
	Pending  []db.AnalysisRequest
	Count    int
	Err      error
}

// ClearToastMsg clears the toast it was scheduled for.
type ClearToastMsg struct {
	ID int
}
