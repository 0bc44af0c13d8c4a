package capture

import "context"

// Handle identifies an in-progress capture on the camera.
type Handle string

// MediaRef points at a finished recording.
type MediaRef string

// Facing is the camera lens in use.
type Facing string

const (
	FacingBack  Facing = "back"
	FacingFront Facing = "front"
)

// Mode is how the player is prompted during a recording.
type Mode string

const (
	ModeAudioGuided Mode = "audio-guided"
	ModeManual      Mode = "manual"
)

// Options describe the capture the camera should start.
type Options struct {
	Facing Facing
	Stroke string
	Mode   Mode
}

// Payload is what a reviewed capture hands to the library or to analysis.
type Payload struct {
	MediaRef        MediaRef
	Notes           string
	Tags            []string
	DurationSeconds int
	Stroke          string
}

// Camera is the device capability the flow sequences. It does not capture,
// encode or store anything itself.
type Camera interface {
	// PermissionStatus reports the current answer without prompting.
	PermissionStatus(ctx context.Context) (PermissionStatus, error)
	// RequestAccess prompts the user and blocks until the platform answers.
	RequestAccess(ctx context.Context) (PermissionStatus, error)
	StartCapture(ctx context.Context, opts Options) (Handle, error)
	StopCapture(ctx context.Context, h Handle) (MediaRef, error)
}

// Library keeps reviewed captures.
type Library interface {
	SaveSession(ctx context.Context, p Payload) error
}

// Analyzer accepts reviewed captures for stroke analysis.
type Analyzer interface {
	SubmitForAnalysis(ctx context.Context, p Payload) error
}
