package capture

import (
	"context"
	"fmt"
)

// Gate caches the camera permission answer for the record screen.
//
// Check and Request talk to the camera and may block, so callers run them
// off the event loop and apply the answer with ResolveCheck or Resolve. A
// silent check never overrides an answer the user gave. A denied answer is
// not an error: it is shown with a retry, and only an explicit new Request
// asks again.
type Gate struct {
	camera     Camera
	status     PermissionStatus
	requesting bool
}

// NewGate returns a gate in the undetermined state.
func NewGate(camera Camera) *Gate {
	return &Gate{camera: camera}
}

// CurrentStatus returns the cached answer.
func (g *Gate) CurrentStatus() PermissionStatus { return g.status }

// Granted reports whether capture may begin.
func (g *Gate) Granted() bool { return g.status == PermissionGranted }

// Check asks for the current answer without prompting the user.
func (g *Gate) Check(ctx context.Context) (PermissionStatus, error) {
	st, err := g.camera.PermissionStatus(ctx)
	if err != nil {
		return PermissionUndetermined, fmt.Errorf("check camera permission: %w", err)
	}
	return st, nil
}

// BeginRequest marks a prompt as outstanding. It returns false if one is
// already in flight or access is already granted, in which case the caller
// should not call Request.
func (g *Gate) BeginRequest() bool {
	if g.requesting || g.status == PermissionGranted {
		return false
	}
	g.requesting = true
	return true
}

// Requesting reports whether a prompt is outstanding.
func (g *Gate) Requesting() bool { return g.requesting }

// Request prompts for camera access and waits for the answer.
func (g *Gate) Request(ctx context.Context) (PermissionStatus, error) {
	st, err := g.camera.RequestAccess(ctx)
	if err != nil {
		return PermissionDenied, fmt.Errorf("request camera access: %w", err)
	}
	return st, nil
}

// ResolveCheck applies an answer from Check. It is dropped once a prompt is
// outstanding or an answer is already cached, and reports whether it applied.
func (g *Gate) ResolveCheck(st PermissionStatus) bool {
	if g.requesting || g.status != PermissionUndetermined {
		return false
	}
	g.status = st
	return true
}

// Resolve applies an answer from Request and ends the outstanding prompt.
func (g *Gate) Resolve(st PermissionStatus) {
	g.status = st
	g.requesting = false
}
