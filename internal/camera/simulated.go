// Package camera provides capture.Camera implementations.
//
// Simulated stands in for a device camera: it answers the permission
// prompt from configuration, takes a configurable amount of time for every
// device call, and names each finished recording with a fresh media ref
// under a media directory. No frames are captured.
package camera

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swingmatch/swingmatch/internal/capture"
)

// ErrUnknownHandle is returned when StopCapture is given a handle that is
// not running.
var ErrUnknownHandle = errors.New("camera: unknown capture handle")

// Config controls the simulated device.
type Config struct {
	// Grant is the answer given to RequestAccess.
	Grant bool
	// Latency is added to every device call.
	Latency time.Duration
	// MediaDir is where finished recordings are said to live.
	MediaDir string
}

type recording struct {
	opts    capture.Options
	started time.Time
}

// Simulated is a capture.Camera with no hardware behind it. It is safe for
// concurrent use.
type Simulated struct {
	cfg    Config
	logger *zap.Logger

	mu     sync.Mutex
	status capture.PermissionStatus
	active map[capture.Handle]recording
}

var _ capture.Camera = (*Simulated)(nil)

// NewSimulated creates a simulated camera whose permission starts
// undetermined.
func NewSimulated(cfg Config, logger *zap.Logger) *Simulated {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulated{
		cfg:    cfg,
		logger: logger,
		active: make(map[capture.Handle]recording),
	}
}

// PermissionStatus reports the current answer without prompting.
func (c *Simulated) PermissionStatus(ctx context.Context) (capture.PermissionStatus, error) {
	if err := c.wait(ctx); err != nil {
		return capture.PermissionUndetermined, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, nil
}

// RequestAccess "prompts" the user and records the configured answer.
func (c *Simulated) RequestAccess(ctx context.Context) (capture.PermissionStatus, error) {
	if err := c.wait(ctx); err != nil {
		return capture.PermissionUndetermined, err
	}

	st := capture.PermissionDenied
	if c.cfg.Grant {
		st = capture.PermissionGranted
	}

	c.mu.Lock()
	c.status = st
	c.mu.Unlock()

	c.logger.Debug("camera access answered", zap.Stringer("status", st))
	return st, nil
}

// StartCapture begins a recording and returns its handle.
func (c *Simulated) StartCapture(ctx context.Context, opts capture.Options) (capture.Handle, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != capture.PermissionGranted {
		return "", fmt.Errorf("camera: start capture: %w", capture.ErrPermissionDenied)
	}

	h := capture.Handle(uuid.NewString())
	c.active[h] = recording{opts: opts, started: time.Now()}

	c.logger.Debug("capture started",
		zap.String("handle", string(h)),
		zap.String("facing", string(opts.Facing)),
		zap.String("stroke", opts.Stroke),
	)
	return h, nil
}

// StopCapture ends the recording for h and returns where it was stored.
func (c *Simulated) StopCapture(ctx context.Context, h capture.Handle) (capture.MediaRef, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	c.mu.Lock()
	rec, ok := c.active[h]
	delete(c.active, h)
	c.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHandle, h)
	}

	ref := capture.MediaRef("file://" + filepath.ToSlash(filepath.Join(c.cfg.MediaDir, uuid.NewString()+".mov")))
	c.logger.Debug("capture stopped",
		zap.String("handle", string(h)),
		zap.String("media", string(ref)),
		zap.Duration("length", time.Since(rec.started)),
	)
	return ref, nil
}

// Active returns the number of recordings that have not been stopped.
func (c *Simulated) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}

func (c *Simulated) wait(ctx context.Context) error {
	if c.cfg.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.cfg.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
