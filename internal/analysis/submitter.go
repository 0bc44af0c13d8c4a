package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/swingmatch/swingmatch/internal/capture"
)

// ErrRejected is returned when the daemon answers a request with ok=false.
var ErrRejected = errors.New("analysis daemon rejected request")

// Submitter sends each capture to the daemon on its own connection. It
// implements capture.Analyzer.
type Submitter struct {
	socketPath string
	timeout    time.Duration
	logger     *zap.Logger
}

var _ capture.Analyzer = (*Submitter)(nil)

// NewSubmitter returns a submitter for the daemon at socketPath. A zero
// timeout leaves the caller's context as the only bound.
func NewSubmitter(socketPath string, timeout time.Duration, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{socketPath: socketPath, timeout: timeout, logger: logger}
}

// SubmitForAnalysis asks the daemon to analyze p.
func (s *Submitter) SubmitForAnalysis(ctx context.Context, p capture.Payload) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	client, err := ConnectContext(ctx, s.socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.SendCommandContext(ctx, Command{
		Cmd:             CmdAnalyze,
		Stroke:          p.Stroke,
		MediaRef:        string(p.MediaRef),
		Notes:           p.Notes,
		Tags:            p.Tags,
		DurationSeconds: IntPtr(p.DurationSeconds),
	})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}

	s.logger.Info("analysis queued",
		zap.String("analysis_id", resp.AnalysisID),
		zap.String("status", resp.Status),
		zap.String("stroke", p.Stroke),
	)
	return nil
}

// Status asks the daemon how many requests it is holding.
func (s *Submitter) Status(ctx context.Context) (Response, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	client, err := ConnectContext(ctx, s.socketPath)
	if err != nil {
		return Response{}, err
	}
	defer client.Close()

	return client.SendCommandContext(ctx, Command{Cmd: CmdStatus})
}
