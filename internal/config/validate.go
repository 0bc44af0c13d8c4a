package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/swingmatch/swingmatch/internal/ui"
)

// Validate performs rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Capture.validate(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	if c.Camera.Latency < 0 {
		return fmt.Errorf("camera: latency must be >= 0 (got %v)", c.Camera.Latency)
	}

	switch c.Analysis.Mode {
	case AnalysisLocal, AnalysisDaemon:
	default:
		return fmt.Errorf("analysis: mode must be %q or %q (got %q)", AnalysisLocal, AnalysisDaemon, c.Analysis.Mode)
	}

	if _, err := ui.ParseTheme(c.UI.Theme); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func (c *CaptureConfig) validate() error {
	if c.CountdownSeconds < 1 || c.CountdownSeconds > 3 {
		return fmt.Errorf("countdown_seconds must be 1..3 (got %d)", c.CountdownSeconds)
	}
	if c.AutoStop < 0 {
		return fmt.Errorf("auto_stop must be >= 0 (got %v)", c.AutoStop)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be > 0 (got %v)", c.TickInterval)
	}
	if c.OpTimeout <= 0 {
		return fmt.Errorf("op_timeout must be > 0 (got %v)", c.OpTimeout)
	}
	return nil
}
