// Package config loads swingmatch settings from a YAML file, environment
// variables and defaults.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Capture  CaptureConfig  `yaml:"capture"`
	Camera   CameraConfig   `yaml:"camera"`
	Library  LibraryConfig  `yaml:"library"`
	Analysis AnalysisConfig `yaml:"analysis"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// CaptureConfig holds recording flow timings.
type CaptureConfig struct {
	CountdownSeconds int           `yaml:"countdown_seconds" env:"SWINGMATCH_COUNTDOWN_SECONDS" env-default:"3"`
	AutoStop         time.Duration `yaml:"auto_stop"         env:"SWINGMATCH_AUTO_STOP"         env-default:"0s"`
	TickInterval     time.Duration `yaml:"tick_interval"     env:"SWINGMATCH_TICK_INTERVAL"     env-default:"1s"`
	OpTimeout        time.Duration `yaml:"op_timeout"        env:"SWINGMATCH_OP_TIMEOUT"        env-default:"10s"`
}

// CameraConfig controls the simulated camera. Grant defaults to true in Load.
type CameraConfig struct {
	Grant    bool          `yaml:"grant"     env:"SWINGMATCH_CAMERA_GRANT"`
	Latency  time.Duration `yaml:"latency"   env:"SWINGMATCH_CAMERA_LATENCY" env-default:"150ms"`
	MediaDir string        `yaml:"media_dir" env:"SWINGMATCH_MEDIA_DIR"`
}

// LibraryConfig holds local storage settings.
type LibraryConfig struct {
	DBPath string `yaml:"db_path" env:"SWINGMATCH_DB_PATH"`
}

// Analysis modes.
const (
	AnalysisLocal  = "local"
	AnalysisDaemon = "daemon"
)

// AnalysisConfig selects where uploads go: the local queue or a daemon.
type AnalysisConfig struct {
	Mode    string        `yaml:"mode"    env:"SWINGMATCH_ANALYSIS_MODE"    env-default:"local"`
	Socket  string        `yaml:"socket"  env:"SWINGMATCH_ANALYSIS_SOCKET"`
	Timeout time.Duration `yaml:"timeout" env:"SWINGMATCH_ANALYSIS_TIMEOUT" env-default:"5s"`
}

// UIConfig holds presentation settings. Onboarding defaults to true in Load.
type UIConfig struct {
	Theme      string `yaml:"theme"      env:"SWINGMATCH_THEME"      env-default:"light"`
	Onboarding bool   `yaml:"onboarding" env:"SWINGMATCH_ONBOARDING"`
}

// LogConfig holds logging settings. An empty File disables logging.
type LogConfig struct {
	Level string `yaml:"level" env:"SWINGMATCH_LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file"  env:"SWINGMATCH_LOG_FILE"`
}
