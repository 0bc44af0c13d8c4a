package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvPath names the variable that points at the config file.
const EnvPath = "SWINGMATCH_CONFIG"

// Dir returns the per-user swingmatch directory.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "swingmatch")
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (env-default tags, plus the bool
// defaults set in newConfig).
// The file is path if given, else $SWINGMATCH_CONFIG, else config.yaml in
// Dir. A missing file is an error only when it was named explicitly.
func Load(path string) (*Config, error) {
	cfg := newConfig()

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv(EnvPath)
		explicitPath = path != ""
	}
	if !explicitPath {
		path = filepath.Join(Dir(), "config.yaml")
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		// No file, load from ENV + defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.fillPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// newConfig returns a Config with the defaults that cannot be expressed as
// env-default tags: cleanenv applies those to any zero field, which would
// turn a YAML false back into true.
func newConfig() Config {
	return Config{
		Camera: CameraConfig{Grant: true},
		UI:     UIConfig{Onboarding: true},
	}
}

func (c *Config) fillPaths() {
	if c.Library.DBPath == "" {
		c.Library.DBPath = filepath.Join(Dir(), "swingmatch.sqlite")
	}
	if c.Camera.MediaDir == "" {
		c.Camera.MediaDir = filepath.Join(Dir(), "media")
	}
	if c.Analysis.Socket == "" {
		c.Analysis.Socket = filepath.Join(Dir(), "analysis.sock")
	}
}
