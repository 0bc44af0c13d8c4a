package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swingmatch/swingmatch/internal/analysis"
	"github.com/swingmatch/swingmatch/internal/app"
	"github.com/swingmatch/swingmatch/internal/camera"
	"github.com/swingmatch/swingmatch/internal/capture"
	"github.com/swingmatch/swingmatch/internal/config"
	"github.com/swingmatch/swingmatch/internal/db"
	"github.com/swingmatch/swingmatch/internal/fixtures"
	"github.com/swingmatch/swingmatch/internal/logging"
	"github.com/swingmatch/swingmatch/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	configPath string
	themeFlag  string
	autoStop   time.Duration
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "swingmatch",
	Short: "Record, tag and review tennis strokes from the terminal",
	Long: `swingmatch is a tennis coaching companion.

Run without arguments to open the app: record a stroke after a short
countdown, add notes and tags, then save it to your library or send it
for analysis.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("theme") {
			if _, err := ui.ParseTheme(themeFlag); err != nil {
				return err
			}
			cfg.UI.Theme = themeFlag
		}
		if cmd.Flags().Changed("auto-stop") {
			if autoStop < 0 {
				return fmt.Errorf("--auto-stop must not be negative")
			}
			cfg.Capture.AutoStop = autoStop
		}

		logger, err = logging.New(cfg.Log, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "swingmatch", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $"+config.EnvPath+" or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "Color theme: light or dark")
	rootCmd.Flags().DurationVar(&autoStop, "auto-stop", 0, "Stop recordings after this long (0 = manual stop)")

	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(analysesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runTUI wires the collaborators and runs the bubbletea program.
func runTUI() error {
	store, err := db.Open(cfg.Library.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	fx, err := fixtures.Load()
	if err != nil {
		return err
	}

	theme, err := ui.ParseTheme(cfg.UI.Theme)
	if err != nil {
		return err
	}

	cam := camera.NewSimulated(camera.Config{
		Grant:    cfg.Camera.Grant,
		Latency:  cfg.Camera.Latency,
		MediaDir: cfg.Camera.MediaDir,
	}, logger.Named("camera"))

	var analyzer capture.Analyzer = store
	if cfg.Analysis.Mode == config.AnalysisDaemon {
		analyzer = analysis.NewSubmitter(cfg.Analysis.Socket, cfg.Analysis.Timeout, logger.Named("analysis"))
	}

	// The scheduler posts ticks into the program, which is created below
	// and assigned before any timer can fire.
	var p *tea.Program
	sched := capture.NewTickerScheduler(func(f capture.Fire) {
		p.Send(app.CaptureTickMsg{TimerID: f.TimerID})
	})
	defer sched.Close()

	model := app.New(app.Deps{
		Camera:    cam,
		Library:   store,
		Analyzer:  analyzer,
		Store:     store,
		Scheduler: sched,
		Fixtures:  fx,
		Logger:    logger,
		Capture: capture.Config{
			Countdown:    cfg.Capture.CountdownSeconds,
			AutoStop:     cfg.Capture.AutoStop,
			TickInterval: cfg.Capture.TickInterval,
		},
		OpTimeout:  cfg.Capture.OpTimeout,
		Theme:      theme,
		Onboarding: cfg.UI.Onboarding,
	})

	logger.Info("starting",
		zap.String("db", cfg.Library.DBPath),
		zap.String("analysis", cfg.Analysis.Mode),
		zap.Stringer("theme", theme),
		zap.Duration("auto_stop", cfg.Capture.AutoStop))

	p = tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
