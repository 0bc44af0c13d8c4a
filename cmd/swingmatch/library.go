package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swingmatch/swingmatch/internal/analysis"
	"github.com/swingmatch/swingmatch/internal/config"
	"github.com/swingmatch/swingmatch/internal/db"
)

var (
	sessionsStroke string
	sessionsLimit  int
	analysesFollow bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions in the local library",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Show the analysis queue",
	Long: `Show sessions waiting for analysis.

In local mode this lists the requests queued in the library database. In
daemon mode it asks the analysis daemon for its status; with --follow it
streams analysis events until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runAnalyses,
}

func init() {
	sessionsCmd.Flags().StringVarP(&sessionsStroke, "stroke", "s", "", "Only show this stroke (Forehand, Backhand, Serve, Volley)")
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "Maximum sessions to show")
	analysesCmd.Flags().BoolVarP(&analysesFollow, "follow", "f", false, "Stream events from the analysis daemon")
}

func runSessions(cmd *cobra.Command, args []string) error {
	if sessionsLimit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	store, err := db.Open(cfg.Library.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Capture.OpTimeout)
	defer cancel()

	sessions, err := store.RecentSessions(ctx, sessionsStroke, sessionsLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSTROKE\tDURATION\tSTATUS\tTAGS\tNOTES")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%ds\t%s\t%s\t%s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Stroke,
			s.DurationSeconds,
			s.Status,
			strings.Join(s.Tags, ","),
			oneLine(s.Notes))
	}
	return w.Flush()
}

func runAnalyses(cmd *cobra.Command, args []string) error {
	if cfg.Analysis.Mode == config.AnalysisDaemon {
		if analysesFollow {
			return followDaemon(cmd)
		}
		return daemonStatus(cmd)
	}
	if analysesFollow {
		return fmt.Errorf("--follow needs analysis.mode: %s", config.AnalysisDaemon)
	}

	store, err := db.Open(cfg.Library.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Capture.OpTimeout)
	defer cancel()

	pending, err := store.PendingAnalyses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(pending) == 0 {
		fmt.Fprintln(out, "Nothing queued for analysis.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUEUED\tSTROKE\tSTATUS\tSESSION")
	for _, a := range pending {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			a.Stroke,
			a.Status,
			a.SessionID)
	}
	return w.Flush()
}

func daemonStatus(cmd *cobra.Command) error {
	sub := analysis.NewSubmitter(cfg.Analysis.Socket, cfg.Analysis.Timeout, logger)
	resp, err := sub.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("analysis daemon at %s: %w", cfg.Analysis.Socket, err)
	}
	if !resp.OK {
		return fmt.Errorf("analysis daemon: %s", resp.Error)
	}

	queued := 0
	if resp.Queued != nil {
		queued = *resp.Queued
	}
	fmt.Fprintf(cmd.OutOrStdout(), "daemon %s, %d queued\n", resp.Status, queued)
	return nil
}

// followDaemon subscribes to analysis events and prints them until the
// daemon hangs up or the user interrupts.
func followDaemon(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := analysis.ConnectContext(ctx, cfg.Analysis.Socket)
	if err != nil {
		return fmt.Errorf("analysis daemon at %s: %w", cfg.Analysis.Socket, err)
	}
	defer client.Close()

	resp, err := client.SendCommandContext(ctx, analysis.Command{
		Cmd:    analysis.CmdSubscribe,
		Events: []string{"queued", "progress", "done", "error"},
	})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("subscribe: %s", resp.Error)
	}

	// ReadEvent blocks; closing the connection unblocks it on interrupt.
	go func() {
		<-ctx.Done()
		client.Close()
	}()

	out := cmd.OutOrStdout()
	for {
		ev, err := client.ReadEvent()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, analysis.ErrConnectionClosed) {
				return nil
			}
			return err
		}
		logger.Debug("analysis event", zap.String("event", ev.Event), zap.String("analysis_id", ev.AnalysisID))

		line := fmt.Sprintf("%-8s %s %s", ev.Event, ev.AnalysisID, ev.Stroke)
		if ev.Score != nil {
			line += fmt.Sprintf(" score=%d", *ev.Score)
		}
		if ev.Message != "" {
			line += " " + ev.Message
		}
		fmt.Fprintln(out, strings.TrimSpace(line))
	}
}

func oneLine(s string) string {
	return ansi.Truncate(strings.Join(strings.Fields(s), " "), 40, "…")
}
