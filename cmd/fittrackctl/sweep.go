package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/2beens/fittrack/internal/sessions"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
)

func newSweepCmd() *cobra.Command {
	var idleTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one idle sweep now and list the auto stopped sessions",
		Long: `Runs the same idle sweep as the service does on its interval.
The redis sweep lock is honoured, so a sweep that is already running
on one of the service replicas makes this one a no-op.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := loadDeps(ctx, true)
			if err != nil {
				return err
			}
			defer d.close()

			if idleTimeout > 0 {
				d.cfg.SessionIdleTimeout.Duration = idleTimeout
			}

			metricsManager := metrics.NewManager("fittrack", "ctl", prometheus.NewRegistry())
			sweeper := sessions.NewSweeper(
				d.sessionsService(metricsManager),
				d.redisClient,
				metricsManager,
				d.cfg.SweepInterval.Duration,
			)

			stopped, skipped, err := sweeper.SweepOnce(ctx)
			if err != nil {
				return fmt.Errorf("idle sweep: %w", err)
			}
			if skipped {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("another sweep is running, nothing done"))
				return nil
			}

			renderSessions(cmd.OutOrStdout(), stopped)
			return nil
		},
	}

	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", 0, "override the configured session idle timeout")
	return cmd
}

func renderSessions(out io.Writer, stopped []sessions.Session) {
	if len(stopped) == 0 {
		fmt.Fprintln(out, color.GreenString("no idle sessions"))
		return
	}

	table := tablewriter.NewTable(out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
	table.Header([]string{"Session", "User", "Date", "Started", "Last Activity", "Ended", "Status"})

	for _, s := range stopped {
		ended := "-"
		if s.EndTime != nil {
			ended = s.EndTime.UTC().Format(time.DateTime)
		}
		_ = table.Append([]string{
			strconv.Itoa(s.ID),
			strconv.Itoa(s.UserID),
			s.Date,
			s.StartTime.UTC().Format(time.DateTime),
			s.LastActivity.UTC().Format(time.DateTime),
			ended,
			statusColor(s.Status),
		})
	}
	_ = table.Render()

	fmt.Fprintf(out, "%s auto stopped\n", color.HiCyanString("%d", len(stopped)))
}

func statusColor(status sessions.Status) string {
	switch status {
	case sessions.StatusActive:
		return color.GreenString(status.String())
	case sessions.StatusAutoStopped:
		return color.YellowString(status.String())
	default:
		return status.String()
	}
}
