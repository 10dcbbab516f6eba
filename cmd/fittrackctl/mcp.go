package main

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/2beens/fittrack/internal/mcp"
	"github.com/2beens/fittrack/internal/meals"
	"github.com/2beens/fittrack/internal/summary"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/internal/workouts"
)

func newMCPCmd() *cobra.Command {
	var userID int

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the fittrack MCP tools over stdio for one user",
		Long: `Starts an MCP server on stdin/stdout, for local assistants.
Every tool call acts as --user-id. The same tools are served by the
main service at /mcp, authenticated with the caller's bearer token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user-id is required")
			}

			ctx := cmd.Context()
			d, err := loadDeps(ctx, false)
			if err != nil {
				return err
			}
			defer d.close()

			metricsManager := metrics.NewManager("fittrack", "mcp", prometheus.NewRegistry())
			sessionsService := d.sessionsService(metricsManager)
			summaryService := summary.NewService(
				users.NewRepo(d.dbPool),
				meals.NewRepo(d.dbPool),
				workouts.NewRepo(d.dbPool),
				sessionsService,
			)

			return mcp.NewServer(summaryService, sessionsService).
				WithUserID(userID).
				ServeStdio(ctx)
		},
	}

	cmd.Flags().IntVar(&userID, "user-id", 0, "user the tools act as")
	return cmd
}
