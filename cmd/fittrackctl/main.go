// Command fittrackctl is the operator tool: manual idle sweeps, the MCP server
// over stdio and schema management.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/fittrack/internal/activity"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/logging"
	"github.com/2beens/fittrack/internal/sessions"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
)

var (
	env        string
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "fittrackctl",
	Short:         "fittrack operator tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// stdout belongs to command output (and to the MCP protocol)
		log.SetOutput(os.Stderr)
		log.SetLevel(logging.GetLevel(logLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(newSweepCmd(), newMCPCmd(), newSchemaCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// deps are the stores a command needs; close releases them.
type deps struct {
	cfg         *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
}

func loadDeps(ctx context.Context, withRedis bool) (*deps, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBPassword: os.Getenv("FITTRACK_POSTGRES_PASS"),
	})
	if err != nil {
		return nil, fmt.Errorf("db pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(pingCtx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	d := &deps{cfg: cfg, dbPool: dbPool}
	if withRedis {
		d.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("FITTRACK_REDIS_PASS"),
		})
	}

	return d, nil
}

func (d *deps) sessionsService(metricsManager *metrics.Manager) *sessions.Service {
	catalogService := catalog.NewService(catalog.NewRepo(d.dbPool), d.cfg.CatalogCacheTTL.Duration)
	return sessions.NewService(
		sessions.NewRepo(d.dbPool),
		catalogService,
		activity.NewService(activity.NewRepo(d.dbPool)),
		metricsManager,
		d.cfg.SessionIdleTimeout.Duration,
	)
}

func (d *deps) close() {
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			log.Warnf("close redis client: %s", err)
		}
	}
	d.dbPool.Close()
}
