package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/ipinfo/go/v2/ipinfo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fittrack/internal/activity"
	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/barcode"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/geoip"
	"github.com/2beens/fittrack/internal/mcp"
	"github.com/2beens/fittrack/internal/meals"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/sessions"
	"github.com/2beens/fittrack/internal/summary"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/internal/workouts"
)

const authTokensCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	usersRepo       *users.Repo
	workoutsRepo    *workouts.Repo
	mealsRepo       *meals.Repo
	authService     *auth.Service
	catalogService  *catalog.Service
	activityService *activity.Service
	sessionsService *sessions.Service
	summaryService  *summary.Service
	tzResolver      *geoip.Resolver
	barcodeClient   *barcode.Client
	sweeper         *sessions.Sweeper

	// background jobs (sweeper, auth tokens cleanup) must be done before the db pool is closed
	background sync.WaitGroup

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	IpInfoAPIKey            string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.ApplySchema(ctx, dbPool); err != nil {
		return nil, err
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fittrack", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fittrack-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		redisClient: rdb,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}
	s.wireServices(
		dbPool,
		geoip.NewIPInfoClient(tracedHttpClient, params.IpInfoAPIKey),
		tracedHttpClient,
	)

	return s, nil
}

func (s *Server) wireServices(q db.Querier, ipInfoClient *ipinfo.Client, httpClient *http.Client) {
	s.usersRepo = users.NewRepo(q)
	s.workoutsRepo = workouts.NewRepo(q)
	s.mealsRepo = meals.NewRepo(q)

	s.catalogService = catalog.NewService(catalog.NewRepo(q), s.config.CatalogCacheTTL.Duration)
	s.activityService = activity.NewService(activity.NewRepo(q))
	s.authService = auth.NewAuthService(s.usersRepo, s.catalogService, auth.DefaultTTL, s.redisClient)
	s.sessionsService = sessions.NewService(
		sessions.NewRepo(q),
		s.catalogService,
		s.activityService,
		s.metricsManager,
		s.config.SessionIdleTimeout.Duration,
	)
	s.summaryService = summary.NewService(s.usersRepo, s.mealsRepo, s.workoutsRepo, s.sessionsService)
	s.sweeper = sessions.NewSweeper(s.sessionsService, s.redisClient, s.metricsManager, s.config.SweepInterval.Duration)

	s.tzResolver = geoip.NewResolver(ipInfoClient, s.redisClient)
	s.barcodeClient = barcode.NewClient(s.config.BarcodeApiURL, httpClient)
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fittrack-router"))

	api := r.PathPrefix("/api").Subrouter()

	authHandler := auth.NewHandler(s.authService)
	authRouter := api.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", authHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authRouter.HandleFunc("/login", authHandler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	// rate limit the auth endpoints to slow down password guessing
	authRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"login",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	usersHandler := users.NewHandler(s.usersRepo)
	api.HandleFunc("/user/profile", usersHandler.HandleProfile).Methods("GET", "OPTIONS").Name("user-profile")
	api.HandleFunc("/user/settings", usersHandler.HandleUpdateSettings).Methods("PUT", "OPTIONS").Name("user-settings")

	summaryHandler := summary.NewHandler(s.summaryService, s.tzResolver)
	api.HandleFunc("/user/summary", summaryHandler.HandleDaily).Methods("GET", "OPTIONS").Name("daily-summary")
	api.HandleFunc("/user/summary/week", summaryHandler.HandleWeekly).Methods("GET", "OPTIONS").Name("weekly-summary")

	sessionsHandler := sessions.NewHandler(s.sessionsService, s.tzResolver)
	api.HandleFunc("/sessions/start", sessionsHandler.HandleStart).Methods("POST", "OPTIONS").Name("start-session")
	api.HandleFunc("/sessions/active", sessionsHandler.HandleActive).Methods("GET", "OPTIONS").Name("active-session")
	api.HandleFunc("/sessions", sessionsHandler.HandleByDate).Methods("GET", "OPTIONS").Name("sessions-by-date")
	api.HandleFunc("/sessions/log", sessionsHandler.HandleLogSet).Methods("POST", "OPTIONS").Name("log-set")
	api.HandleFunc("/sessions/log/{logId}", sessionsHandler.HandleDeleteLog).Methods("DELETE", "OPTIONS").Name("delete-log")
	api.HandleFunc("/sessions/{id}/stop", sessionsHandler.HandleStop).Methods("PUT", "OPTIONS").Name("stop-session")
	api.HandleFunc("/sessions/{id}/logs", sessionsHandler.HandleListLogs).Methods("GET", "OPTIONS").Name("session-logs")

	catalogHandler := catalog.NewHandler(s.catalogService)
	api.HandleFunc("/exercises", catalogHandler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	api.HandleFunc("/exercises/muscle-groups", catalogHandler.HandleMuscleGroups).Methods("GET", "OPTIONS").Name("muscle-groups")
	api.HandleFunc("/exercises/equipment-types", catalogHandler.HandleEquipmentTypes).Methods("GET", "OPTIONS").Name("equipment-types")
	api.HandleFunc("/exercises/my-equipment", catalogHandler.HandleMyEquipment).Methods("GET", "OPTIONS").Name("my-equipment")
	api.HandleFunc("/exercises/my-equipment", catalogHandler.HandleSetMyEquipment).Methods("PUT").Name("set-my-equipment")

	workoutsHandler := workouts.NewHandler(s.workoutsRepo, s.tzResolver)
	api.HandleFunc("/workouts", workoutsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout")
	api.HandleFunc("/workouts", workoutsHandler.HandleList).Methods("GET").Name("list-workouts")
	api.HandleFunc("/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")

	mealsHandler := meals.NewHandler(s.mealsRepo, s.tzResolver)
	api.HandleFunc("/meals", mealsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-meal")
	api.HandleFunc("/meals", mealsHandler.HandleList).Methods("GET").Name("list-meals")
	api.HandleFunc("/meals/recent", mealsHandler.HandleRecent).Methods("GET", "OPTIONS").Name("recent-meals")
	api.HandleFunc("/meals/{id}", mealsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-meal")
	api.HandleFunc("/favorites", mealsHandler.HandleCreateFavorite).Methods("POST", "OPTIONS").Name("new-favorite")
	api.HandleFunc("/favorites", mealsHandler.HandleListFavorites).Methods("GET").Name("list-favorites")
	api.HandleFunc("/favorites/{id}", mealsHandler.HandleDeleteFavorite).Methods("DELETE", "OPTIONS").Name("delete-favorite")

	barcodeHandler := barcode.NewHandler(s.barcodeClient)
	api.HandleFunc("/barcode/{barcode}", barcodeHandler.HandleLookup).Methods("GET", "OPTIONS").Name("barcode-lookup")

	activityHandler := activity.NewHandler(s.activityService)
	api.HandleFunc("/activity/events/page/{page}/size/{size}", activityHandler.HandleList).Methods("GET", "OPTIONS").Name("activity-events")

	mcpServer := mcp.NewServer(s.summaryService, s.sessionsService)
	r.PathPrefix("/mcp").Handler(mcpServer.HTTPHandler()).Name("mcp")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.startBackgroundJobs(ctx)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// startBackgroundJobs runs until ctx is cancelled.
func (s *Server) startBackgroundJobs(ctx context.Context) {
	if s.config.SweeperEnabled {
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			s.sweeper.Run(ctx)
		}()
	} else {
		log.Warnln("idle sweeper disabled, abandoned sessions stay active")
	}

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		ticker := time.NewTicker(authTokensCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.authService.ScanAndClean(ctx)
			}
		}
	}()
}

// GracefulShutdown expects the ctx given to Serve to be cancelled already.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	log.Debugln("waiting for background jobs ...")
	s.background.Wait()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
