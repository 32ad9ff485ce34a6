package internal

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/liftlog/internal/admin"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/cloudsync"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/views"
	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config        *config.Config
	store         *records.Store
	viewsHandler  *views.Handler
	profileClient *cloudsync.Client
	syncBridge    *cloudsync.Bridge

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("liftlog", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // will be set to 1 when all is set and ran

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

	authService := auth.NewService(auth.DefaultTTL, auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	store := records.NewStore(rdb)
	viewsHandler := views.NewHandler(store)
	profileClient := cloudsync.NewClient(params.Config.ProfileStoreBaseURL, tracedHttpClient)
	syncBridge := cloudsync.NewBridge(profileClient, store, metricsManager, viewsHandler.InvalidateDashboard)

	return &Server{
		config:        params.Config,
		versionInfo:   params.VersionInfo,
		store:         store,
		viewsHandler:  viewsHandler,
		profileClient: profileClient,
		syncBridge:    syncBridge,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("liftlog-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	authHandler := auth.NewHandler(s.authService, func(userID string) {
		// fresh sign in, reconcile the partition against the profile store
		s.syncBridge.ReconcileAsync(records.PartitionFor(userID))
	})
	loginSubrouter := r.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", authHandler.HandleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/login/admin", authHandler.HandleAdminLogin).
		Methods("POST", "OPTIONS").Name("admin-login")
	loginSubrouter.
		HandleFunc("/logout", authHandler.HandleLogout).
		Methods("GET", "OPTIONS").Name("logout")
	// rate limit the login endpoints to prevent abuse
	loginSubrouter.Use(middleware.RateLimit(
		reqRateLimiter, "login",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	workoutsHandler := workouts.NewHandler(s.store, s.metricsManager, s.viewsHandler.InvalidateDashboard)
	r.HandleFunc("/exercises", workoutsHandler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises", workoutsHandler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises/{id}", workoutsHandler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	r.HandleFunc("/exercises/{id}/progression", workoutsHandler.HandleProgression).Methods("GET", "OPTIONS").Name("exercise-progression")
	r.HandleFunc("/workouts", workoutsHandler.HandleAddWorkout).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts", workoutsHandler.HandleListWorkouts).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/recent", workoutsHandler.HandleRecentWorkouts).Methods("GET", "OPTIONS").Name("recent-workouts")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDeleteWorkout).Methods("DELETE", "OPTIONS").Name("delete-workout")

	viewsHandler := s.viewsHandler
	r.HandleFunc("/views/dashboard", viewsHandler.HandleDashboardView).Methods("GET", "OPTIONS").Name("view-dashboard")
	r.HandleFunc("/views/log", viewsHandler.HandleLogView).Methods("GET", "OPTIONS").Name("view-log")
	r.HandleFunc("/views/exercises", viewsHandler.HandleExercisesView).Methods("GET", "OPTIONS").Name("view-exercises")
	r.HandleFunc("/views/history", viewsHandler.HandleHistoryView).Methods("GET", "OPTIONS").Name("view-history")
	r.HandleFunc("/views/active", viewsHandler.HandleGetActiveView).Methods("GET", "OPTIONS").Name("get-active-view")
	r.HandleFunc("/views/active", viewsHandler.HandleSetActiveView).Methods("PUT", "OPTIONS").Name("set-active-view")

	syncHandler := cloudsync.NewHandler(s.syncBridge)
	syncSubrouter := r.PathPrefix("/sync").Subrouter()
	syncSubrouter.
		HandleFunc("", syncHandler.HandleTriggerSync).
		Methods("POST", "OPTIONS").Name("trigger-sync")
	syncSubrouter.
		HandleFunc("/status", syncHandler.HandleSyncStatus).
		Methods("GET", "OPTIONS").Name("sync-status")
	// profile store is an external service, keep the trigger endpoint tame
	syncSubrouter.Use(middleware.RateLimit(
		reqRateLimiter, "sync",
		s.config.SyncRateLimitAllowedPerMin,
		s.metricsManager,
	))

	adminHandler := admin.NewHandler(s.store, s.viewsHandler.InvalidateDashboard)
	r.HandleFunc("/admin/partitions/{partition}", adminHandler.HandlePurgePartition).
		Methods("DELETE", "OPTIONS").Name("purge-partition")

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "liftlog backend, at your service")
	}).Methods("GET").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
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
		promhttp.HandlerOpts{},
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}
