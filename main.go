package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/config"
	"servicehub/database"
	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/routes"
	"servicehub/services/api"
	"servicehub/services/booking"
	"servicehub/services/session"
	"servicehub/utils"
	"servicehub/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := utils.InitTracing(rootCtx, utils.TracingConfig{
		Enabled:       config.AppConfig.OtelEnabled,
		ServiceName:   "servicehub",
		Environment:   config.AppConfig.Env,
		CollectorAddr: config.AppConfig.OtelCollectorAddr,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize tracing: %v", err)
	}

	store := newSessionStore(rootCtx, logger)

	// services.
	apiClient := api.NewClient(config.AppConfig.APIURL, config.AppConfig.APITimeout, logger)
	sealer := utils.NewSealer(config.AppConfig.SessionSecret)
	sessions := session.NewManager(store, apiClient, sealer, config.AppConfig.SessionTTL, logger)
	workflow := booking.NewWorkflow(apiClient, logger)

	cookie := middleware.CookieConfig{
		Secret: []byte(config.AppConfig.SessionSecret),
		TTL:    sessions.TTL(),
		Secure: config.IsProduction(),
	}

	authHandler := handlers.NewAuthHandler(sessions, apiClient, cookie)
	customerHandler := handlers.NewCustomerHandler(workflow, apiClient)
	providerHandler := handlers.NewProviderHandler(workflow)
	adminHandler := handlers.NewAdminHandler(workflow, apiClient, apiClient)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(authHandler, customerHandler, providerHandler, adminHandler)

	tmpl, err := views.Templates()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to parse templates: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.Tracing())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		Sessions:       sessions,
		Cookie:         cookie,
		AllowedOrigins: config.AppConfig.CORSOrigins,
	})

	utils.StartHealthMonitor(rootCtx, map[string]utils.HealthCheck{
		"sessionStore": sessions.Ping,
		"api":          apiClient.Ping,
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           middleware.CSRF(config.AppConfig.CSRFKey, config.IsProduction())(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s (API %s)...", srv.Addr, apiClient.BaseURL())
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("main: failed to flush traces", zap.Error(err))
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newSessionStore picks the session backend named by SESSION_STORE.
func newSessionStore(ctx context.Context, logger *zap.Logger) session.Store {
	switch config.AppConfig.SessionStore {
	case "memory":
		logger.Warn("Using in-memory session store; sessions are lost on restart")
		return session.NewMemoryStore()
	case "mongo":
		store, err := session.NewMongoStore(ctx, database.InitDB(), config.AppConfig.DatabaseName)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to prepare mongo session store: %v", err)
		}
		return store
	case "redis", "":
		return session.NewRedisStore(utils.GetSessionCacheClient())
	default:
		logger.Sugar().Fatalf("main: unknown SESSION_STORE %q", config.AppConfig.SessionStore)
		return nil
	}
}
