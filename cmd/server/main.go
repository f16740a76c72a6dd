package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/familyfinance/internal/advisor"
	"github.com/mmynk/familyfinance/internal/auth"
	"github.com/mmynk/familyfinance/internal/config"
	"github.com/mmynk/familyfinance/internal/events"
	"github.com/mmynk/familyfinance/internal/middleware"
	"github.com/mmynk/familyfinance/internal/reminder"
	"github.com/mmynk/familyfinance/internal/service"
	"github.com/mmynk/familyfinance/internal/storage/sqlite"
	"github.com/mmynk/familyfinance/pkg/api/apiconnect"
	"github.com/mmynk/familyfinance/pkg/logging"
)

func main() {
	config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logCloser := logging.SetupWithOptions(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logCloser.Close()

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dir := filepath.Dir(cfg.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	publisher := newPublisher(cfg)
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	jwtManager := auth.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL)
	directory := auth.NewDirectory(cfg.FamilyMembers)
	slog.Info("Family members loaded", "members", directory.Members(), "collectors", cfg.JuntaCollectors)

	interceptors := connect.WithInterceptors(
		middleware.RequireSession(jwtManager,
			apiconnect.SessionServiceListMembersProcedure,
			apiconnect.SessionServiceSelectMemberProcedure,
		),
		middleware.LoggingInterceptor(),
		metrics.Interceptor(),
	)

	mux := http.NewServeMux()

	// Register Connect services
	sessionPath, sessionHandler := apiconnect.NewSessionServiceHandler(
		service.NewSessionService(directory, jwtManager), interceptors)
	mux.Handle(sessionPath, sessionHandler)

	txnPath, txnHandler := apiconnect.NewTransactionServiceHandler(
		service.NewTransactionService(store, cfg.DefaultCurrency, cfg.DisplayLocale), interceptors)
	mux.Handle(txnPath, txnHandler)

	juntaPath, juntaHandler := apiconnect.NewJuntaServiceHandler(
		service.NewJuntaService(store, service.JuntaConfig{
			Collectors: cfg.JuntaCollectors,
			Locale:     cfg.DisplayLocale,
			Publisher:  publisher,
			Metrics:    metrics,
		}), interceptors)
	mux.Handle(juntaPath, juntaHandler)

	advisorClient := advisor.NewClient(cfg.AdvisorBaseURL, cfg.AdvisorAPIKey, cfg.AdvisorModel)
	if !advisorClient.Configured() {
		slog.Warn("Advisor disabled, ADVISOR_API_KEY is not set")
	}
	advisorPath, advisorHandler := apiconnect.NewAdvisorServiceHandler(
		service.NewAdvisorService(store, advisorClient), interceptors)
	mux.Handle(advisorPath, advisorHandler)

	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	if cfg.StaticPath != "" {
		staticHandler, err := staticFiles(cfg.StaticPath)
		if err != nil {
			return err
		}
		mux.Handle("/", staticHandler)
	}

	scheduler := reminder.NewScheduler(
		reminder.NewJob(store, publisher, slog.Default()), slog.Default(), cfg.ReminderSchedule)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start reminders: %w", err)
	}
	defer func() { <-scheduler.Stop().Done() }()

	// Add logging and CORS middleware, then wrap with h2c for HTTP/2 without
	// TLS (required for Connect streaming)
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newPublisher connects to RabbitMQ when AMQP_URL is set and logs events otherwise.
func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NewLogPublisher(slog.Default())
	}
	pub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, logging events instead", "error", err)
		return events.NewLogPublisher(slog.Default())
	}
	slog.Info("Publishing events to RabbitMQ", "exchange", cfg.AMQPExchange)
	return pub
}

// staticFiles serves the web client from dir, falling back to index.html.
func staticFiles(dir string) (http.Handler, error) {
	staticDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown Connect procedures are not pages
		if strings.HasPrefix(r.URL.Path, "/familyfinance.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}), nil
}

// loggingMiddleware logs non-RPC requests; RPCs are logged by the Connect interceptor.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/familyfinance.v1.") {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
