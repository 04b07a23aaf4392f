package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/chitwiser/internal/auth"
	"github.com/mmynk/chitwiser/internal/config"
	"github.com/mmynk/chitwiser/internal/engine"
	"github.com/mmynk/chitwiser/internal/events"
	"github.com/mmynk/chitwiser/internal/metrics"
	"github.com/mmynk/chitwiser/internal/service"
	"github.com/mmynk/chitwiser/internal/storage/sqlite"
	"github.com/mmynk/chitwiser/pkg/api"
	"github.com/mmynk/chitwiser/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nats, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix)
		if err != nil {
			return err
		}
		defer nats.Close()
		publisher = nats
		logger.Info("Publishing events to NATS", "url", cfg.NATSURL, "prefix", cfg.NATSSubjectPrefix)
	}

	directory := auth.NewDirectory(store)
	if cfg.AdminPhone != "" {
		admin, created, err := directory.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminPhone, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
		if created {
			logger.Info("Bootstrap admin created", "user_id", admin.ID, "phone", admin.Phone)
		}
	}

	eng := engine.New(store, directory,
		engine.WithPublisher(publisher),
		engine.WithMetrics(m),
		engine.WithLogger(logger),
		engine.WithDefaultPayoutMode(cfg.DefaultPayoutMode),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(loggingMiddleware(logger))
	r.Use(corsMiddleware)

	r.Handle(cfg.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	service.Mount(r, service.Deps{
		Engine:        eng,
		Authenticator: auth.NewPasswordAuthenticator(store),
		Directory:     directory,
		JWT:           auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Metrics:       m,
		Logger:        logger,
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", srv.Addr, "metrics", cfg.MetricsPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Request completed",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"remote_addr", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+strings.Join(api.ErrorHeaders, ", "))

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
