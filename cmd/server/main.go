package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourusername/guardrail/api"
	"github.com/yourusername/guardrail/metrics"
	"github.com/yourusername/guardrail/middleware"
	"github.com/yourusername/guardrail/pkg/throttlelog"
	"github.com/yourusername/guardrail/store"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	sink, err := throttlelog.NewSink(throttlelog.IsProduction())
	if err != nil {
		panic(err)
	}
	defer sink.Sync()

	if err := run(sink); err != nil {
		sink.Fatal("server stopped", zap.Error(err))
	}
}

func run(sink *zap.Logger) error {
	cfg, err := loadServerConfig(os.Getenv("GUARDRAIL_CONFIG"))
	if err != nil {
		return err
	}

	// Prometheus registry plus the JSON snapshot behind /stats
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsTracker := metrics.NewMetrics(reg)

	opts := []throttlelog.Option{
		throttlelog.WithSink(sink),
		throttlelog.WithConfig(cfg.Throttle),
		throttlelog.WithRecorder(metricsTracker),
	}

	// Choose storage backend for the throttle window
	if cfg.Redis.Addr != "" {
		ttl, _ := cfg.Redis.ttl()
		redisStore := store.NewRedisStore(store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      ttl,
		})
		defer redisStore.Close()

		if err := redisStore.Ping(); err != nil {
			return err
		}
		sink.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		opts = append(opts, throttlelog.WithStore(redisStore, "server"))
	} else {
		sink.Info("using in-memory throttle window")
	}

	logger, err := throttlelog.New(opts...)
	if err != nil {
		return err
	}

	handler := api.NewHandler(cfg.UploadPolicy, logger, metricsTracker)
	statsHandler := api.NewStatsHandler(metricsTracker)
	guard := middleware.NewUploadGuard(middleware.Config{
		Policy:   cfg.UploadPolicy,
		Recorder: metricsTracker,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Post("/validate", handler.ValidateUpload)
	r.With(guard.Middleware).Post("/upload", handler.AcceptUpload)
	r.Post("/logs", handler.RelayLog)
	r.Method(http.MethodGet, "/stats", statsHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/health", healthHandler)
	r.Get("/dashboard", dashboardHandler)
	r.Get("/", rootHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		sink.Info("guardrail listening",
			zap.String("addr", srv.Addr),
			zap.Bool("suppressed", logger.Suppressed()),
			zap.Int64("max_upload_bytes", cfg.UploadPolicy.MaxSizeBytes),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sink.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "guardrail",
		"version": "1.0.0",
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service": "Guardrail",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /validate": "Pre-validate a file before upload",
			"POST /upload":   "Upload files through the upload guard",
			"POST /logs":     "Relay a client log entry",
			"GET /stats":     "Throttle and upload counters (JSON)",
			"GET /metrics":   "Prometheus metrics",
			"GET /dashboard": "Live dashboard (HTML)",
			"GET /health":    "Health check",
		},
	})
}
