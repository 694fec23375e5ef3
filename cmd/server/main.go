package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vatchecker/internal/audit"
	"vatchecker/internal/host"
	jwttoken "vatchecker/internal/jwt_token"
	"vatchecker/internal/platform/config"
	"vatchecker/internal/platform/httpserver"
	"vatchecker/internal/platform/logger"
	"vatchecker/internal/platform/metrics"
	"vatchecker/internal/platform/postgres"
	"vatchecker/internal/platform/redis"
	"vatchecker/internal/vat/country"
	"vatchecker/internal/vat/format"
	"vatchecker/internal/vat/handler"
	vatmetrics "vatchecker/internal/vat/metrics"
	"vatchecker/internal/vat/ports"
	"vatchecker/internal/vat/providers/vies"
	"vatchecker/internal/vat/service"
	"vatchecker/internal/vat/store"
	id "vatchecker/pkg/domain"
	"vatchecker/pkg/platform/circuit"
	"vatchecker/pkg/platform/httputil"
	"vatchecker/pkg/platform/middleware/logging"
	"vatchecker/pkg/platform/middleware/metadata"
	"vatchecker/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		slog.Error("vatchecker exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	vatMetrics := vatmetrics.New()
	registry := country.NewRegistry(cfg.VAT.Countries)
	settings := host.NewSettings(registry, host.SettingsConfig{
		LiveMode:        cfg.VAT.LiveMode,
		OriginCountryID: id.CountryID(cfg.VAT.OriginCountryID),
		NoTaxGroupID:    cfg.VAT.NoTaxGroupID,
		OfflinePolicy:   cfg.VAT.OfflinePolicy,
	})

	breaker := circuit.New(vies.ProviderID,
		circuit.WithFailureThreshold(cfg.VIES.BreakerThreshold),
		circuit.WithCooldown(cfg.VIES.BreakerCooldown),
	)
	verifier := vies.New(cfg.VIES.URL,
		vies.WithTimeout(cfg.VIES.Timeout),
		vies.WithRateLimit(cfg.VIES.RateLimit, cfg.VIES.RateBurst),
		vies.WithBreaker(breaker),
		vies.WithLogger(log),
		vies.WithMetrics(vatMetrics),
	)

	var cache ports.TransientCache = store.NewInMemoryCache(cfg.VAT.FreshnessWindow,
		store.WithPolicyTTL(cfg.VIES.BreakerCooldown))
	if redisClient != nil {
		cache = store.NewRedisCache(redisClient.Client, cfg.VAT.FreshnessWindow, cfg.VIES.BreakerCooldown)
	}

	var (
		records   ports.RecordStore
		addresses ports.AddressProvider
		countries ports.CountryLookup
	)
	if db != nil {
		records = store.NewPostgresRecordStore(db)
		addresses = host.NewPostgresAddresses(db)
		countries = host.NewPostgresCountries(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		records = store.NewInMemoryRecordStore()
		addresses = host.NewInMemoryAddresses()
		countries = host.SeedCountries(country.All())
	}

	sink, closeSink, err := auditSink(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer flushAudit(log, closeSink, cfg.Server.ShutdownTimeout)
	publisher, err := audit.NewPublisher(sink, audit.WithLogger(log))
	if err != nil {
		return err
	}

	svc, err := service.New(format.New(registry), verifier, cache, records, settings,
		service.WithLogger(log),
		service.WithMetrics(vatMetrics),
		service.WithAuditPublisher(publisher),
		service.WithFreshnessWindow(cfg.VAT.FreshnessWindow),
		service.WithAddresses(addresses),
		service.WithCountries(countries),
	)
	if err != nil {
		return fmt.Errorf("build validation service: %w", err)
	}
	tokens, err := jwttoken.NewJWTService(cfg.Token.SigningKey, cfg.Token.TTL)
	if err != nil {
		return fmt.Errorf("build token service: %w", err)
	}

	r := chi.NewRouter()
	r.Use(metadata.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(logging.Middleware(log))
	r.Use(metrics.New().Middleware)
	r.Get("/health", healthHandler(db, redisClient))
	r.Handle("/metrics", promhttp.Handler())
	handler.New(svc, tokens, countries, log).Register(r)

	srv := httpserver.New(cfg.Server.Addr, r)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting vatchecker",
			"addr", cfg.Server.Addr,
			"live_mode", cfg.VAT.LiveMode,
			"offline_policy", cfg.VAT.OfflinePolicy,
			"countries", len(cfg.VAT.Countries),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// flushAudit drains buffered audit events on every exit path of run,
// including a listener failure.
func flushAudit(log *slog.Logger, closeSink func(context.Context) error, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := closeSink(ctx); err != nil {
		log.Warn("failed to flush audit events", "error", err)
	}
}

// auditSink selects Kafka when brokers are configured, the log otherwise.
func auditSink(ctx context.Context, cfg config.Kafka, log *slog.Logger) (audit.Sink, func(context.Context) error, error) {
	if len(cfg.Brokers) == 0 {
		return audit.NewLogSink(log), func(context.Context) error { return nil }, nil
	}
	sink, err := audit.NewKafkaSink(cfg.Brokers, cfg.AuditTopic, log)
	if err != nil {
		return nil, nil, err
	}
	if err := sink.EnsureTopic(ctx, 3, 1); err != nil {
		_ = sink.Close(ctx)
		return nil, nil, err
	}
	return sink, sink.Close, nil
}

type healthResponse struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres,omitempty"`
	Redis    string `json:"redis,omitempty"`
}

func healthHandler(db *sql.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if db != nil {
			resp.Postgres = "ok"
			if err := db.PingContext(ctx); err != nil {
				resp.Postgres, resp.Status, status = "down", "degraded", http.StatusServiceUnavailable
			}
		}
		if redisClient != nil {
			resp.Redis = "ok"
			if err := redisClient.Health(ctx); err != nil {
				resp.Redis, resp.Status, status = "down", "degraded", http.StatusServiceUnavailable
			}
		}
		httputil.WriteJSON(w, status, resp)
	}
}
