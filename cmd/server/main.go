package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"idsforge/internal/audit"
	"idsforge/internal/bsdd"
	"idsforge/internal/checker"
	"idsforge/internal/ids/catalog"
	"idsforge/internal/ids/handler"
	idsmetrics "idsforge/internal/ids/metrics"
	"idsforge/internal/ids/service"
	"idsforge/internal/ids/store"
	jwttoken "idsforge/internal/jwt_token"
	"idsforge/internal/platform/config"
	"idsforge/internal/platform/httpserver"
	"idsforge/internal/platform/logger"
	platformmetrics "idsforge/internal/platform/metrics"
	"idsforge/internal/platform/middleware"
	platformredis "idsforge/internal/platform/redis"
)

// auditBufferSize bounds the in-flight audit events between the request path
// and the kafka worker.
const auditBufferSize = 256

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	documents, cleanupStore, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanupStore()

	auditPublisher, cleanupAudit, err := buildAudit(ctx, cfg, log)
	if err != nil {
		log.Error("audit setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanupAudit()

	serviceOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(idsmetrics.New()),
		service.WithAuditPublisher(auditPublisher),
	}
	if cfg.Checker.BaseURL != "" {
		serviceOpts = append(serviceOpts, service.WithChecker(checker.New(cfg.Checker.BaseURL, checker.WithLogger(log))))
	}
	documentService := service.New(documents, serviceOpts...)

	searcher, cleanupSearch, err := buildSearcher(cfg, log)
	if err != nil {
		log.Error("dictionary setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanupSearch()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "idsforge", "idsforge")
	apiHandler := handler.New(
		documentService,
		searcher,
		catalog.New(),
		jwttoken.NewJWTServiceAdapter(jwtService),
		cfg.APIKeyHash,
		platformmetrics.New(),
		log,
	)

	router := chi.NewRouter()
	router.Use(middleware.Recover(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	apiHandler.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting idsforge", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func buildStore(ctx context.Context, cfg config.Config) (service.DocumentStore, func(), error) {
	if cfg.PostgresURL == "" {
		return store.NewInMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	pg := store.NewPostgres(db)
	if err := pg.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return pg, func() { db.Close() }, nil
}

// buildAudit returns the audit publisher. With Kafka configured, events are
// buffered in a channel sink and drained by a worker so the request path
// never waits on the broker.
func buildAudit(ctx context.Context, cfg config.Config, log *slog.Logger) (service.AuditPublisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return audit.NewPublisher(audit.NewMemorySink()), func() {}, nil
	}

	kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
	if err != nil {
		return nil, nil, err
	}

	buffer := audit.NewChannelSink(auditBufferSize, log)
	worker := audit.NewWorker(kafkaSink, buffer.Events(), log)
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	return audit.NewPublisher(buffer), kafkaSink.Close, nil
}

func buildSearcher(cfg config.Config, log *slog.Logger) (handler.Searcher, func(), error) {
	if cfg.BSDD.BaseURL == "" {
		return nil, func() {}, nil
	}

	opts := []bsdd.Option{
		bsdd.WithDictionaries(cfg.BSDD.Dictionaries),
		bsdd.WithLogger(log),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {}
	if redisClient != nil {
		opts = append(opts, bsdd.WithCache(bsdd.NewRedisCache(redisClient), cfg.BSDD.CacheTTL))
		cleanup = func() { _ = redisClient.Close() }
	} else {
		opts = append(opts, bsdd.WithCache(bsdd.NewMemoryCache(), cfg.BSDD.CacheTTL))
	}

	return bsdd.New(cfg.BSDD.BaseURL, opts...), cleanup, nil
}
