// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal/registry
// packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"namereg/internal/platform/auth"
	"namereg/internal/platform/config"
	"namereg/internal/platform/httpserver"
	"namereg/internal/platform/kafka"
	"namereg/internal/platform/logger"
	platformmetrics "namereg/internal/platform/metrics"
	"namereg/internal/platform/middleware"
	"namereg/internal/platform/postgres"
	"namereg/internal/platform/redis"
	"namereg/internal/registry"
	"namereg/internal/registry/handler"
	regmetrics "namereg/internal/registry/metrics"
	"namereg/internal/registry/service"
	"namereg/internal/registry/sink"
	id "namereg/pkg/domain"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	admin, err := adminAccount(cfg)
	if err != nil {
		log.Error("invalid admin account", "error", err)
		os.Exit(1)
	}
	log.Info("administrative owner", "account", admin)

	// External collaborators; each is optional and skipped when not
	// configured.
	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	kafkaClient, err := kafka.NewClient(ctx, cfg.Kafka)
	if err != nil {
		log.Error("connect kafka", "error", err)
		os.Exit(1)
	}

	var eventStore sink.EventStore
	if db != nil {
		pgStore := sink.NewPostgresEventStore(db)
		if err := pgStore.Migrate(ctx); err != nil {
			log.Error("migrate event store", "error", err)
			os.Exit(1)
		}
		eventStore = pgStore
	} else {
		eventStore = sink.NewInMemoryEventStore(1024)
	}

	buffered := sink.NewBuffered(cfg.EventBufferSize, log)
	sinks := []sink.Sink{
		sink.NewSlog(log),
		sink.NewCounters(),
		buffered,
	}
	if redisClient != nil {
		sinks = append(sinks, sink.NewRedis(redisClient, cfg.Redis.Channel, log))
	}
	var kafkaSink *sink.Kafka
	if kafkaClient != nil {
		kafkaSink = sink.NewKafka(kafkaClient, cfg.Kafka.Topic, log)
		sinks = append(sinks, kafkaSink)
	}

	reg := registry.New(admin, sink.NewFanout(sinks...))
	svc := service.New(reg, log,
		service.WithMetrics(regmetrics.New()),
		service.WithEventStore(eventStore),
	)

	httpMetrics := platformmetrics.New()
	validator := auth.NewValidator(cfg.JWTSigningKey)
	h := handler.New(svc, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(httpMetrics.Middleware)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				log.Warn("health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, log))
		h.Register(r)
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(cfg.AdminToken, log))
		h.RegisterAdmin(r)
	})

	srv := httpserver.New(cfg.Addr, router)
	worker := sink.NewWorker(eventStore, buffered, log)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting namereg", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := worker.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if kafkaSink != nil {
			if err := kafkaSink.Close(shutdownCtx); err != nil {
				log.Warn("kafka flush failed", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	if db != nil {
		_ = db.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// adminAccount resolves the administrative owner identity. A deployment
// pins it through the environment; without one a fresh identity is
// generated and logged so operators can record it.
func adminAccount(cfg config.Config) (id.AccountID, error) {
	if cfg.AdminAccount == "" {
		return id.AccountID(uuid.New()), nil
	}
	return id.ParseAccountID(cfg.AdminAccount)
}
