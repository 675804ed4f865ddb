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

	"golang.org/x/sync/errgroup"

	"memoria/internal/audit"
	auditstore "memoria/internal/audit/store"
	"memoria/internal/auth"
	authhandler "memoria/internal/auth/handler"
	authstore "memoria/internal/auth/store"
	memoriahttp "memoria/internal/http"
	jwttoken "memoria/internal/jwt_token"
	"memoria/internal/note"
	notehandler "memoria/internal/note/handler"
	notestore "memoria/internal/note/store"
	"memoria/internal/person"
	personhandler "memoria/internal/person/handler"
	personstore "memoria/internal/person/store"
	"memoria/internal/platform/config"
	"memoria/internal/platform/httpserver"
	"memoria/internal/platform/logger"
	"memoria/internal/platform/metrics"
	"memoria/internal/platform/postgres"
	"memoria/internal/platform/redis"
	"memoria/internal/preference"
	preferencehandler "memoria/internal/preference/handler"
	preferencestore "memoria/internal/preference/store"
	vismetrics "memoria/internal/visibility/metrics"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	appMetrics := metrics.New()
	resolutionMetrics := vismetrics.New()

	// Stores: Postgres when a DSN is configured, in-memory otherwise.
	var (
		db         *sql.DB
		people     person.Store
		prefs      preference.Store
		notes      note.Store
		users      auth.Store
		auditStore audit.Store
	)
	if cfg.PostgresDSN != "" {
		var err error
		db, err = postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		people = personstore.NewPostgres(db)
		prefs = preferencestore.NewPostgres(db)
		notes = notestore.NewPostgres(db)
		users = authstore.NewPostgres(db)
		auditStore = auditstore.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		people = personstore.NewMemory()
		prefs = preferencestore.NewMemory()
		notes = notestore.NewMemory()
		users = authstore.NewMemory()
		auditStore = auditstore.NewMemory()
		log.Warn("no postgres DSN configured, using in-memory storage")
	}

	// Sessions: Redis when configured, in-memory otherwise.
	var sessions auth.SessionStore
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = authstore.NewRedisSessions(redisClient)
		log.Info("using redis session store")
	} else {
		sessions = authstore.NewMemorySessions()
	}

	// Audit pipeline: publisher feeds the worker, which persists events and
	// optionally mirrors them to Kafka.
	inbox := make(chan audit.Event, cfg.AuditBuffer)
	recorder := audit.NewPublisher(inbox, log)

	var sink audit.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("mirroring audit events to kafka", "topic", cfg.Kafka.AuditTopic)
	}
	auditWorker := audit.NewWorker(auditStore, sink, inbox, log)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	validator := jwttoken.NewJWTServiceAdapter(jwtService)

	personSvc := person.NewService(people, recorder)
	prefSvc := preference.NewService(prefs, recorder)
	noteSvc := note.NewService(notes, personSvc, prefSvc, recorder, log, resolutionMetrics)
	authSvc := auth.NewService(users, sessions, jwtService, recorder, log, appMetrics,
		cfg.TokenTTL, cfg.SessionTTL)

	if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	router := memoriahttp.NewRouter(memoriahttp.Handlers{
		Auth:       authhandler.New(authSvc, log, appMetrics, validator),
		Person:     personhandler.New(personSvc, log, appMetrics, validator),
		Preference: preferencehandler.New(prefSvc, log, appMetrics, validator),
		Note:       notehandler.New(noteSvc, log, appMetrics, validator),
	}, db, redisClient)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := auditWorker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
