package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diagnosis/place-reservations/internal/cache"
	"github.com/diagnosis/place-reservations/internal/geodata"
	"github.com/diagnosis/place-reservations/internal/http/handlers"
	"github.com/diagnosis/place-reservations/internal/places"
	"github.com/diagnosis/place-reservations/internal/repo"
	"github.com/diagnosis/place-reservations/internal/repo/memory"
	"github.com/diagnosis/place-reservations/internal/repo/mongodb"
	"github.com/diagnosis/place-reservations/internal/repo/postgres"
	"github.com/diagnosis/place-reservations/internal/server"
	"github.com/diagnosis/place-reservations/internal/service"
	"github.com/diagnosis/place-reservations/pkg/auth"
	"github.com/diagnosis/place-reservations/pkg/config"
	"github.com/diagnosis/place-reservations/pkg/database"
	"github.com/diagnosis/place-reservations/pkg/events"
	"github.com/diagnosis/place-reservations/pkg/logger"
	mw "github.com/diagnosis/place-reservations/pkg/middleware"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"
)

type stores struct {
	users        repo.UsersRepo
	reservations repo.ReservationsRepo
	idempotency  mw.IdempotencyStore // nil unless the store can hold it
	health       mw.HealthCheck
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	checks := map[string]mw.HealthCheck{"store": st.health}

	var (
		placesCache places.Cache
		idem        = st.idempotency
	)
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		placesCache = cache.NewPlaces(rdb, cfg.Redis.CacheTTL)
		idem = cache.NewIdempotency(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		logger.Info().Msg("Redis cache enabled")
	}

	var pub events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		nc, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer nc.Close()
		pub = nc
		logger.Info().Str("url", cfg.NATS.URL).Msg("Publishing reservation events to NATS")
	}

	metrics := mw.NewMetrics()
	overpass := geodata.NewClient(geodata.Config{
		URL:     cfg.Overpass.URL,
		Timeout: cfg.Overpass.Timeout,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
			metrics.SetBreakerState(name, int(to))
		},
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := service.NewAuthService(st.users, tokens)
	resSvc := service.NewReservationService(st.reservations, pub)
	placesSvc := places.NewService(overpass, placesCache)

	handler := server.NewRouter(server.Deps{
		Auth:           handlers.NewAuthHandler(authSvc),
		Places:         handlers.NewPlacesHandler(placesSvc),
		Reservations:   handlers.NewReservationsHandler(resSvc),
		Tokens:         tokens,
		Metrics:        metrics,
		HealthChecks:   checks,
		Idempotency:    idem,
		CORSOrigins:    cfg.Server.CORSOrigins,
		AuthRateLimit:  cfg.Auth.RateLimit,
		AuthRateWindow: cfg.Auth.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Msg("Starting " + server.ServiceName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("Server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := database.Connect(ctx, cfg.Database.URL, database.PoolConfig{
			MaxConns:    cfg.Database.MaxConns,
			MinConns:    cfg.Database.MinConns,
			MaxLifetime: cfg.Database.MaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		idem := postgres.NewIdempotencyRepo(pool)
		go sweepIdempotency(ctx, idem)
		return &stores{
			users:        postgres.NewUsersRepo(pool),
			reservations: postgres.NewReservationsRepo(pool),
			idempotency:  idem,
			health:       pool.Ping,
			close:        pool.Close,
		}, nil

	case config.StoreMemory:
		logger.Warn().Msg("Using the in-memory store; data is lost on restart")
		return &stores{
			users:        memory.NewUsersRepo(),
			reservations: memory.NewReservationsRepo(),
			health:       func(context.Context) error { return nil },
			close:        func() {},
		}, nil

	default:
		client, err := database.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &stores{
			users:        mongodb.NewUsersRepo(db),
			reservations: mongodb.NewReservationsRepo(db),
			health:       func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:        func() { _ = client.Disconnect(context.Background()) },
		}, nil
	}
}

func sweepIdempotency(ctx context.Context, store *postgres.IdempotencyRepoImpl) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := store.CleanupExpired(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("Idempotency cleanup failed")
				continue
			}
			logger.Debug().Int64("removed", n).Msg("Idempotency cleanup")
		}
	}
}
