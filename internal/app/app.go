package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/eventbuzz/internal/auth"
	"github.com/kirinyoku/eventbuzz/internal/config"
	"github.com/kirinyoku/eventbuzz/internal/metrics"
	"github.com/kirinyoku/eventbuzz/internal/postgres"
	"github.com/kirinyoku/eventbuzz/internal/queue"
	"github.com/kirinyoku/eventbuzz/internal/redis"
	"github.com/kirinyoku/eventbuzz/internal/repository"
	"github.com/kirinyoku/eventbuzz/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/eventbuzz/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/eventbuzz/internal/repository/redis"
	"github.com/kirinyoku/eventbuzz/internal/service"
	"github.com/kirinyoku/eventbuzz/internal/service/accounts"
	"github.com/kirinyoku/eventbuzz/internal/service/catalog"
	httpgin "github.com/kirinyoku/eventbuzz/internal/transport/http/gin"
)

const (
	readinessTimeout = 5 * time.Second
	shutdownTimeout  = 5 * time.Second
	idempotencyTTL   = 2 * time.Hour
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server

	pool      *pgxpool.Pool
	rdb       *goredis.Client
	amqpConn  *amqp.Connection
	cache     *redisrepo.Cache
	pubsub    *redisrepo.EventsPubSub
	publisher *queue.Publisher
	consumer  *queue.Consumer
}

// New connects to the configured backends and wires the services. Each
// backend is checked once with a bounded timeout.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	a := &App{cfg: cfg, logger: logger}

	store, err := a.openStore(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if cfg.Redis.Enabled() {
		a.rdb, err = redis.New(ctx, redis.Config{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			PingTimeout: readinessTimeout,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		a.cache = redisrepo.New(a.rdb)
		a.pubsub = redisrepo.NewEventsPubSub(a.rdb)
	}

	if cfg.AMQP.Enabled() {
		a.amqpConn, err = queue.Dial(ctx, cfg.AMQP.URL, readinessTimeout)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		a.publisher = queue.NewPublisher(a.amqpConn)
		a.consumer = queue.NewConsumer(a.amqpConn, queue.LogMailer{Log: logger}, logger)
	}

	var (
		limiter *redisrepo.SlidingWindowLimiter
		idem    *redisrepo.IdempotencyStore
	)
	if a.rdb != nil {
		if cfg.Checkout.RateLimit > 0 {
			limiter = redisrepo.NewSlidingWindowLimiter(a.rdb, "checkout", cfg.Checkout.RateLimit, cfg.Checkout.RateWindow)
		}
		idem = redisrepo.NewIdempotencyStore(a.rdb, idempotencyTTL)
	}

	m := metrics.New()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	services := service.NewServices(service.Deps{
		Store:     store,
		Cache:     a.cache,
		PubSub:    a.pubsub,
		Limiter:   limiter,
		Publisher: a.publisher,
		Metrics:   m,
		Tokens:    tokens,
		Log:       logger,
	}, service.Config{
		Catalog:  catalog.Config{EventTTL: cfg.Cache.EventTTL},
		Accounts: accounts.Config{BcryptCost: cfg.Auth.BcryptCost},
	})

	if cfg.SeedDemo {
		seeded, err := services.Catalog.SeedDemo(ctx)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if seeded {
			logger.Info("seeded demo event")
		}
	}

	router := httpgin.NewRouter(services, idem, tokens, m, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	if a.cfg.Store.Driver != config.StorePostgres {
		a.logger.Info("using in-memory store")
		return memory.New(), nil
	}

	pool, err := postgres.New(ctx, postgres.Config{
		DSN:         a.cfg.Postgres.DSN(),
		MaxConns:    a.cfg.Postgres.MaxConns,
		PingTimeout: readinessTimeout,
	})
	if err != nil {
		return nil, err
	}
	a.pool = pool

	if err := postgres.Migrate(ctx, pool); err != nil {
		return nil, err
	}

	return postgresrepo.NewStore(pool), nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	if a.pubsub != nil {
		g.Go(func() error {
			err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, eventID string) {
				a.logger.Debug("event changed", slog.String("event_id", eventID))
				if err := a.cache.InvalidateEvent(ctx, eventID); err != nil {
					a.logger.Warn("invalidate event cache", slog.String("event_id", eventID), slog.Any("err", err))
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("events subscriber: %w", err)
			}
			return nil
		})
	}

	if a.consumer != nil {
		g.Go(func() error {
			return a.consumer.Run(gCtx)
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

func (a *App) close() {
	if a.publisher != nil {
		_ = a.publisher.Close()
	}
	if a.amqpConn != nil {
		_ = a.amqpConn.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
