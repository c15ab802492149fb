package service

import (
	"log/slog"

	"github.com/kirinyoku/eventbuzz/internal/auth"
	"github.com/kirinyoku/eventbuzz/internal/identity"
	"github.com/kirinyoku/eventbuzz/internal/metrics"
	"github.com/kirinyoku/eventbuzz/internal/queue"
	"github.com/kirinyoku/eventbuzz/internal/repository"
	redisrepo "github.com/kirinyoku/eventbuzz/internal/repository/redis"
	"github.com/kirinyoku/eventbuzz/internal/service/accounts"
	"github.com/kirinyoku/eventbuzz/internal/service/admin"
	"github.com/kirinyoku/eventbuzz/internal/service/catalog"
	"github.com/kirinyoku/eventbuzz/internal/service/checkin"
	"github.com/kirinyoku/eventbuzz/internal/service/checkout"
	"github.com/kirinyoku/eventbuzz/internal/service/tickets"
)

type Services struct {
	Catalog  *catalog.Service
	Admin    *admin.Service
	Checkout *checkout.Service
	CheckIn  *checkin.Service
	Tickets  *tickets.Service
	Accounts *accounts.Service
}

type Config struct {
	Catalog  catalog.Config
	Accounts accounts.Config
}

// Deps are the collaborators shared by the services. Every field except
// Store, Tokens and Log may be nil.
type Deps struct {
	Store     repository.Store
	Cache     *redisrepo.Cache
	PubSub    *redisrepo.EventsPubSub
	Limiter   *redisrepo.SlidingWindowLimiter
	Publisher *queue.Publisher
	Metrics   *metrics.Metrics
	Tokens    *auth.TokenManager
	Log       *slog.Logger
}

func NewServices(d Deps, cfg Config) *Services {
	return &Services{
		Catalog: catalog.New(d.Store, d.Cache, cfg.Catalog, d.Log),
		Admin:   admin.New(d.Store, d.Cache, d.PubSub, d.Log),
		Checkout: checkout.New(
			d.Store,
			identity.ContextProvider{},
			d.Cache,
			d.PubSub,
			d.Limiter,
			d.Publisher,
			d.Metrics,
			d.Log,
		),
		CheckIn:  checkin.New(d.Store, d.Metrics, d.Log),
		Tickets:  tickets.New(d.Store),
		Accounts: accounts.New(d.Store, d.Tokens, cfg.Accounts),
	}
}
