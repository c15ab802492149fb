package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/ident"
	"github.com/kirinyoku/eventbuzz/internal/identity"
	"github.com/kirinyoku/eventbuzz/internal/metrics"
	"github.com/kirinyoku/eventbuzz/internal/queue"
	"github.com/kirinyoku/eventbuzz/internal/receipt"
	"github.com/kirinyoku/eventbuzz/internal/repository"
	redisrepo "github.com/kirinyoku/eventbuzz/internal/repository/redis"
	"github.com/kirinyoku/eventbuzz/internal/uow"
)

type Service struct {
	store     repository.Store
	identity  identity.Provider
	cache     *redisrepo.Cache
	pubsub    *redisrepo.EventsPubSub
	limiter   *redisrepo.SlidingWindowLimiter
	publisher *queue.Publisher
	metrics   *metrics.Metrics
	uow       *uow.UoW
	log       *slog.Logger
	now       func() time.Time
}

func New(
	store repository.Store,
	idp identity.Provider,
	cache *redisrepo.Cache,
	pubsub *redisrepo.EventsPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	publisher *queue.Publisher,
	m *metrics.Metrics,
	log *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		identity:  idp,
		cache:     cache,
		pubsub:    pubsub,
		limiter:   limiter,
		publisher: publisher,
		metrics:   m,
		uow:       uow.NewUoW(store),
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type IssueRequest struct {
	EventID string
	Buyer   domain.Buyer
	Seats   []string
	// RateLimitKey scopes the limiter. The actor ID is used when empty.
	RateLimitKey string
}

// Issue reserves the requested seats and mints a ticket for them as one unit
// of work. Either every seat is reserved and the ticket exists, or nothing
// changed.
//
// Parameters:
//   - ctx: request-scoped context carrying the signed-in actor.
//   - req: event, buyer and seat keys in pick order.
//
// Returns:
//   - *domain.Ticket: the created ticket.
//   - error: checkout.ErrUnauthenticated if no actor is signed in.
//   - error: checkout.ErrEmptySelection if no seat was requested.
//   - error: checkout.ErrInvalidBuyer if the buyer name or email is blank.
//   - error: checkout.InvalidSeatError if a key is malformed, repeated or off the grid.
//   - error: checkout.RateLimitedError if the client exceeded the checkout rate.
//   - error: checkout.ErrEventNotFound if the event does not exist.
//   - error: checkout.SeatConflictError if any seat is already reserved.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*domain.Ticket, error) {
	const op = "service.checkout.Issue"

	ticket, err := s.issue(ctx, req)
	if err != nil {
		s.metrics.CheckoutFailed(failureReason(err))
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return ticket, nil
}

func (s *Service) issue(ctx context.Context, req IssueRequest) (*domain.Ticket, error) {
	actor, ok := s.identity.CurrentActor(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if len(req.Seats) == 0 {
		return nil, ErrEmptySelection
	}

	buyer := domain.Buyer{
		Name:  strings.TrimSpace(req.Buyer.Name),
		Email: strings.TrimSpace(req.Buyer.Email),
	}
	if buyer.Name == "" || buyer.Email == "" {
		return nil, ErrInvalidBuyer
	}

	seen := make(map[string]struct{}, len(req.Seats))
	for _, k := range req.Seats {
		if _, dup := seen[k]; dup {
			return nil, InvalidSeatError{Seat: k, Reason: "selected more than once"}
		}
		seen[k] = struct{}{}
	}

	if err := s.allow(ctx, req.RateLimitKey, actor.ID); err != nil {
		return nil, err
	}

	var (
		ticket domain.Ticket
		event  domain.Event
	)

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		e, err := tx.Events().GetForUpdate(ctx, req.EventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var taken []string
		for _, k := range req.Seats {
			if !e.InGrid(k) {
				return InvalidSeatError{Seat: k, Reason: "not on the seat grid"}
			}
			if e.IsReserved(k) {
				taken = append(taken, k)
			}
		}
		if len(taken) > 0 {
			return SeatConflictError{Seats: taken}
		}

		now := s.now()
		ticket = domain.Ticket{
			ID:        ident.NewAt(ident.PrefixTicket, now),
			EventID:   e.ID,
			Buyer:     buyer,
			Seats:     append([]string(nil), req.Seats...),
			CheckedIn: false,
			CreatedAt: now,
		}

		if err := tx.Events().ReserveSeats(ctx, e.ID, ticket.ID, ticket.Seats); err != nil {
			if errors.Is(err, repository.ErrSeatsUnavailable) {
				return SeatConflictError{}
			}
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if err := tx.Tickets().Create(ctx, ticket); err != nil {
			return err
		}

		event = *e
		if event.Seats == nil {
			event.Seats = make(map[string]bool, len(ticket.Seats))
		}
		for _, k := range ticket.Seats {
			event.Seats[k] = true
		}

		after(s.issued(ticket, event))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (s *Service) allow(ctx context.Context, key, actorID string) error {
	if s.limiter == nil {
		return nil
	}

	if key == "" {
		key = actorID
	}

	d, err := s.limiter.Allow(ctx, key)
	if err != nil {
		s.log.Warn("checkout rate limiter unavailable", slog.Any("err", err))
		return nil
	}
	if !d.Allowed {
		return RateLimitedError{RetryAfter: d.RetryAfter}
	}

	return nil
}

// issued runs once the purchase is committed. Failures are logged only.
func (s *Service) issued(t domain.Ticket, e domain.Event) uow.AfterCommit {
	return func(ctx context.Context) {
		s.metrics.TicketIssued(len(t.Seats))

		log := s.log.With(slog.String("ticket_id", t.ID), slog.String("event_id", t.EventID))

		if err := s.cache.InvalidateEvent(ctx, t.EventID); err != nil {
			log.Warn("invalidate event cache", slog.Any("err", err))
		}

		if err := s.pubsub.PublishEventChanged(ctx, t.EventID); err != nil {
			log.Warn("publish event changed", slog.Any("err", err))
		}

		msg := queue.TicketIssued{Receipt: receipt.Build(t, &e), IssuedAt: t.CreatedAt}
		if err := s.publisher.PublishTicketIssued(ctx, msg); err != nil {
			log.Warn("publish ticket issued", slog.Any("err", err))
		}

		log.Info("ticket issued", slog.Int("seats", len(t.Seats)))
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrEmptySelection):
		return "empty_selection"
	case errors.Is(err, ErrInvalidBuyer):
		return "invalid_buyer"
	case errors.Is(err, ErrInvalidSeat):
		return "invalid_seat"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, ErrSeatConflict):
		return "seat_conflict"
	case errors.Is(err, repository.ErrUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}
