package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/format"
	"github.com/kirinyoku/eventbuzz/internal/ident"
	"github.com/kirinyoku/eventbuzz/internal/repository"
	redisrepo "github.com/kirinyoku/eventbuzz/internal/repository/redis"
	"github.com/kirinyoku/eventbuzz/internal/uow"
)

type Service struct {
	store  repository.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.EventsPubSub
	uow    *uow.UoW
	log    *slog.Logger
}

func New(
	store repository.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.EventsPubSub,
	log *slog.Logger,
) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
		log:    log,
	}
}

// EventInput is the editable part of an event.
type EventInput struct {
	Title       string
	Description string
	Venue       string
	Date        string
	Rows        int
	Cols        int
	Price       float64
}

func (in EventInput) normalize() EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Venue = strings.TrimSpace(in.Venue)
	in.Date = strings.TrimSpace(in.Date)
	return in
}

func (in EventInput) validate() error {
	switch {
	case in.Title == "":
		return InvalidEventError{Field: "title", Reason: "required"}
	case in.Rows <= 0 || in.Rows > domain.MaxRows:
		return InvalidEventError{Field: "rows", Reason: fmt.Sprintf("must be between 1 and %d", domain.MaxRows)}
	case in.Cols <= 0 || in.Cols > domain.MaxCols:
		return InvalidEventError{Field: "cols", Reason: fmt.Sprintf("must be between 1 and %d", domain.MaxCols)}
	case in.Price < 0:
		return InvalidEventError{Field: "price", Reason: "must not be negative"}
	}

	if _, err := format.ParseDate(in.Date); err != nil {
		return InvalidEventError{Field: "date", Reason: "must be an ISO-8601 date"}
	}

	return nil
}

// CreateEvent creates an event with an empty seat map.
//
// Parameters:
//   - ctx: request-scoped context.
//   - in: event fields.
//
// Returns:
//   - *domain.Event: the created event.
//   - error: admin.InvalidEventError if a field is invalid.
//   - error: admin.ErrEventConflict if the generated ID is taken.
func (s *Service) CreateEvent(ctx context.Context, in EventInput) (*domain.Event, error) {
	const op = "service.admin.CreateEvent"

	in = in.normalize()
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	e := domain.Event{
		ID:          ident.New(ident.PrefixEvent),
		Title:       in.Title,
		Description: in.Description,
		Venue:       in.Venue,
		Date:        in.Date,
		Rows:        in.Rows,
		Cols:        in.Cols,
		Price:       in.Price,
		Seats:       map[string]bool{},
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		if err := tx.Events().Create(ctx, e); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrEventConflict
			}
			return err
		}

		after(s.eventChanged(e.ID))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &e, nil
}

// UpdateEvent rewrites the metadata of an event. Reserved seats are kept.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: ID of the event to edit.
//   - in: new event fields. Rows and cols must match the stored grid.
//
// Returns:
//   - *domain.Event: the updated event.
//   - error: admin.ErrEventNotFound if the event is not found.
//   - error: admin.ErrGridImmutable if rows or cols differ.
//   - error: admin.InvalidEventError if a field is invalid.
func (s *Service) UpdateEvent(ctx context.Context, id string, in EventInput) (*domain.Event, error) {
	const op = "service.admin.UpdateEvent"

	in = in.normalize()
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var updated domain.Event
	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		cur, err := tx.Events().GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if cur.Rows != in.Rows || cur.Cols != in.Cols {
			return ErrGridImmutable
		}

		updated = *cur
		updated.Title = in.Title
		updated.Description = in.Description
		updated.Venue = in.Venue
		updated.Date = in.Date
		updated.Price = in.Price

		if err := tx.Events().Update(ctx, updated); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		after(s.eventChanged(id))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &updated, nil
}

// DeleteEvent removes an event. Its tickets stay behind and still check in.
//
// Returns:
//   - error: admin.ErrEventNotFound if the event is not found.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	const op = "service.admin.DeleteEvent"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Store, after func(uow.AfterCommit)) error {
		if err := tx.Events().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		after(s.eventChanged(id))

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// ListEventTickets returns the tickets issued for an event, oldest first.
// Tickets of a deleted event are still listed.
func (s *Service) ListEventTickets(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	const op = "service.admin.ListEventTickets"

	tickets, err := s.store.Tickets().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return tickets, nil
}

func (s *Service) eventChanged(eventID string) uow.AfterCommit {
	return func(ctx context.Context) {
		if err := s.cache.InvalidateEvent(ctx, eventID); err != nil {
			s.log.Warn("invalidate event cache", slog.String("event_id", eventID), slog.Any("err", err))
		}
		if err := s.pubsub.PublishEventChanged(ctx, eventID); err != nil {
			s.log.Warn("publish event changed", slog.String("event_id", eventID), slog.Any("err", err))
		}
	}
}
