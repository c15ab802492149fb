package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/format"
	"github.com/kirinyoku/eventbuzz/internal/metrics"
	"github.com/kirinyoku/eventbuzz/internal/receipt"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

type Service struct {
	store   repository.Store
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

func New(store repository.Store, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		metrics: m,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Result is a redeemed ticket with what a gate needs to show. Event is nil
// when the event was deleted after issuance.
type Result struct {
	Ticket     domain.Ticket
	Event      *domain.Event
	SeatLabels []string
}

// CheckIn redeems a ticket exactly once.
//
// Parameters:
//   - ctx: request-scoped context.
//   - ticketID: ID of the ticket presented at the gate.
//
// Returns:
//   - *Result: the redeemed ticket and its event.
//   - error: checkin.ErrTicketNotFound if the ID is empty or unknown.
//   - error: checkin.AlreadyUsedError carrying the first check-in time.
func (s *Service) CheckIn(ctx context.Context, ticketID string) (*Result, error) {
	const op = "service.checkin.CheckIn"

	res, err := s.checkIn(ctx, strings.TrimSpace(ticketID))
	switch {
	case err == nil:
		s.metrics.CheckIn("ok")
	case errors.Is(err, ErrTicketNotFound):
		s.metrics.CheckIn("not_found")
	case errors.Is(err, ErrAlreadyUsed):
		s.metrics.CheckIn("already_used")
	default:
		s.metrics.CheckIn("error")
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return res, nil
}

// CheckInPayload decodes scanned QR text and redeems the ticket it names.
func (s *Service) CheckInPayload(ctx context.Context, scanned string) (*Result, error) {
	const op = "service.checkin.CheckInPayload"

	id, ok := receipt.DecodeTicketID(scanned)
	if !ok {
		s.metrics.CheckIn("not_found")
		return nil, fmt.Errorf("%s:%w", op, ErrTicketNotFound)
	}

	res, err := s.CheckIn(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return res, nil
}

func (s *Service) checkIn(ctx context.Context, id string) (*Result, error) {
	if id == "" {
		return nil, ErrTicketNotFound
	}

	t, err := s.store.Tickets().CheckIn(ctx, id, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTicketNotFound
		case errors.Is(err, repository.ErrAlreadyCheckedIn):
			return nil, s.alreadyUsed(ctx, id)
		default:
			return nil, err
		}
	}

	res := &Result{Ticket: *t, SeatLabels: format.SeatLabels(t.Seats)}

	e, err := s.store.Events().Get(ctx, t.EventID)
	if err == nil {
		res.Event = e
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("load event for check-in", slog.String("ticket_id", id), slog.Any("err", err))
	}

	return res, nil
}

func (s *Service) alreadyUsed(ctx context.Context, id string) error {
	t, err := s.store.Tickets().Get(ctx, id)
	if err != nil || t.CheckedInAt == nil {
		return AlreadyUsedError{TicketID: id}
	}
	return AlreadyUsedError{TicketID: id, CheckedInAt: *t.CheckedInAt}
}
