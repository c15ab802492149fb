package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/receipt"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

// View is a ticket together with its event. Event is nil for orphaned tickets.
type View struct {
	Ticket  domain.Ticket
	Event   *domain.Event
	Receipt receipt.Receipt
}

// Get retrieves a ticket along with the event it admits to.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: ID of the ticket to retrieve.
//
// Returns:
//   - *View: the ticket, its event when it still exists, and the receipt.
//   - error: tickets.ErrTicketNotFound if the ticket is not found.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	const op = "service.tickets.Get"

	t, err := s.store.Tickets().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrTicketNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	v := &View{Ticket: *t}

	e, err := s.store.Events().Get(ctx, t.EventID)
	switch {
	case err == nil:
		v.Event = e
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	v.Receipt = receipt.Build(v.Ticket, v.Event)

	return v, nil
}

// QRCode renders the QR image of a ticket as PNG.
func (s *Service) QRCode(ctx context.Context, id string) ([]byte, error) {
	const op = "service.tickets.QRCode"

	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	png, err := v.Receipt.QRCode()
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return png, nil
}
