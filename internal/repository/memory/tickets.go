package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

type TicketRepo struct {
	store *Store
}

func (r *TicketRepo) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	const op = "memory.TicketRepo.Get"

	var out domain.Ticket
	err := r.store.with(ctx, func(st *state) error {
		t, ok := st.tickets[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = t.Clone()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out, nil
}

func (r *TicketRepo) Create(ctx context.Context, t domain.Ticket) error {
	const op = "memory.TicketRepo.Create"

	err := r.store.with(ctx, func(st *state) error {
		if _, ok := st.tickets[t.ID]; ok {
			return repository.ErrConflict
		}

		st.tickets[t.ID] = t.Clone()
		st.ticketOrder = append(st.ticketOrder, t.ID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (r *TicketRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	const op = "memory.TicketRepo.ListByEvent"

	var out []domain.Ticket
	err := r.store.with(ctx, func(st *state) error {
		for _, id := range st.ticketOrder {
			if t := st.tickets[id]; t.EventID == eventID {
				out = append(out, t.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *TicketRepo) CheckIn(ctx context.Context, id string, at time.Time) (*domain.Ticket, error) {
	const op = "memory.TicketRepo.CheckIn"

	var out domain.Ticket
	err := r.store.with(ctx, func(st *state) error {
		t, ok := st.tickets[id]
		if !ok {
			return repository.ErrNotFound
		}

		if t.CheckedIn {
			return repository.ErrAlreadyCheckedIn
		}

		t.CheckedIn = true
		t.CheckedInAt = &at
		st.tickets[id] = t
		out = t.Clone()

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out, nil
}
