package memory

import (
	"context"
	"fmt"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

type EventRepo struct {
	store *Store
}

func (r *EventRepo) Get(ctx context.Context, id string) (*domain.Event, error) {
	const op = "memory.EventRepo.Get"

	var out domain.Event
	err := r.store.with(ctx, func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = e.Clone()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out, nil
}

// GetForUpdate is Get: units of work are already serialized by the store lock.
func (r *EventRepo) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.Get(ctx, id)
}

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	const op = "memory.EventRepo.List"

	var out []domain.Event
	err := r.store.with(ctx, func(st *state) error {
		out = make([]domain.Event, 0, len(st.eventOrder))
		for _, id := range st.eventOrder {
			out = append(out, st.events[id].Clone())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *EventRepo) Create(ctx context.Context, e domain.Event) error {
	const op = "memory.EventRepo.Create"

	err := r.store.with(ctx, func(st *state) error {
		if _, ok := st.events[e.ID]; ok {
			return repository.ErrConflict
		}

		cp := e.Clone()
		st.events[e.ID] = cp
		st.eventOrder = append(st.eventOrder, e.ID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (r *EventRepo) Update(ctx context.Context, e domain.Event) error {
	const op = "memory.EventRepo.Update"

	err := r.store.with(ctx, func(st *state) error {
		cur, ok := st.events[e.ID]
		if !ok {
			return repository.ErrNotFound
		}

		next := e.Clone()
		next.Seats = cur.Seats
		st.events[e.ID] = next

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	const op = "memory.EventRepo.Delete"

	err := r.store.with(ctx, func(st *state) error {
		if _, ok := st.events[id]; !ok {
			return repository.ErrNotFound
		}

		delete(st.events, id)
		for i, v := range st.eventOrder {
			if v == id {
				st.eventOrder = append(st.eventOrder[:i:i], st.eventOrder[i+1:]...)
				break
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (r *EventRepo) ReserveSeats(ctx context.Context, eventID, ticketID string, seats []string) error {
	const op = "memory.EventRepo.ReserveSeats"

	err := r.store.with(ctx, func(st *state) error {
		e, ok := st.events[eventID]
		if !ok {
			return repository.ErrNotFound
		}

		seen := make(map[string]struct{}, len(seats))
		for _, k := range seats {
			if _, dup := seen[k]; dup || e.Seats[k] {
				return repository.ErrSeatsUnavailable
			}
			seen[k] = struct{}{}
		}

		if e.Seats == nil {
			e.Seats = make(map[string]bool, len(seats))
		}
		for _, k := range seats {
			e.Seats[k] = true
		}
		st.events[eventID] = e

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
