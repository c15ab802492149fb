package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

type EventRepo struct {
	db DB
}

const selectEvent = `SELECT id, title, description, venue, date, seat_rows, seat_cols, price FROM events`

// Get retrieves an event with its seat map.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - id: unique identifier of the event to retrieve.
//
// Returns:
//   - *domain.Event: the event when found.
//   - error: repository.ErrNotFound if the event is not found.
func (r *EventRepo) Get(ctx context.Context, id string) (*domain.Event, error) {
	const op = "postgres.EventRepo.Get"

	e, err := r.get(ctx, selectEvent+` WHERE id = $1`, id)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return e, nil
}

// GetForUpdate retrieves an event and locks its row until the surrounding
// transaction ends, serializing seat issuance per event.
//
// Returns:
//   - *domain.Event: the event when found.
//   - error: repository.ErrNotFound if the event is not found.
func (r *EventRepo) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	const op = "postgres.EventRepo.GetForUpdate"

	e, err := r.get(ctx, selectEvent+` WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return e, nil
}

func (r *EventRepo) get(ctx context.Context, sql, id string) (*domain.Event, error) {
	var e domain.Event
	if err := r.db.QueryRow(ctx, sql, id).Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Venue,
		&e.Date,
		&e.Rows,
		&e.Cols,
		&e.Price,
	); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT seat_key FROM event_seats WHERE event_id = $1`, id)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	e.Seats = make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		e.Seats[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &e, nil
}

// List lists all events in creation order with their seat maps.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//
// Returns:
//   - []domain.Event: list of events, empty when there are none.
//   - error: repository.ErrUnavailable if the store cannot be reached.
func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	const op = "postgres.EventRepo.List"

	rows, err := r.db.Query(ctx, selectEvent+` ORDER BY created_at, id`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := []domain.Event{}
	index := make(map[string]int)
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.Venue,
			&e.Date,
			&e.Rows,
			&e.Cols,
			&e.Price,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		e.Seats = make(map[string]bool)
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	seatRows, err := r.db.Query(ctx, `SELECT event_id, seat_key FROM event_seats`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer seatRows.Close()

	for seatRows.Next() {
		var eventID, key string
		if err := seatRows.Scan(&eventID, &key); err != nil {
			return nil, wrapDBErr(op, err)
		}
		if i, ok := index[eventID]; ok {
			out[i].Seats[key] = true
		}
	}
	if err := seatRows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Create inserts an event. Reserved seats on e are ignored.
//
// Returns:
//   - error: repository.ErrConflict if an event with the same ID exists.
func (r *EventRepo) Create(ctx context.Context, e domain.Event) error {
	const op = "postgres.EventRepo.Create"

	if _, err := r.db.Exec(ctx,
		`INSERT INTO events(id, title, description, venue, date, seat_rows, seat_cols, price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Title, e.Description, e.Venue, e.Date, e.Rows, e.Cols, e.Price,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Update rewrites the event metadata; reserved seats are kept.
//
// Returns:
//   - error: repository.ErrNotFound if the event is not found.
func (r *EventRepo) Update(ctx context.Context, e domain.Event) error {
	const op = "postgres.EventRepo.Update"

	tag, err := r.db.Exec(ctx,
		`UPDATE events
		 SET title = $2, description = $3, venue = $4, date = $5,
		     seat_rows = $6, seat_cols = $7, price = $8
		 WHERE id = $1`,
		e.ID, e.Title, e.Description, e.Venue, e.Date, e.Rows, e.Cols, e.Price,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// Delete removes an event and its seat map. Tickets are left in place.
//
// Returns:
//   - error: repository.ErrNotFound if the event is not found.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	const op = "postgres.EventRepo.Delete"

	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// ReserveSeats inserts one event_seats row per key in a single statement, so
// either every seat is reserved or none is.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - eventID: event owning the seats.
//   - ticketID: ticket the seats are reserved for.
//   - seats: seat keys to reserve.
//
// Returns:
//   - error: repository.ErrSeatsUnavailable if any seat is already reserved.
//   - error: repository.ErrNotFound if the event does not exist.
func (r *EventRepo) ReserveSeats(ctx context.Context, eventID, ticketID string, seats []string) error {
	const op = "postgres.EventRepo.ReserveSeats"

	_, err := r.db.Exec(ctx,
		`INSERT INTO event_seats(event_id, seat_key, ticket_id)
		 SELECT $1, k, $3 FROM unnest($2::text[]) AS k`,
		eventID, seats, ticketID,
	)
	if err != nil {
		err = translateDBErr(err)
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%s:%w", op, repository.ErrSeatsUnavailable)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
