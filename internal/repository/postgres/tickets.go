package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

type TicketRepo struct {
	db DB
}

const ticketColumns = `id, event_id, buyer_name, buyer_email, seats, checked_in, checked_in_at, created_at`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(
		&t.ID,
		&t.EventID,
		&t.Buyer.Name,
		&t.Buyer.Email,
		&t.Seats,
		&t.CheckedIn,
		&t.CheckedInAt,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}

	t.CreatedAt = t.CreatedAt.UTC()
	if t.CheckedInAt != nil {
		at := t.CheckedInAt.UTC()
		t.CheckedInAt = &at
	}

	return &t, nil
}

// Get retrieves a ticket by its ID.
//
// Returns:
//   - *domain.Ticket: the ticket when found.
//   - error: repository.ErrNotFound if the ticket is not found.
func (r *TicketRepo) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.Get"

	t, err := scanTicket(r.db.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return t, nil
}

// Create inserts a ticket.
//
// Returns:
//   - error: repository.ErrConflict if a ticket with the same ID exists.
func (r *TicketRepo) Create(ctx context.Context, t domain.Ticket) error {
	const op = "postgres.TicketRepo.Create"

	if _, err := r.db.Exec(ctx,
		`INSERT INTO tickets(`+ticketColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.EventID, t.Buyer.Name, t.Buyer.Email, t.Seats, t.CheckedIn, t.CheckedInAt, t.CreatedAt,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// ListByEvent lists the tickets issued for an event, oldest first.
func (r *TicketRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	const op = "postgres.TicketRepo.ListByEvent"

	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE event_id = $1 ORDER BY created_at, id`,
		eventID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// CheckIn flips checked_in with a conditional update, so of two concurrent
// scans only one can succeed.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - id: ticket to check in.
//   - at: check-in timestamp.
//
// Returns:
//   - *domain.Ticket: the checked-in ticket.
//   - error: repository.ErrAlreadyCheckedIn if the ticket was used before.
//   - error: repository.ErrNotFound if the ticket is not found.
func (r *TicketRepo) CheckIn(ctx context.Context, id string, at time.Time) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.CheckIn"

	t, err := scanTicket(r.db.QueryRow(ctx,
		`UPDATE tickets
		 SET checked_in = true, checked_in_at = $2
		 WHERE id = $1 AND NOT checked_in
		 RETURNING `+ticketColumns,
		id, at,
	))
	if err == nil {
		return t, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, wrapDBErr(op, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tickets WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return nil, wrapDBErr(op, err)
	}

	if exists {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrAlreadyCheckedIn)
	}

	return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
}
