// Package repository defines the storage contracts shared by the postgres and
// memory stores.
package repository

import (
	"context"
	"time"

	"github.com/kirinyoku/eventbuzz/internal/domain"
)

type Events interface {
	Get(ctx context.Context, id string) (*domain.Event, error)
	// GetForUpdate reads an event and holds it against concurrent issuance
	// until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, e domain.Event) error
	// Update rewrites event metadata. The seat map is left untouched.
	Update(ctx context.Context, e domain.Event) error
	Delete(ctx context.Context, id string) error
	// ReserveSeats marks every key reserved for ticketID, or none of them.
	ReserveSeats(ctx context.Context, eventID, ticketID string, seats []string) error
}

type Tickets interface {
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Create(ctx context.Context, t domain.Ticket) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error)
	// CheckIn sets checkedIn and checkedInAt only while checkedIn is false.
	CheckIn(ctx context.Context, id string, at time.Time) (*domain.Ticket, error)
}

type Users interface {
	Create(ctx context.Context, u domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Store groups the repositories. RunTx hands fn a Store bound to a single
// transaction; fn's error rolls back every write made through it.
type Store interface {
	Events() Events
	Tickets() Tickets
	Users() Users
	RunTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
