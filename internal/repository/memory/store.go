// Package memory is a process-local repository.Store. Every unit of work runs
// under one mutex against a copy of the state, which replaces the committed
// state only when the unit succeeds.
package memory

import (
	"context"
	"sync"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

type state struct {
	events      map[string]domain.Event
	eventOrder  []string
	tickets     map[string]domain.Ticket
	ticketOrder []string
	users       map[string]domain.User
	emails      map[string]string
}

func newState() *state {
	return &state{
		events:  make(map[string]domain.Event),
		tickets: make(map[string]domain.Ticket),
		users:   make(map[string]domain.User),
		emails:  make(map[string]string),
	}
}

func (s *state) clone() *state {
	cp := &state{
		events:      make(map[string]domain.Event, len(s.events)),
		eventOrder:  append([]string(nil), s.eventOrder...),
		tickets:     make(map[string]domain.Ticket, len(s.tickets)),
		ticketOrder: append([]string(nil), s.ticketOrder...),
		users:       make(map[string]domain.User, len(s.users)),
		emails:      make(map[string]string, len(s.emails)),
	}
	for k, v := range s.events {
		cp.events[k] = v.Clone()
	}
	for k, v := range s.tickets {
		cp.tickets[k] = v.Clone()
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.emails {
		cp.emails[k] = v
	}
	return cp
}

type db struct {
	mu    sync.Mutex
	state *state
}

type Store struct {
	db *db
	tx *state
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{db: &db{state: newState()}}
}

func (s *Store) Events() repository.Events   { return &EventRepo{store: s} }
func (s *Store) Tickets() repository.Tickets { return &TicketRepo{store: s} }
func (s *Store) Users() repository.Users     { return &UserRepo{store: s} }

func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	work := s.db.state.clone()
	if err := fn(ctx, &Store{db: s.db, tx: work}); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.state = work

	return nil
}

// with runs fn against the transaction state when bound to one, otherwise
// against the committed state under the lock.
func (s *Store) with(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.tx != nil {
		return fn(s.tx)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return fn(s.db.state)
}
