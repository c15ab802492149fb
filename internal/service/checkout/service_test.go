package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/ident"
	"github.com/kirinyoku/eventbuzz/internal/identity"
	"github.com/kirinyoku/eventbuzz/internal/metrics"
	"github.com/kirinyoku/eventbuzz/internal/repository"
	"github.com/kirinyoku/eventbuzz/internal/repository/memory"
	"github.com/kirinyoku/eventbuzz/internal/service/selection"
)

var buyer = domain.Buyer{Name: "A", Email: "a@x.com"}

func signedIn() identity.Provider {
	return identity.Static{ID: "usr_1", DisplayName: "A", Email: "a@x.com", Role: domain.RoleUser}
}

func newService(t *testing.T, store repository.Store, idp identity.Provider) *Service {
	t.Helper()
	svc := New(store, idp, nil, nil, nil, nil, metrics.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func seedEvent(t *testing.T, store repository.Store) domain.Event {
	t.Helper()
	e := domain.Event{ID: "evt_1", Title: "Gala", Venue: "Hall", Date: "2025-09-30T19:30", Rows: 2, Cols: 2, Price: 50, Seats: map[string]bool{}}
	require.NoError(t, store.Events().Create(context.Background(), e))
	return e
}

func TestIssue_EndToEnd(t *testing.T) {
	store := memory.New()
	e := seedEvent(t, store)
	svc := newService(t, store, signedIn())
	ctx := context.Background()

	sel := selection.New(e)
	sel.Toggle("0-0")
	sel.Toggle("1-1")
	assert.Equal(t, "100.00", sel.Total().StringFixed(2))

	ticket, err := svc.Issue(ctx, IssueRequest{EventID: e.ID, Buyer: buyer, Seats: sel.Selected()})
	require.NoError(t, err)

	assert.True(t, ident.HasPrefix(ticket.ID, ident.PrefixTicket))
	assert.Equal(t, []string{"0-0", "1-1"}, ticket.Seats)
	assert.False(t, ticket.CheckedIn)
	assert.Nil(t, ticket.CheckedInAt)
	assert.Equal(t, svc.now(), ticket.CreatedAt)
	assert.Equal(t, buyer, ticket.Buyer)

	got, err := store.Events().Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"0-0": true, "1-1": true}, got.Seats)

	stored, err := store.Tickets().Get(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, *ticket, *stored)
}

func TestIssue_PreservesPickOrder(t *testing.T) {
	store := memory.New()
	e := seedEvent(t, store)
	svc := newService(t, store, signedIn())

	ticket, err := svc.Issue(context.Background(), IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"1-0", "0-1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1-0", "0-1"}, ticket.Seats)
}

func TestIssue_Preconditions(t *testing.T) {
	store := memory.New()
	e := seedEvent(t, store)

	tests := []struct {
		name string
		idp  identity.Provider
		req  IssueRequest
		want error
	}{
		{"no actor", identity.Static{}, IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"0-0"}}, ErrUnauthenticated},
		{"no actor wins over empty", identity.Static{}, IssueRequest{EventID: e.ID, Buyer: buyer}, ErrUnauthenticated},
		{"empty selection", signedIn(), IssueRequest{EventID: e.ID, Buyer: buyer}, ErrEmptySelection},
		{"blank buyer", signedIn(), IssueRequest{EventID: e.ID, Buyer: domain.Buyer{Name: "  ", Email: "a@x.com"}, Seats: []string{"0-0"}}, ErrInvalidBuyer},
		{"duplicate seat", signedIn(), IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"0-0", "0-0"}}, ErrInvalidSeat},
		{"off grid", signedIn(), IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"0-0", "2-0"}}, ErrInvalidSeat},
		{"malformed", signedIn(), IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"A1"}}, ErrInvalidSeat},
		{"unknown event", signedIn(), IssueRequest{EventID: "evt_missing", Buyer: buyer, Seats: []string{"0-0"}}, ErrEventNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, store, tt.idp)

			_, err := svc.Issue(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	got, err := store.Events().Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Seats)

	tickets, err := store.Tickets().ListByEvent(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestIssue_SeatConflictLeavesNoTrace(t *testing.T) {
	store := memory.New()
	e := seedEvent(t, store)
	svc := newService(t, store, signedIn())
	ctx := context.Background()

	first, err := svc.Issue(ctx, IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"0-0"}})
	require.NoError(t, err)

	_, err = svc.Issue(ctx, IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"0-1", "0-0"}})
	require.ErrorIs(t, err, ErrSeatConflict)

	var conflict SeatConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{"0-0"}, conflict.Seats)
	assert.Equal(t, "seats already reserved: A1", conflict.Error())

	got, err := store.Events().Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"0-0": true}, got.Seats)

	tickets, err := store.Tickets().ListByEvent(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, first.ID, tickets[0].ID)
}

func TestIssue_ConcurrentSameSeat(t *testing.T) {
	store := memory.New()
	e := seedEvent(t, store)
	svc := newService(t, store, signedIn())

	const n = 2
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		errs    []error
	)

	start := make(chan struct{})
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Issue(context.Background(), IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"0-0"}})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
				return
			}
			errs = append(errs, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, success)
	require.Len(t, errs, n-1)
	assert.ErrorIs(t, errs[0], ErrSeatConflict)

	tickets, err := store.Tickets().ListByEvent(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

// failingStore fails ticket creation after seats were reserved.
type failingStore struct {
	repository.Store
}

func (s failingStore) Tickets() repository.Tickets {
	return failingTickets{s.Store.Tickets()}
}

func (s failingStore) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return s.Store.RunTx(ctx, func(ctx context.Context, tx repository.Store) error {
		return fn(ctx, failingStore{tx})
	})
}

type failingTickets struct {
	repository.Tickets
}

var errDiskFull = errors.New("disk full")

func (failingTickets) Create(context.Context, domain.Ticket) error {
	return errDiskFull
}

func TestIssue_TicketFailureRollsBackSeats(t *testing.T) {
	store := memory.New()
	e := seedEvent(t, store)
	svc := newService(t, failingStore{store}, signedIn())
	ctx := context.Background()

	_, err := svc.Issue(ctx, IssueRequest{EventID: e.ID, Buyer: buyer, Seats: []string{"0-0"}})
	require.ErrorIs(t, err, errDiskFull)

	got, err := store.Events().Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Seats)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "seat_conflict", failureReason(SeatConflictError{}))
	assert.Equal(t, "invalid_seat", failureReason(InvalidSeatError{Seat: "x"}))
	assert.Equal(t, "rate_limited", failureReason(RateLimitedError{RetryAfter: time.Second}))
	assert.Equal(t, "store_unavailable", failureReason(repository.ErrUnavailable))
	assert.Equal(t, "internal", failureReason(errors.New("boom")))
}
