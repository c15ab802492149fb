package checkin

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
	"github.com/kirinyoku/eventbuzz/internal/repository/memory"
)

func setup(t *testing.T) (*Service, *memory.Store) {
	t.Helper()

	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Events().Create(ctx, domain.Event{ID: "evt_1", Title: "Gala", Venue: "Hall", Date: "2025-09-30T19:30", Rows: 3, Cols: 10}))
	require.NoError(t, store.Tickets().Create(ctx, domain.Ticket{
		ID:        "tkt_1",
		EventID:   "evt_1",
		Buyer:     domain.Buyer{Name: "A", Email: "a@x.com"},
		Seats:     []string{"0-0", "2-9"},
		CreatedAt: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}))

	svc := New(store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, store
}

func TestCheckIn_Once(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	first := time.Date(2025, 9, 30, 19, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	res, err := svc.CheckIn(ctx, "tkt_1")
	require.NoError(t, err)
	assert.True(t, res.Ticket.CheckedIn)
	require.NotNil(t, res.Ticket.CheckedInAt)
	assert.Equal(t, first, *res.Ticket.CheckedInAt)
	require.NotNil(t, res.Event)
	assert.Equal(t, "Gala", res.Event.Title)
	assert.Equal(t, []string{"A1", "C10"}, res.SeatLabels)

	svc.now = func() time.Time { return first.Add(time.Hour) }
	_, err = svc.CheckIn(ctx, "tkt_1")
	require.ErrorIs(t, err, ErrAlreadyUsed)

	var used AlreadyUsedError
	require.True(t, errors.As(err, &used))
	assert.Equal(t, first, used.CheckedInAt)

	stored, err := store.Tickets().Get(ctx, "tkt_1")
	require.NoError(t, err)
	assert.Equal(t, first, *stored.CheckedInAt)
}

func TestCheckIn_NotFound(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	for _, id := range []string{"tkt_missing", "", "   "} {
		_, err := svc.CheckIn(ctx, id)
		assert.ErrorIs(t, err, ErrTicketNotFound, id)
	}

	stored, err := store.Tickets().Get(ctx, "tkt_1")
	require.NoError(t, err)
	assert.False(t, stored.CheckedIn)
}

func TestCheckIn_OrphanTicket(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	require.NoError(t, store.Events().Delete(ctx, "evt_1"))

	res, err := svc.CheckIn(ctx, "tkt_1")
	require.NoError(t, err)
	assert.Nil(t, res.Event)
	assert.True(t, res.Ticket.CheckedIn)
}

func TestCheckInPayload(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	res, err := svc.CheckInPayload(ctx, `{"ticketId":"tkt_1","buyerName":"A"}`)
	require.NoError(t, err)
	assert.Equal(t, "tkt_1", res.Ticket.ID)

	_, err = svc.CheckInPayload(ctx, "tkt_1")
	assert.ErrorIs(t, err, ErrAlreadyUsed)

	_, err = svc.CheckInPayload(ctx, `{"buyerName":"A"}`)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestCheckIn_Concurrent(t *testing.T) {
	svc, _ := setup(t)

	const n = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		used int
	)

	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(context.Background(), "tkt_1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrAlreadyUsed):
				used++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, used)
}

func TestAlreadyUsedError_Message(t *testing.T) {
	at := time.Date(2025, 9, 30, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, "ticket tkt_1 already checked in at 2025-09-30T19:00:00Z",
		AlreadyUsedError{TicketID: "tkt_1", CheckedInAt: at}.Error())

	err := AlreadyUsedError{TicketID: "tkt_1"}
	assert.Equal(t, "ticket tkt_1 already checked in", err.Error())
	assert.ErrorIs(t, err, ErrAlreadyUsed)
}
