package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/ident"
	"github.com/kirinyoku/eventbuzz/internal/repository"
	"github.com/kirinyoku/eventbuzz/internal/repository/memory"
)

func newService() (*Service, *memory.Store) {
	store := memory.New()
	return New(store, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func validInput() EventInput {
	return EventInput{
		Title:       "  Gala ",
		Description: "Annual gala",
		Venue:       "Hall",
		Date:        "2025-09-30T19:30",
		Rows:        2,
		Cols:        3,
		Price:       50,
	}
}

func TestCreateEvent(t *testing.T) {
	svc, store := newService()

	e, err := svc.CreateEvent(context.Background(), validInput())
	require.NoError(t, err)

	assert.True(t, ident.HasPrefix(e.ID, ident.PrefixEvent))
	assert.Equal(t, "Gala", e.Title)
	assert.Empty(t, e.Seats)

	got, err := store.Events().Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.AvailableSeats())
}

func TestCreateEvent_Invalid(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		field  string
		mutate func(*EventInput)
	}{
		{"title", func(in *EventInput) { in.Title = "   " }},
		{"rows", func(in *EventInput) { in.Rows = 0 }},
		{"cols", func(in *EventInput) { in.Cols = -1 }},
		{"rows", func(in *EventInput) { in.Rows = domain.MaxRows + 1 }},
		{"cols", func(in *EventInput) { in.Cols = domain.MaxCols + 1 }},
		{"rows", func(in *EventInput) { in.Rows, in.Cols = 1 << 32, 1 << 32 }},
		{"price", func(in *EventInput) { in.Price = -0.01 }},
		{"date", func(in *EventInput) { in.Date = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			e, err := svc.CreateEvent(context.Background(), in)
			assert.Nil(t, e)

			var invalid InvalidEventError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestCreateEvent_LargestGrid(t *testing.T) {
	svc, _ := newService()

	in := validInput()
	in.Rows, in.Cols = domain.MaxRows, domain.MaxCols

	e, err := svc.CreateEvent(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxRows*domain.MaxCols, e.AvailableSeats())
}

func TestUpdateEvent_KeepsSeats(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	e, err := svc.CreateEvent(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, store.Events().ReserveSeats(ctx, e.ID, "tkt_1", []string{"0-0"}))

	in := validInput()
	in.Title = "Gala II"
	in.Price = 75

	updated, err := svc.UpdateEvent(ctx, e.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Gala II", updated.Title)
	assert.True(t, updated.IsReserved("0-0"))

	got, err := store.Events().Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got.Price)
	assert.True(t, got.IsReserved("0-0"))
}

func TestUpdateEvent_GridImmutable(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	e, err := svc.CreateEvent(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Rows = 4

	_, err = svc.UpdateEvent(ctx, e.ID, in)
	assert.ErrorIs(t, err, ErrGridImmutable)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.UpdateEvent(context.Background(), "evt_missing", validInput())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteEvent_OrphansTickets(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	e, err := svc.CreateEvent(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, store.Tickets().Create(ctx, domain.Ticket{ID: "tkt_1", EventID: e.ID, Seats: []string{"0-0"}}))

	require.NoError(t, svc.DeleteEvent(ctx, e.ID))

	_, err = store.Events().Get(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	tickets, err := svc.ListEventTickets(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "tkt_1", tickets[0].ID)

	assert.ErrorIs(t, svc.DeleteEvent(ctx, e.ID), ErrEventNotFound)
}
