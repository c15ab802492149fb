package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/repository/memory"
	redisrepo "github.com/kirinyoku/eventbuzz/internal/repository/redis"
)

func seed(t *testing.T, events ...domain.Event) *Service {
	t.Helper()

	store := memory.New()
	for _, e := range events {
		require.NoError(t, store.Events().Create(context.Background(), e))
	}
	return New(store, nil, Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ids(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestList_SortAndSearch(t *testing.T) {
	svc := seed(t,
		domain.Event{ID: "b", Title: "Jazz Night", Venue: "Club", Date: "2025-10-01T20:00", Rows: 1, Cols: 1},
		domain.Event{ID: "x", Title: "Mystery", Venue: "Hall", Date: "someday", Rows: 1, Cols: 1},
		domain.Event{ID: "a", Title: "Orchestra", Description: "jazz standards too", Venue: "Hall", Date: "2025-09-30T19:30", Rows: 1, Cols: 1},
	)
	ctx := context.Background()

	got, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "x"}, ids(got))

	got, err = svc.List(ctx, ListParams{Sort: SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "x"}, ids(got))

	got, err = svc.List(ctx, ListParams{Query: "  JAZZ "})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))

	got, err = svc.List(ctx, ListParams{Query: "hall", Sort: SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "x"}, ids(got))
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortDesc, ParseSortOrder("DESC"))
	assert.Equal(t, SortAsc, ParseSortOrder("asc"))
	assert.Equal(t, SortAsc, ParseSortOrder(""))
	assert.Equal(t, SortAsc, ParseSortOrder("sideways"))
}

func TestGet(t *testing.T) {
	svc := seed(t, domain.Event{ID: "evt_1", Title: "Gala", Rows: 2, Cols: 2})

	e, err := svc.Get(context.Background(), "evt_1")
	require.NoError(t, err)
	assert.Equal(t, "Gala", e.Title)

	_, err = svc.Get(context.Background(), "evt_missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestSeatMap(t *testing.T) {
	svc := seed(t, domain.Event{ID: "evt_1", Rows: 2, Cols: 3, Seats: map[string]bool{"1-2": true}})

	m, err := svc.SeatMap(context.Background(), "evt_1")
	require.NoError(t, err)

	require.Len(t, m.Grid, 2)
	require.Len(t, m.Grid[1], 3)
	assert.Equal(t, 5, m.Available)
	assert.Equal(t, SeatCell{Key: "1-2", Label: "B3", Reserved: true}, m.Grid[1][2])
	assert.Equal(t, SeatCell{Key: "0-0", Label: "A1"}, m.Grid[0][0])
}

func TestSeedDemo(t *testing.T) {
	svc := seed(t)
	ctx := context.Background()

	seeded, err := svc.SeedDemo(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.SeedDemo(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	events, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "University Concert", events[0].Title)
	assert.Equal(t, 60, events[0].AvailableSeats())
	assert.Equal(t, 49.0, events[0].Price)
}

func TestSeedDemo_CacheFailureIsLogged(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectDel(redisrepo.KeyEventList()).SetErr(errors.New("connection refused"))

	var logs bytes.Buffer
	svc := New(memory.New(), redisrepo.New(db), Config{}, slog.New(slog.NewTextHandler(&logs, nil)))

	seeded, err := svc.SeedDemo(context.Background())
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Contains(t, logs.String(), "invalidate event list cache")
	assert.Contains(t, logs.String(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}
