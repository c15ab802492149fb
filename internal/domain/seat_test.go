package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeatKey(t *testing.T) {
	tests := []struct {
		key     string
		row     int
		col     int
		wantErr bool
	}{
		{key: "0-0", row: 0, col: 0},
		{key: "2-9", row: 2, col: 9},
		{key: "12-31", row: 12, col: 31},
		{key: "", wantErr: true},
		{key: "3", wantErr: true},
		{key: "a-1", wantErr: true},
		{key: "1-b", wantErr: true},
		{key: "-1-2", wantErr: true},
		{key: "01-2", wantErr: true},
		{key: "+1-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			row, col, err := ParseSeatKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSeatKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.key, SeatKey(row, col))
		})
	}
}

func TestEventInGrid(t *testing.T) {
	ev := Event{Rows: 2, Cols: 3}

	assert.True(t, ev.InGrid("0-0"))
	assert.True(t, ev.InGrid("1-2"))
	assert.False(t, ev.InGrid("2-0"))
	assert.False(t, ev.InGrid("0-3"))
	assert.False(t, ev.InGrid("x"))
}

func TestEventAvailableSeats(t *testing.T) {
	ev := Event{Rows: 2, Cols: 2, Seats: map[string]bool{"0-0": true, "1-1": true}}
	assert.Equal(t, 2, ev.AvailableSeats())
}

func TestEventCloneIsDeep(t *testing.T) {
	ev := Event{ID: "evt_1", Seats: map[string]bool{"0-0": true}}
	cp := ev.Clone()
	cp.Seats["1-1"] = true

	assert.False(t, ev.IsReserved("1-1"))
	assert.True(t, cp.IsReserved("0-0"))
}

func TestEventJSONRoundTrip(t *testing.T) {
	ev := Event{
		ID:          "evt_1",
		Title:       "University Concert",
		Description: "Live music night at the campus!",
		Venue:       "Main Auditorium",
		Date:        "2025-09-30T19:30",
		Rows:        6,
		Cols:        10,
		Price:       49.5,
		Seats:       map[string]bool{"0-0": true, "5-9": true},
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, float64(6), raw["rows"])
	assert.Equal(t, 49.5, raw["price"])
	assert.Equal(t, map[string]any{"0-0": true, "5-9": true}, raw["seats"])

	var got Event
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, ev, got)
}

func TestTicketJSONRoundTrip(t *testing.T) {
	at := time.Date(2025, 9, 30, 18, 0, 0, 0, time.UTC)
	tk := Ticket{
		ID:          "tkt_1",
		EventID:     "evt_1",
		Buyer:       Buyer{Name: "A", Email: "a@x.com"},
		Seats:       []string{"1-1", "0-0"},
		CheckedIn:   true,
		CheckedInAt: &at,
		CreatedAt:   at.Add(-time.Hour),
	}

	b, err := json.Marshal(tk)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "2025-09-30T18:00:00Z", raw["checkedInAt"])
	assert.Equal(t, "evt_1", raw["eventId"])

	var got Ticket
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, tk, got)
}

func TestTicketJSONOmitsUnsetCheckIn(t *testing.T) {
	b, err := json.Marshal(Ticket{ID: "tkt_1", Seats: []string{"0-0"}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "checkedInAt")
}
