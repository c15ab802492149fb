package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/receipt"
)

type recordingMailer struct {
	drafts []Draft
}

func (m *recordingMailer) Send(_ context.Context, d Draft) error {
	m.drafts = append(m.drafts, d)
	return nil
}

func issued() TicketIssued {
	r := receipt.Build(
		domain.Ticket{ID: "tkt_1", EventID: "evt_1", Buyer: domain.Buyer{Name: "Ann", Email: "ann@x.io"}, Seats: []string{"0-0"}},
		&domain.Event{ID: "evt_1", Title: "Gala", Venue: "Hall", Date: "2025-09-30T19:30"},
	)
	return TicketIssued{Receipt: r, IssuedAt: time.Now().UTC()}
}

func TestHandleMessage(t *testing.T) {
	m := &recordingMailer{}
	c := NewConsumer(nil, m, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	body, err := json.Marshal(issued())
	require.NoError(t, err)

	require.NoError(t, c.handleMessage(context.Background(), body))
	require.Len(t, m.drafts, 1)
	assert.Equal(t, "ann@x.io", m.drafts[0].To)
	assert.Equal(t, "Your EventBuzz Ticket: Gala", m.drafts[0].Subject)
	assert.Contains(t, m.drafts[0].Mailto, "mailto:ann@x.io?subject=")
}

func TestHandleMessage_Rejects(t *testing.T) {
	m := &recordingMailer{}
	c := NewConsumer(nil, m, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.Error(t, c.handleMessage(context.Background(), []byte("nope")))

	msg := issued()
	msg.Receipt.Buyer.Email = ""
	body, _ := json.Marshal(msg)
	assert.Error(t, c.handleMessage(context.Background(), body))

	assert.Empty(t, m.drafts)
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := LogMailer{Log: slog.New(slog.NewTextHandler(&buf, nil))}

	require.NoError(t, m.Send(context.Background(), Draft{To: "ann@x.io", Subject: "Hi", Mailto: "mailto:ann@x.io"}))
	assert.Contains(t, buf.String(), "receipt draft")
	assert.Contains(t, buf.String(), "to=ann@x.io")
}

func TestNilPublisher(t *testing.T) {
	var p *Publisher
	assert.NoError(t, p.PublishTicketIssued(context.Background(), issued()))
	assert.NoError(t, p.Close())
}
