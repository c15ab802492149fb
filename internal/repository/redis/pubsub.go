package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventsPubSub fans out "event changed" notifications between instances so
// each can drop its cached views. A nil *EventsPubSub publishes nothing.
type EventsPubSub struct {
	rdb     *redis.Client
	channel string
	now     func() time.Time
}

func NewEventsPubSub(rdb *redis.Client) *EventsPubSub {
	return &EventsPubSub{
		rdb:     rdb,
		channel: ChannelEventsChanged(),
		now:     time.Now,
	}
}

type eventChangedMsg struct {
	Type    string `json:"type"`
	EventID string `json:"event_id"`
	TsUnix  int64  `json:"ts_unix"`
}

func encodeEventChanged(eventID string, now time.Time) []byte {
	b, _ := json.Marshal(eventChangedMsg{
		Type:    "event_changed",
		EventID: eventID,
		TsUnix:  now.Unix(),
	})
	return b
}

func decodeEventChanged(payload string) (string, bool) {
	var ev eventChangedMsg
	if err := json.Unmarshal([]byte(payload), &ev); err != nil || ev.EventID == "" {
		return "", false
	}
	return ev.EventID, true
}

func (p *EventsPubSub) PublishEventChanged(ctx context.Context, eventID string) error {
	if p == nil {
		return nil
	}

	return p.rdb.Publish(ctx, p.channel, encodeEventChanged(eventID, p.now())).Err()
}

// Subscribe calls handler for every notification until ctx is done.
func (p *EventsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, eventID string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			if eventID, ok := decodeEventChanged(m.Payload); ok {
				handler(ctx, eventID)
			}
		}
	}
}
