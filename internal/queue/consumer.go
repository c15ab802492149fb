package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Draft is a receipt mail ready to hand to a mail client.
type Draft struct {
	To      string
	Subject string
	Mailto  string
}

// Mailer delivers a receipt draft.
type Mailer interface {
	Send(ctx context.Context, d Draft) error
}

// LogMailer writes drafts to the log instead of sending them.
type LogMailer struct {
	Log *slog.Logger
}

func (m LogMailer) Send(ctx context.Context, d Draft) error {
	m.Log.InfoContext(ctx, "receipt draft",
		slog.String("to", d.To),
		slog.String("subject", d.Subject),
		slog.String("mailto", d.Mailto),
	)
	return nil
}

// Consumer turns TicketIssued messages into receipt drafts.
type Consumer struct {
	conn   *amqp.Connection
	mailer Mailer
	log    *slog.Logger
}

func NewConsumer(conn *amqp.Connection, mailer Mailer, log *slog.Logger) *Consumer {
	return &Consumer{conn: conn, mailer: mailer, log: log}
}

// Run consumes until ctx is done or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	const op = "queue.Consumer.Run"

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("set qos failed", slog.Any("err", err))
	}

	if err := declare(ch); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, TicketIssuedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	c.log.Info("receipt consumer started", slog.String("queue", TicketIssuedQueue))
	defer c.log.Info("receipt consumer stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%s:%w", op, errors.New("deliveries channel closed"))
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				c.log.Error("handle message failed",
					slog.String("message_id", d.MessageId),
					slog.Any("err", err),
				)
				_ = d.Nack(false, false) // do not requeue poison messages
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	var msg TicketIssued
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	r := msg.Receipt
	if r.TicketID == "" || r.Buyer.Email == "" {
		return errors.New("message without ticket id or buyer email")
	}

	return c.mailer.Send(ctx, Draft{
		To:      r.Buyer.Email,
		Subject: r.MailSubject(),
		Mailto:  r.MailtoURL(),
	})
}
