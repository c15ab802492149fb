// Package queue carries "ticket issued" messages over RabbitMQ to the receipt
// mailer.
package queue

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kirinyoku/eventbuzz/internal/receipt"
)

const TicketIssuedQueue = "eventbuzz.ticket.issued"

// TicketIssued is published once per committed ticket.
type TicketIssued struct {
	Receipt  receipt.Receipt `json:"receipt"`
	IssuedAt time.Time       `json:"issuedAt"`
}

// Dial connects to the broker and declares the queue, failing after timeout.
func Dial(ctx context.Context, url string, timeout time.Duration) (*amqp.Connection, error) {
	const op = "queue.Dial"

	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	defer func() { _ = ch.Close() }()

	if err := declare(ch); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := ctx.Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return conn, nil
}

func declare(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		TicketIssuedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	return err
}
