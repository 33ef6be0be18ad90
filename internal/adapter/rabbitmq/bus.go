package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leaf-and-fork/internal/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// changesExchange is a fanout: every live subscriber gets every
// notification, and nobody else. Subscribers bind a fresh exclusive
// queue, so anything published before they attached is simply gone;
// the polling fallback covers that window.
const changesExchange = "order_changes"

// Bus is the change-notification channel between the two contexts.
type Bus struct {
	conn   Connection
	logger *zap.Logger
}

func NewBus(conn Connection, logger *zap.Logger) *Bus {
	return &Bus{conn: conn, logger: logger}
}

func (b *Bus) PublishChange(ctx context.Context, n interfaces.ChangeNotification) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(changesExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = ch.Publish(changesExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Subscribe starts consuming notifications in the background and
// returns a cancellation handle. The consume loop reconnects on channel
// failure; while it is down, deliveries are lost, which the contract
// allows.
func (b *Bus) Subscribe(ctx context.Context, handler interfaces.ChangeHandler) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		for {
			err := b.consume(subCtx, handler)
			if subCtx.Err() != nil {
				return
			}
			b.logger.Warn("change subscriber disconnected, reconnecting",
				zap.Error(err),
			)
			select {
			case <-subCtx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}()

	return cancel, nil
}

func (b *Bus) consume(ctx context.Context, handler interfaces.ChangeHandler) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.ExchangeDeclare(changesExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Temporary exclusive queue: it exists only while this subscriber
	// is listening.
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", changesExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}

			var n interfaces.ChangeNotification
			if err := json.Unmarshal(msg.Body, &n); err != nil {
				b.logger.Warn("dropping malformed change notification", zap.Error(err))
				continue
			}
			handler(ctx, n)
		}
	}
}
