// README: Publishes order status-change events to a RabbitMQ topic exchange.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"bistro/internal/modules/order"
)

const exchange = "order.events"

type statusChangedMessage struct {
	OrderID    string    `json:"order_id"`
	ItemID     string    `json:"item_id,omitempty"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	ActorRole  string    `json:"actor_role"`
	ChangedAt  time.Time `json:"changed_at"`
}

// Publisher implements order.Notifier on top of an AMQP channel.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(ch *amqp.Channel) (*Publisher, error) {
	err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{ch: ch}, nil
}

// StatusChanged publishes after the transition is already committed, so
// failures are logged and swallowed rather than failing the request.
func (p *Publisher) StatusChanged(ctx context.Context, ev order.Event) {
	msg := statusChangedMessage{
		OrderID:    string(ev.OrderID),
		FromStatus: ev.FromStatus,
		ToStatus:   ev.ToStatus,
		ActorRole:  string(ev.ActorRole),
		ChangedAt:  ev.CreatedAt,
	}
	if ev.ItemID != nil {
		msg.ItemID = string(*ev.ItemID)
	}
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal status event", "error", err)
		return
	}

	key := "order.status." + ev.ToStatus
	if ev.ItemID != nil {
		key = "order.item.status." + ev.ToStatus
	}
	err = p.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   ev.CreatedAt,
		Body:        body,
	})
	if err != nil {
		slog.Error("publish status event", "order_id", msg.OrderID, "error", err)
	}
}
