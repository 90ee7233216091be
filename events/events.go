// Package events publishes storefront events, currently placed orders,
// to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/junaidrashid-git/revista-gateway/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// OrderPlaced is emitted once per successful checkout.
type OrderPlaced struct {
	SessionID string       `json:"session_id"`
	Order     models.Order `json:"order"`
}

type Publisher interface {
	PublishOrder(ctx context.Context, ev OrderPlaced) error
}

// Noop drops every event. It is used when RABBITMQ_URL is unset.
type Noop struct{}

func (Noop) PublishOrder(context.Context, OrderPlaced) error { return nil }

// AMQPPublisher sends events to a durable queue through a ChannelPool.
type AMQPPublisher struct {
	pool      *ChannelPool
	queueName string
	timeout   time.Duration
}

func NewAMQPPublisher(pool *ChannelPool, queueName string) *AMQPPublisher {
	return &AMQPPublisher{pool: pool, queueName: queueName, timeout: 5 * time.Second}
}

func (p *AMQPPublisher) PublishOrder(ctx context.Context, ev OrderPlaced) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ch, err := p.pool.GetChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	err = ch.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    ev.Order.Ref,
		Timestamp:    ev.Order.Timestamp,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}

	log.Info().Str("order_ref", ev.Order.Ref).Msg("📦 Published order")
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []OrderPlaced
	Err    error
}

func (r *Recorder) PublishOrder(_ context.Context, ev OrderPlaced) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Events() []OrderPlaced {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]OrderPlaced(nil), r.events...)
}
