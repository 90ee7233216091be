package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// ErrPoolClosed is returned by GetChannel once Close was called.
var ErrPoolClosed = errors.New("channel pool closed")

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// ChannelPool lends a fixed number of AMQP channels on one connection.
// Borrowers wait for a free channel until their context is done.
type ChannelPool struct {
	conn     *amqp.Connection
	open     func() (amqpChannel, error)
	channels chan amqpChannel
	done     chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewChannelPool dials url and opens size channels, each with queueName
// declared durable.
func NewChannelPool(url, queueName string, size int) (*ChannelPool, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	open := func() (amqpChannel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
			ch.Close()
			return nil, fmt.Errorf("failed to declare queue: %w", err)
		}
		return ch, nil
	}

	pool, err := newChannelPool(open, size)
	if err != nil {
		conn.Close()
		return nil, err
	}
	pool.conn = conn

	log.Info().Int("size", cap(pool.channels)).Str("queue", queueName).Msg("🐇 RabbitMQ channel pool ready")
	return pool, nil
}

func newChannelPool(open func() (amqpChannel, error), size int) (*ChannelPool, error) {
	if size <= 0 {
		size = 1
	}
	pool := &ChannelPool{
		open:     open,
		channels: make(chan amqpChannel, size),
		done:     make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		ch, err := open()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		pool.channels <- ch
	}
	return pool, nil
}

// GetChannel borrows a channel, waiting until one is returned, ctx is
// done or the pool is closed. A channel the broker closed meanwhile is
// replaced by a fresh one.
func (p *ChannelPool) GetChannel(ctx context.Context) (amqpChannel, error) {
	select {
	case <-p.done:
		return nil, ErrPoolClosed
	default:
	}

	select {
	case ch := <-p.channels:
		if !ch.IsClosed() {
			return ch, nil
		}
		fresh, err := p.open()
		if err != nil {
			// keep the slot so the next borrower retries
			p.ReturnChannel(ch)
			return nil, fmt.Errorf("failed to reopen channel: %w", err)
		}
		return fresh, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return nil, ErrPoolClosed
	}
}

// ReturnChannel gives a borrowed channel back to the pool.
func (p *ChannelPool) ReturnChannel(ch amqpChannel) {
	if ch == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		ch.Close()
		return
	}
	select {
	case p.channels <- ch:
	default:
		ch.Close()
	}
}

func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.done)

drain:
	for {
		select {
		case ch := <-p.channels:
			ch.Close()
		default:
			break drain
		}
	}
	if p.conn != nil {
		p.conn.Close()
	}
	log.Info().Msg("🐇 RabbitMQ channel pool closed")
}
