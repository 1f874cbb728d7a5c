// Package worker bridges store mutations to the message broker and hosts
// the consumer loop run by ledgerly-worker.
package worker

import (
	"context"

	"ledgerly/internal/amqp"
	"ledgerly/internal/log"
	"ledgerly/internal/store"
)

// EventPublisher forwards store changes to the broker. Publishing is
// fire-and-forget: failures are logged and never block or fail a mutation.
type EventPublisher struct {
	client *amqp.Client
	logger *log.Logger
}

// NewEventPublisher wraps an AMQP client; client may be nil, in which case
// every change is silently skipped.
func NewEventPublisher(client *amqp.Client, logger *log.Logger) *EventPublisher {
	return &EventPublisher{
		client: client,
		logger: logger.WithComponent(log.ComponentAMQP),
	}
}

// Attach subscribes the publisher to the store's change feed.
func (p *EventPublisher) Attach(st *store.Store) {
	st.Subscribe(p.publish)
}

func (p *EventPublisher) publish(c store.Change) {
	if p.client == nil {
		return
	}

	msg := amqp.NewLedgerEventMessage(string(c.Entity), string(c.Op), c.ID)
	if err := p.client.PublishLedgerEvent(context.Background(), msg); err != nil {
		p.logger.Error("Failed to publish ledger event",
			log.FieldError, err,
			"entity", msg.Entity,
			"op", msg.Op,
			"id", msg.ID)
	}
}
