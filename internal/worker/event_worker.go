package worker

import (
	"context"
	"fmt"

	"ledgerly/internal/amqp"
	"ledgerly/internal/log"
	"ledgerly/internal/storage"
)

// Loader reads blobs from the primary key-value store.
type Loader interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
}

// Saver writes blobs to the mirror key-value store.
type Saver interface {
	Save(ctx context.Context, key string, value []byte) error
}

// EventWorker consumes ledger change events and mirrors the affected state
// into a secondary key-value store, giving an off-process replica of the
// primary database.
type EventWorker struct {
	primary Loader
	mirror  Saver
	logger  *log.Logger
}

func NewEventWorker(primary Loader, mirror Saver, logger *log.Logger) *EventWorker {
	return &EventWorker{
		primary: primary,
		mirror:  mirror,
		logger:  logger.WithComponent(log.ComponentWorker),
	}
}

// HandleEvent processes one change event: it copies the blob for the
// affected entity from the primary store to the mirror.
func (w *EventWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	key, ok := keyForEntity(msg.Entity, msg.ID)
	if !ok {
		w.logger.Warn("Skipping event for unknown entity", "entity", msg.Entity)
		return nil
	}

	raw, found, err := w.primary.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %q from primary: %w", key, err)
	}
	if !found {
		w.logger.Warn("Primary has no blob for event key", log.FieldKey, key)
		return nil
	}

	if err := w.mirror.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("mirror %q: %w", key, err)
	}

	w.logger.InfoContext(ctx, "Mirrored ledger state",
		log.FieldKey, key,
		"entity", msg.Entity,
		"op", msg.Op)
	return nil
}

func keyForEntity(entity, id string) (string, bool) {
	switch entity {
	case "transaction":
		return storage.KeyTransactions, true
	case "category":
		return storage.KeyCategories, true
	case "preference":
		// Preference events carry the storage key directly.
		if id == storage.KeyCurrency || id == storage.KeyDarkMode {
			return id, true
		}
	}
	return "", false
}
