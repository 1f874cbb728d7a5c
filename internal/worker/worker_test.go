package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"ledgerly/internal/amqp"
	"ledgerly/internal/kvmem"
	"ledgerly/internal/log"
	"ledgerly/internal/storage"
	"ledgerly/internal/store"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func TestEventWorkerMirrorsTransactions(t *testing.T) {
	ctx := context.Background()
	primary := kvmem.New()
	mirror := kvmem.New()
	primary.Seed(storage.KeyTransactions, []byte(`{"schema_version":1,"data":[]}`))

	w := NewEventWorker(primary, mirror, testLogger())
	msg := amqp.NewLedgerEventMessage("transaction", "created", "tx-1")
	if err := w.HandleEvent(ctx, msg); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	got, found, err := mirror.Load(ctx, storage.KeyTransactions)
	if err != nil || !found {
		t.Fatalf("mirror.Load() = %q, %v, %v; want blob", got, found, err)
	}
	if string(got) != `{"schema_version":1,"data":[]}` {
		t.Errorf("mirrored blob = %s", got)
	}
}

func TestEventWorkerPreferenceKeys(t *testing.T) {
	ctx := context.Background()
	primary := kvmem.New()
	mirror := kvmem.New()
	primary.Seed(storage.KeyCurrency, []byte(`{"schema_version":1,"data":"BDT"}`))

	w := NewEventWorker(primary, mirror, testLogger())
	msg := amqp.NewLedgerEventMessage("preference", "updated", storage.KeyCurrency)
	if err := w.HandleEvent(ctx, msg); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if _, found, _ := mirror.Load(ctx, storage.KeyCurrency); !found {
		t.Error("currency blob not mirrored")
	}
}

func TestEventWorkerSkipsUnknownEntity(t *testing.T) {
	primary := kvmem.New()
	mirror := kvmem.New()
	w := NewEventWorker(primary, mirror, testLogger())

	msg := amqp.NewLedgerEventMessage("budget", "created", "b-1")
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent() error = %v; unknown entities should be skipped", err)
	}
	if _, found, _ := mirror.Load(context.Background(), storage.KeyTransactions); found {
		t.Error("mirror should be untouched for unknown entity")
	}
}

func TestEventWorkerMissingBlobIsNotAnError(t *testing.T) {
	w := NewEventWorker(kvmem.New(), kvmem.New(), testLogger())
	msg := amqp.NewLedgerEventMessage("category", "deleted", "c-1")
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent() error = %v; missing primary blob should be skipped", err)
	}
}

type failingSaver struct{}

func (failingSaver) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestEventWorkerPropagatesMirrorErrors(t *testing.T) {
	primary := kvmem.New()
	primary.Seed(storage.KeyCategories, []byte(`{"schema_version":1,"data":[]}`))

	w := NewEventWorker(primary, failingSaver{}, testLogger())
	msg := amqp.NewLedgerEventMessage("category", "updated", "c-1")
	if err := w.HandleEvent(context.Background(), msg); err == nil {
		t.Fatal("HandleEvent() = nil, want mirror error so the delivery is requeued")
	}
}

func TestKeyForEntity(t *testing.T) {
	tests := []struct {
		entity, id string
		want       string
		ok         bool
	}{
		{"transaction", "tx-1", storage.KeyTransactions, true},
		{"category", "c-1", storage.KeyCategories, true},
		{"preference", storage.KeyCurrency, storage.KeyCurrency, true},
		{"preference", storage.KeyDarkMode, storage.KeyDarkMode, true},
		{"preference", "theme", "", false},
		{"budget", "b-1", "", false},
	}
	for _, tt := range tests {
		got, ok := keyForEntity(tt.entity, tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("keyForEntity(%q, %q) = %q, %v; want %q, %v",
				tt.entity, tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPublisherToleratesNilClient(t *testing.T) {
	st, err := store.Open(context.Background(), kvmem.New(), testLogger())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	p := NewEventPublisher(nil, testLogger())
	p.Attach(st)

	st.SetCurrency(context.Background(), "USD")
	if got := st.Currency(); got != "USD" {
		t.Errorf("Currency() = %q after mutation with nil publisher attached", got)
	}
}
