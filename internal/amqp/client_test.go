package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
		{40, 30 * time.Second}, // shift overflow still capped
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"connection closed", errors.New("connection closed"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"message channel closed", errors.New("message channel closed"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"protocol error", errors.New("NOT_ALLOWED - access refused"), false},
		{"marshal error", errors.New("invalid character 'x'"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isConnectionError(tt.err)
			if result != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestNewLedgerEventMessage(t *testing.T) {
	before := time.Now()
	msg := NewLedgerEventMessage("transaction", "created", "t1")
	after := time.Now()

	if msg.Entity != "transaction" || msg.Op != "created" || msg.ID != "t1" {
		t.Fatalf("message = %+v", msg)
	}
	if msg.Timestamp.Before(before) || msg.Timestamp.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", msg.Timestamp, before, after)
	}
}

func TestLedgerEventMessageJSON(t *testing.T) {
	msg := NewLedgerEventMessage("category", "deleted", "c7")

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	back, err := LedgerEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if back.Entity != msg.Entity || back.Op != msg.Op || back.ID != msg.ID {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, msg)
	}
}

func TestLedgerEventMessageInvalidJSON(t *testing.T) {
	if _, err := LedgerEventMessageFromJSON([]byte(`{broken`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
