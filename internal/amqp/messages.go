package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEventMessage announces a single store mutation. It carries only the
// entity, operation and ID; consumers fetch current state themselves.
type LedgerEventMessage struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(entity, op, id string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
