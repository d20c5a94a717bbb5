package amqp

import (
	"encoding/json"
	"time"
)

// EntryCreatedMessage tells the backup worker that a new entry exists. Only
// the ID travels; the worker re-reads the entry from the store so the row it
// mirrors is whatever is persisted, not what was in flight.
type EntryCreatedMessage struct {
	EntryID   string    `json:"entry_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryCreatedMessage(entryID string) *EntryCreatedMessage {
	return &EntryCreatedMessage{
		EntryID:   entryID,
		Timestamp: time.Now(),
	}
}

func (m *EntryCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryCreatedMessageFromJSON(data []byte) (*EntryCreatedMessage, error) {
	var msg EntryCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
