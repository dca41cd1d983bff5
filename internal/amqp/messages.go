package amqp

import (
	"encoding/json"
	"time"

	"finsight/internal/ledger"
)

// EntryMessage wraps a ledger entry for transport. The full entry
// rides in the message so the worker never has to read the database
// back.
type EntryMessage struct {
	Entry     ledger.Entry `json:"entry"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewEntryMessage(entry ledger.Entry) *EntryMessage {
	return &EntryMessage{
		Entry:     entry,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EntryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntryMessageFromJSON creates a message from JSON bytes
func EntryMessageFromJSON(data []byte) (*EntryMessage, error) {
	var msg EntryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
