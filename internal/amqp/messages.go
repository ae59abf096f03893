package amqp

import (
	"encoding/json"
	"time"
)

// Sync actions carried by ledger sync messages.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// LedgerSyncMessage tells the worker that a transaction changed. It carries
// only the ID and the action; the worker fetches the current record from the
// store, so a stale message never overwrites newer data.
type LedgerSyncMessage struct {
	TransactionID string    `json:"transaction_id"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewLedgerSyncMessage creates a sync message for the given transaction
func NewLedgerSyncMessage(transactionID, action string) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSyncMessageFromJSON creates a message from JSON bytes
func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
