package store

import (
	"encoding/json"
	"time"
)

// Event is the envelope persisted per state change. Envelopes are stamped by
// the aggregate layer before they reach a store: ID, version, type tags and
// timestamp are already set when Append is called.
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
}
