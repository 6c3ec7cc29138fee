package store

import (
	"context"
	"errors"
)

var (
	// ErrConcurrencyConflict means the stream moved past expectedVersion
	// between load and append. Callers retry by reloading and re-validating.
	ErrConcurrencyConflict = errors.New("concurrency conflict: aggregate version mismatch")

	ErrNotFound = errors.New("aggregate not found")
)

// EventStoreInterface defines the interface for event stores
type EventStoreInterface interface {
	// Append persists events for one aggregate, conditioned on the stream
	// currently being at expectedVersion. Events must be contiguous,
	// pre-stamped envelopes starting at expectedVersion+1.
	Append(ctx context.Context, aggregateID string, expectedVersion int, events []Event) error
	GetEvents(aggregateID string) []Event
	GetEventsFromVersion(ctx context.Context, aggregateID string, fromVersion int) []Event
	GetAllEvents() []Event
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	GetSnapshot(ctx context.Context, aggregateID string) (*Snapshot, error)
}
