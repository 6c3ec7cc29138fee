package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/payment-es/internal/infrastructure/store"
	"github.com/google/uuid"
)

// Aggregate defines the interface for event-sourced aggregates. State is
// derived exclusively by folding events through ApplyEvent; commands record
// new events which are applied synchronously and buffered until persisted.
type Aggregate interface {
	GetID() string
	GetVersion() int
	ApplyEvent(store.Event) error
	RecordedEvents() []store.Event
	ClearRecorded()
}

// Root is the embeddable base of every aggregate: identity, the version
// counter shared by root and nested gateway events, and the buffer of
// recorded-but-unpersisted events.
type Root struct {
	ID      string `json:"id"`
	Version int    `json:"version"`

	recorded []store.Event
}

func (r *Root) GetID() string { return r.ID }

func (r *Root) GetVersion() int { return r.Version }

// RecordedEvents returns the events recorded since the aggregate was loaded
// (or created), in emission order, for persistence.
func (r *Root) RecordedEvents() []store.Event { return r.recorded }

func (r *Root) ClearRecorded() { r.recorded = nil }

func (r *Root) appendRecorded(e store.Event) { r.recorded = append(r.recorded, e) }

type recorder interface {
	appendRecorded(store.Event)
}

// Record stamps an event envelope, applies it to the aggregate and buffers it.
// Commands must finish all validation before their first Record call, so a
// failed command leaves both state and buffer untouched.
func Record(agg Aggregate, aggregateType, eventType string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", eventType, err)
	}

	event := store.Event{
		ID:            uuid.New().String(),
		AggregateID:   agg.GetID(),
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          payload,
		Timestamp:     time.Now(),
		Version:       agg.GetVersion() + 1,
	}

	if err := agg.ApplyEvent(event); err != nil {
		return err
	}

	rec, ok := agg.(recorder)
	if !ok {
		return fmt.Errorf("aggregate %T does not embed aggregate.Root", agg)
	}
	rec.appendRecorded(event)
	return nil
}

// Reconstitute folds an ordered event stream into a fresh aggregate.
// Reconstituting twice from the same stream yields identical state.
func Reconstitute[T Aggregate](id string, events []store.Event, newAggregate func() T) (T, error) {
	agg := newAggregate()
	for _, event := range events {
		if err := agg.ApplyEvent(event); err != nil {
			var zero T
			return zero, fmt.Errorf("failed to apply event %s for aggregate %s: %w", event.EventType, id, err)
		}
	}
	return agg, nil
}

// LoadAggregate loads an aggregate by replaying events, using snapshot if available
// Returns the aggregate, a boolean indicating if data was found, and any error
func LoadAggregate[T Aggregate](
	ctx context.Context,
	eventStore store.EventStoreInterface,
	id string,
	newAggregate func() T,
) (T, bool, error) {
	agg := newAggregate()

	snapshot, err := eventStore.GetSnapshot(ctx, id)
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var events []store.Event
	if snapshot != nil {
		if err := json.Unmarshal(snapshot.State, agg); err != nil {
			var zero T
			return zero, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		events = eventStore.GetEventsFromVersion(ctx, id, snapshot.Version)
	} else {
		events = eventStore.GetEvents(id)
	}

	// Check if any data was found
	hasData := snapshot != nil || len(events) > 0

	for _, event := range events {
		if err := agg.ApplyEvent(event); err != nil {
			var zero T
			return zero, false, fmt.Errorf("failed to apply event: %w", err)
		}
	}

	return agg, hasData, nil
}

// Persist appends the aggregate's recorded events, conditioned on the version
// the aggregate was at when loaded. On success the buffer is cleared; on a
// store.ErrConcurrencyConflict the caller reloads and retries the command.
func Persist(ctx context.Context, eventStore store.EventStoreInterface, agg Aggregate) error {
	recorded := agg.RecordedEvents()
	if len(recorded) == 0 {
		return nil
	}

	expectedVersion := agg.GetVersion() - len(recorded)
	if err := eventStore.Append(ctx, agg.GetID(), expectedVersion, recorded); err != nil {
		return err
	}

	agg.ClearRecorded()
	return nil
}

// MaybeCreateSnapshot creates a snapshot if the threshold is exceeded
func MaybeCreateSnapshot(
	ctx context.Context,
	eventStore store.EventStoreInterface,
	agg Aggregate,
	aggregateType string,
) error {
	version := agg.GetVersion()
	if version > 0 && version%store.SnapshotThreshold == 0 {
		state, err := json.Marshal(agg)
		if err != nil {
			return fmt.Errorf("failed to marshal aggregate state: %w", err)
		}

		snapshot := &store.Snapshot{
			AggregateID:   agg.GetID(),
			AggregateType: aggregateType,
			Version:       version,
			State:         state,
			CreatedAt:     time.Now(),
		}

		if err := eventStore.SaveSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
	}
	return nil
}
