package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEvents(aggregateID string, fromVersion, count int) []Event {
	events := make([]Event, count)
	for i := range events {
		events[i] = Event{
			ID:            aggregateID + "-e",
			AggregateID:   aggregateID,
			AggregateType: "PaymentIntent",
			EventType:     "PaymentIntentAuthorized",
			Data:          json.RawMessage(`{}`),
			Timestamp:     time.Now(),
			Version:       fromVersion + i + 1,
		}
	}
	return events
}

// ============================================
// Append Tests
// ============================================

func TestAppend_NewStream(t *testing.T) {
	es := NewEventStore(nil)

	err := es.Append(context.Background(), "pi-1", 0, makeEvents("pi-1", 0, 2))

	require.NoError(t, err)
	assert.Len(t, es.GetEvents("pi-1"), 2)
}

func TestAppend_ContiguousWrites(t *testing.T) {
	es := NewEventStore(nil)
	ctx := context.Background()
	require.NoError(t, es.Append(ctx, "pi-1", 0, makeEvents("pi-1", 0, 2)))

	err := es.Append(ctx, "pi-1", 2, makeEvents("pi-1", 2, 1))

	require.NoError(t, err)
	events := es.GetEvents("pi-1")
	require.Len(t, events, 3)
	assert.Equal(t, 3, events[2].Version)
}

func TestAppend_VersionConflict(t *testing.T) {
	es := NewEventStore(nil)
	ctx := context.Background()
	require.NoError(t, es.Append(ctx, "pi-1", 0, makeEvents("pi-1", 0, 2)))

	// A writer that loaded at version 1 lost the race
	err := es.Append(ctx, "pi-1", 1, makeEvents("pi-1", 1, 1))

	assert.ErrorIs(t, err, ErrConcurrencyConflict)
	assert.Len(t, es.GetEvents("pi-1"), 2)
}

func TestAppend_EmptySliceIsNoop(t *testing.T) {
	es := NewEventStore(nil)

	require.NoError(t, es.Append(context.Background(), "pi-1", 5, nil))
	assert.Empty(t, es.GetEvents("pi-1"))
}

// ============================================
// Read Tests
// ============================================

func TestGetEventsFromVersion(t *testing.T) {
	es := NewEventStore(nil)
	ctx := context.Background()
	require.NoError(t, es.Append(ctx, "pi-1", 0, makeEvents("pi-1", 0, 5)))

	events := es.GetEventsFromVersion(ctx, "pi-1", 3)

	require.Len(t, events, 2)
	assert.Equal(t, 4, events[0].Version)
	assert.Equal(t, 5, events[1].Version)
}

func TestGetAllEvents_AcrossAggregates(t *testing.T) {
	es := NewEventStore(nil)
	ctx := context.Background()
	require.NoError(t, es.Append(ctx, "pi-1", 0, makeEvents("pi-1", 0, 2)))
	require.NoError(t, es.Append(ctx, "pi-2", 0, makeEvents("pi-2", 0, 3)))

	assert.Len(t, es.GetAllEvents(), 5)
}

// ============================================
// Snapshot Tests
// ============================================

func TestSnapshotRoundtrip(t *testing.T) {
	es := NewEventStore(nil)
	ctx := context.Background()

	missing, err := es.GetSnapshot(ctx, "pi-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	snap := &Snapshot{
		AggregateID:   "pi-1",
		AggregateType: "PaymentIntent",
		Version:       10,
		State:         json.RawMessage(`{"status":"succeeded"}`),
		CreatedAt:     time.Now(),
	}
	require.NoError(t, es.SaveSnapshot(ctx, snap))

	got, err := es.GetSnapshot(ctx, "pi-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Version)
	assert.JSONEq(t, `{"status":"succeeded"}`, string(got.State))
}

func TestSaveSnapshot_KeepsLatestOnly(t *testing.T) {
	es := NewEventStore(nil)
	ctx := context.Background()

	require.NoError(t, es.SaveSnapshot(ctx, &Snapshot{AggregateID: "pi-1", Version: 10}))
	require.NoError(t, es.SaveSnapshot(ctx, &Snapshot{AggregateID: "pi-1", Version: 20}))

	got, err := es.GetSnapshot(ctx, "pi-1")
	require.NoError(t, err)
	assert.Equal(t, 20, got.Version)
}
