package kinesis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intentImage() map[string]events.DynamoDBAttributeValue {
	return map[string]events.DynamoDBAttributeValue{
		"id":             events.NewStringAttribute("event-123"),
		"aggregate_id":   events.NewStringAttribute("pi-456"),
		"aggregate_type": events.NewStringAttribute("PaymentIntent"),
		"event_type":     events.NewStringAttribute("PaymentIntentAuthorized"),
		"data":           events.NewStringAttribute(`{"money":{"amount":10000,"currency":"USD"}}`),
		"created_at":     events.NewStringAttribute(time.Now().UTC().Format(time.RFC3339Nano)),
		"version":        events.NewNumberAttribute("1"),
	}
}

func TestConvertDynamoDBImage(t *testing.T) {
	tests := []struct {
		name    string
		image   map[string]events.DynamoDBAttributeValue
		wantErr bool
	}{
		{
			name:    "valid event",
			image:   intentImage(),
			wantErr: false,
		},
		{
			name:    "nil image",
			image:   nil,
			wantErr: true,
		},
		{
			name: "missing required fields",
			image: map[string]events.DynamoDBAttributeValue{
				"id": events.NewStringAttribute("event-123"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := convertDynamoDBImage(tt.image)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, event)
			assert.Equal(t, "event-123", event.ID)
			assert.Equal(t, "pi-456", event.AggregateID)
			assert.Equal(t, "PaymentIntent", event.AggregateType)
			assert.Equal(t, "PaymentIntentAuthorized", event.EventType)
			assert.Equal(t, 1, event.Version)
		})
	}
}

func TestConvertFromDynamoDBStreamRecord(t *testing.T) {
	t.Run("INSERT event converts successfully", func(t *testing.T) {
		record := events.DynamoDBEventRecord{
			EventName: "INSERT",
			Change: events.DynamoDBStreamRecord{
				NewImage: intentImage(),
			},
		}

		event, err := ConvertFromDynamoDBStreamRecord(record)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, "event-123", event.ID)
	})

	t.Run("MODIFY event returns nil", func(t *testing.T) {
		record := events.DynamoDBEventRecord{
			EventName: "MODIFY",
		}

		event, err := ConvertFromDynamoDBStreamRecord(record)
		require.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("REMOVE event returns nil", func(t *testing.T) {
		record := events.DynamoDBEventRecord{
			EventName: "REMOVE",
		}

		event, err := ConvertFromDynamoDBStreamRecord(record)
		require.NoError(t, err)
		assert.Nil(t, event)
	})
}

func TestConvertFromKinesisRecord(t *testing.T) {
	t.Run("valid Kinesis record", func(t *testing.T) {
		streamRecord := events.DynamoDBEventRecord{
			EventName: "INSERT",
			Change: events.DynamoDBStreamRecord{
				NewImage: intentImage(),
			},
		}

		streamRecordJSON, err := json.Marshal(streamRecord)
		require.NoError(t, err)

		kinesisRecord := events.KinesisEventRecord{
			EventID: "kinesis-event-1",
			Kinesis: events.KinesisRecord{
				Data: streamRecordJSON,
			},
		}

		event, err := ConvertFromKinesisRecord(kinesisRecord)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, "event-123", event.ID)
	})
}

func TestBatchConvertFromKinesisEvent(t *testing.T) {
	t.Run("batch conversion with mixed results", func(t *testing.T) {
		validRecord := events.DynamoDBEventRecord{
			EventName: "INSERT",
			Change: events.DynamoDBStreamRecord{
				NewImage: intentImage(),
			},
		}
		validJSON, _ := json.Marshal(validRecord)

		modifyRecord := events.DynamoDBEventRecord{
			EventName: "MODIFY",
		}
		modifyJSON, _ := json.Marshal(modifyRecord)

		kinesisEvent := events.KinesisEvent{
			Records: []events.KinesisEventRecord{
				{EventID: "1", Kinesis: events.KinesisRecord{Data: validJSON}},
				{EventID: "2", Kinesis: events.KinesisRecord{Data: modifyJSON}},
				{EventID: "3", Kinesis: events.KinesisRecord{Data: []byte("invalid json")}},
			},
		}

		eventList, errs := BatchConvertFromKinesisEvent(kinesisEvent)

		assert.Len(t, eventList, 1)
		assert.Len(t, errs, 1)
		assert.Equal(t, "event-123", eventList[0].ID)
	})
}
