package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKeysByRecordID(t *testing.T) {
	at := time.Date(2026, 2, 20, 14, 30, 0, 0, time.UTC)
	msg, err := encode(Event{
		Type:       OrderStatusChanged,
		RecordID:   "ORD-003",
		OwnerID:    "u2",
		Status:     "accepted",
		OccurredAt: at,
		Record:     map[string]any{"quantity": 50},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-003", string(msg.Key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "order_status_changed", decoded["type"])
	assert.Equal(t, "ORD-003", decoded["recordId"])
	assert.Equal(t, "u2", decoded["ownerId"])
	assert.Equal(t, "accepted", decoded["status"])
	assert.Equal(t, "2026-02-20T14:30:00Z", decoded["occurredAt"])
	assert.Equal(t, float64(50), decoded["record"].(map[string]any)["quantity"])
}

func TestEncodeRejectsUnmarshalableRecord(t *testing.T) {
	_, err := encode(Event{Type: TicketCreated, RecordID: "TKT-001", Record: make(chan int)})
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: OrderCreated}))
}

func TestNewKafkaPublisher(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "order-events")
	assert.Equal(t, "order-events", p.Writer.Topic)
	assert.Equal(t, "localhost:9092", p.Writer.Addr.String())
	assert.NoError(t, p.Close())
}
