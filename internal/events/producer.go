package events

import (
	"context"       // Context for Kafka writes
	"encoding/json" // Event encoding
	"time"          // Event timestamps

	"github.com/segmentio/kafka-go" // Kafka client
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// Lifecycle event types
const (
	OrderCreated       = "order_created"
	OrderModified      = "order_modified"
	OrderCancelled     = "order_cancelled"
	OrderStatusChanged = "order_status_changed"
	TicketCreated      = "ticket_created"
	TicketReplied      = "ticket_replied"
	TicketResolved     = "ticket_resolved"
)

// Event is one lifecycle change of an order or ticket
type Event struct {
	Type       string    `json:"type"`       // One of the lifecycle event types
	RecordID   string    `json:"recordId"`   // ORD-NNN or TKT-NNN
	OwnerID    string    `json:"ownerId"`    // Owning user
	Status     string    `json:"status"`     // Status after the change
	OccurredAt time.Time `json:"occurredAt"` // Time of the change
	Record     any       `json:"record"`     // Full record after the change
}

// Publisher delivers lifecycle events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// KafkaPublisher streams events to a Kafka topic keyed by record id
type KafkaPublisher struct {
	Writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher writing to topic
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{}, // Same record, same partition
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{Writer: writer}
}

// Publish streams the event to Kafka
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"type":      event.Type,     // Event type
		"record_id": event.RecordID, // Record id
	}).Debug("Publishing lifecycle event")
	return p.Writer.WriteMessages(ctx, msg)
}

// encode builds the Kafka message of an event, keyed by record id
func encode(event Event) (kafka.Message, error) {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.RecordID),
		Value: msgBytes,
	}, nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}
