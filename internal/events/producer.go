package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"

	"skybook/pkg/logger"
)

// EventType labels a booking lifecycle event on the wire
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingConflict  EventType = "booking.seat_conflict"
	EventBookingFailed    EventType = "booking.failed"
)

// BookingEvent is the message published for each booking lifecycle change.
// Events are informational fan-out for downstream consumers (notifications,
// analytics); the booking flow never depends on them being delivered.
type BookingEvent struct {
	Type             EventType `json:"type"`
	SessionID        string    `json:"session_id"`
	FlightID         int       `json:"flight_id"`
	BookingReference string    `json:"booking_reference,omitempty"`
	SeatNumbers      []string  `json:"seat_numbers,omitempty"`
	ContactEmail     string    `json:"contact_email,omitempty"`
	Detail           string    `json:"detail,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Publisher publishes booking lifecycle events. Implementations must be safe
// for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// Config holds Kafka producer settings
type Config struct {
	Brokers []string
	Topic   string
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher creates a synchronous Kafka publisher for booking events
func NewKafkaPublisher(cfg Config) (Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	// Hash on flight ID so one flight's events stay ordered
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaPublisher{
		producer: producer,
		topic:    cfg.Topic,
		log:      logger.GetDefault(),
	}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.Itoa(event.FlightID)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("session_id"), Value: []byte(event.SessionID)},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	p.log.Debug("booking event published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"type", event.Type,
		"flight_id", event.FlightID,
	)
	return nil
}

func (p *kafkaPublisher) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close kafka producer: %w", err)
		}
	}
	return nil
}

// NopPublisher discards every event. Used when Kafka is disabled so callers
// never need a nil check.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event BookingEvent) error { return nil }
func (NopPublisher) Close() error                                          { return nil }
