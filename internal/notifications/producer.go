package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"eventhub/internal/bookings"
	"eventhub/internal/shared/config"
	"eventhub/pkg/logger"
)

// Publisher is a bookings.EventPublisher that can be shut down.
type Publisher interface {
	bookings.EventPublisher
	Close() error
}

// KafkaPublisher publishes booking events to a Kafka topic.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
	now      func() time.Time
}

// NewKafkaPublisher dials the configured brokers.
func NewKafkaPublisher(cfg config.KafkaConfig, log *logger.Logger) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps one event's messages in order
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.BookingTopic, log), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.GetDefault()
	}
	return &KafkaPublisher{producer: producer, topic: topic, log: log.WithComponent("notifications"), now: time.Now}
}

func (p *KafkaPublisher) BookingConfirmed(ctx context.Context, b *bookings.Booking) error {
	return p.publish(ctx, NewBookingEvent(EventTypeBookingConfirmed, b, p.now()))
}

func (p *KafkaPublisher) BookingCancelled(ctx context.Context, b *bookings.Booking, seatsReleased bool) error {
	ev := NewBookingEvent(EventTypeBookingCancelled, b, p.now())
	ev.SeatsReleased = seatsReleased
	return p.publish(ctx, ev)
}

func (p *KafkaPublisher) publish(ctx context.Context, ev *BookingEvent) error {
	messageBytes, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(ev.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   createHeaders(ev),
		Timestamp: ev.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	p.log.DebugContext(ctx, "Booking event published",
		"topic", p.topic, "partition", partition, "offset", offset,
		"type", string(ev.Type), "booking_id", ev.BookingID)
	return nil
}

func createHeaders(ev *BookingEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(ev.Type)},
		{Key: []byte("booking_id"), Value: []byte(fmt.Sprint(ev.BookingID))},
		{Key: []byte("transaction_id"), Value: []byte(ev.TransactionID)},
		{Key: []byte("producer"), Value: []byte("eventhub-bookings")},
	}
}

// Close closes the Kafka producer
func (p *KafkaPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) BookingConfirmed(context.Context, *bookings.Booking) error       { return nil }
func (NopPublisher) BookingCancelled(context.Context, *bookings.Booking, bool) error { return nil }
func (NopPublisher) Close() error                                                    { return nil }

// New returns a Kafka publisher when enabled, otherwise a NopPublisher.
func New(cfg config.KafkaConfig, log *logger.Logger) (Publisher, error) {
	if !cfg.Enabled {
		return NopPublisher{}, nil
	}
	return NewKafkaPublisher(cfg, log)
}
