package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/logger"
	"github.com/Ms-You/poje-remind/pkg/retry"
)

// Header keys set on every record
const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
	HeaderSource    = "source"
)

// Publisher sends domain events to the outside world
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
	Close() error
}

// KafkaConfig holds configuration for KafkaPublisher
type KafkaConfig struct {
	Brokers        []string
	Topic          string
	ClientID       string
	Source         string
	ProduceTimeout time.Duration
	// Backoff applies to retriable broker errors
	Backoff retry.Backoff
}

// KafkaPublisher produces events to a single topic with franz-go
type KafkaPublisher struct {
	client  *kgo.Client
	topic   string
	source  string
	timeout time.Duration
	backoff retry.Backoff
}

// NewKafkaPublisher creates a KafkaPublisher. The client connects lazily.
func NewKafkaPublisher(cfg *KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if cfg.Topic == "" {
		cfg.Topic = "remind.events"
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "remind-service"
	}
	if cfg.Source == "" {
		cfg.Source = cfg.ClientID
	}
	if cfg.ProduceTimeout == 0 {
		cfg.ProduceTimeout = 5 * time.Second
	}
	if cfg.Backoff.Attempts == 0 {
		cfg.Backoff = retry.Exponential(3, 100*time.Millisecond, time.Second)
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &KafkaPublisher{
		client:  client,
		topic:   cfg.Topic,
		source:  cfg.Source,
		timeout: cfg.ProduceTimeout,
		backoff: cfg.Backoff,
	}, nil
}

// Publish produces ev and waits for the broker acknowledgement
func (p *KafkaPublisher) Publish(ctx context.Context, ev domain.Event) error {
	record, err := newRecord(p.topic, p.source, ev)
	if err != nil {
		return err
	}

	err = retry.Do(ctx, p.backoff, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return classifyProduceErr(p.client.ProduceSync(ctx, record).FirstErr())
	}, func(attempt int, err error, wait time.Duration) {
		logger.Get().Warn("retrying event produce",
			zap.String("event_type", string(ev.Type)),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to produce %s: %w", ev.Type, err)
	}
	return nil
}

// classifyProduceErr marks errors the broker will not fix on a retry as permanent
func classifyProduceErr(err error) error {
	if err == nil {
		return nil
	}
	if kerr.IsRetriable(err) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return retry.Permanent(err)
}

// Close flushes pending records and closes the client
func (p *KafkaPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	err := p.client.Flush(ctx)
	p.client.Close()
	return err
}

func newRecord(topic, source string, ev domain.Event) (*kgo.Record, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(ev.Key),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: HeaderEventType, Value: []byte(ev.Type)},
			{Key: HeaderEventID, Value: []byte(ev.ID)},
			{Key: HeaderSource, Value: []byte(source)},
		},
		Timestamp: ev.OccurredAt,
	}, nil
}

// NoOpPublisher drops events; used when Kafka is disabled
type NoOpPublisher struct{}

// NewNoOpPublisher creates a NoOpPublisher
func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{}
}

// Publish logs the event at debug level
func (p *NoOpPublisher) Publish(_ context.Context, ev domain.Event) error {
	logger.Get().Debug("event dropped, publisher disabled",
		zap.String("event_type", string(ev.Type)),
		zap.String("key", ev.Key),
	)
	return nil
}

// Close does nothing
func (p *NoOpPublisher) Close() error {
	return nil
}
