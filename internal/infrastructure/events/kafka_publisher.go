package events

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	kgo "github.com/segmentio/kafka-go"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

// KafkaPublisher writes engagement events to a topic, keyed by reel ID so all
// events for one reel stay ordered within a partition.
type KafkaPublisher struct {
	w      messageWriter
	logger usecasecontract.IAppLogger
}

var _ contract.IEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string, logger usecasecontract.IAppLogger) *KafkaPublisher {
	w := &kgo.Writer{
		Addr:                   kgo.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kgo.Hash{},
		RequiredAcks:           kgo.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{w: w, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event entity.EngagementEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	b, err := sonic.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	msg := kgo.Message{
		Key:   []byte(event.ReelID),
		Value: b,
		Time:  event.OccurredAt,
		Headers: []kgo.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		p.logger.Warnf("kafka publish %s reel=%s failed: %v", event.Type, event.ReelID, err)
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct{}

var _ contract.IEventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, entity.EngagementEvent) error { return nil }
func (NoopPublisher) Close() error                                          { return nil }
