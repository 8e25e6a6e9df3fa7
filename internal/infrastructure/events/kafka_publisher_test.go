package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	kgo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/logger"
)

type fakeWriter struct {
	msgs     []kgo.Message
	failWith error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kgo.Message) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := &KafkaPublisher{w: fw, logger: logger.NewZapLogger(zap.NewNop())}

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	err := p.Publish(context.Background(), entity.EngagementEvent{
		Type: entity.EventReelLiked, ReelID: "r1", ActorID: "u1", OwnerID: "u2", OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, fw.msgs, 1)

	msg := fw.msgs[0]
	assert.Equal(t, "r1", string(msg.Key))
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, entity.EventReelLiked, string(msg.Headers[0].Value))

	var got entity.EngagementEvent
	require.NoError(t, sonic.Unmarshal(msg.Value, &got))
	assert.Equal(t, "u1", got.ActorID)
	assert.True(t, at.Equal(got.OccurredAt))

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	fw := &fakeWriter{failWith: errors.New("broker down")}
	p := &KafkaPublisher{w: fw, logger: logger.NewZapLogger(zap.NewNop())}

	err := p.Publish(context.Background(), entity.EngagementEvent{Type: entity.EventReelCreated, ReelID: "r1"})
	assert.Error(t, err)
}
