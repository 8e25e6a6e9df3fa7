package contract

import (
	"context"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// IEventPublisher hands engagement events to the notification pipeline.
type IEventPublisher interface {
	Publish(ctx context.Context, event entity.EngagementEvent) error
	Close() error
}
