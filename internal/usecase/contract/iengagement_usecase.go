package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// CreateReelInput carries what a client sends to publish a reel.
type CreateReelInput struct {
	OwnerID      string            `validate:"required"`
	Caption      string            `validate:"max=2200"`
	VideoKey     string            `validate:"required,max=512"`
	ThumbnailKey string            `validate:"omitempty,max=512"`
	AudioTrackID *string           `validate:"omitempty,uuid"`
	Visibility   entity.Visibility `validate:"required,oneof=public followers private"`
}

// IEngagementUseCase is the surface the API layer calls.
type IEngagementUseCase interface {
	CreateReel(ctx context.Context, in CreateReelInput) (*entity.ContentSummary, error)
	Like(ctx context.Context, userID, reelID string) (entity.Result, error)
	Unlike(ctx context.Context, userID, reelID string) (entity.Result, error)
	RecordView(ctx context.Context, userID, reelID string) (entity.ViewCounts, error)
	Save(ctx context.Context, userID, reelID string) (entity.Result, error)
	Unsave(ctx context.Context, userID, reelID string) (entity.Result, error)
	DeleteReel(ctx context.Context, ownerID, reelID string) (entity.Result, error)
	GetFeed(ctx context.Context, userID string, feedType entity.FeedType, page int) ([]entity.ContentSummary, error)
	GetTrending(ctx context.Context, n int) ([]string, error)
}

// IMusicUseCase manages the audio track library and its trending list.
type IMusicUseCase interface {
	AddTrack(ctx context.Context, ownerID, title, artist, audioKey string) (*entity.AudioTrack, error)
	GetTrack(ctx context.Context, trackID string) (*entity.AudioTrack, error)
	GetTrendingTracks(ctx context.Context, n int) ([]*entity.AudioTrack, error)
}

// UploadTicket is a presigned upload target.
type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// IMediaUseCase issues presigned URLs against the object store.
type IMediaUseCase interface {
	RequestUpload(ctx context.Context, userID, kind, contentType string) (*UploadTicket, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}
