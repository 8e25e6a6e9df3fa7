package dto

import (
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// CreateReelRequest is the body of POST /reels. Media keys come from a prior
// upload-url call.
type CreateReelRequest struct {
	Caption      string  `json:"caption" binding:"max=2200"`
	VideoKey     string  `json:"video_key" binding:"required,max=512"`
	ThumbnailKey string  `json:"thumbnail_key" binding:"omitempty,max=512"`
	AudioTrackID *string `json:"audio_track_id" binding:"omitempty,uuid"`
	Visibility   string  `json:"visibility" binding:"required,visibility"`
}

// ToInput converts the request for the engagement usecase.
func (r CreateReelRequest) ToInput(ownerID string) usecasecontract.CreateReelInput {
	return usecasecontract.CreateReelInput{
		OwnerID:      ownerID,
		Caption:      r.Caption,
		VideoKey:     r.VideoKey,
		ThumbnailKey: r.ThumbnailKey,
		AudioTrackID: r.AudioTrackID,
		Visibility:   entity.Visibility(r.Visibility),
	}
}

type FeedResponse struct {
	FeedType entity.FeedType         `json:"feed_type"`
	Page     int                     `json:"page"`
	Items    []entity.ContentSummary `json:"items"`
}

type TrendingReelsResponse struct {
	ReelIDs []string `json:"reel_ids"`
}

type TrendingTracksResponse struct {
	Tracks []*entity.AudioTrack `json:"tracks"`
}
