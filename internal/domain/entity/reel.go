package entity

import "time"

// Visibility controls who can see a reel.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityFollowers Visibility = "followers"
	VisibilityPrivate   Visibility = "private"
)

// IsValid reports whether v is one of the known visibility values.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate:
		return true
	}
	return false
}

// Reel is a short-form video post. The durable store owns it; the caching
// layer only references it by ID.
type Reel struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	OwnerID        string     `bson:"owner_id" json:"owner_id"`
	Caption        string     `bson:"caption" json:"caption"`
	VideoKey       string     `bson:"video_key" json:"video_key"`
	ThumbnailKey   string     `bson:"thumbnail_key,omitempty" json:"thumbnail_key,omitempty"`
	VideoURL       string     `bson:"video_url" json:"video_url"`
	ThumbnailURL   string     `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	AudioTrackID   *string    `bson:"audio_track_id,omitempty" json:"audio_track_id,omitempty"`
	Visibility     Visibility `bson:"visibility" json:"visibility"`
	ViewCount      int64      `bson:"view_count" json:"view_count"`
	ShareCount     int64      `bson:"share_count" json:"share_count"`
	CompletionRate float64    `bson:"completion_rate" json:"completion_rate"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

// IsVisibleTo reports whether viewerID may see the reel.
func (r *Reel) IsVisibleTo(viewerID string) bool {
	if r.OwnerID == viewerID {
		return true
	}
	return r.Visibility == VisibilityPublic
}

// AgeHours is the reel age at now, never negative.
func (r *Reel) AgeHours(now time.Time) float64 {
	age := now.Sub(r.CreatedAt).Hours()
	if age < 0 {
		return 0
	}
	return age
}
