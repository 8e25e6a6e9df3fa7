package entity

import "time"

// Outcome describes what an engagement operation did.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeNoop     Outcome = "noop"
	OutcomeNotFound Outcome = "not_found"
)

// Result is returned by like/unlike/save/unsave/delete. Noop and NotFound are
// not errors.
type Result struct {
	Outcome   Outcome `json:"outcome"`
	LikeCount int64   `json:"like_count,omitempty"`
}

// ViewRecord is what the counter service reports for one recorded view.
type ViewRecord struct {
	Total          int64
	IsFirstForUser bool
}

// ViewCounts holds total (lifetime) and unique (24h window) views.
type ViewCounts struct {
	Total  int64 `json:"total"`
	Unique int64 `json:"unique"`
}

// TrendingSignals are the inputs of the trending score.
type TrendingSignals struct {
	Views          int64
	Likes          int64
	Comments       int64
	Shares         int64
	CompletionRate float64
	AgeHours       float64
}

// FeedType names a cached feed.
type FeedType string

const (
	FeedTypeLatest   FeedType = "latest"
	FeedTypeTrending FeedType = "trending"
	FeedTypeMine     FeedType = "mine"
)

// IsValid reports whether t is a known feed type.
func (t FeedType) IsValid() bool {
	switch t {
	case FeedTypeLatest, FeedTypeTrending, FeedTypeMine:
		return true
	}
	return false
}

// ContentSummary is a reel enriched with engagement data, as served in feeds.
type ContentSummary struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Caption       string     `json:"caption"`
	VideoURL      string     `json:"video_url"`
	ThumbnailURL  string     `json:"thumbnail_url,omitempty"`
	AudioTrackID  *string    `json:"audio_track_id,omitempty"`
	Visibility    Visibility `json:"visibility"`
	LikeCount     int64      `json:"like_count"`
	ViewCount     int64      `json:"view_count"`
	UniqueViews   int64      `json:"unique_views"`
	CommentCount  int64      `json:"comment_count"`
	ShareCount    int64      `json:"share_count"`
	TrendingScore float64    `json:"trending_score"`
	LikedByViewer bool       `json:"liked_by_viewer"`
	CreatedAt     time.Time  `json:"created_at"`
}

// EngagementEvent is published after a successful durable write.
type EngagementEvent struct {
	Type       string    `json:"type"`
	ReelID     string    `json:"reel_id"`
	ActorID    string    `json:"actor_id"`
	OwnerID    string    `json:"owner_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventReelCreated = "reel.created"
	EventReelLiked   = "reel.liked"
	EventReelUnliked = "reel.unliked"
	EventReelDeleted = "reel.deleted"
)
