package entity

import "time"

// AudioTrack is a sound that reels can be set to.
type AudioTrack struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Artist     string    `bson:"artist" json:"artist"`
	AudioKey   string    `bson:"audio_key" json:"audio_key"`
	OwnerID    string    `bson:"owner_id" json:"owner_id"`
	UsageCount int64     `bson:"usage_count" json:"usage_count"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
