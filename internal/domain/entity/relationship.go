package entity

import "time"

// Like is the durable (user, reel) like relationship. The pair is unique.
type Like struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	ReelID    string    `bson:"reel_id" json:"reel_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SavedReel is a bookmark of a reel by a user.
type SavedReel struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	ReelID    string    `bson:"reel_id" json:"reel_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
