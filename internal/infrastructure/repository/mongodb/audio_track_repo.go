package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// AudioTrackRepository is the music library backed by the audio_tracks collection.
type AudioTrackRepository struct {
	collection *mongo.Collection
}

func NewAudioTrackRepository(db *mongo.Database) *AudioTrackRepository {
	return &AudioTrackRepository{collection: db.Collection("audio_tracks")}
}

var _ contract.IAudioTrackRepository = (*AudioTrackRepository)(nil)

func (r *AudioTrackRepository) CreateTrack(ctx context.Context, track *entity.AudioTrack) error {
	if track.CreatedAt.IsZero() {
		track.CreatedAt = time.Now()
	}
	if _, err := r.collection.InsertOne(ctx, track); err != nil {
		return fmt.Errorf("failed to create audio track: %w", err)
	}
	return nil
}

func (r *AudioTrackRepository) GetTrackByID(ctx context.Context, trackID string) (*entity.AudioTrack, error) {
	var track entity.AudioTrack
	err := r.collection.FindOne(ctx, bson.M{"_id": trackID}).Decode(&track)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve audio track %s: %w", trackID, err)
	}
	return &track, nil
}

// IncrementUsage bumps the lifetime usage count of a track.
func (r *AudioTrackRepository) IncrementUsage(ctx context.Context, trackID string, delta int64) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": trackID}, bson.M{"$inc": bson.M{"usage_count": delta}})
	if err != nil {
		return fmt.Errorf("failed to increment audio track usage: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}
