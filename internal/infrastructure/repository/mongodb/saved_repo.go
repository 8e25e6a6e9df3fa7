package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// SavedRepository stores reel bookmarks.
type SavedRepository struct {
	collection *mongo.Collection
}

func NewSavedRepository(db *mongo.Database) *SavedRepository {
	return &SavedRepository{collection: db.Collection("saved_reels")}
}

var _ contract.ISavedRepository = (*SavedRepository)(nil)

func (r *SavedRepository) GetSaved(ctx context.Context, userID, reelID string) (*entity.SavedReel, error) {
	var saved entity.SavedReel
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "reel_id": reelID}).Decode(&saved)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve saved reel: %w", err)
	}
	return &saved, nil
}

func (r *SavedRepository) InsertSaved(ctx context.Context, saved *entity.SavedReel) error {
	if saved.ID == "" {
		saved.ID = uuid.New().String()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}
	if _, err := r.collection.InsertOne(ctx, saved); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return contract.ErrDuplicate
		}
		return fmt.Errorf("failed to insert saved reel: %w", err)
	}
	return nil
}

func (r *SavedRepository) DeleteSaved(ctx context.Context, userID, reelID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "reel_id": reelID})
	if err != nil {
		return fmt.Errorf("failed to delete saved reel: %w", err)
	}
	if res.DeletedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *SavedRepository) DeleteSavesByReel(ctx context.Context, reelID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"reel_id": reelID}); err != nil {
		return fmt.Errorf("failed to delete saves of reel %s: %w", reelID, err)
	}
	return nil
}
