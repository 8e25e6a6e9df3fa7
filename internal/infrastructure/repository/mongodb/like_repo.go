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

// LikeRepository represents the MongoDB implementation of the ILikeRepository interface.
// The collection carries a unique (user_id, reel_id) index, see database.EnsureIndexes.
type LikeRepository struct {
	collection *mongo.Collection
}

// NewLikeRepository creates and returns a new LikeRepository instance.
func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{
		collection: db.Collection("reel_likes"),
	}
}

var _ contract.ILikeRepository = (*LikeRepository)(nil)

// GetLike returns the like of userID on reelID, or contract.ErrNotFound.
func (r *LikeRepository) GetLike(ctx context.Context, userID, reelID string) (*entity.Like, error) {
	var like entity.Like
	filter := bson.M{"user_id": userID, "reel_id": reelID}

	err := r.collection.FindOne(ctx, filter).Decode(&like)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve like: %w", err)
	}
	return &like, nil
}

// InsertLike inserts the relationship. A concurrent duplicate loses on the
// unique index and gets contract.ErrDuplicate.
func (r *LikeRepository) InsertLike(ctx context.Context, like *entity.Like) error {
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	if _, err := r.collection.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return contract.ErrDuplicate
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// DeleteLike removes the relationship; contract.ErrNotFound if there was none.
func (r *LikeRepository) DeleteLike(ctx context.Context, userID, reelID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "reel_id": reelID})
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if res.DeletedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *LikeRepository) DeleteLikesByReel(ctx context.Context, reelID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"reel_id": reelID}); err != nil {
		return fmt.Errorf("failed to delete likes of reel %s: %w", reelID, err)
	}
	return nil
}

// CountLikes counts the like rows of a reel.
func (r *LikeRepository) CountLikes(ctx context.Context, reelID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"reel_id": reelID})
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
