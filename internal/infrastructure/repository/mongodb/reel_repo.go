package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// ReelRepository represents the MongoDB implementation of the IReelRepository interface.
type ReelRepository struct {
	collection *mongo.Collection
}

// NewReelRepository creates and returns a new ReelRepository instance.
func NewReelRepository(db *mongo.Database) *ReelRepository {
	return &ReelRepository{
		collection: db.Collection("reels"),
	}
}

var _ contract.IReelRepository = (*ReelRepository)(nil)

// CreateReel inserts a new reel document.
func (r *ReelRepository) CreateReel(ctx context.Context, reel *entity.Reel) error {
	now := time.Now()
	if reel.CreatedAt.IsZero() {
		reel.CreatedAt = now
	}
	reel.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, reel); err != nil {
		return fmt.Errorf("failed to create reel: %w", err)
	}
	return nil
}

// GetReelByID retrieves a reel by its ID.
func (r *ReelRepository) GetReelByID(ctx context.Context, reelID string) (*entity.Reel, error) {
	var reel entity.Reel
	err := r.collection.FindOne(ctx, bson.M{"_id": reelID}).Decode(&reel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reel %s: %w", reelID, err)
	}
	return &reel, nil
}

// DeleteReel removes the reel document.
func (r *ReelRepository) DeleteReel(ctx context.Context, reelID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": reelID})
	if err != nil {
		return fmt.Errorf("failed to delete reel %s: %w", reelID, err)
	}
	if res.DeletedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

// GetReelsByOwner lists an owner's reels, newest first, all visibilities.
func (r *ReelRepository) GetReelsByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]*entity.Reel, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, page, pageSize)
}

// ListPublicReels lists public reels, newest first.
func (r *ReelRepository) ListPublicReels(ctx context.Context, page, pageSize int) ([]*entity.Reel, error) {
	return r.find(ctx, bson.M{"visibility": entity.VisibilityPublic}, page, pageSize)
}

func (r *ReelRepository) find(ctx context.Context, filter bson.M, page, pageSize int) ([]*entity.Reel, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reels: %w", err)
	}
	defer cursor.Close(ctx)

	var reels []*entity.Reel
	if err := cursor.All(ctx, &reels); err != nil {
		return nil, fmt.Errorf("failed to decode reels: %w", err)
	}
	return reels, nil
}

// IncrementViewCount atomically increments view_count and returns the new value.
func (r *ReelRepository) IncrementViewCount(ctx context.Context, reelID string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"view_count": 1})

	var out struct {
		ViewCount int64 `bson:"view_count"`
	}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": reelID},
		bson.M{"$inc": bson.M{"view_count": 1}, "$set": bson.M{"updated_at": time.Now()}},
		opts,
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, contract.ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment view count: %w", err)
	}
	return out.ViewCount, nil
}
