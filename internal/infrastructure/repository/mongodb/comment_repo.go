package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
)

// CommentRepository reads the comments collection owned by the comment
// service. Only counts are needed for ranking.
type CommentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{collection: db.Collection("comments")}
}

var _ contract.ICommentRepository = (*CommentRepository)(nil)

// GetCommentCount counts visible comments on a reel.
func (r *CommentRepository) GetCommentCount(ctx context.Context, reelID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"reel_id":    reelID,
		"is_deleted": bson.M{"$ne": true},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
