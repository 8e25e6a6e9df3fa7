package contract

import "context"

// ICommentRepository exposes the comment data the ranking layer reads.
// Comment CRUD lives in another service.
type ICommentRepository interface {
	GetCommentCount(ctx context.Context, reelID string) (int64, error)
}
