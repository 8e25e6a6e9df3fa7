package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
)

// Generator issues time-ordered (v7) UUIDs so new reels land at the tail of
// the _id index.
type Generator struct{}

// NewGenerator creates a new UUID generator.
func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID returns a v7 UUID, falling back to a random v4 if the clock source fails.
func (g *Generator) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
