package mocks

import (
	"context"
	"errors"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// MockEngagementUsecase is a mock implementation of IEngagementUseCase
type MockEngagementUsecase struct {
	// Control mock behavior
	ShouldFailCreateReel bool
	ShouldFailLike       bool
	ShouldFailView       bool
	ShouldFailFeed       bool
	ShouldFailTrending   bool
	// Err, when set, is returned by every method instead of the generic failure.
	Err error

	// Return values
	MockOutcome  entity.Outcome
	MockSummary  entity.ContentSummary
	MockCounts   entity.ViewCounts
	MockTrending []string

	// Recorded arguments
	LastUserID   string
	LastReelID   string
	LastInput    usecasecontract.CreateReelInput
	LastFeedType entity.FeedType
	LastPage     int
	LastLimit    int
}

var _ usecasecontract.IEngagementUseCase = (*MockEngagementUsecase)(nil)

func NewMockEngagementUsecase() *MockEngagementUsecase {
	return &MockEngagementUsecase{
		MockOutcome: entity.OutcomeApplied,
		MockSummary: entity.ContentSummary{
			ID:         "mock-reel-id",
			OwnerID:    "mock-user-id",
			Caption:    "mock caption",
			Visibility: entity.VisibilityPublic,
		},
		MockCounts:   entity.ViewCounts{Total: 6, Unique: 2},
		MockTrending: []string{"r2", "r1"},
	}
}

func (m *MockEngagementUsecase) fail(flag bool, msg string) error {
	if m.Err != nil {
		return m.Err
	}
	if flag {
		return errors.New(msg)
	}
	return nil
}

func (m *MockEngagementUsecase) relationship(userID, reelID string, flag bool, msg string) (entity.Result, error) {
	m.LastUserID, m.LastReelID = userID, reelID
	if err := m.fail(flag, msg); err != nil {
		return entity.Result{}, err
	}
	return entity.Result{Outcome: m.MockOutcome, LikeCount: 1}, nil
}

func (m *MockEngagementUsecase) CreateReel(ctx context.Context, in usecasecontract.CreateReelInput) (*entity.ContentSummary, error) {
	m.LastInput = in
	if err := m.fail(m.ShouldFailCreateReel, "reel creation failed"); err != nil {
		return nil, err
	}
	s := m.MockSummary
	s.OwnerID = in.OwnerID
	return &s, nil
}

func (m *MockEngagementUsecase) Like(ctx context.Context, userID, reelID string) (entity.Result, error) {
	return m.relationship(userID, reelID, m.ShouldFailLike, "like failed")
}

func (m *MockEngagementUsecase) Unlike(ctx context.Context, userID, reelID string) (entity.Result, error) {
	return m.relationship(userID, reelID, m.ShouldFailLike, "unlike failed")
}

func (m *MockEngagementUsecase) RecordView(ctx context.Context, userID, reelID string) (entity.ViewCounts, error) {
	m.LastUserID, m.LastReelID = userID, reelID
	if err := m.fail(m.ShouldFailView, "view failed"); err != nil {
		return entity.ViewCounts{}, err
	}
	return m.MockCounts, nil
}

func (m *MockEngagementUsecase) Save(ctx context.Context, userID, reelID string) (entity.Result, error) {
	return m.relationship(userID, reelID, false, "")
}

func (m *MockEngagementUsecase) Unsave(ctx context.Context, userID, reelID string) (entity.Result, error) {
	return m.relationship(userID, reelID, false, "")
}

func (m *MockEngagementUsecase) DeleteReel(ctx context.Context, ownerID, reelID string) (entity.Result, error) {
	return m.relationship(ownerID, reelID, false, "")
}

func (m *MockEngagementUsecase) GetFeed(ctx context.Context, userID string, feedType entity.FeedType, page int) ([]entity.ContentSummary, error) {
	m.LastUserID, m.LastFeedType, m.LastPage = userID, feedType, page
	if err := m.fail(m.ShouldFailFeed, "feed failed"); err != nil {
		return nil, err
	}
	return []entity.ContentSummary{m.MockSummary}, nil
}

func (m *MockEngagementUsecase) GetTrending(ctx context.Context, n int) ([]string, error) {
	m.LastLimit = n
	if err := m.fail(m.ShouldFailTrending, "trending failed"); err != nil {
		return nil, err
	}
	return m.MockTrending, nil
}
