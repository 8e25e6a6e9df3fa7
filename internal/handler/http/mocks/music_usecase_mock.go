package mocks

import (
	"context"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// MockMusicUsecase is a mock implementation of IMusicUseCase
type MockMusicUsecase struct {
	Err       error
	MockTrack entity.AudioTrack
	LastLimit int
}

var _ usecasecontract.IMusicUseCase = (*MockMusicUsecase)(nil)

func NewMockMusicUsecase() *MockMusicUsecase {
	return &MockMusicUsecase{
		MockTrack: entity.AudioTrack{ID: "mock-track-id", Title: "Night Drive", Artist: "Kai", UsageCount: 3},
	}
}

func (m *MockMusicUsecase) AddTrack(ctx context.Context, ownerID, title, artist, audioKey string) (*entity.AudioTrack, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t := m.MockTrack
	t.OwnerID, t.Title, t.Artist, t.AudioKey = ownerID, title, artist, audioKey
	return &t, nil
}

func (m *MockMusicUsecase) GetTrack(ctx context.Context, trackID string) (*entity.AudioTrack, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t := m.MockTrack
	return &t, nil
}

func (m *MockMusicUsecase) GetTrendingTracks(ctx context.Context, n int) ([]*entity.AudioTrack, error) {
	m.LastLimit = n
	if m.Err != nil {
		return nil, m.Err
	}
	t := m.MockTrack
	return []*entity.AudioTrack{&t}, nil
}
