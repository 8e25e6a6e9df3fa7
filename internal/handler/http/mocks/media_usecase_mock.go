package mocks

import (
	"context"

	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// MockMediaUsecase is a mock implementation of IMediaUseCase
type MockMediaUsecase struct {
	Err     error
	LastKey string
}

var _ usecasecontract.IMediaUseCase = (*MockMediaUsecase)(nil)

func NewMockMediaUsecase() *MockMediaUsecase {
	return &MockMediaUsecase{}
}

func (m *MockMediaUsecase) RequestUpload(ctx context.Context, userID, kind, contentType string) (*usecasecontract.UploadTicket, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	key := "reels/" + userID + "/mock.mp4"
	return &usecasecontract.UploadTicket{
		Key:       key,
		UploadURL: "https://storage.test/reels/" + key + "?signed",
		PublicURL: "https://cdn.test/reels/" + key,
	}, nil
}

func (m *MockMediaUsecase) DownloadURL(ctx context.Context, key string) (string, error) {
	m.LastKey = key
	if m.Err != nil {
		return "", m.Err
	}
	return "https://storage.test/reels/" + key + "?signed", nil
}
