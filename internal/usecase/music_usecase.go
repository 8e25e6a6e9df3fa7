package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// MusicUsecase manages the audio track library. The library is a durable
// repository injected at startup.
type MusicUsecase struct {
	tracks    contract.IAudioTrackRepository
	ranker    *TrendingRanker
	uuidgen   contract.IUUIDGenerator
	validator usecasecontract.IValidator
	logger    usecasecontract.IAppLogger
}

func NewMusicUsecase(tracks contract.IAudioTrackRepository, ranker *TrendingRanker, uuidgen contract.IUUIDGenerator, validator usecasecontract.IValidator, logger usecasecontract.IAppLogger) *MusicUsecase {
	return &MusicUsecase{
		tracks:    tracks,
		ranker:    ranker,
		uuidgen:   uuidgen,
		validator: validator,
		logger:    logger,
	}
}

var _ usecasecontract.IMusicUseCase = (*MusicUsecase)(nil)

func (uc *MusicUsecase) AddTrack(ctx context.Context, ownerID, title, artist, audioKey string) (*entity.AudioTrack, error) {
	if err := uc.validator.ValidateID(ownerID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	title, artist, audioKey = strings.TrimSpace(title), strings.TrimSpace(artist), strings.TrimSpace(audioKey)
	if title == "" || audioKey == "" {
		return nil, fmt.Errorf("%w: title and audio key are required", ErrInvalidInput)
	}

	track := &entity.AudioTrack{
		ID:        uc.uuidgen.NewUUID(),
		Title:     title,
		Artist:    artist,
		AudioKey:  audioKey,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
	if err := uc.tracks.CreateTrack(ctx, track); err != nil {
		uc.logger.Errorf("failed to create audio track: %v", err)
		return nil, fmt.Errorf("failed to create audio track: %w", err)
	}
	return track, nil
}

func (uc *MusicUsecase) GetTrack(ctx context.Context, trackID string) (*entity.AudioTrack, error) {
	if err := uc.validator.ValidateID(trackID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	track, err := uc.tracks.GetTrackByID(ctx, trackID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to get audio track: %w", err)
	}
	return track, nil
}

// GetTrendingTracks returns up to n tracks by usage. Ranked IDs missing from
// the library are pruned.
func (uc *MusicUsecase) GetTrendingTracks(ctx context.Context, n int) ([]*entity.AudioTrack, error) {
	if n < 1 || n > maxTrendingLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxTrendingLimit)
	}
	ids := uc.ranker.GetTopTracks(ctx, n*trendingOverfetch)
	out := make([]*entity.AudioTrack, 0, n)
	var stale []string
	for _, id := range ids {
		if len(out) == n {
			break
		}
		track, err := uc.tracks.GetTrackByID(ctx, id)
		if err != nil {
			if errors.Is(err, contract.ErrNotFound) {
				stale = append(stale, id)
				continue
			}
			return nil, fmt.Errorf("failed to get audio track %s: %w", id, err)
		}
		out = append(out, track)
	}
	if len(stale) > 0 {
		uc.ranker.RemoveTracks(context.WithoutCancel(ctx), stale...)
	}
	return out, nil
}
