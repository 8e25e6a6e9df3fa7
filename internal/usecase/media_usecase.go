package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// allowedMedia maps an upload kind to its accepted content types and file extensions.
var allowedMedia = map[string]map[string]string{
	"video": {
		"video/mp4":       "mp4",
		"video/quicktime": "mov",
		"video/webm":      "webm",
	},
	"thumbnail": {
		"image/jpeg": "jpg",
		"image/png":  "png",
		"image/webp": "webp",
	},
	"audio": {
		"audio/mpeg": "mp3",
		"audio/aac":  "aac",
		"audio/wav":  "wav",
	},
}

// MediaUsecase hands out presigned URLs so clients upload media straight to
// object storage.
type MediaUsecase struct {
	storage   contract.IObjectStorage
	uuidgen   contract.IUUIDGenerator
	validator usecasecontract.IValidator
	config    usecasecontract.IConfigProvider
	logger    usecasecontract.IAppLogger
}

func NewMediaUsecase(storage contract.IObjectStorage, uuidgen contract.IUUIDGenerator, validator usecasecontract.IValidator, config usecasecontract.IConfigProvider, logger usecasecontract.IAppLogger) *MediaUsecase {
	return &MediaUsecase{storage: storage, uuidgen: uuidgen, validator: validator, config: config, logger: logger}
}

var _ usecasecontract.IMediaUseCase = (*MediaUsecase)(nil)

func mediaPrefix(kind string) string {
	if kind == "audio" {
		return "audio"
	}
	return "reels"
}

// ownsReelMedia reports whether key lies under the prefix RequestUpload hands
// out to ownerID for reel media.
func ownsReelMedia(ownerID, key string) bool {
	return strings.HasPrefix(key, mediaPrefix("video")+"/"+ownerID+"/") && !strings.Contains(key, "..")
}

// RequestUpload returns a presigned PUT for a new object under the user's prefix.
func (uc *MediaUsecase) RequestUpload(ctx context.Context, userID, kind, contentType string) (*usecasecontract.UploadTicket, error) {
	if err := uc.validator.ValidateID(userID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	types, ok := allowedMedia[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported media kind %q", ErrInvalidInput, kind)
	}
	ext, ok := types[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: content type %q not allowed for %s", ErrInvalidInput, contentType, kind)
	}

	bucket := uc.config.GetMediaBucket()
	key := fmt.Sprintf("%s/%s/%s.%s", mediaPrefix(kind), userID, uc.uuidgen.NewUUID(), ext)
	uploadURL, err := uc.storage.GenerateUploadURL(ctx, bucket, key, uc.config.GetUploadURLTTL())
	if err != nil {
		uc.logger.Errorf("failed to presign upload: %v", err)
		return nil, fmt.Errorf("failed to create upload url: %w", err)
	}
	return &usecasecontract.UploadTicket{
		Key:       key,
		UploadURL: uploadURL,
		PublicURL: uc.storage.PublicURL(bucket, key),
	}, nil
}

// DownloadURL returns a presigned GET for an existing object key.
func (uc *MediaUsecase) DownloadURL(ctx context.Context, key string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: bad object key", ErrInvalidInput)
	}
	u, err := uc.storage.GenerateDownloadURL(ctx, uc.config.GetMediaBucket(), key, uc.config.GetUploadURLTTL())
	if err != nil {
		return "", fmt.Errorf("failed to create download url: %w", err)
	}
	return u, nil
}
