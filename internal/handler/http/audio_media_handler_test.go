package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikiasgoitom/Reelrank/internal/handler/http/dto"
	"github.com/mikiasgoitom/Reelrank/internal/usecase"
)

func TestAddTrack(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/audio", dto.AddTrackRequest{Title: "Night Drive", AudioKey: "audio/u/a.mp3"}, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), testUserID)

	w = s.do(http.MethodPost, "/api/v1/audio", dto.AddTrackRequest{Title: "no key"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTrack_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.music.Err = usecase.ErrTrackNotFound

	w := s.do(http.MethodGet, "/api/v1/audio/t1", nil, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "audio track not found")
}

func TestTrendingAudio(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/trending/audio?limit=3", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mock-track-id"`)
	assert.Equal(t, 3, s.music.LastLimit)
}

func TestRequestUpload(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/media/upload-url", dto.UploadURLRequest{Kind: "video", ContentType: "video/mp4"}, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"upload_url"`)

	w = s.do(http.MethodPost, "/api/v1/media/upload-url", dto.UploadURLRequest{Kind: "gif", ContentType: "image/gif"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'mediakind' tag")
}

func TestDownloadURL(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/media/download-url?key=reels/u/a.mp4", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reels/u/a.mp4", s.media.LastKey)

	s.media.Err = fmt.Errorf("%w: bad object key", usecase.ErrInvalidInput)
	w = s.do(http.MethodGet, "/api/v1/media/download-url?key=../x", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
