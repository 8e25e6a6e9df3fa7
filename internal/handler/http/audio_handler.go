package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/Reelrank/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

type AudioHandler struct {
	music usecasecontract.IMusicUseCase
}

func NewAudioHandler(music usecasecontract.IMusicUseCase) *AudioHandler {
	return &AudioHandler{music: music}
}

func (h *AudioHandler) AddTrack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AddTrackRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	track, err := h.music.AddTrack(c.Request.Context(), userID, req.Title, req.Artist, req.AudioKey)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, track)
}

func (h *AudioHandler) GetTrack(c *gin.Context) {
	track, err := h.music.GetTrack(c.Request.Context(), c.Param("trackID"))
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, track)
}

func (h *AudioHandler) GetTrendingTracks(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	tracks, err := h.music.GetTrendingTracks(c.Request.Context(), limit)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.TrendingTracksResponse{Tracks: tracks})
}
