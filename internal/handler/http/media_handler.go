package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/Reelrank/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

type MediaHandler struct {
	media usecasecontract.IMediaUseCase
}

func NewMediaHandler(media usecasecontract.IMediaUseCase) *MediaHandler {
	return &MediaHandler{media: media}
}

// RequestUpload returns a presigned PUT the client uploads to directly.
func (h *MediaHandler) RequestUpload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UploadURLRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	ticket, err := h.media.RequestUpload(c.Request.Context(), userID, req.Kind, req.ContentType)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, ticket)
}

func (h *MediaHandler) DownloadURL(c *gin.Context) {
	url, err := h.media.DownloadURL(c.Request.Context(), c.Query("key"))
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.DownloadURLResponse{URL: url})
}
