package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	"github.com/mikiasgoitom/Reelrank/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

const defaultTrendingLimit = 20

// ReelHandlerInterface lists the reel endpoints so routers and tests can swap implementations.
type ReelHandlerInterface interface {
	CreateReel(c *gin.Context)
	DeleteReel(c *gin.Context)
	Like(c *gin.Context)
	Unlike(c *gin.Context)
	RecordView(c *gin.Context)
	Save(c *gin.Context)
	Unsave(c *gin.Context)
	GetFeed(c *gin.Context)
	GetTrending(c *gin.Context)
}

type ReelHandler struct {
	engagement usecasecontract.IEngagementUseCase
}

func NewReelHandler(engagement usecasecontract.IEngagementUseCase) *ReelHandler {
	return &ReelHandler{engagement: engagement}
}

var _ ReelHandlerInterface = (*ReelHandler)(nil)

func (h *ReelHandler) CreateReel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReelRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	summary, err := h.engagement.CreateReel(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, summary)
}

func (h *ReelHandler) DeleteReel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res, err := h.engagement.DeleteReel(c.Request.Context(), userID, c.Param("reelID"))
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	if res.Outcome == entity.OutcomeNotFound {
		ErrorHandler(c, http.StatusNotFound, "Reel not found")
		return
	}
	MessageHandler(c, http.StatusOK, "Reel deleted successfully")
}

// relationship runs a like/unlike/save/unsave call and writes its Result.
// Noop and not_found outcomes are successful responses.
func (h *ReelHandler) relationship(c *gin.Context, op func(ctx context.Context, userID, reelID string) (entity.Result, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res, err := op(c.Request.Context(), userID, c.Param("reelID"))
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, res)
}

func (h *ReelHandler) Like(c *gin.Context)   { h.relationship(c, h.engagement.Like) }
func (h *ReelHandler) Unlike(c *gin.Context) { h.relationship(c, h.engagement.Unlike) }
func (h *ReelHandler) Save(c *gin.Context)   { h.relationship(c, h.engagement.Save) }
func (h *ReelHandler) Unsave(c *gin.Context) { h.relationship(c, h.engagement.Unsave) }

func (h *ReelHandler) RecordView(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	counts, err := h.engagement.RecordView(c.Request.Context(), userID, c.Param("reelID"))
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, counts)
}

func (h *ReelHandler) GetFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	feedType := entity.FeedType(c.Param("feedType"))
	items, err := h.engagement.GetFeed(c.Request.Context(), userID, feedType, page)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.FeedResponse{FeedType: feedType, Page: page, Items: items})
}

func (h *ReelHandler) GetTrending(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	ids, err := h.engagement.GetTrending(c.Request.Context(), limit)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.TrendingReelsResponse{ReelIDs: ids})
}

func limitParam(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultTrendingLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid limit parameter")
		return 0, false
	}
	return limit, true
}
