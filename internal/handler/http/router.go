package http

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/handler/http/dto"
	"github.com/mikiasgoitom/Reelrank/internal/handler/http/middleware"
	"github.com/mikiasgoitom/Reelrank/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

type Router struct {
	reelHandler  ReelHandlerInterface
	audioHandler *AudioHandler
	mediaHandler *MediaHandler
	jwtService   usecase.JWTService
	cache        contract.ICacheClient
	ratePerSec   float64
}

func NewRouter(engagementUC usecasecontract.IEngagementUseCase, musicUC usecasecontract.IMusicUseCase, mediaUC usecasecontract.IMediaUseCase, jwtService usecase.JWTService, cache contract.ICacheClient, ratePerSec float64) *Router {
	return &Router{
		reelHandler:  NewReelHandler(engagementUC),
		audioHandler: NewAudioHandler(musicUC),
		mediaHandler: NewMediaHandler(mediaUC),
		jwtService:   jwtService,
		cache:        cache,
		ratePerSec:   ratePerSec,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(r.ratePerSec, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", r.health)

	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	trending := v1.Group("/trending")
	{
		trending.GET("/reels", r.reelHandler.GetTrending)
		trending.GET("/audio", r.audioHandler.GetTrendingTracks)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleWare(r.jwtService))
	{
		// Reel routes
		protected.POST("/reels", r.reelHandler.CreateReel)
		protected.DELETE("/reels/:reelID", r.reelHandler.DeleteReel)

		// Engagement routes
		protected.POST("/reels/:reelID/like", r.reelHandler.Like)
		protected.DELETE("/reels/:reelID/like", r.reelHandler.Unlike)
		protected.POST("/reels/:reelID/view", r.reelHandler.RecordView)
		protected.POST("/reels/:reelID/save", r.reelHandler.Save)
		protected.DELETE("/reels/:reelID/save", r.reelHandler.Unsave)

		protected.GET("/feed/:feedType", r.reelHandler.GetFeed)

		// Audio library
		protected.POST("/audio", r.audioHandler.AddTrack)
		protected.GET("/audio/:trackID", r.audioHandler.GetTrack)

		// Media uploads
		protected.POST("/media/upload-url", r.mediaHandler.RequestUpload)
		protected.GET("/media/download-url", r.mediaHandler.DownloadURL)
	}
}

// health never fails on the cache: the service keeps serving from the
// durable store while the cache is down.
func (r *Router) health(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Cache: "ok"}
	if err := r.cache.Ping(c.Request.Context()); err != nil {
		resp.Cache = "degraded"
	}
	SuccessHandler(c, http.StatusOK, resp)
}
