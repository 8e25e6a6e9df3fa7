package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

const (
	// trendingOverfetch pads trending reads so filtering stale or hidden
	// reels still leaves n results.
	trendingOverfetch = 3
	maxTrendingLimit  = 100
	// maxFeedPage bounds trending feed reads, which fetch page*size*overfetch ids.
	maxFeedPage   = 100
	enrichWorkers = 8
)

// Repositories groups the durable store collaborators.
type Repositories struct {
	Reels    contract.IReelRepository
	Likes    contract.ILikeRepository
	Saves    contract.ISavedRepository
	Users    contract.IUserRepository
	Comments contract.ICommentRepository
	Tracks   contract.IAudioTrackRepository
}

// EngagementUsecase orchestrates reel engagement. The durable write always
// happens first; counters, trending and feed caches are updated afterwards on
// a context that outlives the request, and their failures never fail the call.
type EngagementUsecase struct {
	repos     Repositories
	storage   contract.IObjectStorage
	events    contract.IEventPublisher
	counter   *CounterService
	ranker    *TrendingRanker
	feeds     *FeedCache
	uuidgen   contract.IUUIDGenerator
	validator usecasecontract.IValidator
	config    usecasecontract.IConfigProvider
	logger    usecasecontract.IAppLogger
	now       func() time.Time
}

// NewEngagementUsecase wires the orchestrator. storage may be nil, in which
// case media URLs are the raw object keys.
func NewEngagementUsecase(
	repos Repositories,
	storage contract.IObjectStorage,
	events contract.IEventPublisher,
	counter *CounterService,
	ranker *TrendingRanker,
	feeds *FeedCache,
	uuidgen contract.IUUIDGenerator,
	validator usecasecontract.IValidator,
	config usecasecontract.IConfigProvider,
	logger usecasecontract.IAppLogger,
) *EngagementUsecase {
	return &EngagementUsecase{
		repos:     repos,
		storage:   storage,
		events:    events,
		counter:   counter,
		ranker:    ranker,
		feeds:     feeds,
		uuidgen:   uuidgen,
		validator: validator,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

var _ usecasecontract.IEngagementUseCase = (*EngagementUsecase)(nil)

func (uc *EngagementUsecase) validateIDs(ids ...string) error {
	for _, id := range ids {
		if err := uc.validator.ValidateID(id); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

func (uc *EngagementUsecase) mediaURL(key string) string {
	if key == "" {
		return ""
	}
	if uc.storage == nil {
		return key
	}
	return uc.storage.PublicURL(uc.config.GetMediaBucket(), key)
}

func (uc *EngagementUsecase) publish(ctx context.Context, eventType string, reel *entity.Reel, actorID string) {
	if uc.events == nil {
		return
	}
	event := entity.EngagementEvent{
		Type:       eventType,
		ReelID:     reel.ID,
		ActorID:    actorID,
		OwnerID:    reel.OwnerID,
		OccurredAt: uc.now().UTC(),
	}
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warnf("event %s for reel %s not published: %v", eventType, reel.ID, err)
	}
}

// visibleReel loads a reel the viewer may interact with. Hidden reels are
// reported as not found.
func (uc *EngagementUsecase) visibleReel(ctx context.Context, reelID, viewerID string) (*entity.Reel, error) {
	reel, err := uc.repos.Reels.GetReelByID(ctx, reelID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrReelNotFound
		}
		uc.logger.Errorf("failed to get reel %s: %v", reelID, err)
		return nil, fmt.Errorf("failed to get reel: %w", err)
	}
	if !reel.IsVisibleTo(viewerID) {
		return nil, ErrReelNotFound
	}
	return reel, nil
}

// refreshTrending recomputes the reel's score from fresh signals and
// overwrites the ranked entry.
func (uc *EngagementUsecase) refreshTrending(ctx context.Context, reel *entity.Reel) float64 {
	likes, err := uc.counter.GetLikeCount(ctx, reel.ID)
	if err != nil {
		uc.logger.Warnf("trending: like count for reel %s unavailable: %v", reel.ID, err)
	}
	comments, err := uc.repos.Comments.GetCommentCount(ctx, reel.ID)
	if err != nil {
		uc.logger.Warnf("trending: comment count for reel %s unavailable: %v", reel.ID, err)
	}
	views := uc.counter.ViewCountsFor(ctx, reel)
	return uc.ranker.UpdateScore(ctx, reel.ID, entity.TrendingSignals{
		Views:          views.Total,
		Likes:          likes,
		Comments:       comments,
		Shares:         reel.ShareCount,
		CompletionRate: reel.CompletionRate,
		AgeHours:       reel.AgeHours(uc.now()),
	})
}

// CreateReel persists a new reel and makes it visible to feeds and trending.
func (uc *EngagementUsecase) CreateReel(ctx context.Context, in usecasecontract.CreateReelInput) (*entity.ContentSummary, error) {
	if err := uc.validator.ValidateStruct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := uc.validateIDs(in.OwnerID); err != nil {
		return nil, err
	}
	if !ownsReelMedia(in.OwnerID, in.VideoKey) {
		return nil, fmt.Errorf("%w: video key is not under the owner's upload prefix", ErrInvalidInput)
	}
	if in.ThumbnailKey != "" && !ownsReelMedia(in.OwnerID, in.ThumbnailKey) {
		return nil, fmt.Errorf("%w: thumbnail key is not under the owner's upload prefix", ErrInvalidInput)
	}

	owner, err := uc.repos.Users.GetUserByID(ctx, in.OwnerID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !owner.IsActive {
		return nil, ErrUnauthorized
	}

	if in.AudioTrackID != nil {
		if _, err := uc.repos.Tracks.GetTrackByID(ctx, *in.AudioTrackID); err != nil {
			if errors.Is(err, contract.ErrNotFound) {
				return nil, ErrTrackNotFound
			}
			return nil, fmt.Errorf("failed to get audio track: %w", err)
		}
	}

	now := uc.now()
	reel := &entity.Reel{
		ID:           uc.uuidgen.NewUUID(),
		OwnerID:      in.OwnerID,
		Caption:      in.Caption,
		VideoKey:     in.VideoKey,
		ThumbnailKey: in.ThumbnailKey,
		VideoURL:     uc.mediaURL(in.VideoKey),
		ThumbnailURL: uc.mediaURL(in.ThumbnailKey),
		AudioTrackID: in.AudioTrackID,
		Visibility:   in.Visibility,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repos.Reels.CreateReel(ctx, reel); err != nil {
		uc.logger.Errorf("failed to create reel: %v", err)
		return nil, fmt.Errorf("failed to create reel: %w", err)
	}

	bg := context.WithoutCancel(ctx)
	uc.feeds.Invalidate(bg, reel.OwnerID)
	uc.ranker.Seed(bg, reel.ID)
	if reel.AudioTrackID != nil {
		trackID := *reel.AudioTrackID
		uc.ranker.IncrementTrackUsage(bg, trackID, 1)
		if err := uc.repos.Tracks.IncrementUsage(bg, trackID, 1); err != nil {
			uc.logger.Warnf("failed to bump usage of audio track %s: %v", trackID, err)
		}
	}
	uc.publish(bg, entity.EventReelCreated, reel, reel.OwnerID)
	metrics.IncEngagement("create", string(entity.OutcomeApplied))

	summary := toSummary(reel)
	summary.TrendingScore = baselineScore
	return &summary, nil
}

// Like records a like once per (user, reel). Repeats are a no-op.
func (uc *EngagementUsecase) Like(ctx context.Context, userID, reelID string) (entity.Result, error) {
	if err := uc.validateIDs(userID, reelID); err != nil {
		return entity.Result{}, err
	}
	reel, err := uc.visibleReel(ctx, reelID, userID)
	if err != nil {
		return entity.Result{}, err
	}

	_, err = uc.repos.Likes.GetLike(ctx, userID, reelID)
	switch {
	case err == nil:
		return uc.likeNoop(ctx, reelID), nil
	case !errors.Is(err, contract.ErrNotFound):
		return entity.Result{}, fmt.Errorf("failed to check like: %w", err)
	}

	like := &entity.Like{ID: uc.uuidgen.NewUUID(), UserID: userID, ReelID: reelID, CreatedAt: uc.now()}
	if err := uc.repos.Likes.InsertLike(ctx, like); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			// Lost a race with a concurrent like from the same user.
			return uc.likeNoop(ctx, reelID), nil
		}
		uc.logger.Errorf("failed to insert like: %v", err)
		return entity.Result{}, fmt.Errorf("failed to like reel: %w", err)
	}

	bg := context.WithoutCancel(ctx)
	count, err := uc.counter.RecordLike(bg, reelID)
	if err != nil {
		uc.logger.Warnf("like counter for reel %s not updated: %v", reelID, err)
	}
	uc.refreshTrending(bg, reel)
	uc.feeds.Invalidate(bg, userID)
	uc.publish(bg, entity.EventReelLiked, reel, userID)
	metrics.IncEngagement("like", string(entity.OutcomeApplied))
	return entity.Result{Outcome: entity.OutcomeApplied, LikeCount: count}, nil
}

func (uc *EngagementUsecase) likeNoop(ctx context.Context, reelID string) entity.Result {
	metrics.IncEngagement("like", string(entity.OutcomeNoop))
	count, err := uc.counter.GetLikeCount(ctx, reelID)
	if err != nil {
		uc.logger.Warnf("like count for reel %s unavailable: %v", reelID, err)
	}
	return entity.Result{Outcome: entity.OutcomeNoop, LikeCount: count}
}

// Unlike removes a like. Without a prior like it reports not found and
// leaves every counter untouched.
func (uc *EngagementUsecase) Unlike(ctx context.Context, userID, reelID string) (entity.Result, error) {
	if err := uc.validateIDs(userID, reelID); err != nil {
		return entity.Result{}, err
	}
	reel, err := uc.visibleReel(ctx, reelID, userID)
	if err != nil {
		return entity.Result{}, err
	}

	if err := uc.repos.Likes.DeleteLike(ctx, userID, reelID); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			metrics.IncEngagement("unlike", string(entity.OutcomeNotFound))
			return entity.Result{Outcome: entity.OutcomeNotFound}, nil
		}
		uc.logger.Errorf("failed to delete like: %v", err)
		return entity.Result{}, fmt.Errorf("failed to unlike reel: %w", err)
	}

	bg := context.WithoutCancel(ctx)
	count, err := uc.counter.RecordUnlike(bg, reelID)
	if err != nil {
		uc.logger.Warnf("like counter for reel %s not updated: %v", reelID, err)
	}
	uc.refreshTrending(bg, reel)
	uc.feeds.Invalidate(bg, userID)
	uc.publish(bg, entity.EventReelUnliked, reel, userID)
	metrics.IncEngagement("unlike", string(entity.OutcomeApplied))
	return entity.Result{Outcome: entity.OutcomeApplied, LikeCount: count}, nil
}

// RecordView counts a view. The lifetime total is persisted first; unique
// views are per viewer within the configured window. Feeds are not
// invalidated by views.
func (uc *EngagementUsecase) RecordView(ctx context.Context, userID, reelID string) (entity.ViewCounts, error) {
	if err := uc.validateIDs(userID, reelID); err != nil {
		return entity.ViewCounts{}, err
	}
	reel, err := uc.visibleReel(ctx, reelID, userID)
	if err != nil {
		return entity.ViewCounts{}, err
	}

	total, err := uc.repos.Reels.IncrementViewCount(ctx, reelID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return entity.ViewCounts{}, ErrReelNotFound
		}
		uc.logger.Errorf("failed to persist view: %v", err)
		return entity.ViewCounts{}, fmt.Errorf("failed to record view: %w", err)
	}
	reel.ViewCount = total

	bg := context.WithoutCancel(ctx)
	rec := uc.counter.RecordView(bg, reelID, userID, total)
	if rec.IsFirstForUser {
		metrics.IncUniqueView()
	}
	uc.refreshTrending(bg, reel)
	metrics.IncEngagement("view", string(entity.OutcomeApplied))
	return entity.ViewCounts{Total: rec.Total, Unique: uc.counter.UniqueViews(bg, reelID)}, nil
}

// Save bookmarks a reel. Saves never touch counters or trending.
func (uc *EngagementUsecase) Save(ctx context.Context, userID, reelID string) (entity.Result, error) {
	if err := uc.validateIDs(userID, reelID); err != nil {
		return entity.Result{}, err
	}
	if _, err := uc.visibleReel(ctx, reelID, userID); err != nil {
		return entity.Result{}, err
	}

	_, err := uc.repos.Saves.GetSaved(ctx, userID, reelID)
	switch {
	case err == nil:
		return entity.Result{Outcome: entity.OutcomeNoop}, nil
	case !errors.Is(err, contract.ErrNotFound):
		return entity.Result{}, fmt.Errorf("failed to check saved reel: %w", err)
	}

	saved := &entity.SavedReel{ID: uc.uuidgen.NewUUID(), UserID: userID, ReelID: reelID, CreatedAt: uc.now()}
	if err := uc.repos.Saves.InsertSaved(ctx, saved); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return entity.Result{Outcome: entity.OutcomeNoop}, nil
		}
		return entity.Result{}, fmt.Errorf("failed to save reel: %w", err)
	}
	metrics.IncEngagement("save", string(entity.OutcomeApplied))
	return entity.Result{Outcome: entity.OutcomeApplied}, nil
}

func (uc *EngagementUsecase) Unsave(ctx context.Context, userID, reelID string) (entity.Result, error) {
	if err := uc.validateIDs(userID, reelID); err != nil {
		return entity.Result{}, err
	}
	if err := uc.repos.Saves.DeleteSaved(ctx, userID, reelID); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return entity.Result{Outcome: entity.OutcomeNotFound}, nil
		}
		return entity.Result{}, fmt.Errorf("failed to unsave reel: %w", err)
	}
	metrics.IncEngagement("unsave", string(entity.OutcomeApplied))
	return entity.Result{Outcome: entity.OutcomeApplied}, nil
}

// DeleteReel removes an owned reel, its relationships and its media. The
// trending entry stays behind and is dropped by the trending read filter.
func (uc *EngagementUsecase) DeleteReel(ctx context.Context, ownerID, reelID string) (entity.Result, error) {
	if err := uc.validateIDs(ownerID, reelID); err != nil {
		return entity.Result{}, err
	}
	reel, err := uc.repos.Reels.GetReelByID(ctx, reelID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return entity.Result{Outcome: entity.OutcomeNotFound}, nil
		}
		return entity.Result{}, fmt.Errorf("failed to get reel: %w", err)
	}
	if reel.OwnerID != ownerID {
		return entity.Result{}, ErrUnauthorized
	}

	if err := uc.repos.Reels.DeleteReel(ctx, reelID); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return entity.Result{Outcome: entity.OutcomeNotFound}, nil
		}
		uc.logger.Errorf("failed to delete reel: %v", err)
		return entity.Result{}, fmt.Errorf("failed to delete reel: %w", err)
	}

	bg := context.WithoutCancel(ctx)
	if err := uc.repos.Likes.DeleteLikesByReel(bg, reelID); err != nil {
		uc.logger.Errorf("likes of deleted reel %s not removed: %v", reelID, err)
	}
	if err := uc.repos.Saves.DeleteSavesByReel(bg, reelID); err != nil {
		uc.logger.Errorf("saves of deleted reel %s not removed: %v", reelID, err)
	}
	if uc.storage != nil {
		for _, key := range []string{reel.VideoKey, reel.ThumbnailKey} {
			if key == "" {
				continue
			}
			if !ownsReelMedia(ownerID, key) {
				uc.logger.Warnf("media %s of deleted reel %s is outside the owner's prefix, left in place", key, reelID)
				continue
			}
			if err := uc.storage.DeleteObject(bg, uc.config.GetMediaBucket(), key); err != nil {
				uc.logger.Warnf("media %s of deleted reel %s not removed: %v", key, reelID, err)
			}
		}
	}
	uc.feeds.Invalidate(bg, ownerID)
	uc.counter.Forget(bg, reelID)
	uc.publish(bg, entity.EventReelDeleted, reel, ownerID)
	metrics.IncEngagement("delete", string(entity.OutcomeApplied))
	return entity.Result{Outcome: entity.OutcomeApplied}, nil
}

// GetFeed returns one page of a feed, served from the feed cache when fresh.
func (uc *EngagementUsecase) GetFeed(ctx context.Context, userID string, feedType entity.FeedType, page int) ([]entity.ContentSummary, error) {
	if err := uc.validateIDs(userID); err != nil {
		return nil, err
	}
	if !feedType.IsValid() {
		return nil, fmt.Errorf("%w: unknown feed type %q", ErrInvalidInput, feedType)
	}
	if page < 1 || page > maxFeedPage {
		return nil, fmt.Errorf("%w: page must be between 1 and %d", ErrInvalidInput, maxFeedPage)
	}
	return uc.feeds.GetOrPopulate(ctx, userID, feedType, page, func(ctx context.Context) ([]entity.ContentSummary, error) {
		return uc.buildFeed(ctx, userID, feedType, page)
	})
}

func (uc *EngagementUsecase) buildFeed(ctx context.Context, userID string, feedType entity.FeedType, page int) ([]entity.ContentSummary, error) {
	size := uc.config.GetFeedPageSize()
	var (
		reels []*entity.Reel
		err   error
	)
	switch feedType {
	case entity.FeedTypeLatest:
		reels, err = uc.repos.Reels.ListPublicReels(ctx, page, size)
	case entity.FeedTypeMine:
		reels, err = uc.repos.Reels.GetReelsByOwner(ctx, userID, page, size)
	case entity.FeedTypeTrending:
		var ranked []*entity.Reel
		ranked, err = uc.trendingReels(ctx, page*size, userID)
		if start := (page - 1) * size; start < len(ranked) {
			reels = ranked[start:min(start+size, len(ranked))]
		}
	}
	if err != nil {
		uc.logger.Errorf("failed to load %s feed page %d: %v", feedType, page, err)
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return uc.enrich(ctx, userID, reels)
}

// enrich attaches counters, scores and the viewer's like state.
func (uc *EngagementUsecase) enrich(ctx context.Context, viewerID string, reels []*entity.Reel) ([]entity.ContentSummary, error) {
	mapper := iter.Mapper[*entity.Reel, entity.ContentSummary]{MaxGoroutines: enrichWorkers}
	return mapper.MapErr(reels, func(rp **entity.Reel) (entity.ContentSummary, error) {
		reel := *rp
		s := toSummary(reel)

		likes, err := uc.counter.GetLikeCount(ctx, reel.ID)
		if err != nil {
			return s, err
		}
		comments, err := uc.repos.Comments.GetCommentCount(ctx, reel.ID)
		if err != nil {
			return s, fmt.Errorf("failed to count comments for reel %s: %w", reel.ID, err)
		}
		_, err = uc.repos.Likes.GetLike(ctx, viewerID, reel.ID)
		switch {
		case err == nil:
			s.LikedByViewer = true
		case !errors.Is(err, contract.ErrNotFound):
			return s, fmt.Errorf("failed to check like for reel %s: %w", reel.ID, err)
		}

		views := uc.counter.ViewCountsFor(ctx, reel)
		s.LikeCount = likes
		s.ViewCount = views.Total
		s.UniqueViews = views.Unique
		s.CommentCount = comments
		if score, ok := uc.ranker.ScoreOf(ctx, reel.ID); ok {
			s.TrendingScore = score
		}
		return s, nil
	})
}

// GetTrending returns up to n public reel IDs by trending score.
func (uc *EngagementUsecase) GetTrending(ctx context.Context, n int) ([]string, error) {
	if n < 1 || n > maxTrendingLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxTrendingLimit)
	}
	reels, err := uc.trendingReels(ctx, n, "")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reels))
	for _, r := range reels {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// trendingReels reads the ranked IDs and keeps those that still exist and
// are visible to viewerID (public only when viewerID is empty). IDs whose
// reel is gone are pruned from the ranking.
func (uc *EngagementUsecase) trendingReels(ctx context.Context, n int, viewerID string) ([]*entity.Reel, error) {
	if n <= 0 {
		return nil, nil
	}
	for round := 0; ; round++ {
		fetch := n * trendingOverfetch
		ids := uc.ranker.GetTopTrending(ctx, fetch)

		type lookup struct {
			reel  *entity.Reel
			stale bool
		}
		mapper := iter.Mapper[string, lookup]{MaxGoroutines: enrichWorkers}
		found, err := mapper.MapErr(ids, func(id *string) (lookup, error) {
			reel, err := uc.repos.Reels.GetReelByID(ctx, *id)
			if errors.Is(err, contract.ErrNotFound) {
				return lookup{stale: true}, nil
			}
			if err != nil {
				return lookup{}, fmt.Errorf("failed to get trending reel %s: %w", *id, err)
			}
			return lookup{reel: reel}, nil
		})
		if err != nil {
			return nil, err
		}

		out := make([]*entity.Reel, 0, n)
		var stale []string
		for i, l := range found {
			switch {
			case l.stale:
				stale = append(stale, ids[i])
			case l.reel.Visibility == entity.VisibilityPublic || (viewerID != "" && l.reel.OwnerID == viewerID):
				if len(out) < n {
					out = append(out, l.reel)
				}
			}
		}
		if len(stale) > 0 {
			uc.ranker.Remove(context.WithoutCancel(ctx), stale...)
			uc.logger.Debugf("trending: pruned %d stale reels", len(stale))
		}
		// Retry once more only when pruning freed room in a full window.
		if len(out) >= n || len(ids) < fetch || len(stale) == 0 || round >= 2 {
			return out, nil
		}
	}
}

func toSummary(r *entity.Reel) entity.ContentSummary {
	return entity.ContentSummary{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Caption:      r.Caption,
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		AudioTrackID: r.AudioTrackID,
		Visibility:   r.Visibility,
		ViewCount:    r.ViewCount,
		ShareCount:   r.ShareCount,
		CreatedAt:    r.CreatedAt,
	}
}
