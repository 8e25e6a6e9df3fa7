package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/logger"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/store"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/validator"
)

// fakeReelRepo is an in-memory IReelRepository. It hands out copies so
// callers cannot mutate stored reels.
type fakeReelRepo struct {
	mu          sync.Mutex
	reels       map[string]*entity.Reel
	ShouldFail  bool
	lookupCalls int
}

func newFakeReelRepo() *fakeReelRepo {
	return &fakeReelRepo{reels: map[string]*entity.Reel{}}
}

var errDurable = errors.New("durable store unavailable")

func (r *fakeReelRepo) CreateReel(_ context.Context, reel *entity.Reel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFail {
		return errDurable
	}
	cp := *reel
	r.reels[reel.ID] = &cp
	return nil
}

func (r *fakeReelRepo) GetReelByID(_ context.Context, id string) (*entity.Reel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookupCalls++
	if r.ShouldFail {
		return nil, errDurable
	}
	reel, ok := r.reels[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	cp := *reel
	return &cp, nil
}

func (r *fakeReelRepo) DeleteReel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reels[id]; !ok {
		return contract.ErrNotFound
	}
	delete(r.reels, id)
	return nil
}

func (r *fakeReelRepo) list(match func(*entity.Reel) bool, page, size int) []*entity.Reel {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Reel
	for _, reel := range r.reels {
		if match(reel) {
			cp := *reel
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := (page - 1) * size
	if start >= len(all) {
		return nil
	}
	return all[start:min(start+size, len(all))]
}

func (r *fakeReelRepo) GetReelsByOwner(_ context.Context, ownerID string, page, size int) ([]*entity.Reel, error) {
	return r.list(func(reel *entity.Reel) bool { return reel.OwnerID == ownerID }, page, size), nil
}

func (r *fakeReelRepo) ListPublicReels(_ context.Context, page, size int) ([]*entity.Reel, error) {
	return r.list(func(reel *entity.Reel) bool { return reel.Visibility == entity.VisibilityPublic }, page, size), nil
}

func (r *fakeReelRepo) IncrementViewCount(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFail {
		return 0, errDurable
	}
	reel, ok := r.reels[id]
	if !ok {
		return 0, contract.ErrNotFound
	}
	reel.ViewCount++
	return reel.ViewCount, nil
}

func (r *fakeReelRepo) exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.reels[id]
	return ok
}

type fakeLikeRepo struct {
	mu         sync.Mutex
	rows       map[string]*entity.Like
	countCalls int
	// ShouldRace makes GetLike miss an existing row, like a concurrent insert would.
	ShouldRace bool
	ShouldFail bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{rows: map[string]*entity.Like{}}
}

func pairKey(userID, reelID string) string { return userID + "|" + reelID }

func (r *fakeLikeRepo) GetLike(_ context.Context, userID, reelID string) (*entity.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	like, ok := r.rows[pairKey(userID, reelID)]
	if !ok || r.ShouldRace {
		return nil, contract.ErrNotFound
	}
	return like, nil
}

func (r *fakeLikeRepo) InsertLike(_ context.Context, like *entity.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFail {
		return errDurable
	}
	k := pairKey(like.UserID, like.ReelID)
	if _, ok := r.rows[k]; ok {
		return contract.ErrDuplicate
	}
	r.rows[k] = like
	return nil
}

func (r *fakeLikeRepo) DeleteLike(_ context.Context, userID, reelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey(userID, reelID)
	if _, ok := r.rows[k]; !ok {
		return contract.ErrNotFound
	}
	delete(r.rows, k)
	return nil
}

func (r *fakeLikeRepo) DeleteLikesByReel(_ context.Context, reelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, like := range r.rows {
		if like.ReelID == reelID {
			delete(r.rows, k)
		}
	}
	return nil
}

func (r *fakeLikeRepo) CountLikes(_ context.Context, reelID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countCalls++
	var n int64
	for _, like := range r.rows {
		if like.ReelID == reelID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLikeRepo) rowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeSavedRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.SavedReel
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{rows: map[string]*entity.SavedReel{}}
}

func (r *fakeSavedRepo) GetSaved(_ context.Context, userID, reelID string) (*entity.SavedReel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[pairKey(userID, reelID)]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return s, nil
}

func (r *fakeSavedRepo) InsertSaved(_ context.Context, s *entity.SavedReel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey(s.UserID, s.ReelID)
	if _, ok := r.rows[k]; ok {
		return contract.ErrDuplicate
	}
	r.rows[k] = s
	return nil
}

func (r *fakeSavedRepo) DeleteSaved(_ context.Context, userID, reelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey(userID, reelID)
	if _, ok := r.rows[k]; !ok {
		return contract.ErrNotFound
	}
	delete(r.rows, k)
	return nil
}

func (r *fakeSavedRepo) DeleteSavesByReel(_ context.Context, reelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, s := range r.rows {
		if s.ReelID == reelID {
			delete(r.rows, k)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return u, nil
}

type fakeCommentRepo struct {
	counts map[string]int64
}

func (r *fakeCommentRepo) GetCommentCount(_ context.Context, reelID string) (int64, error) {
	return r.counts[reelID], nil
}

type fakeTrackRepo struct {
	mu     sync.Mutex
	tracks map[string]*entity.AudioTrack
}

func newFakeTrackRepo() *fakeTrackRepo {
	return &fakeTrackRepo{tracks: map[string]*entity.AudioTrack{}}
}

func (r *fakeTrackRepo) CreateTrack(_ context.Context, t *entity.AudioTrack) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracks[t.ID] = t
	return nil
}

func (r *fakeTrackRepo) GetTrackByID(_ context.Context, id string) (*entity.AudioTrack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tracks[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTrackRepo) IncrementUsage(_ context.Context, id string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tracks[id]
	if !ok {
		return contract.ErrNotFound
	}
	t.UsageCount += delta
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (s *fakeStorage) GenerateUploadURL(_ context.Context, bucket, key string, ttl time.Duration) (string, error) {
	return "https://storage.test/" + bucket + "/" + key + "?expires=" + ttl.String(), nil
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + bucket + "/" + key + "?signed", nil
}

func (s *fakeStorage) PutObject(context.Context, string, string, string, io.Reader, int64) error {
	return nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, _ string, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

type fakeEvents struct {
	mu     sync.Mutex
	events []entity.EngagementEvent
}

func (e *fakeEvents) Publish(_ context.Context, ev entity.EngagementEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}

func (e *fakeEvents) Close() error { return nil }

func (e *fakeEvents) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

type testConfig struct {
	feedTTL  time.Duration
	pageSize int
}

func (c testConfig) GetAppBaseURL() string              { return "http://localhost:8080" }
func (c testConfig) GetFeedCacheTTL() time.Duration     { return c.feedTTL }
func (c testConfig) GetFeedPageSize() int               { return c.pageSize }
func (c testConfig) GetCounterTTL() time.Duration       { return 7 * 24 * time.Hour }
func (c testConfig) GetUniqueViewWindow() time.Duration { return 24 * time.Hour }
func (c testConfig) GetMediaBucket() string             { return "reels" }
func (c testConfig) GetUploadURLTTL() time.Duration     { return 15 * time.Minute }

type fixture struct {
	uc       *EngagementUsecase
	mr       *miniredis.Miniredis
	cache    *store.CacheClient
	counter  *CounterService
	ranker   *TrendingRanker
	feeds    *FeedCache
	reels    *fakeReelRepo
	likes    *fakeLikeRepo
	saves    *fakeSavedRepo
	users    *fakeUserRepo
	comments *fakeCommentRepo
	tracks   *fakeTrackRepo
	storage  *fakeStorage
	events   *fakeEvents
	config   testConfig
	now      time.Time
}

// newFixture wires the orchestrator against miniredis and in-memory repositories.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logger.NewZapLogger(zap.NewNop())
	cache := store.NewCacheClient(rdb, log, 200*time.Millisecond)
	cfg := testConfig{feedTTL: 30 * time.Second, pageSize: 10}

	f := &fixture{
		mr:       mr,
		cache:    cache,
		reels:    newFakeReelRepo(),
		likes:    newFakeLikeRepo(),
		saves:    newFakeSavedRepo(),
		users:    &fakeUserRepo{users: map[string]*entity.User{}},
		comments: &fakeCommentRepo{counts: map[string]int64{}},
		tracks:   newFakeTrackRepo(),
		storage:  &fakeStorage{},
		events:   &fakeEvents{},
		config:   cfg,
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.counter = NewCounterService(cache, f.reels, f.likes, cfg, log)
	f.ranker = NewTrendingRanker(cache)
	f.feeds = NewFeedCache(cache, cfg.GetFeedCacheTTL(), log)
	f.uc = NewEngagementUsecase(
		Repositories{
			Reels:    f.reels,
			Likes:    f.likes,
			Saves:    f.saves,
			Users:    f.users,
			Comments: f.comments,
			Tracks:   f.tracks,
		},
		f.storage, f.events, f.counter, f.ranker, f.feeds,
		uuidgen.NewGenerator(), validator.NewValidator(), cfg, log,
	)
	f.uc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) newUser() string {
	id := uuid.NewString()
	f.users.users[id] = &entity.User{ID: id, Username: "user-" + id[:8], Role: entity.UserRoleUser, IsActive: true}
	return id
}

// newReel inserts a reel straight into the durable store, bypassing caches.
func (f *fixture) newReel(ownerID string, vis entity.Visibility) *entity.Reel {
	reel := &entity.Reel{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Caption:    "reel",
		VideoKey:   "reels/" + ownerID + "/v.mp4",
		Visibility: vis,
		CreatedAt:  f.now,
	}
	_ = f.reels.CreateReel(context.Background(), reel)
	f.now = f.now.Add(time.Second)
	return reel
}
