package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aegis-security/site-service/internal/domain"
)

type fakeGalleryRepo struct {
	images []domain.GalleryImage
	err    error
	lists  int
}

func (f *fakeGalleryRepo) Create(ctx context.Context, image *domain.GalleryImage) error {
	image.ID = "img-1"
	return f.err
}
func (f *fakeGalleryRepo) List(ctx context.Context) ([]domain.GalleryImage, error) {
	f.lists++
	return f.images, f.err
}
func (f *fakeGalleryRepo) Delete(ctx context.Context, id string) error { return f.err }

// fakeGalleryCache behaves like a redis client over a map; getErr and
// setErr simulate an unreachable server.
type fakeGalleryCache struct {
	data   map[string]string
	getErr error
	setErr error
	dels   int
}

func newFakeGalleryCache() *fakeGalleryCache {
	return &fakeGalleryCache{data: map[string]string{}}
}

func (f *fakeGalleryCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeGalleryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeGalleryCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.dels++
	for _, key := range keys {
		delete(f.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func testGalleryImages() []domain.GalleryImage {
	return []domain.GalleryImage{
		{ID: "img-1", Title: "Night patrol", ImageURL: "/static/gallery/patrol.jpg", Position: 1},
		{ID: "img-2", Title: "Control room", ImageURL: "/static/gallery/control.jpg", Position: 2},
	}
}

func TestListGalleryCacheHit(t *testing.T) {
	cached := testGalleryImages()
	raw, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	cache := newFakeGalleryCache()
	cache.data[galleryCacheKey] = string(raw)

	// The repository would fail; a hit must never reach it.
	repo := &fakeGalleryRepo{err: errors.New("database down")}
	svc := NewContentService(&fakeJobRepo{}, repo, cache, zap.NewNop())

	images, err := svc.ListGallery(context.Background())
	if err != nil {
		t.Fatalf("list gallery: %v", err)
	}
	if len(images) != 2 || images[0].ID != "img-1" {
		t.Errorf("images = %+v, want cached fixture", images)
	}
	if repo.lists != 0 {
		t.Errorf("repository queried %d times on a cache hit, want 0", repo.lists)
	}
}

func TestListGalleryFallsBackWhenCacheUnavailable(t *testing.T) {
	cache := newFakeGalleryCache()
	cache.getErr = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
	cache.setErr = cache.getErr

	repo := &fakeGalleryRepo{images: testGalleryImages()}
	svc := NewContentService(&fakeJobRepo{}, repo, cache, zap.NewNop())

	images, err := svc.ListGallery(context.Background())
	if err != nil {
		t.Fatalf("list gallery with dead cache: %v", err)
	}
	if len(images) != 2 {
		t.Errorf("got %d images, want 2", len(images))
	}
	if repo.lists != 1 {
		t.Errorf("repository queried %d times, want 1", repo.lists)
	}
}

func TestListGalleryWithoutCache(t *testing.T) {
	repo := &fakeGalleryRepo{images: testGalleryImages()}
	svc := NewContentService(&fakeJobRepo{}, repo, nil, zap.NewNop())

	images, err := svc.ListGallery(context.Background())
	if err != nil {
		t.Fatalf("list gallery: %v", err)
	}
	if len(images) != 2 {
		t.Errorf("got %d images, want 2", len(images))
	}
}

func TestListGalleryWarmsCacheAfterMiss(t *testing.T) {
	cache := newFakeGalleryCache()
	repo := &fakeGalleryRepo{images: testGalleryImages()}
	svc := NewContentService(&fakeJobRepo{}, repo, cache, zap.NewNop())

	if _, err := svc.ListGallery(context.Background()); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if _, ok := cache.data[galleryCacheKey]; !ok {
		t.Fatal("miss did not warm the cache")
	}

	// Second read is served from the warmed cache.
	if _, err := svc.ListGallery(context.Background()); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if repo.lists != 1 {
		t.Errorf("repository queried %d times, want 1", repo.lists)
	}
}

func TestGalleryMutationsInvalidateCache(t *testing.T) {
	cache := newFakeGalleryCache()
	cache.data[galleryCacheKey] = "stale"
	svc := NewContentService(&fakeJobRepo{}, &fakeGalleryRepo{}, cache, zap.NewNop())

	if err := svc.AddGalleryImage(context.Background(), &domain.GalleryImage{Title: "New"}); err != nil {
		t.Fatalf("add image: %v", err)
	}
	if err := svc.RemoveGalleryImage(context.Background(), "img-1"); err != nil {
		t.Fatalf("remove image: %v", err)
	}
	if cache.dels != 2 {
		t.Errorf("cache invalidated %d times, want 2", cache.dels)
	}
	if _, ok := cache.data[galleryCacheKey]; ok {
		t.Error("stale entry survived invalidation")
	}
}
