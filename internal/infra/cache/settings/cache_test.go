package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

type fakeRedis struct {
	values map[string]string
	getErr error
	sets   int
	dels   int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.sets++
	f.values[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.dels++
	for _, k := range keys {
		delete(f.values, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type fakeRepo struct {
	settings *domain.ShopSettings
	gets     int
}

func (r *fakeRepo) Get(context.Context) (*domain.ShopSettings, error) {
	r.gets++
	if r.settings == nil {
		return nil, storage.ErrSettingsNotFound
	}
	c := *r.settings
	return &c, nil
}

func (r *fakeRepo) Save(_ context.Context, s *domain.ShopSettings) error {
	r.settings = s
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCache_ReadThrough(t *testing.T) {
	repo := &fakeRepo{settings: &domain.ShopSettings{ShopName: "Mali", OpenHours: "10:00-18:00", Services: []string{"Cut"}}}
	rdb := newFakeRedis()
	cache := NewCache(repo, rdb, time.Minute, nopLogger{})

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	second, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, 1, rdb.sets)
	assert.Equal(t, first, second)
	assert.Equal(t, "Mali", second.ShopName)
}

func TestCache_SaveInvalidates(t *testing.T) {
	repo := &fakeRepo{settings: &domain.ShopSettings{ShopName: "Old"}}
	rdb := newFakeRedis()
	cache := NewCache(repo, rdb, time.Minute, nopLogger{})
	ctx := context.Background()

	_, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.Save(ctx, &domain.ShopSettings{ShopName: "New"}))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New", got.ShopName)
	assert.Equal(t, 1, rdb.dels)
}

func TestCache_NotFoundIsNotCached(t *testing.T) {
	rdb := newFakeRedis()
	cache := NewCache(&fakeRepo{}, rdb, time.Minute, nopLogger{})

	_, err := cache.Get(context.Background())

	assert.ErrorIs(t, err, storage.ErrSettingsNotFound)
	assert.Zero(t, rdb.sets)
}

func TestCache_RedisDownFallsBackToStore(t *testing.T) {
	repo := &fakeRepo{settings: &domain.ShopSettings{ShopName: "Mali"}}
	rdb := newFakeRedis()
	rdb.getErr = errors.New("dial tcp: connection refused")
	cache := NewCache(repo, rdb, time.Minute, nopLogger{})

	got, err := cache.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Mali", got.ShopName)
}
