package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"library-catalog/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	genreListPrefix   = "catalog:genres:all:"
	genreVersionKey   = "catalog:genres:version"
	opTimeout         = 150 * time.Millisecond
	unknownGeneration = -1
)

func genreListKey(generation int64) string {
	return genreListPrefix + strconv.FormatInt(generation, 10)
}

// GenreCache stores the sorted genre list in Redis under a key suffixed with
// the current generation. Invalidate bumps the generation, so a list filled
// from a read that raced a write lands under a key nobody reads again and
// expires with its TTL. Every operation fails open: a Redis problem is logged
// and treated as a miss.
type GenreCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewRedis connects to redisURL and verifies the connection.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration, log *zap.Logger) (*GenreCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 3 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return newGenreCache(rdb, ttl, log), nil
}

func newGenreCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *GenreCache {
	return &GenreCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("cache", "genre_list")),
	}
}

func (c *GenreCache) Genres(ctx context.Context) ([]*entity.Genre, int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	generation, err := c.rdb.Get(ctx, genreVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		generation = 0
	} else if err != nil {
		c.log.Warn("Genre list generation read failed", zap.Error(err))
		return nil, unknownGeneration, false
	}

	raw, err := c.rdb.Get(ctx, genreListKey(generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false
	}
	if err != nil {
		c.log.Warn("Genre list cache read failed", zap.Error(err))
		return nil, unknownGeneration, false
	}

	var genres []*entity.Genre
	if err := json.Unmarshal(raw, &genres); err != nil {
		c.log.Warn("Genre list cache entry corrupt", zap.Error(err))
		return nil, generation, false
	}
	return genres, generation, true
}

// SetGenres stores genres under generation. A negative generation is skipped.
func (c *GenreCache) SetGenres(ctx context.Context, generation int64, genres []*entity.Genre) {
	if generation < 0 {
		return
	}

	raw, err := json.Marshal(genres)
	if err != nil {
		c.log.Warn("Failed to encode genre list", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.rdb.Set(ctx, genreListKey(generation), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Genre list cache write failed", zap.Error(err))
	}
}

// Invalidate moves readers to a fresh generation.
func (c *GenreCache) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	generation, err := c.rdb.Incr(ctx, genreVersionKey).Result()
	if err != nil {
		c.log.Warn("Genre list cache invalidation failed", zap.Error(err))
		return
	}
	c.log.Debug("Genre list generation bumped", zap.Int64("generation", generation))
}

func (c *GenreCache) Close() error {
	return c.rdb.Close()
}

// Noop never hits; used when no REDIS_URL is configured.
type Noop struct{}

func (Noop) Genres(context.Context) ([]*entity.Genre, int64, bool) {
	return nil, unknownGeneration, false
}
func (Noop) SetGenres(context.Context, int64, []*entity.Genre) {}
func (Noop) Invalidate(context.Context)                        {}
