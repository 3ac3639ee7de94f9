// Package repository defines data access interfaces for Clipstream.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/clipstream/internal/domain"
)

// =============================================================================
// Cache Interface
// =============================================================================

// Cache defines the interface for caching operations.
// Implemented by Redis for distributed deployments and by an in-memory
// store for single-node ones.
type Cache interface {
	// Get retrieves a value by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL.
	// If ttl is 0, the value doesn't expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)
}

// =============================================================================
// Cached Video Repository
// =============================================================================

// videoCacheTTL bounds how stale a cached video may be. Mutations through
// this decorator invalidate eagerly, so the TTL only covers writes performed
// by other instances.
const videoCacheTTL = 30 * time.Second

// CachedVideoRepository decorates a VideoRepository with read-through caching
// of single-video lookups. Listings always hit the store: the visibility
// predicate depends on the viewer and is cheap to evaluate there.
type CachedVideoRepository struct {
	inner  VideoRepository
	cache  Cache
	logger zerolog.Logger
}

// NewCachedVideoRepository wraps inner with the given cache.
func NewCachedVideoRepository(inner VideoRepository, cache Cache, logger zerolog.Logger) *CachedVideoRepository {
	return &CachedVideoRepository{
		inner:  inner,
		cache:  cache,
		logger: logger.With().Str("component", "video_cache").Logger(),
	}
}

func videoCacheKey(id uuid.UUID) string {
	return "video:" + id.String()
}

// Create passes through and primes the cache.
func (r *CachedVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	if err := r.inner.Create(ctx, video); err != nil {
		return err
	}
	r.store(ctx, video)
	return nil
}

// GetByID serves from cache when possible.
func (r *CachedVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	if data, err := r.cache.Get(ctx, videoCacheKey(id)); err == nil {
		var video domain.Video
		if err := json.Unmarshal(data, &video); err == nil {
			return &video, nil
		}
		// Corrupt entry; drop it and fall through to the store.
		_ = r.cache.Delete(ctx, videoCacheKey(id))
	}

	video, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, video)
	return video, nil
}

// ListVisible always hits the underlying store.
func (r *CachedVideoRepository) ListVisible(ctx context.Context, viewerID int64, opts ListOptions) ([]*domain.Video, error) {
	return r.inner.ListVisible(ctx, viewerID, opts)
}

// Update passes through and invalidates.
func (r *CachedVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	if err := r.inner.Update(ctx, video); err != nil {
		return err
	}
	r.invalidate(ctx, video.ID)
	return nil
}

// Delete passes through and invalidates.
func (r *CachedVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// AddLike passes through and refreshes the cached entry.
func (r *CachedVideoRepository) AddLike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := r.inner.AddLike(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, video)
	return video, nil
}

// RemoveLike passes through and refreshes the cached entry.
func (r *CachedVideoRepository) RemoveLike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := r.inner.RemoveLike(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, video)
	return video, nil
}

func (r *CachedVideoRepository) store(ctx context.Context, video *domain.Video) {
	data, err := json.Marshal(video)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, videoCacheKey(video.ID), data, videoCacheTTL); err != nil {
		r.logger.Debug().Err(err).Str("video_id", video.ID.String()).Msg("failed to cache video")
	}
}

func (r *CachedVideoRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, videoCacheKey(id)); err != nil {
		r.logger.Debug().Err(err).Str("video_id", id.String()).Msg("failed to invalidate cached video")
	}
}

// Ensure CachedVideoRepository implements VideoRepository.
var _ VideoRepository = (*CachedVideoRepository)(nil)
