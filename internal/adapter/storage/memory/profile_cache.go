package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Fluid-X/core/internal/config"
	"github.com/Fluid-X/core/internal/domain/entity"
	domainRepo "github.com/Fluid-X/core/internal/domain/repository"
)

// Compile-time check
var _ domainRepo.ProfileCache = (*ProfileCache)(nil)

const profileKeyPrefix = "profile_v1_"

// ProfileCache implements domainRepo.ProfileCache using the go-cache in-memory library.
type ProfileCache struct {
	cache  *cache.Cache
	logger *zap.Logger
	cfg    config.CacheConfig
}

// NewProfileCache creates a new in-memory profile cache. A zero default
// expiration keeps entries for the process lifetime.
func NewProfileCache(cfg config.CacheConfig, logger *zap.Logger) *ProfileCache {
	defaultExpiration := cfg.GetDefaultExpiration()
	if defaultExpiration <= 0 {
		defaultExpiration = cache.NoExpiration
	}
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for resolved profiles",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &ProfileCache{
		cache:  c,
		logger: logger.Named("ProfileCache"),
		cfg:    cfg,
	}
}

// GetProfile retrieves a cached profile, returning found status.
func (r *ProfileCache) GetProfile(_ context.Context, key string) (entity.NetworkProfile, bool, error) {
	network := networkOf(key)
	if x, found := r.cache.Get(profileKeyPrefix + key); found {
		if profile, ok := x.(entity.NetworkProfile); ok {
			r.logger.Debug("Memory cache hit", zap.String("network", network))
			return profile, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("network", network), zap.String("type", fmt.Sprintf("%T", x)),
		)
	}
	r.logger.Debug("Memory cache miss", zap.String("network", network))
	return entity.NetworkProfile{}, false, nil
}

// SetProfile caches a profile. A non-positive ttl uses the configured default.
func (r *ProfileCache) SetProfile(_ context.Context, key string, profile entity.NetworkProfile, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	r.cache.Set(profileKeyPrefix+key, profile, ttl)
	r.logger.Debug("Memory cache set",
		zap.String("network", networkOf(key)),
		zap.Duration("ttl", ttl),
		zap.Int("items", r.cache.ItemCount()),
	)
	return nil
}

// networkOf strips the environment fingerprint from a cache key. The
// fingerprint is derived from credentials and stays out of logs.
func networkOf(key string) string {
	network, _, _ := strings.Cut(key, "_")
	return network
}
