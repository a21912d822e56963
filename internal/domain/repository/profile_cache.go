package repository

import (
	"context"
	"time"

	"github.com/Fluid-X/core/internal/domain/entity"
)

// ProfileCache defines the interface for keeping resolved profiles for the process lifetime.
type ProfileCache interface {
	// GetProfile retrieves a cached profile by key, returning found status.
	GetProfile(ctx context.Context, key string) (entity.NetworkProfile, bool, error)

	// SetProfile stores a resolved profile under key with a specified TTL.
	SetProfile(ctx context.Context, key string, profile entity.NetworkProfile, ttl time.Duration) error
}
