package port

import (
	"context"

	"github.com/Fluid-X/core/internal/domain/entity"
)

// TargetService defines the interface used by delivery layers to obtain deployment targets.
type TargetService interface {
	// ResolveTarget returns the validated profile for a network name.
	ResolveTarget(ctx context.Context, name string) (entity.NetworkProfile, error)

	// ListTargets returns the configured network names.
	ListTargets(ctx context.Context) []entity.NetworkName

	// Toolchain returns the pinned compiler and test harness policies.
	Toolchain(ctx context.Context) entity.Toolchain

	// Preflight resolves a network and performs a read-only reachability check of its endpoint.
	Preflight(ctx context.Context, name string) (entity.PreflightReport, error)
}
