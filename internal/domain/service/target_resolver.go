package service

import (
	"github.com/Fluid-X/core/internal/domain/entity"
)

// Environment is a read-only key/value snapshot of the process environment.
type Environment interface {
	Lookup(key string) (string, bool)
}

// TargetResolver turns a network name into a validated profile.
type TargetResolver interface {
	// Resolve returns a complete profile or a named configuration error.
	Resolve(name string, env Environment) (entity.NetworkProfile, error)

	// Networks lists the configured network names.
	Networks() []entity.NetworkName

	// EnvKeys lists the environment keys that influence the named network's profile.
	EnvKeys(name entity.NetworkName) []string

	Toolchain() entity.Toolchain
}
