package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Fluid-X/core/internal/domain/entity"
	"github.com/Fluid-X/core/internal/pkg/apperrors"
)

var (
	// ErrUnknownNetwork means the requested network is not one of the configured targets.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrMissingCredential means a required environment value is unset or empty.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidSetting means an environment value is set but cannot be used as given.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrIncompleteProfile means a resolved profile failed its completeness check.
	// The network table is compiled in, so this is always a bug.
	ErrIncompleteProfile = fmt.Errorf("%w: incomplete network profile", apperrors.ErrInternal)

	// ErrPreflightUnavailable means no endpoint prober is configured.
	ErrPreflightUnavailable = fmt.Errorf("%w: preflight probing is not configured", apperrors.ErrUnavailable)
)

// UnknownNetworkError names the rejected network and the accepted ones.
type UnknownNetworkError struct {
	Name  string
	Known []entity.NetworkName
}

func (e *UnknownNetworkError) Error() string {
	known := make([]string, len(e.Known))
	for i, n := range e.Known {
		known[i] = string(n)
	}
	return fmt.Sprintf("unknown network %q (valid networks: %s)", e.Name, strings.Join(known, ", "))
}

func (e *UnknownNetworkError) Unwrap() []error {
	return []error{ErrUnknownNetwork, apperrors.ErrNotFound}
}

// MissingCredentialError names the profile field whose environment source was empty.
type MissingCredentialError struct {
	Field  string
	EnvKey string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential %q: environment variable %s is unset or empty", e.Field, e.EnvKey)
}

func (e *MissingCredentialError) Unwrap() []error {
	return []error{ErrMissingCredential, apperrors.ErrInvalidInput}
}

// InvalidSettingError names a field whose environment value was present but unusable.
// Reason must never contain the offending value.
type InvalidSettingError struct {
	Field  string
	EnvKey string
	Reason string
}

func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("invalid setting %q from environment variable %s: %s", e.Field, e.EnvKey, e.Reason)
}

func (e *InvalidSettingError) Unwrap() []error {
	return []error{ErrInvalidSetting, apperrors.ErrInvalidInput}
}
