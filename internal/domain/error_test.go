package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Fluid-X/core/internal/domain/entity"
	"github.com/Fluid-X/core/internal/pkg/apperrors"
)

func TestUnknownNetworkError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("resolve: %w", &UnknownNetworkError{
		Name:  "doesNotExist",
		Known: []entity.NetworkName{entity.NetworkGoerli, entity.NetworkGanache},
	})

	assert.EqualError(t, err, `resolve: unknown network "doesNotExist" (valid networks: goerli, ganache)`)
	assert.True(t, errors.Is(err, ErrUnknownNetwork))
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, ErrMissingCredential))
}

func TestMissingCredentialError(t *testing.T) {
	t.Parallel()

	err := &MissingCredentialError{Field: "rpcUrl", EnvKey: "GOERLI_PROVIDER_URL"}

	assert.EqualError(t, err, `missing credential "rpcUrl": environment variable GOERLI_PROVIDER_URL is unset or empty`)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrUnknownNetwork)
}

func TestInvalidSettingError(t *testing.T) {
	t.Parallel()

	err := &InvalidSettingError{Field: "port", EnvKey: "GANACHE_PORT", Reason: "must be a decimal integer between 0 and 65535"}

	assert.EqualError(t, err,
		`invalid setting "port" from environment variable GANACHE_PORT: must be a decimal integer between 0 and 65535`)
	assert.ErrorIs(t, err, ErrInvalidSetting)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestErrPreflightUnavailable(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrPreflightUnavailable, apperrors.ErrUnavailable)
}

func TestErrIncompleteProfile(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: network goerli: missing gas price", ErrIncompleteProfile)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.EqualError(t, err, "internal system error: incomplete network profile: network goerli: missing gas price")
}
