package presenter

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Fluid-X/core/internal/domain"
	"github.com/Fluid-X/core/internal/domain/entity"
)

const mnemonic = "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong"

func TestToProfileView_Remote(t *testing.T) {
	t.Parallel()

	id := uint64(5)
	view := ToProfileView(entity.NetworkProfile{
		Name:          entity.NetworkGoerli,
		ChainID:       &id,
		Connection:    entity.RemoteProvider{Mnemonic: entity.NewSecret(mnemonic), RPCURL: "https://node.example/key"},
		GasLimit:      8000000,
		GasPrice:      10000000000,
		TimeoutBlocks: 50,
	})

	require.NotNil(t, view.ChainID)
	assert.NotSame(t, &id, view.ChainID)
	assert.Equal(t, "remoteProvider", view.Connection.Kind)
	assert.Nil(t, view.Connection.Port)

	jsonOut, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "goerli",
		"chainId": 5,
		"connection": {"kind": "remoteProvider", "mnemonic": "[REDACTED]", "rpcUrl": "https://node.example/key"},
		"gasLimit": 8000000,
		"gasPrice": 10000000000,
		"timeoutBlocks": 50,
		"skipDryRun": false
	}`, string(jsonOut))

	yamlOut, err := yaml.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(yamlOut), "zoo")
	assert.Contains(t, string(yamlOut), "gasPrice: 10000000000")
}

func TestToProfileView_Local(t *testing.T) {
	t.Parallel()

	view := ToProfileView(entity.NetworkProfile{
		Name:          entity.NetworkGanache,
		Connection:    entity.LocalEndpoint{Host: "127.0.0.1", Port: 0},
		GasLimit:      6721975,
		GasPrice:      20000000000,
		TimeoutBlocks: 50,
	})

	jsonOut, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "ganache",
		"connection": {"kind": "localEndpoint", "host": "127.0.0.1", "port": 0},
		"gasLimit": 6721975,
		"gasPrice": 20000000000,
		"timeoutBlocks": 50,
		"skipDryRun": false
	}`, string(jsonOut))
}

func TestToPreflightView(t *testing.T) {
	t.Parallel()

	observed := uint64(1337)
	view := ToPreflightView(entity.PreflightReport{
		Network:         entity.NetworkGanache,
		Endpoint:        "http://127.0.0.1:8545",
		Reachable:       true,
		Latency:         1500 * time.Microsecond,
		ObservedChainID: &observed,
	})

	assert.Equal(t, "ganache", view.Network)
	assert.Equal(t, int64(1), view.LatencyMs)
	assert.Nil(t, view.ChainIDMatches)
	assert.Equal(t, &observed, view.ObservedChainID)
}

func TestToToolchainView(t *testing.T) {
	t.Parallel()

	view := ToToolchainView(entity.Toolchain{
		Compiler:    entity.CompilerPolicy{Name: "solc", Version: "0.8.9"},
		TestHarness: entity.TestHarnessPolicy{TimeoutMs: 100000},
	})
	assert.Equal(t, "solc", view.Compiler)
	assert.Equal(t, "0.8.9", view.Version)
	assert.Equal(t, int64(100000), view.TestTimeoutMs)
}

func TestToErrorView(t *testing.T) {
	t.Parallel()

	unknown := ToErrorView(&domain.UnknownNetworkError{
		Name:  "x",
		Known: []entity.NetworkName{entity.NetworkGoerli, entity.NetworkGanache},
	})
	assert.Equal(t, []string{"goerli", "ganache"}, unknown.Valid)
	assert.Empty(t, unknown.Field)

	missing := ToErrorView(&domain.MissingCredentialError{Field: "rpcUrl", EnvKey: "GOERLI_PROVIDER_URL"})
	assert.Equal(t, "rpcUrl", missing.Field)
	assert.Contains(t, missing.Error, "GOERLI_PROVIDER_URL")

	invalid := ToErrorView(&domain.InvalidSettingError{Field: "port", EnvKey: "GANACHE_PORT", Reason: "out of range"})
	assert.Equal(t, "port", invalid.Field)

	plain := ToErrorView(errors.New("boom"))
	assert.Equal(t, "boom", plain.Error)
	assert.Empty(t, plain.Field)
	assert.Nil(t, plain.Valid)
}

func TestToPublicProfileView_HidesProviderPath(t *testing.T) {
	t.Parallel()

	id := uint64(5)
	profile := entity.NetworkProfile{
		Name:          entity.NetworkGoerli,
		ChainID:       &id,
		Connection:    entity.RemoteProvider{Mnemonic: entity.NewSecret(mnemonic), RPCURL: "https://goerli.infura.io/v3/SECRETKEY"},
		GasLimit:      8000000,
		GasPrice:      10000000000,
		TimeoutBlocks: 50,
	}

	view := ToPublicProfileView(profile)
	assert.Equal(t, "https://goerli.infura.io", view.Connection.RPCURL)

	jsonOut, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonOut), "SECRETKEY")
	assert.NotContains(t, string(jsonOut), "zoo")

	assert.Equal(t, "https://goerli.infura.io/v3/SECRETKEY", ToProfileView(profile).Connection.RPCURL)

	local := entity.NetworkProfile{Name: entity.NetworkGanache, Connection: entity.LocalEndpoint{Host: "127.0.0.1", Port: 8545}}
	assert.Equal(t, ToProfileView(local), ToPublicProfileView(local))
}
