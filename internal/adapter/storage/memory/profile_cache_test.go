package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Fluid-X/core/internal/config"
	"github.com/Fluid-X/core/internal/domain/entity"
)

func testProfile() entity.NetworkProfile {
	id := uint64(5)
	return entity.NetworkProfile{
		Name:          entity.NetworkGoerli,
		ChainID:       &id,
		Connection:    entity.RemoteProvider{Mnemonic: entity.NewSecret("m"), RPCURL: "https://node.example"},
		GasLimit:      8000000,
		GasPrice:      10000000000,
		TimeoutBlocks: 50,
	}
}

func TestProfileCache_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewProfileCache(config.CacheConfig{}, zap.NewNop())

	_, found, err := c.GetProfile(ctx, "goerli_abc")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetProfile(ctx, "goerli_abc", testProfile(), 0))

	got, found, err := c.GetProfile(ctx, "goerli_abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, testProfile(), got)
	assert.Equal(t, 1, c.cache.ItemCount())

	_, found, err = c.GetProfile(ctx, "goerli_other")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProfileCache_ExplicitTTLExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewProfileCache(config.CacheConfig{}, zap.NewNop())

	require.NoError(t, c.SetProfile(ctx, "short", testProfile(), 10*time.Millisecond))
	require.Eventually(t, func() bool {
		_, found, _ := c.GetProfile(ctx, "short")
		return !found
	}, time.Second, 5*time.Millisecond)
}

func TestProfileCache_DefaultExpirationFromConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewProfileCache(config.CacheConfig{DefaultExpiration: 10 * time.Millisecond}, zap.NewNop())

	require.NoError(t, c.SetProfile(ctx, "k", testProfile(), 0))
	require.Eventually(t, func() bool {
		_, found, _ := c.GetProfile(ctx, "k")
		return !found
	}, time.Second, 5*time.Millisecond)
}

func TestProfileCache_TypeMismatchIsMiss(t *testing.T) {
	t.Parallel()

	c := NewProfileCache(config.CacheConfig{}, zap.NewNop())
	c.cache.Set(profileKeyPrefix+"bad", "not a profile", 0)

	_, found, err := c.GetProfile(context.Background(), "bad")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProfileCache_LogsNetworkNotFingerprint(t *testing.T) {
	t.Parallel()

	const fingerprint = "3f9a0c1d2e4b5a69"
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewProfileCache(config.CacheConfig{}, zap.New(core))
	ctx := context.Background()

	_, _, _ = c.GetProfile(ctx, "goerli_"+fingerprint)
	require.NoError(t, c.SetProfile(ctx, "goerli_"+fingerprint, testProfile(), 0))
	_, found, _ := c.GetProfile(ctx, "goerli_"+fingerprint)
	require.True(t, found)

	for _, msg := range []string{"Memory cache miss", "Memory cache set", "Memory cache hit"} {
		entries := logs.FilterMessage(msg).All()
		require.Len(t, entries, 1, msg)
		assert.Equal(t, "goerli", entries[0].ContextMap()["network"], msg)
	}
	assert.EqualValues(t, 1, logs.FilterMessage("Memory cache set").All()[0].ContextMap()["items"])

	for _, entry := range logs.All() {
		assert.NotContains(t, fmt.Sprint(entry.ContextMap()), fingerprint)
		assert.NotContains(t, entry.Message, fingerprint)
	}
}

func TestNetworkOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ganache", networkOf("ganache_00ff"))
	assert.Equal(t, "short", networkOf("short"))
}
