// internal/solbc/pool_test.go
package solbc

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	hash  solana.Hash
	err   error
	calls int
}

func (f *fakeSource) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	f.calls++
	return f.hash, f.err
}

func (f *fakeSource) URL() string { return "fake://endpoint" }

func TestPoolUsesPrimaryWhenHealthy(t *testing.T) {
	primary := &fakeSource{hash: solana.Hash{1}}
	fallback := &fakeSource{hash: solana.Hash{2}}
	pool := newPoolFromSources(primary, fallback, zap.NewNop())

	hash, err := pool.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, solana.Hash{1}, hash)
	assert.Zero(t, fallback.calls)
}

func TestPoolFailsOverToFallback(t *testing.T) {
	primary := &fakeSource{err: errors.New("primary down")}
	fallback := &fakeSource{hash: solana.Hash{2}}
	pool := newPoolFromSources(primary, fallback, zap.NewNop())

	hash, err := pool.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, solana.Hash{2}, hash)
	assert.Equal(t, 1, primary.calls)
	assert.GreaterOrEqual(t, fallback.calls, 1)
}

func TestPoolErrorsWithoutFallback(t *testing.T) {
	primary := &fakeSource{err: errors.New("primary down")}
	pool := newPoolFromSources(primary, nil, zap.NewNop())

	_, err := pool.GetLatestBlockhash(context.Background())
	assert.ErrorContains(t, err, "primary down")
}

func TestPoolSurfacesBothFailures(t *testing.T) {
	primary := &fakeSource{err: errors.New("primary down")}
	fallback := &fakeSource{err: errors.New("fallback down")}
	pool := newPoolFromSources(primary, fallback, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.GetLatestBlockhash(ctx)
	assert.Error(t, err)
}

func TestNewPoolRequiresEndpoints(t *testing.T) {
	_, err := NewPool(nil, zap.NewNop())
	assert.Error(t, err)

	pool, err := NewPool([]string{"http://localhost:8899"}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, pool.Primary())
}
