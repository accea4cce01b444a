// internal/solbc/pool.go
package solbc

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// blockhashSource is the slice of Client the failover logic needs.
type blockhashSource interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	URL() string
}

// Pool holds a primary client plus a fallback cluster endpoint. The only
// call that fails over is the blockhash fetch: everything else surfaces
// the primary's error to the caller unretried.
type Pool struct {
	primary  *Client
	src      blockhashSource
	fallback blockhashSource
	logger   *zap.Logger
}

// NewPool creates a pool from the configured endpoint list. The first
// entry is the primary, the second (if present) the fallback.
func NewPool(rpcURLs []string, logger *zap.Logger) (*Pool, error) {
	if len(rpcURLs) == 0 {
		return nil, fmt.Errorf("rpc endpoint list is empty")
	}
	primary := NewClient(rpcURLs[0], logger)
	p := &Pool{
		primary: primary,
		src:     primary,
		logger:  logger.Named("rpc-pool"),
	}
	if len(rpcURLs) > 1 {
		p.fallback = NewClient(rpcURLs[1], logger)
	}
	return p, nil
}

// newPoolFromSources is used by tests to exercise the failover path
// without a network.
func newPoolFromSources(primary, fallback blockhashSource, logger *zap.Logger) *Pool {
	return &Pool{src: primary, fallback: fallback, logger: logger}
}

// Primary returns the primary client.
func (p *Pool) Primary() *Client { return p.primary }

// GetLatestBlockhash fetches the blockhash from the primary endpoint and,
// on failure, retries briefly against the fallback. Both failing is fatal
// for the current request.
func (p *Pool) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	hash, primaryErr := p.src.GetLatestBlockhash(ctx)
	if primaryErr == nil {
		return hash, nil
	}
	if p.fallback == nil {
		return solana.Hash{}, fmt.Errorf("blockhash fetch failed: %w", primaryErr)
	}

	p.logger.Warn("primary blockhash fetch failed, using fallback endpoint",
		zap.String("primary", p.src.URL()),
		zap.String("fallback", p.fallback.URL()),
		zap.Error(primaryErr))

	op := func() (solana.Hash, error) {
		return p.fallback.GetLatestBlockhash(ctx)
	}
	hash, fallbackErr := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(5*time.Second),
	)
	if fallbackErr != nil {
		return solana.Hash{}, fmt.Errorf("blockhash fetch failed on primary (%v) and fallback: %w", primaryErr, fallbackErr)
	}
	return hash, nil
}
