// =============================
// File: internal/launchpad/probe.go
// =============================
package launchpad

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/solport/launchpad/internal/solbc"
)

// Prober answers existence/balance questions about specific accounts.
// Network I/O only, no mutation. An unanswered probe is an error, never an
// implicit "absent".
type Prober struct {
	client *solbc.Client
	logger *zap.Logger
}

// NewProber creates a prober over the given client.
func NewProber(client *solbc.Client, logger *zap.Logger) *Prober {
	return &Prober{client: client, logger: logger.Named("prober")}
}

// Exists reports, per address, whether the account exists on-chain. The
// whole set goes out as one batched request.
func (p *Prober) Exists(ctx context.Context, addrs ...solana.PublicKey) ([]bool, error) {
	res, err := p.client.GetMultipleAccounts(ctx, addrs)
	if err != nil {
		return nil, &ProbeError{Account: "batch", Err: err}
	}
	out := make([]bool, len(addrs))
	for i := range addrs {
		if i < len(res.Value) && res.Value[i] != nil {
			out[i] = true
		}
	}
	return out, nil
}

// TokenBalance returns whether a token account exists and, if so, its raw
// balance.
func (p *Prober) TokenBalance(ctx context.Context, ata solana.PublicKey) (exists bool, balance uint64, err error) {
	balance, err = p.client.GetTokenAccountBalance(ctx, ata)
	if err != nil {
		if errors.Is(err, solbc.ErrAccountNotFound) {
			return false, 0, nil
		}
		return false, 0, &ProbeError{Account: ata.String(), Err: err}
	}
	return true, balance, nil
}

// SwapState probes everything the swap branch resolver needs, in parallel:
// badge existence, the market quote ATA (and its balance), and the user's
// quote and base ATAs.
func (p *Prober) SwapState(ctx context.Context, badge, marketQuoteATA, userQuoteATA, userBaseATA solana.PublicKey) (SwapState, error) {
	var state SwapState

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		exists, err := p.Exists(gctx, badge, userQuoteATA, userBaseATA)
		if err != nil {
			return err
		}
		state.BadgeExists = exists[0]
		state.UserQuoteATAExists = exists[1]
		state.UserBaseATAExists = exists[2]
		return nil
	})

	g.Go(func() error {
		exists, balance, err := p.TokenBalance(gctx, marketQuoteATA)
		if err != nil {
			return err
		}
		state.MarketQuoteATAExists = exists
		state.MarketQuoteBalance = balance
		return nil
	})

	if err := g.Wait(); err != nil {
		return SwapState{}, err
	}

	p.logger.Debug("probed swap state",
		zap.Bool("badge_exists", state.BadgeExists),
		zap.Bool("market_quote_ata", state.MarketQuoteATAExists),
		zap.Uint64("market_quote_balance", state.MarketQuoteBalance),
		zap.Bool("user_quote_ata", state.UserQuoteATAExists),
		zap.Bool("user_base_ata", state.UserBaseATAExists))

	return state, nil
}

// VestingState probes the two accounts the vesting bootstrap depends on.
func (p *Prober) VestingState(ctx context.Context, userBaseATA, stakePosition solana.PublicKey) (VestingState, error) {
	exists, err := p.Exists(ctx, userBaseATA, stakePosition)
	if err != nil {
		return VestingState{}, err
	}
	return VestingState{
		UserBaseATAExists:   exists[0],
		StakePositionExists: exists[1],
	}, nil
}
