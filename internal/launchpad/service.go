// =============================
// File: internal/launchpad/service.go
// =============================
package launchpad

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/solport/launchpad/internal/solbc"
	"github.com/solport/launchpad/internal/transaction"
	"github.com/solport/launchpad/internal/wallet"
)

const lamportsPerSOL = 1_000_000_000

// ServiceConfig carries the deployment constants the service branches on.
// These are externalized configuration, not protocol invariants.
type ServiceConfig struct {
	GraduationThresholdRaw uint64
	CurvePercentMin        uint64
	CurvePercentMax        uint64
	MinRaiseSOL            uint64
	JustSendItRaiseSOL     uint64
	JustSendItCurvePercent uint64
	ProtocolFeeRecipient   solana.PublicKey
}

// Service is the conditional transaction builder: one logical pipeline per
// request over shared read-mostly state (RPC pool, program constants,
// server keys). No locking: the known probe/assemble race on concurrent
// swaps is resolved on-chain, not here.
type Service struct {
	pool          *solbc.Pool
	prober        *Prober
	composer      *Composer
	swapAuthority *wallet.Wallet
	cfg           ServiceConfig
	logger        *zap.Logger
}

// NewService wires the builder pipeline.
func NewService(pool *solbc.Pool, composer *Composer, swapAuthority *wallet.Wallet, cfg ServiceConfig, logger *zap.Logger) *Service {
	return &Service{
		pool:          pool,
		prober:        NewProber(pool.Primary(), logger),
		composer:      composer,
		swapAuthority: swapAuthority,
		cfg:           cfg,
		logger:        logger.Named("launchpad"),
	}
}

// CreateMarketRequest extends the composer params with the optional
// auto-curve settings of the launch flow.
type CreateMarketRequest struct {
	CreateMarketParams
	TargetRaiseLamports uint64
	CurvePercent        uint64
	WithCurve           bool
	JustSendIt          bool
}

// CreateMarketResult is returned to the HTTP layer.
type CreateMarketResult struct {
	Transaction   string
	MarketAddress solana.PublicKey
	BaseTokenMint solana.PublicKey
}

// CreateMarket composes the market-creation transaction. The ephemeral
// base mint partial-signs; the creator signs client-side.
func (s *Service) CreateMarket(ctx context.Context, req CreateMarketRequest) (*CreateMarketResult, error) {
	if req.JustSendIt {
		req.TargetRaiseLamports = s.cfg.JustSendItRaiseSOL * lamportsPerSOL
		req.CurvePercent = s.cfg.JustSendItCurvePercent
		req.WithCurve = true
	}
	if req.WithCurve {
		if req.CurvePercent < s.cfg.CurvePercentMin || req.CurvePercent > s.cfg.CurvePercentMax {
			return nil, ErrCurvePercentBounds
		}
		if req.TargetRaiseLamports < s.cfg.MinRaiseSOL*lamportsPerSOL {
			return nil, fmt.Errorf("%w: need at least %d SOL", ErrMinRaiseNotMet, s.cfg.MinRaiseSOL)
		}
	}

	comp, err := s.composer.ComposeCreateMarket(req.CreateMarketParams)
	if err != nil {
		return nil, err
	}

	builder := transaction.NewBuilder().
		SetFeePayer(req.Creator).
		Add(comp.Instructions...).
		AddPartialSigner(comp.BaseMint.PrivateKey)

	if req.WithCurve {
		asks := GenerateAskCurve(CurveParams{
			TotalSupply:  req.TotalSupply,
			TargetRaise:  req.TargetRaiseLamports,
			CurvePercent: req.CurvePercent,
		})
		curveIxs, err := s.composer.ComposeSetCurve(SetCurveParams{
			Market:    comp.Market,
			Authority: req.Creator,
			Asks:      asks,
		})
		if err != nil {
			return nil, err
		}
		builder.Add(curveIxs...)
	}

	encoded, err := builder.BuildBase64(ctx, s.pool)
	if err != nil {
		return nil, err
	}

	s.logger.Info("composed market creation",
		zap.String("market", comp.Market.String()),
		zap.String("base_mint", comp.BaseMint.PublicKey.String()),
		zap.Bool("with_curve", req.WithCurve))

	return &CreateMarketResult{
		Transaction:   encoded,
		MarketAddress: comp.Market,
		BaseTokenMint: comp.BaseMint.PublicKey,
	}, nil
}

// Swap runs the full conditional pipeline of the permissioned swap:
// fetch market, derive, probe, resolve, compose, assemble, partial-sign
// with the server swap authority.
func (s *Service) Swap(ctx context.Context, params SwapParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	m, err := FetchMarket(ctx, s.pool.Primary(), params.Market)
	if err != nil {
		return "", err
	}

	accounts, err := s.composer.DeriveSwapAccounts(params.Market, m, params.User, s.swapAuthority.PublicKey, s.cfg.ProtocolFeeRecipient)
	if err != nil {
		return "", err
	}

	state, err := s.prober.SwapState(ctx, accounts.AuthorityBadge, accounts.MarketQuoteATA, accounts.UserQuoteATA, accounts.UserBaseATA)
	if err != nil {
		return "", err
	}

	plan := ResolveSwapPlan(state, s.cfg.GraduationThresholdRaw)
	comp, err := s.composer.ComposeSwap(plan, accounts, params)
	if err != nil {
		return "", err
	}

	s.logger.Info("composed swap",
		zap.String("market", params.Market.String()),
		zap.String("action", params.Action),
		zap.Bool("lock", plan.NeedsLock),
		zap.Bool("free", plan.ShouldFree),
		zap.String("swap_authority", comp.SwapAuthority.String()))

	return transaction.NewBuilder().
		SetFeePayer(params.User).
		Add(comp.Instructions...).
		AddPartialSigner(s.swapAuthority.PrivateKey).
		BuildBase64(ctx, s.pool)
}

// Stake composes the staking-pool creation transaction. The pool PDA is
// probed first: an existing pool is a domain error, not a duplicate
// create_staking instruction.
func (s *Service) Stake(ctx context.Context, market, user solana.PublicKey) (string, error) {
	staking, _, err := s.composer.Addresses().DeriveStaking(market)
	if err != nil {
		return "", err
	}
	exists, err := s.prober.Exists(ctx, staking)
	if err != nil {
		return "", err
	}

	instructions, err := s.composer.ComposeCreateStaking(market, user, exists[0])
	if err != nil {
		return "", err
	}

	return transaction.NewBuilder().
		SetFeePayer(user).
		Add(instructions...).
		BuildBase64(ctx, s.pool)
}

// VestResult is returned to the HTTP layer; the ephemeral vesting plan
// address is the only way for the caller to learn the new account.
type VestResult struct {
	Transaction          string
	EphemeralVestingPlan solana.PublicKey
}

// Vest composes the auto-bootstrap vesting transaction. The ephemeral
// vesting-plan key partial-signs before the transaction leaves the server.
func (s *Service) Vest(ctx context.Context, params VestParams) (*VestResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	m, err := FetchMarket(ctx, s.pool.Primary(), params.Market)
	if err != nil {
		return nil, err
	}

	userBaseATA, err := DeriveATA(params.User, m.BaseMint)
	if err != nil {
		return nil, err
	}
	position, _, err := s.composer.Addresses().DeriveStakePosition(params.Market, params.User)
	if err != nil {
		return nil, err
	}

	state, err := s.prober.VestingState(ctx, userBaseATA, position)
	if err != nil {
		return nil, err
	}

	comp, err := s.composer.ComposeVesting(params, m.BaseMint, state)
	if err != nil {
		return nil, err
	}

	encoded, err := transaction.NewBuilder().
		SetFeePayer(params.User).
		Add(comp.Instructions...).
		AddPartialSigner(comp.VestingPlan.PrivateKey).
		BuildBase64(ctx, s.pool)
	if err != nil {
		return nil, err
	}

	return &VestResult{
		Transaction:          encoded,
		EphemeralVestingPlan: comp.VestingPlan.PublicKey,
	}, nil
}

// Release composes the vesting release transaction. No ephemeral signer:
// the plan address is supplied, not created.
func (s *Service) Release(ctx context.Context, params ReleaseParams) (string, error) {
	m, err := FetchMarket(ctx, s.pool.Primary(), params.Market)
	if err != nil {
		return "", err
	}

	instructions, err := s.composer.ComposeRelease(params, m.BaseMint)
	if err != nil {
		return "", err
	}

	return transaction.NewBuilder().
		SetFeePayer(params.User).
		Add(instructions...).
		BuildBase64(ctx, s.pool)
}

// SetCurve composes the set_market_prices transaction.
func (s *Service) SetCurve(ctx context.Context, params SetCurveParams) (string, error) {
	instructions, err := s.composer.ComposeSetCurve(params)
	if err != nil {
		return "", err
	}

	return transaction.NewBuilder().
		SetFeePayer(params.Authority).
		Add(instructions...).
		BuildBase64(ctx, s.pool)
}

// FreeMarketResult reports the server-executed free_market call.
type FreeMarketResult struct {
	Signature string
	Logs      []string
}

// FreeMarket executes free_market directly: the server swap authority is
// the sole required signer, so this is the one path that signs fully,
// simulates, and broadcasts. Simulation errors surface verbatim.
func (s *Service) FreeMarket(ctx context.Context, market solana.PublicKey) (*FreeMarketResult, error) {
	badge, _, err := s.composer.Addresses().DeriveSwapAuthorityBadge(market, s.swapAuthority.PublicKey)
	if err != nil {
		return nil, err
	}

	ix := NewFreeMarketInstruction(
		s.swapAuthority.PublicKey, market, badge,
		s.composer.EventAuthority(), s.composer.Addresses().ProgramID,
	)

	tx, err := transaction.NewBuilder().
		SetFeePayer(s.swapAuthority.PublicKey).
		Add(ix).
		Build(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	if err := s.swapAuthority.SignTransaction(tx); err != nil {
		return nil, fmt.Errorf("failed to sign free_market transaction: %w", err)
	}

	sim, err := s.pool.Primary().SimulateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	if sim.Err != nil {
		return nil, fmt.Errorf("market free failed: %v", sim.Err)
	}

	sig, err := s.pool.Primary().SendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := s.pool.Primary().WaitForConfirmation(ctx, sig); err != nil {
		return nil, fmt.Errorf("market free failed: %w", err)
	}

	s.logger.Info("market freed",
		zap.String("market", market.String()),
		zap.String("signature", sig.String()))

	return &FreeMarketResult{Signature: sig.String(), Logs: sim.Logs}, nil
}

// GraduationStatus reports how far a market is from graduating.
type GraduationStatus struct {
	BaseTokenBalance     uint64
	QuoteTokenBalance    uint64
	BaseMint             solana.PublicKey
	QuoteMint            solana.PublicKey
	Locked               bool
	Graduated            bool
	GraduationPercentage float64
}

// Graduation probes the market's token balances and compares the quote
// balance against the configured threshold.
func (s *Service) Graduation(ctx context.Context, market solana.PublicKey) (*GraduationStatus, error) {
	m, err := FetchMarket(ctx, s.pool.Primary(), market)
	if err != nil {
		return nil, err
	}

	marketBaseATA, err := DeriveATA(market, m.BaseMint)
	if err != nil {
		return nil, err
	}
	marketQuoteATA, err := DeriveATA(market, m.QuoteMint)
	if err != nil {
		return nil, err
	}

	_, baseBalance, err := s.prober.TokenBalance(ctx, marketBaseATA)
	if err != nil {
		return nil, err
	}
	_, quoteBalance, err := s.prober.TokenBalance(ctx, marketQuoteATA)
	if err != nil {
		return nil, err
	}

	pct := decimal.NewFromInt(int64(quoteBalance)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(s.cfg.GraduationThresholdRaw))).
		Round(2)
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		pct = decimal.NewFromInt(100)
	}

	return &GraduationStatus{
		BaseTokenBalance:     baseBalance,
		QuoteTokenBalance:    quoteBalance,
		BaseMint:             m.BaseMint,
		QuoteMint:            m.QuoteMint,
		Locked:               m.Locked,
		Graduated:            quoteBalance >= s.cfg.GraduationThresholdRaw,
		GraduationPercentage: pct.InexactFloat64(),
	}, nil
}
