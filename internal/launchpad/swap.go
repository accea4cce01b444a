// =============================
// File: internal/launchpad/swap.go
// =============================
package launchpad

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Swap actions and trade types as they appear on the wire.
const (
	ActionBuy  = "buy"
	ActionSell = "sell"

	TradeExactInput  = "exactInput"
	TradeExactOutput = "exactOutput"
)

// SwapParams are the typed parameters of a swap request.
type SwapParams struct {
	Market    solana.PublicKey
	User      solana.PublicKey
	Action    string
	TradeType string
	Amount    uint64
	// Threshold is the caller-supplied slippage bound; zero means "apply
	// the 1% default".
	Threshold uint64
}

// Validate rejects malformed parameters before any probe or instruction.
func (p SwapParams) Validate() error {
	if p.Amount == 0 {
		return ErrZeroAmount
	}
	if p.Action != ActionBuy && p.Action != ActionSell {
		return fmt.Errorf("%w: got %q", ErrUnsupportedAction, p.Action)
	}
	if p.TradeType != TradeExactInput && p.TradeType != TradeExactOutput {
		return fmt.Errorf("%w: got %q", ErrUnsupportedSwapMode, p.TradeType)
	}
	return nil
}

// IsBuy reports whether the action is a buy.
func (p SwapParams) IsBuy() bool { return p.Action == ActionBuy }

// SwapState is the probed on-chain state the swap branch decision depends
// on. Produced by Prober.SwapState; consumed by ResolveSwapPlan.
type SwapState struct {
	BadgeExists          bool
	MarketQuoteATAExists bool
	MarketQuoteBalance   uint64
	UserQuoteATAExists   bool
	UserBaseATAExists    bool
}

// SwapPlan is the pure decision derived from SwapState: which optional
// instructions to include and which authority signs the swap.
type SwapPlan struct {
	NeedsLock           bool
	NeedsMarketQuoteATA bool
	NeedsUserQuoteATA   bool
	NeedsUserBaseATA    bool
	ShouldFree          bool
}

// ResolveSwapPlan maps probed state to a plan. graduationThreshold is the
// raw quote balance at which the market graduates to permissionless
// swapping; it is configuration, not a protocol invariant.
//
// Two concurrent swaps may both resolve ShouldFree and both carry a
// free_market instruction; the second simply fails on-chain.
func ResolveSwapPlan(state SwapState, graduationThreshold uint64) SwapPlan {
	return SwapPlan{
		NeedsLock:           !state.BadgeExists,
		NeedsMarketQuoteATA: !state.MarketQuoteATAExists,
		NeedsUserQuoteATA:   !state.UserQuoteATAExists,
		NeedsUserBaseATA:    !state.UserBaseATAExists,
		ShouldFree:          state.MarketQuoteATAExists && state.MarketQuoteBalance >= graduationThreshold,
	}
}

// DefaultThreshold computes the 1% slippage default: floor(amount*0.99)
// for buys, floor(amount*1.01) for sells. Integer arithmetic, split to
// avoid overflow on large amounts.
func DefaultThreshold(amount uint64, isBuy bool) uint64 {
	if isBuy {
		return amount/100*99 + amount%100*99/100
	}
	return amount/100*101 + amount%100*101/100
}

// SwapAccounts are the derived addresses the swap composition references.
// Config comes from the fetched market account, not from static
// configuration.
type SwapAccounts struct {
	Market         solana.PublicKey
	Config         solana.PublicKey
	BaseMint       solana.PublicKey
	QuoteMint      solana.PublicKey
	MarketBaseATA  solana.PublicKey
	MarketQuoteATA solana.PublicKey
	UserBaseATA    solana.PublicKey
	UserQuoteATA   solana.PublicKey
	ProtocolFeeATA solana.PublicKey
	AuthorityBadge solana.PublicKey
	ServerSwapAuth solana.PublicKey
}

// DeriveSwapAccounts computes every address the swap path touches, given
// the fetched market and the server swap authority.
func (c *Composer) DeriveSwapAccounts(market solana.PublicKey, m *Market, user, serverSwapAuth, protocolFeeRecipient solana.PublicKey) (SwapAccounts, error) {
	badge, _, err := c.addrs.DeriveSwapAuthorityBadge(market, serverSwapAuth)
	if err != nil {
		return SwapAccounts{}, err
	}
	marketBaseATA, err := DeriveATA(market, m.BaseMint)
	if err != nil {
		return SwapAccounts{}, err
	}
	marketQuoteATA, err := DeriveATA(market, m.QuoteMint)
	if err != nil {
		return SwapAccounts{}, err
	}
	userBaseATA, err := DeriveATA(user, m.BaseMint)
	if err != nil {
		return SwapAccounts{}, err
	}
	userQuoteATA, err := DeriveATA(user, m.QuoteMint)
	if err != nil {
		return SwapAccounts{}, err
	}
	protocolFeeATA, err := DeriveATA(protocolFeeRecipient, m.QuoteMint)
	if err != nil {
		return SwapAccounts{}, err
	}
	return SwapAccounts{
		Market:         market,
		Config:         m.Config,
		BaseMint:       m.BaseMint,
		QuoteMint:      m.QuoteMint,
		MarketBaseATA:  marketBaseATA,
		MarketQuoteATA: marketQuoteATA,
		UserBaseATA:    userBaseATA,
		UserQuoteATA:   userQuoteATA,
		ProtocolFeeATA: protocolFeeATA,
		AuthorityBadge: badge,
		ServerSwapAuth: serverSwapAuth,
	}, nil
}

// SwapComposition is the swap composer output: the ordered instruction
// list plus the authority that ends up on the swap instruction. The
// server key always partial-signs: it is either the swap authority
// itself or the signer of lock_market/free_market.
type SwapComposition struct {
	Instructions  []solana.Instruction
	SwapAuthority solana.PublicKey
}

// ComposeSwap turns (plan, accounts, params) into the fixed-order
// instruction list: lock, missing ATAs, free, then the swap itself.
// Pure; all I/O happened in the probe step.
func (c *Composer) ComposeSwap(plan SwapPlan, accounts SwapAccounts, params SwapParams) (*SwapComposition, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var instructions []solana.Instruction

	if plan.NeedsLock {
		instructions = append(instructions, NewLockMarketInstruction(
			params.User, accounts.Market, accounts.ServerSwapAuth, accounts.AuthorityBadge,
			c.eventAuthority, c.addrs.ProgramID,
		))
	}
	if plan.NeedsMarketQuoteATA {
		ix, err := NewCreateATAInstruction(params.User, accounts.Market, accounts.QuoteMint)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ix)
	}
	if plan.NeedsUserQuoteATA {
		ix, err := NewCreateATAInstruction(params.User, params.User, accounts.QuoteMint)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ix)
	}
	if plan.NeedsUserBaseATA {
		// Created before the swap so the program can credit/debit it.
		ix, err := NewCreateATAInstruction(params.User, params.User, accounts.BaseMint)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ix)
	}
	if plan.ShouldFree {
		instructions = append(instructions, NewFreeMarketInstruction(
			accounts.ServerSwapAuth, accounts.Market, accounts.AuthorityBadge,
			c.eventAuthority, c.addrs.ProgramID,
		))
	}

	swapAuthority := accounts.ServerSwapAuth
	if plan.ShouldFree {
		swapAuthority = params.User
	}

	threshold := params.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold(params.Amount, params.IsBuy())
	}

	instructions = append(instructions, NewPermissionedSwapInstruction(
		SwapInstructionAccounts{
			User:           params.User,
			Config:         accounts.Config,
			Market:         accounts.Market,
			BaseMint:       accounts.BaseMint,
			QuoteMint:      accounts.QuoteMint,
			MarketBaseATA:  accounts.MarketBaseATA,
			MarketQuoteATA: accounts.MarketQuoteATA,
			UserBaseATA:    accounts.UserBaseATA,
			UserQuoteATA:   accounts.UserQuoteATA,
			ProtocolFeeATA: accounts.ProtocolFeeATA,
			SwapAuthority:  swapAuthority,
			AuthorityBadge: accounts.AuthorityBadge,
			EventAuthority: c.eventAuthority,
			Program:        c.addrs.ProgramID,
		},
		SwapArgs{
			IsBuy:                params.IsBuy(),
			ExactOutput:          params.TradeType == TradeExactOutput,
			Amount:               params.Amount,
			OtherAmountThreshold: threshold,
		},
	))

	return &SwapComposition{
		Instructions:  instructions,
		SwapAuthority: swapAuthority,
	}, nil
}
