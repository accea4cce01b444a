// =============================
// File: internal/launchpad/market.go
// =============================
package launchpad

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solport/launchpad/internal/wallet"
)

// CreateMarketParams are the typed parameters of a market-creation request.
type CreateMarketParams struct {
	Creator     solana.PublicKey
	Name        string
	Symbol      string
	MetadataURI string
	QuoteMint   solana.PublicKey // zero value means WSOL
	TotalSupply uint64
}

// Validate rejects malformed parameters before any instruction is built.
func (p CreateMarketParams) Validate() error {
	if p.Creator.IsZero() {
		return fmt.Errorf("creator public key is required")
	}
	if p.Name == "" || p.Symbol == "" {
		return fmt.Errorf("token name and symbol are required")
	}
	if p.TotalSupply == 0 {
		return ErrZeroAmount
	}
	return nil
}

// CreateMarketComposition carries the composed instruction plus the
// addresses the caller needs back and the ephemeral mint that must
// co-sign.
type CreateMarketComposition struct {
	Instructions []solana.Instruction
	Market       solana.PublicKey
	BaseMint     *wallet.Ephemeral
}

// ComposeCreateMarket builds the create_market_with_spl instruction around
// a freshly generated base mint. Everything is created in this one
// transaction, so there is no state to probe.
func (c *Composer) ComposeCreateMarket(params CreateMarketParams) (*CreateMarketComposition, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	quoteMint := params.QuoteMint
	if quoteMint.IsZero() {
		quoteMint = WSOLMint
	}

	baseMint, err := wallet.NewEphemeral()
	if err != nil {
		return nil, err
	}

	market, _, err := c.addrs.DeriveMarket(baseMint.PublicKey)
	if err != nil {
		return nil, err
	}
	marketBaseATA, err := DeriveATA(market, baseMint.PublicKey)
	if err != nil {
		return nil, err
	}
	badge, _, err := c.addrs.DeriveQuoteTokenBadge(quoteMint)
	if err != nil {
		return nil, err
	}
	metadata, _, err := DeriveMetadata(baseMint.PublicKey)
	if err != nil {
		return nil, err
	}

	ix := NewCreateMarketWithSplInstruction(CreateMarketAccounts{
		Creator:         params.Creator,
		Config:          c.addrs.Config,
		Market:          market,
		BaseMint:        baseMint.PublicKey,
		QuoteMint:       quoteMint,
		MarketBaseATA:   marketBaseATA,
		QuoteTokenBadge: badge,
		Metadata:        metadata,
		EventAuthority:  c.eventAuthority,
		Program:         c.addrs.ProgramID,
	}, params.Name, params.Symbol, params.MetadataURI, params.TotalSupply)

	return &CreateMarketComposition{
		Instructions: []solana.Instruction{ix},
		Market:       market,
		BaseMint:     baseMint,
	}, nil
}
