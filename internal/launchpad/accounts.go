// =============================
// File: internal/launchpad/accounts.go
// =============================
package launchpad

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solport/launchpad/internal/solbc"
)

// Market mirrors the on-chain market account: the trading venue for a
// (base, quote) pair, created once per base mint.
type Market struct {
	Discriminator [8]byte
	Config        solana.PublicKey
	BaseMint      solana.PublicKey
	QuoteMint     solana.PublicKey
	Locked        bool
}

const marketAccountMinLen = 8 + 32*3 + 1

// ParseMarket decodes the raw market account data.
func ParseMarket(data []byte) (*Market, error) {
	if len(data) < marketAccountMinLen {
		return nil, fmt.Errorf("invalid market data: %d bytes, want at least %d", len(data), marketAccountMinLen)
	}

	m := &Market{}
	copy(m.Discriminator[:], data[0:8])
	m.Config = solana.PublicKeyFromBytes(data[8:40])
	m.BaseMint = solana.PublicKeyFromBytes(data[40:72])
	m.QuoteMint = solana.PublicKeyFromBytes(data[72:104])
	m.Locked = data[104] != 0
	return m, nil
}

// FetchMarket loads and parses a market account. The swap and vesting
// paths need this to learn the market's config reference and base mint
// before any address can be derived.
func FetchMarket(ctx context.Context, client *solbc.Client, market solana.PublicKey) (*Market, error) {
	accountInfo, err := client.GetAccountInfo(ctx, market)
	if err != nil {
		if solbc.IsAccountNotFoundError(err) {
			return nil, ErrMarketNotFound
		}
		return nil, &ProbeError{Account: market.String(), Err: err}
	}
	if accountInfo == nil || accountInfo.Value == nil {
		return nil, ErrMarketNotFound
	}
	return ParseMarket(accountInfo.Value.Data.GetBinary())
}
