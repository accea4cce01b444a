// =============================
// File: internal/launchpad/curve.go
// =============================
package launchpad

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// DeriveBids computes the legacy auto-derived bid schedule from an ask
// schedule: bid[i] = ask[i] * 99 / 100, floor division.
func DeriveBids(asks []uint64) []uint64 {
	bids := make([]uint64, len(asks))
	for i, ask := range asks {
		bids[i] = ask/100*99 + ask%100*99/100
	}
	return bids
}

// CurveParams describe an auto-generated bonding curve: curvePercent of
// the supply is sold on the curve to raise targetRaise quote units.
type CurveParams struct {
	TotalSupply  uint64
	TargetRaise  uint64 // raw quote units (lamports for a WSOL quote)
	CurvePercent uint64 // share of supply on the curve, [20, 80]
	Points       int    // number of price steps; 0 means the default
}

const defaultCurvePoints = 16

// pricePrecision scales prices to raw quote units per 1e9 base units.
var pricePrecision = decimal.NewFromInt(1_000_000_000)

// GenerateAskCurve produces a linearly increasing ask schedule whose
// average price over the curve allocation raises approximately
// TargetRaise. The first point is half the average price, the last three
// halves of it; results are floored to integers.
func GenerateAskCurve(params CurveParams) []uint64 {
	// a one-point curve has no step; fall back to the default resolution
	points := params.Points
	if points < 2 {
		points = defaultCurvePoints
	}

	curveSupply := params.TotalSupply / 100 * params.CurvePercent
	if curveSupply == 0 {
		curveSupply = 1
	}

	avg := decimal.NewFromInt(int64(params.TargetRaise)).
		Mul(pricePrecision).
		Div(decimal.NewFromInt(int64(curveSupply)))

	lo := avg.Div(decimal.NewFromInt(2))
	step := avg.Div(decimal.NewFromInt(int64(points - 1)))

	asks := make([]uint64, points)
	for i := 0; i < points; i++ {
		price := lo.Add(step.Mul(decimal.NewFromInt(int64(i)))).Floor()
		if price.Sign() <= 0 {
			asks[i] = 1
			continue
		}
		asks[i] = uint64(price.IntPart())
	}
	return asks
}

// SetCurveParams are the typed parameters of a set-curve request. When
// Bids is empty the legacy derivation applies.
type SetCurveParams struct {
	Market    solana.PublicKey
	Authority solana.PublicKey
	Asks      []uint64
	Bids      []uint64
}

// ComposeSetCurve builds the set_market_prices instruction. Caller-supplied
// bid arrays pass through untouched; absent ones are derived from the asks.
func (c *Composer) ComposeSetCurve(params SetCurveParams) ([]solana.Instruction, error) {
	if len(params.Asks) == 0 {
		return nil, ErrInvalidCurveLength
	}
	bids := params.Bids
	if len(bids) == 0 {
		bids = DeriveBids(params.Asks)
	}
	if len(bids) != len(params.Asks) {
		return nil, ErrInvalidCurveLength
	}

	ix := NewSetMarketPricesInstruction(
		params.Authority, c.addrs.Config, params.Market,
		c.eventAuthority, c.addrs.ProgramID,
		params.Asks, bids,
	)
	return []solana.Instruction{ix}, nil
}
