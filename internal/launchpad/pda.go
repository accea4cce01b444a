// =============================
// File: internal/launchpad/pda.go
// =============================
package launchpad

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Addresses bundles the program ids the derivations depend on. It is
// read-mostly and safe to share across requests.
type Addresses struct {
	ProgramID solana.PublicKey
	Config    solana.PublicKey
}

// NewAddresses returns an Addresses helper for the given program and config.
func NewAddresses(programID, config solana.PublicKey) *Addresses {
	return &Addresses{ProgramID: programID, Config: config}
}

// DeriveMarket computes the market PDA for a base mint.
func (a *Addresses) DeriveMarket(baseMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(SeedMarket), baseMint.Bytes()},
		a.ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive market: %w", err)
	}
	return addr, bump, nil
}

// DeriveQuoteTokenBadge computes the badge PDA marking a quote mint as
// approved for the config.
func (a *Addresses) DeriveQuoteTokenBadge(quoteMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(SeedQuoteTokenBadge), a.Config.Bytes(), quoteMint.Bytes()},
		a.ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive quote token badge: %w", err)
	}
	return addr, bump, nil
}

// DeriveStaking computes the per-market staking pool PDA.
func (a *Addresses) DeriveStaking(market solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(SeedMarketStaking), market.Bytes()},
		a.ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive staking: %w", err)
	}
	return addr, bump, nil
}

// DeriveStakePosition computes the per-user position PDA for a market.
func (a *Addresses) DeriveStakePosition(market, user solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(SeedStakePosition), market.Bytes(), user.Bytes()},
		a.ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive stake position: %w", err)
	}
	return addr, bump, nil
}

// DeriveSwapAuthorityBadge computes the badge PDA recording which key may
// execute permissioned swaps against the market.
func (a *Addresses) DeriveSwapAuthorityBadge(market, authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(SeedSwapAuthorityBadge), market.Bytes(), authority.Bytes()},
		a.ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive swap authority badge: %w", err)
	}
	return addr, bump, nil
}

// DeriveEventAuthority computes the program's event authority PDA.
func (a *Addresses) DeriveEventAuthority() (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(SeedEventAuthority)},
		a.ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive event authority: %w", err)
	}
	return addr, bump, nil
}

// DeriveMetadata computes the Metaplex metadata PDA for a mint. The seeds
// belong to the external metadata program, not ours.
func DeriveMetadata(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(SeedMetadata), MetadataProgramID.Bytes(), mint.Bytes()},
		MetadataProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive metadata: %w", err)
	}
	return addr, bump, nil
}

// DeriveATA computes the associated token account for (owner, mint).
func DeriveATA(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive associated token account: %w", err)
	}
	return ata, nil
}
