// =============================
// File: internal/launchpad/stake.go
// =============================
package launchpad

import (
	"github.com/gagliardetto/solana-go"
)

// ComposeCreateStaking builds create_staking for the market with the user
// as payer. stakingExists comes from a prior probe: composing against an
// already-initialized pool is rejected here rather than left to fail
// on-chain with a duplicate-creation error.
func (c *Composer) ComposeCreateStaking(market, user solana.PublicKey, stakingExists bool) ([]solana.Instruction, error) {
	if stakingExists {
		return nil, ErrStakingExists
	}

	staking, _, err := c.addrs.DeriveStaking(market)
	if err != nil {
		return nil, err
	}

	ix := NewCreateStakingInstruction(user, market, staking, c.eventAuthority, c.addrs.ProgramID)
	return []solana.Instruction{ix}, nil
}
