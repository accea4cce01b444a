// =============================
// File: internal/launchpad/vesting.go
// =============================
package launchpad

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solport/launchpad/internal/wallet"
)

// VestParams are the typed parameters of a vesting-plan request.
type VestParams struct {
	Market        solana.PublicKey
	User          solana.PublicKey
	Amount        uint64
	StartTime     int64
	Duration      int64
	CliffDuration int64
}

// Validate rejects malformed parameters before any probe or instruction.
func (p VestParams) Validate() error {
	if p.Amount == 0 {
		return ErrZeroAmount
	}
	if p.Duration <= 0 {
		return fmt.Errorf("vesting duration must be positive")
	}
	if p.CliffDuration < 0 || p.CliffDuration > p.Duration {
		return fmt.Errorf("cliff duration must be within [0, duration]")
	}
	return nil
}

// VestingState is the probed state the vesting bootstrap depends on.
type VestingState struct {
	UserBaseATAExists   bool
	StakePositionExists bool
}

// VestingComposition carries the ordered instruction list plus the
// ephemeral vesting-plan keypair that must co-sign the transaction.
type VestingComposition struct {
	Instructions []solana.Instruction
	VestingPlan  *wallet.Ephemeral
}

// ComposeVesting builds the auto-bootstrap vesting list: conditionally
// prepend the user base ATA creation and the stake position creation,
// always append create_vesting_plan. Every account an instruction
// references is created earlier in the same list.
func (c *Composer) ComposeVesting(params VestParams, baseMint solana.PublicKey, state VestingState) (*VestingComposition, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	staking, _, err := c.addrs.DeriveStaking(params.Market)
	if err != nil {
		return nil, err
	}
	position, _, err := c.addrs.DeriveStakePosition(params.Market, params.User)
	if err != nil {
		return nil, err
	}
	marketBaseATA, err := DeriveATA(params.Market, baseMint)
	if err != nil {
		return nil, err
	}
	userBaseATA, err := DeriveATA(params.User, baseMint)
	if err != nil {
		return nil, err
	}

	vestingPlan, err := wallet.NewEphemeral()
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction

	if !state.UserBaseATAExists {
		ix, err := NewCreateATAInstruction(params.User, params.User, baseMint)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ix)
	}
	if !state.StakePositionExists {
		instructions = append(instructions, NewCreateStakePositionInstruction(
			params.User, params.Market, staking, position,
			c.eventAuthority, c.addrs.ProgramID,
		))
	}

	instructions = append(instructions, NewCreateVestingPlanInstruction(
		VestingPlanAccounts{
			User:           params.User,
			Market:         params.Market,
			Staking:        staking,
			StakePosition:  position,
			VestingPlan:    vestingPlan.PublicKey,
			UserBaseATA:    userBaseATA,
			MarketBaseATA:  marketBaseATA,
			EventAuthority: c.eventAuthority,
			Program:        c.addrs.ProgramID,
		},
		VestingPlanArgs{
			StartTime:     params.StartTime,
			TotalAmount:   params.Amount,
			Duration:      params.Duration,
			CliffDuration: params.CliffDuration,
		},
	))

	return &VestingComposition{
		Instructions: instructions,
		VestingPlan:  vestingPlan,
	}, nil
}

// ReleaseParams are the typed parameters of a release request. The vesting
// plan address is supplied by the caller, never created here, so no
// ephemeral signer is involved.
type ReleaseParams struct {
	Market      solana.PublicKey
	User        solana.PublicKey
	VestingPlan solana.PublicKey
}

// ComposeRelease builds the release instruction list.
func (c *Composer) ComposeRelease(params ReleaseParams, baseMint solana.PublicKey) ([]solana.Instruction, error) {
	if params.VestingPlan.IsZero() {
		return nil, ErrMissingVestingPlan
	}

	staking, _, err := c.addrs.DeriveStaking(params.Market)
	if err != nil {
		return nil, err
	}
	position, _, err := c.addrs.DeriveStakePosition(params.Market, params.User)
	if err != nil {
		return nil, err
	}
	marketBaseATA, err := DeriveATA(params.Market, baseMint)
	if err != nil {
		return nil, err
	}
	userBaseATA, err := DeriveATA(params.User, baseMint)
	if err != nil {
		return nil, err
	}

	ix := NewReleaseInstruction(ReleaseAccounts{
		User:           params.User,
		Market:         params.Market,
		Staking:        staking,
		StakePosition:  position,
		VestingPlan:    params.VestingPlan,
		MarketBaseATA:  marketBaseATA,
		UserBaseATA:    userBaseATA,
		EventAuthority: c.eventAuthority,
		Program:        c.addrs.ProgramID,
	})

	return []solana.Instruction{ix}, nil
}
