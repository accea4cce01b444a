package launchpad

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVestParamsValidate(t *testing.T) {
	valid := VestParams{
		Market:        solana.NewWallet().PublicKey(),
		User:          solana.NewWallet().PublicKey(),
		Amount:        1000,
		Duration:      86400,
		CliffDuration: 3600,
	}
	assert.NoError(t, valid.Validate())

	zero := valid
	zero.Amount = 0
	assert.ErrorIs(t, zero.Validate(), ErrZeroAmount)

	noDuration := valid
	noDuration.Duration = 0
	assert.Error(t, noDuration.Validate())

	longCliff := valid
	longCliff.CliffDuration = valid.Duration + 1
	assert.Error(t, longCliff.Validate())
}

func TestComposeVestingBootstrapsMissingAccounts(t *testing.T) {
	c := testComposer(t)
	baseMint := solana.NewWallet().PublicKey()
	params := VestParams{
		Market:   solana.NewWallet().PublicKey(),
		User:     solana.NewWallet().PublicKey(),
		Amount:   5000,
		Duration: 86400,
	}

	comp, err := c.ComposeVesting(params, baseMint, VestingState{})
	require.NoError(t, err)
	require.Len(t, comp.Instructions, 3)

	assert.Equal(t, AssociatedTokenProgramID, comp.Instructions[0].ProgramID())
	assert.True(t, hasDiscriminator(t, comp.Instructions[1], createStakePositionDiscriminator))
	assert.True(t, hasDiscriminator(t, comp.Instructions[2], createVestingPlanDiscriminator))
	require.NotNil(t, comp.VestingPlan)

	// the ephemeral vesting plan account is a required signer of the final
	// instruction
	var planIsSigner bool
	for _, meta := range comp.Instructions[2].Accounts() {
		if meta.PublicKey.Equals(comp.VestingPlan.PublicKey) {
			planIsSigner = meta.IsSigner
		}
	}
	assert.True(t, planIsSigner)
}

func TestComposeVestingSkipsExistingAccounts(t *testing.T) {
	c := testComposer(t)
	baseMint := solana.NewWallet().PublicKey()
	params := VestParams{
		Market:   solana.NewWallet().PublicKey(),
		User:     solana.NewWallet().PublicKey(),
		Amount:   5000,
		Duration: 86400,
	}
	state := VestingState{UserBaseATAExists: true, StakePositionExists: true}

	comp, err := c.ComposeVesting(params, baseMint, state)
	require.NoError(t, err)
	require.Len(t, comp.Instructions, 1)
	assert.True(t, hasDiscriminator(t, comp.Instructions[0], createVestingPlanDiscriminator))
}

func TestComposeVestingFreshPlanPerCall(t *testing.T) {
	c := testComposer(t)
	baseMint := solana.NewWallet().PublicKey()
	params := VestParams{
		Market:   solana.NewWallet().PublicKey(),
		User:     solana.NewWallet().PublicKey(),
		Amount:   1,
		Duration: 1,
	}

	first, err := c.ComposeVesting(params, baseMint, VestingState{})
	require.NoError(t, err)
	second, err := c.ComposeVesting(params, baseMint, VestingState{})
	require.NoError(t, err)
	assert.NotEqual(t, first.VestingPlan.PublicKey, second.VestingPlan.PublicKey)
}

func TestComposeReleaseRequiresPlan(t *testing.T) {
	c := testComposer(t)
	params := ReleaseParams{
		Market: solana.NewWallet().PublicKey(),
		User:   solana.NewWallet().PublicKey(),
	}
	_, err := c.ComposeRelease(params, solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrMissingVestingPlan)
}

func TestComposeRelease(t *testing.T) {
	c := testComposer(t)
	params := ReleaseParams{
		Market:      solana.NewWallet().PublicKey(),
		User:        solana.NewWallet().PublicKey(),
		VestingPlan: solana.NewWallet().PublicKey(),
	}

	instructions, err := c.ComposeRelease(params, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	require.Len(t, instructions, 1)
	assert.True(t, hasDiscriminator(t, instructions[0], releaseDiscriminator))

	// the supplied vesting plan is referenced but never a signer
	for _, meta := range instructions[0].Accounts() {
		if meta.PublicKey.Equals(params.VestingPlan) {
			assert.False(t, meta.IsSigner)
		}
	}
}

func TestComposeCreateStaking(t *testing.T) {
	c := testComposer(t)
	market := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()

	_, err := c.ComposeCreateStaking(market, user, true)
	assert.ErrorIs(t, err, ErrStakingExists)

	instructions, err := c.ComposeCreateStaking(market, user, false)
	require.NoError(t, err)
	require.Len(t, instructions, 1)
	assert.True(t, hasDiscriminator(t, instructions[0], createStakingDiscriminator))
}
