package launchpad

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivationsAreDeterministic(t *testing.T) {
	addrs := NewAddresses(DefaultProgramID, DefaultConfigAccount)
	baseMint := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()

	market1, bump1, err := addrs.DeriveMarket(baseMint)
	require.NoError(t, err)
	market2, bump2, err := addrs.DeriveMarket(baseMint)
	require.NoError(t, err)
	assert.Equal(t, market1, market2)
	assert.Equal(t, bump1, bump2)

	pos1, _, err := addrs.DeriveStakePosition(market1, user)
	require.NoError(t, err)
	pos2, _, err := addrs.DeriveStakePosition(market1, user)
	require.NoError(t, err)
	assert.Equal(t, pos1, pos2)
}

func TestDerivationsDifferPerInput(t *testing.T) {
	addrs := NewAddresses(DefaultProgramID, DefaultConfigAccount)

	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	marketA, _, err := addrs.DeriveMarket(mintA)
	require.NoError(t, err)
	marketB, _, err := addrs.DeriveMarket(mintB)
	require.NoError(t, err)
	assert.NotEqual(t, marketA, marketB)

	stakingA, _, err := addrs.DeriveStaking(marketA)
	require.NoError(t, err)
	stakingB, _, err := addrs.DeriveStaking(marketB)
	require.NoError(t, err)
	assert.NotEqual(t, stakingA, stakingB)
}

func TestDeriveATAMatchesCanonical(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	ata, err := DeriveATA(owner, mint)
	require.NoError(t, err)

	canonical, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, canonical, ata)
}

func TestDeriveMetadataUsesMetaplexProgram(t *testing.T) {
	mint := solana.NewWallet().PublicKey()

	metadata, _, err := DeriveMetadata(mint)
	require.NoError(t, err)

	expected, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(SeedMetadata), MetadataProgramID.Bytes(), mint.Bytes()},
		MetadataProgramID,
	)
	require.NoError(t, err)
	assert.Equal(t, expected, metadata)
}

func TestEventAuthorityDerivedOnce(t *testing.T) {
	addrs := NewAddresses(DefaultProgramID, DefaultConfigAccount)
	c, err := NewComposer(addrs)
	require.NoError(t, err)

	direct, _, err := addrs.DeriveEventAuthority()
	require.NoError(t, err)
	assert.Equal(t, direct, c.EventAuthority())
	assert.False(t, c.EventAuthority().IsZero())
}
