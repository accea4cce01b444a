package launchpad

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer(NewAddresses(DefaultProgramID, DefaultConfigAccount))
	require.NoError(t, err)
	return c
}

func testSwapAccounts(t *testing.T, c *Composer) (SwapAccounts, solana.PublicKey) {
	t.Helper()
	baseMint := solana.NewWallet().PublicKey()
	market, _, err := c.Addresses().DeriveMarket(baseMint)
	require.NoError(t, err)

	m := &Market{
		Config:    DefaultConfigAccount,
		BaseMint:  baseMint,
		QuoteMint: WSOLMint,
	}
	user := solana.NewWallet().PublicKey()
	serverAuth := solana.NewWallet().PublicKey()
	feeRecipient := solana.NewWallet().PublicKey()

	accounts, err := c.DeriveSwapAccounts(market, m, user, serverAuth, feeRecipient)
	require.NoError(t, err)
	return accounts, user
}

func instructionData(t *testing.T, ix solana.Instruction) []byte {
	t.Helper()
	data, err := ix.Data()
	require.NoError(t, err)
	return data
}

func hasDiscriminator(t *testing.T, ix solana.Instruction, disc []byte) bool {
	t.Helper()
	data := instructionData(t, ix)
	return len(data) >= 8 && bytes.Equal(data[:8], disc)
}

func TestSwapParamsValidate(t *testing.T) {
	valid := SwapParams{
		Market:    solana.NewWallet().PublicKey(),
		User:      solana.NewWallet().PublicKey(),
		Action:    ActionBuy,
		TradeType: TradeExactInput,
		Amount:    1000,
	}
	assert.NoError(t, valid.Validate())

	zero := valid
	zero.Amount = 0
	assert.ErrorIs(t, zero.Validate(), ErrZeroAmount)

	badAction := valid
	badAction.Action = "short"
	assert.ErrorIs(t, badAction.Validate(), ErrUnsupportedAction)

	badMode := valid
	badMode.TradeType = "market"
	assert.ErrorIs(t, badMode.Validate(), ErrUnsupportedSwapMode)
}

func TestResolveSwapPlan(t *testing.T) {
	threshold := uint64(69_000_000_000)

	tests := []struct {
		name  string
		state SwapState
		want  SwapPlan
	}{
		{
			name:  "fresh market",
			state: SwapState{},
			want: SwapPlan{
				NeedsLock:           true,
				NeedsMarketQuoteATA: true,
				NeedsUserQuoteATA:   true,
				NeedsUserBaseATA:    true,
			},
		},
		{
			name: "warm market below threshold",
			state: SwapState{
				BadgeExists:          true,
				MarketQuoteATAExists: true,
				MarketQuoteBalance:   threshold - 1,
				UserQuoteATAExists:   true,
				UserBaseATAExists:    true,
			},
			want: SwapPlan{},
		},
		{
			name: "at graduation threshold",
			state: SwapState{
				BadgeExists:          true,
				MarketQuoteATAExists: true,
				MarketQuoteBalance:   threshold,
				UserQuoteATAExists:   true,
				UserBaseATAExists:    true,
			},
			want: SwapPlan{ShouldFree: true},
		},
		{
			name: "balance irrelevant without market quote ATA",
			state: SwapState{
				BadgeExists:        true,
				MarketQuoteBalance: threshold * 2,
				UserQuoteATAExists: true,
				UserBaseATAExists:  true,
			},
			want: SwapPlan{NeedsMarketQuoteATA: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSwapPlan(tt.state, threshold))
		})
	}
}

func TestDefaultThreshold(t *testing.T) {
	assert.Equal(t, uint64(990), DefaultThreshold(1000, true))
	assert.Equal(t, uint64(1010), DefaultThreshold(1000, false))

	// floor semantics on non-round amounts
	assert.Equal(t, uint64(99), DefaultThreshold(101, true))
	assert.Equal(t, uint64(102), DefaultThreshold(101, false))

	// no overflow near the top of the range
	big := uint64(18_000_000_000_000_000_000)
	assert.Equal(t, big/100*99, DefaultThreshold(big, true))
}

func TestComposeSwapFreshMarket(t *testing.T) {
	c := testComposer(t)
	accounts, _ := testSwapAccounts(t, c)

	plan := SwapPlan{
		NeedsLock:           true,
		NeedsMarketQuoteATA: true,
		NeedsUserQuoteATA:   true,
		NeedsUserBaseATA:    true,
	}
	params := SwapParams{
		Market:    accounts.Market,
		User:      solana.NewWallet().PublicKey(),
		Action:    ActionBuy,
		TradeType: TradeExactInput,
		Amount:    1_000_000,
	}

	comp, err := c.ComposeSwap(plan, accounts, params)
	require.NoError(t, err)
	require.Len(t, comp.Instructions, 5)

	assert.True(t, hasDiscriminator(t, comp.Instructions[0], lockMarketDiscriminator))
	assert.Equal(t, AssociatedTokenProgramID, comp.Instructions[1].ProgramID())
	assert.Equal(t, AssociatedTokenProgramID, comp.Instructions[2].ProgramID())
	assert.Equal(t, AssociatedTokenProgramID, comp.Instructions[3].ProgramID())
	assert.True(t, hasDiscriminator(t, comp.Instructions[4], permissionedSwapDiscriminator))

	// pre-graduation swaps are signed by the server swap authority
	assert.Equal(t, accounts.ServerSwapAuth, comp.SwapAuthority)

	for _, ix := range comp.Instructions {
		assert.False(t, hasDiscriminator(t, ix, freeMarketDiscriminator))
	}
}

func TestComposeSwapGraduation(t *testing.T) {
	c := testComposer(t)
	accounts, _ := testSwapAccounts(t, c)

	user := solana.NewWallet().PublicKey()
	params := SwapParams{
		Market:    accounts.Market,
		User:      user,
		Action:    ActionSell,
		TradeType: TradeExactInput,
		Amount:    500,
	}

	comp, err := c.ComposeSwap(SwapPlan{ShouldFree: true}, accounts, params)
	require.NoError(t, err)
	require.Len(t, comp.Instructions, 2)

	assert.True(t, hasDiscriminator(t, comp.Instructions[0], freeMarketDiscriminator))
	assert.True(t, hasDiscriminator(t, comp.Instructions[1], permissionedSwapDiscriminator))

	// freed markets swap under the user's own authority
	assert.Equal(t, user, comp.SwapAuthority)
}

func TestComposeSwapCreationPrecedesUse(t *testing.T) {
	c := testComposer(t)
	accounts, user := testSwapAccounts(t, c)

	plan := SwapPlan{
		NeedsLock:           true,
		NeedsMarketQuoteATA: true,
		NeedsUserQuoteATA:   true,
		NeedsUserBaseATA:    true,
	}
	params := SwapParams{
		Market:    accounts.Market,
		User:      user,
		Action:    ActionBuy,
		TradeType: TradeExactInput,
		Amount:    42,
	}

	comp, err := c.ComposeSwap(plan, accounts, params)
	require.NoError(t, err)

	swapIdx := len(comp.Instructions) - 1
	created := map[solana.PublicKey]int{}
	for i, ix := range comp.Instructions[:swapIdx] {
		if ix.ProgramID().Equals(AssociatedTokenProgramID) {
			created[ix.Accounts()[1].PublicKey] = i
		}
	}
	require.Len(t, created, 3)

	// every ATA the swap references must be created earlier in the list
	for ata, idx := range created {
		found := false
		for _, meta := range comp.Instructions[swapIdx].Accounts() {
			if meta.PublicKey.Equals(ata) {
				found = true
			}
		}
		assert.True(t, found, "created ATA %s not referenced by swap", ata)
		assert.Less(t, idx, swapIdx)
	}
}

func TestComposeSwapDefaultThresholdApplied(t *testing.T) {
	c := testComposer(t)
	accounts, _ := testSwapAccounts(t, c)

	params := SwapParams{
		Market:    accounts.Market,
		User:      solana.NewWallet().PublicKey(),
		Action:    ActionBuy,
		TradeType: TradeExactInput,
		Amount:    1000,
	}

	comp, err := c.ComposeSwap(SwapPlan{}, accounts, params)
	require.NoError(t, err)
	require.Len(t, comp.Instructions, 1)

	data := instructionData(t, comp.Instructions[0])
	require.Len(t, data, 8+1+1+8+8)
	assert.Equal(t, byte(1), data[8], "isBuy")
	assert.Equal(t, byte(0), data[9], "exactOutput")
	assert.Equal(t, uint64(1000), binary.LittleEndian.Uint64(data[10:18]))
	assert.Equal(t, uint64(990), binary.LittleEndian.Uint64(data[18:26]))
}

func TestComposeSwapExplicitThresholdKept(t *testing.T) {
	c := testComposer(t)
	accounts, _ := testSwapAccounts(t, c)

	params := SwapParams{
		Market:    accounts.Market,
		User:      solana.NewWallet().PublicKey(),
		Action:    ActionSell,
		TradeType: TradeExactOutput,
		Amount:    1000,
		Threshold: 1234,
	}

	comp, err := c.ComposeSwap(SwapPlan{}, accounts, params)
	require.NoError(t, err)

	data := instructionData(t, comp.Instructions[0])
	assert.Equal(t, byte(0), data[8], "isBuy")
	assert.Equal(t, byte(1), data[9], "exactOutput")
	assert.Equal(t, uint64(1234), binary.LittleEndian.Uint64(data[18:26]))
}
