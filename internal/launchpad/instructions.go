// =============================
// File: internal/launchpad/instructions.go
// =============================
package launchpad

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// appendU64 appends a little-endian uint64, the program's wire encoding for
// all numeric arguments.
func appendU64(data []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(data, buf[:]...)
}

func appendI64(data []byte, v int64) []byte {
	return appendU64(data, uint64(v))
}

// appendString appends a borsh string (u32 length prefix + bytes).
func appendString(data []byte, s string) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(len(s)))
	data = append(data, buf[:]...)
	return append(data, []byte(s)...)
}

// appendU64Vec appends a borsh vec<u64>.
func appendU64Vec(data []byte, vs []uint64) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(len(vs)))
	data = append(data, buf[:]...)
	for _, v := range vs {
		data = appendU64(data, v)
	}
	return data
}

// CreateMarketAccounts lists every account of create_market_with_spl in
// program order.
type CreateMarketAccounts struct {
	Creator         solana.PublicKey
	Config          solana.PublicKey
	Market          solana.PublicKey
	BaseMint        solana.PublicKey // ephemeral, co-signs
	QuoteMint       solana.PublicKey
	MarketBaseATA   solana.PublicKey
	QuoteTokenBadge solana.PublicKey
	Metadata        solana.PublicKey
	EventAuthority  solana.PublicKey
	Program         solana.PublicKey
}

// NewCreateMarketWithSplInstruction builds the single instruction that
// creates a market together with its SPL base mint and metadata.
func NewCreateMarketWithSplInstruction(accounts CreateMarketAccounts, name, symbol, uri string, totalSupply uint64) solana.Instruction {
	data := make([]byte, len(createMarketWithSplDiscriminator))
	copy(data, createMarketWithSplDiscriminator)
	data = appendString(data, name)
	data = appendString(data, symbol)
	data = appendString(data, uri)
	data = appendU64(data, totalSupply)

	// Account list must be in the exact order expected by the program.
	metas := []*solana.AccountMeta{
		{PublicKey: accounts.Creator, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.Config, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Market, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.BaseMint, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.QuoteMint, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.MarketBaseATA, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.QuoteTokenBadge, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Metadata, IsSigner: false, IsWritable: true},
		{PublicKey: MetadataProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: SysvarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(accounts.Program, metas, data)
}

// NewCreateStakingInstruction builds create_staking with the calling user
// as payer.
func NewCreateStakingInstruction(payer, market, staking, eventAuthority, program solana.PublicKey) solana.Instruction {
	data := make([]byte, len(createStakingDiscriminator))
	copy(data, createStakingDiscriminator)

	metas := []*solana.AccountMeta{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: market, IsSigner: false, IsWritable: false},
		{PublicKey: staking, IsSigner: false, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: eventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(program, metas, data)
}

// NewCreateStakePositionInstruction builds create_stake_position for the
// (market, user) pair.
func NewCreateStakePositionInstruction(user, market, staking, position, eventAuthority, program solana.PublicKey) solana.Instruction {
	data := make([]byte, len(createStakePositionDiscriminator))
	copy(data, createStakePositionDiscriminator)

	metas := []*solana.AccountMeta{
		{PublicKey: user, IsSigner: true, IsWritable: true},
		{PublicKey: market, IsSigner: false, IsWritable: false},
		{PublicKey: staking, IsSigner: false, IsWritable: true},
		{PublicKey: position, IsSigner: false, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: eventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(program, metas, data)
}

// VestingPlanArgs carries the linear/cliff schedule of create_vesting_plan.
type VestingPlanArgs struct {
	StartTime     int64
	TotalAmount   uint64
	Duration      int64
	CliffDuration int64
}

// VestingPlanAccounts lists every account of create_vesting_plan in
// program order.
type VestingPlanAccounts struct {
	User           solana.PublicKey
	Market         solana.PublicKey
	Staking        solana.PublicKey
	StakePosition  solana.PublicKey
	VestingPlan    solana.PublicKey // ephemeral, co-signs
	UserBaseATA    solana.PublicKey
	MarketBaseATA  solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

// NewCreateVestingPlanInstruction builds create_vesting_plan. The vesting
// plan account is a fresh keypair, not a PDA, and must co-sign.
func NewCreateVestingPlanInstruction(accounts VestingPlanAccounts, args VestingPlanArgs) solana.Instruction {
	data := make([]byte, len(createVestingPlanDiscriminator))
	copy(data, createVestingPlanDiscriminator)
	data = appendI64(data, args.StartTime)
	data = appendU64(data, args.TotalAmount)
	data = appendI64(data, args.Duration)
	data = appendI64(data, args.CliffDuration)

	metas := []*solana.AccountMeta{
		{PublicKey: accounts.User, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.Market, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Staking, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.StakePosition, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.VestingPlan, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.UserBaseATA, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketBaseATA, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(accounts.Program, metas, data)
}

// ReleaseAccounts lists every account of release in program order.
type ReleaseAccounts struct {
	User           solana.PublicKey
	Market         solana.PublicKey
	Staking        solana.PublicKey
	StakePosition  solana.PublicKey
	VestingPlan    solana.PublicKey // supplied by the caller, not created
	MarketBaseATA  solana.PublicKey
	UserBaseATA    solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

// NewReleaseInstruction builds release against an existing vesting plan.
func NewReleaseInstruction(accounts ReleaseAccounts) solana.Instruction {
	data := make([]byte, len(releaseDiscriminator))
	copy(data, releaseDiscriminator)

	metas := []*solana.AccountMeta{
		{PublicKey: accounts.User, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.Market, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Staking, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.StakePosition, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.VestingPlan, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketBaseATA, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.UserBaseATA, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(accounts.Program, metas, data)
}

// NewSetMarketPricesInstruction builds set_market_prices with explicit ask
// and bid arrays.
func NewSetMarketPricesInstruction(authority, config, market, eventAuthority, program solana.PublicKey, asks, bids []uint64) solana.Instruction {
	data := make([]byte, len(setMarketPricesDiscriminator))
	copy(data, setMarketPricesDiscriminator)
	data = appendU64Vec(data, asks)
	data = appendU64Vec(data, bids)

	metas := []*solana.AccountMeta{
		{PublicKey: authority, IsSigner: true, IsWritable: true},
		{PublicKey: config, IsSigner: false, IsWritable: false},
		{PublicKey: market, IsSigner: false, IsWritable: true},
		{PublicKey: eventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(program, metas, data)
}

// NewLockMarketInstruction builds lock_market, attaching the given swap
// authority to the market. The authority is a required signer.
func NewLockMarketInstruction(payer, market, swapAuthority, badge, eventAuthority, program solana.PublicKey) solana.Instruction {
	data := make([]byte, len(lockMarketDiscriminator))
	copy(data, lockMarketDiscriminator)

	metas := []*solana.AccountMeta{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: market, IsSigner: false, IsWritable: true},
		{PublicKey: swapAuthority, IsSigner: true, IsWritable: false},
		{PublicKey: badge, IsSigner: false, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: eventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(program, metas, data)
}

// NewFreeMarketInstruction builds free_market, transferring swap authority
// from the server key to the market itself.
func NewFreeMarketInstruction(swapAuthority, market, badge, eventAuthority, program solana.PublicKey) solana.Instruction {
	data := make([]byte, len(freeMarketDiscriminator))
	copy(data, freeMarketDiscriminator)

	metas := []*solana.AccountMeta{
		{PublicKey: swapAuthority, IsSigner: true, IsWritable: true},
		{PublicKey: market, IsSigner: false, IsWritable: true},
		{PublicKey: badge, IsSigner: false, IsWritable: true},
		{PublicKey: eventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(program, metas, data)
}

// SwapInstructionAccounts lists every account of permissioned_swap in
// program order.
type SwapInstructionAccounts struct {
	User           solana.PublicKey
	Config         solana.PublicKey
	Market         solana.PublicKey
	BaseMint       solana.PublicKey
	QuoteMint      solana.PublicKey
	MarketBaseATA  solana.PublicKey
	MarketQuoteATA solana.PublicKey
	UserBaseATA    solana.PublicKey
	UserQuoteATA   solana.PublicKey
	ProtocolFeeATA solana.PublicKey
	SwapAuthority  solana.PublicKey // server key pre-graduation, user afterwards
	AuthorityBadge solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

// SwapArgs carries the permissioned_swap arguments.
type SwapArgs struct {
	IsBuy                bool
	ExactOutput          bool
	Amount               uint64
	OtherAmountThreshold uint64
}

// NewPermissionedSwapInstruction builds the swap itself.
func NewPermissionedSwapInstruction(accounts SwapInstructionAccounts, args SwapArgs) solana.Instruction {
	data := make([]byte, len(permissionedSwapDiscriminator), len(permissionedSwapDiscriminator)+18)
	copy(data, permissionedSwapDiscriminator)
	if args.IsBuy {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}
	if args.ExactOutput {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}
	data = appendU64(data, args.Amount)
	data = appendU64(data, args.OtherAmountThreshold)

	metas := []*solana.AccountMeta{
		{PublicKey: accounts.User, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.Config, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Market, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.BaseMint, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.QuoteMint, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.MarketBaseATA, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketQuoteATA, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.UserBaseATA, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.UserQuoteATA, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.ProtocolFeeATA, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.SwapAuthority, IsSigner: true, IsWritable: false},
		{PublicKey: accounts.AuthorityBadge, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Program, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(accounts.Program, metas, data)
}

// NewCreateATAInstruction builds the associated-token-program instruction
// creating the ATA for (owner, mint), paid by payer.
func NewCreateATAInstruction(payer, owner, mint solana.PublicKey) (solana.Instruction, error) {
	ata, err := DeriveATA(owner, mint)
	if err != nil {
		return nil, err
	}

	metas := []*solana.AccountMeta{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: ata, IsSigner: false, IsWritable: true},
		{PublicKey: owner, IsSigner: false, IsWritable: false},
		{PublicKey: mint, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(AssociatedTokenProgramID, metas, []byte{}), nil
}
