// =============================
// File: internal/launchpad/constants.go
// =============================
package launchpad

import "github.com/gagliardetto/solana-go"

// Known program addresses.
var (
	// DefaultProgramID is the mainnet deployment of the launchpad program.
	DefaultProgramID = solana.MustPublicKeyFromBase58("jdfNyZreK8SMsfRUvHxv7GMxwqMzkg9EUmLVR6BPix1")

	// DefaultConfigAccount is the protocol-wide fee config referenced by every market.
	DefaultConfigAccount = solana.MustPublicKeyFromBase58("4yGLVBJQr8vdkhaGTziXNsyLi71psRBKJrzc2PdASE6a")

	// MetadataProgramID is the Metaplex token metadata program.
	MetadataProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID
	SysvarRentPubkey         = solana.SysVarRentPubkey

	// WSOLMint is the default quote mint for new markets.
	WSOLMint = solana.WrappedSol
)

// PDA seed literals. These are part of the on-chain compatibility surface
// and must match the program byte-for-byte.
const (
	SeedMarket             = "market"
	SeedQuoteTokenBadge    = "quote_token_badge"
	SeedMarketStaking      = "market_staking"
	SeedStakePosition      = "stake_position"
	SeedSwapAuthorityBadge = "swap_authority"
	SeedEventAuthority     = "__event_authority"
	SeedMetadata           = "metadata"
)

// Instruction discriminators extracted from the program IDL
// (first 8 bytes of sha256("global:<name>")).
var (
	createMarketWithSplDiscriminator = []byte{0x4b, 0x75, 0x58, 0x0d, 0x8e, 0x6a, 0x46, 0x52}
	createStakingDiscriminator       = []byte{0xb8, 0xdb, 0x3d, 0x42, 0x8c, 0xd4, 0x70, 0x85}
	createStakePositionDiscriminator = []byte{0x5c, 0xa8, 0x60, 0x85, 0x66, 0x79, 0x56, 0x8a}
	createVestingPlanDiscriminator   = []byte{0xf3, 0x0b, 0xea, 0x84, 0x0e, 0xb2, 0x98, 0x9e}
	releaseDiscriminator             = []byte{0xfd, 0xf9, 0x0f, 0xce, 0x1c, 0x7f, 0xc1, 0xf1}
	setMarketPricesDiscriminator     = []byte{0x27, 0x7b, 0x6b, 0x75, 0x31, 0x1d, 0x15, 0x9f}
	lockMarketDiscriminator          = []byte{0x6b, 0x08, 0xb8, 0x5b, 0xdf, 0x0d, 0xb4, 0x26}
	freeMarketDiscriminator          = []byte{0x22, 0xc8, 0xcf, 0x12, 0xe6, 0x2c, 0xdb, 0x8a}
	permissionedSwapDiscriminator    = []byte{0x3d, 0xfd, 0x0e, 0xe5, 0xf0, 0x89, 0xe1, 0x27}
)
