// internal/transaction/builder.go
package transaction

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// BlockhashProvider supplies a recent blockhash. The solbc pool satisfies
// this, including its fallback-endpoint behavior.
type BlockhashProvider interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// Builder accumulates instructions and locally-held signers, then finalizes
// into a partially-signed transaction. The end user's signature slot is
// always left empty: completion happens client-side.
type Builder struct {
	feePayer     solana.PublicKey
	instructions []solana.Instruction
	signers      []solana.PrivateKey
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetFeePayer sets the transaction fee payer (normally the end user).
func (b *Builder) SetFeePayer(payer solana.PublicKey) *Builder {
	b.feePayer = payer
	return b
}

// Add appends instructions in order.
func (b *Builder) Add(instructions ...solana.Instruction) *Builder {
	b.instructions = append(b.instructions, instructions...)
	return b
}

// AddPartialSigner registers a locally-held key (ephemeral or server swap
// authority) to sign during Build.
func (b *Builder) AddPartialSigner(key solana.PrivateKey) *Builder {
	b.signers = append(b.signers, key)
	return b
}

// Build fetches a recent blockhash, assembles the transaction, and applies
// every locally-held signature. Signature completeness is not enforced;
// the user signs later.
func (b *Builder) Build(ctx context.Context, provider BlockhashProvider) (*solana.Transaction, error) {
	if len(b.instructions) == 0 {
		return nil, fmt.Errorf("no instructions to assemble")
	}
	if b.feePayer.IsZero() {
		return nil, fmt.Errorf("fee payer is not set")
	}

	blockhash, err := provider.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(
		b.instructions,
		blockhash,
		solana.TransactionPayer(b.feePayer),
	)
	if err != nil {
		// Covers, among others, instruction lists whose account count
		// exceeds the transaction size limit.
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if len(b.signers) > 0 {
		_, err = tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
			for _, signer := range b.signers {
				if signer.PublicKey().Equals(key) {
					privateCopy := signer
					return &privateCopy
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to partial-sign transaction: %w", err)
		}
	}

	return tx, nil
}

// BuildBase64 builds and serializes to the base64 wire format consumed by
// clients. Missing signatures are expected and not verified.
func (b *Builder) BuildBase64(ctx context.Context, provider BlockhashProvider) (string, error) {
	tx, err := b.Build(ctx, provider)
	if err != nil {
		return "", err
	}
	encoded, err := tx.ToBase64()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return encoded, nil
}
