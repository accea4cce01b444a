// ==================================
// File: internal/wallet/ephemeral.go
// ==================================
package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Ephemeral is a one-time keypair for an account created within the same
// transaction (a new mint, a new vesting plan). The private key exists
// only long enough to partial-sign; it is never persisted or logged.
type Ephemeral struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// NewEphemeral generates a fresh keypair.
func NewEphemeral() (*Ephemeral, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral keypair: %w", err)
	}
	return &Ephemeral{
		PrivateKey: key,
		PublicKey:  key.PublicKey(),
	}, nil
}
