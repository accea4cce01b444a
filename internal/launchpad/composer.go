// =============================
// File: internal/launchpad/composer.go
// =============================
package launchpad

import (
	"github.com/gagliardetto/solana-go"
)

// Composer turns typed operation parameters plus probed state into ordered
// instruction lists. It holds only derived constants and is safe to share.
type Composer struct {
	addrs          *Addresses
	eventAuthority solana.PublicKey
}

// NewComposer creates a composer for the given program addresses. The
// event authority PDA is derived once up front.
func NewComposer(addrs *Addresses) (*Composer, error) {
	eventAuthority, _, err := addrs.DeriveEventAuthority()
	if err != nil {
		return nil, err
	}
	return &Composer{addrs: addrs, eventAuthority: eventAuthority}, nil
}

// Addresses exposes the underlying derivation helper.
func (c *Composer) Addresses() *Addresses { return c.addrs }

// EventAuthority returns the program's event authority PDA.
func (c *Composer) EventAuthority() solana.PublicKey { return c.eventAuthority }
