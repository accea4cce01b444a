// internal/solbc/client_test.go
package solbc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stretchr/testify/assert"
)

func TestIsAccountNotFoundError(t *testing.T) {
	// the exact shape nodes return for getTokenAccountBalance on a
	// missing token account
	missingTokenAccount := &jsonrpc.RPCError{
		Code:    -32602,
		Message: "Invalid param: could not find account",
	}
	assert.True(t, IsAccountNotFoundError(missingTokenAccount))

	// still recognized when wrapped on the way up
	assert.True(t, IsAccountNotFoundError(fmt.Errorf("balance fetch: %w", missingTokenAccount)))

	assert.True(t, IsAccountNotFoundError(rpc.ErrNotFound))
	assert.True(t, IsAccountNotFoundError(errors.New("account not found")))

	assert.False(t, IsAccountNotFoundError(nil))
	assert.False(t, IsAccountNotFoundError(errors.New("connection refused")))

	// same code, different complaint: not a missing account
	badParam := &jsonrpc.RPCError{
		Code:    -32602,
		Message: "Invalid param: WrongSize",
	}
	assert.False(t, IsAccountNotFoundError(badParam))
}
