// internal/transaction/builder_test.go
package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticBlockhash struct {
	hash solana.Hash
	err  error
}

func (s staticBlockhash) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return s.hash, s.err
}

func testInstruction(program solana.PublicKey, signer solana.PublicKey, data []byte) solana.Instruction {
	metas := []*solana.AccountMeta{
		{PublicKey: signer, IsSigner: true, IsWritable: true},
	}
	return solana.NewInstruction(program, metas, data)
}

func TestBuildRequiresInstructionsAndFeePayer(t *testing.T) {
	provider := staticBlockhash{hash: solana.Hash{1}}

	_, err := NewBuilder().
		SetFeePayer(solana.NewWallet().PublicKey()).
		Build(context.Background(), provider)
	assert.Error(t, err)

	user := solana.NewWallet().PublicKey()
	_, err = NewBuilder().
		Add(testInstruction(solana.SystemProgramID, user, []byte{1})).
		Build(context.Background(), provider)
	assert.Error(t, err)
}

func TestBuildPropagatesBlockhashFailure(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	provider := staticBlockhash{err: errors.New("rpc down")}

	_, err := NewBuilder().
		SetFeePayer(user).
		Add(testInstruction(solana.SystemProgramID, user, []byte{1})).
		Build(context.Background(), provider)
	assert.ErrorContains(t, err, "rpc down")
}

func TestBuildBase64RoundTrip(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	ephemeral, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	program := solana.NewWallet().PublicKey()
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	ix := solana.NewInstruction(program, []*solana.AccountMeta{
		{PublicKey: user, IsSigner: true, IsWritable: true},
		{PublicKey: ephemeral.PublicKey(), IsSigner: true, IsWritable: true},
	}, data)

	provider := staticBlockhash{hash: solana.Hash{0xaa}}

	encoded, err := NewBuilder().
		SetFeePayer(user).
		Add(ix).
		AddPartialSigner(ephemeral).
		BuildBase64(context.Background(), provider)
	require.NoError(t, err)

	decoded, err := solana.TransactionFromBase64(encoded)
	require.NoError(t, err)

	require.Len(t, decoded.Message.Instructions, 1)
	decodedProgram, err := decoded.Message.Program(decoded.Message.Instructions[0].ProgramIDIndex)
	require.NoError(t, err)
	assert.Equal(t, program, decodedProgram)
	assert.Equal(t, solana.Base58(data), decoded.Message.Instructions[0].Data)

	// fee payer occupies the first account slot
	require.NotEmpty(t, decoded.Message.AccountKeys)
	assert.Equal(t, user, decoded.Message.AccountKeys[0])

	// the ephemeral key signed; the user's slot stays empty for the client
	require.Len(t, decoded.Signatures, 2)
	assert.True(t, decoded.Signatures[0].IsZero(), "user signature slot must be empty")
	assert.False(t, decoded.Signatures[1].IsZero(), "ephemeral signature must be present")
}

func TestBuildWithoutSigners(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	provider := staticBlockhash{hash: solana.Hash{0xbb}}

	tx, err := NewBuilder().
		SetFeePayer(user).
		Add(testInstruction(solana.SystemProgramID, user, []byte{9})).
		Build(context.Background(), provider)
	require.NoError(t, err)
	assert.Equal(t, user, tx.Message.AccountKeys[0])
}
