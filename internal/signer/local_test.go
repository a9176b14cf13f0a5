package signer_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-dao/timelock-admin/internal/signer"
)

const (
	localTestKey  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	localTestAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestLocalSignerSignAndRecover(t *testing.T) {
	s, err := signer.NewLocalSigner(localTestKey)
	require.NoError(t, err)

	assert.Equal(t, localTestAddr, s.Address().Hex())
	assert.Equal(t, "local:0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", s.SignerID())

	opID := common.HexToHash("0x0101010101010101010101010101010101010101010101010101010101010101")

	result, err := s.SignOperationID(context.Background(), opID)
	require.NoError(t, err)
	require.NotNil(t, result.V)
	assert.Contains(t, []uint8{27, 28}, *result.V)
	assert.Len(t, result.SignatureHex, 2+65*2)

	// verify against the personal-message hash
	msgHash := accounts.TextHash(opID[:])
	sig65 := make([]byte, 65)
	result.R.FillBytes(sig65[:32])
	result.S.FillBytes(sig65[32:64])
	sig65[64] = *result.V - 27

	recovered, err := crypto.Ecrecover(msgHash, sig65)
	require.NoError(t, err)
	assert.Equal(t, localTestAddr, common.BytesToAddress(crypto.Keccak256(recovered[1:])[12:]).Hex())
}

func TestLocalSignerDeterministic(t *testing.T) {
	s, err := signer.NewLocalSigner("0x" + localTestKey)
	require.NoError(t, err)

	opID := common.Hash{0x42}

	a, err := s.SignOperationID(context.Background(), opID)
	require.NoError(t, err)
	b, err := s.SignOperationID(context.Background(), opID)
	require.NoError(t, err)

	assert.Equal(t, a.SignatureHex, b.SignatureHex)
}

func TestLocalSignerRejectsGarbage(t *testing.T) {
	_, err := signer.NewLocalSigner("")
	assert.Error(t, err)

	_, err = signer.NewLocalSigner("not-a-key")
	assert.Error(t, err)
}

func TestNewSelectsVariant(t *testing.T) {
	s, err := signer.New(context.Background(), signer.Config{Type: "local", PrivateKey: localTestKey})
	require.NoError(t, err)
	assert.Equal(t, "local:0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", s.SignerID())

	_, err = signer.New(context.Background(), signer.Config{Type: "hsm"})
	assert.Error(t, err)
}
