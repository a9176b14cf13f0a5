package signer

import (
	"context"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

// fakeKMS mimics the KMS signing flow with a local key: DER-encoded ECDSA
// signatures and a DER SubjectPublicKeyInfo envelope, exactly what the real
// service returns for a secp256k1 key.
type fakeKMS struct {
	keyHex     string
	signErr    error
	pubErr     error
	signCalled int
}

func (f *fakeKMS) Sign(_ context.Context, params *kms.SignInput, _ ...func(*kms.Options)) (*kms.SignOutput, error) {
	f.signCalled++
	if f.signErr != nil {
		return nil, f.signErr
	}

	key, err := crypto.HexToECDSA(f.keyHex)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(params.Message, key)
	if err != nil {
		return nil, err
	}

	der, err := asn1.Marshal(ecdsaSignature{
		R: new(big.Int).SetBytes(sig[:32]),
		S: new(big.Int).SetBytes(sig[32:64]),
	})
	if err != nil {
		return nil, err
	}

	return &kms.SignOutput{Signature: der}, nil
}

func (f *fakeKMS) GetPublicKey(_ context.Context, _ *kms.GetPublicKeyInput, _ ...func(*kms.Options)) (*kms.GetPublicKeyOutput, error) {
	if f.pubErr != nil {
		return nil, f.pubErr
	}

	key, err := crypto.HexToECDSA(f.keyHex)
	if err != nil {
		return nil, err
	}

	pub := crypto.FromECDSAPub(&key.PublicKey)
	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: pkix.AlgorithmIdentifier{Algorithm: oidECPublicKey},
		PublicKey: asn1.BitString{Bytes: pub, BitLength: len(pub) * 8},
	})
	if err != nil {
		return nil, err
	}

	return &kms.GetPublicKeyOutput{PublicKey: der}, nil
}

func TestKMSSignerRecoveryIDSearch(t *testing.T) {
	fake := &fakeKMS{keyHex: testKeyHex}
	s := newKMSSignerWithClient(fake, "test-key", 0)

	opID := common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000aa")

	result, err := s.SignOperationID(context.Background(), opID)
	require.NoError(t, err)
	require.NotNil(t, result.V)
	assert.Contains(t, []uint8{27, 28}, *result.V)
	assert.Equal(t, "kms:test-key", result.SignerKID)
	assert.Len(t, result.SignatureHex, 2+65*2)

	// the recovered address must match the key's address
	key, err := crypto.HexToECDSA(testKeyHex)
	require.NoError(t, err)

	digest := crypto.Keccak256(opID[:])
	sig65 := make([]byte, 65)
	result.R.FillBytes(sig65[:32])
	result.S.FillBytes(sig65[32:64])
	sig65[64] = *result.V - 27

	recovered, err := crypto.Ecrecover(digest, sig65)
	require.NoError(t, err)
	assert.Equal(t,
		crypto.PubkeyToAddress(key.PublicKey),
		common.BytesToAddress(crypto.Keccak256(recovered[1:])[12:]),
	)
}

func TestKMSSignerDeterministicResultShape(t *testing.T) {
	fake := &fakeKMS{keyHex: testKeyHex}
	s := newKMSSignerWithClient(fake, "test-key", 0)

	opID := common.Hash{0x01}

	a, err := s.SignOperationID(context.Background(), opID)
	require.NoError(t, err)
	b, err := s.SignOperationID(context.Background(), opID)
	require.NoError(t, err)

	// go-ethereum signs deterministically, so the full flow must too
	assert.Equal(t, a.SignatureHex, b.SignatureHex)
	assert.Equal(t, 2, fake.signCalled)
}

func TestKMSSignerSignFailure(t *testing.T) {
	fake := &fakeKMS{keyHex: testKeyHex, signErr: errors.New("throttled")}
	s := newKMSSignerWithClient(fake, "test-key", 0)

	_, err := s.SignOperationID(context.Background(), common.Hash{})
	assert.ErrorIs(t, err, ErrSigningFailed)
}

func TestKMSSignerMissingPublicKeyOmitsV(t *testing.T) {
	fake := &fakeKMS{keyHex: testKeyHex, pubErr: errors.New("access denied")}
	s := newKMSSignerWithClient(fake, "test-key", 0)

	result, err := s.SignOperationID(context.Background(), common.Hash{0x02})
	require.NoError(t, err)

	// signature present, recovery id not determinable
	assert.Nil(t, result.V)
	assert.Len(t, result.SignatureHex, 2+64*2)
	assert.NotNil(t, result.R)
	assert.NotNil(t, result.S)
}

func TestPublicKeyFromDERRejectsCompressed(t *testing.T) {
	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: pkix.AlgorithmIdentifier{Algorithm: oidECPublicKey},
		PublicKey: asn1.BitString{Bytes: []byte{0x02, 0x01}, BitLength: 16},
	})
	require.NoError(t, err)

	_, err = publicKeyFromDER(der)
	assert.Error(t, err)
}
