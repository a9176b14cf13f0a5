package signer

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// LocalSigner holds a secp256k1 private key in process memory. Signing is
// deterministic and performs no I/O.
type LocalSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
	kid     string
}

func NewLocalSigner(privateKeyHex string) (*LocalSigner, error) {
	if privateKeyHex == "" {
		return nil, errors.New("private key must be set for the local signer")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}

	address := crypto.PubkeyToAddress(key.PublicKey)

	return &LocalSigner{
		key:     key,
		address: address,
		kid:     "local:" + strings.ToLower(address.Hex()),
	}, nil
}

// SignOperationID signs the personal-message hash of the operation id, the
// same construction EIP-191 eth_sign verifiers expect.
func (s *LocalSigner) SignOperationID(_ context.Context, opID common.Hash) (*SignResult, error) {
	msgHash := accounts.TextHash(opID[:])

	sig, err := crypto.Sign(msgHash, s.key)
	if err != nil {
		return nil, errors.Wrapf(ErrSigningFailed, "local sign: %v", err)
	}

	v := sig[64] + 27
	sig65 := make([]byte, 65)
	copy(sig65, sig[:64])
	sig65[64] = v

	return &SignResult{
		SignatureHex: hexutil.Encode(sig65),
		SignerKID:    s.kid,
		R:            new(big.Int).SetBytes(sig[:32]),
		S:            new(big.Int).SetBytes(sig[32:64]),
		V:            &v,
	}, nil
}

func (s *LocalSigner) SignerID() string {
	return s.kid
}

func (s *LocalSigner) Address() common.Address {
	return s.address
}

func (s *LocalSigner) PublicKeyUncompressed(_ context.Context) ([]byte, error) {
	return crypto.FromECDSAPub(&s.key.PublicKey), nil
}
