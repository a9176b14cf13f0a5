package signer

import (
	"context"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultKMSTimeout = 10 * time.Second

// kmsAPI is the slice of the AWS KMS client the signer uses.
type kmsAPI interface {
	Sign(ctx context.Context, params *kms.SignInput, optFns ...func(*kms.Options)) (*kms.SignOutput, error)
	GetPublicKey(ctx context.Context, params *kms.GetPublicKeyInput, optFns ...func(*kms.Options)) (*kms.GetPublicKeyOutput, error)
}

// KMSSigner signs via an AWS KMS secp256k1 key. It holds no private key
// material, only the key id and a client handle.
type KMSSigner struct {
	client  kmsAPI
	keyID   string
	kid     string
	timeout time.Duration
}

func NewKMSSigner(ctx context.Context, cfg Config) (*KMSSigner, error) {
	if cfg.KMSKeyID == "" {
		return nil, errors.New("KMS key id must be set for the kms signer")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	client := kms.NewFromConfig(awsCfg, func(o *kms.Options) {
		if cfg.AWSEndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		}
	})

	return newKMSSignerWithClient(client, cfg.KMSKeyID, cfg.RequestTimeout), nil
}

func newKMSSignerWithClient(client kmsAPI, keyID string, timeout time.Duration) *KMSSigner {
	if timeout <= 0 {
		timeout = defaultKMSTimeout
	}

	return &KMSSigner{
		client:  client,
		keyID:   keyID,
		kid:     "kms:" + keyID,
		timeout: timeout,
	}
}

// SignOperationID hashes the operation id with keccak256, has KMS sign the
// digest and converts the DER signature into the (r, s, v) triplet. The
// recovery id is not part of the KMS response; it is searched by recovering
// the public key for both candidates and comparing the derived address
// against the key's reported address. When neither candidate matches, the
// result carries no V rather than failing.
func (s *KMSSigner) SignOperationID(ctx context.Context, opID common.Hash) (*SignResult, error) {
	digest := crypto.Keccak256(opID[:])

	signCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.Sign(signCtx, &kms.SignInput{
		KeyId:            aws.String(s.keyID),
		Message:          digest,
		MessageType:      kmstypes.MessageTypeDigest,
		SigningAlgorithm: kmstypes.SigningAlgorithmSpecEcdsaSha256,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrSigningFailed, "kms sign: %v", err)
	}
	if len(out.Signature) == 0 {
		return nil, errors.Wrap(ErrSigningFailed, "kms response carries no signature")
	}

	r, sv, err := derSignatureToRS(out.Signature)
	if err != nil {
		return nil, errors.Wrapf(ErrSigningFailed, "kms signature: %v", err)
	}

	pub, err := s.PublicKeyUncompressed(ctx)
	if err != nil {
		log.Warn().Err(err).Str("key_id", s.keyID).Msg("Failed to fetch KMS public key, returning signature without recovery id")
		return s.resultWithoutV(r, sv), nil
	}

	expected := common.BytesToAddress(crypto.Keccak256(pub[1:])[12:])

	for recid := byte(0); recid < 2; recid++ {
		sig65 := make([]byte, 65)
		r.FillBytes(sig65[:32])
		sv.FillBytes(sig65[32:64])
		sig65[64] = recid

		recovered, err := crypto.Ecrecover(digest, sig65)
		if err != nil {
			continue
		}
		if common.BytesToAddress(crypto.Keccak256(recovered[1:])[12:]) != expected {
			continue
		}

		v := 27 + recid
		sig65[64] = v
		return &SignResult{
			SignatureHex: hexutil.Encode(sig65),
			SignerKID:    s.kid,
			R:            r,
			S:            sv,
			V:            &v,
		}, nil
	}

	return s.resultWithoutV(r, sv), nil
}

func (s *KMSSigner) resultWithoutV(r, sv *big.Int) *SignResult {
	sig64 := make([]byte, 64)
	r.FillBytes(sig64[:32])
	sv.FillBytes(sig64[32:])

	return &SignResult{
		SignatureHex: hexutil.Encode(sig64),
		SignerKID:    s.kid,
		R:            r,
		S:            sv,
	}
}

func (s *KMSSigner) SignerID() string {
	return s.kid
}

func (s *KMSSigner) PublicKeyUncompressed(ctx context.Context) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.GetPublicKey(reqCtx, &kms.GetPublicKeyInput{KeyId: aws.String(s.keyID)})
	if err != nil {
		return nil, errors.Wrap(err, "kms get public key")
	}
	if len(out.PublicKey) == 0 {
		return nil, errors.New("kms response carries no public key")
	}

	return publicKeyFromDER(out.PublicKey)
}

type ecdsaSignature struct {
	R, S *big.Int
}

func derSignatureToRS(der []byte) (*big.Int, *big.Int, error) {
	var sig ecdsaSignature
	rest, err := asn1.Unmarshal(der, &sig)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to decode DER signature")
	}
	if len(rest) > 0 {
		return nil, nil, errors.New("trailing bytes after DER signature")
	}

	return sig.R, sig.S, nil
}

type subjectPublicKeyInfo struct {
	Algorithm pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

// publicKeyFromDER extracts the uncompressed EC point from a DER
// SubjectPublicKeyInfo. crypto/x509 cannot parse secp256k1 keys, so the
// envelope is unwrapped manually.
func publicKeyFromDER(der []byte) ([]byte, error) {
	var spki subjectPublicKeyInfo
	if _, err := asn1.Unmarshal(der, &spki); err != nil {
		return nil, errors.Wrap(err, "failed to decode public key DER")
	}

	pub := spki.PublicKey.Bytes
	if len(pub) != 65 || pub[0] != 0x04 {
		return nil, errors.Errorf("unexpected public key encoding (%d bytes)", len(pub))
	}

	return pub, nil
}
