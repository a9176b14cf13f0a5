package signer

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrSigningFailed covers network and service failures of the signing
// backend. Retrying is the caller's decision, never done here.
var ErrSigningFailed = errors.New("signing failed")

// SignResult is a normalized signature over one operation id. V is nil when
// the recovery id could not be determined; the signature is still present and
// callers decide whether that is acceptable.
type SignResult struct {
	SignatureHex string
	SignerKID    string
	R            *big.Int
	S            *big.Int
	V            *uint8
}

// Signer signs timelock operation ids. Implementations are constructed once
// at startup and are safe for concurrent use; only the KMS variant performs
// network I/O.
type Signer interface {
	// SignOperationID produces a signature over the 32-byte operation id.
	SignOperationID(ctx context.Context, opID common.Hash) (*SignResult, error)
	// SignerID returns a stable identifier for the key material, used for
	// audit correlation only.
	SignerID() string
	// PublicKeyUncompressed returns the 65-byte 0x04||X||Y public key.
	// Best-effort; not every backend can provide it.
	PublicKeyUncompressed(ctx context.Context) ([]byte, error)
}

// Config selects and parameterizes the signer variant built at process init.
type Config struct {
	Type           string // "local" or "kms"
	PrivateKey     string // local only, hex encoded
	KMSKeyID       string // kms only
	AWSRegion      string
	AWSEndpointURL string // optional, e.g. localstack
	RequestTimeout time.Duration
}
