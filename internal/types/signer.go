package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// SignerInfoResponse describes the signer configured at process start.
type SignerInfoResponse struct {
	// Required: true
	SignerKid *string `json:"signer_kid"`

	// Uncompressed public key 0x04||X||Y, best-effort
	PublicKeyUncompressedHex string `json:"public_key_uncompressed_hex,omitempty"`

	// Address derived from the public key
	EthereumAddress string `json:"ethereum_address,omitempty"`
}

func (m *SignerInfoResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("signer_kid", "body", m.SignerKid); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
