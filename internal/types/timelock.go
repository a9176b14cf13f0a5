package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// TimelockEncodePayload is the request body of POST /api/v1/timelock/encode.
// Integer arguments beyond float64 precision must be sent as strings.
type TimelockEncodePayload struct {
	// Human-readable function signature, e.g. transfer(address,uint256)
	// Required: true
	Signature *string `json:"signature"`

	// Positional arguments matching the signature's parameter types
	Args []interface{} `json:"args,omitempty"`

	// Timelock call target address; opId computation is skipped when absent
	Target string `json:"target,omitempty"`

	// Call value in wei, decimal string
	Value string `json:"value,omitempty"`

	// Predecessor operation id, 0x hex
	Predecessor string `json:"predecessor,omitempty"`

	// Operation salt, 0x hex; derived deterministically when absent
	Salt string `json:"salt,omitempty"`

	// Sign the computed operation id with the configured signer
	SignOpID bool `json:"sign_opid,omitempty"`
}

func (m *TimelockEncodePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("signature", "body", m.Signature); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// TimelockEncodeResponse mirrors the single-call encode request.
type TimelockEncodeResponse struct {
	// Full calldata, 0x hex (selector ++ encoded args)
	// Required: true
	Data *string `json:"data"`

	// 4-byte function selector, 0x hex
	// Required: true
	Selector *string `json:"selector"`

	// Parameter types as written in the signature
	Types []string `json:"types"`

	// Coerced arguments as encoded
	CoercedArgs []interface{} `json:"coerced_args"`

	// Salt that entered the opId computation; persist it for execute
	SaltUsed string `json:"salt_used,omitempty"`

	// Operation id, present when a target was given
	OpID string `json:"opId,omitempty"`

	// Signature over the operation id, present when sign_opid was set
	Signature string `json:"signature,omitempty"`

	// Identifier of the key that signed
	SignerKid string `json:"signer_kid,omitempty"`
}

func (m *TimelockEncodeResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("data", "body", m.Data); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("selector", "body", m.Selector); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// TimelockBatchCall is one call inside an encode-batch request.
type TimelockBatchCall struct {
	// Required: true
	Signature *string `json:"signature"`

	Args []interface{} `json:"args,omitempty"`

	// Required: true
	Target *string `json:"target"`

	// Call value in wei, decimal string
	Value string `json:"value,omitempty"`
}

func (m *TimelockBatchCall) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("signature", "body", m.Signature); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("target", "body", m.Target); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// TimelockEncodeBatchPayload is the request body of POST /api/v1/timelock/encode-batch.
type TimelockEncodeBatchPayload struct {
	// Required: true
	// Min Items: 1
	Calls []*TimelockBatchCall `json:"calls"`

	Predecessor string `json:"predecessor,omitempty"`
	Salt        string `json:"salt,omitempty"`
	SignOpID    bool   `json:"sign_opid,omitempty"`
}

func (m *TimelockEncodeBatchPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("calls", "body", m.Calls); err != nil {
		res = append(res, err)
	} else if err := validate.MinItems("calls", "body", int64(len(m.Calls)), 1); err != nil {
		res = append(res, err)
	}
	for i := range m.Calls {
		if m.Calls[i] == nil {
			continue
		}
		if err := m.Calls[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// TimelockEncodedBatchCall is the encoded form of one batch call.
type TimelockEncodedBatchCall struct {
	// Required: true
	Data *string `json:"data"`

	// Required: true
	Selector *string `json:"selector"`

	Types       []string      `json:"types"`
	CoercedArgs []interface{} `json:"coerced_args"`
}

func (m *TimelockEncodedBatchCall) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("data", "body", m.Data); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("selector", "body", m.Selector); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// TimelockEncodeBatchResponse mirrors the batch encode request.
type TimelockEncodeBatchResponse struct {
	// Required: true
	Calls []*TimelockEncodedBatchCall `json:"calls"`

	// Required: true
	OpID *string `json:"opId"`

	SaltUsed  string `json:"salt_used,omitempty"`
	Signature string `json:"signature,omitempty"`
	SignerKid string `json:"signer_kid,omitempty"`
}

func (m *TimelockEncodeBatchResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("calls", "body", m.Calls); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("opId", "body", m.OpID); err != nil {
		res = append(res, err)
	}
	for i := range m.Calls {
		if m.Calls[i] == nil {
			continue
		}
		if err := m.Calls[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// TimelockStatusResponse reports the three lifecycle view functions.
type TimelockStatusResponse struct {
	// Required: true
	OpID *string `json:"opId"`

	// Required: true
	Pending *bool `json:"pending"`

	// Required: true
	Ready *bool `json:"ready"`

	// Required: true
	Done *bool `json:"done"`
}

func (m *TimelockStatusResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("opId", "body", m.OpID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("pending", "body", m.Pending); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("ready", "body", m.Ready); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("done", "body", m.Done); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
