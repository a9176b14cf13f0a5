package timelock

import (
	"github.com/ethereum/go-ethereum/crypto"
)

// EncodedCall is the result of encoding one contract call. Data is the
// 4-byte selector followed by the ABI-encoded arguments.
type EncodedCall struct {
	Data           []byte
	Selector       [4]byte
	Types          []string // parameter types exactly as written in the signature
	CanonicalTypes []string
	Args           []interface{} // coerced arguments, display-ready
}

// EncodeFunctionCall parses signature, coerces args against its parameter
// types and produces the full calldata. The selector is hashed over the
// signature exactly as given; type canonicalization applies only to the
// argument encoding.
func EncodeFunctionCall(signature string, args []interface{}) (*EncodedCall, error) {
	_, types, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	if len(types) != len(args) {
		return nil, &ArityMismatchError{Expected: len(types), Actual: len(args), Context: "signature"}
	}

	descs := make([]*typeDesc, 0, len(types))
	coerced := make([]interface{}, 0, len(types))
	canonical := make([]string, 0, len(types))
	for i, t := range types {
		desc, err := parseTypeDesc(t)
		if err != nil {
			return nil, &CoerceError{Type: t, Index: i, Err: err}
		}
		cv, err := coerceValue(desc, args[i])
		if err != nil {
			return nil, &CoerceError{Type: t, Index: i, Err: err}
		}
		descs = append(descs, desc)
		coerced = append(coerced, cv)
		canonical = append(canonical, CanonicalType(t))
	}

	arguments, err := buildArguments(descs)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	values := make([]interface{}, 0, len(coerced))
	for i, cv := range coerced {
		v, err := abiValue(arguments[i].Type, cv)
		if err != nil {
			return nil, &EncodingError{Err: err}
		}
		values = append(values, v)
	}

	payload, err := arguments.Pack(values...)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	var selector [4]byte
	copy(selector[:], crypto.Keccak256([]byte(signature))[:4])

	display := make([]interface{}, 0, len(coerced))
	for _, cv := range coerced {
		display = append(display, displayValue(cv))
	}

	return &EncodedCall{
		Data:           append(selector[:], payload...),
		Selector:       selector,
		Types:          types,
		CanonicalTypes: canonical,
		Args:           display,
	}, nil
}
