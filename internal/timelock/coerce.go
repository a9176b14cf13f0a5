package timelock

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// CoerceArg converts a loosely-typed input value (as produced by a JSON
// decoder) into the strictly-typed representation matching argType:
//
//	address  -> common.Address (checksummed form on display)
//	bool     -> bool
//	uint*/int* -> *big.Int, no range check here; overflow for the declared
//	            width is rejected later by the byte-encoder
//	bytes*   -> []byte
//	string   -> string
//	T[]      -> []interface{} of coerced T
//	(T1,...) -> []interface{} of coerced components
//
// Unknown elementary types pass through unchanged and fail, if at all, inside
// the byte-encoder.
func CoerceArg(argType string, value interface{}) (interface{}, error) {
	desc, err := parseTypeDesc(argType)
	if err != nil {
		return nil, err
	}
	return coerceValue(desc, value)
}

func coerceValue(t *typeDesc, value interface{}) (interface{}, error) {
	switch t.kind {
	case kindArray:
		list, ok := value.([]interface{})
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "%s expects array value", t.raw)
		}
		out := make([]interface{}, 0, len(list))
		for _, v := range list {
			cv, err := coerceValue(t.elem, v)
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil

	case kindTuple:
		list, ok := value.([]interface{})
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "tuple value must be array-like")
		}
		if len(list) != len(t.components) {
			return nil, &ArityMismatchError{Expected: len(t.components), Actual: len(list), Context: "tuple"}
		}
		out := make([]interface{}, 0, len(list))
		for i, v := range list {
			cv, err := coerceValue(t.components[i], v)
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil
	}

	return coerceElementary(t.raw, value)
}

func coerceElementary(argType string, value interface{}) (interface{}, error) {
	switch {
	case strings.HasPrefix(argType, "address"):
		s, ok := value.(string)
		if !ok || !common.IsHexAddress(s) {
			return nil, errors.Wrapf(ErrInvalidAddress, "%v", value)
		}
		return common.HexToAddress(s), nil

	case argType == "bool":
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(v) {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
		case float64:
			return v != 0, nil
		case int:
			return v != 0, nil
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f != 0, nil
			}
		}
		return nil, errors.Wrapf(ErrInvalidBool, "%v", value)

	case strings.HasPrefix(argType, "uint"), strings.HasPrefix(argType, "int"):
		n, err := parseInteger(value)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidInteger, "%v for %s", value, argType)
		}
		return n, nil

	case strings.HasPrefix(argType, "bytes"):
		switch v := value.(type) {
		case string:
			if strings.HasPrefix(v, "0x") {
				h := v[2:]
				if len(h)%2 != 0 {
					h = "0" + h
				}
				b, err := hex.DecodeString(h)
				if err != nil {
					return nil, errors.Wrapf(ErrInvalidBytes, "%v", value)
				}
				return b, nil
			}
			return []byte(v), nil
		case []byte:
			out := make([]byte, len(v))
			copy(out, v)
			return out, nil
		}
		return nil, errors.Wrapf(ErrInvalidBytes, "%v", value)

	case argType == "string":
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", value), nil
	}

	// exotic/unsupported types pass through; the byte-encoder fails closed
	return value, nil
}

func parseInteger(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return v, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case float64:
		return big.NewInt(int64(math.Trunc(v))), nil
	case json.Number:
		return parseIntegerString(v.String())
	case string:
		return parseIntegerString(v)
	}
	return nil, errors.Errorf("unsupported integer value %v", value)
}

func parseIntegerString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, errors.Errorf("unparsable integer %q", s)
	}
	if negative {
		n.Neg(n)
	}
	return n, nil
}

// displayValue renders a coerced value for JSON responses and audit records:
// addresses as checksummed hex, byte sequences as 0x hex, integers as-is.
func displayValue(v interface{}) interface{} {
	switch cv := v.(type) {
	case common.Address:
		return cv.Hex()
	case []byte:
		return hexutil.Encode(cv)
	case []interface{}:
		out := make([]interface{}, 0, len(cv))
		for _, e := range cv {
			out = append(out, displayValue(e))
		}
		return out
	}
	return v
}
