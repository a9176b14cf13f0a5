package timelock

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// abiNameOf renders a type descriptor the way abi.NewType expects it, with
// tuples spelled as "tuple" and their shape carried via components.
func abiNameOf(t *typeDesc) string {
	switch t.kind {
	case kindArray:
		return abiNameOf(t.elem) + "[]"
	case kindTuple:
		return "tuple"
	}
	return CanonicalType(t.raw)
}

func abiComponentsOf(t *typeDesc) []abi.ArgumentMarshaling {
	switch t.kind {
	case kindArray:
		return abiComponentsOf(t.elem)
	case kindTuple:
		components := make([]abi.ArgumentMarshaling, 0, len(t.components))
		for i, c := range t.components {
			components = append(components, abi.ArgumentMarshaling{
				Name:       fmt.Sprintf("field%d", i),
				Type:       abiNameOf(c),
				Components: abiComponentsOf(c),
			})
		}
		return components
	}
	return nil
}

func abiTypeOf(t *typeDesc) (abi.Type, error) {
	abiType, err := abi.NewType(abiNameOf(t), "", abiComponentsOf(t))
	if err != nil {
		return abi.Type{}, errors.Wrapf(err, "unsupported type %q", t.raw)
	}
	return abiType, nil
}

func buildArguments(descs []*typeDesc) (abi.Arguments, error) {
	arguments := make(abi.Arguments, 0, len(descs))
	for _, d := range descs {
		abiType, err := abiTypeOf(d)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, abi.Argument{Type: abiType})
	}
	return arguments, nil
}

// abiValue converts a coerced value into the exact runtime representation the
// go-ethereum packer requires for t, enforcing the declared integer widths and
// fixed byte lengths that coercion intentionally left unchecked.
func abiValue(t abi.Type, v interface{}) (interface{}, error) {
	switch t.T {
	case abi.SliceTy, abi.ArrayTy:
		list, ok := v.([]interface{})
		if !ok {
			return nil, errors.Errorf("expected array value for %v, got %T", t, v)
		}
		slice := reflect.MakeSlice(t.GetType(), len(list), len(list))
		for i, e := range list {
			ev, err := abiValue(*t.Elem, e)
			if err != nil {
				return nil, err
			}
			slice.Index(i).Set(reflect.ValueOf(ev))
		}
		return slice.Interface(), nil

	case abi.TupleTy:
		list, ok := v.([]interface{})
		if !ok {
			return nil, errors.Errorf("expected tuple value, got %T", v)
		}
		if len(list) != len(t.TupleElems) {
			return nil, errors.Errorf("tuple expects %d values, got %d", len(t.TupleElems), len(list))
		}
		tuple := reflect.New(t.TupleType).Elem()
		for i, e := range list {
			ev, err := abiValue(*t.TupleElems[i], e)
			if err != nil {
				return nil, err
			}
			tuple.Field(i).Set(reflect.ValueOf(ev))
		}
		return tuple.Interface(), nil

	case abi.UintTy:
		n, ok := v.(*big.Int)
		if !ok {
			return nil, errors.Errorf("expected integer for uint%d, got %T", t.Size, v)
		}
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, errors.Errorf("value %s out of range for uint%d", n, t.Size)
		}
		switch t.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		}
		return n, nil

	case abi.IntTy:
		n, ok := v.(*big.Int)
		if !ok {
			return nil, errors.Errorf("expected integer for int%d, got %T", t.Size, v)
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, errors.Errorf("value %s out of range for int%d", n, t.Size)
		}
		switch t.Size {
		case 8:
			return int8(n.Int64()), nil
		case 16:
			return int16(n.Int64()), nil
		case 32:
			return int32(n.Int64()), nil
		case 64:
			return n.Int64(), nil
		}
		return n, nil

	case abi.FixedBytesTy:
		b, ok := v.([]byte)
		if !ok {
			return nil, errors.Errorf("expected byte value for bytes%d, got %T", t.Size, v)
		}
		if len(b) > t.Size {
			return nil, errors.Errorf("%d bytes exceed bytes%d", len(b), t.Size)
		}
		// short values are right-padded into the fixed width
		padded := make([]byte, t.Size)
		copy(padded, b)
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(padded))
		return arr.Interface(), nil

	case abi.BytesTy:
		b, ok := v.([]byte)
		if !ok {
			return nil, errors.Errorf("expected byte value for bytes, got %T", v)
		}
		return b, nil

	case abi.AddressTy:
		a, ok := v.(common.Address)
		if !ok {
			return nil, errors.Errorf("expected address, got %T", v)
		}
		return a, nil

	case abi.BoolTy:
		b, ok := v.(bool)
		if !ok {
			return nil, errors.Errorf("expected bool, got %T", v)
		}
		return b, nil

	case abi.StringTy:
		s, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("expected string, got %T", v)
		}
		return s, nil
	}

	// hand exotic values to the packer unchanged; it rejects what it cannot encode
	return v, nil
}
