package timelock

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Bytes32FromHex turns an optional 0x hex string into a 32-byte value. An
// empty string yields 32 zero bytes. A short hex string is right-justified
// into the 32 bytes, i.e. padded with leading zero bytes; an over-long one is
// cut to its first 64 hex digits. Operation ids already scheduled on-chain
// were computed against exactly this padding, so it must not change.
func Bytes32FromHex(val string) ([32]byte, error) {
	var out [32]byte
	if val == "" {
		return out, nil
	}
	if !strings.HasPrefix(val, "0x") {
		return out, errors.Wrap(ErrInvalidBytes, "predecessor/salt must be a 0x hex string")
	}

	h := val[2:]
	if len(h) < 64 {
		h = strings.Repeat("0", 64-len(h)) + h
	} else if len(h) > 64 {
		h = h[:64]
	}

	b, err := hex.DecodeString(h)
	if err != nil {
		return out, errors.Wrapf(ErrInvalidBytes, "predecessor/salt: %v", err)
	}
	copy(out[:], b)

	return out, nil
}

// ComputeOpIDSingle reproduces TimelockController.hashOperation for a single
// scheduled call. When saltHex is empty a salt is derived deterministically
// from (data, target, value, predecessor) and returned so the caller can
// persist it for the matching execute call; otherwise saltHex is echoed back
// unchanged.
func ComputeOpIDSingle(target common.Address, value *big.Int, data []byte, predecessorHex, saltHex string) (common.Hash, string, error) {
	predecessor, err := Bytes32FromHex(predecessorHex)
	if err != nil {
		return common.Hash{}, "", err
	}
	if value == nil {
		value = new(big.Int)
	}

	var salt [32]byte
	saltUsed := saltHex
	if saltHex != "" {
		salt, err = Bytes32FromHex(saltHex)
		if err != nil {
			return common.Hash{}, "", err
		}
	} else {
		encoded, err := packValues(
			[]string{"bytes", "address", "uint256", "bytes32"},
			data, target, value, predecessor,
		)
		if err != nil {
			return common.Hash{}, "", err
		}
		salt = crypto.Keccak256Hash(encoded)
		saltUsed = hexutil.Encode(salt[:])
	}

	innerHash := crypto.Keccak256Hash(data)

	encodedTop, err := packValues(
		[]string{"address", "uint256", "bytes32", "bytes32", "bytes32"},
		target, value, [32]byte(innerHash), predecessor, salt,
	)
	if err != nil {
		return common.Hash{}, "", err
	}

	return crypto.Keccak256Hash(encodedTop), saltUsed, nil
}

// ComputeOpIDBatch reproduces TimelockController.hashOperationBatch. All
// payloads are concatenated without separators and hashed once; this is why
// a 1-element batch never yields the same id as the equivalent single call.
func ComputeOpIDBatch(targets []common.Address, values []*big.Int, datas [][]byte, predecessorHex, saltHex string) (common.Hash, string, error) {
	predecessor, err := Bytes32FromHex(predecessorHex)
	if err != nil {
		return common.Hash{}, "", err
	}

	bigValues := make([]*big.Int, 0, len(values))
	for _, v := range values {
		if v == nil {
			v = new(big.Int)
		}
		bigValues = append(bigValues, v)
	}

	var packed []byte
	for _, d := range datas {
		packed = append(packed, d...)
	}
	packedHash := crypto.Keccak256Hash(packed)

	var salt [32]byte
	saltUsed := saltHex
	if saltHex != "" {
		salt, err = Bytes32FromHex(saltHex)
		if err != nil {
			return common.Hash{}, "", err
		}
	} else {
		encoded, err := packValues(
			[]string{"address[]", "uint256[]", "bytes32", "bytes32"},
			targets, bigValues, [32]byte(packedHash), predecessor,
		)
		if err != nil {
			return common.Hash{}, "", err
		}
		salt = crypto.Keccak256Hash(encoded)
		saltUsed = hexutil.Encode(salt[:])
	}

	encodedTop, err := packValues(
		[]string{"address[]", "uint256[]", "bytes32", "bytes32", "bytes32"},
		targets, bigValues, [32]byte(packedHash), predecessor, salt,
	)
	if err != nil {
		return common.Hash{}, "", err
	}

	return crypto.Keccak256Hash(encodedTop), saltUsed, nil
}

// packValues ABI-encodes values against a fixed list of elementary types.
// Failures here mean a defective ABI library, not bad input.
func packValues(types []string, values ...interface{}) ([]byte, error) {
	arguments := make(abi.Arguments, 0, len(types))
	for _, t := range types {
		abiType, err := abi.NewType(t, "", nil)
		if err != nil {
			return nil, errors.Wrapf(ErrHashComputation, "type %q: %v", t, err)
		}
		arguments = append(arguments, abi.Argument{Type: abiType})
	}

	encoded, err := arguments.Pack(values...)
	if err != nil {
		return nil, errors.Wrapf(ErrHashComputation, "pack: %v", err)
	}

	return encoded, nil
}
