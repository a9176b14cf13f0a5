package timelock_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-dao/timelock-admin/internal/timelock"
)

func TestEncodeTransfer(t *testing.T) {
	encoded, err := timelock.EncodeFunctionCall(
		"transfer(address,uint256)",
		[]interface{}{"0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "1000"},
	)
	require.NoError(t, err)

	// well-known ERC20 transfer selector
	assert.Equal(t, "0xa9059cbb", hexutil.Encode(encoded.Selector[:]))
	assert.Len(t, encoded.Data, 4+2*32)
	assert.Equal(t, encoded.Data[:4], encoded.Selector[:])

	// second word is the amount
	assert.Equal(t, big.NewInt(1000), new(big.Int).SetBytes(encoded.Data[36:68]))

	assert.Equal(t, []string{"address", "uint256"}, encoded.Types)
	assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", encoded.Args[0])
}

func TestEncodeSelectorUsesVerbatimSignature(t *testing.T) {
	// uint aliases canonicalize for encoding but NOT for the selector hash
	alias, err := timelock.EncodeFunctionCall(
		"transfer(address,uint)",
		[]interface{}{"0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "1000"},
	)
	require.NoError(t, err)

	full, err := timelock.EncodeFunctionCall(
		"transfer(address,uint256)",
		[]interface{}{"0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "1000"},
	)
	require.NoError(t, err)

	assert.NotEqual(t, full.Selector, alias.Selector)
	assert.Equal(t, []string{"address", "uint256"}, alias.CanonicalTypes)

	// argument words must be identical, only the selector differs
	assert.Equal(t, full.Data[4:], alias.Data[4:])
}

func TestEncodeSmallWidth(t *testing.T) {
	encoded, err := timelock.EncodeFunctionCall("setSmall(uint8)", []interface{}{float64(255)})
	require.NoError(t, err)

	assert.Len(t, encoded.Data, 4+32)
	assert.Equal(t, byte(0xff), encoded.Data[35])
}

func TestEncodeOverflowRejected(t *testing.T) {
	_, err := timelock.EncodeFunctionCall("setSmall(uint8)", []interface{}{float64(256)})

	var encErr *timelock.EncodingError
	assert.ErrorAs(t, err, &encErr)
}

func TestEncodeArityMismatch(t *testing.T) {
	_, err := timelock.EncodeFunctionCall("f(uint256,uint256)", []interface{}{"1"})

	var arityErr *timelock.ArityMismatchError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, 2, arityErr.Expected)
	assert.Equal(t, 1, arityErr.Actual)
}

func TestEncodeCoerceErrorCarriesIndex(t *testing.T) {
	_, err := timelock.EncodeFunctionCall(
		"f(uint256,address)",
		[]interface{}{"1", "not-an-address"},
	)

	var coerceErr *timelock.CoerceError
	require.ErrorAs(t, err, &coerceErr)
	assert.Equal(t, 1, coerceErr.Index)
	assert.Equal(t, "address", coerceErr.Type)
	assert.ErrorIs(t, err, timelock.ErrTypeMismatch)
}

func TestEncodeDynamicArrayRoundTrip(t *testing.T) {
	encoded, err := timelock.EncodeFunctionCall(
		"approveMany(address[],uint256)",
		[]interface{}{
			[]interface{}{
				"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
				"0x0000000000000000000000000000000000000001",
			},
			"7",
		},
	)
	require.NoError(t, err)

	addrSliceType, err := abi.NewType("address[]", "", nil)
	require.NoError(t, err)
	uintType, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)

	args := abi.Arguments{{Type: addrSliceType}, {Type: uintType}}
	values, err := args.Unpack(encoded.Data[4:])
	require.NoError(t, err)
	require.Len(t, values, 2)

	addrs, ok := values[0].([]common.Address)
	require.True(t, ok)
	require.Len(t, addrs, 2)
	assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", addrs[0].Hex())
	assert.Equal(t, big.NewInt(7), values[1])
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := timelock.EncodeFunctionCall("grantRole(bytes32,address)", []interface{}{
		"0x0000000000000000000000000000000000000000000000000000000000000000",
		"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
	})
	require.NoError(t, err)

	b, err := timelock.EncodeFunctionCall("grantRole(bytes32,address)", []interface{}{
		"0x0000000000000000000000000000000000000000000000000000000000000000",
		"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
	})
	require.NoError(t, err)

	assert.Equal(t, a.Data, b.Data)
}
