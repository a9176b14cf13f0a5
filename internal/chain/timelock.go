package chain

import (
	"context"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// timelockControllerABI covers the read-only operation state getters of
// an OpenZeppelin TimelockController.
const timelockControllerABI = `[
	{"name":"isOperationPending","type":"function","stateMutability":"view","inputs":[{"name":"id","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]},
	{"name":"isOperationReady","type":"function","stateMutability":"view","inputs":[{"name":"id","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]},
	{"name":"isOperationDone","type":"function","stateMutability":"view","inputs":[{"name":"id","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]}
]`

var (
	timelockABI     abi.ABI
	timelockABIOnce sync.Once
	timelockABIErr  error
)

func loadTimelockABI() (abi.ABI, error) {
	timelockABIOnce.Do(func() {
		timelockABI, timelockABIErr = abi.JSON(strings.NewReader(timelockControllerABI))
	})
	return timelockABI, timelockABIErr
}

// OperationStatus is the on-chain lifecycle state of a scheduled operation.
type OperationStatus struct {
	Pending bool
	Ready   bool
	Done    bool
}

// TimelockStatus queries the three state getters for the given operation
// identifier against the configured timelock contract.
func (c *RPCClient) TimelockStatus(ctx context.Context, contract common.Address, opID common.Hash) (OperationStatus, error) {
	var status OperationStatus

	parsed, err := loadTimelockABI()
	if err != nil {
		return status, errors.Wrap(err, "failed to parse timelock ABI")
	}

	pending, err := c.callBoolGetter(ctx, parsed, contract, "isOperationPending", opID)
	if err != nil {
		return status, err
	}
	ready, err := c.callBoolGetter(ctx, parsed, contract, "isOperationReady", opID)
	if err != nil {
		return status, err
	}
	done, err := c.callBoolGetter(ctx, parsed, contract, "isOperationDone", opID)
	if err != nil {
		return status, err
	}

	status.Pending = pending
	status.Ready = ready
	status.Done = done
	return status, nil
}

func (c *RPCClient) callBoolGetter(ctx context.Context, parsed abi.ABI, contract common.Address, method string, opID common.Hash) (bool, error) {
	data, err := parsed.Pack(method, [32]byte(opID))
	if err != nil {
		return false, errors.Wrapf(err, "failed to pack %s call", method)
	}

	resp, err := c.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	})
	if err != nil {
		return false, errors.Wrapf(err, "failed to call %s", method)
	}

	out, err := parsed.Unpack(method, resp)
	if err != nil {
		return false, errors.Wrapf(err, "failed to unpack %s result", method)
	}
	if len(out) != 1 {
		return false, errors.Errorf("unexpected %s result arity %d", method, len(out))
	}

	result, ok := out[0].(bool)
	if !ok {
		return false, errors.Errorf("unexpected %s result type %T", method, out[0])
	}

	return result, nil
}
