package watch

import (
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// timelockEventsABI covers the TimelockController lifecycle events.
const timelockEventsABI = `[
	{"name":"CallScheduled","type":"event","inputs":[
		{"name":"id","type":"bytes32","indexed":true},
		{"name":"index","type":"uint256","indexed":true},
		{"name":"target","type":"address","indexed":false},
		{"name":"value","type":"uint256","indexed":false},
		{"name":"data","type":"bytes","indexed":false},
		{"name":"predecessor","type":"bytes32","indexed":false},
		{"name":"delay","type":"uint256","indexed":false}]},
	{"name":"CallExecuted","type":"event","inputs":[
		{"name":"id","type":"bytes32","indexed":true},
		{"name":"index","type":"uint256","indexed":true},
		{"name":"target","type":"address","indexed":false},
		{"name":"value","type":"uint256","indexed":false},
		{"name":"data","type":"bytes","indexed":false}]},
	{"name":"Cancelled","type":"event","inputs":[
		{"name":"id","type":"bytes32","indexed":true}]}
]`

var (
	eventsABI     abi.ABI
	eventsABIOnce sync.Once
	eventsABIErr  error
)

func loadEventsABI() (abi.ABI, error) {
	eventsABIOnce.Do(func() {
		eventsABI, eventsABIErr = abi.JSON(strings.NewReader(timelockEventsABI))
	})
	return eventsABI, eventsABIErr
}

type scheduledEvent struct {
	ID          common.Hash
	Target      common.Address
	Value       *big.Int
	Data        []byte
	Predecessor common.Hash
	Delay       *big.Int
}

type executedEvent struct {
	ID     common.Hash
	Target common.Address
	Value  *big.Int
}

func decodeScheduled(parsed abi.ABI, lg types.Log) (*scheduledEvent, error) {
	if len(lg.Topics) < 2 {
		return nil, errors.New("missing indexed topics on CallScheduled log")
	}

	values, err := parsed.Unpack("CallScheduled", lg.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack CallScheduled")
	}
	if len(values) != 5 {
		return nil, errors.Errorf("unexpected CallScheduled arity %d", len(values))
	}

	ev := &scheduledEvent{ID: lg.Topics[1]}
	var ok bool
	if ev.Target, ok = values[0].(common.Address); !ok {
		return nil, errors.New("unexpected CallScheduled target type")
	}
	if ev.Value, ok = values[1].(*big.Int); !ok {
		return nil, errors.New("unexpected CallScheduled value type")
	}
	if ev.Data, ok = values[2].([]byte); !ok {
		return nil, errors.New("unexpected CallScheduled data type")
	}
	pred, ok := values[3].([32]byte)
	if !ok {
		return nil, errors.New("unexpected CallScheduled predecessor type")
	}
	ev.Predecessor = common.Hash(pred)
	if ev.Delay, ok = values[4].(*big.Int); !ok {
		return nil, errors.New("unexpected CallScheduled delay type")
	}

	return ev, nil
}

func decodeExecuted(parsed abi.ABI, lg types.Log) (*executedEvent, error) {
	if len(lg.Topics) < 2 {
		return nil, errors.New("missing indexed topics on CallExecuted log")
	}

	values, err := parsed.Unpack("CallExecuted", lg.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack CallExecuted")
	}
	if len(values) != 3 {
		return nil, errors.Errorf("unexpected CallExecuted arity %d", len(values))
	}

	ev := &executedEvent{ID: lg.Topics[1]}
	var ok bool
	if ev.Target, ok = values[0].(common.Address); !ok {
		return nil, errors.New("unexpected CallExecuted target type")
	}
	if ev.Value, ok = values[1].(*big.Int); !ok {
		return nil, errors.New("unexpected CallExecuted value type")
	}

	return ev, nil
}
