package chain

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RPCClient wraps one or more Ethereum JSON-RPC endpoints with failover.
// Endpoints that are unreachable at construction time are retried on use.
type RPCClient struct {
	urls    []string
	clients []*ethclient.Client
	mu      sync.RWMutex
	current int
}

func NewRPCClient(urls []string) (*RPCClient, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one RPC URL is required")
	}

	clients := make([]*ethclient.Client, 0, len(urls))
	for _, url := range urls {
		client, err := ethclient.Dial(url)
		if err != nil {
			log.Warn().
				Str("url", url).
				Err(err).
				Msg("Failed to connect to RPC node, will retry on use")
			clients = append(clients, nil)
			continue
		}
		clients = append(clients, client)
	}

	if allClientsNil(clients) {
		return nil, errors.New("failed to connect to any RPC node")
	}

	return &RPCClient{
		urls:    urls,
		clients: clients,
		current: 0,
	}, nil
}

func allClientsNil(clients []*ethclient.Client) bool {
	for _, client := range clients {
		if client != nil {
			return false
		}
	}
	return true
}

func (c *RPCClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, client := range c.clients {
		if client != nil {
			client.Close()
		}
	}
}

func (c *RPCClient) GetLatestBlockNumber(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	blockNumber, err := client.BlockNumber(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest block number")
	}

	const maxInt64 = 9223372036854775807
	if blockNumber > maxInt64 {
		return nil, errors.New("block number exceeds int64 maximum")
	}

	return big.NewInt(int64(blockNumber)), nil
}

func (c *RPCClient) GetBlockByNumber(ctx context.Context, blockNumber *big.Int) (*types.Block, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	block, err := client.BlockByNumber(ctx, blockNumber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get block by number")
	}

	return block, nil
}

func (c *RPCClient) GetChainID(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain ID")
	}

	return chainID, nil
}

func (c *RPCClient) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	logs, err := client.FilterLogs(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to filter logs")
	}

	return logs, nil
}

func (c *RPCClient) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	resp, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call contract")
	}

	return resp, nil
}

// getClient returns the first healthy client starting from the current index,
// reconnecting dead endpoints along the way.
func (c *RPCClient) getClient(ctx context.Context) (*ethclient.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := 0; i < len(c.clients); i++ {
		idx := (c.current + i) % len(c.clients)
		client := c.clients[idx]

		if client != nil {
			_, err := client.ChainID(ctx)
			if err == nil {
				if idx != c.current {
					c.mu.RUnlock()
					c.mu.Lock()
					c.current = idx
					c.mu.Unlock()
					c.mu.RLock()
				}
				return client, nil
			}

			log.Warn().
				Str("url", c.urls[idx]).
				Err(err).
				Msg("RPC client health check failed, will try to reconnect")
		}

		c.mu.RUnlock()
		c.mu.Lock()
		if c.clients[idx] == nil {
			client, err := ethclient.Dial(c.urls[idx])
			if err == nil {
				c.clients[idx] = client
				c.current = idx
				c.mu.Unlock()
				c.mu.RLock()
				return client, nil
			}
		}
		c.mu.Unlock()
		c.mu.RLock()
	}

	return nil, errors.New("all RPC clients are unavailable")
}
