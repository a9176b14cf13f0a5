// Package watch polls new blocks and raises alerts on suspicious timelock
// activity: schedules with unusually short delays or large values,
// cancellations, and blocks with abnormal transaction counts.
package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/arcadia-dao/timelock-admin/internal/chain"
	"github.com/arcadia-dao/timelock-admin/internal/config"

	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const maxStoredAlerts = 500

// bigValueThreshold flags scheduled calls moving more than 100 ETH.
var bigValueThreshold = new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))

type Alert struct {
	Severity string    `json:"severity"`
	Kind     string    `json:"kind"`
	Message  string    `json:"message"`
	OpID     string    `json:"opId,omitempty"`
	Block    int64     `json:"block"`
	TS       time.Time `json:"ts"`
}

// Watcher follows the chain head and inspects every new block for timelock
// events. It keeps a bounded in-memory alert log and optionally forwards
// alerts to a webhook.
type Watcher struct {
	client      *chain.RPCClient
	cfg         config.WatcherServer
	contract    common.Address
	hasContract bool
	clock       time2.Clock
	httpClient  *http.Client

	// OnAlert, when set, is invoked for every raised alert.
	OnAlert func(Alert)

	mu     sync.RWMutex
	alerts []Alert

	stopCh   chan struct{}
	stopOnce sync.Once
}

func New(client *chain.RPCClient, cfg config.WatcherServer, timelockAddress string, clock time2.Clock) *Watcher {
	w := &Watcher{
		client:     client,
		cfg:        cfg,
		clock:      clock,
		httpClient: &http.Client{Timeout: 3 * time.Second},
		stopCh:     make(chan struct{}),
	}

	if common.IsHexAddress(timelockAddress) {
		w.contract = common.HexToAddress(timelockAddress)
		w.hasContract = true
	}

	return w
}

// Start begins the polling loop from the current chain head.
func (w *Watcher) Start(ctx context.Context) error {
	startBlock, err := w.client.GetLatestBlockNumber(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get start block")
	}

	log.Info().
		Str("start_block", startBlock.String()).
		Bool("timelock_configured", w.hasContract).
		Msg("Starting timelock watcher")

	go w.pollLoop(ctx, startBlock)

	return nil
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
}

// Alerts returns raised alerts, newest first.
func (w *Watcher) Alerts() []Alert {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Alert, len(w.alerts))
	for i, a := range w.alerts {
		out[len(w.alerts)-1-i] = a
	}
	return out
}

func (w *Watcher) pollLoop(ctx context.Context, startBlock *big.Int) {
	currentBlock := new(big.Int).Add(startBlock, big.NewInt(1))
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Timelock watcher stopped by context")
			return
		case <-w.stopCh:
			log.Info().Msg("Timelock watcher stopped")
			return
		case <-ticker.C:
			latestBlock, err := w.client.GetLatestBlockNumber(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to get latest block number")
				continue
			}

			for currentBlock.Cmp(latestBlock) <= 0 {
				if err := w.inspectBlock(ctx, currentBlock); err != nil {
					log.Error().
						Str("block", currentBlock.String()).
						Err(err).
						Msg("Failed to inspect block")
					break
				}

				currentBlock = new(big.Int).Add(currentBlock, big.NewInt(1))
			}
		}
	}
}

func (w *Watcher) inspectBlock(ctx context.Context, blockNumber *big.Int) error {
	block, err := w.client.GetBlockByNumber(ctx, blockNumber)
	if err != nil {
		return errors.Wrapf(err, "failed to get block %s", blockNumber.String())
	}

	if txCount := len(block.Transactions()); w.cfg.BlockTxThreshold > 0 && txCount > w.cfg.BlockTxThreshold {
		w.raise(Alert{
			Severity: "warning",
			Kind:     "busy_block",
			Message:  "block transaction count exceeds threshold",
			Block:    blockNumber.Int64(),
		})
	}

	if !w.hasContract {
		return nil
	}

	logs, err := w.client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: blockNumber,
		ToBlock:   blockNumber,
		Addresses: []common.Address{w.contract},
	})
	if err != nil {
		return errors.Wrap(err, "failed to filter timelock logs")
	}

	for _, lg := range logs {
		if err := w.inspectLog(lg); err != nil {
			log.Warn().
				Str("tx_hash", lg.TxHash.Hex()).
				Err(err).
				Msg("Failed to decode timelock log, skipping")
		}
	}

	log.Debug().
		Int64("block_number", blockNumber.Int64()).
		Int("tx_count", len(block.Transactions())).
		Int("timelock_logs", len(logs)).
		Msg("Block inspected")

	return nil
}

func (w *Watcher) inspectLog(lg types.Log) error {
	parsed, err := loadEventsABI()
	if err != nil {
		return errors.Wrap(err, "failed to parse event ABI")
	}
	if len(lg.Topics) == 0 {
		return nil
	}

	blockNumber := int64(lg.BlockNumber) //nolint:gosec

	switch lg.Topics[0] {
	case parsed.Events["CallScheduled"].ID:
		ev, err := decodeScheduled(parsed, lg)
		if err != nil {
			return err
		}

		delay := time.Duration(ev.Delay.Int64()) * time.Second
		if w.cfg.MinDelay > 0 && ev.Delay.IsInt64() && delay < w.cfg.MinDelay {
			w.raise(Alert{
				Severity: "critical",
				Kind:     "short_delay",
				Message:  "operation scheduled with delay below the expected minimum",
				OpID:     ev.ID.Hex(),
				Block:    blockNumber,
			})
		}
		if ev.Value.Cmp(bigValueThreshold) > 0 {
			w.raise(Alert{
				Severity: "warning",
				Kind:     "large_value",
				Message:  "operation scheduled with unusually large value",
				OpID:     ev.ID.Hex(),
				Block:    blockNumber,
			})
		}

		log.Info().
			Str("op_id", ev.ID.Hex()).
			Str("target", ev.Target.Hex()).
			Str("value", ev.Value.String()).
			Str("delay", ev.Delay.String()).
			Msg("Timelock operation scheduled")

	case parsed.Events["CallExecuted"].ID:
		ev, err := decodeExecuted(parsed, lg)
		if err != nil {
			return err
		}

		log.Info().
			Str("op_id", ev.ID.Hex()).
			Str("target", ev.Target.Hex()).
			Msg("Timelock operation executed")

	case parsed.Events["Cancelled"].ID:
		if len(lg.Topics) < 2 {
			return errors.New("missing indexed topic on Cancelled log")
		}

		w.raise(Alert{
			Severity: "warning",
			Kind:     "cancelled",
			Message:  "timelock operation cancelled",
			OpID:     lg.Topics[1].Hex(),
			Block:    blockNumber,
		})
	}

	return nil
}

func (w *Watcher) raise(alert Alert) {
	alert.TS = w.clock.Now().UTC()

	w.mu.Lock()
	w.alerts = append(w.alerts, alert)
	if len(w.alerts) > maxStoredAlerts {
		w.alerts = w.alerts[len(w.alerts)-maxStoredAlerts:]
	}
	w.mu.Unlock()

	log.Warn().
		Str("severity", alert.Severity).
		Str("kind", alert.Kind).
		Str("op_id", alert.OpID).
		Int64("block", alert.Block).
		Msg(alert.Message)

	if w.OnAlert != nil {
		w.OnAlert(alert)
	}

	if w.cfg.AlertWebhook != "" {
		go w.forward(alert)
	}
}

func (w *Watcher) forward(alert Alert) {
	body, err := json.Marshal(alert)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal alert for webhook")
		return
	}

	resp, err := w.httpClient.Post(w.cfg.AlertWebhook, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("Failed to forward alert to webhook")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Error().Int("status", resp.StatusCode).Msg("Alert webhook returned error status")
	}
}
