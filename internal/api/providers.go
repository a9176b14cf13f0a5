package api

import (
	"context"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/rs/zerolog/log"

	"github.com/arcadia-dao/timelock-admin/internal/audit"
	"github.com/arcadia-dao/timelock-admin/internal/chain"
	"github.com/arcadia-dao/timelock-admin/internal/config"
	"github.com/arcadia-dao/timelock-admin/internal/signer"
	"github.com/arcadia-dao/timelock-admin/internal/watch"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

func NewSigner(cfg config.Server) (signer.Signer, error) {
	return signer.New(context.Background(), signer.Config{
		Type:           cfg.Signer.Type,
		PrivateKey:     cfg.Signer.PrivateKey,
		KMSKeyID:       cfg.Signer.KMSKeyID,
		AWSRegion:      cfg.Signer.AWSRegion,
		AWSEndpointURL: cfg.Signer.AWSEndpointURL,
		RequestTimeout: cfg.Signer.RequestTimeout,
	})
}

func NewAudit(cfg config.Server) (*audit.Service, error) {
	return audit.NewService(context.Background(), audit.Config{
		LocalPath:       cfg.Audit.LocalPath,
		S3Bucket:        cfg.Audit.S3Bucket,
		S3Prefix:        cfg.Audit.S3Prefix,
		S3SSE:           cfg.Audit.S3SSE,
		S3ObjectLock:    cfg.Audit.S3ObjectLock,
		S3RetentionDays: cfg.Audit.S3RetentionDays,
		S3UploadTimeout: cfg.Audit.S3UploadTimeout,
	}, cfg.Signer.AWSEndpointURL, cfg.Signer.AWSRegion)
}

// NewChainClient connects to the configured RPC endpoints. A deployment
// without RPC endpoints runs encode and sign only, so nil is not an error.
func NewChainClient(cfg config.Server) *chain.RPCClient {
	if len(cfg.Chain.RPCURLs) == 0 {
		log.Warn().Msg("No RPC endpoints configured, chain status queries are disabled")
		return nil
	}

	client, err := chain.NewRPCClient(cfg.Chain.RPCURLs)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to RPC endpoints, chain status queries are disabled")
		return nil
	}

	return client
}

func NewWatcher(cfg config.Server, client *chain.RPCClient, clock time2.Clock) *watch.Watcher {
	if !cfg.Watcher.Enabled || client == nil {
		return nil
	}

	return watch.New(client, cfg.Watcher, cfg.Chain.TimelockAddress, clock)
}

func NoTest() []*testing.T {
	return nil
}
