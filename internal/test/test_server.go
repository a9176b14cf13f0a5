package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/api/router"
	"github.com/arcadia-dao/timelock-admin/internal/config"
)

// TestPrivateKey is a throwaway development key (hardhat account 0).
const TestPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// TestAPIKey guards the /api/v1 groups in tests.
const TestAPIKey = "test-api-key"

// DefaultTestConfig returns a server config suitable for handler tests:
// local signer with a fixed key, audit trail in a temp dir, no chain access.
func DefaultTestConfig(t *testing.T) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Echo.ListenAddress = ":0"
	cfg.Logger.Level = zerolog.WarnLevel
	cfg.Logger.PrettyPrintConsole = false
	cfg.Auth.AdminAPIKey = TestAPIKey
	cfg.Signer.Type = "local"
	cfg.Signer.PrivateKey = TestPrivateKey
	cfg.Audit.LocalPath = filepath.Join(t.TempDir(), "audit.jsonl")
	cfg.Audit.S3Bucket = ""
	cfg.Chain.RPCURLs = nil
	cfg.Watcher.Enabled = false

	return cfg
}

// WithTestServer runs closure against a fully wired server. The HTTP listener
// is never started; requests go through PerformRequest.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServer(DefaultTestConfig(t))
	require.NoError(t, err)

	router.Init(s)

	defer func() {
		if errs := s.Shutdown(context.Background()); len(errs) > 0 {
			t.Logf("errors during test server shutdown: %v", errs)
		}
	}()

	closure(s)
}
