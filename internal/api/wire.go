//go:build wireinject

package api

import (
	"github.com/google/wire"

	"github.com/arcadia-dao/timelock-admin/internal/config"
	"github.com/arcadia-dao/timelock-admin/internal/metrics"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewClock,
	NewSigner,
	NewAudit,
	NewChainClient,
	NewWatcher,
	metrics.New,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NoTest)
	return new(Server), nil
}
