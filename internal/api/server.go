package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/arcadia-dao/timelock-admin/internal/audit"
	"github.com/arcadia-dao/timelock-admin/internal/chain"
	"github.com/arcadia-dao/timelock-admin/internal/config"
	"github.com/arcadia-dao/timelock-admin/internal/metrics"
	"github.com/arcadia-dao/timelock-admin/internal/signer"
	"github.com/arcadia-dao/timelock-admin/internal/util"
	"github.com/arcadia-dao/timelock-admin/internal/watch"
)

type Router struct {
	Routes        []*echo.Route
	Root          *echo.Group
	Management    *echo.Group
	APIV1Timelock *echo.Group
	APIV1Signer   *echo.Group
	APIV1Audit    *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config  config.Server
	Clock   time2.Clock
	Metrics *metrics.Service
	Signer  signer.Signer
	Audit   *audit.Service

	// Chain and Watcher stay nil unless RPC endpoints are configured.
	Chain   *chain.RPCClient `ready:"-"`
	Watcher *watch.Watcher   `ready:"-"`
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	clock time2.Clock,
	metrics *metrics.Service,
	sgn signer.Signer,
	auditService *audit.Service,
	chainClient *chain.RPCClient,
	watcher *watch.Watcher,
) *Server {
	return &Server{
		Config:  cfg,
		Clock:   clock,
		Metrics: metrics,
		Signer:  sgn,
		Audit:   auditService,
		Chain:   chainClient,
		Watcher: watcher,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Watcher != nil {
		log.Debug().Msg("Stopping chain watcher")
		s.Watcher.Stop()
	}

	if s.Chain != nil {
		log.Debug().Msg("Closing RPC clients")
		s.Chain.Close()
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
