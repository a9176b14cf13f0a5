package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/api/router"
	"github.com/arcadia-dao/timelock-admin/internal/config"
	"github.com/arcadia-dao/timelock-admin/internal/util"
	"github.com/arcadia-dao/timelock-admin/internal/watch"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the stateless RESTful JSON server

Requires configuration through ENV.`,
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}

	return cmd
}

func runServer() {
	cfg := config.DefaultServiceConfigFromEnv()

	util.ConfigureLogger(cfg.Logger.Level, cfg.Logger.PrettyPrintConsole)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server components")
	}

	router.Init(s)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.Watcher != nil {
		s.Watcher.OnAlert = func(alert watch.Alert) {
			s.Metrics.WatcherAlertsTotal.WithLabelValues(alert.Kind).Inc()
		}

		if err := s.Watcher.Start(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to start chain watcher")
		}
	}

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Error().Errs("errors", errs).Msg("Errors during server shutdown")
		os.Exit(1)
	}
}
