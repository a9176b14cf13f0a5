package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/config"
	"github.com/arcadia-dao/timelock-admin/internal/util"
)

// NewSubcommandGroup returns a cobra command that only dispatches to its
// subcommands and prints usage otherwise.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s related subcommands", use),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer initializes a server (without starting the HTTP listener), hands
// it to the closure and tears it down afterwards. Used by CLI commands that
// need fully wired components.
func WithServer(ctx context.Context, cfg config.Server, closure func(ctx context.Context, s *api.Server) error) error {
	util.ConfigureLogger(cfg.Logger.Level, cfg.Logger.PrettyPrintConsole)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server components")
		return err
	}

	defer func() {
		if errs := s.Shutdown(context.Background()); len(errs) > 0 {
			log.Error().Errs("errors", errs).Msg("Errors during server shutdown")
		}
	}()

	if closure == nil {
		return errors.New("no closure provided")
	}

	return closure(ctx, s)
}
