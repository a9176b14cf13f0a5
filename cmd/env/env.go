package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arcadia-dao/timelock-admin/internal/config"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the effective server config",
		Long: `Prints the parsed environment configuration as JSON.
Secrets are redacted.`,
		Run: func(_ *cobra.Command, _ []string) {
			printConfig()
		},
	}
}

func printConfig() {
	cfg := config.DefaultServiceConfigFromEnv()

	// never print key material
	if cfg.Auth.AdminAPIKey != "" {
		cfg.Auth.AdminAPIKey = "<redacted>"
	}
	if cfg.Signer.PrivateKey != "" {
		cfg.Signer.PrivateKey = "<redacted>"
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal server config")
	}

	fmt.Println(string(out))
}
