package util

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigureLogger sets up the global zerolog logger. Called once at process
// start before any component logs.
func ConfigureLogger(level zerolog.Level, prettyPrintConsole bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	if prettyPrintConsole {
		log.Logger = log.Logger.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}
}

// LogFromContext returns the request-scoped logger if one was attached by the
// logging middleware, else the global logger.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &log.Logger
	}

	return l
}

// LogLevelFromString parses level, falling back to debug on garbage input.
func LogLevelFromString(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to parse log level %q, defaulting to %s", level, zerolog.DebugLevel)
		return zerolog.DebugLevel
	}

	return l
}
