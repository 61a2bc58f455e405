package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

type Runner func(ctx context.Context, logger zerolog.Logger) error

// Run wires signal handling around a service entrypoint and converts the
// outcome into an exit code.
func Run(serviceName string, run Runner) int {
	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	logger.Info().Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, logger)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info().Msg("stopped")
		return 0
	default:
		logger.Error().Err(err).Msg("failed")
		return 1
	}
}
