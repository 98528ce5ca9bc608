package cmdlog

import (
	"github.com/rs/zerolog"

	"listlens/internal/metrics"
)

// Run wraps a CLI command with run/error metrics and a structured outcome log.
func Run(log zerolog.Logger, cmd string, f func() error) error {
	metrics.IncCommandRun(cmd)
	err := f()
	if err != nil {
		metrics.IncCommandError(cmd)
		log.Error().Str("command", cmd).Err(err).Msg("command failed")
	} else {
		log.Info().Str("command", cmd).Msg("command ok")
	}
	return err
}
