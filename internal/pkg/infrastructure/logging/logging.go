package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/rs/zerolog"
)

// NewLogger creates the service logger and stores it in the returned context so
// that it can be picked up with logging.GetFromContext further down the stack.
// Unknown levels fall back to info.
func NewLogger(ctx context.Context, serviceName, serviceVersion, level string) (context.Context, zerolog.Logger) {
	return newLogger(ctx, os.Stdout, serviceName, serviceVersion, level)
}

func newLogger(ctx context.Context, w io.Writer, serviceName, serviceVersion, level string) (context.Context, zerolog.Logger) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(lvl).With().
		Timestamp().
		Str("service", strings.ToLower(serviceName)).
		Str("version", serviceVersion).
		Logger()

	return logging.NewContextWithLogger(ctx, logger), logger
}
