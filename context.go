package ledger

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just a std context, with a few typed accessors defined below.
// It is passed through every operation so the host can attach deadlines or
// request scoped values, but the ledger core itself only reads the logger
// from it.
type Context = context.Context

type contextKey int

const (
	contextKeyLogger contextKey = iota
)

// DefaultLogger is used for every context that has not set its own.
var DefaultLogger = log.NewNopLogger()

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger stored in the context, or DefaultLogger if
// none was set.
func GetLogger(ctx Context) log.Logger {
	if ctx == nil {
		return DefaultLogger
	}
	if logger, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}
