// Package logging decouples the rest of the server from a concrete
// logging backend behind a small context-aware interface.
package logging

import "context"

// Logger logs structured messages. Variadic args are alternating
// key-value pairs, as in log/slog:
//
//	logger.Info(ctx, "alert created", "alert_id", id)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs
	// on every record.
	With(args ...any) Logger
}
