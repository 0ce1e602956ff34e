// Package logging is the structured logger used by the server and the CLI.
package logging

import "context"

// Logger logs key-value pairs with a context:
//
//	log.Info(ctx, "transaction applied", "signature", id, "kind", kind)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying args on every record.
	With(args ...any) Logger
}
