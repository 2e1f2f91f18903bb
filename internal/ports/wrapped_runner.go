package ports

import (
	"context"
	"io"
)

// WrappedRunner executes the wrapped compiler binary.
type WrappedRunner interface {
	// Passthrough inherits every stream.
	Passthrough(ctx context.Context, exe string, args []string) (int, error)
	// Run copies stderr to sink as well as the terminal.
	Run(ctx context.Context, exe string, args []string, sink io.Writer) (int, error)
}
