package ports

import (
	"io"
	"log/slog"
)

type BuildLog interface {
	Open(root string) (io.Writer, *slog.Logger, error)
	Close() error
}
