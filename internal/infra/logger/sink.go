package logger

import (
	"io"
	"log/slog"

	"github.com/aalvaropc/vexmason/internal/domain"
)

// Sink opens the per-invocation build log of a project.
type Sink struct {
	layout  domain.Layout
	cfg     domain.LogSettings
	cleanup func() error
}

func NewSink(layout domain.Layout, cfg domain.LogSettings) *Sink {
	return &Sink{layout: layout, cfg: cfg}
}

// Open creates the build directory if needed and starts a fresh log there.
func (s *Sink) Open(root string) (io.Writer, *slog.Logger, error) {
	path := s.layout.LogPath(root)
	cleanup, err := Setup(Config{
		Path:   path,
		Debug:  s.cfg.Debug,
		Format: s.cfg.Format,
	})
	if err != nil {
		return nil, nil, &domain.OpError{
			Op:   "logger.open",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	s.cleanup = cleanup
	return Writer(), L(), nil
}

func (s *Sink) Close() error {
	if s.cleanup == nil {
		return nil
	}
	err := s.cleanup()
	s.cleanup = nil
	return err
}
