package projectfinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/vexmason/internal/domain"
)

// Finder locates a managed project root by searching upward for a directory
// holding both the project marker and the base config.
type Finder struct {
	layout domain.Layout
}

func NewFinder(layout domain.Layout) *Finder {
	return &Finder{layout: layout}
}

func (f *Finder) FindRoot(start string) (string, error) {
	if start == "" {
		return "", &domain.OpError{
			Op:   "projectfinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start path is empty"),
		}
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", &domain.OpError{
			Op:   "projectfinder.findroot",
			Kind: domain.KindExecution,
			Path: start,
			Err:  err,
		}
	}

	// The entry point is normally a file; search from its directory.
	info, statErr := os.Stat(abs)
	if statErr != nil || !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		if f.isRoot(cur) {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root.
			return "", &domain.OpError{
				Op:   "projectfinder.findroot",
				Kind: domain.KindNotFound,
				Path: start,
				Err:  domain.ErrNoProject,
			}
		}
		cur = parent
	}
}

func (f *Finder) isRoot(dir string) bool {
	return isFile(f.layout.MarkerPath(dir)) && isFile(f.layout.ConfigPath(dir))
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
