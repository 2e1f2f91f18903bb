package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/vexmason/internal/app/argv"
	"github.com/aalvaropc/vexmason/internal/domain"
	"github.com/aalvaropc/vexmason/internal/infra/config"
	"github.com/aalvaropc/vexmason/internal/infra/logger"
	"github.com/aalvaropc/vexmason/internal/infra/projectfinder"
	"github.com/aalvaropc/vexmason/internal/infra/proxy"
	"github.com/aalvaropc/vexmason/internal/infra/settings"
	"github.com/aalvaropc/vexmason/internal/infra/transform"
	"github.com/aalvaropc/vexmason/internal/usecase"
)

// toolCtx wires machine settings to the infra adapters.
type toolCtx struct {
	settings domain.Settings
	layout   domain.Layout
	finder   *projectfinder.Finder
	resolver *usecase.ResolveConfig
}

func loadTool() (*toolCtx, error) {
	s, err := settings.Load(settings.DefaultPath())
	if err != nil {
		return nil, err
	}
	return newTool(s), nil
}

func newTool(s domain.Settings) *toolCtx {
	layout := domain.DefaultLayout()
	return &toolCtx{
		settings: s,
		layout:   layout,
		finder:   projectfinder.NewFinder(layout),
		resolver: usecase.NewResolveConfig(config.NewSource(), layout),
	}
}

// manages reports whether args write a file inside a managed project.
func (tc *toolCtx) manages(args []string) bool {
	entry, ok := argv.EntryPoint(args)
	if !ok || entry == "" {
		return false
	}
	_, err := tc.finder.FindRoot(entry)
	return !domain.IsKind(err, domain.KindNotFound)
}

func (tc *toolCtx) build() *usecase.Build {
	return usecase.NewBuild(
		tc.finder,
		tc.resolver,
		transform.New(tc.settings.Transform),
		proxy.New(),
		logger.NewSink(tc.layout, tc.settings.Log),
	)
}

// projectRoot finds the project containing dir, or the working directory
// when dir is empty.
func (tc *toolCtx) projectRoot(dir string) (string, error) {
	d := strings.TrimSpace(dir)
	if d == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		d = wd
	}

	abs, err := filepath.Abs(d)
	if err != nil {
		return "", fmt.Errorf("invalid project path: %w", err)
	}
	return tc.finder.FindRoot(abs)
}
