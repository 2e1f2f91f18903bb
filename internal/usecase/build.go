package usecase

import (
	"context"
	"log/slog"
	"slices"

	"github.com/aalvaropc/vexmason/internal/app/argv"
	"github.com/aalvaropc/vexmason/internal/ctxlog"
	"github.com/aalvaropc/vexmason/internal/domain"
	"github.com/aalvaropc/vexmason/internal/ports"
)

// Build intercepts one invocation of the wrapped compiler.
type Build struct {
	locator  ports.ProjectLocator
	resolver *ResolveConfig
	compiler ports.Compiler
	runner   ports.WrappedRunner
	buildLog ports.BuildLog
	rewriter *argv.Rewriter
}

type BuildOption func(*Build)

func WithRewriter(r *argv.Rewriter) BuildOption {
	return func(uc *Build) {
		if r != nil {
			uc.rewriter = r
		}
	}
}

func NewBuild(
	pl ports.ProjectLocator,
	rc *ResolveConfig,
	c ports.Compiler,
	wr ports.WrappedRunner,
	bl ports.BuildLog,
	opts ...BuildOption,
) *Build {
	uc := &Build{
		locator:  pl,
		resolver: rc,
		compiler: c,
		runner:   wr,
		buildLog: bl,
		rewriter: argv.NewRewriter(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs exe with args and returns its exit code. Invocations that do
// not target a managed project are proxied unchanged. A returned error means
// the wrapped binary never ran.
func (uc *Build) Execute(ctx context.Context, exe string, args []string) (int, error) {
	entry, ok := argv.EntryPoint(args)
	if !ok || entry == "" {
		return uc.runner.Passthrough(ctx, exe, args)
	}

	root, err := uc.locator.FindRoot(entry)
	if domain.IsKind(err, domain.KindNotFound) {
		return uc.runner.Passthrough(ctx, exe, args)
	}
	if err != nil {
		return 0, err
	}

	sink, log, err := uc.buildLog.Open(root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = uc.buildLog.Close() }()

	ctx = ctxlog.WithLogger(ctx, log)
	log.Info("intercepted compiler invocation", "entry_point", entry, "project_root", root)

	cfg, err := uc.resolver.Execute(ctx, root)
	if err != nil {
		log.Error("failed to resolve config", "error", err)
		return 0, err
	}
	logResolved(log, cfg)

	if argv.HasFlag(args, argv.FlagWrite) {
		req := domain.NewCompileRequest(cfg)
		log.Info("compiling entry file", "input", req.Input, "output", req.Output)
		if _, _, err := uc.compiler.Compile(ctx, req); err != nil {
			log.Error("transform failed", "error", err)
			return 0, err
		}
	}

	rewritten := slices.Clone(args)
	uc.rewriter.Rewrite(rewritten, cfg, log)

	log.Info("command line", "command", argv.Quote(append([]string{exe}, rewritten...)))
	return uc.runner.Run(ctx, exe, rewritten, sink)
}

func logResolved(log *slog.Logger, cfg domain.ResolvedConfig) {
	defines := make([]any, 0, len(cfg.Defines))
	for _, name := range cfg.DefineNames() {
		defines = append(defines, slog.String(name, cfg.Defines[name].String()))
	}

	log.Info("resolved config",
		"config_version", cfg.ConfigVersion,
		"computer_name", cfg.ComputerName,
		"name", cfg.Name,
		"description", cfg.Description,
		"language", cfg.Language,
		"minify", cfg.Minify,
		"project_root", cfg.ProjectRoot,
		"entry_file", cfg.EntryFile,
		slog.Group("defines", defines...),
	)
}
