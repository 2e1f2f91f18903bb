package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/aalvaropc/vexmason/internal/app/template"
	"github.com/aalvaropc/vexmason/internal/ctxlog"
	"github.com/aalvaropc/vexmason/internal/domain"
	"github.com/aalvaropc/vexmason/internal/ports"
)

// ResolveConfig merges the base config with the local overrides of one project.
type ResolveConfig struct {
	source    ports.ConfigSource
	layout    domain.Layout
	templates *template.Evaluator
	supported string
}

type ResolveOption func(*ResolveConfig)

func WithEvaluator(e *template.Evaluator) ResolveOption {
	return func(uc *ResolveConfig) {
		if e != nil {
			uc.templates = e
		}
	}
}

// WithSupportedVersion sets the newest config version accepted.
func WithSupportedVersion(v string) ResolveOption {
	return func(uc *ResolveConfig) {
		if v != "" {
			uc.supported = v
		}
	}
}

func NewResolveConfig(src ports.ConfigSource, layout domain.Layout, opts ...ResolveOption) *ResolveConfig {
	uc := &ResolveConfig{
		source:    src,
		layout:    layout,
		templates: template.New(),
		supported: domain.CurrentConfigVersion,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute resolves the configuration of the project rooted at root. Soft
// problems are logged as warnings; everything else aborts resolution.
func (uc *ResolveConfig) Execute(ctx context.Context, root string) (domain.ResolvedConfig, error) {
	log := ctxlog.FromContext(ctx)

	root, err := filepath.Abs(root)
	if err != nil {
		return domain.ResolvedConfig{}, &domain.OpError{Op: "resolve.root", Kind: domain.KindInvalidConfig, Path: root, Err: err}
	}

	configPath := uc.layout.ConfigPath(root)
	raw, err := uc.source.LoadConfig(configPath)
	if err != nil {
		return domain.ResolvedConfig{}, err
	}

	overridesPath := uc.layout.OverridesPath(root)
	overrides, err := uc.source.LoadOverrides(overridesPath, raw.ConfigVersion)
	if err != nil {
		return domain.ResolvedConfig{}, err
	}

	if raw.ConfigVersion != overrides.ConfigVersion {
		return domain.ResolvedConfig{}, &domain.OpError{
			Op:   "resolve.version",
			Kind: domain.KindVersionMismatch,
			Path: overridesPath,
			Err: fmt.Errorf("%w: config is %q, overrides are %q",
				domain.ErrVersionMismatch, raw.ConfigVersion, overrides.ConfigVersion),
		}
	}
	if err := checkSupported(raw.ConfigVersion, uc.supported); err != nil {
		return domain.ResolvedConfig{}, &domain.OpError{
			Op:   "resolve.version",
			Kind: domain.KindUnsupportedVersion,
			Path: configPath,
			Err:  err,
		}
	}

	defines, err := defaultDefines(raw.DefaultDefines)
	if err != nil {
		return domain.ResolvedConfig{}, &domain.OpError{
			Op:   "resolve.defines",
			Kind: domain.KindInvalidDefine,
			Path: configPath,
			Err:  err,
		}
	}

	for _, key := range domain.SortedNames(overrides.DefinesOverrides) {
		value := overrides.DefinesOverrides[key]
		def, ok := raw.DefaultDefines[key]
		if !ok {
			log.Warn("ignoring override for undeclared define", "define", key, "value", value.String())
			continue
		}
		if !def.Validate(value) {
			return domain.ResolvedConfig{}, &domain.OpError{
				Op:   "resolve.overrides",
				Kind: domain.KindInvalidOverride,
				Path: overridesPath,
				Err: fmt.Errorf("defines_overrides.%s: value %s (%s) is not allowed, expected %s",
					key, quoteValue(value), value.Kind(), def.Constraint()),
			}
		}
		log.Info("define overridden", "define", key, "value", value.String())
		defines[key] = value
	}

	computer := overrides.ComputerName
	if !overrides.HasComputerName {
		log.Warn("computer_name is not set in config overrides, using fallback", "computer_name", domain.UnknownComputer)
		computer = domain.UnknownComputer
	}

	minify := domain.DefaultMinify
	if raw.Minify != nil {
		minify = *raw.Minify
	}

	tctx := template.Context{
		ComputerName: computer,
		Language:     raw.Language,
		Minify:       minify,
		Defines:      defines,
	}
	description := domain.DefaultDescription
	if raw.HasDescription {
		description = raw.Description
	}

	entry, err := uc.entryFile(root, raw.EntryFile)
	if err != nil {
		return domain.ResolvedConfig{}, err
	}

	return domain.ResolvedConfig{
		ConfigVersion: raw.ConfigVersion,
		ComputerName:  computer,
		Name:          uc.templates.Expand(raw.Name, tctx),
		Description:   uc.templates.Expand(description, tctx),
		Language:      raw.Language,
		Minify:        minify,
		Defines:       defines,
		ProjectRoot:   root,
		EntryFile:     entry,
		Layout:        uc.layout,
	}, nil
}

func defaultDefines(decl map[string]domain.Define) (map[string]domain.Value, error) {
	out := make(map[string]domain.Value, len(decl))
	for _, name := range domain.SortedNames(decl) {
		def := decl[name]
		if !def.ValidateDefault() {
			return nil, fmt.Errorf("default_defines.%s.default: %s is not in options, expected %s",
				name, quoteValue(def.Default()), def.Constraint())
		}
		out[name] = def.Default()
	}
	return out, nil
}

// entryFile canonicalizes the configured entry file against root.
func (uc *ResolveConfig) entryFile(root, entry string) (string, error) {
	if entry == "" {
		entry = uc.layout.DefaultEntry
	}
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(root, entry)
	}

	p, err := filepath.EvalSymlinks(entry)
	if err == nil {
		p, err = filepath.Abs(p)
	}
	if err != nil {
		return "", &domain.OpError{
			Op:   "resolve.entry_file",
			Kind: domain.KindInvalidConfig,
			Path: entry,
			Err:  fmt.Errorf("entry file cannot be resolved: %w", err),
		}
	}
	return p, nil
}

// checkSupported requires ^version to accept the supported release.
func checkSupported(version, supported string) error {
	declared, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: config_version %q must look like 1.0 or 1.0.0", domain.ErrUnsupportedVersion, version)
	}
	current := semver.MustParse(supported)

	req, err := semver.NewConstraint("^" + declared.String())
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnsupportedVersion, err)
	}
	if req.Check(current) {
		return nil
	}

	if declared.GreaterThan(current) {
		return fmt.Errorf("%w: your config declares version %s, newer than the supported %s; update your installation",
			domain.ErrUnsupportedVersion, declared, current)
	}
	return fmt.Errorf("%w: config version %s is no longer supported (current %s); update your config",
		domain.ErrUnsupportedVersion, declared, current)
}

func quoteValue(v domain.Value) string {
	if v.Kind() == domain.ValueString {
		return fmt.Sprintf("%q", v.String())
	}
	return v.String()
}
