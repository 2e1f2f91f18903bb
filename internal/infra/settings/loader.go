package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/vexmason/internal/domain"
)

// EnvPath points at an explicit settings file.
const EnvPath = "VEXMASON_SETTINGS"

// EnvDebug forces debug logging when set to a truthy value.
const EnvDebug = "VEXMASON_DEBUG"

// DefaultPath returns $VEXMASON_SETTINGS, or settings.yaml under the user
// config directory.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vexmason", "settings.yaml")
}

// Load loads settings.yaml and applies defaults. A missing file is not an error.
func Load(path string) (domain.Settings, error) {
	cfg, err := load(path)
	applyEnv(&cfg)
	return cfg, err
}

func load(path string) (domain.Settings, error) {
	cfg := domain.DefaultSettings()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "settings.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	var y yamlSettings
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "settings.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Transform.Interpreter != "" {
		cfg.Transform.Interpreter = y.Transform.Interpreter
	}
	if y.Transform.Module != "" {
		cfg.Transform.Module = y.Transform.Module
	}
	if y.Transform.LibDir != "" {
		cfg.Transform.LibDir = y.Transform.LibDir
	}
	if y.Wrapped.Name != "" {
		cfg.Wrapped.Name = y.Wrapped.Name
	}
	if y.Log.Debug != nil {
		cfg.Log.Debug = *y.Log.Debug
	}
	if y.Log.Format != "" {
		format := strings.ToLower(y.Log.Format)
		if format != "text" && format != "json" {
			return cfg, &domain.OpError{
				Op:   "settings.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  errors.New("log.format must be 'text' or 'json'"),
			}
		}
		cfg.Log.Format = format
	}

	return cfg, nil
}

func applyEnv(cfg *domain.Settings) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvDebug))) {
	case "1", "true", "yes", "on":
		cfg.Log.Debug = true
	}
}

type yamlSettings struct {
	Transform struct {
		Interpreter string `yaml:"interpreter"`
		Module      string `yaml:"module"`
		LibDir      string `yaml:"lib_dir"`
	} `yaml:"transform"`

	Wrapped struct {
		Name string `yaml:"name"`
	} `yaml:"wrapped"`

	Log struct {
		Debug  *bool  `yaml:"debug"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}
