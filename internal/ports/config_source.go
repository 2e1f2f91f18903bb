package ports

import "github.com/aalvaropc/vexmason/internal/domain"

// ConfigSource loads the base and per-machine configuration files.
type ConfigSource interface {
	LoadConfig(path string) (domain.RawConfig, error)
	LoadOverrides(path string, baseVersion string) (domain.OverridesConfig, error)
}
