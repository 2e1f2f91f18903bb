package config

import "github.com/aalvaropc/vexmason/internal/domain"

// Source reads project configuration from JSON files on disk.
type Source struct{}

func NewSource() Source { return Source{} }

func (Source) LoadConfig(path string) (domain.RawConfig, error) {
	return LoadConfig(path)
}

func (Source) LoadOverrides(path string, baseVersion string) (domain.OverridesConfig, error) {
	return LoadOverrides(path, baseVersion)
}
