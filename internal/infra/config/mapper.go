package config

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/vexmason/internal/domain"
)

func MapConfig(path string, dto JSONConfig) (domain.RawConfig, error) {
	if strings.TrimSpace(dto.ConfigVersion) == "" {
		return domain.RawConfig{}, invalidField(path, "config_version", "config version is required")
	}
	if dto.Name == nil {
		return domain.RawConfig{}, invalidField(path, "name", "name is required")
	}
	if dto.Language == nil || strings.TrimSpace(*dto.Language) == "" {
		return domain.RawConfig{}, invalidField(path, "language", "language is required")
	}

	cfg := domain.RawConfig{
		ConfigVersion:  dto.ConfigVersion,
		Name:           *dto.Name,
		Language:       *dto.Language,
		Minify:         dto.Minify,
		DefaultDefines: make(map[string]domain.Define, len(dto.DefaultDefines)),
	}
	if dto.Description != nil {
		cfg.Description = *dto.Description
		cfg.HasDescription = true
	}
	if dto.EntryFile != nil {
		cfg.EntryFile = *dto.EntryFile
	}

	for _, name := range domain.SortedNames(dto.DefaultDefines) {
		d, err := mapDefine(dto.DefaultDefines[name])
		if err != nil {
			return domain.RawConfig{}, invalidField(path, "default_defines."+name, err.Error())
		}
		cfg.DefaultDefines[name] = d
	}

	return cfg, nil
}

func MapOverrides(path string, dto JSONOverrides) (domain.OverridesConfig, error) {
	if strings.TrimSpace(dto.ConfigVersion) == "" {
		return domain.OverridesConfig{}, invalidField(path, "config_version", "config version is required")
	}

	out := domain.EmptyOverrides(dto.ConfigVersion)
	if dto.ComputerName != nil {
		out.ComputerName = *dto.ComputerName
		out.HasComputerName = true
	}
	for _, name := range domain.SortedNames(dto.DefinesOverrides) {
		v, err := MapValue(dto.DefinesOverrides[name])
		if err != nil {
			return domain.OverridesConfig{}, invalidField(path, "defines_overrides."+name, err.Error())
		}
		out.DefinesOverrides[name] = v
	}
	return out, nil
}

func mapDefine(d JSONDefine) (domain.Define, error) {
	def, err := MapValue(d.Default)
	if err != nil {
		return domain.Define{}, err
	}

	if d.HasOptions {
		opts := make([]domain.Value, 0, len(d.Options))
		for i, o := range d.Options {
			v, err := MapValue(o)
			if err != nil {
				return domain.Define{}, fmt.Errorf("options[%d]: %w", i, err)
			}
			opts = append(opts, v)
		}
		return domain.RestrictedDefine(def, opts), nil
	}
	if d.Typed {
		return domain.TypedDefine(def), nil
	}
	return domain.SimpleDefine(def), nil
}

// MapValue converts a decoded JSON scalar into a define value.
func MapValue(v any) (domain.Value, error) {
	switch t := v.(type) {
	case string:
		return domain.StringValue(t), nil
	case float64:
		return domain.NumberValue(t), nil
	case bool:
		return domain.BoolValue(t), nil
	default:
		return domain.Value{}, fmt.Errorf("value must be a string, number or boolean, got %T", v)
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
