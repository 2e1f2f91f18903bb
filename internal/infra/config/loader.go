package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aalvaropc/vexmason/internal/domain"
)

// LoadConfig reads and strictly decodes the base project config.
func LoadConfig(path string) (domain.RawConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.RawConfig{}, &domain.OpError{
			Op:   "config.load_config",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("failed to read config file: %w", err),
		}
	}

	var dto JSONConfig
	if err := decodeStrict(b, &dto); err != nil {
		return domain.RawConfig{}, &domain.OpError{
			Op:   "config.load_config",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("failed to parse config: %w", err),
		}
	}

	return MapConfig(path, dto)
}

// LoadOverrides reads the local overrides file. A missing file yields empty
// overrides stamped with baseVersion.
func LoadOverrides(path string, baseVersion string) (domain.OverridesConfig, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.EmptyOverrides(baseVersion), nil
	}
	if err != nil {
		return domain.OverridesConfig{}, &domain.OpError{
			Op:   "config.load_overrides",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("failed to read config overrides file: %w", err),
		}
	}

	var dto JSONOverrides
	if err := json.Unmarshal(b, &dto); err != nil {
		return domain.OverridesConfig{}, &domain.OpError{
			Op:   "config.load_overrides",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("failed to parse config overrides: %w", err),
		}
	}

	return MapOverrides(path, dto)
}

func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after top-level object")
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *JSONDefine) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*d = JSONDefine{Default: v}
		return nil
	}

	var obj jsonDefineObject
	if err := decodeStrict(trimmed, &obj); err != nil {
		return err
	}
	if len(obj.Default) == 0 {
		return errors.New(`define object is missing "default"`)
	}

	out := JSONDefine{}
	if err := json.Unmarshal(obj.Default, &out.Default); err != nil {
		return err
	}
	if obj.Typed != nil {
		out.Typed = *obj.Typed
	}
	if obj.Options != nil {
		out.HasOptions = true
		out.Options = make([]any, 0, len(obj.Options))
		for _, raw := range obj.Options {
			var o any
			if err := json.Unmarshal(raw, &o); err != nil {
				return err
			}
			out.Options = append(out.Options, o)
		}
	}
	*d = out
	return nil
}
