package config

import "encoding/json"

// JSONConfig is the on-disk shape of vexmason-config.json.
type JSONConfig struct {
	ConfigVersion  string                `json:"config_version"`
	Name           *string               `json:"name"`
	Description    *string               `json:"description"`
	Language       *string               `json:"language"`
	Minify         *bool                 `json:"minify"`
	DefaultDefines map[string]JSONDefine `json:"default_defines"`
	EntryFile      *string               `json:"entry_file"`

	// Extension is owned by the editor extension and ignored here.
	Extension json.RawMessage `json:"extension,omitempty"`
}

// JSONDefine accepts either a bare scalar default or an object
// {"default": v, "typed": bool, "options": [...]}.
type JSONDefine struct {
	Default any
	Typed   bool
	Options []any
	// HasOptions distinguishes an explicit empty options list from none.
	HasOptions bool
}

type jsonDefineObject struct {
	Default json.RawMessage   `json:"default"`
	Typed   *bool             `json:"typed"`
	Options []json.RawMessage `json:"options"`
}

// JSONOverrides is the on-disk shape of vexmason-local-config.json.
type JSONOverrides struct {
	ConfigVersion    string         `json:"config_version"`
	ComputerName     *string        `json:"computer_name"`
	DefinesOverrides map[string]any `json:"defines_overrides"`
}
