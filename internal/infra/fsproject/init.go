// Package fsproject scaffolds a managed project on disk.
package fsproject

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/vexmason/internal/domain"
)

type Initializer struct {
	layout domain.Layout
}

func NewInitializer(layout domain.Layout) *Initializer {
	return &Initializer{layout: layout}
}

type starterConfig struct {
	ConfigVersion  string         `json:"config_version"`
	Name           string         `json:"name"`
	Language       string         `json:"language"`
	Minify         bool           `json:"minify"`
	DefaultDefines map[string]any `json:"default_defines"`
	EntryFile      string         `json:"entry_file"`
}

type starterOverrides struct {
	ConfigVersion    string         `json:"config_version"`
	ComputerName     string         `json:"computer_name"`
	DefinesOverrides map[string]any `json:"defines_overrides"`
}

// Init writes the base config, the local overrides and the project marker.
// Existing files are kept unless force is set; the marker is never replaced
// because the editor extension owns its content.
func (i *Initializer) Init(spec domain.ProjectSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	if err := os.MkdirAll(filepath.Join(root, i.layout.ConfigDir), 0o755); err != nil {
		return err
	}
	if err := ensureGitignore(root, i.gitignoreEntries()); err != nil {
		return err
	}

	cfg := starterConfig{
		ConfigVersion: domain.CurrentConfigVersion,
		Name:          spec.Name + " ({{ computer-name }})",
		Language:      spec.Language,
		DefaultDefines: map[string]any{
			"DEBUG": map[string]any{"default": false, "typed": true},
		},
		EntryFile: filepath.ToSlash(i.layout.DefaultEntry),
	}
	ov := starterOverrides{
		ConfigVersion:    domain.CurrentConfigVersion,
		ComputerName:     spec.ComputerName,
		DefinesOverrides: map[string]any{},
	}

	files := []struct {
		path  string
		value any
		force bool
	}{
		{i.layout.ConfigPath(root), cfg, force},
		{i.layout.OverridesPath(root), ov, force},
		{i.layout.MarkerPath(root), map[string]any{}, false},
	}
	for _, f := range files {
		if err := writeJSON(f.path, f.value, f.force); err != nil {
			return err
		}
	}
	return nil
}

func (i *Initializer) gitignoreEntries() []string {
	return []string{
		i.layout.BuildDirName + "/",
		filepath.ToSlash(filepath.Join(i.layout.ConfigDir, i.layout.OverridesName)),
	}
}

func writeJSON(path string, v any, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func ensureGitignore(root string, entries []string) error {
	const header = "# vexmason"

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header + "\n")
	}
	for _, e := range missing {
		out.WriteString(e + "\n")
	}
	return os.WriteFile(path, []byte(out.String()), 0o644)
}
