package domain

import (
	"path/filepath"
	"sort"
)

// CurrentConfigVersion is the newest project config version this build understands.
const CurrentConfigVersion = "1.1.0"

// DefaultMinify applies when the project config does not set minify.
const DefaultMinify = false

// UnknownComputer is used when the overrides file does not name the machine.
const UnknownComputer = "unknown"

// DefaultDescription is the description template used when the config has none.
const DefaultDescription = "compiled by vexmason " +
	"at {{ time/hour }}:{{ time/minute }} " +
	"by {{ computer-name }} | {{ language::short }} | min: {{ minify::short }} " +
	"| {{ defines::count }} defines: " +
	"{{ defines::list }} "

// RawConfig is the project configuration as declared in the base config file.
type RawConfig struct {
	ConfigVersion  string
	Name           string
	Description    string
	HasDescription bool
	Language       string
	Minify         *bool
	DefaultDefines map[string]Define
	EntryFile      string
}

// OverridesConfig is the per-machine configuration.
type OverridesConfig struct {
	ConfigVersion    string
	ComputerName     string
	HasComputerName  bool
	DefinesOverrides map[string]Value
}

// EmptyOverrides is what an absent overrides file resolves to.
func EmptyOverrides(configVersion string) OverridesConfig {
	return OverridesConfig{
		ConfigVersion:    configVersion,
		DefinesOverrides: map[string]Value{},
	}
}

// ResolvedConfig is the merged, validated, template-expanded configuration
// for one compiler invocation.
type ResolvedConfig struct {
	ConfigVersion string
	ComputerName  string
	Name          string
	Description   string
	Language      string
	Minify        bool
	Defines       map[string]Value
	ProjectRoot   string
	EntryFile     string
	Layout        Layout
}

// BuildOutput is where the transformed entry file is written.
func (c ResolvedConfig) BuildOutput() string {
	return c.Layout.OutputPath(c.ProjectRoot)
}

// LogOutput is the per-invocation log file.
func (c ResolvedConfig) LogOutput() string {
	return c.Layout.LogPath(c.ProjectRoot)
}

// DefineNames returns the define names in sorted order.
func (c ResolvedConfig) DefineNames() []string {
	return SortedNames(c.Defines)
}

// SortedNames returns the keys of a define mapping in sorted order.
func SortedNames[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Layout names the files and directories that make up a managed project.
type Layout struct {
	ConfigDir     string
	ConfigName    string
	OverridesName string
	MarkerName    string
	BuildDirName  string
	OutputName    string
	LogName       string
	DefaultEntry  string
}

// DefaultLayout is the on-disk convention used by the editor extension.
func DefaultLayout() Layout {
	return Layout{
		ConfigDir:     ".vscode",
		ConfigName:    "vexmason-config.json",
		OverridesName: "vexmason-local-config.json",
		MarkerName:    "vex_project_settings.json",
		BuildDirName:  "build",
		OutputName:    "compiled.py",
		LogName:       "vexmason.log",
		DefaultEntry:  filepath.Join("src", "main.py"),
	}
}

func (l Layout) ConfigPath(root string) string {
	return filepath.Join(root, l.ConfigDir, l.ConfigName)
}

func (l Layout) OverridesPath(root string) string {
	return filepath.Join(root, l.ConfigDir, l.OverridesName)
}

func (l Layout) MarkerPath(root string) string {
	return filepath.Join(root, l.ConfigDir, l.MarkerName)
}

func (l Layout) BuildDir(root string) string {
	return filepath.Join(root, l.BuildDirName)
}

func (l Layout) OutputPath(root string) string {
	return filepath.Join(l.BuildDir(root), l.OutputName)
}

func (l Layout) LogPath(root string) string {
	return filepath.Join(l.BuildDir(root), l.LogName)
}
