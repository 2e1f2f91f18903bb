package domain

import "runtime"

// Settings is the machine-level tool configuration (settings.yaml).
type Settings struct {
	Transform TransformSettings
	Wrapped   WrappedSettings
	Log       LogSettings
}

type TransformSettings struct {
	Interpreter string
	Module      string
	// LibDir is the transform tool's working directory. Empty means
	// <executable dir>/../lib.
	LibDir string
}

type WrappedSettings struct {
	// Name is the file name of the wrapped binary, next to the shim.
	Name string
}

type LogSettings struct {
	Debug  bool
	Format string
}

// DefaultSettings provides sane defaults if settings.yaml is missing or partial.
func DefaultSettings() Settings {
	name := "vexcom.old"
	if runtime.GOOS == "windows" {
		name = "vexcom.old.exe"
	}
	return Settings{
		Transform: TransformSettings{
			Interpreter: "python",
			Module:      "python-compiler",
		},
		Wrapped: WrappedSettings{Name: name},
		Log:     LogSettings{Format: "text"},
	}
}
