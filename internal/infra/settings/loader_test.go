package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/vexmason/internal/domain"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvDebug, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	def := domain.DefaultSettings()
	if cfg != def {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_AppliesValuesOverDefaults(t *testing.T) {
	t.Setenv(EnvDebug, "")
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := []byte("transform:\n  interpreter: python3\n  lib_dir: /opt/vexmason/lib\nlog:\n  debug: true\n  format: JSON\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Transform.Interpreter != "python3" {
		t.Fatalf("expected interpreter=python3, got=%s", cfg.Transform.Interpreter)
	}
	if cfg.Transform.Module != "python-compiler" {
		t.Fatalf("expected default module, got=%s", cfg.Transform.Module)
	}
	if cfg.Transform.LibDir != "/opt/vexmason/lib" {
		t.Fatalf("expected lib dir, got=%s", cfg.Transform.LibDir)
	}
	if !cfg.Log.Debug || cfg.Log.Format != "json" {
		t.Fatalf("expected debug json logging, got %+v", cfg.Log)
	}
	if cfg.Wrapped.Name != domain.DefaultSettings().Wrapped.Name {
		t.Fatalf("expected default wrapped name, got %s", cfg.Wrapped.Name)
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("transform: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_DebugFromEnv(t *testing.T) {
	t.Setenv(EnvDebug, "1")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Log.Debug {
		t.Fatalf("expected debug from environment")
	}
}

func TestDefaultPath_FromEnv(t *testing.T) {
	t.Setenv(EnvPath, "/etc/vexmason.yaml")
	if got := DefaultPath(); got != "/etc/vexmason.yaml" {
		t.Fatalf("expected env path, got %q", got)
	}
}
