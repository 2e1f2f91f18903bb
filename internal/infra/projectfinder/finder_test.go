package projectfinder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/vexmason/internal/domain"
)

func makeProject(t *testing.T, root string, marker, config bool) {
	t.Helper()
	l := domain.DefaultLayout()
	if err := os.MkdirAll(filepath.Join(root, l.ConfigDir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if marker {
		if err := os.WriteFile(l.MarkerPath(root), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write marker: %v", err)
		}
	}
	if config {
		if err := os.WriteFile(l.ConfigPath(root), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
}

func TestFindRoot_FromNestedFile(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "proj")
	src := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	makeProject(t, root, true, true)
	entry := filepath.Join(src, "main.py")
	if err := os.WriteFile(entry, []byte("print(1)\n"), 0o644); err != nil {
		t.Fatalf("write entry: %v", err)
	}

	got, err := NewFinder(domain.DefaultLayout()).FindRoot(entry)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_FromDirectory(t *testing.T) {
	root := t.TempDir()
	makeProject(t, root, true, true)

	got, err := NewFinder(domain.DefaultLayout()).FindRoot(root)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_NearestMatchWins(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "inner")
	makeProject(t, outer, true, true)
	makeProject(t, inner, true, true)

	got, err := NewFinder(domain.DefaultLayout()).FindRoot(filepath.Join(inner, "main.py"))
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != inner {
		t.Fatalf("expected inner root %s, got %s", inner, got)
	}
}

func TestFindRoot_RequiresBothFiles(t *testing.T) {
	cases := []struct {
		name           string
		marker, config bool
	}{
		{"marker only", true, false},
		{"config only", false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			root := t.TempDir()
			makeProject(t, root, c.marker, c.config)

			_, err := NewFinder(domain.DefaultLayout()).FindRoot(filepath.Join(root, "main.py"))
			if !domain.IsKind(err, domain.KindNotFound) {
				t.Fatalf("expected KindNotFound, got: %v", err)
			}
			if !errors.Is(err, domain.ErrNoProject) {
				t.Fatalf("expected ErrNoProject, got: %v", err)
			}
		})
	}
}

func TestFindRoot_CustomLayout(t *testing.T) {
	root := t.TempDir()
	l := domain.DefaultLayout()
	l.ConfigDir = "cfg"
	if err := os.MkdirAll(filepath.Join(root, "cfg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, p := range []string{l.MarkerPath(root), l.ConfigPath(root)} {
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got, err := NewFinder(l).FindRoot(root)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected %s, got %s", root, got)
	}
}

func TestFindRoot_EmptyStart(t *testing.T) {
	_, err := NewFinder(domain.DefaultLayout()).FindRoot("")
	if err == nil {
		t.Fatalf("expected error")
	}
}
