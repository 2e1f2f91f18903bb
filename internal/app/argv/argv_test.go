package argv

import (
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/vexmason/internal/domain"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func resolved() domain.ResolvedConfig {
	return domain.ResolvedConfig{
		Name:        "rig1-build",
		Description: "built by rig1",
		ProjectRoot: "/proj",
		Layout:      domain.DefaultLayout(),
	}
}

func TestEntryPoint(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		want   string
		wantOK bool
	}{
		{"found", []string{"--foo", "1", "--write", "out.py"}, "out.py", true},
		{"first", []string{"--write", "a.py", "--write", "b.py"}, "a.py", true},
		{"absent", []string{"--foo", "1"}, "", false},
		{"last element", []string{"--foo", "--write"}, "", false},
		{"empty", nil, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := EntryPoint(c.args)
			if got != c.want || ok != c.wantOK {
				t.Fatalf("EntryPoint(%q) = (%q, %v), want (%q, %v)", c.args, got, ok, c.want, c.wantOK)
			}
		})
	}
}

func TestHasFlag(t *testing.T) {
	if !HasFlag([]string{"a", "--write"}, FlagWrite) {
		t.Fatalf("expected flag to be found")
	}
	if HasFlag([]string{"--writes"}, FlagWrite) {
		t.Fatalf("expected exact match only")
	}
}

func TestRewrite_ReplacesValueSlots(t *testing.T) {
	args := []string{
		"--slot", "3",
		"--write", "/tmp/main.py",
		"--name", "old",
		"--description", "b2xk",
		"--port", "auto",
	}

	warnings := NewRewriter().Rewrite(args, resolved(), quiet)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []string{
		"--slot", "3",
		"--write", "/proj/build/compiled.py",
		"--name", "rig1-build",
		"--description", base64.StdEncoding.EncodeToString([]byte("built by rig1")),
		"--port", "auto",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestRewrite_LastArgumentIsNeverAFlag(t *testing.T) {
	args := []string{"--foo", "--name"}
	NewRewriter().Rewrite(args, resolved(), quiet)
	if diff := cmp.Diff([]string{"--foo", "--name"}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestRewrite_MatchesOriginalTokens(t *testing.T) {
	c := resolved()
	c.Name = "--description"

	args := []string{"--name", "x", "y"}
	NewRewriter().Rewrite(args, c, quiet)
	if diff := cmp.Diff([]string{"--name", "--description", "y"}, args); diff != "" {
		t.Fatalf("rewritten value was treated as a flag (-want +got):\n%s", diff)
	}
}

func TestRewrite_FailureKeepsOriginalValue(t *testing.T) {
	boom := errors.New("boom")
	rules := append(DefaultRules(), Rule{
		Flag:    "--slot",
		Replace: func(domain.ResolvedConfig) (string, error) { return "", boom },
	})

	args := []string{"--slot", "3", "--name", "old"}
	warnings := NewRewriter(rules...).Rewrite(args, resolved(), quiet)

	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !errors.Is(warnings[0], boom) || warnings[0].Index != 1 {
		t.Fatalf("unexpected warning %+v", warnings[0])
	}
	if diff := cmp.Diff([]string{"--slot", "3", "--name", "rig1-build"}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestRewrite_InvalidUTF8OutputPath(t *testing.T) {
	c := resolved()
	c.ProjectRoot = "/proj/\xff"

	args := []string{"--write", "/tmp/main.py"}
	warnings := NewRewriter().Rewrite(args, c, quiet)
	if len(warnings) != 1 || warnings[0].Flag != FlagWrite {
		t.Fatalf("expected write warning, got %v", warnings)
	}
	if args[1] != "/tmp/main.py" {
		t.Fatalf("expected original value, got %q", args[1])
	}
}

func TestQuote_KeepsArgumentBoundaries(t *testing.T) {
	got := Quote([]string{"--name", "rig1 build", "--slot", "1", ""})
	want := `"--name" "rig1 build" "--slot" "1" ""`
	if got != want {
		t.Fatalf("Quote mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}
