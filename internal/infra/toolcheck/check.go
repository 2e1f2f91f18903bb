// Package toolcheck verifies that external tools meet a version requirement.
package toolcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement names a program, the prefix of its --version output and the
// accepted range.
type Requirement struct {
	Program    string
	Prefix     string
	Constraint string
}

// DefaultRequirements are the tools the transform step depends on.
func DefaultRequirements(python string) []Requirement {
	if python == "" {
		python = "python"
	}
	return []Requirement{
		{Program: python, Prefix: "Python ", Constraint: "^3.10"},
		{Program: "git", Prefix: "git version ", Constraint: "^2.40"},
	}
}

var (
	ErrNotFound     = errors.New("program not found")
	ErrParseVersion = errors.New("failed to parse version")
	ErrBadVersion   = errors.New("version does not satisfy requirement")
)

// Result is the outcome of checking one Requirement.
type Result struct {
	Requirement
	Version string
	Err     error
}

func (r Result) OK() bool { return r.Err == nil }

// CommandFunc runs name with args and returns its standard output.
type CommandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

type Checker struct {
	run CommandFunc
}

type Option func(*Checker)

func WithCommand(fn CommandFunc) Option {
	return func(c *Checker) {
		if fn != nil {
			c.run = fn
		}
	}
}

func New(opts ...Option) *Checker {
	c := &Checker{run: runCommand}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckAll checks every requirement; it never stops at the first failure.
func (c *Checker) CheckAll(ctx context.Context, reqs []Requirement) []Result {
	out := make([]Result, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, c.Check(ctx, r))
	}
	return out
}

func (c *Checker) Check(ctx context.Context, req Requirement) Result {
	res := Result{Requirement: req}

	stdout, err := c.run(ctx, req.Program, "--version")
	if errors.Is(err, exec.ErrNotFound) {
		res.Err = fmt.Errorf("%w: %s, check that it is installed and on your PATH", ErrNotFound, req.Program)
		return res
	}
	if err != nil {
		res.Err = fmt.Errorf("%s --version: %w", req.Program, err)
		return res
	}

	v, err := parseVersion(string(stdout), req.Prefix)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s printed %q", ErrParseVersion, req.Program, strings.TrimSpace(string(stdout)))
		return res
	}
	res.Version = v.String()

	constraint, err := semver.NewConstraint(req.Constraint)
	if err != nil {
		res.Err = fmt.Errorf("requirement %q: %w", req.Constraint, err)
		return res
	}
	if !constraint.Check(v) {
		res.Err = fmt.Errorf("%w: %s %s does not satisfy %s", ErrBadVersion, req.Program, v, req.Constraint)
	}
	return res
}

// parseVersion strips prefix and keeps at most three dot-separated parts, so
// "git version 2.43.0.windows.1" reads as 2.43.0.
func parseVersion(out, prefix string) (*semver.Version, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(out), prefix)
	if !ok {
		return nil, ErrParseVersion
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, ErrParseVersion
	}
	parts := strings.Split(fields[0], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.NewVersion(strings.Join(parts, "."))
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}
