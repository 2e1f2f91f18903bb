// Package transform runs the external source-transformation tool on a
// project's entry file.
package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/vexmason/internal/ctxlog"
	"github.com/aalvaropc/vexmason/internal/domain"
)

// Fixed flag contract of the transform tool.
const (
	removeImport   = "vex"
	prelude        = "from vex import *"
	dictionaryMode = "class_instance"
)

// CommandFunc builds the child process. Replaced in tests.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

type Invoker struct {
	interpreter string
	module      string
	libDir      string
	appDataDir  string
	goos        string
	command     CommandFunc
}

type Option func(*Invoker)

// WithCommand overrides process creation.
func WithCommand(fn CommandFunc) Option {
	return func(iv *Invoker) { iv.command = fn }
}

// WithAppData sets the data directory handed to the tool on Windows.
func WithAppData(dir string) Option {
	return func(iv *Invoker) { iv.appDataDir = dir }
}

// WithGOOS overrides the target platform (useful for tests).
func WithGOOS(goos string) Option {
	return func(iv *Invoker) { iv.goos = goos }
}

func New(cfg domain.TransformSettings, opts ...Option) *Invoker {
	iv := &Invoker{
		interpreter: cfg.Interpreter,
		module:      cfg.Module,
		libDir:      cfg.LibDir,
		goos:        runtime.GOOS,
		command:     exec.CommandContext,
	}
	if iv.libDir == "" {
		iv.libDir = defaultLibDir()
	}
	if home, err := os.UserHomeDir(); err == nil {
		iv.appDataDir = filepath.Join(home, "AppData", "Roaming")
	}
	for _, opt := range opts {
		opt(iv)
	}
	return iv
}

// Compile runs the transform step. With req.Output set the tool writes the
// file itself and Compile returns ("", false, nil); otherwise the transformed
// source is returned inline.
func (iv *Invoker) Compile(ctx context.Context, req domain.CompileRequest) (string, bool, error) {
	log := ctxlog.FromContext(ctx)

	input, err := filepath.Abs(req.Input)
	if err != nil {
		return "", false, &domain.OpError{Op: "transform.compile", Kind: domain.KindCompile, Path: req.Input, Err: err}
	}

	args := iv.Args(input, req)
	log.Info("running transform tool to compile entry file", "input", input, "output", req.Output, "minify", req.Minify)
	log.Debug("transform command", "interpreter", iv.interpreter, "args", args)

	cmd := iv.command(ctx, iv.interpreter, args...)
	if iv.libDir != "" {
		cmd.Dir = iv.libDir
	}
	if iv.goos == "windows" && iv.appDataDir != "" {
		env := cmd.Env
		if env == nil {
			env = os.Environ()
		}
		cmd.Env = append(env, "AppData="+iv.appDataDir)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", false, &domain.OpError{
				Op:   "transform.compile",
				Kind: domain.KindCompile,
				Err:  fmt.Errorf("failed to run the transform tool %q: %w", iv.interpreter, err),
			}
		}
		log.Error("failed to compile!", "exit_code", exitErr.ExitCode())
		return "", false, &domain.OpError{
			Op:   "transform.compile",
			Kind: domain.KindCompile,
			Path: input,
			Err:  decodeFailure(stderr.Bytes()),
		}
	}
	log.Info("compiled successfully")

	if req.Output != "" {
		return "", false, nil
	}

	out, err := decodeOutput(stdout.Bytes())
	if err != nil {
		return "", false, &domain.OpError{Op: "transform.compile", Kind: domain.KindCompile, Path: input, Err: err}
	}
	return out, true, nil
}

// Args builds the tool's argument list. Defines are emitted in name order.
func (iv *Invoker) Args(input string, req domain.CompileRequest) []string {
	args := []string{
		"-m", iv.module,
		"--input", input,
		"--remove-imports", removeImport,
		"--prelude", prelude,
		"--json",
		"--export-dictionary-mode", dictionaryMode,
	}
	for _, name := range domain.SortedNames(req.Defines) {
		args = append(args, "--define-constant", name, req.Defines[name].String())
	}
	if req.Output != "" {
		args = append(args, "--output", req.Output)
	}
	return args
}

func decodeOutput(b []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", &domain.CompileError{Name: domain.CompileDecodeOutput, Msg: "failed to read output"}
	}
	v, err := jsonpath.Get("$.output", doc)
	if err != nil {
		return "", &domain.CompileError{Name: domain.CompileDecodeOutput, Msg: "failed to read output"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &domain.CompileError{Name: domain.CompileDecodeOutput, Msg: "failed to read output"}
	}
	return s, nil
}

func decodeFailure(b []byte) error {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return &domain.CompileError{Name: domain.CompileDecodeError, Msg: "failed to read error"}
	}
	name, nameErr := jsonpath.Get("$.name", doc)
	msg, msgErr := jsonpath.Get("$.msg", doc)
	if nameErr != nil || msgErr != nil {
		return &domain.CompileError{Name: domain.CompileDecodeError, Msg: "failed to read error"}
	}
	n, ok1 := name.(string)
	m, ok2 := msg.(string)
	if !ok1 || !ok2 {
		return &domain.CompileError{Name: domain.CompileDecodeError, Msg: "failed to read error"}
	}
	return &domain.CompileError{Name: n, Msg: m}
}

// defaultLibDir is <install>/lib for an executable at <install>/bin/vexmason.
func defaultLibDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), "lib")
}
