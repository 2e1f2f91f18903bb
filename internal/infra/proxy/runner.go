// Package proxy re-executes the wrapped compiler binary.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/vexmason/internal/app/argv"
	"github.com/aalvaropc/vexmason/internal/ctxlog"
	"github.com/aalvaropc/vexmason/internal/domain"
)

// Runner spawns the wrapped binary with the parent's stdin and stdout.
type Runner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type Option func(*Runner)

// WithStdio overrides the streams handed to the child (useful for tests).
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Locate returns the wrapped binary that sits next to the shim.
func Locate(shim, name string) (string, error) {
	p := filepath.Join(filepath.Dir(shim), name)
	abs, err := filepath.Abs(p)
	if err == nil {
		abs, err = filepath.EvalSymlinks(abs)
	}
	if err != nil {
		return "", &domain.OpError{
			Op:   "proxy.locate",
			Kind: domain.KindProxy,
			Path: p,
			Err:  fmt.Errorf("failed to locate %s: %w", name, err),
		}
	}
	return abs, nil
}

// Passthrough runs exe with every stream inherited and returns its exit code.
func (r *Runner) Passthrough(ctx context.Context, exe string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Start(); err != nil {
		return 0, spawnError(exe, err)
	}
	return exitCode(cmd.Wait())
}

// Run executes exe and copies its stderr to both the terminal and sink while
// the child runs. Sink write failures are logged and announced on the
// terminal; they never stop the child.
func (r *Runner) Run(ctx context.Context, exe string, args []string, sink io.Writer) (int, error) {
	log := ctxlog.FromContext(ctx)

	pr, pw, err := os.Pipe()
	if err != nil {
		return 0, &domain.OpError{Op: "proxy.run", Kind: domain.KindProxy, Err: err}
	}
	defer pr.Close()

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = pw

	log.Info("running wrapped binary", "exe", strconv.Quote(exe), "args", argv.Quote(args))
	startErr := cmd.Start()
	// The child holds its own copy of the write end; ours must go so the
	// reader sees EOF when the child exits.
	_ = pw.Close()
	if startErr != nil {
		return 0, spawnError(exe, startErr)
	}

	var (
		stats   dupStats
		waitErr error
		g       errgroup.Group
	)
	g.Go(func() error {
		return duplicate(pr, r.stderr, sink, &stats)
	})
	g.Go(func() error {
		waitErr = cmd.Wait()
		return nil
	})
	drainErr := g.Wait()

	if stats.sinkErr != nil {
		// The log may share the failing sink, so the terminal gets a copy.
		fmt.Fprintf(r.stderr, "vexmason: build log write failed: %v\n", stats.sinkErr)
		log.Error("failed to copy wrapped binary stderr to log", "error", stats.sinkErr)
	} else if sink != nil && stats.bytes > 0 && stats.last != '\n' {
		// Keep the trailing entry off the child's last line.
		_, _ = sink.Write([]byte{'\n'})
	}
	if stats.termErr != nil {
		log.Error("failed to copy wrapped binary stderr to terminal", "error", stats.termErr)
	}
	if drainErr != nil {
		log.Error("failed to read wrapped binary stderr", "error", drainErr)
	}

	code, err := exitCode(waitErr)
	if err != nil {
		return 0, err
	}
	if code == 0 {
		log.Info("wrapped binary completed successfully", "stderr", humanize.Bytes(uint64(stats.bytes)))
	} else {
		log.Error("wrapped binary exited with a non-zero exit code", "exit_code", code, "stderr", humanize.Bytes(uint64(stats.bytes)))
	}
	return code, nil
}

type dupStats struct {
	bytes   int64
	last    byte
	termErr error
	sinkErr error
}

// duplicate drains src into term and sink. A failing destination is dropped
// and draining continues, so the child never blocks on a full pipe.
func duplicate(src io.Reader, term, sink io.Writer, st *dupStats) error {
	buf := make([]byte, 32*1024)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			st.bytes += int64(n)
			st.last = chunk[n-1]
			if st.termErr == nil {
				if _, werr := term.Write(chunk); werr != nil {
					st.termErr = werr
				}
			}
			if st.sinkErr == nil && sink != nil {
				if _, werr := sink.Write(chunk); werr != nil {
					st.sinkErr = werr
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func spawnError(exe string, err error) error {
	return &domain.OpError{
		Op:   "proxy.spawn",
		Kind: domain.KindProxy,
		Path: exe,
		Err:  fmt.Errorf("failed to execute wrapped binary: %w", err),
	}
}

// exitCode maps a Wait result to a process exit code in [0, 255].
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, &domain.OpError{Op: "proxy.wait", Kind: domain.KindProxy, Err: fmt.Errorf("failed to wait on child: %w", err)}
	}
	return ClampExitCode(exitErr.ExitCode()), nil
}

// ClampExitCode fits a failing child's code into a valid exit status. Codes
// that would read as success (signals report -1) become 1.
func ClampExitCode(code int) int {
	switch {
	case code <= 0:
		return 1
	case code > 255:
		return 255
	default:
		return code
	}
}
