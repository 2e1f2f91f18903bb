package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/vexmason/internal/domain"
)

// ExitError ends the process with Code. An empty Message prints nothing.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// headline is the one-line summary shown above a fatal error.
func headline(err error) string {
	var ce *domain.CompileError
	if errors.As(err, &ce) {
		return "Transform failed"
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return "Unexpected error"
	}

	switch oe.Kind {
	case domain.KindNotFound:
		if strings.Contains(oe.Op, "projectfinder") {
			return "Project not found"
		}
		return "Not found"
	case domain.KindInvalidConfig:
		if strings.TrimSpace(oe.Path) != "" {
			return "Invalid config in " + filepath.Base(oe.Path)
		}
		return "Invalid config"
	case domain.KindVersionMismatch:
		return "Config versions don't match"
	case domain.KindUnsupportedVersion:
		return "Unsupported config version"
	case domain.KindInvalidDefine:
		return "Invalid define"
	case domain.KindInvalidOverride:
		return "Invalid define override"
	case domain.KindCompile:
		return "Transform failed"
	case domain.KindProxy:
		return "Cannot run the wrapped compiler"
	default:
		return "Unexpected error"
	}
}

// printFatal renders err once on w.
func printFatal(w io.Writer, err error) {
	th := defaultTheme()
	fmt.Fprintln(w, th.Error.Render("vexmason: "+headline(err)))
	fmt.Fprintln(w, err.Error())
}

// exitCode reports the process status for err and prints it when needed.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		if ee.Message != "" {
			fmt.Fprintln(w, ee.Message)
		}
		return ee.Code
	}
	printFatal(w, err)
	return 1
}
