package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound           = errors.New("not found")
	ErrNoProject          = errors.New("no managed project")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrVersionMismatch    = errors.New("config and config overrides versions don't match")
	ErrUnsupportedVersion = errors.New("unsupported config version")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindInvalidConfig      ErrorKind = "invalid_config"
	KindVersionMismatch    ErrorKind = "version_mismatch"
	KindUnsupportedVersion ErrorKind = "unsupported_version"
	KindInvalidDefine      ErrorKind = "invalid_define"
	KindInvalidOverride    ErrorKind = "invalid_override"
	KindCompile            ErrorKind = "compile"
	KindProxy              ErrorKind = "proxy"
	KindExecution          ErrorKind = "execution"
)

// configKinds are the kinds that abort resolution before any subprocess runs.
var configKinds = map[ErrorKind]bool{
	KindInvalidConfig:      true,
	KindVersionMismatch:    true,
	KindUnsupportedVersion: true,
	KindInvalidDefine:      true,
	KindInvalidOverride:    true,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// IsConfigError reports whether err belongs to the configuration category.
func IsConfigError(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return configKinds[oe.Kind]
	}
	return false
}

// Compile failure names that do not come from the transform tool itself.
const (
	CompileDecodeOutput = "decode_output"
	CompileDecodeError  = "decode_error"
)

// CompileError is a failure reported by the external transform step.
// Name is machine-readable; Msg is the human detail.
type CompileError struct {
	Name string
	Msg  string
}

func (e *CompileError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Name {
	case CompileDecodeOutput, CompileDecodeError:
		return "transform failed: " + e.Msg
	}
	return fmt.Sprintf("transform failed (%s): %s", e.Name, e.Msg)
}
