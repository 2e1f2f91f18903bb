// Package argv inspects and rewrites the wrapped compiler's argument vector.
//
// Flags are matched by exact token equality. A flag's value is the argument
// immediately after it, so the last argument never acts as a flag.
package argv

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/vexmason/internal/domain"
)

const (
	FlagWrite       = "--write"
	FlagName        = "--name"
	FlagDescription = "--description"
)

// EntryPoint returns the value following --write, the file being compiled.
func EntryPoint(args []string) (string, bool) {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == FlagWrite {
			return args[i+1], true
		}
	}
	return "", false
}

// HasFlag reports whether flag appears anywhere in args.
func HasFlag(args []string, flag string) bool {
	return slices.Contains(args, flag)
}

// Quote renders args for logs with each argument Go-quoted, so argument
// boundaries survive spaces inside values.
func Quote(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = strconv.Quote(a)
	}
	return strings.Join(quoted, " ")
}

// Rule replaces the value that follows Flag.
type Rule struct {
	Flag    string
	Replace func(domain.ResolvedConfig) (string, error)
}

// DefaultRules rewrite the write target, the program name and its description.
func DefaultRules() []Rule {
	return []Rule{
		{Flag: FlagWrite, Replace: writeTarget},
		{Flag: FlagName, Replace: func(c domain.ResolvedConfig) (string, error) {
			return c.Name, nil
		}},
		{Flag: FlagDescription, Replace: func(c domain.ResolvedConfig) (string, error) {
			// The wrapped tool only accepts base64 descriptions.
			return base64.StdEncoding.EncodeToString([]byte(c.Description)), nil
		}},
	}
}

func writeTarget(c domain.ResolvedConfig) (string, error) {
	out := c.BuildOutput()
	if !utf8.ValidString(out) {
		return "", errors.New("failed to convert output path to utf8")
	}
	return out, nil
}

// Warning is a flag whose value could not be rewritten. The original value is kept.
type Warning struct {
	Flag  string
	Index int
	Err   error
}

func (w Warning) Error() string {
	return fmt.Sprintf("rewrite %s (arg %d): %v", w.Flag, w.Index, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Rewriter applies rules to an argument vector in place.
type Rewriter struct {
	rules []Rule
}

func NewRewriter(rules ...Rule) *Rewriter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Rewriter{rules: rules}
}

// Rewrite mutates the value slots of recognized flags. Flags are matched
// against the original vector, so a rewritten value is never re-read as a flag.
// Failures are logged and returned; they never abort the rewrite.
func (r *Rewriter) Rewrite(args []string, c domain.ResolvedConfig, log *slog.Logger) []Warning {
	orig := slices.Clone(args)

	var warnings []Warning
	for i := 0; i+1 < len(orig); i++ {
		for _, rule := range r.rules {
			if orig[i] != rule.Flag {
				continue
			}
			v, err := rule.Replace(c)
			if err != nil {
				w := Warning{Flag: rule.Flag, Index: i + 1, Err: err}
				log.Warn("argument rewrite failed, keeping original value", "flag", rule.Flag, "error", err)
				warnings = append(warnings, w)
				continue
			}
			args[i+1] = v
		}
	}
	return warnings
}
