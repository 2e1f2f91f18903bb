// Package template expands {{ placeholder }} tokens in config strings.
//
// The token set is closed. Unknown or malformed tokens are kept verbatim so a
// template written for a newer release still renders on an older one.
package template

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/aalvaropc/vexmason/internal/domain"
)

const definePrefix = "defines/"

// humanTime matches the layout users see in uploaded program descriptions.
const humanTime = "%a %d %b %Y, %I:%M%p"

var tokenPattern = regexp.MustCompile(`\{\{\s*(.*?)\s*\}\}`)

// Context carries the values tokens resolve against.
type Context struct {
	ComputerName string
	Language     string
	Minify       bool
	Defines      map[string]domain.Value
}

// Evaluator expands templates against a Context.
type Evaluator struct {
	now func() time.Time
}

// Option configures Evaluator.
type Option func(*Evaluator)

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand replaces every recognized token in tmpl. The clock is read once so
// all time tokens in one template agree.
func (e *Evaluator) Expand(tmpl string, ctx Context) string {
	// Fast path: no token start.
	if !strings.Contains(tmpl, "{{") {
		return tmpl
	}

	now := e.now()
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		sub := tokenPattern.FindStringSubmatch(match)
		if v, ok := resolve(sub[1], ctx, now); ok {
			return v
		}
		return match
	})
}

func resolve(token string, ctx Context, now time.Time) (string, bool) {
	switch token {
	case "computer-name":
		return ctx.ComputerName, true

	case "language":
		return ctx.Language, true
	case "language::short":
		return shortLanguage(ctx.Language), true

	case "minify":
		return strconv.FormatBool(ctx.Minify), true
	case "minify::short":
		if ctx.Minify {
			return "y", true
		}
		return "n", true

	case "time":
		return strftime.Format(humanTime, now), true
	case "time::iso8601":
		return now.Format(time.RFC3339Nano), true
	case "time/year":
		return strconv.Itoa(now.Year()), true
	case "time/month":
		return strconv.Itoa(int(now.Month())), true
	case "time/day":
		return strconv.Itoa(now.Day()), true
	case "time/hour":
		return strconv.Itoa(now.Hour()), true
	case "time/minute":
		return strconv.Itoa(now.Minute()), true

	case "defines::list":
		return listDefines(ctx.Defines), true
	case "defines::count":
		return strconv.Itoa(len(ctx.Defines)), true
	}

	if name, ok := strings.CutPrefix(token, definePrefix); ok {
		if v, found := ctx.Defines[name]; found {
			return v.String(), true
		}
	}
	return "", false
}

func shortLanguage(lang string) string {
	switch lang {
	case "python":
		return "py"
	case "cpp":
		return "cpp"
	default:
		return "?"
	}
}

func listDefines(defines map[string]domain.Value) string {
	names := domain.SortedNames(defines)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, k+"="+defines[k].String())
	}
	return strings.Join(parts, ", ")
}
