package domain

import (
	"strconv"
	"strings"
)

// ValueKind is the runtime type of a define value.
type ValueKind int

const (
	ValueString ValueKind = iota + 1
	ValueNumber
	ValueBool
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is a scalar define value: a string, a number or a boolean.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

func StringValue(s string) Value  { return Value{kind: ValueString, str: s} }
func NumberValue(n float64) Value { return Value{kind: ValueNumber, num: n} }
func BoolValue(b bool) Value      { return Value{kind: ValueBool, b: b} }

func (v Value) Kind() ValueKind { return v.kind }

// String renders the value the way it is handed to templates and the transform tool.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Raw returns the underlying Go value (string, float64 or bool).
func (v Value) Raw() any {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return v.num
	case ValueBool:
		return v.b
	default:
		return nil
	}
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueString:
		return v.str == o.str
	case ValueNumber:
		return v.num == o.num
	case ValueBool:
		return v.b == o.b
	}
	return true
}

// DefineForm is the declared shape of a define.
type DefineForm int

const (
	// DefineSimple accepts any override.
	DefineSimple DefineForm = iota
	// DefineTyped requires overrides to share the default's runtime type.
	DefineTyped
	// DefineRestricted requires overrides (and the default) to be one of Options.
	DefineRestricted
)

func (f DefineForm) String() string {
	switch f {
	case DefineTyped:
		return "typed"
	case DefineRestricted:
		return "restricted"
	default:
		return "simple"
	}
}

// Define is a named build-time constant with a default and an optional constraint.
type Define struct {
	form    DefineForm
	def     Value
	options []Value
}

func SimpleDefine(def Value) Define {
	return Define{form: DefineSimple, def: def}
}

func TypedDefine(def Value) Define {
	return Define{form: DefineTyped, def: def}
}

func RestrictedDefine(def Value, options []Value) Define {
	opts := make([]Value, len(options))
	copy(opts, options)
	return Define{form: DefineRestricted, def: def, options: opts}
}

func (d Define) Form() DefineForm { return d.form }
func (d Define) Default() Value   { return d.def }

func (d Define) Options() []Value {
	out := make([]Value, len(d.options))
	copy(out, d.options)
	return out
}

// ValidateDefault checks the define against its own constraint.
// Only restricted defines can fail: their default must be one of the options.
func (d Define) ValidateDefault() bool {
	if d.form == DefineRestricted {
		return d.contains(d.def)
	}
	return true
}

// Validate reports whether candidate may replace the default.
func (d Define) Validate(candidate Value) bool {
	switch d.form {
	case DefineTyped:
		return candidate.Kind() == d.def.Kind()
	case DefineRestricted:
		return d.contains(candidate)
	default:
		return true
	}
}

// Constraint describes what Validate accepts, for error messages.
func (d Define) Constraint() string {
	switch d.form {
	case DefineTyped:
		return "a " + d.def.Kind().String()
	case DefineRestricted:
		parts := make([]string, 0, len(d.options))
		for _, o := range d.options {
			parts = append(parts, strconv.Quote(o.String()))
		}
		return "one of [" + strings.Join(parts, ", ") + "]"
	default:
		return "any value"
	}
}

func (d Define) contains(v Value) bool {
	for _, o := range d.options {
		if o.Equal(v) {
			return true
		}
	}
	return false
}
