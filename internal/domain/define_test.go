package domain

import "testing"

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{StringValue("red"), "red"},
		{NumberValue(1), "1"},
		{NumberValue(2.5), "2.5"},
		{NumberValue(-3), "-3"},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestValueEqual(t *testing.T) {
	if !NumberValue(1).Equal(NumberValue(1)) {
		t.Fatalf("expected equal numbers")
	}
	if StringValue("1").Equal(NumberValue(1)) {
		t.Fatalf("different kinds must not be equal")
	}
	if BoolValue(true).Equal(BoolValue(false)) {
		t.Fatalf("expected different booleans")
	}
}

func TestSimpleDefineAcceptsAnything(t *testing.T) {
	d := SimpleDefine(BoolValue(false))
	for _, v := range []Value{StringValue("x"), NumberValue(4), BoolValue(true)} {
		if !d.Validate(v) {
			t.Errorf("simple define rejected %v", v)
		}
	}
	if !d.ValidateDefault() {
		t.Fatalf("simple default must validate")
	}
}

func TestTypedDefine(t *testing.T) {
	d := TypedDefine(BoolValue(false))
	if !d.Validate(BoolValue(true)) {
		t.Fatalf("expected boolean override to pass")
	}
	if d.Validate(StringValue("true")) {
		t.Fatalf("expected string override to fail")
	}
	if d.Constraint() != "a boolean" {
		t.Fatalf("unexpected constraint %q", d.Constraint())
	}
}

func TestRestrictedDefine(t *testing.T) {
	d := RestrictedDefine(StringValue("red"), []Value{StringValue("red"), StringValue("blue")})
	if !d.ValidateDefault() {
		t.Fatalf("default is in options")
	}
	if !d.Validate(StringValue("blue")) {
		t.Fatalf("expected blue to pass")
	}
	if d.Validate(StringValue("green")) {
		t.Fatalf("expected green to fail")
	}
	if d.Constraint() != `one of ["red", "blue"]` {
		t.Fatalf("unexpected constraint %q", d.Constraint())
	}
}

func TestRestrictedDefineDefaultOutsideOptions(t *testing.T) {
	d := RestrictedDefine(NumberValue(3), []Value{NumberValue(1), NumberValue(2)})
	if d.ValidateDefault() {
		t.Fatalf("expected default outside options to fail")
	}
}

func TestRestrictedDefineCopiesOptions(t *testing.T) {
	opts := []Value{StringValue("a")}
	d := RestrictedDefine(StringValue("a"), opts)
	opts[0] = StringValue("z")
	if !d.ValidateDefault() {
		t.Fatalf("define must not alias the caller's slice")
	}
}

func TestLayoutPaths(t *testing.T) {
	l := DefaultLayout()
	rc := ResolvedConfig{ProjectRoot: "/proj", Layout: l}
	if got := rc.BuildOutput(); got != "/proj/build/compiled.py" {
		t.Fatalf("unexpected build output %q", got)
	}
	if got := rc.LogOutput(); got != "/proj/build/vexmason.log" {
		t.Fatalf("unexpected log output %q", got)
	}
	if got := l.ConfigPath("/proj"); got != "/proj/.vscode/vexmason-config.json" {
		t.Fatalf("unexpected config path %q", got)
	}
}
