package runtime

import (
	"errors"
	"slices"
	"testing"
)

func TestEnvDefine(t *testing.T) {
	env := NewEnv(nil)

	env.Define("x", Float(1))
	if v, ok := env.values["x"]; !ok || v != Float(1) {
		t.Errorf("x = %v, %v; want 1, true", v, ok)
	}

	// Redefinition in the same scope replaces the binding.
	env.Define("x", String("one"))
	if v, _ := env.values["x"]; v != String("one") {
		t.Errorf("x after redefine = %v, want one", v)
	}

	if _, ok := env.values["y"]; ok {
		t.Error("y is bound without a definition")
	}
}

func TestEnvLookupParent(t *testing.T) {
	parent := NewEnv(nil)
	child := NewEnv(parent)

	parent.Define("x", Float(1))

	v, scope := child.LookupParent("x")
	if v != Float(1) {
		t.Errorf("LookupParent(x) = %v, want 1", v)
	}
	if scope != parent {
		t.Error("LookupParent(x) returned the wrong scope")
	}

	// Direct lookup in child does not see the parent's binding.
	if _, ok := child.values["x"]; ok {
		t.Error("child scope holds the parent's binding")
	}

	if v, scope := child.LookupParent("missing"); v != nil || scope != nil {
		t.Errorf("LookupParent(missing) = %v, %v; want nil, nil", v, scope)
	}
}

func TestEnvShadowing(t *testing.T) {
	parent := NewEnv(nil)
	child := NewEnv(parent)

	parent.Define("x", String("outer"))
	child.Define("x", String("inner"))

	if v, _ := child.Get("x", 1); v != String("inner") {
		t.Errorf("child Get(x) = %v, want inner", v)
	}
	if v, _ := parent.Get("x", 1); v != String("outer") {
		t.Errorf("parent Get(x) = %v, want outer", v)
	}
}

func TestEnvGetUndefined(t *testing.T) {
	env := NewEnv(NewEnv(nil))

	_, err := env.Get("nope", 7)
	var ue *UndefinedError
	if !errors.As(err, &ue) {
		t.Fatalf("Get error = %v, want *UndefinedError", err)
	}
	if ue.Name != "nope" || ue.Line != 7 {
		t.Errorf("UndefinedError = %+v, want Name=nope Line=7", ue)
	}
	if got, want := err.Error(), "Undefined variable 'nope'."; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEnvAssign(t *testing.T) {
	global := NewEnv(nil)
	block := NewEnv(global)
	inner := NewEnv(block)

	global.Define("a", Float(1))
	block.Define("a", Float(2))

	// Assignment updates the innermost existing binding.
	if err := inner.Assign("a", Float(3)); err != nil {
		t.Fatal(err)
	}
	if v, _ := block.values["a"]; v != Float(3) {
		t.Errorf("block a = %v, want 3", v)
	}
	if v, _ := global.values["a"]; v != Float(1) {
		t.Errorf("global a = %v, want 1", v)
	}
	if _, ok := inner.values["a"]; ok {
		t.Error("Assign created a binding in the current scope")
	}

	// Assignment never creates a binding.
	err := inner.Assign("b", Float(0))
	var ue *UndefinedError
	if !errors.As(err, &ue) || ue.Name != "b" {
		t.Errorf("Assign(b) error = %v, want undefined b", err)
	}
	if _, scope := inner.LookupParent("b"); scope != nil {
		t.Error("failed Assign left a binding behind")
	}
}

func TestEnvDepth(t *testing.T) {
	// global -> function -> block
	global := NewEnv(nil)
	fn := NewEnv(global)
	block := NewEnv(fn)

	tests := []struct {
		env    *Env
		depth  int
		parent *Env
	}{
		{global, 0, nil},
		{fn, 1, global},
		{block, 2, fn},
	}
	for i, tt := range tests {
		if got := tt.env.Depth(); got != tt.depth {
			t.Errorf("scope %d: Depth() = %d, want %d", i, got, tt.depth)
		}
		if got := tt.env.parent; got != tt.parent {
			t.Errorf("scope %d: wrong parent", i)
		}
	}
}

func TestEnvNames(t *testing.T) {
	env := NewEnv(nil)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		env.Define(name, Nil)
	}

	if got, want := env.Names(), []string{"alpha", "mid", "zeta"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := NewEnv(env).Names(); len(got) != 0 {
		t.Errorf("Names() of empty scope = %v", got)
	}
}

func TestEnvString(t *testing.T) {
	global := NewEnv(nil)
	global.Define("a", Float(1))
	local := NewEnv(global)
	local.Define("s", String("hi"))
	local.Define("b", Bool(true))

	want := "scope 1 {\n  b: true\n  s: hi\n}\nscope 0 {\n  a: 1\n}\n"
	if got := local.String(); got != want {
		t.Errorf("String() =\n%s\nwant:\n%s", got, want)
	}
}
