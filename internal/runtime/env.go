package runtime

import (
	"fmt"
	"slices"
	"strings"
)

// UndefinedError reports a name with no binding in any enclosing scope.
type UndefinedError struct {
	Name string
	Line int // 0 when unknown
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// Env is a lexical scope: a table of bindings with a link to the enclosing
// scope. Scopes are shared, not owned: a closure keeps its defining scope
// alive after the block that created it has finished.
type Env struct {
	parent *Env
	values map[string]Value
	depth  int // 0 for the global scope
}

// NewEnv creates a new scope with the given parent, which may be nil.
func NewEnv(parent *Env) *Env {
	e := &Env{
		parent: parent,
		values: make(map[string]Value),
	}
	if parent != nil {
		e.depth = parent.depth + 1
	}
	return e
}

// Depth returns the number of scopes enclosing e.
func (e *Env) Depth() int {
	return e.depth
}

// Define binds name in this scope, replacing any binding of the same name
// here and shadowing any binding in an enclosing scope.
func (e *Env) Define(name string, v Value) {
	e.values[name] = v
}

// LookupParent searches this scope and then each enclosing scope for name.
// It returns the value and the scope in which it was found, or (nil, nil).
func (e *Env) LookupParent(name string) (Value, *Env) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.values[name]; ok {
			return v, scope
		}
	}
	return nil, nil
}

// Get returns the value of the innermost binding of name. The line is
// recorded in the error if there is none.
func (e *Env) Get(name string, line int) (Value, error) {
	v, scope := e.LookupParent(name)
	if scope == nil {
		return nil, &UndefinedError{Name: name, Line: line}
	}
	return v, nil
}

// Assign updates the innermost existing binding of name. It never creates
// a binding.
func (e *Env) Assign(name string, v Value) error {
	_, scope := e.LookupParent(name)
	if scope == nil {
		return &UndefinedError{Name: name}
	}
	scope.values[name] = v
	return nil
}

// Names returns the names bound in this scope, sorted alphabetically.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// String returns the scope chain from e outwards, for debugging.
func (e *Env) String() string {
	var buf strings.Builder
	for scope := e; scope != nil; scope = scope.parent {
		fmt.Fprintf(&buf, "scope %d {\n", scope.depth)
		for _, name := range scope.Names() {
			fmt.Fprintf(&buf, "  %s: %s\n", name, scope.values[name])
		}
		buf.WriteString("}\n")
	}
	return buf.String()
}
