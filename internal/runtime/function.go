package runtime

import "github.com/you-not-fish/msk/internal/syntax"

// NativeFunc implements a built-in function. The argument count has been
// checked against the declared arity before it is called.
type NativeFunc func(args []Value) (Value, error)

// Function is a callable value. It is either native (Native is set) or a
// user-defined closure (Decl and Closure are set); the interpreter
// dispatches on which.
type Function struct {
	Name string

	// Native functions
	Native NativeFunc
	arity  int

	// User functions
	Decl    *syntax.FuncStmt
	Closure *Env // scope active where the function was declared
}

// NewNative returns a native function of the given arity.
func NewNative(name string, arity int, fn NativeFunc) *Function {
	return &Function{Name: name, Native: fn, arity: arity}
}

// NewClosure returns a user function for decl that captures env.
func NewClosure(decl *syntax.FuncStmt, env *Env) *Function {
	return &Function{Name: decl.Name.Lexeme, Decl: decl, Closure: env}
}

// IsNative reports whether f is implemented in Go.
func (f *Function) IsNative() bool {
	return f.Native != nil
}

// Arity returns the number of arguments f expects.
func (f *Function) Arity() int {
	if f.Decl != nil {
		return len(f.Decl.Params)
	}
	return f.arity
}

func (*Function) Kind() Kind { return KindFunction }
func (*Function) aValue()    {}

func (f *Function) String() string {
	if f.IsNative() {
		return "<native fn>"
	}
	return "<fn " + f.Name + ">"
}
