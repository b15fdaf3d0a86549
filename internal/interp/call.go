package interp

import (
	"errors"
	"log/slog"

	"github.com/you-not-fish/msk/internal/runtime"
	"github.com/you-not-fish/msk/internal/syntax"
)

// call evaluates a call expression. The callee is evaluated and checked
// before any argument; arguments are evaluated left to right.
func (in *Interpreter) call(x *syntax.Call) (runtime.Value, error) {
	callee, err := in.eval(x.Callee)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(*runtime.Function)
	if !ok {
		return nil, errorf(NotCallable, x.Paren.Line, "Can only call functions and classes.")
	}

	args := make([]runtime.Value, 0, len(x.Args))
	for _, a := range x.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if len(args) != fn.Arity() {
		return nil, errorf(Arity, x.Paren.Line, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if fn.IsNative() {
		return in.callNative(fn, args, x.Paren.Line)
	}
	return in.callFunction(fn, args)
}

// callNative invokes a Go implemented function. Errors it returns are
// attributed to the call site.
func (in *Interpreter) callNative(fn *runtime.Function, args []runtime.Value, line int) (runtime.Value, error) {
	in.log.Debug("call native", slog.String("name", fn.Name), slog.Int("args", len(args)))

	v, err := fn.Native(args)
	if err != nil {
		var rerr *RuntimeError
		if errors.As(err, &rerr) {
			if rerr.Line == 0 {
				rerr.Line = line
			}
			return nil, rerr
		}
		return nil, &RuntimeError{Kind: Native, Line: line, Msg: err.Error(), Err: err}
	}
	if v == nil {
		v = runtime.Nil
	}
	return v, nil
}

// callFunction invokes a user function. The body runs in a new scope whose
// parent is the scope captured at declaration, not the caller's scope.
func (in *Interpreter) callFunction(fn *runtime.Function, args []runtime.Value) (runtime.Value, error) {
	body, ok := fn.Decl.Body.(*syntax.BlockStmt)
	if !ok {
		return nil, errorf(InvalidFunctionBody, fn.Decl.Line(), "Function body must be a block statement.")
	}

	in.log.Debug("call", slog.String("name", fn.Name), slog.Int("args", len(args)))

	// Expression statements in the body do not set the final value.
	last := in.last
	defer func() { in.last = last }()

	env := runtime.NewEnv(fn.Closure)
	for i, param := range fn.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	fl, err := in.execBlock(body.Stmts, env)
	if err != nil {
		return nil, err
	}

	switch fl.kind {
	case flowReturn:
		return fl.value, nil
	case flowBreak, flowContinue:
		return nil, straySignal(fl)
	}
	return runtime.Nil, nil
}
