package interp

import (
	"fmt"

	"github.com/you-not-fish/msk/internal/runtime"
	"github.com/you-not-fish/msk/internal/syntax"
)

// execList executes stmts in order in the current scope. It stops at the
// first error or at the first statement that raises a signal.
func (in *Interpreter) execList(stmts []syntax.Stmt) (flow, error) {
	for _, s := range stmts {
		fl, err := in.exec(s)
		if err != nil || fl.kind != flowNormal {
			return fl, err
		}
	}
	return flow{}, nil
}

// execBlock executes stmts in env and restores the current scope on every
// exit path.
func (in *Interpreter) execBlock(stmts []syntax.Stmt, env *runtime.Env) (flow, error) {
	defer in.enter(env)()
	return in.execList(stmts)
}

// exec executes a single statement.
func (in *Interpreter) exec(s syntax.Stmt) (flow, error) {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		v, err := in.eval(s.X)
		if err != nil {
			return flow{}, err
		}
		in.last = v

	case *syntax.PrintStmt:
		v, err := in.eval(s.X)
		if err != nil {
			return flow{}, err
		}
		if _, err := fmt.Fprintln(in.out, v.String()); err != nil {
			return flow{}, &OutputError{Line: s.Line(), Err: err}
		}

	case *syntax.VarStmt:
		v := runtime.Nil
		if s.Init != nil {
			var err error
			if v, err = in.eval(s.Init); err != nil {
				return flow{}, err
			}
		}
		in.env.Define(s.Name.Lexeme, v)

	case *syntax.BlockStmt:
		return in.execBlock(s.Stmts, runtime.NewEnv(in.env))

	case *syntax.IfStmt:
		cond, err := in.eval(s.Cond)
		if err != nil {
			return flow{}, err
		}
		if runtime.Truthy(cond) {
			return in.exec(s.Then)
		}
		if s.Else != nil {
			return in.exec(s.Else)
		}

	case *syntax.WhileStmt:
		return in.execWhile(s)

	case *syntax.ForStmt:
		return in.execFor(s)

	case *syntax.BranchStmt:
		kind := flowBreak
		if s.Tok.Kind == syntax.Continue {
			kind = flowContinue
		}
		return flow{kind: kind, line: s.Line()}, nil

	case *syntax.FuncStmt:
		in.env.Define(s.Name.Lexeme, runtime.NewClosure(s, in.env))

	case *syntax.ReturnStmt:
		v := runtime.Nil
		if s.Result != nil {
			var err error
			if v, err = in.eval(s.Result); err != nil {
				return flow{}, err
			}
		}
		return flow{kind: flowReturn, value: v, line: s.Line()}, nil

	default:
		return flow{}, fmt.Errorf("unexpected statement %T", s)
	}

	return flow{}, nil
}

func (in *Interpreter) execWhile(s *syntax.WhileStmt) (flow, error) {
	for {
		cond, err := in.eval(s.Cond)
		if err != nil {
			return flow{}, err
		}
		if !runtime.Truthy(cond) {
			return flow{}, nil
		}

		fl, err := in.exec(s.Body)
		if err != nil {
			return flow{}, err
		}
		switch fl.kind {
		case flowBreak:
			return flow{}, nil
		case flowReturn:
			return fl, nil
		}
	}
}

// execFor runs a for loop in a scope of its own that holds the
// initializer's bindings. The increment runs after every iteration that
// completes normally or by continue, never after break.
func (in *Interpreter) execFor(s *syntax.ForStmt) (flow, error) {
	defer in.enter(runtime.NewEnv(in.env))()

	if s.Init != nil {
		if _, err := in.exec(s.Init); err != nil {
			return flow{}, err
		}
	}

	for {
		if s.Cond != nil {
			cond, err := in.eval(s.Cond)
			if err != nil {
				return flow{}, err
			}
			if !runtime.Truthy(cond) {
				return flow{}, nil
			}
		}

		fl, err := in.exec(s.Body)
		if err != nil {
			return flow{}, err
		}
		switch fl.kind {
		case flowBreak:
			return flow{}, nil
		case flowReturn:
			return fl, nil
		}

		if s.Incr != nil {
			if _, err := in.eval(s.Incr); err != nil {
				return flow{}, err
			}
		}
	}
}
