package interp

import (
	"fmt"

	"github.com/you-not-fish/msk/internal/runtime"
	"github.com/you-not-fish/msk/internal/syntax"
)

// eval evaluates an expression in the current scope.
func (in *Interpreter) eval(x syntax.Expr) (runtime.Value, error) {
	switch x := x.(type) {
	case *syntax.Literal:
		return literal(x.Value), nil

	case *syntax.Grouping:
		return in.eval(x.X)

	case *syntax.Unary:
		return in.unary(x)

	case *syntax.Binary:
		return in.binary(x)

	case *syntax.Logical:
		return in.logical(x)

	case *syntax.Variable:
		v, err := in.env.Get(x.Name.Lexeme, x.Name.Line)
		if err != nil {
			return nil, undefined(err, x.Name.Line)
		}
		return v, nil

	case *syntax.Assign:
		v, err := in.eval(x.Value)
		if err != nil {
			return nil, err
		}
		if err := in.env.Assign(x.Name.Lexeme, v); err != nil {
			return nil, undefined(err, x.Name.Line)
		}
		return v, nil

	case *syntax.Call:
		return in.call(x)

	case nil:
		return nil, fmt.Errorf("missing expression")
	}

	return nil, fmt.Errorf("unexpected expression %T", x)
}

// literal maps a literal token to its value.
func literal(t syntax.Token) runtime.Value {
	switch t.Kind {
	case syntax.True:
		return runtime.Bool(true)
	case syntax.False:
		return runtime.Bool(false)
	case syntax.Number:
		if f, ok := t.Literal.(float64); ok {
			return runtime.Float(f)
		}
	case syntax.String:
		if s, ok := t.Literal.(string); ok {
			return runtime.String(s)
		}
	}
	return runtime.Nil
}

func (in *Interpreter) unary(x *syntax.Unary) (runtime.Value, error) {
	v, err := in.eval(x.X)
	if err != nil {
		return nil, err
	}

	switch x.Op.Kind {
	case syntax.Bang:
		return runtime.Bool(!runtime.Truthy(v)), nil
	case syntax.Minus:
		f, ok := v.(runtime.Float)
		if !ok {
			return nil, errorf(OperandType, x.Op.Line, "Operand must be a number for unary '-' operator.")
		}
		return -f, nil
	}

	return nil, fmt.Errorf("unexpected unary operator %s", x.Op.Kind)
}

// binary evaluates both operands, left first, and applies the operator.
func (in *Interpreter) binary(x *syntax.Binary) (runtime.Value, error) {
	a, err := in.eval(x.X)
	if err != nil {
		return nil, err
	}
	b, err := in.eval(x.Y)
	if err != nil {
		return nil, err
	}

	op := x.Op
	switch op.Kind {
	case syntax.EqualEqual:
		return runtime.Bool(runtime.Equal(a, b)), nil
	case syntax.BangEqual:
		return runtime.Bool(!runtime.Equal(a, b)), nil

	case syntax.Plus:
		switch a := a.(type) {
		case runtime.Float:
			if b, ok := b.(runtime.Float); ok {
				return a + b, nil
			}
		case runtime.String:
			if b, ok := b.(runtime.String); ok {
				return a + b, nil
			}
		}
		return nil, errorf(OperandType, op.Line, "Operands must be two numbers or two strings for '+' operator.")
	}

	l, lok := a.(runtime.Float)
	r, rok := b.(runtime.Float)
	if !lok || !rok {
		return nil, errorf(OperandType, op.Line, "Operands must be numbers for '%s' operator.", op.Lexeme)
	}

	switch op.Kind {
	case syntax.Minus:
		return l - r, nil
	case syntax.Star:
		return l * r, nil
	case syntax.Slash:
		if r == 0 {
			return nil, errorf(DivisionByZero, op.Line, "Division by zero is not allowed.")
		}
		return l / r, nil
	case syntax.Greater:
		return runtime.Bool(l > r), nil
	case syntax.GreaterEqual:
		return runtime.Bool(l >= r), nil
	case syntax.Less:
		return runtime.Bool(l < r), nil
	case syntax.LessEqual:
		return runtime.Bool(l <= r), nil
	}

	return nil, fmt.Errorf("unexpected binary operator %s", op.Kind)
}

// logical evaluates and/or with short-circuiting. The result is one of the
// operand values, not a coerced boolean.
func (in *Interpreter) logical(x *syntax.Logical) (runtime.Value, error) {
	a, err := in.eval(x.X)
	if err != nil {
		return nil, err
	}

	if x.Op.Kind == syntax.Or {
		if runtime.Truthy(a) {
			return a, nil
		}
	} else if !runtime.Truthy(a) {
		return a, nil
	}

	return in.eval(x.Y)
}
