package interp

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/msk/internal/runtime"
)

// ErrorKind classifies a runtime error.
type ErrorKind int

const (
	_                   ErrorKind = iota
	OperandType                   // operand of the wrong type for an operator
	DivisionByZero                // division by a zero number
	UndefinedVariable             // read or assignment of an unbound name
	NotCallable                   // call of a value that is not a function
	Arity                         // argument count differs from the arity
	InvalidFunctionBody           // function body is not a block
	StraySignal                   // break or continue outside of a loop
	Native                        // failure inside a native function
)

var errorKindNames = [...]string{
	OperandType:         "operand type",
	DivisionByZero:      "division by zero",
	UndefinedVariable:   "undefined variable",
	NotCallable:         "not callable",
	Arity:               "arity",
	InvalidFunctionBody: "invalid function body",
	StraySignal:         "stray signal",
	Native:              "native",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// RuntimeError is an error raised while executing a program. It aborts the
// statement sequence in flight and propagates to the caller of Execute.
type RuntimeError struct {
	Kind ErrorKind
	Line int // 0 when unknown
	Msg  string
	Err  error // underlying cause, if any
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[line %d] %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// OutputError reports a print statement whose output could not be
// written. It is distinct from RuntimeError.
type OutputError struct {
	Line int
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("[line %d] write output: %v", e.Line, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// errorf returns a runtime error of the given kind.
func errorf(kind ErrorKind, line int, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// undefined converts an environment lookup failure into a runtime error.
func undefined(err error, line int) error {
	var u *runtime.UndefinedError
	if !errors.As(err, &u) {
		return err
	}
	if u.Line > 0 {
		line = u.Line
	}
	return &RuntimeError{Kind: UndefinedVariable, Line: line, Msg: u.Error(), Err: err}
}
