// Package interp implements a tree-walking evaluator for msk programs.
//
// An Interpreter owns the global scope, pre-populated with the native
// functions, and a current scope that moves inwards as blocks and calls are
// entered. Execution is single-threaded; an Interpreter must not be used
// from several goroutines at once.
package interp

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/you-not-fish/msk/internal/runtime"
	"github.com/you-not-fish/msk/internal/syntax"
)

// Interpreter executes parsed programs.
type Interpreter struct {
	globals *runtime.Env
	env     *runtime.Env // current scope

	out io.Writer
	log *slog.Logger
	now func() time.Time

	last runtime.Value // value of the most recent expression statement
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the writer that print statements write to.
// The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithLogger sets the logger for execution tracing.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.log = l }
}

// WithClock sets the time source used by the clock native.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) { in.now = now }
}

// New returns an Interpreter whose global scope holds the natives.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		globals: runtime.NewEnv(nil),
		out:     os.Stdout,
		log:     slog.Default(),
		now:     time.Now,
		last:    runtime.Nil,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.env = in.globals
	in.defineNatives()
	return in
}

// Execute runs stmts in the global scope. Bindings persist across calls,
// so a REPL can feed one entry at a time.
//
// The result is the value of a top-level return if one ran, otherwise the
// value of the last expression statement executed (nil if none). Runtime
// errors abort execution and are returned as *RuntimeError.
func (in *Interpreter) Execute(stmts []syntax.Stmt) (runtime.Value, error) {
	in.env = in.globals
	in.last = runtime.Nil

	fl, err := in.execList(stmts)
	if err != nil {
		return nil, err
	}

	switch fl.kind {
	case flowReturn:
		return fl.value, nil
	case flowBreak, flowContinue:
		return nil, straySignal(fl)
	}
	return in.last, nil
}

// Evaluate evaluates a single expression in the global scope.
func (in *Interpreter) Evaluate(x syntax.Expr) (runtime.Value, error) {
	in.env = in.globals
	return in.eval(x)
}

// enter makes env the current scope and returns a function that restores
// the previous one. Use as: defer in.enter(env)()
func (in *Interpreter) enter(env *runtime.Env) func() {
	prev := in.env
	in.env = env
	in.log.Debug("push scope", slog.Int("depth", env.Depth()))
	return func() {
		in.env = prev
		in.log.Debug("pop scope", slog.Int("depth", prev.Depth()))
	}
}
