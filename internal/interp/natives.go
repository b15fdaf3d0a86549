package interp

import (
	"fmt"

	"github.com/you-not-fish/msk/internal/runtime"
)

// native describes a built-in function installed in the global scope.
type native struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []runtime.Value) (runtime.Value, error)
}

var natives = []native{
	{"clock", 0, nativeClock},
	{"str", 1, nativeStr},
	{"len", 1, nativeLen},
}

// defineNatives binds every native in the global scope.
func (in *Interpreter) defineNatives() {
	for _, n := range natives {
		fn := n.fn
		in.globals.Define(n.name, runtime.NewNative(n.name, n.arity, func(args []runtime.Value) (runtime.Value, error) {
			return fn(in, args)
		}))
	}
}

// nativeClock returns the seconds elapsed since the Unix epoch.
func nativeClock(in *Interpreter, _ []runtime.Value) (runtime.Value, error) {
	return runtime.Float(float64(in.now().UnixNano()) / 1e9), nil
}

// nativeStr returns the display form of its argument.
func nativeStr(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	return runtime.String(args[0].String()), nil
}

// nativeLen returns the length of a string in bytes.
func nativeLen(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	s, ok := args[0].(runtime.String)
	if !ok {
		return nil, &RuntimeError{Kind: OperandType, Msg: fmt.Sprintf("Argument to 'len' must be a string, not %s.", args[0].Kind())}
	}
	return runtime.Float(len(s)), nil
}
