package interp

import "github.com/you-not-fish/msk/internal/runtime"

// flowKind tells how a statement completed.
type flowKind uint8

const (
	flowNormal flowKind = iota
	flowBreak
	flowContinue
	flowReturn
)

// flow is the control-flow signal produced by executing a statement.
// It travels next to the error result, never inside it: loops consume
// flowBreak and flowContinue, calls consume flowReturn, and blocks and
// branches pass every signal upwards.
type flow struct {
	kind  flowKind
	value runtime.Value // result of a return
	line  int           // line of the statement that raised the signal
}

// straySignal reports a break or continue that escaped every loop.
func straySignal(fl flow) error {
	word := "break"
	if fl.kind == flowContinue {
		word = "continue"
	}
	return errorf(StraySignal, fl.line, "Cannot use '%s' outside of a loop.", word)
}
