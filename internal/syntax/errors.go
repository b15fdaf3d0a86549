package syntax

import "fmt"

// Error is a lexical or syntax diagnostic.
//
// Where is empty for lexical errors and " at 'lexeme'" or " at end" for
// syntax errors, giving the rendering "[line N] Error at 'x': msg".
type Error struct {
	Line  int
	Where string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Msg)
}

// ErrorHandler is called for each diagnostic as it is found.
type ErrorHandler func(err *Error)

// errorList counts diagnostics and forwards them to a handler.
// It is shared by the scanner and the parser.
type errorList struct {
	errh   ErrorHandler
	errcnt int
}

func (l *errorList) report(e *Error) {
	l.errcnt++
	if l.errh != nil {
		l.errh(e)
	}
}

// Errors returns the number of diagnostics reported so far.
func (l *errorList) Errors() int {
	return l.errcnt
}
