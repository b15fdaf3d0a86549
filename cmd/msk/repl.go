package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/msk/internal/interp"
	"github.com/you-not-fish/msk/internal/syntax"
)

// runREPL reads entries from the terminal and executes them in one
// interpreter, so declarations persist between entries.
func runREPL() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if hist := cfg.HistoryPath(); hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(hist)
			if err != nil {
				slog.Warn("cannot save history", slog.String("path", hist), slog.Any("err", err))
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	fmt.Printf("msk %s. Press Ctrl-D to exit.\n", Version)

	in := interp.New(interp.WithOutput(os.Stdout), interp.WithLogger(slog.Default()))
	for {
		src, ok := readEntry(ln, cfg.REPL.Prompt, cfg.REPL.Continuation)
		if !ok {
			fmt.Println()
			return exitOK
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		evalEntry(in, src, os.Stdout, os.Stderr)
	}
}

// readEntry reads lines until the brackets in the entry balance. It
// returns false at end of input. Ctrl-C discards the pending entry.
func readEntry(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// liner.ErrPromptAborted
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if src := b.String(); !needsMore(src) {
			return src, true
		}
	}
}

// needsMore reports whether src has unclosed braces or parentheses.
func needsMore(src string) bool {
	toks, _ := syntax.Scan(src, nil)
	depth := 0
	for _, tok := range toks {
		switch tok.Kind {
		case syntax.LeftBrace, syntax.LeftParen:
			depth++
		case syntax.RightBrace, syntax.RightParen:
			depth--
		}
	}
	return depth > 0
}

// evalEntry executes one REPL entry. A program ending in an expression
// statement echoes its value; an entry that is a bare expression without
// a trailing ';' is evaluated and echoed too.
func evalEntry(in *interp.Interpreter, src string, stdout, stderr io.Writer) {
	var errs []*syntax.Error
	collect := func(err *syntax.Error) { errs = append(errs, err) }

	toks, hadErr := syntax.Scan(src, collect)
	if hadErr {
		printErrors(stderr, errs)
		return
	}

	stmts, hadErr := syntax.NewParser(toks, collect, parserOptions()...).Parse()
	if hadErr {
		x, bad := syntax.NewParser(toks, nil).ParseExpression()
		if bad {
			printErrors(stderr, errs)
			return
		}
		v, err := in.Evaluate(x)
		if err != nil {
			printExecError(stderr, err)
			return
		}
		fmt.Fprintln(stdout, v)
		return
	}

	v, err := in.Execute(stmts)
	if err != nil {
		printExecError(stderr, err)
		return
	}
	if n := len(stmts); n > 0 {
		if _, ok := stmts[n-1].(*syntax.ExprStmt); ok {
			fmt.Fprintln(stdout, v)
		}
	}
}

// printExecError reports an error from executing an entry.
func printExecError(w io.Writer, err error) {
	var oerr *interp.OutputError
	if errors.As(err, &oerr) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Runtime error: %v\n", err)
}

func printErrors(w io.Writer, errs []*syntax.Error) {
	for _, err := range errs {
		fmt.Fprintln(w, err)
	}
}
