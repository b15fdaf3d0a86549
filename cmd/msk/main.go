// Package main implements the msk interpreter entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/you-not-fish/msk/internal/config"
	"github.com/you-not-fish/msk/internal/interp"
	"github.com/you-not-fish/msk/internal/syntax"
)

// Interpreter flags
var (
	configPath = flag.String("config", "", "Configuration file (default $"+config.EnvVar+")")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	astFormat  = flag.String("ast-format", "text", "AST output format (text or json)")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

// Exit codes, from sysexits.h.
const (
	exitOK      = 0
	exitUsage   = 64 // command line usage error
	exitDataErr = 65 // lexical or syntax error
	exitNoInput = 66 // input file unreadable
	exitRuntime = 70 // runtime error
	exitIOErr   = 74 // output could not be written
	exitConfig  = 78 // configuration error
)

// cfg holds the settings in effect. Tests may replace it.
var cfg = config.Default()

func main() {
	flag.Usage = func() {
		usage(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("msk version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(exitOK)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(exitUsage)
	}

	c, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitConfig)
	}
	cfg = c

	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitConfig)
	}
	slog.SetDefault(logger)
	if cfg.Path != "" {
		slog.Info("configuration loaded", slog.String("path", cfg.Path))
	}

	cmd := args[0]
	if cmd == "repl" {
		os.Exit(runREPL())
	}

	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "error: %s: no input file\n", cmd)
		fmt.Fprintln(os.Stderr, "usage: msk [options] <command> <file>")
		os.Exit(exitUsage)
	}
	filename := args[1]

	switch cmd {
	case "tokenize":
		os.Exit(runTokenize(filename))
	case "parse":
		os.Exit(runParse(filename))
	case "evaluate":
		os.Exit(runEvaluate(filename))
	case "run":
		os.Exit(runRun(filename))
	case "ast":
		os.Exit(runAST(filename))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		os.Exit(exitUsage)
	}
}

// usage writes the command summary to w.
func usage(w io.Writer) {
	fmt.Fprintf(w, "msk %s\n\n", Version)
	fmt.Fprintf(w, "Usage: msk [options] <command> [file]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  tokenize <file>  Print the token stream\n")
	fmt.Fprintf(w, "  parse <file>     Print a single expression in prefix form\n")
	fmt.Fprintf(w, "  evaluate <file>  Evaluate a single expression and print its value\n")
	fmt.Fprintf(w, "  run <file>       Run a program\n")
	fmt.Fprintf(w, "  ast <file>       Print the syntax tree of a program\n")
	fmt.Fprintf(w, "  repl             Start an interactive session\n\n")
	fmt.Fprintf(w, "break and continue are reserved words: tokenize reports them\n")
	fmt.Fprintf(w, "as BREAK and CONTINUE, not IDENTIFIER.\n\n")
	fmt.Fprintf(w, "Options:\n")
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *logLevel != "" {
		if _, err := config.ParseLevel(*logLevel); err != nil {
			return nil, fmt.Errorf("-log-level: %w", err)
		}
		c.Log.Level = *logLevel
	}
	switch *astFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("-ast-format: unsupported format %q (want text or json)", *astFormat)
	}
	return c, nil
}

// parserOptions returns the parser settings from the configuration.
func parserOptions() []syntax.Option {
	return []syntax.Option{
		syntax.WithSynchronize(cfg.Parser.Synchronize),
		syntax.WithMaxErrors(cfg.Parser.MaxErrors),
	}
}

// printError writes a lexical or syntax diagnostic to stderr.
func printError(err *syntax.Error) {
	fmt.Fprintln(os.Stderr, err)
}

// readSource reads filename, reporting failures on stderr.
func readSource(filename string) (string, bool) {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return "", false
	}
	return string(data), true
}

// scanFile reads and scans filename. The token slice is returned even when
// lexical errors were reported; ok is false if the file could not be read.
func scanFile(filename string) (toks []syntax.Token, hadErr, ok bool) {
	src, ok := readSource(filename)
	if !ok {
		return nil, false, false
	}
	start := time.Now()
	toks, hadErr = syntax.Scan(src, printError)
	slog.Debug("scan", slog.String("file", filename), slog.Int("tokens", len(toks)), slog.Duration("elapsed", time.Since(start)))
	return toks, hadErr, true
}

// parseProgram scans and parses filename. It returns an exit code other
// than exitOK if the program must not be executed.
func parseProgram(filename string) ([]syntax.Stmt, int) {
	toks, hadErr, ok := scanFile(filename)
	if !ok {
		return nil, exitNoInput
	}
	if hadErr {
		return nil, exitDataErr
	}

	start := time.Now()
	stmts, hadErr := syntax.NewParser(toks, printError, parserOptions()...).Parse()
	elapsed := time.Since(start)
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("parse", slog.String("file", filename), slog.Int("stmts", len(stmts)),
			slog.Int("nodes", syntax.CountNodes(stmts)), slog.Duration("elapsed", elapsed))
	}
	if hadErr {
		return stmts, exitDataErr
	}
	return stmts, exitOK
}

// parseExpression scans and parses filename as a single expression.
func parseExpression(filename string) (syntax.Expr, int) {
	toks, hadErr, ok := scanFile(filename)
	if !ok {
		return nil, exitNoInput
	}
	if hadErr {
		return nil, exitDataErr
	}

	x, hadErr := syntax.NewParser(toks, printError, parserOptions()...).ParseExpression()
	if hadErr {
		return nil, exitDataErr
	}
	return x, exitOK
}

// reportRuntimeError writes an execution error to stderr and returns the
// matching exit code. A failed write of print output is an I/O error, not
// an error of the program.
func reportRuntimeError(err error) int {
	var oerr *interp.OutputError
	if errors.As(err, &oerr) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitIOErr
	}

	fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)

	var rerr *interp.RuntimeError
	if errors.As(err, &rerr) {
		slog.Debug("runtime error", slog.String("kind", rerr.Kind.String()), slog.Int("line", rerr.Line))
	}
	return exitRuntime
}

// runTokenize scans the input file and prints one token per line.
// Tokens are printed even when lexical errors occur.
func runTokenize(filename string) int {
	toks, hadErr, ok := scanFile(filename)
	if !ok {
		return exitNoInput
	}
	for _, tok := range toks {
		fmt.Println(tok)
	}
	if hadErr {
		return exitDataErr
	}
	return exitOK
}

// runParse parses the input file as one expression and prints it in
// parenthesized prefix form.
func runParse(filename string) int {
	x, code := parseExpression(filename)
	if code != exitOK {
		return code
	}
	fmt.Println(syntax.ExprString(x))
	return exitOK
}

// runEvaluate evaluates the input file as one expression and prints the
// value.
func runEvaluate(filename string) int {
	x, code := parseExpression(filename)
	if code != exitOK {
		return code
	}

	in := interp.New(interp.WithOutput(os.Stdout), interp.WithLogger(slog.Default()))
	v, err := in.Evaluate(x)
	if err != nil {
		return reportRuntimeError(err)
	}
	fmt.Println(v)
	return exitOK
}

// runRun executes the input file as a program.
func runRun(filename string) int {
	stmts, code := parseProgram(filename)
	if code != exitOK {
		return code
	}

	in := interp.New(interp.WithOutput(os.Stdout), interp.WithLogger(slog.Default()))
	start := time.Now()
	v, err := in.Execute(stmts)
	if err != nil {
		return reportRuntimeError(err)
	}
	slog.Debug("run", slog.String("file", filename), slog.String("result", v.String()), slog.Duration("elapsed", time.Since(start)))
	return exitOK
}

// runAST parses the input file and outputs the syntax tree. Nothing is
// printed when the program has lexical or syntax errors.
func runAST(filename string) int {
	stmts, code := parseProgram(filename)
	if code != exitOK {
		return code
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, stmts); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitIOErr
		}
	default:
		syntax.Fprint(os.Stdout, stmts)
	}
	return exitOK
}
