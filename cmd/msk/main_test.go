package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/msk/internal/config"
	"github.com/you-not-fish/msk/internal/interp"
)

func TestRunTokenize(t *testing.T) {
	filename := writeTempMskFile(t, "var x = 12.5;\nprint \"hi\" + x; // done\n")
	code, out, errOut := captureOutput(t, func() int {
		return runTokenize(filename)
	})

	if code != exitOK {
		t.Fatalf("runTokenize exit=%d\nstderr:\n%s", code, errOut)
	}
	want := `VAR var null
IDENTIFIER x null
EQUAL = null
NUMBER 12.5 12.5
SEMICOLON ; null
PRINT print null
STRING "hi" hi
PLUS + null
IDENTIFIER x null
SEMICOLON ; null
EOF  null
`
	if out != want {
		t.Errorf("tokens:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunTokenizeErrors(t *testing.T) {
	filename := writeTempMskFile(t, "1 @ 2\n\"open")
	code, out, errOut := captureOutput(t, func() int {
		return runTokenize(filename)
	})

	if code != exitDataErr {
		t.Fatalf("runTokenize exit=%d, want %d", code, exitDataErr)
	}
	wantErr := "[line 1] Error: Unexpected character.\n[line 2] Error: Unterminated string.\n"
	if errOut != wantErr {
		t.Errorf("stderr = %q, want %q", errOut, wantErr)
	}
	wantOut := "NUMBER 1 1.0\nNUMBER 2 2.0\nEOF  null\n"
	if out != wantOut {
		t.Errorf("stdout = %q, want %q", out, wantOut)
	}
}

func TestRunParse(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1.0 (* 2.0 3.0))"},
		{"-(4 - 1) / 2", "(/ (- (group (- 4.0 1.0))) 2.0)"},
		{`"a" == nil`, "(== a nil)"},
		{"a = b or c", "(= a (or b c))"},
		{"f(1)(x)", "(call (call f 1.0) x)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			filename := writeTempMskFile(t, tt.src)
			code, out, errOut := captureOutput(t, func() int {
				return runParse(filename)
			})
			if code != exitOK {
				t.Fatalf("runParse exit=%d\nstderr:\n%s", code, errOut)
			}
			if got := strings.TrimSuffix(out, "\n"); got != tt.want {
				t.Errorf("parse = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"missing_operand", "1 +", "[line 1] Error at end: Expect expression."},
		{"unclosed_group", "(1", "[line 1] Error at end: Expect ')' after expression."},
		{"trailing", "1 2", "[line 1] Error at '2': Expect end of expression."},
		{"bad_target", "1 = 2", "[line 1] Error at '=': Invalid assignment target."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := writeTempMskFile(t, tt.src)
			code, out, errOut := captureOutput(t, func() int {
				return runParse(filename)
			})
			if code != exitDataErr {
				t.Fatalf("runParse exit=%d, want %d", code, exitDataErr)
			}
			if out != "" {
				t.Errorf("unexpected stdout: %q", out)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestRunEvaluate(t *testing.T) {
	tests := []struct {
		src      string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"1 + 2 * 3", exitOK, "7\n", ""},
		{`"con" + "cat"`, exitOK, "concat\n", ""},
		{"10 / 4", exitOK, "2.5\n", ""},
		{"1 / 0", exitRuntime, "", "Runtime error: [line 1] Division by zero is not allowed.\n"},
		{`"a" + 1`, exitRuntime, "", "Runtime error: [line 1] Operands must be two numbers or two strings for '+' operator.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			filename := writeTempMskFile(t, tt.src)
			code, out, errOut := captureOutput(t, func() int {
				return runEvaluate(filename)
			})
			if code != tt.wantCode {
				t.Fatalf("runEvaluate exit=%d, want %d\nstderr:\n%s", code, tt.wantCode, errOut)
			}
			if out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
			if errOut != tt.wantErr {
				t.Errorf("stderr = %q, want %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestRunRun(t *testing.T) {
	src := `fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
for (var i = 0; i < 6; i = i + 1) {
  print fib(i);
}
`
	filename := writeTempMskFile(t, src)
	code, out, errOut := captureOutput(t, func() int {
		return runRun(filename)
	})

	if code != exitOK {
		t.Fatalf("runRun exit=%d\nstderr:\n%s", code, errOut)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	if want := "0\n1\n1\n2\n3\n5\n"; out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestRunRunExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"lex_error", "print 1;\n#", exitDataErr, "", "[line 2] Error: Unexpected character.\n"},
		{"syntax_error", "print 1;\nvar = 2;", exitDataErr, "", "[line 2] Error at '=': Expect variable name.\n"},
		{"runtime_error", "print 1;\nprint x;", exitRuntime, "1\n", "Runtime error: [line 2] Undefined variable 'x'.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := writeTempMskFile(t, tt.src)
			code, out, errOut := captureOutput(t, func() int {
				return runRun(filename)
			})
			if code != tt.wantCode {
				t.Fatalf("runRun exit=%d, want %d\nstderr:\n%s", code, tt.wantCode, errOut)
			}
			if out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
			if !strings.HasPrefix(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want prefix %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.msk")
	for name, fn := range map[string]func(string) int{
		"tokenize": runTokenize,
		"parse":    runParse,
		"evaluate": runEvaluate,
		"run":      runRun,
		"ast":      runAST,
	} {
		code, _, errOut := captureOutput(t, func() int { return fn(missing) })
		if code != exitNoInput {
			t.Errorf("%s: exit=%d, want %d", name, code, exitNoInput)
		}
		if !strings.HasPrefix(errOut, "error: ") {
			t.Errorf("%s: stderr = %q", name, errOut)
		}
	}
}

func TestRunAST(t *testing.T) {
	filename := writeTempMskFile(t, "var a = 1;\nprint a + 2;\n")

	code, out, errOut := captureOutput(t, func() int {
		return runAST(filename)
	})
	if code != exitOK {
		t.Fatalf("runAST exit=%d\nstderr:\n%s", code, errOut)
	}
	want := `VarStmt line 1
  Name: a
  Init:
    1.0
PrintStmt line 2
  (+ a 2.0)
`
	if out != want {
		t.Errorf("AST:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunASTSyntaxError(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		for _, src := range []string{"fun (", "print 1 + ;", "var a = 1;\nprint a +;\n"} {
			old := *astFormat
			*astFormat = format

			filename := writeTempMskFile(t, src)
			code, out, errOut := captureOutput(t, func() int {
				return runAST(filename)
			})
			*astFormat = old

			if code != exitDataErr {
				t.Errorf("%s %q: exit=%d, want %d", format, src, code, exitDataErr)
			}
			if out != "" {
				t.Errorf("%s %q: tree printed despite syntax errors:\n%s", format, src, out)
			}
			if errOut == "" {
				t.Errorf("%s %q: no diagnostics on stderr", format, src)
			}
		}
	}
}

func TestRunASTJSON(t *testing.T) {
	old := *astFormat
	*astFormat = "json"
	defer func() { *astFormat = old }()

	filename := writeTempMskFile(t, "print 1;")
	code, out, errOut := captureOutput(t, func() int {
		return runAST(filename)
	})
	if code != exitOK {
		t.Fatalf("runAST exit=%d\nstderr:\n%s", code, errOut)
	}

	var nodes []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &nodes); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(nodes) != 1 || nodes[0]["type"] != "PrintStmt" {
		t.Errorf("nodes = %v, want one PrintStmt", nodes)
	}
}

func TestRunOutputFailure(t *testing.T) {
	filename := writeTempMskFile(t, "print 1;\n")

	code, _, errOut := captureOutput(t, func() int {
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("pipe: %v", err)
		}
		_ = r.Close()
		_ = w.Close()

		stdout := os.Stdout
		os.Stdout = w
		defer func() { os.Stdout = stdout }()
		return runRun(filename)
	})

	if code != exitIOErr {
		t.Errorf("exit=%d, want %d", code, exitIOErr)
	}
	if !strings.HasPrefix(errOut, "error: [line 1] write output: ") {
		t.Errorf("stderr = %q", errOut)
	}
	if strings.Contains(errOut, "Runtime error") {
		t.Errorf("write failure reported as a runtime error: %q", errOut)
	}
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	usage(&buf)

	for _, want := range []string{
		"tokenize <file>",
		"repl",
		"break and continue are reserved words",
		"as BREAK and CONTINUE, not IDENTIFIER.",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q:\n%s", want, buf.String())
		}
	}
}

func TestParserConfigApplied(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()

	src := "var = 1;\nprint;\nvar = 2;\n"
	filename := writeTempMskFile(t, src)

	cfg = config.Default()
	cfg.Parser.MaxErrors = 1
	_, _, errOut := captureOutput(t, func() int { return runRun(filename) })
	if n := strings.Count(errOut, "\n"); n != 1 {
		t.Errorf("max_errors=1: got %d errors:\n%s", n, errOut)
	}

	cfg = config.Default()
	cfg.Parser.Synchronize = true
	_, _, errOut = captureOutput(t, func() int { return runRun(filename) })
	for _, line := range []string{
		"[line 1] Error at '=': Expect variable name.",
		"[line 2] Error at ';': Expect expression.",
		"[line 3] Error at '=': Expect variable name.",
	} {
		if !strings.Contains(errOut, line) {
			t.Errorf("synchronize: stderr missing %q:\n%s", line, errOut)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("shown", slog.Int("n", 1))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level:\n%s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"n":1`) {
		t.Errorf("unexpected JSON log output:\n%s", out)
	}

	if _, err := newLogger(config.LogConfig{Level: "info", Format: "xml"}, &buf); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := newLogger(config.LogConfig{Level: "loud", Format: "text"}, &buf); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"print 1;", false},
		{"fun f() {", true},
		{"fun f() {\n  print 1;", true},
		{"fun f() {\n  print 1;\n}", false},
		{"print (1 +", true},
		{"}", false},
		{`print "{";`, false},
	}
	for _, tt := range tests {
		if got := needsMore(tt.src); got != tt.want {
			t.Errorf("needsMore(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestEvalEntry(t *testing.T) {
	in := interp.New(
		interp.WithOutput(io.Discard),
		interp.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	tests := []struct {
		src     string
		wantOut string
		wantErr string
	}{
		{"var a = 2;", "", ""},
		{"a * 21;", "42\n", ""},
		{"a + 1", "3\n", ""},
		{"fun twice(x) { return x * 2; }", "", ""},
		{"twice(a)", "4\n", ""},
		{"b;", "", "Runtime error: [line 1] Undefined variable 'b'.\n"},
		{"var = 1;", "", "[line 1] Error at '=': Expect variable name.\n"},
		{"@", "", "[line 1] Error: Unexpected character.\n"},
	}

	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		evalEntry(in, tt.src, &stdout, &stderr)
		if got := stdout.String(); got != tt.wantOut {
			t.Errorf("evalEntry(%q) stdout = %q, want %q", tt.src, got, tt.wantOut)
		}
		if got := stderr.String(); got != tt.wantErr {
			t.Errorf("evalEntry(%q) stderr = %q, want %q", tt.src, got, tt.wantErr)
		}
	}
}

func TestEvalEntryOutputFailure(t *testing.T) {
	in := interp.New(
		interp.WithOutput(failingWriter{}),
		interp.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	var stdout, stderr bytes.Buffer
	evalEntry(in, "print 1;", &stdout, &stderr)
	if got, want := stderr.String(), "error: [line 1] write output: closed\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func writeTempMskFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.msk")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
