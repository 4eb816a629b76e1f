package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podhmo/tinycalc/internal/config"
)

func runMain(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	var stdout, stderr bytes.Buffer
	code := dispatch(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestDispatch_Usage(t *testing.T) {
	code, _, stderr := runMain(t, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Usage: tinycalc <subcommand>")

	code, _, stderr = runMain(t, "", "compile")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: Unknown subcommand 'compile'")
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
		want  string
	}{
		{"expr", "", []string{"run", "-e", "2 + 3 * 4"}, 0, "14\n"},
		{"stdin", "x = 10\n", []string{"run"}, 0, "10\n"},
		{"division", "", []string{"run", "-e", "7 / 2"}, 0, "3.5\n"},
		{"onlyFirstStatement", "", []string{"run", "-e", "x = 0\nwhile x < 5\n    x = x + 1\nx"}, 0, "0\n"},
		{"noValue", "", []string{"run", "-e", "if 0 1"}, 0, "None\n"},
		{"divisionByZero", "", []string{"run", "-e", "5 / 0"}, 1, ""},
		{"withTokensAndAST", "", []string{"run", "-tokens", "-ast", "-e", "1 + 2"}, 0,
			"Tokens: [NUMBER(1) OPERATOR(+) NUMBER(2)]\nAST: BinaryOp(Number(1), +, Number(2))\n3\n"},
		{"help", "", []string{"run", "-h"}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runMain(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRunCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.calc")
	require.NoError(t, os.WriteFile(path, []byte("y = 6 * 7\n"), 0o644))

	code, stdout, _ := runMain(t, "", "run", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "42\n", stdout)

	code, _, _ = runMain(t, "", "run", filepath.Join(t.TempDir(), "missing.calc"))
	assert.Equal(t, 1, code)
}

func TestRunCommand_ConfigShowsAST(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinycalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("show_ast: true\n"), 0o644))

	code, stdout, _ := runMain(t, "", "run", "-config", path, "-e", "x = 1")
	assert.Equal(t, 0, code)
	assert.Equal(t, "AST: Assignment(x, Number(1))\n1\n", stdout)

	// an explicit flag overrides the file
	code, stdout, _ = runMain(t, "", "run", "-config", path, "-ast=false", "-e", "x = 1")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1\n", stdout)
}

func TestScanCommand(t *testing.T) {
	code, stdout, _ := runMain(t, "", "scan", "-e", "x = 5\ny = 3")
	require.Equal(t, 0, code)

	var report struct {
		Source    string           `json:"source"`
		Tokens    []map[string]any `json:"tokens"`
		AST       string           `json:"ast"`
		Consumed  int              `json:"consumed"`
		Remaining []map[string]any `json:"remaining"`
		Result    any              `json:"result"`
		Env       map[string]any   `json:"env"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "x = 5\ny = 3", report.Source)
	assert.Len(t, report.Tokens, 6)
	assert.Equal(t, "IDENTIFIER", report.Tokens[0]["kind"])
	assert.Equal(t, "Assignment(x, Number(5))", report.AST)
	assert.Equal(t, 3, report.Consumed)
	assert.Len(t, report.Remaining, 3)
	assert.Equal(t, float64(5), report.Result)
	assert.Equal(t, map[string]any{"x": float64(5)}, report.Env)
}

func TestDemoCommand(t *testing.T) {
	code, stdout, _ := runMain(t, "", "demo")
	assert.Equal(t, 0, code)
	assert.Equal(t, 4, strings.Count(stdout, "Testing code:"))
	assert.Contains(t, stdout, "Result: 14\n")

	path := filepath.Join(t.TempDir(), "samples.txtar")
	require.NoError(t, os.WriteFile(path, []byte("-- ok --\n1 + 1\n-- bad --\n1 / 0\n"), 0o644))
	code, stdout, _ = runMain(t, "", "demo", "-samples", path)
	assert.Equal(t, 1, code, "a failing sample makes demo exit non-zero")
	assert.Contains(t, stdout, "Result: 2\n")
	assert.Contains(t, stdout, "Error: eval: division by zero\n")
}

// fakeLiner replays scripted lines and then reports io.EOF.
type fakeLiner struct {
	lines   []string
	prompts []string
	history []string
}

func (f *fakeLiner) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeLiner) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func TestREPL(t *testing.T) {
	ln := &fakeLiner{lines: []string{
		"x = 5",
		"y = 3",
		"x + y",
		"if x",
		"  x * 2",
		"",
		"1 / 0",
		"while n n = n - 1",
		"1 2",
		":env",
		":bogus",
		"",
		":reset",
		"x",
		":quit",
		"never read",
	}}
	var out bytes.Buffer
	cfg := config.Default()
	require.NoError(t, repl(context.Background(), ln, cfg, &out))

	want := strings.Join([]string{
		"5",
		"3",
		"8",
		"10",
		"Error: eval: division by zero",
		"warning: 1 trailing token(s) ignored",
		"1",
		"x = 5",
		"y = 3",
		"unknown command. Type :quit to exit.",
		"0",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())

	assert.Equal(t, []string{"never read"}, ln.lines)
	assert.Contains(t, ln.prompts, cfg.ContinuationPrompt)
	assert.Contains(t, ln.history, "if x   x * 2")
}

func TestREPL_IfElseAcrossLines(t *testing.T) {
	ln := &fakeLiner{lines: []string{
		"x = 10",
		"if x",
		"    x * 2",
		"else",
		"    x / 2",
		"while x",
		"    x = x - 1",
		"if 0",
		"    1",
		"",
		"if 1 2 else if 0 3",
		"else 4",
		":quit",
	}}
	var out bytes.Buffer
	cfg := config.Default()
	require.NoError(t, repl(context.Background(), ln, cfg, &out))

	assert.Equal(t, "10\n20\n0\n2\n", out.String())
	assert.Equal(t, []string{
		"x = 10",
		"if x     x * 2 else     x / 2",
		"while x     x = x - 1",
		"if 0     1",
		"if 1 2 else if 0 3 else 4",
	}, ln.history)
	assert.Equal(t, []string{
		cfg.Prompt,
		cfg.Prompt, cfg.ContinuationPrompt, cfg.ContinuationPrompt, cfg.ContinuationPrompt,
		cfg.Prompt, cfg.ContinuationPrompt,
		cfg.Prompt, cfg.ContinuationPrompt, cfg.ContinuationPrompt,
		cfg.Prompt, cfg.ContinuationPrompt,
		cfg.Prompt,
	}, ln.prompts)
}

func TestREPL_EnvLookup(t *testing.T) {
	ln := &fakeLiner{lines: []string{"x = 99999999999999999999 + 1", ":env x y", ":ENV"}}
	var out bytes.Buffer
	require.NoError(t, repl(context.Background(), ln, config.Default(), &out))
	assert.Equal(t, strings.Join([]string{
		"100000000000000000000",
		"x = 100000000000000000000",
		"y is not assigned",
		"x = 100000000000000000000",
		"",
	}, "\n")+"\n", out.String())
}

func TestREPL_EOFSubmitsPendingInput(t *testing.T) {
	ln := &fakeLiner{lines: []string{"x = 1", "while x"}}
	var out bytes.Buffer
	require.NoError(t, repl(context.Background(), ln, config.Default(), &out))
	assert.Equal(t, "1\nError: parse: unexpected end of input, expected statement\n\n", out.String())
}

func TestREPL_BlankContinuationSubmits(t *testing.T) {
	ln := &fakeLiner{lines: []string{"if 1", "", "7"}}
	var out bytes.Buffer
	require.NoError(t, repl(context.Background(), ln, config.Default(), &out))
	assert.Equal(t, "Error: parse: unexpected end of input, expected statement\n7\n\n", out.String())
}
