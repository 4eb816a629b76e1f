// Package runner drives source text through the scanner, the parser and an
// evaluator, and reports what each phase produced.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/podhmo/tinycalc/internal/ast"
	"github.com/podhmo/tinycalc/internal/interpreter"
	"github.com/podhmo/tinycalc/internal/parser"
	"github.com/podhmo/tinycalc/internal/scanner"
	"github.com/podhmo/tinycalc/internal/token"
)

// Stage names a phase of the pipeline.
type Stage string

const (
	StageScan  Stage = "scan"
	StageParse Stage = "parse"
	StageEval  Stage = "eval"
)

// StageError wraps the error of the phase that failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Report describes one run. Fields of phases that did not run are zero.
type Report struct {
	Source    string                       `json:"source"`
	Tokens    []token.Token                `json:"tokens"`
	Tree      ast.Node                     `json:"-"`
	AST       string                       `json:"ast,omitempty"`
	Nodes     int                          `json:"nodes"`
	Consumed  int                          `json:"consumed"`
	Remaining []token.Token                `json:"remaining,omitempty"`
	Result    interpreter.Value            `json:"result"`
	Env       map[string]interpreter.Value `json:"env"`
}

// Run tokenizes, parses and interprets src with ev. Only the first statement
// of src is evaluated. On failure the returned report holds the output of
// the phases that succeeded, and the error is a *StageError.
func Run(ctx context.Context, ev *interpreter.Evaluator, src string) (*Report, error) {
	report := &Report{Source: src}

	tokens, err := scanner.Tokenize(src)
	if err != nil {
		return report, &StageError{Stage: StageScan, Err: err}
	}
	report.Tokens = tokens
	slog.DebugContext(ctx, "scanned", "tokens", len(tokens))

	p := parser.New(tokens)
	tree, err := p.Parse()
	if err != nil {
		return report, &StageError{Stage: StageParse, Err: err}
	}
	report.Consumed = p.Pos()
	report.Remaining = p.Remaining()
	if tree != nil {
		report.Tree = tree
		report.AST = tree.String()
		report.Nodes = ast.Count(tree)
	}
	slog.DebugContext(ctx, "parsed", "consumed", report.Consumed, "remaining", len(report.Remaining), "nodes", report.Nodes)
	if len(report.Remaining) > 0 {
		slog.DebugContext(ctx, "trailing tokens ignored", "first", report.Remaining[0].String())
	}

	if tree != nil {
		result, err := ev.Interpret(tree)
		if err != nil {
			report.Env = ev.Env().Snapshot()
			return report, &StageError{Stage: StageEval, Err: err}
		}
		report.Result = result
	}
	report.Env = ev.Env().Snapshot()
	slog.DebugContext(ctx, "evaluated", "result", report.Result.String(), "vars", ev.Env().Len())
	return report, nil
}

// IsIncomplete reports whether err means the input ended in the middle of a
// statement, so that more input could complete it.
func IsIncomplete(err error) bool {
	return errors.Is(err, parser.ErrUnexpectedEnd)
}
