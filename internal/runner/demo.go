package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/podhmo/tinycalc/internal/interpreter"
)

// Demo runs each sample on a fresh evaluator and prints the tokens, the tree
// and the result of every phase. A failing sample is reported and the next
// one still runs. It returns the number of failed samples.
func Demo(ctx context.Context, w io.Writer, samples []Sample) int {
	failed := 0
	for i, sample := range samples {
		if i > 0 {
			fmt.Fprintln(w)
		}
		slog.DebugContext(ctx, "running sample", "name", sample.Name)
		fmt.Fprintf(w, "Testing code: %s\n", sample.Source)

		report, err := Run(ctx, interpreter.New(), sample.Source)
		if !failedAt(err, StageScan) {
			fmt.Fprintf(w, "Tokens: %v\n", report.Tokens)
		}
		if report.AST != "" {
			fmt.Fprintf(w, "AST: %s\n", report.AST)
		}
		if err != nil {
			failed++
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "Result: %s\n", report.Result)
	}
	return failed
}

func failedAt(err error, stage Stage) bool {
	var stageErr *StageError
	return errors.As(err, &stageErr) && stageErr.Stage == stage
}
