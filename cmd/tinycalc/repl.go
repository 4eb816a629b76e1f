package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/podhmo/tinycalc/internal/ast"
	"github.com/podhmo/tinycalc/internal/config"
	"github.com/podhmo/tinycalc/internal/interpreter"
	"github.com/podhmo/tinycalc/internal/parser"
	"github.com/podhmo/tinycalc/internal/runner"
	"github.com/podhmo/tinycalc/internal/scanner"
)

// lineReader is the part of *liner.State the REPL loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func replCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  string
		historyFile string
	)
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file (default $"+config.EnvVar+")")
	fs.StringVar(&historyFile, "history", "", "History file (default from config)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tinycalc repl [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if historyFile != "" {
		cfg.HistoryFile = historyFile
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(stdout, "tinycalc: one statement per entry. :env lists variables, :reset clears them, :quit exits.")
	return repl(ctx, ln, cfg, stdout)
}

// repl evaluates one statement per entry on a single evaluator, so variables
// survive from one entry to the next.
func repl(ctx context.Context, ln lineReader, cfg *config.Config, w io.Writer) error {
	ev := interpreter.New()
	for {
		code, ok := readStatement(ln, cfg)
		if !ok {
			fmt.Fprintln(w)
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			fields := strings.Fields(trimmed)
			switch strings.ToLower(fields[0]) {
			case ":quit", ":q":
				return nil
			case ":env":
				printEnv(w, ev.Env(), fields[1:])
			case ":reset":
				ev = interpreter.New()
			default:
				fmt.Fprintln(w, "unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		report, err := runner.Run(ctx, ev, code)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		if len(report.Remaining) > 0 {
			fmt.Fprintf(w, "warning: %d trailing token(s) ignored\n", len(report.Remaining))
		}
		if !report.Result.IsNone() {
			fmt.Fprintln(w, report.Result)
		}
	}
}

// printEnv lists every variable, or only names when given.
func printEnv(w io.Writer, env *interpreter.Environment, names []string) {
	if len(names) == 0 {
		names = env.Names()
	}
	for _, name := range names {
		if v, ok := env.Lookup(name); ok {
			fmt.Fprintf(w, "%s = %s\n", name, v)
		} else {
			fmt.Fprintf(w, "%s is not assigned\n", name)
		}
	}
}

// readStatement reads lines until they form a statement that cannot grow any
// further. An empty continuation line submits what was typed.
func readStatement(ln lineReader, cfg *config.Config) (string, bool) {
	var b strings.Builder
	for {
		prompt := cfg.Prompt
		if b.Len() > 0 {
			prompt = cfg.ContinuationPrompt
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			// io.EOF or an unusable terminal
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !continues(src) {
			return src, true
		}
	}
}

// continues reports whether src may continue on the next line: the parser wants
// more input, or the whole of src is a statement ending in an if that could
// still take an else.
func continues(src string) bool {
	tokens, err := scanner.Tokenize(src)
	if err != nil {
		return false
	}
	p := parser.New(tokens)
	node, err := p.Parse()
	if err != nil {
		return runner.IsIncomplete(err)
	}
	return len(p.Remaining()) == 0 && awaitsElse(node)
}

func awaitsElse(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.If:
		if n.Else == nil {
			return true
		}
		return awaitsElse(n.Else)
	case *ast.While:
		return awaitsElse(n.Body)
	}
	return false
}
