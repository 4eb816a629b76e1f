package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/podhmo/tinycalc/internal/config"
	"github.com/podhmo/tinycalc/internal/interpreter"
	"github.com/podhmo/tinycalc/internal/runner"
)

const usage = `Usage: tinycalc <subcommand> [options]
Available subcommands: run, scan, demo, repl`

func main() {
	// debug mode: if DEBUG environment variable is set, enable debug logging
	if _, ok := os.LookupEnv("DEBUG"); ok {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	os.Exit(dispatch(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func dispatch(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	var err error
	switch args[0] {
	case "run":
		err = runCmd(ctx, args[1:], stdin, stdout, stderr)
	case "scan":
		err = scanCmd(ctx, args[1:], stdin, stdout, stderr)
	case "demo":
		var failed int
		failed, err = demoCmd(ctx, args[1:], stdout, stderr)
		if err == nil && failed > 0 {
			return 1
		}
	case "repl":
		err = replCmd(ctx, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Error: Unknown subcommand '%s'\n", args[0])
		fmt.Fprintln(stderr, usage)
		return 1
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		slog.Error("Error running tinycalc "+args[0], "error", err)
		return 1
	}
	return 0
}

// sourceFlags are shared by the subcommands that read one program.
type sourceFlags struct {
	configPath string
	expr       string
}

func (f *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML config file (default $"+config.EnvVar+")")
	fs.StringVar(&f.expr, "e", "", "Program text; when empty the program is read from the file argument or stdin")
}

// source returns the program text: -e, the first argument, or stdin.
func (f *sourceFlags) source(fs *flag.FlagSet, stdin io.Reader) (string, error) {
	if f.expr != "" {
		return f.expr, nil
	}
	if fs.NArg() >= 1 {
		data, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			return "", fmt.Errorf("reading program: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading program from stdin: %w", err)
	}
	return string(data), nil
}

func runCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		src        sourceFlags
		showTokens bool
		showAST    bool
	)
	src.register(fs)
	fs.BoolVar(&showTokens, "tokens", false, "Print the tokens before the result")
	fs.BoolVar(&showAST, "ast", false, "Print the syntax tree before the result")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tinycalc run [options] [program_file]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Resolve(src.configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tokens":
			cfg.ShowTokens = showTokens
		case "ast":
			cfg.ShowAST = showAST
		}
	})

	text, err := src.source(fs, stdin)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx, interpreter.New(), text)
	if cfg.ShowTokens && report.Tokens != nil {
		fmt.Fprintf(stdout, "Tokens: %v\n", report.Tokens)
	}
	if cfg.ShowAST && report.AST != "" {
		fmt.Fprintf(stdout, "AST: %s\n", report.AST)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, report.Result)
	return nil
}

func scanCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var src sourceFlags
	src.register(fs)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tinycalc scan [options] [program_file]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := config.Resolve(src.configPath); err != nil {
		return err
	}

	text, err := src.source(fs, stdin)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx, interpreter.New(), text)
	if err != nil {
		return err
	}
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling report to JSON: %w", err)
	}
	fmt.Fprintln(stdout, string(jsonData))
	return nil
}

func demoCmd(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  string
		samplesPath string
	)
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file (default $"+config.EnvVar+")")
	fs.StringVar(&samplesPath, "samples", "", "txtar archive of programs to run (default: built-in samples)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tinycalc demo [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 0, err
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return 0, err
	}
	if samplesPath != "" {
		cfg.Samples = samplesPath
	}

	samples := runner.BuiltinSamples()
	if cfg.Samples != "" {
		samples, err = runner.LoadSamples(cfg.Samples)
		if err != nil {
			return 0, err
		}
	}
	return runner.Demo(ctx, stdout, samples), nil
}
