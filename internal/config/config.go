// Package config holds the settings of the tinycalc command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "TINYCALC_CONFIG"

// Config holds the configuration for the tinycalc command,
// read from a YAML file and then overridden by command-line flags.
type Config struct {
	Prompt             string `yaml:"prompt"`              // REPL prompt
	ContinuationPrompt string `yaml:"continuation_prompt"` // prompt while a statement is incomplete
	HistoryFile        string `yaml:"history_file"`        // REPL history; empty disables it
	Samples            string `yaml:"samples"`             // txtar archive used by demo; empty means built-in samples
	ShowTokens         bool   `yaml:"show_tokens"`         // run: print tokens before the result
	ShowAST            bool   `yaml:"show_ast"`            // run: print the tree before the result
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Prompt:             ">>> ",
		ContinuationPrompt: "... ",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".tinycalc_history")
	}
	return cfg
}

// Load reads path on top of Default. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads the file named by path, falling back to $TINYCALC_CONFIG,
// and returns Default when neither is set.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "config validation failed: " + strings.Join(e.Issues, "; ")
}

// Validate checks the fields that must not be empty.
func (c *Config) Validate() error {
	var errs ValidationError
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		errs.Issues = append(errs.Issues, "continuation_prompt must not be empty")
	}
	if c.Samples != "" && filepath.Ext(c.Samples) != ".txtar" {
		errs.Issues = append(errs.Issues, fmt.Sprintf("samples %q must be a .txtar archive", c.Samples))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
