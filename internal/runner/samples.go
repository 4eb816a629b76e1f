package runner

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/tools/txtar"
)

//go:embed samples.txtar
var builtinSamples []byte

// Sample is a named program.
type Sample struct {
	Name   string
	Source string
}

// BuiltinSamples returns the programs shipped with the command.
func BuiltinSamples() []Sample {
	return samplesFromArchive(txtar.Parse(builtinSamples))
}

// LoadSamples reads the programs of a txtar archive. Each file of the
// archive is one sample.
func LoadSamples(path string) ([]Sample, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading samples %s: %w", path, err)
	}
	samples := samplesFromArchive(ar)
	if len(samples) == 0 {
		return nil, fmt.Errorf("loading samples %s: archive has no files", path)
	}
	return samples, nil
}

func samplesFromArchive(ar *txtar.Archive) []Sample {
	samples := make([]Sample, 0, len(ar.Files))
	for _, f := range ar.Files {
		samples = append(samples, Sample{
			Name:   f.Name,
			Source: strings.TrimSuffix(string(f.Data), "\n"),
		})
	}
	return samples
}
