package runner

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Settings are the file-configurable runner knobs.
type Settings struct {
	Trials  int   `hcl:"trials,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// DefaultSettings returns the defaults used without a config file.
func DefaultSettings() Settings {
	return Settings{
		Trials: 100000,
	}
}

// LoadSettings reads an HCL settings file:
//
//	trials  = 600000
//	workers = 8
//	seed    = 42
func LoadSettings(filename string) (Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(filename); err != nil {
		return settings, fmt.Errorf("config file not found: %s", filename)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return settings, fmt.Errorf("failed to parse config: %s", diags.Error())
	}

	diags = gohcl.DecodeBody(file.Body, nil, &settings)
	if diags.HasErrors() {
		return settings, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	if settings.Trials <= 0 {
		return settings, fmt.Errorf("trials must be positive, got %d", settings.Trials)
	}
	if settings.Workers < 0 {
		return settings, fmt.Errorf("workers must be non-negative, got %d", settings.Workers)
	}

	return settings, nil
}

// Apply converts settings into runner options.
func (s Settings) Apply() []Option {
	opts := []Option{WithTrials(s.Trials)}
	if s.Workers > 0 {
		opts = append(opts, WithWorkers(s.Workers))
	}
	if s.Seed != 0 {
		opts = append(opts, WithSeed(s.Seed))
	}
	return opts
}
