package config

import (
	"github.com/phyten/todolist/internal/engine"
)

// ScanConfig holds one configuration layer for the scan engine. Nil fields
// are "not set" and leave the lower layer untouched.
type ScanConfig struct {
	Tasks     *[]engine.Pattern `yaml:"tasks" toml:"tasks" json:"tasks"`
	FileTypes *[]string         `yaml:"file_types" toml:"file_types" json:"file_types"`
	Recurse   *bool             `yaml:"recurse" toml:"recurse" json:"recurse"`
	Excludes  *[]string         `yaml:"exclude" toml:"exclude" json:"exclude"`
	Jobs      *int              `yaml:"jobs" toml:"jobs" json:"jobs"`
}

type UIConfig struct {
	Verbose *bool   `yaml:"verbose" toml:"verbose" json:"verbose"`
	Quiet   *bool   `yaml:"quiet" toml:"quiet" json:"quiet"`
	Color   *string `yaml:"color" toml:"color" json:"color"`
	Output  *string `yaml:"output" toml:"output" json:"output"`
}

type Config struct {
	Scan ScanConfig `yaml:"scan" toml:"scan" json:"scan"`
	UI   UIConfig   `yaml:"ui" toml:"ui" json:"ui"`
}

type ScanSettings struct {
	Tasks     []engine.Pattern
	FileTypes []string
	Recurse   bool
	Excludes  []string
	Jobs      int
}

type UISettings struct {
	Verbose bool
	Quiet   bool
	Color   string
	Output  string
}

// ApplyToOptions builds the pattern set and file type filter for a scan.
func (s ScanSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Patterns = engine.NewPatternSet(s.Tasks...)
	opts.FileTypes = engine.NewFileTypeFilter(s.FileTypes...)
	opts.Recursive = s.Recurse
	opts.Excludes = cloneStrings(s.Excludes)
	opts.Jobs = s.Jobs
}

func DefaultUISettings() UISettings {
	return UISettings{
		Verbose: false,
		Quiet:   false,
		Color:   "auto",
		Output:  "text",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func clonePatterns(in []engine.Pattern) []engine.Pattern {
	if len(in) == 0 {
		return nil
	}
	out := make([]engine.Pattern, len(in))
	copy(out, in)
	return out
}
