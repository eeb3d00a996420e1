package opts

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/todolist/internal/engine"
)

const (
	maxJobs = engine.MaxJobs
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// DefaultJobs returns the worker count used when none is configured.
func DefaultJobs() int {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return jobs
}

// Defaults returns the baseline scan options for the given roots. Patterns
// and file types start empty and are filled in from configuration.
func Defaults(roots []string) engine.Options {
	return engine.Options{
		Roots:     trimSlice(roots),
		Recursive: false,
		Patterns:  engine.NewPatternSet(),
		FileTypes: engine.NewFileTypeFilter(),
		Jobs:      DefaultJobs(),
	}
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	if o.Patterns.Count() == 0 {
		return fmt.Errorf("no task patterns configured")
	}
	if o.FileTypes.Len() == 0 {
		return fmt.Errorf("no file types configured")
	}
	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	o.Roots = trimSlice(o.Roots)
	o.Excludes = trimSlice(o.Excludes)
	return engine.ValidateExcludes(o.Excludes)
}

// ParseBool accepts 1/0, true/false, yes/no and on/off in any case.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the output format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "text", "table":
		return "text", nil
	case "md", "markdown":
		return "md", nil
	case "json", "ndjson", "csv":
		return v, nil
	default:
		return "", fmt.Errorf("invalid --output: %s (allowed: text, md, json, ndjson, csv)", value)
	}
}

// SplitMulti splits comma separated values and drops blanks.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

// ParsePatterns reads "TEXT[=PRIORITY]" entries such as "TODO=2,FIXME=1".
// A missing priority means 1. The text itself is not trimmed past the
// surrounding whitespace, so markers like "// TODO:" work as expected.
func ParsePatterns(vals []string) ([]engine.Pattern, error) {
	var out []engine.Pattern
	for _, entry := range SplitMulti(vals) {
		text, prio := entry, engine.MinPriority
		if idx := strings.LastIndexByte(entry, '='); idx >= 0 {
			text = strings.TrimSpace(entry[:idx])
			n, err := parseInt(entry[idx+1:], "priority of "+text)
			if err != nil {
				return nil, err
			}
			prio = n
		}
		if text == "" {
			return nil, fmt.Errorf("empty task pattern in %q", entry)
		}
		out = append(out, engine.Pattern{Text: text, Priority: prio})
	}
	return out, nil
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
