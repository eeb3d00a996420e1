package config

import (
	"fmt"
	"strings"

	"github.com/phyten/todolist/internal/engine"
	engineopts "github.com/phyten/todolist/internal/engine/opts"
)

func CanonicalizeColor(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", "auto":
		return "auto", nil
	case "always", "never":
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

func NormalizeUI(values UISettings) (UISettings, error) {
	var err error
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	values.Output, err = engineopts.NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	return values, nil
}

// NormalizeScan rejects settings no scan can run with.
func NormalizeScan(values ScanSettings) (ScanSettings, error) {
	tasks := values.Tasks[:0:0]
	for _, p := range values.Tasks {
		if p.Text == "" {
			return values, fmt.Errorf("task pattern must not be empty")
		}
		p.Priority = engine.ClampPriority(p.Priority)
		tasks = append(tasks, p)
	}
	if len(tasks) == 0 {
		return values, fmt.Errorf("no task patterns configured")
	}
	values.Tasks = tasks

	types := values.FileTypes[:0:0]
	for _, ft := range values.FileTypes {
		if trimmed := strings.TrimSpace(ft); trimmed != "" {
			types = append(types, trimmed)
		}
	}
	if len(types) == 0 {
		return values, fmt.Errorf("no file types configured")
	}
	values.FileTypes = types

	if values.Jobs < 1 || values.Jobs > engine.MaxJobs {
		return values, fmt.Errorf("jobs must be between 1 and %d", engine.MaxJobs)
	}
	if err := engine.ValidateExcludes(values.Excludes); err != nil {
		return values, err
	}
	return values, nil
}
