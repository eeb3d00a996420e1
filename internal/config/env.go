package config

import (
	"errors"
	"strings"

	"github.com/phyten/todolist/internal/engine"
	engineopts "github.com/phyten/todolist/internal/engine/opts"
)

// FromEnv reads TODOLIST_* variables into a configuration layer. Every
// malformed variable is reported, not just the first one.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		*target = &list
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}

	if raw := strings.TrimSpace(getenv("TODOLIST_TASKS")); raw != "" {
		tasks, err := engineopts.ParsePatterns([]string{raw})
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.Scan.Tasks = &tasks
		}
	}
	setList(&cfg.Scan.FileTypes, "TODOLIST_FILE_TYPES")
	setBool(&cfg.Scan.Recurse, "TODOLIST_RECURSE")
	setList(&cfg.Scan.Excludes, "TODOLIST_EXCLUDE")
	setInt(&cfg.Scan.Jobs, "TODOLIST_JOBS", 1, engine.MaxJobs)

	setBool(&cfg.UI.Verbose, "TODOLIST_VERBOSE")
	setBool(&cfg.UI.Quiet, "TODOLIST_QUIET")
	setString(&cfg.UI.Color, "TODOLIST_COLOR")
	setString(&cfg.UI.Output, "TODOLIST_OUTPUT")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
