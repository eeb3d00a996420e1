package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	configFilenames = []string{
		".todolist.yaml",
		".todolist.yml",
		".todolist.toml",
		".todolist.json",
		".todolist.xml",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
		"config.xml",
	}
	namedExtensions = []string{".yaml", ".yml", ".toml", ".json", ".xml", ".config"}
)

// Find locates the configuration file to load and reports where it came
// from ("explicit", "named", "cwd-up", "xdg", "home"). An empty path with a
// nil error means the built-in defaults apply.
//
// explicitPath may be a file path or a bare name such as "php"; a bare name
// is looked up as <name>.<ext> in the todolist XDG config directory.
func Find(startDir, explicitPath, xdgHome, home string) (string, string, error) {
	xdgRoot := xdgDir(xdgHome, home)

	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		if isBareName(explicit) && xdgRoot != "" {
			for _, ext := range namedExtensions {
				candidate := filepath.Join(xdgRoot, "todolist", explicit+ext)
				if fileExists(candidate) {
					return candidate, "named", nil
				}
			}
		}
		candidate := explicit
		if !filepath.IsAbs(candidate) {
			cwd, err := os.Getwd()
			if err != nil {
				return "", "", err
			}
			candidate = filepath.Join(cwd, candidate)
		}
		info, err := os.Stat(candidate)
		if err != nil {
			return "", "", fmt.Errorf("config %q: %w", explicit, err)
		}
		if info.IsDir() {
			return "", "", fmt.Errorf("config %q points to a directory", candidate)
		}
		return candidate, "explicit", nil
	}

	start := strings.TrimSpace(startDir)
	if start == "" {
		start = "."
	}
	absStart, err := filepath.Abs(start)
	if err != nil {
		return "", "", err
	}
	dir := absStart
	for {
		for _, name := range configFilenames {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return candidate, "cwd-up", nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if xdgRoot != "" {
		for _, name := range xdgFilenames {
			candidate := filepath.Join(xdgRoot, "todolist", name)
			if fileExists(candidate) {
				return candidate, "xdg", nil
			}
		}
	}

	if homeDir := homeDir(home); homeDir != "" {
		for _, name := range configFilenames {
			candidate := filepath.Join(homeDir, name)
			if fileExists(candidate) {
				return candidate, "home", nil
			}
		}
	}

	return "", "", nil
}

func xdgDir(xdgHome, home string) string {
	if root := strings.TrimSpace(xdgHome); root != "" {
		return root
	}
	if h := homeDir(home); h != "" {
		return filepath.Join(h, ".config")
	}
	return ""
}

func homeDir(home string) string {
	if h := strings.TrimSpace(home); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}

func isBareName(s string) bool {
	return filepath.Ext(s) == "" && !strings.ContainsAny(s, `/\`)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
