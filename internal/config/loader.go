package config

import (
	_ "embed"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/phyten/todolist/internal/engine"
	engineopts "github.com/phyten/todolist/internal/engine/opts"
)

//go:embed default.yaml
var defaultConfig []byte

var scanKeyMap = map[string]string{
	"tasks":      "tasks",
	"task":       "tasks",
	"patterns":   "tasks",
	"file_types": "file_types",
	"filetypes":  "file_types",
	"file_type":  "file_types",
	"types":      "file_types",
	"recurse":    "recurse",
	"recursive":  "recurse",
	"exclude":    "exclude",
	"excludes":   "exclude",
	"jobs":       "jobs",
}

var uiKeyMap = map[string]string{
	"verbose": "verbose",
	"quiet":   "quiet",
	"color":   "color",
	"colour":  "color",
	"output":  "output",
}

// Default returns the configuration compiled into the binary.
func Default() Config {
	cfg, err := decode(defaultConfig, ".yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// Load reads a configuration file. The format follows the extension:
// .yaml/.yml, .toml, .json, or .xml/.config for the legacy XML layout.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	cfg, err = decode(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, ext string) (Config, error) {
	var cfg Config
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse toml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse json: %w", err)
		}
	case ".xml", ".config":
		return decodeXML(data)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	return decodeConfigMap(raw)
}

type xmlConfig struct {
	XMLName   xml.Name  `xml:"config"`
	FileTypes []string  `xml:"fileTypes>fileType"`
	Tasks     []xmlTask `xml:"tasks>task"`
}

type xmlTask struct {
	Pattern  string `xml:"pattern,attr"`
	Priority string `xml:"priority,attr"`
}

// decodeXML reads the legacy XML layout:
//
//	<config>
//	  <fileTypes><fileType>php</fileType></fileTypes>
//	  <tasks><task pattern="@todo" priority="2"/></tasks>
//	</config>
func decodeXML(data []byte) (Config, error) {
	var cfg Config
	var doc xmlConfig
	if err := xml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("parse xml: %w", err)
	}
	if len(doc.FileTypes) > 0 {
		types := normalizeList(doc.FileTypes)
		cfg.Scan.FileTypes = &types
	}
	if len(doc.Tasks) > 0 {
		tasks := make([]engine.Pattern, 0, len(doc.Tasks))
		for _, t := range doc.Tasks {
			prio := engine.MinPriority
			if raw := strings.TrimSpace(t.Priority); raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return cfg, fmt.Errorf("task %q: invalid priority %q", t.Pattern, t.Priority)
				}
				prio = n
			}
			if t.Pattern == "" {
				return cfg, fmt.Errorf("task without pattern")
			}
			tasks = append(tasks, engine.Pattern{Text: t.Pattern, Priority: prio})
		}
		cfg.Scan.Tasks = &tasks
	}
	return cfg, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	scanSection := make(map[string]any)
	uiSection := make(map[string]any)

	if block, ok := raw["scan"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("scan: %w", err)
		}
		if err := fillSection(scanSection, sub, scanKeyMap, "scan"); err != nil {
			return cfg, err
		}
	}
	if block, ok := raw["ui"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("ui: %w", err)
		}
		if err := fillSection(uiSection, sub, uiKeyMap, "ui"); err != nil {
			return cfg, err
		}
	}

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "scan", "ui":
			continue
		default:
			if canonical, ok := scanKeyMap[norm]; ok {
				scanSection[canonical] = value
				continue
			}
			if canonical, ok := uiKeyMap[norm]; ok {
				uiSection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignScan(scanSection, &cfg.Scan); err != nil {
		return cfg, fmt.Errorf("scan: %w", err)
	}
	if err := assignUI(uiSection, &cfg.UI); err != nil {
		return cfg, fmt.Errorf("ui: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignScan(section map[string]any, dst *ScanConfig) error {
	for key, value := range section {
		switch key {
		case "tasks":
			tasks, err := expectTasks(value, key)
			if err != nil {
				return err
			}
			dst.Tasks = &tasks
		case "file_types":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.FileTypes = &list
		case "exclude":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Excludes = &list
		case "recurse":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Recurse = &b
		case "jobs":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Jobs = &n
		}
	}
	return nil
}

func assignUI(section map[string]any, dst *UIConfig) error {
	for key, value := range section {
		switch key {
		case "verbose":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Verbose = &b
		case "quiet":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Quiet = &b
		case "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Color = &str
		case "output":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Output = &str
		}
	}
	return nil
}

// expectTasks accepts a list whose items are either {pattern, priority}
// maps or "TEXT=PRIORITY" strings, or a single comma separated string.
func expectTasks(value any, field string) ([]engine.Pattern, error) {
	switch v := value.(type) {
	case string:
		return engineopts.ParsePatterns([]string{v})
	case []any:
		out := make([]engine.Pattern, 0, len(v))
		for i, item := range v {
			if s, ok := item.(string); ok {
				parsed, err := engineopts.ParsePatterns([]string{s})
				if err != nil {
					return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
				}
				out = append(out, parsed...)
				continue
			}
			m, err := toStringKeyMap(item)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
			}
			p, err := taskFromMap(m)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
			}
			out = append(out, p)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list for %s, got %T", field, value)
	}
}

func taskFromMap(m map[string]any) (engine.Pattern, error) {
	p := engine.Pattern{Priority: engine.MinPriority}
	for key, value := range m {
		switch normalizeKey(key) {
		case "pattern", "text":
			str, ok := value.(string)
			if !ok {
				return p, fmt.Errorf("expected string for pattern, got %T", value)
			}
			p.Text = str
		case "priority":
			n, err := expectInt(value, "priority")
			if err != nil {
				return p, err
			}
			p.Priority = n
		default:
			return p, fmt.Errorf("unknown task key: %s", key)
		}
	}
	if p.Text == "" {
		return p, fmt.Errorf("task without pattern")
	}
	return p, nil
}

func expectString(value any, field string) (string, error) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), nil
	default:
		return "", fmt.Errorf("expected string for %s, got %T", field, value)
	}
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return normalizeList(engineopts.SplitMulti([]string{v})), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
