package config

import (
	"strings"

	"github.com/phyten/todolist/internal/engine"
)

// Resolve* helpers return the last non-nil layer value, or def.

func ResolveString(def string, values ...*string) string {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveInt(def int, values ...*int) int {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveBool(def bool, values ...*bool) bool {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

// ResolveStrings treats an explicitly empty layer as "clear the list".
func ResolveStrings(def []string, values ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range values {
		if v != nil {
			if len(*v) == 0 {
				result = []string{}
				continue
			}
			result = cloneStrings(*v)
		}
	}
	return result
}

// ResolvePatterns replaces the whole task list; layers are not merged
// pattern by pattern.
func ResolvePatterns(def []engine.Pattern, values ...*[]engine.Pattern) []engine.Pattern {
	result := clonePatterns(def)
	for _, v := range values {
		if v != nil {
			result = clonePatterns(*v)
		}
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	return strings.TrimSpace(ResolveString(def, values...))
}
