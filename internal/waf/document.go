// Package waf provides shared helpers for working with WAF documents: YAML
// loading into untyped trees, the presence test, and scalar normalization.
package waf

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads and decodes a YAML file into an untyped tree of mappings,
// lists and scalars.
func LoadYAML(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// HasValue reports whether a document value counts as present: non-nil,
// non-blank for strings, non-empty for lists and mappings. Numbers and
// booleans always count as present.
func HasValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// Normalize canonicalizes a scalar to a comparable string form: strings are
// trimmed and lower-cased, booleans become "true"/"false", numbers their
// decimal form, nil the literal "null". Idempotent, and applied to both
// allow-list entries and document values so comparisons cannot drift.
func Normalize(value any) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case nil:
		return "null"
	default:
		return strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
	}
}
