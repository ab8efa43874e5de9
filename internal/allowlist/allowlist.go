// Package allowlist loads the auxiliary allow-list files (labels, epic
// resources, scalar validations) consulted during WAF validation. Loading
// failures are configuration errors: a missing or empty allow-list aborts the
// whole run rather than failing individual documents.
package allowlist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cabberley/epic-waf-actions/internal/waf"
)

// Set is a membership allow-list for one document key.
type Set map[string]struct{}

// Contains reports whether value is in the set.
func (s Set) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

// Sorted returns the set's values in sorted order, for error messages.
func (s Set) Sorted() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// LoadLabels reads the allowed label names. The file may be a bare list of
// strings or a mapping with a "labels" list. Matching is case-sensitive after
// trimming; labels are exact names, not folded like scalar validations.
func LoadLabels(path string) (Set, error) {
	doc, err := waf.LoadYAML(path)
	if err != nil {
		return nil, fmt.Errorf("reading labels file %s: %w", path, err)
	}

	raw := doc
	if m, ok := doc.(map[string]any); ok {
		raw = m["labels"]
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must contain a list (optionally under 'labels')", path)
	}

	allowed := Set{}
	for _, entry := range list {
		if s, ok := entry.(string); ok && strings.TrimSpace(s) != "" {
			allowed[strings.TrimSpace(s)] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("%s does not define any labels", path)
	}
	return allowed, nil
}

// LoadResources reads the allowed resource names. The file may be arbitrarily
// nested; every string found anywhere in the structure, mapping keys included,
// is allow-listed.
func LoadResources(path string) (Set, error) {
	doc, err := waf.LoadYAML(path)
	if err != nil {
		return nil, fmt.Errorf("reading resources file %s: %w", path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%s is empty", path)
	}

	resources := Set{}
	collectStrings(doc, resources)
	if len(resources) == 0 {
		return nil, fmt.Errorf("%s does not define any resources", path)
	}
	return resources, nil
}

// collectStrings walks a decoded YAML tree of mappings, sequences and scalars
// and gathers every trimmed non-empty string into out.
func collectStrings(node any, out Set) {
	switch v := node.(type) {
	case string:
		if cleaned := strings.TrimSpace(v); cleaned != "" {
			out[cleaned] = struct{}{}
		}
	case map[string]any:
		for key, value := range v {
			collectStrings(key, out)
			collectStrings(value, out)
		}
	case []any:
		for _, entry := range v {
			collectStrings(entry, out)
		}
	}
}

// LoadValidations reads the per-key scalar allow-lists: a mapping from key name
// to a non-empty list of allowed values, each normalized before storage. Every
// key in required must be present in the file.
func LoadValidations(path string, required []string) (map[string]Set, error) {
	doc, err := waf.LoadYAML(path)
	if err != nil {
		return nil, fmt.Errorf("reading validations file %s: %w", path, err)
	}
	mapping, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a mapping of keys to allowed values", path)
	}

	validations := make(map[string]Set, len(mapping))
	for key, values := range mapping {
		list, ok := values.([]any)
		if !ok || len(list) == 0 {
			return nil, fmt.Errorf("validation list for '%s' must be a non-empty list", key)
		}
		normalized := Set{}
		for _, entry := range list {
			if waf.HasValue(entry) || entry == nil {
				normalized[waf.Normalize(entry)] = struct{}{}
			}
		}
		if len(normalized) == 0 {
			return nil, fmt.Errorf("validation list for '%s' does not contain usable entries", key)
		}
		validations[key] = normalized
	}

	for _, key := range required {
		if _, ok := validations[key]; !ok {
			return nil, fmt.Errorf("%s must define allowed values for '%s'", path, key)
		}
	}

	return validations, nil
}
