// Package validation applies the template rule tables and allow-lists to
// parsed WAF documents. Findings are collected as ordered message lists, never
// returned as errors: a malformed document is a validation failure, not a
// failure of the validator.
package validation

import (
	"fmt"
	"strings"

	"github.com/cabberley/epic-waf-actions/internal/allowlist"
	"github.com/cabberley/epic-waf-actions/internal/template"
	"github.com/cabberley/epic-waf-actions/internal/waf"
)

// softWarnKeys are mandatory keys whose absence is reported as a warning
// instead of an error. The set is fixed and only consulted inside the
// mandatory branch, so a template marking one of these optional bypasses it
// entirely.
var softWarnKeys = map[string]struct{}{
	"labels":         {},
	"specs":          {},
	"epic_resources": {},
}

// Result holds the ordered findings for one document.
type Result struct {
	Errors   []string
	Warnings []string
}

// HasErrors reports whether any errors were recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Document validates one parsed document against the rule tables, walking the
// top-level rules in template definition order.
func Document(content any, top template.TopLevelRules, nested template.NestedRules) *Result {
	result := &Result{}

	doc, ok := content.(map[string]any)
	if !ok {
		result.errorf("Document root must be a mapping")
		return result
	}

	for _, rule := range top {
		value, inDoc := doc[rule.Key]
		present := inDoc && waf.HasValue(value)

		if rule.Status == template.StatusMandatory && !present {
			if _, soft := softWarnKeys[rule.Key]; soft {
				result.warnf("Optional key '%s' is missing or empty", rule.Key)
				continue
			}
			if !allowsBlankValue(rule.Key, value) {
				result.errorf("Missing or empty mandatory key '%s'", rule.Key)
			}
			continue
		}

		if rules, hasNested := nested[rule.Key]; inDoc && hasNested {
			validateNested(result, rule.Key, value, rules)
		}
	}

	return result
}

// allowsBlankValue reports whether key tolerates a blank value even when
// mandatory. Only end_date does: it may be nil, empty, or the literal "null"
// while an item is still open.
func allowsBlankValue(key string, value any) bool {
	if key != "end_date" {
		return false
	}
	switch v := value.(type) {
	case nil:
		return true
	case string:
		stripped := strings.ToLower(strings.TrimSpace(v))
		return stripped == "" || stripped == "null"
	}
	return false
}

// validateNested checks the shape inside a list- or mapping-valued parent key
// against its child rules. Only mandatory children are enforced.
func validateNested(result *Result, parent string, value any, rules []template.Rule) {
	switch v := value.(type) {
	case nil:
		result.errorf("Key '%s' must not be empty", parent)
	case []any:
		if len(v) == 0 {
			result.errorf("Key '%s' must contain at least one entry", parent)
			return
		}
		for idx, item := range v {
			entry, ok := item.(map[string]any)
			if !ok {
				result.errorf("Entry %d under '%s' must be an object", idx, parent)
				continue
			}
			for _, rule := range rules {
				if rule.Status != template.StatusMandatory {
					continue
				}
				if !waf.HasValue(entry[rule.Key]) {
					result.errorf("Entry %d under '%s' is missing mandatory key '%s'", idx, parent, rule.Key)
				}
			}
		}
	case map[string]any:
		for _, rule := range rules {
			if rule.Status != template.StatusMandatory {
				continue
			}
			if !waf.HasValue(v[rule.Key]) {
				result.errorf("Key '%s' is missing nested key '%s'", parent, rule.Key)
			}
		}
	default:
		result.errorf("Key '%s' must be a list or mapping", parent)
	}
}

// StringList checks that value is a list of non-empty strings, each present in
// the allow-list after trimming. Matching is exact and case-sensitive; source
// names the allow-list file in messages.
func StringList(field string, value any, allowed allowlist.Set, source string) []string {
	if value == nil {
		return []string{fmt.Sprintf("Missing or empty mandatory key '%s'", field)}
	}
	list, ok := value.([]any)
	if !ok {
		return []string{fmt.Sprintf("Key '%s' must be a list", field)}
	}

	var errors []string
	for idx, entry := range list {
		s, ok := entry.(string)
		if !ok || strings.TrimSpace(s) == "" {
			errors = append(errors, fmt.Sprintf("'%s' entry %d must be a non-empty string", field, idx))
			continue
		}
		trimmed := strings.TrimSpace(s)
		if !allowed.Contains(trimmed) {
			errors = append(errors, fmt.Sprintf("'%s' entry '%s' (index %d) is not defined in %s", field, trimmed, idx, source))
		}
	}
	return errors
}

// AllowedValue checks a scalar against its allow-list using normalized
// comparison. A nil value is skipped here; the mandatory-presence pass owns
// that case.
func AllowedValue(key string, value any, allowed allowlist.Set) []string {
	switch value.(type) {
	case nil:
		return nil
	case []any, map[string]any:
		return []string{fmt.Sprintf("Value for '%s' must be a scalar", key)}
	}

	if !allowed.Contains(waf.Normalize(value)) {
		pretty := strings.Join(allowed.Sorted(), ", ")
		return []string{fmt.Sprintf("Value '%v' for '%s' must be one of: %s", value, key, pretty)}
	}
	return nil
}
