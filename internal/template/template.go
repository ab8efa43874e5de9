// Package template parses the WAF check template into requirement rule tables.
//
// The template is an informal indentation-based format, not real YAML: each
// meaningful line is "key : mandatory|optional". Top-level lines (indent 0)
// define top-level keys; indented lines (plain or "- " list items) define the
// expected shape inside the most recent top-level key.
package template

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// RequirementStatus marks a key as mandatory or optional.
type RequirementStatus string

const (
	StatusMandatory RequirementStatus = "mandatory"
	StatusOptional  RequirementStatus = "optional"
)

// Rule pairs a key name with its requirement status.
type Rule struct {
	Key    string
	Status RequirementStatus
}

// TopLevelRules holds the top-level rules in template definition order.
// Validation walks the rules in this order so findings line up with the
// template, which is why this is a slice and not a map.
type TopLevelRules []Rule

// Status returns the requirement status for key and whether it is defined.
func (r TopLevelRules) Status(key string) (RequirementStatus, bool) {
	for _, rule := range r {
		if rule.Key == key {
			return rule.Status, true
		}
	}
	return "", false
}

// NestedRules maps a parent key to ordered rules for its child keys. A parent
// entry only has meaning when the same key also appears in the top-level rules.
type NestedRules map[string][]Rule

// statusPattern recognizes "key : mandatory|optional" with whitespace tolerance
// around the colon and a case-insensitive status word.
var statusPattern = regexp.MustCompile(`(?i)^([A-Za-z0-9_]+)\s*:\s*(mandatory|optional)\s*$`)

// parserState is the two-slot state machine driven by indentation transitions.
// currentParent tracks the last top-level key; currentListParent is set once a
// list item has been seen under it, so consecutive list items accumulate into
// the same nested-rule set.
type parserState struct {
	currentParent     string
	currentListParent string
}

// ParseFile reads and parses the template at path. A missing template is a
// configuration error and aborts the run.
func ParseFile(path string) (TopLevelRules, NestedRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	top, nested := Parse(string(data))
	return top, nested, nil
}

// Parse parses template text into top-level and nested rule tables. Lines that
// do not match the recognized pattern are skipped; the format has no strict
// grammar beyond this recognition, so Parse never fails.
func Parse(text string) (TopLevelRules, NestedRules) {
	var top TopLevelRules
	nested := NestedRules{}
	var state parserState

	for _, rawLine := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(rawLine)
		if stripped == "" {
			continue
		}

		// Only "indent 0 vs indent > 0" matters; deeper nesting is not
		// distinguished further.
		indent := len(rawLine) - len(strings.TrimLeft(rawLine, " \t"))

		if indent == 0 {
			if key, status, ok := matchRule(stripped); ok {
				top = setRule(top, key, status)
				state.currentParent = key
				state.currentListParent = ""
			}
			continue
		}

		parent := state.currentListParent
		if parent == "" {
			parent = state.currentParent
		}
		if parent == "" {
			continue
		}

		if inner, ok := strings.CutPrefix(stripped, "- "); ok {
			if key, status, ok := matchRule(strings.TrimSpace(inner)); ok {
				nested[parent] = setRule(nested[parent], key, status)
				state.currentListParent = parent
			}
			continue
		}

		if key, status, ok := matchRule(stripped); ok {
			nested[parent] = setRule(nested[parent], key, status)
		}
	}

	return top, nested
}

func matchRule(line string) (key string, status RequirementStatus, ok bool) {
	m := statusPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], RequirementStatus(strings.ToLower(m[2])), true
}

// setRule appends a rule, or updates it in place when the key was already
// defined, keeping first-definition order.
func setRule(rules []Rule, key string, status RequirementStatus) []Rule {
	for i, rule := range rules {
		if rule.Key == key {
			rules[i].Status = status
			return rules
		}
	}
	return append(rules, Rule{Key: key, Status: status})
}
