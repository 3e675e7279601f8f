// Package filter parses the must-include filter grammar
// ("field,value1,value2;field2,value1") into a validated predicate.
package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLength is the maximum accepted length of a raw filter string.
const MaxLength = 500

// Filterable fields. Matching policy: Tags values match case-insensitively;
// Category, Architecture, and Gem5Versions match exactly as stored.
const (
	FieldCategory     = "category"
	FieldArchitecture = "architecture"
	FieldGem5Versions = "gem5_versions"
	FieldTags         = "tags"
)

// fieldOrder fixes the canonical rendering order.
var fieldOrder = []string{FieldCategory, FieldArchitecture, FieldGem5Versions, FieldTags}

var valuePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)

// Expression maps each filterable field to a non-empty OR-set of accepted
// values. Entries are ANDed together at query time.
type Expression struct {
	values map[string][]string
}

// Parse validates a raw must-include string. Empty segments are discarded.
// When the same field appears in more than one group, the later group
// replaces the earlier one.
func Parse(raw string) (Expression, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Expression{}, nil
	}
	if len(raw) > MaxLength {
		return Expression{}, fmt.Errorf("filter string too long (max %d chars)", MaxLength)
	}

	values := make(map[string][]string)
	for _, group := range strings.Split(raw, ";") {
		if group == "" {
			continue
		}
		parts := strings.Split(group, ",")
		if len(parts) < 2 {
			return Expression{}, fmt.Errorf("invalid filter group %q: expected field,value[,value...]", group)
		}

		field := strings.TrimSpace(parts[0])
		if !isRecognized(field) {
			return Expression{}, fmt.Errorf("invalid filter group %q: unknown field %q", group, field)
		}

		vals := make([]string, 0, len(parts)-1)
		for _, v := range parts[1:] {
			v = strings.TrimSpace(v)
			if !valuePattern.MatchString(v) {
				return Expression{}, fmt.Errorf("invalid filter group %q: bad value %q", group, v)
			}
			vals = append(vals, v)
		}
		values[field] = vals
	}

	if len(values) == 0 {
		return Expression{}, nil
	}
	return Expression{values: values}, nil
}

func isRecognized(field string) bool {
	for _, f := range fieldOrder {
		if f == field {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the expression has no predicates.
func (e Expression) IsEmpty() bool { return len(e.values) == 0 }

// Values returns the accepted values for a field, or nil when absent.
func (e Expression) Values(field string) []string { return e.values[field] }

// Fields returns the present fields in canonical order.
func (e Expression) Fields() []string {
	out := make([]string, 0, len(e.values))
	for _, f := range fieldOrder {
		if _, ok := e.values[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Render produces the canonical string form: present fields in canonical
// order, values in their accepted order. Parsing the rendering yields an
// equal expression.
func (e Expression) Render() string {
	groups := make([]string, 0, len(e.values))
	for _, f := range e.Fields() {
		groups = append(groups, f+","+strings.Join(e.values[f], ","))
	}
	return strings.Join(groups, ";")
}
