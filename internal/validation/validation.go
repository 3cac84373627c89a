// Package validation checks single input values against declared constraints.
package validation

import (
	"strings"
	"unicode/utf8"
)

// Constraints describes the checks applied to one value. Nil bounds are skipped.
// Length bounds apply to strings only, numeric bounds to numbers only.
type Constraints struct {
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// Length returns a pointer to a length bound.
func Length(n int) *int {
	return &n
}

// Bound returns a pointer to a numeric bound.
func Bound(n float64) *float64 {
	return &n
}

// Validate reports whether value satisfies every constraint. It has no side effects.
func Validate(value any, c Constraints) bool {
	valid := true

	if c.Required {
		valid = valid && present(value)
	}

	if s, ok := value.(string); ok {
		n := utf8.RuneCountInString(s)
		if c.MinLength != nil {
			valid = valid && n >= *c.MinLength
		}
		if c.MaxLength != nil {
			valid = valid && n <= *c.MaxLength
		}
	}

	if n, ok := asNumber(value); ok {
		if c.Min != nil {
			valid = valid && n >= *c.Min
		}
		if c.Max != nil {
			valid = valid && n <= *c.Max
		}
	}

	return valid
}

// present reports whether value is a non-blank string or a number. Nil and
// other kinds never satisfy Required.
func present(value any) bool {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	_, ok := asNumber(value)
	return ok
}

// asNumber widens supported numeric kinds to float64.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
