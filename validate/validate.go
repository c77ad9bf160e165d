// Package validate is a declarative field-validation layer for string maps
// (form submissions, query parameters, JSON decoded into string maps). A
// Schema maps field names to Rules; Map applies every rule and aggregates the
// first failing constraint per field into FieldErrors.
package validate

import (
	"regexp"
	"strconv"

	"github.com/vixlabs/vixutil/result"
)

// FieldErrors maps field name to a human-readable message for the first
// constraint that field failed. It satisfies error so it can travel through
// ordinary error returns.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation passed"
	}
	for k, v := range fe {
		if len(fe) == 1 {
			return k + ": " + v
		}
		return k + ": " + v + " (and " + strconv.Itoa(len(fe)-1) + " more)"
	}
	return "validation failed"
}

// Rule is the declarative constraint set for one field. Checks run in order:
// required, length bounds, numeric bounds, pattern; the first failure wins.
type Rule struct {
	// Required rejects absent or empty values.
	Required bool
	// MinLen / MaxLen bound the string length, inclusive. Nil means
	// unbounded.
	MinLen *int
	MaxLen *int
	// Min / Max bound the base-10 numeric value, inclusive. Setting either
	// also requires the value to parse as an integer.
	Min *int64
	Max *int64
	// Pattern must match the entire value.
	Pattern *regexp.Regexp
	// Label is the name used in messages; empty falls back to the field key.
	Label string
}

// Schema maps field names to their rules.
type Schema map[string]Rule

// Required builds a presence rule.
func Required(label string) Rule {
	return Rule{Required: true, Label: label}
}

// Len builds a length-bounded rule (inclusive).
func Len(min, max int, label string) Rule {
	return Rule{MinLen: &min, MaxLen: &max, Label: label}
}

// NumRange builds an inclusive numeric range rule.
func NumRange(min, max int64, label string) Rule {
	return Rule{Min: &min, Max: &max, Label: label}
}

// Match builds a full-match regex rule. The pattern is anchored on both ends
// if the caller did not anchor it.
func Match(pattern, label string) Rule {
	if len(pattern) == 0 || pattern[0] != '^' {
		pattern = "^(?:" + pattern + ")$"
	}
	return Rule{Pattern: regexp.MustCompile(pattern), Label: label}
}

// Map validates data against schema. Fields absent from the schema are
// ignored; absent optional fields pass. On any failure the result is Err
// with one message per failing field; otherwise Ok.
func Map(data map[string]string, schema Schema) result.Result[struct{}, FieldErrors] {
	errs := FieldErrors{}
	for key, rule := range schema {
		label := rule.Label
		if label == "" {
			label = key
		}
		v, present := data[key]
		present = present && v != ""

		if rule.Required && !present {
			errs[key] = label + " is required"
			continue
		}
		if !present {
			continue
		}
		if rule.MinLen != nil && len(v) < *rule.MinLen {
			errs[key] = label + " must be at least " + strconv.Itoa(*rule.MinLen) + " chars"
			continue
		}
		if rule.MaxLen != nil && len(v) > *rule.MaxLen {
			errs[key] = label + " must be at most " + strconv.Itoa(*rule.MaxLen) + " chars"
			continue
		}
		if rule.Min != nil || rule.Max != nil {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs[key] = label + " must be a number"
				continue
			}
			if rule.Min != nil && n < *rule.Min {
				errs[key] = label + " must be >= " + strconv.FormatInt(*rule.Min, 10)
				continue
			}
			if rule.Max != nil && n > *rule.Max {
				errs[key] = label + " must be <= " + strconv.FormatInt(*rule.Max, 10)
				continue
			}
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(v) {
			errs[key] = label + " has invalid format"
			continue
		}
	}
	if len(errs) > 0 {
		return result.Err[struct{}, FieldErrors](errs)
	}
	return result.Ok[struct{}, FieldErrors](struct{}{})
}
