// Package validate checks raw design inputs against declarative per-field
// rule tables before any calculation runs.
package validate

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Sign constrains the sign of a numeric field.
type Sign int

const (
	Any         Sign = iota // any finite value
	Positive                // strictly greater than zero
	NonNegative             // zero or greater
)

// Kind classifies why a field was rejected.
type Kind string

const (
	KindMissing    Kind = "missing"
	KindSign       Kind = "wrong_sign"
	KindRange      Kind = "out_of_range"
	KindNotFinite  Kind = "not_finite"
	KindNotAllowed Kind = "not_allowed"
	KindInvalid    Kind = "invalid"
)

// Rule describes the accepted values of one numeric field. Min and Max are
// inclusive bounds; a zero Max means no upper bound.
type Rule struct {
	Field    string
	Unit     string
	Sign     Sign
	Min, Max float64
	Required bool // zero is rejected even for Any/NonNegative fields
	Optional bool // zero means "use the default" and skips the range check
}

// Choice describes an enumerated field.
type Choice struct {
	Field   string
	Allowed []string
	Fold    bool // compare case-insensitively
}

// Table is the rule set of one member type.
type Table struct {
	Numbers []Rule
	Choices []Choice
}

// ValidationError identifies one offending field.
type ValidationError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every field error of one input.
type Errors []*ValidationError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// Fields lists the offending field names in table order.
func (e Errors) Fields() []string {
	names := make([]string, len(e))
	for i, err := range e {
		names[i] = err.Field
	}
	return names
}

// Has reports whether the named field was rejected.
func (e Errors) Has(field string) bool {
	return slices.Contains(e.Fields(), field)
}

// Err returns nil when there are no errors, so callers can return it directly.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Check applies the table to the given values. Every field in the table is
// checked; missing map entries are treated as zero and empty strings.
func (t Table) Check(numbers map[string]float64, choices map[string]string) Errors {
	var errs Errors
	for _, r := range t.Numbers {
		if err := r.check(numbers[r.Field]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range t.Choices {
		if err := c.check(choices[c.Field]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (r Rule) check(v float64) *ValidationError {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: r.Field, Kind: KindNotFinite, Message: "must be a finite number"}
	}
	if v == 0 {
		switch {
		case r.Optional:
			return nil
		case r.Required || r.Sign == Positive:
			return &ValidationError{Field: r.Field, Kind: KindMissing, Message: "is required and must be non-zero"}
		}
	}
	switch r.Sign {
	case Positive:
		if v < 0 {
			return &ValidationError{Field: r.Field, Kind: KindSign, Message: fmt.Sprintf("must be greater than zero, got %g", v)}
		}
	case NonNegative:
		if v < 0 {
			return &ValidationError{Field: r.Field, Kind: KindSign, Message: fmt.Sprintf("must not be negative, got %g", v)}
		}
	}
	if r.Max == 0 && v < r.Min {
		return &ValidationError{Field: r.Field, Kind: KindRange, Message: fmt.Sprintf("must be at least %g%s, got %g", r.Min, r.unit(), v)}
	}
	if v < r.Min || (r.Max != 0 && v > r.Max) {
		return &ValidationError{Field: r.Field, Kind: KindRange, Message: fmt.Sprintf("must be between %g and %g%s, got %g", r.Min, r.Max, r.unit(), v)}
	}
	return nil
}

func (r Rule) unit() string {
	if r.Unit == "" {
		return ""
	}
	return " " + r.Unit
}

func (c Choice) check(v string) *ValidationError {
	v = strings.TrimSpace(v)
	if v == "" {
		return &ValidationError{Field: c.Field, Kind: KindMissing, Message: "is required"}
	}
	for _, a := range c.Allowed {
		if v == a || (c.Fold && strings.EqualFold(v, a)) {
			return nil
		}
	}
	return &ValidationError{Field: c.Field, Kind: KindNotAllowed, Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(c.Allowed, ", "), v)}
}

// Invalid builds a cross-field error for fields whose individual ranges are
// fine but whose combination is not.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}
