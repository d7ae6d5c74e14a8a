// Package validation holds the client-side input rules. Each rule returns a
// violation or nil; rule sets collect them into a Result in rule order.
package validation

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"evrental-staff-core/internal/apperror"
)

// Rule names recorded on violations.
const (
	RuleNonEmpty    = "non_empty"
	RuleMinLength   = "min_length"
	RuleMaxLength   = "max_length"
	RuleNumber      = "number"
	RuleRange       = "range"
	RulePositive    = "positive"
	RuleGreaterThan = "greater_than"
	RuleDateOrder   = "date_order"
	RuleFormat      = "format"
)

// DateLayout is the wire format of document dates.
const DateLayout = "2006-01-02"

type Result struct {
	OK         bool
	Violations []apperror.Violation
}

// Err is nil for a passing result and a *apperror.ValidationError otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &apperror.ValidationError{Violations: r.Violations}
}

// Collect keeps the non-nil violations in order.
func Collect(vs ...*apperror.Violation) Result {
	var out []apperror.Violation
	for _, v := range vs {
		if v != nil {
			out = append(out, *v)
		}
	}
	return Result{OK: len(out) == 0, Violations: out}
}

// Merge concatenates results in order.
func Merge(rs ...Result) Result {
	var out []apperror.Violation
	for _, r := range rs {
		out = append(out, r.Violations...)
	}
	return Result{OK: len(out) == 0, Violations: out}
}

func violation(field, rule, message string) *apperror.Violation {
	return &apperror.Violation{Field: field, Rule: rule, Message: message}
}

func RequireNonEmpty(field, value, message string) *apperror.Violation {
	if strings.TrimSpace(value) == "" {
		return violation(field, RuleNonEmpty, message)
	}
	return nil
}

// RequireLength counts runes, so Vietnamese diacritics count once.
func RequireLength(field, value string, min, max int, tooShort, tooLong string) *apperror.Violation {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		return violation(field, RuleMinLength, tooShort)
	case max > 0 && n > max:
		return violation(field, RuleMaxLength, tooLong)
	}
	return nil
}

// ParseNumber accepts decimal text with either '.' or ',' as the separator.
func ParseNumber(raw string) (float64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func RequireNumber(field, raw, message string) *apperror.Violation {
	if _, ok := ParseNumber(raw); !ok {
		return violation(field, RuleNumber, message)
	}
	return nil
}

// RequireRange is inclusive on both ends.
func RequireRange(field string, v, min, max float64, message string) *apperror.Violation {
	if v < min || v > max {
		return violation(field, RuleRange, message)
	}
	return nil
}

func RequirePositive(field string, v float64, message string) *apperror.Violation {
	if v <= 0 {
		return violation(field, RulePositive, message)
	}
	return nil
}

func RequireGreaterThan(field string, v, than float64, message string) *apperror.Violation {
	if v <= than {
		return violation(field, RuleGreaterThan, message)
	}
	return nil
}

// RequireDateOrder requires before < after. Empty dates are skipped; malformed
// ones are reported under field.
func RequireDateOrder(field, before, after, message string) *apperror.Violation {
	if before == "" || after == "" {
		return nil
	}
	b, err := time.Parse(DateLayout, before)
	if err != nil {
		return violation(field, RuleFormat, MsgDateFormat)
	}
	a, err := time.Parse(DateLayout, after)
	if err != nil {
		return violation(field, RuleFormat, MsgDateFormat)
	}
	if !b.Before(a) {
		return violation(field, RuleDateOrder, message)
	}
	return nil
}
