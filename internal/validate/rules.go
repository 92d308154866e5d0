// Package validate holds the field-level predicate rules the presentation
// layer runs before calling a service. Every rule returns a verdict and a
// fixed human-readable message; messages are never parameterized per input.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailRe       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneStripRe  = regexp.MustCompile(`[\s()\-]`)
	digitsRe      = regexp.MustCompile(`^[0-9]+$`)
	airportCodeRe = regexp.MustCompile(`^[A-Z]{3,4}$`)
	companyCodeRe = regexp.MustCompile(`^[A-Z0-9]{2,5}$`)
)

const (
	MaxPriceCents = 100000_00
	MaxCapacity   = 1000

	minAgeYears = 12
	maxAgeYears = 120
)

func Email(s string) (bool, string) {
	if !emailRe.MatchString(strings.TrimSpace(s)) {
		return false, "must be a valid email address"
	}
	return true, ""
}

// Phone accepts 10-15 digits after stripping spaces, parentheses and
// hyphens. A single leading plus sign is allowed.
func Phone(s string) (bool, string) {
	stripped := phoneStripRe.ReplaceAllString(strings.TrimSpace(s), "")
	stripped = strings.TrimPrefix(stripped, "+")
	if len(stripped) < 10 || len(stripped) > 15 || !digitsRe.MatchString(stripped) {
		return false, "must contain 10 to 15 digits"
	}
	return true, ""
}

func AirportCode(s string) (bool, string) {
	if !airportCodeRe.MatchString(NormalizeCode(s)) {
		return false, "must be 3 or 4 uppercase letters"
	}
	return true, ""
}

func CompanyCode(s string) (bool, string) {
	if !companyCodeRe.MatchString(NormalizeCode(s)) {
		return false, "must be 2 to 5 uppercase letters or digits"
	}
	return true, ""
}

// FlightCode is deliberately permissive: codes are free-form and only
// normalized to uppercase. Anything non-empty passes.
func FlightCode(s string) (bool, string) {
	if NormalizeCode(s) == "" {
		return false, "must not be empty"
	}
	return true, ""
}

func NonEmpty(s string) (bool, string) {
	if strings.TrimSpace(s) == "" {
		return false, "must not be empty"
	}
	return true, ""
}

func MinLen(s string, n int) (bool, string) {
	if len(strings.TrimSpace(s)) < n {
		return false, fmt.Sprintf("must be at least %d characters", n)
	}
	return true, ""
}

func MaxLen(s string, n int) (bool, string) {
	if len(strings.TrimSpace(s)) > n {
		return false, fmt.Sprintf("must be at most %d characters", n)
	}
	return true, ""
}

func PositiveInt(v int64) (bool, string) {
	if v <= 0 {
		return false, "must be a positive number"
	}
	return true, ""
}

func NonNegativeInt(v int64) (bool, string) {
	if v < 0 {
		return false, "must not be negative"
	}
	return true, ""
}

// DateOfBirth requires an age between 12 and 120 years at the reference
// time. The predicate is derived from that intent: the date must fall
// between now-120y and now-12y inclusive.
func DateOfBirth(dob, now time.Time) (bool, string) {
	youngest := now.AddDate(-minAgeYears, 0, 0)
	oldest := now.AddDate(-maxAgeYears, 0, 0)
	if dob.After(youngest) || dob.Before(oldest) {
		return false, "age must be between 12 and 120 years"
	}
	return true, ""
}

func FutureDate(t, now time.Time) (bool, string) {
	if !t.After(now) {
		return false, "must be a future date"
	}
	return true, ""
}

// PriceCents bounds a fare: strictly positive and at most 100000.00.
func PriceCents(v int64) (bool, string) {
	if v <= 0 || v > MaxPriceCents {
		return false, "must be between 0.01 and 100000.00"
	}
	return true, ""
}

// Capacity bounds a flight's seat count: strictly positive and at most 1000.
func Capacity(v int) (bool, string) {
	if v <= 0 || v > MaxCapacity {
		return false, "must be between 1 and 1000 seats"
	}
	return true, ""
}

// NormalizeCode trims surrounding whitespace and uppercases, the shared
// first phase of every identifier uniqueness check.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
