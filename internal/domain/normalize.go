package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SlugPattern matches a canonical slug: lowercase alphanumeric runs separated
// by single hyphens. The HTTP layer uses it to reject malformed lookup keys
// before consulting the store.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var (
	slugStripPattern  = regexp.MustCompile(`[^\w\s-]`)
	slugSpacesPattern = regexp.MustCompile(`\s+`)
	slugHyphenRuns    = regexp.MustCompile(`-+`)

	time24Pattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	time12Pattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9])\s?(am|pm)$`)

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// GenerateSlug derives the canonical URL slug for a title: lowercase, trim,
// strip everything that is not a word character, whitespace, or hyphen,
// collapse whitespace and hyphen runs into single hyphens, and strip leading
// and trailing hyphens. Deterministic: the same title always yields the same
// slug. Returns a ValidationError when the title does not normalize to a
// valid slug.
func GenerateSlug(title string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripPattern.ReplaceAllString(s, "")
	s = slugSpacesPattern.ReplaceAllString(s, "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "", NewValidationError("title", "title normalizes to an empty slug")
	}
	if !SlugPattern.MatchString(s) {
		return "", NewValidationError("title", "title does not normalize to a valid slug")
	}
	return s, nil
}

// dateLayouts are the input shapes accepted for event dates, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// NormalizeDate parses the input date string and returns the canonical
// YYYY-MM-DD form in UTC, discarding any time-of-day component. Unparseable
// input yields a ValidationError.
func NormalizeDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", NewValidationError("date", "invalid date format")
}

// NormalizeTime converts a time string to canonical 24-hour HH:MM. Accepted
// inputs are 24-hour H:MM/HH:MM and 12-hour H:MM am/pm (case-insensitive,
// optional space before the meridiem). 12 AM maps to 00, 12 PM stays 12, and
// PM hours 1-11 add 12. Idempotent on its own output. Any other shape yields
// a ValidationError.
func NormalizeTime(input string) (string, error) {
	s := strings.TrimSpace(input)
	if m := time24Pattern.FindStringSubmatch(s); m != nil {
		hh := m[1]
		if len(hh) == 1 {
			hh = "0" + hh
		}
		return hh + ":" + m[2], nil
	}
	m := time12Pattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return "", NewValidationError("time", "invalid time format")
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return "", NewValidationError("time", "invalid time format")
	}
	if m[3] == "pm" && hours != 12 {
		hours += 12
	} else if m[3] == "am" && hours == 12 {
		hours = 0
	}
	return fmt.Sprintf("%02d:%s", hours, m[2]), nil
}

// NormalizeEmail lowercases and trims the address and validates the basic
// local@domain shape (non-empty local part, dotted domain). Returns the
// canonical address or a ValidationError.
func NormalizeEmail(input string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input))
	if email == "" {
		return "", NewValidationError("email", "email is required")
	}
	if !emailPattern.MatchString(email) {
		return "", NewValidationError("email", "email must be a valid address")
	}
	return email, nil
}
