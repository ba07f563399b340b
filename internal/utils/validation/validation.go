// Package validation coerces loosely-typed input (path segments, query
// parameters, JSON strings) into typed values. Every function is pure.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// ParseInt parses s as a base-10 integer, surrounding spaces allowed.
func ParseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

// IntegerOrDefault reads the leading base-10 integer of s, so "12abc"
// gives 12. It returns def when s does not start with a number.
func IntegerOrDefault(s string, def int64) int64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}
	if n, ok := ParseInt(s[:end]); ok {
		return n
	}
	return def
}

// ParseID parses a positive integer identifier. Unlike IntegerOrDefault
// the whole string must be numeric.
func ParseID(s string) (int64, bool) {
	id, ok := ParseInt(s)
	return id, ok && id > 0
}

// DateOrDefault parses s as YYYY-MM-DD or RFC 3339, returning def when
// neither layout matches.
func DateOrDefault(s string, def time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return def
}

// StringOrDefault dereferences s, or returns def when s is nil.
func StringOrDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// BooleanOrDefault recognises "true" and "false" in any case.
func BooleanOrDefault(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
