// Package numparse coerces raw field text into numbers the way a browser
// number field is read: the longest leading numeric prefix wins and anything
// unparseable becomes 0.
package numparse

import (
	"strconv"
	"strings"
	"unicode"
)

// Leading parses the longest numeric prefix of raw after skipping leading
// whitespace. It accepts an optional sign, digits with at most one decimal
// point, and an optional exponent. ok is false when no prefix could be read
// or the value overflows a float64.
func Leading(raw string) (value float64, ok bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := prefixLen(s)
	if end == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float returns the leading number in raw, or 0 when there is none.
func Float(raw string) float64 {
	v, _ := Leading(raw)
	return v
}

func prefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	// Exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
