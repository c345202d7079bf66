// Package duration converts compact day/hour/minute text such as "0d1h30m"
// into fractional hours.
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Simplici0/printcost/internal/numparse"
)

const (
	hoursPerDay    = 24.0
	minutesPerHour = 60.0
)

var (
	daysPattern    = regexp.MustCompile(`(\d+\.?\d*)\s*d`)
	hoursPattern   = regexp.MustCompile(`(\d+\.?\d*)\s*h`)
	minutesPattern = regexp.MustCompile(`(\d+\.?\d*)\s*m`)
)

// ParseHours returns the total number of hours described by text.
//
// Each of the d, h and m components is searched for independently and
// case-insensitively, so components may appear in any order with other text
// around them. When none is present the whole string is read as a plain
// number of hours. Empty or unparseable input yields 0.
func ParseHours(text string) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	days, hasDays := component(daysPattern, lower)
	hours, hasHours := component(hoursPattern, lower)
	minutes, hasMinutes := component(minutesPattern, lower)

	if !hasDays && !hasHours && !hasMinutes {
		return numparse.Float(text)
	}

	return days*hoursPerDay + hours + minutes/minutesPerHour
}

func component(pattern *regexp.Regexp, s string) (float64, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	// The capture is all digits with an optional dot, so it always parses.
	return numparse.Float(m[1]), true
}

// Format renders hours as "XdYhZm", rounded to the nearest minute. Past the
// int64 range of minutes only whole days are rendered.
func Format(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return "0d0h0m"
	}
	if hours < 0 {
		return "-" + Format(-hours)
	}

	minutes := math.Round(hours * minutesPerHour)
	if minutes >= math.MaxInt64 {
		return strconv.FormatFloat(math.Floor(hours/hoursPerDay), 'f', 0, 64) + "d0h0m"
	}

	total := int64(minutes)
	const minutesPerDay = int64(hoursPerDay * minutesPerHour)
	d := total / minutesPerDay
	h := (total % minutesPerDay) / int64(minutesPerHour)
	m := total % int64(minutesPerHour)
	return fmt.Sprintf("%dd%dh%dm", d, h, m)
}
