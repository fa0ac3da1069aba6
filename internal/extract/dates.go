package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateMatcher recognizes one date format. Matchers are tried in order and
// the first match wins, so more specific formats come first. New formats
// are added by appending a matcher, without touching existing ones.
type dateMatcher struct {
	name  string
	re    *regexp.Regexp
	parse func(m []string) (time.Time, bool)
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var dateMatchers = []dateMatcher{
	{
		// "January 15, 2026", "Jan 15 2026", "March 3rd, 2026"
		name: "month-name",
		re: regexp.MustCompile(`(?i)\b(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`),
		parse: func(m []string) (time.Time, bool) {
			month, ok := months[strings.ToLower(m[1][:3])]
			if !ok {
				return time.Time{}, false
			}
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return newDate(year, month, day)
		},
	},
	{
		// "1/15/2026", "01/15/26" (US month-first)
		name: "slash",
		re:   regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`),
		parse: func(m []string) (time.Time, bool) {
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
			if month < 1 || month > 12 {
				return time.Time{}, false
			}
			return newDate(year, time.Month(month), day)
		},
	},
	{
		// "2026-01-15"
		name: "iso",
		re:   regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`),
		parse: func(m []string) (time.Time, bool) {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			if month < 1 || month > 12 {
				return time.Time{}, false
			}
			return newDate(year, time.Month(month), day)
		},
	},
}

func newDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject roll-overs like February 30
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// findDate returns the first recognized date in the block
func findDate(block string) (time.Time, bool) {
	for _, m := range dateMatchers {
		match := m.re.FindStringSubmatch(block)
		if match == nil {
			continue
		}
		if t, ok := m.parse(match); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

var timePattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(a\.?m\.?|p\.?m\.?)\b`)

// findTime returns the first time-of-day in the block as 24-hour
// hour/minute, converting the 12 AM / 12 PM edge cases explicitly.
func findTime(block string) (hour, minute int, ok bool) {
	m := timePattern.FindStringSubmatch(block)
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}

	meridiem := strings.ToLower(strings.ReplaceAll(m[3], ".", ""))
	switch {
	case meridiem == "am" && hour == 12: // midnight
		hour = 0
	case meridiem == "pm" && hour != 12: // noon stays 12
		hour += 12
	}

	return hour, minute, true
}

// combine refines a date-only timestamp with a time of day
func combine(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
