package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	isoLayout     = "2006-01-02"
	displayLayout = "02.01.2006"
)

// ParseISO parses the YYYY-MM-DD form used by the blackout table.
func ParseISO(raw string) (Date, error) {
	parsed, err := time.Parse(isoLayout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
	return DateOf(parsed, time.UTC), nil
}

// ParseDisplay parses the DD.MM.YYYY form typed into the booking inputs.
// Day and month need two digits each, the year four. Dates that do not
// exist on the calendar (31.02.) are rejected instead of rolled over.
func ParseDisplay(raw string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}

	day, dayOK := parseDigits(parts[0], 2, 2)
	month, monthOK := parseDigits(parts[1], 2, 2)
	year, yearOK := parseDigits(parts[2], 4, 4)
	if !dayOK || !monthOK || !yearOK {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}

	parsed := NewDate(year, time.Month(month), day)
	if parsed.Year() != year || int(parsed.Month()) != month || parsed.Day() != day {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
	return parsed, nil
}

// ParseOptionalDisplay treats blank input as "no date".
func ParseOptionalDisplay(raw string) (Date, error) {
	if strings.TrimSpace(raw) == "" {
		return Date{}, nil
	}
	return ParseDisplay(raw)
}

func FormatDisplay(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(displayLayout)
}

func FormatISO(d Date) string {
	return d.String()
}

func parseDigits(raw string, minLength int, maxLength int) (int, bool) {
	if len(raw) < minLength || len(raw) > maxLength {
		return 0, false
	}
	for _, char := range raw {
		if char < '0' || char > '9' {
			return 0, false
		}
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
