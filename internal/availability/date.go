package availability

import (
	"fmt"
	"time"
)

// Date is a calendar day without time of day or zone. The zero value means
// "no date" and is used for unset selection endpoints.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate normalizes overflowing components the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	normalized := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: normalized.Year(), month: normalized.Month(), day: normalized.Day()}
}

// DateOf returns the calendar day value falls on in location.
func DateOf(value time.Time, location *time.Location) Date {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return Date{year: year, month: month, day: day}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Year() int {
	return d.year
}

func (d Date) Month() time.Month {
	return d.month
}

func (d Date) Day() int {
	return d.day
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Time returns UTC midnight of d. It exists for arithmetic and formatting
// only; comparisons go through Date.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return compareInts(d.year, other.year)
	case d.month != other.month:
		return compareInts(int(d.month), int(other.month))
	default:
		return compareInts(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) AddDays(days int) Date {
	return NewDate(d.year, d.month, d.day+days)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Nights counts the nights between checkin and checkout. Both ends are whole
// days, so the ceiling of the day difference is the difference itself.
func Nights(checkin Date, checkout Date) int {
	if checkin.IsZero() || checkout.IsZero() {
		return 0
	}
	return int(checkout.dayNumber() - checkin.dayNumber())
}

// dayNumber counts days since 1970-01-01. Unix seconds at UTC midnight are
// exact multiples of a day for every representable year, unlike Duration
// which saturates after about 292 years.
func (d Date) dayNumber() int64 {
	return d.Time().Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

func compareInts(left int, right int) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}
