package availability

import (
	"fmt"
	"strings"
	"time"
)

type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthOf(day Date) MonthKey {
	return MonthKey{Year: day.Year(), Month: day.Month()}
}

func ParseMonthKey(raw string) (MonthKey, error) {
	parsed, err := time.Parse("2006-01", strings.TrimSpace(raw))
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: month %q", ErrInvalidFormat, raw)
	}
	return MonthKey{Year: parsed.Year(), Month: parsed.Month()}, nil
}

func (key MonthKey) FirstDay() Date {
	return NewDate(key.Year, key.Month, 1)
}

func (key MonthKey) Add(months int) MonthKey {
	shifted := time.Date(key.Year, key.Month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	return MonthKey{Year: shifted.Year(), Month: shifted.Month()}
}

func (key MonthKey) Before(other MonthKey) bool {
	return key.FirstDay().Before(other.FirstDay())
}

func (key MonthKey) After(other MonthKey) bool {
	return key.FirstDay().After(other.FirstDay())
}

func (key MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", key.Year, key.Month)
}

type Surface string

const (
	SurfaceCalendar Surface = "calendar"
	SurfacePicker   Surface = "picker"
)

func ParseSurface(raw string) Surface {
	if strings.EqualFold(strings.TrimSpace(raw), string(SurfacePicker)) {
		return SurfacePicker
	}
	return SurfaceCalendar
}

// MonthsShown is how many months a surface renders side by side.
func (surface Surface) MonthsShown() int {
	if surface == SurfacePicker {
		return 1
	}
	return 2
}

// Navigator bounds the first displayed month of a surface.
type Navigator struct {
	Min MonthKey
	Max MonthKey
}

// NavigatorFor starts every surface at the current month. The grid calendar
// may page through December of next year, the popup picker through January
// two years ahead.
func NavigatorFor(surface Surface, today Date) Navigator {
	current := MonthOf(today)
	if surface == SurfacePicker {
		return Navigator{Min: current, Max: MonthKey{Year: today.Year() + 2, Month: time.January}}
	}
	return Navigator{Min: current, Max: MonthKey{Year: today.Year() + 1, Month: time.December}}
}

// LastDay is the final day of the last month the navigator can show.
func (navigator Navigator) LastDay() Date {
	return navigator.Max.Add(1).FirstDay().AddDays(-1)
}

// BookingHorizon is the latest day any surface can display, and so the
// latest day a stay may touch.
func BookingHorizon(today Date) Date {
	return NavigatorFor(SurfacePicker, today).LastDay()
}

func (navigator Navigator) Clamp(key MonthKey) MonthKey {
	if key.Before(navigator.Min) {
		return navigator.Min
	}
	if key.After(navigator.Max) {
		return navigator.Max
	}
	return key
}

func (navigator Navigator) HasPrev(key MonthKey) bool {
	return navigator.Min.Before(key)
}

func (navigator Navigator) HasNext(key MonthKey) bool {
	return key.Before(navigator.Max)
}

func (navigator Navigator) Prev(key MonthKey) MonthKey {
	return navigator.Clamp(key.Add(-1))
}

func (navigator Navigator) Next(key MonthKey) MonthKey {
	return navigator.Clamp(key.Add(1))
}

func (navigator Navigator) PrevYear(key MonthKey) MonthKey {
	return navigator.Clamp(key.Add(-12))
}

func (navigator Navigator) NextYear(key MonthKey) MonthKey {
	return navigator.Clamp(key.Add(12))
}
