package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/ics"
)

var (
	ErrEmptyBlackout = errors.New("blackout needs either day or from/to")
	ErrRecurringDays = errors.New("recurring blackout needs days >= 1")
)

// Blackout converts a YAML entry into a validated span.
func (e BlackoutEntry) Blackout() (availability.Blackout, error) {
	if day := strings.TrimSpace(e.Day); day != "" {
		parsed, err := availability.ParseISO(day)
		if err != nil {
			return availability.Blackout{}, err
		}
		return availability.SingleDay(parsed), nil
	}
	if strings.TrimSpace(e.From) == "" || strings.TrimSpace(e.To) == "" {
		return availability.Blackout{}, ErrEmptyBlackout
	}

	from, err := availability.ParseISO(e.From)
	if err != nil {
		return availability.Blackout{}, err
	}
	to, err := availability.ParseISO(e.To)
	if err != nil {
		return availability.Blackout{}, err
	}
	return availability.NewBlackout(from, to)
}

// Expand returns one span per occurrence of the rule that overlaps
// [first, last], including a span that began before first and still runs.
func (r RecurringBlackout) Expand(first availability.Date, last availability.Date) ([]availability.Blackout, error) {
	if r.Days < 1 {
		return nil, ErrRecurringDays
	}
	anchor, err := availability.ParseISO(r.Start)
	if err != nil {
		return nil, err
	}

	option, err := rrule.StrToROption(strings.TrimSpace(r.Rule))
	if err != nil {
		return nil, fmt.Errorf("rrule %q: %w", r.Rule, err)
	}
	option.Dtstart = anchor.Time()
	rule, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, fmt.Errorf("rrule %q: %w", r.Rule, err)
	}

	occurrences := rule.Between(first.AddDays(-(r.Days - 1)).Time(), last.Time(), true)
	blackouts := make([]availability.Blackout, 0, len(occurrences))
	for _, occurrence := range occurrences {
		from := availability.DateOf(occurrence, time.UTC)
		blackout, err := availability.NewBlackout(from, from.AddDays(r.Days-1))
		if err != nil {
			return nil, err
		}
		blackouts = append(blackouts, blackout)
	}
	return blackouts, nil
}

// BuildBlackouts assembles the one blackout table every surface shares:
// static closures, booked stays, recurring closures that overlap today
// through the last navigable month, and imported ICS feeds. Recurring
// closures are only expanded that far, so a long-running server has to
// rebuild the table as days pass (see RefreshCalendar).
func (c *Config) BuildBlackouts(today availability.Date, location *time.Location) ([]availability.Blackout, error) {
	blackouts := make([]availability.Blackout, 0, len(c.Blackouts)+len(c.Booked))

	for index, entry := range c.Blackouts {
		blackout, err := entry.Blackout()
		if err != nil {
			return nil, fmt.Errorf("blackouts[%d]: %w", index, err)
		}
		blackouts = append(blackouts, blackout)
	}
	for index, entry := range c.Booked {
		blackout, err := entry.Blackout()
		if err != nil {
			return nil, fmt.Errorf("booked[%d]: %w", index, err)
		}
		blackouts = append(blackouts, blackout)
	}

	last := availability.BookingHorizon(today)
	for index, recurring := range c.RecurringBlackouts {
		expanded, err := recurring.Expand(today, last)
		if err != nil {
			return nil, fmt.Errorf("recurring_blackouts[%d]: %w", index, err)
		}
		blackouts = append(blackouts, expanded...)
	}

	for _, path := range c.ICSFiles {
		imported, err := ics.ImportFile(path, location)
		if err != nil {
			return nil, err
		}
		blackouts = append(blackouts, imported...)
	}
	return blackouts, nil
}

// NewCalendar builds the shared availability calendar from this config.
func (c *Config) NewCalendar(location *time.Location, options ...availability.Option) (*availability.Calendar, error) {
	options = append([]availability.Option{
		availability.WithLocation(location),
		availability.WithMinNights(c.MinNights),
	}, options...)

	calendar, err := availability.NewCalendar(nil, options...)
	if err != nil {
		return nil, err
	}
	if err := c.RefreshCalendar(calendar, location); err != nil {
		return nil, err
	}
	return calendar, nil
}

// RefreshCalendar rebuilds the blackout table for the calendar's current
// day and swaps it in.
func (c *Config) RefreshCalendar(calendar *availability.Calendar, location *time.Location) error {
	blackouts, err := c.BuildBlackouts(calendar.Today(), location)
	if err != nil {
		return err
	}
	return calendar.ReplaceBlackouts(blackouts)
}
