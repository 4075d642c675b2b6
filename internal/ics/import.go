package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/terraincognita07/milla/internal/availability"
)

var (
	ErrEmptyFeed    = errors.New("empty ics feed")
	ErrMissingStart = errors.New("vevent without DTSTART")
)

// ParseBlackouts turns every VEVENT of a feed into a closed span of days.
// All-day events use their exclusive DTEND; timed events close every day
// they touch in location.
func ParseBlackouts(body []byte, location *time.Location) ([]availability.Blackout, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyFeed
	}
	if location == nil {
		location = time.UTC
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	blackouts := make([]availability.Blackout, 0, len(cal.Events()))
	for _, event := range cal.Events() {
		blackout, err := eventBlackout(event, location)
		if err != nil {
			uid := ""
			if prop := event.GetProperty(ical.ComponentPropertyUniqueId); prop != nil {
				uid = prop.Value
			}
			return nil, fmt.Errorf("event %q: %w", uid, err)
		}
		blackouts = append(blackouts, blackout)
	}
	return blackouts, nil
}

func ImportFile(path string, location *time.Location) ([]availability.Blackout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	blackouts, err := ParseBlackouts(body, location)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return blackouts, nil
}

func eventBlackout(event *ical.VEvent, location *time.Location) (availability.Blackout, error) {
	startProp := event.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil || strings.TrimSpace(startProp.Value) == "" {
		return availability.Blackout{}, ErrMissingStart
	}

	if isAllDay(startProp) {
		start, err := event.GetAllDayStartAt()
		if err != nil {
			return availability.Blackout{}, err
		}
		from := availability.DateOf(start, start.Location())
		to := from
		if event.GetProperty(ical.ComponentPropertyDtEnd) != nil {
			end, err := event.GetAllDayEndAt()
			if err != nil {
				return availability.Blackout{}, err
			}
			if last := availability.DateOf(end, end.Location()).AddDays(-1); last.After(from) {
				to = last
			}
		}
		return availability.NewBlackout(from, to)
	}

	start, err := event.GetStartAt()
	if err != nil {
		return availability.Blackout{}, err
	}
	from := availability.DateOf(start, location)
	to := from
	if event.GetProperty(ical.ComponentPropertyDtEnd) != nil {
		end, err := event.GetEndAt()
		if err != nil {
			return availability.Blackout{}, err
		}
		local := end.In(location)
		last := availability.DateOf(local, location)
		if local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0 {
			last = last.AddDays(-1)
		}
		if last.After(from) {
			to = last
		}
	}
	return availability.NewBlackout(from, to)
}

func isAllDay(prop *ical.IANAProperty) bool {
	if values, ok := prop.ICalParameters["VALUE"]; ok && len(values) > 0 && strings.EqualFold(values[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}
