package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/terraincognita07/milla/internal/availability"
)

const ProductID = "-//milla//availability feed//EN"

type ExportOptions struct {
	// Summary is the title of every event, e.g. a localized "unavailable".
	Summary string
	// Domain makes event UIDs globally unique.
	Domain  string
	Stamped time.Time
}

// Export renders blackouts as all-day events. DTEND is exclusive, so each
// event ends the day after the blackout's last day.
func Export(blackouts []availability.Blackout, options ExportOptions) string {
	if options.Summary == "" {
		options.Summary = "Unavailable"
	}
	if options.Domain == "" {
		options.Domain = "milla.local"
	}
	if options.Stamped.IsZero() {
		options.Stamped = time.Now().UTC()
	}

	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, blackout := range blackouts {
		uid := fmt.Sprintf("%s-%s@%s", blackout.From, blackout.To, options.Domain)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(options.Stamped)
		event.SetAllDayStartAt(blackout.From.Time())
		event.SetAllDayEndAt(blackout.To.AddDays(1).Time())
		event.SetSummary(options.Summary)
	}
	return cal.Serialize()
}
