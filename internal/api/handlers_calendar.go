package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/ics"
)

// GetCalendar renders the months a surface shows, starting at ?month and
// clamped to the surface's navigation bounds.
func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	today := handler.calendar.Today()
	surface := availability.ParseSurface(c.Query("surface"))
	navigator := availability.NavigatorFor(surface, today)

	first := navigator.Min
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		parsed, err := availability.ParseMonthKey(raw)
		if err != nil {
			return handler.reasonError(c, fiber.StatusBadRequest, availability.ReasonInvalidFormat)
		}
		first = navigator.Clamp(parsed)
	}

	selection, err := parseSelectionPayload(selectionPayload{Start: c.Query("start"), End: c.Query("end")})
	if err != nil {
		return handler.reasonError(c, fiber.StatusBadRequest, availability.ReasonOf(err))
	}

	view := handler.calendar.View(selection, today)
	messages := currentMessages(c)
	months := view.BuildMonths(first, surface.MonthsShown())
	monthViews := make([]monthView, 0, len(months))
	for _, month := range months {
		monthViews = append(monthViews, buildMonthView(messages, month))
	}

	return c.JSON(fiber.Map{
		"surface":    string(surface),
		"today":      today.String(),
		"min_nights": handler.calendar.MinNights(),
		"month":      first.String(),
		"prev":       navigator.Prev(first).String(),
		"next":       navigator.Next(first).String(),
		"has_prev":   navigator.HasPrev(first),
		"has_next":   navigator.HasNext(first),
		"selection":  handler.buildSelectionView(c, selection),
		"months":     monthViews,
	})
}

func (handler *Handler) GetBlackouts(c *fiber.Ctx) error {
	blackouts := handler.calendar.Blackouts()
	payload := make([]fiber.Map, 0, len(blackouts))
	for _, blackout := range blackouts {
		payload = append(payload, fiber.Map{
			"from": availability.FormatISO(blackout.From),
			"to":   availability.FormatISO(blackout.To),
		})
	}
	return c.JSON(fiber.Map{
		"min_nights": handler.calendar.MinNights(),
		"blackouts":  payload,
	})
}

// GetAvailabilityFeed publishes the blackout table as an iCalendar feed for
// channel managers.
func (handler *Handler) GetAvailabilityFeed(c *fiber.Ctx) error {
	body := ics.Export(handler.calendar.Blackouts(), ics.ExportOptions{
		Summary: translateMessage(currentMessages(c), "feed.summary"),
		Domain:  handler.feedDomain,
		Stamped: handler.now(),
	})
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="availability.ics"`)
	return c.SendString(body)
}
