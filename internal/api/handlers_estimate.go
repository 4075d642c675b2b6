package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/pricing"
)

// GetEstimate prices either a typed stay (?checkin&checkout) or a bare
// night count (?nights). A party size outside the rate table comes back
// with priced=false and a hint to ask for an offer.
func (handler *Handler) GetEstimate(c *fiber.Ctx) error {
	nights := 0
	if checkin := strings.TrimSpace(c.Query("checkin")); checkin != "" {
		_, validated, err := handler.calendar.ValidateText(checkin, c.Query("checkout"), handler.calendar.Today())
		if err != nil {
			return handler.reasonError(c, fiber.StatusUnprocessableEntity, availability.ReasonOf(err))
		}
		nights = validated
	} else if raw := strings.TrimSpace(c.Query("nights")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > pricing.MaxNights {
			return apiError(c, fiber.StatusBadRequest, "invalid_input")
		}
		nights = parsed
	}

	breakdown, ok := pricing.Estimate(nights, pricing.ParsePartySize(c.Query("guests")))
	if !ok {
		return c.JSON(fiber.Map{"priced": false})
	}
	if !breakdown.Priced() {
		return c.JSON(fiber.Map{
			"priced":  false,
			"message": translateMessage(currentMessages(c), "estimate.unpriced"),
		})
	}
	return c.JSON(fiber.Map{
		"priced":    true,
		"breakdown": buildBreakdownView(breakdown),
	})
}
