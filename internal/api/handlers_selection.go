package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/pricing"
)

type pickInput struct {
	selectionPayload
	Date string `json:"date" form:"date"`
}

type validateInput struct {
	Checkin  string        `json:"checkin" form:"checkin"`
	Checkout string        `json:"checkout" form:"checkout"`
	Guests   partySizeText `json:"guests" form:"guests"`
}

// partySizeText accepts guests as a JSON number or string, since form
// scripts send either.
type partySizeText string

func (text *partySizeText) UnmarshalJSON(data []byte) error {
	*text = partySizeText(strings.Trim(string(data), `"`))
	return nil
}

// PickDay applies one clicked day to the selection the client sends along.
// A rejected pick is still a 200: the outcome tells the renderer what to do.
func (handler *Handler) PickDay(c *fiber.Ctx) error {
	input := pickInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_input")
	}

	state, err := parseSelectionPayload(input.selectionPayload)
	if err != nil {
		return handler.reasonError(c, fiber.StatusBadRequest, availability.ReasonOf(err))
	}

	candidate, err := availability.ParseISO(input.Date)
	if err != nil {
		return handler.respondPick(c, state, availability.Outcome{Reason: availability.ReasonInvalidFormat})
	}
	next, outcome := handler.calendar.Pick(state, candidate, handler.calendar.Today())
	return handler.respondPick(c, next, outcome)
}

func (handler *Handler) respondPick(c *fiber.Ctx, next availability.Selection, outcome availability.Outcome) error {
	return c.JSON(fiber.Map{
		"accepted":  outcome.Accepted,
		"changed":   outcome.Changed,
		"reason":    string(outcome.Reason),
		"message":   handler.reasonMessage(c, outcome.Reason),
		"selection": handler.buildSelectionView(c, next),
	})
}

// ValidateSelection checks typed DD.MM.YYYY inputs. With guests it also
// returns the cost breakdown for the stay.
func (handler *Handler) ValidateSelection(c *fiber.Ctx) error {
	input := validateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_input")
	}

	selection, nights, err := handler.calendar.ValidateText(input.Checkin, input.Checkout, handler.calendar.Today())
	if err != nil {
		reason := availability.ReasonOf(err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"valid":     false,
			"reason":    string(reason),
			"message":   handler.reasonMessage(c, reason),
			"selection": handler.buildSelectionView(c, availability.Selection{}),
		})
	}

	response := fiber.Map{
		"valid":     true,
		"nights":    nights,
		"selection": handler.buildSelectionView(c, selection),
	}
	if breakdown, ok := pricing.Quote(selection, pricing.ParsePartySize(string(input.Guests))); ok && breakdown.Priced() {
		response["estimate"] = buildBreakdownView(breakdown)
	}
	return c.JSON(response)
}

func (handler *Handler) ResetSelection(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"selection": handler.buildSelectionView(c, availability.Selection{}),
	})
}
