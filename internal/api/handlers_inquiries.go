package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/services"
)

func (handler *Handler) SubmitInquiry(c *fiber.Ctx) error {
	input := services.InquiryInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_input")
	}
	input.Language = currentLanguage(c)
	input.RemoteIP = requestLimiterKey(c)

	inquiry, err := handler.inquiries.Submit(input)
	if err != nil {
		return handler.respondInquiryError(c, err)
	}

	handler.logger.Info().
		Str("reference", inquiry.Reference).
		Str("checkin", inquiry.Checkin).
		Int("nights", inquiry.Nights).
		Msg("booking inquiry received")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        inquiry.PublicID,
		"reference": inquiry.Reference,
		"status":    inquiry.Status,
		"nights":    inquiry.Nights,
		"total":     inquiry.Total,
		"message":   fmt.Sprintf(translateMessage(currentMessages(c), "inquiry.received"), inquiry.Reference),
	})
}

func (handler *Handler) respondInquiryError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "inquiry_invalid",
			"fields":  validationErr.Fields,
			"message": translateMessage(currentMessages(c), "error.inquiry_invalid"),
		})
	case errors.Is(err, services.ErrInquiryInvalid):
		return apiError(c, fiber.StatusUnprocessableEntity, "inquiry_invalid")
	case errors.Is(err, services.ErrInquiryRangeNeeded):
		return apiError(c, fiber.StatusUnprocessableEntity, "range_needed")
	case errors.Is(err, services.ErrInquiryRateLimited):
		return apiError(c, fiber.StatusTooManyRequests, "rate_limited")
	}

	if reason := availability.ReasonOf(err); reason != availability.ReasonNone {
		return handler.reasonError(c, fiber.StatusUnprocessableEntity, reason)
	}

	handler.logger.Error().Err(err).Msg("store booking inquiry failed")
	return apiError(c, fiber.StatusInternalServerError, "internal")
}
