package api

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/milla/internal/availability"
)

// apiError answers {"error": code, "message": localized}. code doubles as
// the catalog key suffix: "rate_limited" looks up "error.rate_limited".
func apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": translateMessage(currentMessages(c), "error."+code),
	})
}

// reasonError answers a rejected range with its machine reason.
func (handler *Handler) reasonError(c *fiber.Ctx, status int, reason availability.Reason) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   string(reason),
		"reason":  string(reason),
		"message": handler.reasonMessage(c, reason),
	})
}

func (handler *Handler) reasonMessage(c *fiber.Ctx, reason availability.Reason) string {
	if reason == availability.ReasonNone {
		return ""
	}
	message := translateMessage(currentMessages(c), "reason."+string(reason))
	if reason == availability.ReasonMinStay {
		return fmt.Sprintf(message, handler.calendar.MinNights())
	}
	return message
}

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}
