package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AdminRequired(c *fiber.Ctx) error {
	claims, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextAdminKey, claims.Subject)
	return c.Next()
}
