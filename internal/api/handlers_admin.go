package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/milla/internal/services"
)

const (
	defaultInboxLimit = 50
	maxInboxLimit     = 500
)

type adminLoginInput struct {
	Password string `json:"password" form:"password"`
}

func (handler *Handler) AdminLogin(c *fiber.Ctx) error {
	if !handler.admin.Enabled() {
		return apiError(c, fiber.StatusServiceUnavailable, "admin_disabled")
	}

	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "rate_limited")
	}

	input := adminLoginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_input")
	}

	if err := handler.admin.Authenticate(input.Password); err != nil {
		handler.loginLimiter.addFailure(limiterKey, now)
		handler.logger.Warn().Str("ip", limiterKey).Msg("admin login failed")
		if errors.Is(err, services.ErrAdminCredentialsInvalid) {
			return apiError(c, fiber.StatusUnauthorized, "invalid_credentials")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) AdminLogout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListInquiries(c *fiber.Ctx) error {
	limit := defaultInboxLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid_input")
		}
		limit = min(parsed, maxInboxLimit)
	}

	inquiries, err := handler.inquiries.List(limit)
	if err != nil {
		handler.logger.Error().Err(err).Msg("list inquiries failed")
		return apiError(c, fiber.StatusInternalServerError, "internal")
	}

	payload := make([]fiber.Map, 0, len(inquiries))
	for _, inquiry := range inquiries {
		payload = append(payload, fiber.Map{
			"id":         inquiry.PublicID,
			"reference":  inquiry.Reference,
			"name":       inquiry.Name,
			"email":      inquiry.Email,
			"phone":      inquiry.Phone,
			"checkin":    inquiry.Checkin,
			"checkout":   inquiry.Checkout,
			"nights":     inquiry.Nights,
			"guests":     inquiry.Guests,
			"message":    inquiry.Message,
			"language":   inquiry.Language,
			"total":      inquiry.Total,
			"status":     inquiry.Status,
			"attempts":   inquiry.Attempts,
			"last_error": inquiry.LastError,
			"sent_at":    inquiry.SentAt,
			"created_at": inquiry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"inquiries": payload})
}

func (handler *Handler) ResendInquiry(c *fiber.Ctx) error {
	err := handler.inquiries.Resend(c.Params("id"))
	switch {
	case errors.Is(err, services.ErrInquiryNotFound):
		return apiError(c, fiber.StatusNotFound, "not_found")
	case err != nil:
		handler.logger.Error().Err(err).Msg("requeue inquiry failed")
		return apiError(c, fiber.StatusInternalServerError, "internal")
	}
	return c.JSON(fiber.Map{"ok": true, "status": "pending"})
}
