package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.LanguageMiddleware)

	api.Get("/calendar", handler.GetCalendar)
	api.Get("/blackouts", handler.GetBlackouts)
	api.Get("/availability.ics", handler.GetAvailabilityFeed)
	api.Get("/estimate", handler.GetEstimate)

	selection := api.Group("/selection")
	selection.Post("/pick", handler.PickDay)
	selection.Post("/validate", handler.ValidateSelection)
	selection.Post("/reset", handler.ResetSelection)

	if handler.inquiries == nil {
		return
	}
	api.Post("/inquiries", handler.SubmitInquiry)

	admin := api.Group("/admin")
	admin.Post("/login", handler.AdminLogin)
	admin.Post("/logout", handler.AdminLogout)
	admin.Get("/inquiries", handler.AdminRequired, handler.ListInquiries)
	admin.Post("/inquiries/:id/resend", handler.AdminRequired, handler.ResendInquiry)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
