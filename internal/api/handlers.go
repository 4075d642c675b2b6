package api

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/i18n"
	"github.com/terraincognita07/milla/internal/services"
)

const defaultFeedDomain = "milla.local"

// Dependencies wires a Handler. Calendar and I18n are required; a nil
// Inquiries disables the inquiry and admin inbox routes.
type Dependencies struct {
	Calendar     *availability.Calendar
	Inquiries    *services.InquiryService
	Admin        *services.AdminAuthService
	I18n         *i18n.Manager
	SecretKey    string
	CookieSecure bool
	FeedDomain   string
	Logger       zerolog.Logger
}

type Handler struct {
	calendar     *availability.Calendar
	inquiries    *services.InquiryService
	admin        *services.AdminAuthService
	i18n         *i18n.Manager
	secretKey    []byte
	cookieSecure bool
	feedDomain   string
	logger       zerolog.Logger
	loginLimiter *attemptLimiter
	now          func() time.Time
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Calendar == nil {
		return nil, errors.New("calendar is required")
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if deps.Admin == nil {
		deps.Admin = services.NewAdminAuthService("")
	}

	feedDomain := strings.TrimSpace(deps.FeedDomain)
	if feedDomain == "" {
		feedDomain = defaultFeedDomain
	}

	return &Handler{
		calendar:     deps.Calendar,
		inquiries:    deps.Inquiries,
		admin:        deps.Admin,
		i18n:         deps.I18n,
		secretKey:    []byte(deps.SecretKey),
		cookieSecure: deps.CookieSecure,
		feedDomain:   feedDomain,
		logger:       deps.Logger,
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		now:          time.Now,
	}, nil
}
