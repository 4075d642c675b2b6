package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/terraincognita07/milla/internal/api"
	"github.com/terraincognita07/milla/internal/cli"
	"github.com/terraincognita07/milla/internal/config"
	"github.com/terraincognita07/milla/internal/db"
	"github.com/terraincognita07/milla/internal/i18n"
	"github.com/terraincognita07/milla/internal/logging"
	"github.com/terraincognita07/milla/internal/services"
)

const minSecretKeyLength = 32

func main() {
	_ = godotenv.Load()
	log := logging.FromEnv()

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	var err error
	switch command {
	case "serve":
		err = serve(log)
	case "hash-password":
		err = cli.RunHashPasswordCommand(os.Stdin, os.Stdout)
	case "check":
		err = runCheck(os.Args[2:])
	default:
		err = fmt.Errorf("unknown command %q (want serve, hash-password or check)", command)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("milla failed")
	}
}

func runCheck(args []string) error {
	cfg, _, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	return cli.RunCheckCommand(cfg, args, os.Stdout)
}

func serve(log zerolog.Logger) error {
	cfg, configPath, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config init failed: %w", err)
	}
	secretKey, err := resolveSecretKey(cfg.SecretKey)
	if err != nil {
		return err
	}
	location, err := cfg.Location()
	if err != nil {
		return err
	}
	time.Local = location

	calendar, err := cfg.NewCalendar(location)
	if err != nil {
		return fmt.Errorf("calendar init failed: %w", err)
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	repositories := db.NewRepositories(database)

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.Locales())
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	admin := services.NewAdminAuthService(cfg.Admin.PasswordHash)
	handler, err := api.NewHandler(api.Dependencies{
		Calendar:     calendar,
		Inquiries:    services.NewInquiryService(repositories.Inquiries, calendar),
		Admin:        admin,
		I18n:         i18nManager,
		SecretKey:    secretKey,
		CookieSecure: cfg.CookieSecure,
		Logger:       logging.Component(log, "api"),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Milla",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	if len(cfg.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
			AllowMethods:     "GET,POST",
			AllowCredentials: true,
		}))
	}
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	if cfg.Mail.Enabled() {
		notifier := services.NewInquiryNotifier(
			repositories.Inquiries,
			services.NewSMTPMailer(cfg.Mail),
			cfg.Mail.From,
			cfg.Mail.To,
			cfg.Notifier.MaxAttempts,
			cfg.Notifier.Cron,
			logging.Component(log, "notifier"),
		)
		if err := notifier.Start(lifecycleCtx); err != nil {
			return err
		}
	} else {
		log.Warn().Msg("SMTP_HOST or MAIL_TO not set, inquiries stay in the outbox")
	}
	if !admin.Enabled() {
		log.Warn().Msg("ADMIN_PASSWORD_HASH not set, admin inbox disabled")
	}

	refresher := services.NewBlackoutRefresher(func() error {
		return cfg.RefreshCalendar(calendar, location)
	}, services.DefaultBlackoutRefreshSchedule, logging.Component(log, "config"))
	if err := refresher.Start(lifecycleCtx); err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("config", configPath).
		Str("db", cfg.DBPath).
		Str("tz", location.String()).
		Int("blackouts", len(calendar.Blackouts())).
		Msg("milla listening")
	return app.Listen(":" + cfg.Port)
}

func resolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	switch {
	case secret == "":
		return "", errors.New("SECRET_KEY is required")
	case secret == "change_me_in_production" || secret == "replace_with_at_least_32_random_characters":
		return "", errors.New("SECRET_KEY uses an insecure placeholder")
	case len(secret) < minSecretKeyLength:
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

// csrfMiddlewareConfig guards the cookie-authenticated admin routes with a
// double-submit token. The public booking API carries no session and is
// skipped.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "milla_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Next: func(c *fiber.Ctx) bool {
			return !strings.HasPrefix(c.Path(), "/api/admin")
		},
	}
}
