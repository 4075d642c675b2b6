package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/db"
	"github.com/terraincognita07/milla/internal/i18n"
	"github.com/terraincognita07/milla/internal/services"
)

const (
	testAdminPassword = "Ferienwohnung2026"
	testSecretKey     = "test-secret-key-with-32-characters!"
)

var testNow = time.Date(2026, time.April, 1, 10, 30, 0, 0, time.UTC)

type testApp struct {
	app       *fiber.App
	handler   *Handler
	inquiries *db.InquiryRepository
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	closure, err := availability.NewBlackout(
		availability.NewDate(2026, time.May, 1),
		availability.NewDate(2026, time.May, 14),
	)
	if err != nil {
		t.Fatalf("blackout: %v", err)
	}
	calendar, err := availability.NewCalendar(
		[]availability.Blackout{closure},
		availability.WithClock(func() time.Time { return testNow }),
		availability.WithLocation(time.UTC),
	)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "milla.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	repositories := db.NewRepositories(database)

	inquiryService := services.NewInquiryService(repositories.Inquiries, calendar)
	inquiryService.SetNow(func() time.Time { return testNow })

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}

	i18nManager, err := i18n.NewManager("de", i18n.Locales())
	if err != nil {
		t.Fatalf("i18n manager: %v", err)
	}

	handler, err := NewHandler(Dependencies{
		Calendar:   calendar,
		Inquiries:  inquiryService,
		Admin:      services.NewAdminAuthService(string(hash)),
		I18n:       i18nManager,
		SecretKey:  testSecretKey,
		FeedDomain: "test.example",
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return testApp{app: app, handler: handler, inquiries: repositories.Inquiries}
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body string, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	for name, value := range headers {
		request.Header.Set(name, value)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	defer response.Body.Close()

	var payload T
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
