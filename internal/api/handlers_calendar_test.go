package api

import (
	"io"
	"net/http"
	"slices"
	"strings"
	"testing"
)

type calendarResponse struct {
	Surface   string        `json:"surface"`
	Today     string        `json:"today"`
	Month     string        `json:"month"`
	Prev      string        `json:"prev"`
	Next      string        `json:"next"`
	HasPrev   bool          `json:"has_prev"`
	HasNext   bool          `json:"has_next"`
	Selection selectionView `json:"selection"`
	Months    []monthView   `json:"months"`
}

func findCell(t *testing.T, months []monthView, date string) dayCellView {
	t.Helper()
	for _, month := range months {
		for _, cell := range month.Cells {
			if cell.Date == date {
				return cell
			}
		}
	}
	t.Fatalf("calendar cell %s not found", date)
	return dayCellView{}
}

func TestGetCalendarRendersTwoMonthsWithFlags(t *testing.T) {
	app := newTestApp(t).app

	response := doRequest(t, app, http.MethodGet, "/api/calendar?month=2026-04&start=2026-04-20", "", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	payload := decodeJSON[calendarResponse](t, response)

	if payload.Surface != "calendar" || payload.Today != "2026-04-01" || len(payload.Months) != 2 {
		t.Fatalf("unexpected calendar header: %+v", payload)
	}
	if payload.Months[0].Label != "April 2026" || payload.Months[1].Label != "Mai 2026" {
		t.Fatalf("unexpected month labels %q / %q", payload.Months[0].Label, payload.Months[1].Label)
	}
	if payload.HasPrev || !payload.HasNext || payload.Next != "2026-05" {
		t.Fatalf("unexpected navigation: %+v", payload)
	}
	if payload.Selection.Phase != "pending" || payload.Selection.StartDisplay != "20.04.2026" {
		t.Fatalf("unexpected selection: %+v", payload.Selection)
	}

	april := payload.Months[0]
	if !april.Cells[0].Blank || !april.Cells[1].Blank || april.Cells[2].Date != "2026-04-01" {
		t.Fatalf("expected two leading blanks before Wednesday 1 April, got %+v", april.Cells[:3])
	}

	tests := []struct {
		date       string
		class      string
		selectable bool
	}{
		{date: "2026-04-01", class: "today", selectable: true},
		{date: "2026-04-20", class: "selected", selectable: true},
		{date: "2026-04-22", class: "too-soon", selectable: false},
		{date: "2026-05-03", class: "unavailable", selectable: false},
	}
	for _, tt := range tests {
		cell := findCell(t, payload.Months, tt.date)
		if !slices.Contains(cell.Classes, tt.class) || cell.Selectable != tt.selectable {
			t.Fatalf("%s: expected class %q selectable=%v, got %+v", tt.date, tt.class, tt.selectable, cell)
		}
	}
}

func TestGetCalendarClampsToSurfaceBounds(t *testing.T) {
	app := newTestApp(t).app

	tests := []struct {
		query string
		month string
		next  bool
		count int
	}{
		{query: "?month=2025-01", month: "2026-04", next: true, count: 2},
		{query: "?month=2030-01", month: "2027-12", next: false, count: 2},
		{query: "?month=2030-01&surface=picker", month: "2028-01", next: false, count: 1},
	}

	for _, tt := range tests {
		payload := decodeJSON[calendarResponse](t, doRequest(t, app, http.MethodGet, "/api/calendar"+tt.query, "", nil))
		if payload.Month != tt.month || payload.HasNext != tt.next || len(payload.Months) != tt.count {
			t.Fatalf("%s: expected month %s next=%v count=%d, got %s next=%v count=%d",
				tt.query, tt.month, tt.next, tt.count, payload.Month, payload.HasNext, len(payload.Months))
		}
	}
}

func TestGetCalendarRejectsBadQuery(t *testing.T) {
	app := newTestApp(t).app

	for _, query := range []string{"?month=April", "?start=2026-04-25&end=2026-04-20", "?start=25.04.2026"} {
		response := doRequest(t, app, http.MethodGet, "/api/calendar"+query, "", nil)
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, response.StatusCode)
		}
	}
}

func TestGetCalendarLocalizedByAcceptLanguage(t *testing.T) {
	app := newTestApp(t).app

	response := doRequest(t, app, http.MethodGet, "/api/calendar?month=2026-05", "", map[string]string{"Accept-Language": "en-US,en;q=0.9"})
	if cookie := responseCookie(response.Cookies(), languageCookieName); cookie == nil || cookie.Value != "en" {
		t.Fatalf("expected language cookie en, got %+v", cookie)
	}
	payload := decodeJSON[calendarResponse](t, response)
	if payload.Months[0].Label != "May 2026" || payload.Months[0].Weekdays[1] != "Tu" {
		t.Fatalf("expected english labels, got %q %v", payload.Months[0].Label, payload.Months[0].Weekdays)
	}
}

func TestGetBlackoutsAndFeed(t *testing.T) {
	app := newTestApp(t).app

	blackouts := decodeJSON[struct {
		MinNights int                 `json:"min_nights"`
		Blackouts []map[string]string `json:"blackouts"`
	}](t, doRequest(t, app, http.MethodGet, "/api/blackouts", "", nil))
	if blackouts.MinNights != 4 || len(blackouts.Blackouts) != 1 || blackouts.Blackouts[0]["from"] != "2026-05-01" || blackouts.Blackouts[0]["to"] != "2026-05-14" {
		t.Fatalf("unexpected blackout table: %+v", blackouts)
	}

	response := doRequest(t, app, http.MethodGet, "/api/availability.ics", "", nil)
	if !strings.HasPrefix(response.Header.Get("Content-Type"), "text/calendar") {
		t.Fatalf("unexpected content type %q", response.Header.Get("Content-Type"))
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read feed: %v", err)
	}
	for _, fragment := range []string{"BEGIN:VEVENT", "DTSTART;VALUE=DATE:20260501", "DTEND;VALUE=DATE:20260515", "SUMMARY:Belegt", "@test.example"} {
		if !strings.Contains(string(body), fragment) {
			t.Fatalf("expected feed to contain %q:\n%s", fragment, body)
		}
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t).app

	response := doRequest(t, app, http.MethodGet, "/healthz", "", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
}
