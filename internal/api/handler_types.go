package api

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/pricing"
)

// selectionPayload carries a selection over the wire in ISO form. The
// server keeps no widget state; clients send the state back on every pick.
type selectionPayload struct {
	Start string `json:"start" form:"start"`
	End   string `json:"end" form:"end"`
}

type selectionView struct {
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
	StartDisplay string `json:"start_display,omitempty"`
	EndDisplay   string `json:"end_display,omitempty"`
	Phase        string `json:"phase"`
	Nights       int    `json:"nights"`
	Hint         string `json:"hint"`
}

type dayCellView struct {
	Date       string   `json:"date,omitempty"`
	Day        int      `json:"day,omitempty"`
	Blank      bool     `json:"blank,omitempty"`
	Classes    []string `json:"classes"`
	Selectable bool     `json:"selectable"`
}

type monthView struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Weekdays []string      `json:"weekdays"`
	Cells    []dayCellView `json:"cells"`
}

type breakdownView struct {
	pricing.Breakdown
	Formatted map[string]string `json:"formatted"`
}

func parseSelectionPayload(payload selectionPayload) (availability.Selection, error) {
	start, err := parseOptionalISO(payload.Start)
	if err != nil {
		return availability.Selection{}, err
	}
	end, err := parseOptionalISO(payload.End)
	if err != nil {
		return availability.Selection{}, err
	}

	selection := availability.Selection{Start: start, End: end}
	if !selection.Valid() {
		return availability.Selection{}, availability.ErrInvalidOrder
	}
	return selection, nil
}

func parseOptionalISO(raw string) (availability.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return availability.Date{}, nil
	}
	return availability.ParseISO(raw)
}

func (handler *Handler) buildSelectionView(c *fiber.Ctx, selection availability.Selection) selectionView {
	messages := currentMessages(c)
	view := selectionView{
		Start:        selection.Start.String(),
		End:          selection.End.String(),
		Phase:        selection.Phase().String(),
		Nights:       selection.Nights(),
		StartDisplay: formatOptionalDisplay(selection.Start),
		EndDisplay:   formatOptionalDisplay(selection.End),
	}

	switch selection.Phase() {
	case availability.PhaseComplete:
		view.Hint = fmt.Sprintf(translateMessage(messages, "selection.complete"), view.Nights)
	case availability.PhasePending:
		view.Hint = translateMessage(messages, "selection.pending")
	default:
		view.Hint = translateMessage(messages, "selection.empty")
	}
	return view
}

func buildMonthView(messages map[string]string, month availability.Month) monthView {
	cells := make([]dayCellView, 0, len(month.Cells))
	for _, cell := range month.Cells {
		if cell.Blank {
			cells = append(cells, dayCellView{Blank: true, Classes: cell.Classes()})
			continue
		}
		cells = append(cells, dayCellView{
			Date:       cell.Date.String(),
			Day:        cell.Day,
			Classes:    cell.Classes(),
			Selectable: cell.Selectable(),
		})
	}

	return monthView{
		Key:      month.Key.String(),
		Label:    fmt.Sprintf("%s %d", translateMessage(messages, fmt.Sprintf("month.%d", int(month.Key.Month))), month.Key.Year),
		Weekdays: strings.Split(translateMessage(messages, "weekday.short"), ","),
		Cells:    cells,
	}
}

func buildBreakdownView(breakdown pricing.Breakdown) breakdownView {
	return breakdownView{
		Breakdown: breakdown,
		Formatted: map[string]string{
			"nightly_rate":  pricing.FormatAmount(breakdown.NightlyRate),
			"accommodation": pricing.FormatAmount(breakdown.Accommodation),
			"linen_fee":     pricing.FormatAmount(breakdown.LinenFee),
			"subtotal":      pricing.FormatAmount(breakdown.Subtotal),
			"cleaning_fee":  pricing.FormatAmount(breakdown.CleaningFee),
			"total":         pricing.FormatAmount(breakdown.Total),
		},
	}
}

func formatOptionalDisplay(day availability.Date) string {
	if day.IsZero() {
		return ""
	}
	return availability.FormatDisplay(day)
}
