package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/milla/internal/availability"
)

const (
	CleaningFee      = 80
	LinenFeePerGuest = 10
	MinPartySize     = 1
	MaxPartySize     = 5
	// MaxNights is above the longest stay the booking horizon allows.
	MaxNights = 1000
)

var nightlyRates = map[int]int{
	1: 95,
	2: 105,
	3: 115,
	4: 125,
	5: 135,
}

// NightlyRate returns 0 for party sizes without a rate.
func NightlyRate(partySize int) int {
	return nightlyRates[partySize]
}

type Breakdown struct {
	Nights        int `json:"nights"`
	PartySize     int `json:"guests"`
	NightlyRate   int `json:"nightly_rate"`
	Accommodation int `json:"accommodation"`
	LinenFee      int `json:"linen_fee"`
	Subtotal      int `json:"subtotal"`
	CleaningFee   int `json:"cleaning_fee"`
	Total         int `json:"total"`
}

// Priced is false for the zero-rate breakdown of a party size outside the
// rate table. Callers show such a breakdown as unpriced.
func (breakdown Breakdown) Priced() bool {
	return breakdown.NightlyRate > 0
}

// Estimate returns ok=false when there is nothing to price at all or the
// stay is longer than MaxNights. A
// positive party size without a rate still yields a breakdown, with a zero
// nightly rate.
func Estimate(nights int, partySize int) (Breakdown, bool) {
	if nights <= 0 || nights > MaxNights || partySize <= 0 {
		return Breakdown{}, false
	}

	rate := NightlyRate(partySize)
	accommodation := rate * nights
	linen := LinenFeePerGuest * partySize
	subtotal := accommodation + linen
	return Breakdown{
		Nights:        nights,
		PartySize:     partySize,
		NightlyRate:   rate,
		Accommodation: accommodation,
		LinenFee:      linen,
		Subtotal:      subtotal,
		CleaningFee:   CleaningFee,
		Total:         subtotal + CleaningFee,
	}, true
}

func Quote(selection availability.Selection, partySize int) (Breakdown, bool) {
	if !selection.IsComplete() {
		return Breakdown{}, false
	}
	return Estimate(selection.Nights(), partySize)
}

// ParsePartySize maps form text to a party size. Blank or non-numeric input
// means no party size was given and returns 0.
func ParsePartySize(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func ValidPartySize(partySize int) bool {
	return partySize >= MinPartySize && partySize <= MaxPartySize
}

// FormatAmount renders a whole-euro amount with two decimals.
func FormatAmount(amount int) string {
	return fmt.Sprintf("%.2f€", float64(amount))
}
