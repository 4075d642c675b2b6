package availability

import "fmt"

// ValidateRange checks endpoints that arrive together, e.g. from typed form
// inputs. end may be zero when only a checkin is known. On success it
// returns the number of nights (zero without checkout).
//
// Endpoints beyond BookingHorizon count as unavailable.
//
// For any start < end where neither day is past or blacked out on its own,
// the verdict equals feeding start and then end through Pick: both paths
// share checkStay.
func (calendar *Calendar) ValidateRange(start Date, end Date, today Date) (int, error) {
	if start.IsZero() {
		return 0, fmt.Errorf("checkin: %w", ErrInvalidFormat)
	}

	if !end.IsZero() && !start.Before(end) {
		return 0, ErrInvalidOrder
	}
	horizon := BookingHorizon(today)
	if start.After(horizon) || end.After(horizon) {
		return 0, fmt.Errorf("%w: after %s", ErrRangeUnavailable, horizon)
	}

	nights := 0
	if !end.IsZero() {
		checked, err := calendar.checkStay(start, end)
		if err != nil {
			return 0, err
		}
		nights = checked
	}

	if start.Before(today) || (!end.IsZero() && end.Before(today)) {
		return 0, ErrDateInPast
	}
	if end.IsZero() && calendar.IsUnavailable(start) {
		return 0, ErrRangeUnavailable
	}
	return nights, nil
}

// ValidateText parses DD.MM.YYYY inputs and validates them as a range. A
// blank checkout yields a pending selection. Format errors are reported
// before any range rule is evaluated.
func (calendar *Calendar) ValidateText(rawCheckin string, rawCheckout string, today Date) (Selection, int, error) {
	start, err := ParseDisplay(rawCheckin)
	if err != nil {
		return Selection{}, 0, fmt.Errorf("checkin: %w", err)
	}
	end, err := ParseOptionalDisplay(rawCheckout)
	if err != nil {
		return Selection{}, 0, fmt.Errorf("checkout: %w", err)
	}

	nights, err := calendar.ValidateRange(start, end, today)
	if err != nil {
		return Selection{}, 0, err
	}
	return Selection{Start: start, End: end}, nights, nil
}
