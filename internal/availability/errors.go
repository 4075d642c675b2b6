package availability

import "errors"

// Reason is the machine-readable cause of a rejected pick or range.
type Reason string

const (
	ReasonNone                     Reason = ""
	ReasonPastOrUnavailable        Reason = "past_or_unavailable"
	ReasonMinStay                  Reason = "min_stay_violation"
	ReasonRangeContainsUnavailable Reason = "range_contains_unavailable"
	ReasonInvalidOrder             Reason = "invalid_order"
	ReasonDateInPast               Reason = "date_in_past"
	ReasonInvalidFormat            Reason = "invalid_format"
)

var (
	ErrInvalidFormat    = errors.New("invalid date format")
	ErrInvalidOrder     = errors.New("checkout must be after checkin")
	ErrMinStay          = errors.New("minimum stay not reached")
	ErrRangeUnavailable = errors.New("range contains unavailable days")
	ErrDateInPast       = errors.New("date in the past")
	ErrDateUnavailable  = errors.New("date is past or unavailable")
	ErrBlackoutOrder    = errors.New("blackout ends before it starts")
)

// ReasonOf maps a validator error to its rejection reason.
func ReasonOf(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrInvalidFormat):
		return ReasonInvalidFormat
	case errors.Is(err, ErrInvalidOrder):
		return ReasonInvalidOrder
	case errors.Is(err, ErrMinStay):
		return ReasonMinStay
	case errors.Is(err, ErrRangeUnavailable):
		return ReasonRangeContainsUnavailable
	case errors.Is(err, ErrDateInPast):
		return ReasonDateInPast
	case errors.Is(err, ErrDateUnavailable):
		return ReasonPastOrUnavailable
	default:
		return ReasonNone
	}
}

func errorForReason(reason Reason) error {
	switch reason {
	case ReasonPastOrUnavailable:
		return ErrDateUnavailable
	case ReasonMinStay:
		return ErrMinStay
	case ReasonRangeContainsUnavailable:
		return ErrRangeUnavailable
	case ReasonInvalidOrder:
		return ErrInvalidOrder
	case ReasonDateInPast:
		return ErrDateInPast
	case ReasonInvalidFormat:
		return ErrInvalidFormat
	default:
		return nil
	}
}
