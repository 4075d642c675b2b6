package availability

// Outcome describes how a pick was handled. A rejected pick always carries a
// Reason; Changed tells the renderer whether the selection moved.
type Outcome struct {
	Accepted bool
	Reason   Reason
	Changed  bool
}

func (outcome Outcome) Err() error {
	if outcome.Accepted {
		return nil
	}
	return errorForReason(outcome.Reason)
}

// Pick applies one user-picked day to state.
//
//   - past days are rejected and leave state alone;
//   - an empty or complete selection restarts as pending on the picked day;
//   - on a pending selection the same day is a no-op, an earlier day moves
//     the start, and a later day closes the range if the stay is long enough
//     and free of blackout days.
//
// Blacked-out days and days past the booking horizon are rejected like past
// days, whatever the phase. A too-short range keeps the pending start. A
// range that touches a blackout drops the selection entirely.
func (calendar *Calendar) Pick(state Selection, candidate Date, today Date) (Selection, Outcome) {
	if candidate.IsZero() {
		return state, Outcome{Reason: ReasonInvalidFormat}
	}
	if candidate.Before(today) || candidate.After(BookingHorizon(today)) || calendar.IsUnavailable(candidate) {
		return state, Outcome{Reason: ReasonPastOrUnavailable}
	}

	if state.Phase() != PhasePending {
		next := PendingSelection(candidate)
		return next, Outcome{Accepted: true, Changed: next != state}
	}

	start := state.Start
	switch {
	case candidate.Equal(start):
		return state, Outcome{Accepted: true}
	case candidate.Before(start):
		return PendingSelection(candidate), Outcome{Accepted: true, Changed: true}
	}

	if _, err := calendar.checkStay(start, candidate); err != nil {
		reason := ReasonOf(err)
		if reason == ReasonRangeContainsUnavailable {
			return Selection{}, Outcome{Reason: reason, Changed: true}
		}
		return state, Outcome{Reason: reason}
	}
	return Selection{Start: start, End: candidate}, Outcome{Accepted: true, Changed: true}
}
