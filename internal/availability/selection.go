package availability

type Phase int

const (
	PhaseEmpty Phase = iota
	PhasePending
	PhaseComplete
)

func (phase Phase) String() string {
	switch phase {
	case PhasePending:
		return "pending"
	case PhaseComplete:
		return "complete"
	default:
		return "empty"
	}
}

// Selection is the checkin/checkout pair being built. End is only ever set
// together with a Start that lies strictly before it.
type Selection struct {
	Start Date
	End   Date
}

func PendingSelection(start Date) Selection {
	return Selection{Start: start}
}

func CompleteSelection(start Date, end Date) (Selection, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return Selection{}, ErrInvalidOrder
	}
	return Selection{Start: start, End: end}, nil
}

func (selection Selection) Phase() Phase {
	switch {
	case selection.Start.IsZero():
		return PhaseEmpty
	case selection.End.IsZero():
		return PhasePending
	default:
		return PhaseComplete
	}
}

func (selection Selection) IsEmpty() bool {
	return selection.Phase() == PhaseEmpty
}

func (selection Selection) IsPending() bool {
	return selection.Phase() == PhasePending
}

func (selection Selection) IsComplete() bool {
	return selection.Phase() == PhaseComplete
}

// Nights is zero unless the selection is complete.
func (selection Selection) Nights() int {
	if !selection.IsComplete() {
		return 0
	}
	return Nights(selection.Start, selection.End)
}

// Valid reports whether the End-implies-earlier-Start invariant holds.
func (selection Selection) Valid() bool {
	if selection.End.IsZero() {
		return true
	}
	return !selection.Start.IsZero() && selection.Start.Before(selection.End)
}
