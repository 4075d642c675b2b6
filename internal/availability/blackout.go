package availability

import (
	"fmt"
	"sort"
)

// Blackout is a closed interval of days that cannot be booked.
type Blackout struct {
	From Date
	To   Date
}

func NewBlackout(from Date, to Date) (Blackout, error) {
	if from.IsZero() || to.IsZero() {
		return Blackout{}, fmt.Errorf("%w: missing bound", ErrBlackoutOrder)
	}
	if to.Before(from) {
		return Blackout{}, fmt.Errorf("%w: %s > %s", ErrBlackoutOrder, from, to)
	}
	return Blackout{From: from, To: to}, nil
}

func SingleDay(day Date) Blackout {
	return Blackout{From: day, To: day}
}

func (b Blackout) Contains(day Date) bool {
	return !day.Before(b.From) && !day.After(b.To)
}

func (b Blackout) Days() int {
	return Nights(b.From, b.To) + 1
}

func (b Blackout) String() string {
	if b.From == b.To {
		return b.From.String()
	}
	return b.From.String() + ".." + b.To.String()
}

func sortBlackouts(blackouts []Blackout) {
	sort.SliceStable(blackouts, func(i, j int) bool {
		if blackouts[i].From == blackouts[j].From {
			return blackouts[i].To.Before(blackouts[j].To)
		}
		return blackouts[i].From.Before(blackouts[j].From)
	})
}
