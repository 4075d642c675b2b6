package availability

// View classifies days against one selection and one "today". Renderers
// build a View once per pass so every cell sees the same today. All methods
// are pure.
type View struct {
	calendar *Calendar
	state    Selection
	today    Date
}

func (calendar *Calendar) View(state Selection, today Date) View {
	return View{calendar: calendar, state: state, today: today}
}

func (view View) Today() Date {
	return view.today
}

func (view View) Selection() Selection {
	return view.state
}

func (view View) IsPast(day Date) bool {
	return day.Before(view.today)
}

func (view View) IsUnavailable(day Date) bool {
	return view.calendar.IsUnavailable(day)
}

func (view View) IsSelected(day Date) bool {
	if view.state.Start.IsZero() {
		return false
	}
	if day.Equal(view.state.Start) {
		return true
	}
	return !view.state.End.IsZero() && day.Equal(view.state.End)
}

// IsInRange excludes both endpoints.
func (view View) IsInRange(day Date) bool {
	if !view.state.IsComplete() {
		return false
	}
	return day.After(view.state.Start) && day.Before(view.state.End)
}

// IsTooSoon marks days after a pending start that cannot close the range
// because the minimum stay is not reached yet.
func (view View) IsTooSoon(day Date) bool {
	if !view.state.IsPending() {
		return false
	}
	return day.After(view.state.Start) && Nights(view.state.Start, day) < view.calendar.minNights
}

// Selectable is true when a click on day should reach Pick at all.
func (view View) Selectable(day Date) bool {
	return !view.IsPast(day) && !view.IsUnavailable(day) && !view.IsTooSoon(day)
}
