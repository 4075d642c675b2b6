package availability

// Selector is one widget session: a selection bound to a shared Calendar.
// It has a single writer and is not safe for concurrent use.
type Selector struct {
	calendar *Calendar
	state    Selection
}

func NewSelector(calendar *Calendar) *Selector {
	return &Selector{calendar: calendar}
}

func (selector *Selector) Calendar() *Calendar {
	return selector.calendar
}

func (selector *Selector) State() Selection {
	return selector.state
}

func (selector *Selector) Pick(day Date) Outcome {
	next, outcome := selector.calendar.Pick(selector.state, day, selector.calendar.Today())
	selector.state = next
	return outcome
}

func (selector *Selector) Reset() {
	selector.state = Selection{}
}

// Apply writes a range that came from form inputs. A failed validation
// clears the selection.
func (selector *Selector) Apply(start Date, end Date) (int, error) {
	nights, err := selector.calendar.ValidateRange(start, end, selector.calendar.Today())
	if err != nil {
		selector.Reset()
		return 0, err
	}
	selector.state = Selection{Start: start, End: end}
	return nights, nil
}

// ApplyText is Apply for raw DD.MM.YYYY input. Unparseable text leaves the
// selection untouched.
func (selector *Selector) ApplyText(rawCheckin string, rawCheckout string) (int, error) {
	start, err := ParseDisplay(rawCheckin)
	if err != nil {
		return 0, err
	}
	end, err := ParseOptionalDisplay(rawCheckout)
	if err != nil {
		return 0, err
	}
	return selector.Apply(start, end)
}

func (selector *Selector) View() View {
	return selector.calendar.View(selector.state, selector.calendar.Today())
}
