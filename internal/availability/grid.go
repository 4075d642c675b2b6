package availability

import "time"

// DayCell is one square of a rendered month. Blank cells pad the first
// week so that columns start on Monday.
type DayCell struct {
	Date          Date
	Day           int
	Blank         bool
	IsToday       bool
	IsPast        bool
	IsUnavailable bool
	IsSelected    bool
	IsInRange     bool
	IsTooSoon     bool
}

func (cell DayCell) Selectable() bool {
	return !cell.Blank && !cell.IsPast && !cell.IsUnavailable && !cell.IsTooSoon
}

// Classes is the union of the cell's flags as CSS class names.
func (cell DayCell) Classes() []string {
	if cell.Blank {
		return []string{"day", "empty"}
	}
	classes := []string{"day"}
	if cell.IsToday {
		classes = append(classes, "today")
	}
	if cell.IsPast {
		classes = append(classes, "past")
	}
	if cell.IsUnavailable {
		classes = append(classes, "unavailable")
	}
	if cell.IsSelected {
		classes = append(classes, "selected")
	}
	if cell.IsInRange {
		classes = append(classes, "in-range")
	}
	if cell.IsTooSoon {
		classes = append(classes, "too-soon")
	}
	return classes
}

type Month struct {
	Key   MonthKey
	Cells []DayCell
}

func (view View) Cell(day Date) DayCell {
	return DayCell{
		Date:          day,
		Day:           day.Day(),
		IsToday:       day.Equal(view.today),
		IsPast:        view.IsPast(day),
		IsUnavailable: view.IsUnavailable(day),
		IsSelected:    view.IsSelected(day),
		IsInRange:     view.IsInRange(day),
		IsTooSoon:     view.IsTooSoon(day),
	}
}

func (view View) BuildMonth(key MonthKey) Month {
	first := key.FirstDay()
	last := key.Add(1).FirstDay().AddDays(-1)
	leading := mondayOffset(first.Weekday())

	cells := make([]DayCell, 0, leading+last.Day())
	for index := 0; index < leading; index++ {
		cells = append(cells, DayCell{Blank: true})
	}
	for day := first; !day.After(last); day = day.AddDays(1) {
		cells = append(cells, view.Cell(day))
	}
	return Month{Key: key, Cells: cells}
}

func (view View) BuildMonths(first MonthKey, count int) []Month {
	if count < 1 {
		count = 1
	}
	months := make([]Month, 0, count)
	for offset := 0; offset < count; offset++ {
		months = append(months, view.BuildMonth(first.Add(offset)))
	}
	return months
}

func mondayOffset(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}
