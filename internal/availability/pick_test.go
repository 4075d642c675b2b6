package availability

import (
	"errors"
	"testing"
)

func TestPickScenarioCompletesFreeRange(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	today := calendar.Today()

	state, outcome := calendar.Pick(Selection{}, mustDate(t, "2026-04-20"), today)
	if !outcome.Accepted || !outcome.Changed {
		t.Fatalf("expected accepted first pick, got %+v", outcome)
	}
	if !state.IsPending() || state.Start != mustDate(t, "2026-04-20") {
		t.Fatalf("expected pending 2026-04-20, got %+v", state)
	}

	state, outcome = calendar.Pick(state, mustDate(t, "2026-04-25"), today)
	if !outcome.Accepted {
		t.Fatalf("expected accepted second pick, got %+v", outcome)
	}
	if !state.IsComplete() || state.End != mustDate(t, "2026-04-25") {
		t.Fatalf("expected complete range ending 2026-04-25, got %+v", state)
	}
	if state.Nights() != 5 {
		t.Fatalf("expected 5 nights, got %d", state.Nights())
	}
}

func TestPickRangeAcrossBlackoutResetsSelection(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	pending := PendingSelection(mustDate(t, "2026-04-20"))

	state, outcome := calendar.Pick(pending, mustDate(t, "2026-05-20"), calendar.Today())
	if outcome.Accepted || outcome.Reason != ReasonRangeContainsUnavailable {
		t.Fatalf("expected range_contains_unavailable, got %+v", outcome)
	}
	if !state.IsEmpty() {
		t.Fatalf("expected selection reset to empty, got %+v", state)
	}
	if !errors.Is(outcome.Err(), ErrRangeUnavailable) {
		t.Fatalf("expected ErrRangeUnavailable, got %v", outcome.Err())
	}
}

func TestPickClosingOnBlackoutDayKeepsPendingStart(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	today := calendar.Today()

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "long enough stay", start: "2026-04-20", end: "2026-05-01"},
		{name: "inside the closure", start: "2026-04-20", end: "2026-05-10"},
		{name: "short stay", start: "2026-04-29", end: "2026-05-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pending := PendingSelection(mustDate(t, tt.start))
			state, outcome := calendar.Pick(pending, mustDate(t, tt.end), today)
			if outcome.Accepted || outcome.Reason != ReasonPastOrUnavailable || outcome.Changed {
				t.Fatalf("expected unchanged past_or_unavailable rejection, got %+v", outcome)
			}
			if state != pending {
				t.Fatalf("expected pending start kept, got %+v", state)
			}
		})
	}
}

func TestPickBlackoutDayBeforePendingStartIsRejected(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	pending := PendingSelection(mustDate(t, "2026-05-20"))

	state, outcome := calendar.Pick(pending, mustDate(t, "2026-05-10"), calendar.Today())
	if outcome.Accepted || outcome.Reason != ReasonPastOrUnavailable {
		t.Fatalf("expected past_or_unavailable, got %+v", outcome)
	}
	if state != pending {
		t.Fatalf("expected state unchanged, got %+v", state)
	}
}

func TestPickBeyondHorizonIsRejected(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	today := calendar.Today()
	pending := PendingSelection(mustDate(t, "2026-04-20"))

	if _, outcome := calendar.Pick(pending, mustDate(t, "2028-01-31"), today); !outcome.Accepted {
		t.Fatalf("expected last horizon day to close the range, got %+v", outcome)
	}
	for _, raw := range []string{"2028-02-01", "9999-12-31"} {
		state, outcome := calendar.Pick(pending, mustDate(t, raw), today)
		if outcome.Reason != ReasonPastOrUnavailable || state != pending {
			t.Fatalf("pick %s: expected past_or_unavailable without change, got %+v %+v", raw, state, outcome)
		}
	}
}

func TestPickTooShortStayKeepsPendingStart(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	pending := PendingSelection(mustDate(t, "2026-04-20"))

	state, outcome := calendar.Pick(pending, mustDate(t, "2026-04-22"), calendar.Today())
	if outcome.Accepted || outcome.Reason != ReasonMinStay || outcome.Changed {
		t.Fatalf("expected unchanged min_stay rejection, got %+v", outcome)
	}
	if state != pending {
		t.Fatalf("expected pending start kept, got %+v", state)
	}
}

func TestPickRejectsPastAndUnavailableDays(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	today := calendar.Today()
	states := []Selection{
		{},
		PendingSelection(mustDate(t, "2026-04-20")),
		{Start: mustDate(t, "2026-04-20"), End: mustDate(t, "2026-04-25")},
	}
	blocked := []string{"2026-03-31", "2025-12-24", "2026-05-01", "2026-05-07", "2026-05-14"}

	for _, state := range states {
		for _, raw := range blocked {
			next, outcome := calendar.Pick(state, mustDate(t, raw), today)
			if outcome.Accepted {
				t.Fatalf("pick %s from %s: expected rejection, got %+v", raw, state.Phase(), outcome)
			}
			if outcome.Reason != ReasonPastOrUnavailable {
				t.Fatalf("pick %s from %s: expected past_or_unavailable, got %+v", raw, state.Phase(), outcome)
			}
			if next != state {
				t.Fatalf("pick %s from %s: expected unchanged state, got %+v", raw, state.Phase(), next)
			}
		}
	}
}

func TestPickTodayIsSelectable(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	today := calendar.Today()

	state, outcome := calendar.Pick(Selection{}, today, today)
	if !outcome.Accepted || state.Start != today {
		t.Fatalf("expected today to start a selection, got %+v %+v", state, outcome)
	}
}

func TestPickTransitions(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	today := calendar.Today()
	start := mustDate(t, "2026-04-20")

	t.Run("complete restarts", func(t *testing.T) {
		complete := Selection{Start: start, End: mustDate(t, "2026-04-25")}
		state, outcome := calendar.Pick(complete, mustDate(t, "2026-06-01"), today)
		if !outcome.Accepted || state != PendingSelection(mustDate(t, "2026-06-01")) {
			t.Fatalf("expected restart as pending, got %+v %+v", state, outcome)
		}
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		state, outcome := calendar.Pick(PendingSelection(start), start, today)
		if !outcome.Accepted || outcome.Changed || state != PendingSelection(start) {
			t.Fatalf("expected no-op, got %+v %+v", state, outcome)
		}
	})

	t.Run("earlier day moves start", func(t *testing.T) {
		state, outcome := calendar.Pick(PendingSelection(start), mustDate(t, "2026-04-10"), today)
		if !outcome.Accepted || state != PendingSelection(mustDate(t, "2026-04-10")) {
			t.Fatalf("expected moved start, got %+v %+v", state, outcome)
		}
	})

	t.Run("exact minimum stay completes", func(t *testing.T) {
		state, outcome := calendar.Pick(PendingSelection(start), start.AddDays(4), today)
		if !outcome.Accepted || !state.IsComplete() || state.Nights() != 4 {
			t.Fatalf("expected 4-night range, got %+v %+v", state, outcome)
		}
	})

	t.Run("checkout on day before closure completes", func(t *testing.T) {
		state, outcome := calendar.Pick(PendingSelection(start), mustDate(t, "2026-04-30"), today)
		if !outcome.Accepted || !state.IsComplete() {
			t.Fatalf("expected complete range, got %+v %+v", state, outcome)
		}
	})

	t.Run("zero date is invalid", func(t *testing.T) {
		state, outcome := calendar.Pick(PendingSelection(start), Date{}, today)
		if outcome.Accepted || outcome.Reason != ReasonInvalidFormat || state != PendingSelection(start) {
			t.Fatalf("expected invalid_format without change, got %+v %+v", state, outcome)
		}
	})
}

func TestPickLongFreeRangesAlwaysComplete(t *testing.T) {
	calendar := newMayClosureCalendar(t)
	today := calendar.Today()
	first := mustDate(t, "2026-05-15")

	for offset := 0; offset < 60; offset++ {
		start := first.AddDays(offset)
		for length := 4; length < 30; length++ {
			end := start.AddDays(length)
			state, _ := calendar.Pick(Selection{}, start, today)
			state, outcome := calendar.Pick(state, end, today)
			if !outcome.Accepted || state != (Selection{Start: start, End: end}) {
				t.Fatalf("expected %s..%s to complete, got %+v %+v", start, end, state, outcome)
			}
		}
	}
}

func TestPickHonoursConfiguredMinimumStay(t *testing.T) {
	calendar, err := NewCalendar(nil, WithMinNights(7), WithClock(fixedClock(mustDate(t, "2026-04-01").Time())))
	if err != nil {
		t.Fatalf("new calendar: %v", err)
	}
	start := mustDate(t, "2026-04-20")

	_, outcome := calendar.Pick(PendingSelection(start), start.AddDays(6), calendar.Today())
	if outcome.Reason != ReasonMinStay {
		t.Fatalf("expected min_stay with 7-night minimum, got %+v", outcome)
	}
}
