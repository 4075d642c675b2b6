package availability

import (
	"errors"
	"testing"
)

func TestParseDisplay(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "20.04.2026", want: "2026-04-20"},
		{raw: " 01.05.2026 ", want: "2026-05-01"},
		{raw: "1.5.2026", wantErr: true},
		{raw: "01.5.2026", wantErr: true},
		{raw: "1.05.2026", wantErr: true},
		{raw: "001.05.2026", wantErr: true},
		{raw: "29.02.2028", want: "2028-02-29"},
		{raw: "29.02.2026", wantErr: true},
		{raw: "31.04.2026", wantErr: true},
		{raw: "2026-04-20", wantErr: true},
		{raw: "20/04/2026", wantErr: true},
		{raw: "20.04", wantErr: true},
		{raw: "20.04.2026.1", wantErr: true},
		{raw: "aa.04.2026", wantErr: true},
		{raw: "20.04.26", wantErr: true},
		{raw: "+1.04.2026", wantErr: true},
		{raw: "00.04.2026", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDisplay(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("expected ErrInvalidFormat, got %v (%s)", err, got)
				}
				if ReasonOf(err) != ReasonInvalidFormat {
					t.Fatalf("expected reason %q, got %q", ReasonInvalidFormat, ReasonOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("ParseDisplay(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatDisplayRoundTrip(t *testing.T) {
	day := mustDate(t, "2026-04-05")
	formatted := FormatDisplay(day)
	if formatted != "05.04.2026" {
		t.Fatalf("expected 05.04.2026, got %q", formatted)
	}
	parsed, err := ParseDisplay(formatted)
	if err != nil || parsed != day {
		t.Fatalf("expected round trip to %s, got %s (err=%v)", day, parsed, err)
	}
	if FormatDisplay(Date{}) != "" {
		t.Fatal("expected zero date to format as empty string")
	}
}

func TestParseOptionalDisplayAllowsBlank(t *testing.T) {
	day, err := ParseOptionalDisplay("   ")
	if err != nil || !day.IsZero() {
		t.Fatalf("expected zero date without error, got %s (err=%v)", day, err)
	}
}

func TestParseISORejectsDisplayFormat(t *testing.T) {
	if _, err := ParseISO("01.05.2026"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}
