package worktime

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestSessionDuration(t *testing.T) {
	cases := []struct {
		name        string
		in, out     *string
		wantSeconds int64
		wantText    string
	}{
		{"four hour morning", strPtr("09:00:00"), strPtr("13:00:00"), 4 * 3600, "04:00"},
		{"with minutes", strPtr("09:15:00"), strPtr("17:45:00"), 8*3600 + 30*60, "08:30"},
		{"seconds floored away", strPtr("09:00:00"), strPtr("09:59:59"), 3599, "00:59"},
		{"short layout", strPtr("08:30"), strPtr("12:00"), 3*3600 + 30*60, "03:30"},
		{"zero length", strPtr("09:00:00"), strPtr("09:00:00"), 0, Placeholder},
		{"out before in", strPtr("13:00:00"), strPtr("09:00:00"), 0, Placeholder},
		{"missing in", nil, strPtr("13:00:00"), 0, Placeholder},
		{"missing out", strPtr("09:00:00"), nil, 0, Placeholder},
		{"both missing", nil, nil, 0, Placeholder},
		{"garbage in", strPtr("not-a-time"), strPtr("13:00:00"), 0, Placeholder},
		{"garbage out", strPtr("09:00:00"), strPtr("25:99"), 0, Placeholder},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SessionDuration(c.in, c.out)
			if got.Seconds != c.wantSeconds {
				t.Errorf("SessionDuration seconds = %d, want %d", got.Seconds, c.wantSeconds)
			}
			if got.Readable != c.wantText {
				t.Errorf("SessionDuration readable = %q, want %q", got.Readable, c.wantText)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, Placeholder},
		{-60, Placeholder},
		{59, "00:00"},
		{60, "00:01"},
		{3600, "01:00"},
		{8 * 3600, "08:00"},
		{10*3600 + 5*60 + 59, "10:05"},
		{100 * 3600, "100:00"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	valid := []string{"00:00:00", "23:59:59", "09:00", "17:30"}
	invalid := []string{"", "24:00:00", "9am", "12:61", "yesterday"}
	for _, s := range valid {
		if _, ok := ParseClock(s); !ok {
			t.Errorf("ParseClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := ParseClock(s); ok {
			t.Errorf("ParseClock(%q) = true, want false", s)
		}
	}
}
