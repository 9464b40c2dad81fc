package weekkey

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeSnapsToSunday(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-08-04", "2024-08-04"}, // already a Sunday
		{"2024-08-05", "2024-08-04"}, // Monday
		{"2024-08-10", "2024-08-04"}, // Saturday
		{"2024-08-11", "2024-08-11"}, // next Sunday
	}
	for _, tc := range cases {
		in, err := time.Parse(Layout, tc.in)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.in, err)
		}
		if got := Normalize(in); got != tc.want {
			t.Fatalf("Normalize(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestUpcomingPicksNextService(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-08-04", "2024-08-04"}, // Sunday stays
		{"2024-08-05", "2024-08-11"}, // Monday rolls forward
		{"2024-08-10", "2024-08-11"}, // Saturday rolls forward
	}
	for _, tc := range cases {
		in, _ := time.Parse(Layout, tc.in)
		if got := Upcoming(in); got != tc.want {
			t.Fatalf("Upcoming(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-date", "2024-13-40", "08/04/2024"} {
		if _, err := Parse(raw); !errors.Is(err, ErrInvalid) {
			t.Fatalf("Parse(%q): expected ErrInvalid, got %v", raw, err)
		}
	}
}

func TestParseNormalizesMidWeek(t *testing.T) {
	got, err := Parse("2024-08-07")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "2024-08-04" {
		t.Fatalf("expected 2024-08-04, got %s", got)
	}
}

func TestRangeEnumeratesSundays(t *testing.T) {
	keys, err := Range("2024-08-01", "2024-08-31")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	want := []string{"2024-07-28", "2024-08-04", "2024-08-11", "2024-08-18", "2024-08-25"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d weeks, got %d: %v", len(want), len(keys), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("week %d: expected %s, got %s", i, want[i], keys[i])
		}
	}
}

func TestRangeRejectsInvertedBounds(t *testing.T) {
	if _, err := Range("2024-08-31", "2024-08-01"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
