package schedule

import (
	"errors"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("parse 09:30: %v", err)
	}
	if got.Minutes() != 9*60+30 {
		t.Fatalf("expected 570 minutes, got %d", got.Minutes())
	}
	if got.String() != "09:30" {
		t.Fatalf("expected 09:30, got %s", got)
	}

	midnight, err := ParseTimeOfDay("00:00")
	if err != nil {
		t.Fatalf("parse 00:00: %v", err)
	}
	if midnight.Minutes() != 0 {
		t.Fatalf("expected 0 minutes, got %d", midnight.Minutes())
	}

	last, err := ParseTimeOfDay("23:59")
	if err != nil {
		t.Fatalf("parse 23:59: %v", err)
	}
	if last.Minutes() != 23*60+59 {
		t.Fatalf("expected 1439 minutes, got %d", last.Minutes())
	}
}

func TestParseTimeOfDay_Rejects(t *testing.T) {
	for _, s := range []string{"", "9:30", "09:3", "24:00", "12:60", "ab:cd", "09-30", "09:30:00", " 9:30"} {
		if _, err := ParseTimeOfDay(s); !errors.Is(err, ErrBadTimeFormat) {
			t.Fatalf("expected ErrBadTimeFormat for %q, got %v", s, err)
		}
	}
}

func TestAdd(t *testing.T) {
	start, _ := ParseTimeOfDay("09:00")
	end, err := start.Add(90)
	if err != nil {
		t.Fatalf("add 90: %v", err)
	}
	if end.String() != "10:30" {
		t.Fatalf("expected 10:30, got %s", end)
	}

	back, err := end.Add(-90)
	if err != nil {
		t.Fatalf("add -90: %v", err)
	}
	if back.Compare(start) != 0 {
		t.Fatalf("expected %s, got %s", start, back)
	}
}

func TestAdd_NoRollover(t *testing.T) {
	late, _ := ParseTimeOfDay("23:30")
	if _, err := late.Add(60); !errors.Is(err, ErrOutsideDay) {
		t.Fatalf("expected ErrOutsideDay past midnight, got %v", err)
	}

	early, _ := ParseTimeOfDay("00:10")
	if _, err := early.Add(-20); !errors.Is(err, ErrOutsideDay) {
		t.Fatalf("expected ErrOutsideDay before midnight, got %v", err)
	}

	// 23:59 is the last representable minute; landing on it exactly is fine.
	edge, _ := ParseTimeOfDay("23:00")
	got, err := edge.Add(59)
	if err != nil {
		t.Fatalf("add to 23:59: %v", err)
	}
	if got.String() != "23:59" {
		t.Fatalf("expected 23:59, got %s", got)
	}
}

func TestCompare(t *testing.T) {
	a, _ := ParseTimeOfDay("08:00")
	b, _ := ParseTimeOfDay("08:01")
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Fatalf("compare ordering broken: %d %d %d", a.Compare(b), b.Compare(a), a.Compare(a))
	}
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("Before disagrees with Compare")
	}
}
