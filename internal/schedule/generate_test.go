package schedule

import (
	"errors"
	"testing"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func TestGenerate_FullDay(t *testing.T) {
	slots, err := Generate("2026-03-02", mustTime(t, "09:00"), mustTime(t, "17:00"), 30, 0, "Consultation")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// 8 hours of back-to-back 30-minute slots; the one ending exactly at
	// 17:00 is included.
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	first, last := slots[0], slots[15]
	if first.StartTime != "09:00" || first.EndTime != "09:30" {
		t.Fatalf("first slot %s-%s", first.StartTime, first.EndTime)
	}
	if last.StartTime != "16:30" || last.EndTime != "17:00" {
		t.Fatalf("last slot %s-%s", last.StartTime, last.EndTime)
	}
	for _, s := range slots {
		if s.Date != "2026-03-02" || s.Title != "Consultation" || s.DurationMinutes != 30 {
			t.Fatalf("descriptor fields: %+v", s)
		}
	}
}

func TestGenerate_Gap(t *testing.T) {
	slots, err := Generate("2026-03-02", mustTime(t, "09:00"), mustTime(t, "11:00"), 45, 15, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].EndTime != "09:45" || slots[1].StartTime != "10:00" {
		t.Fatalf("gap not honored: %s then %s", slots[0].EndTime, slots[1].StartTime)
	}
}

func TestGenerate_WindowTooShort(t *testing.T) {
	slots, err := Generate("2026-03-02", mustTime(t, "09:00"), mustTime(t, "09:20"), 30, 0, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestGenerate_StopsAtEndOfDay(t *testing.T) {
	slots, err := Generate("2026-03-02", mustTime(t, "23:00"), mustTime(t, "23:59"), 30, 30, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// 23:00-23:30 fits; advancing past it leaves the day, so the walk stops.
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
}

func TestGenerate_RejectsBadParams(t *testing.T) {
	start, end := mustTime(t, "09:00"), mustTime(t, "17:00")

	if _, err := Generate("2026-03-02", start, end, 0, 0, ""); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("zero duration: %v", err)
	}
	if _, err := Generate("2026-03-02", start, end, -15, 0, ""); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("negative duration: %v", err)
	}
	if _, err := Generate("2026-03-02", start, end, 30, -5, ""); !errors.Is(err, ErrInvalidGap) {
		t.Fatalf("negative gap: %v", err)
	}
	if _, err := Generate("2026-03-02", end, start, 30, 0, ""); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("inverted window: %v", err)
	}
	if _, err := Generate("2026-03-02", start, start, 30, 0, ""); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("empty window: %v", err)
	}
	if _, err := Generate("03/02/2026", start, end, 30, 0, ""); err == nil {
		t.Fatal("expected error for bad date")
	}
}
