package handlers

import (
	"errors"
	"testing"
	"time"
)

func TestDescriptorFromRequest(t *testing.T) {
	desc, err := descriptorFromRequest(slotRequest{
		Date:      " 2026-03-02 ",
		StartTime: "09:00",
		EndTime:   "09:30",
		Title:     "  Consultation ",
	})
	if err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if desc.Date != "2026-03-02" || desc.Title != "Consultation" {
		t.Fatalf("fields not trimmed: %+v", desc)
	}
	if desc.DurationMinutes != 30 {
		t.Fatalf("duration not derived from times: %d", desc.DurationMinutes)
	}
}

func TestDescriptorFromRequest_DurationMustMatchSpan(t *testing.T) {
	base := slotRequest{Date: "2026-03-02", StartTime: "09:00", EndTime: "09:30", Title: "Visit"}

	ok := base
	ok.DurationMinutes = 30
	if _, err := descriptorFromRequest(ok); err != nil {
		t.Fatalf("matching duration rejected: %v", err)
	}

	bad := base
	bad.DurationMinutes = 45
	if _, err := descriptorFromRequest(bad); !errors.Is(err, errEndMismatch) {
		t.Fatalf("expected errEndMismatch, got %v", err)
	}

	neg := base
	neg.DurationMinutes = -30
	if _, err := descriptorFromRequest(neg); err == nil {
		t.Fatal("negative duration accepted")
	}
}

func TestDescriptorFromRequest_Rejects(t *testing.T) {
	cases := []struct {
		name string
		req  slotRequest
	}{
		{"missing title", slotRequest{Date: "2026-03-02", StartTime: "09:00", EndTime: "09:30"}},
		{"bad date", slotRequest{Date: "03/02/2026", StartTime: "09:00", EndTime: "09:30", Title: "V"}},
		{"bad start", slotRequest{Date: "2026-03-02", StartTime: "9am", EndTime: "09:30", Title: "V"}},
		{"bad end", slotRequest{Date: "2026-03-02", StartTime: "09:00", EndTime: "25:00", Title: "V"}},
		{"inverted", slotRequest{Date: "2026-03-02", StartTime: "10:00", EndTime: "09:30", Title: "V"}},
		{"zero span", slotRequest{Date: "2026-03-02", StartTime: "09:30", EndTime: "09:30", Title: "V"}},
	}
	for _, c := range cases {
		if _, err := descriptorFromRequest(c.req); err == nil {
			t.Fatalf("%s: accepted", c.name)
		}
	}
}

func TestClientInfoFromRequest_Trims(t *testing.T) {
	info := clientInfoFromRequest(bookingRequest{
		ClientName:  " Dana Reyes ",
		ClientEmail: " dana@example.com ",
		ClientPhone: " 555-0101 ",
		Notes:       " first visit ",
	})
	if info.Name != "Dana Reyes" || info.Email != "dana@example.com" || info.Phone != "555-0101" || info.Notes != "first visit" {
		t.Fatalf("fields not trimmed: %+v", info)
	}
}

func TestParseMonthParams(t *testing.T) {
	year, month, err := parseMonthParams("2026", "3")
	if err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	if year != 2026 || month != time.March {
		t.Fatalf("got %d %s", year, month)
	}

	for _, c := range [][2]string{{"", "3"}, {"2026", ""}, {"26", "3"}, {"2026", "13"}, {"2026", "0"}, {"twenty", "3"}} {
		if _, _, err := parseMonthParams(c[0], c[1]); err == nil {
			t.Fatalf("accepted year=%q month=%q", c[0], c[1])
		}
	}
}
