package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/appointease/slot-service/internal/model"
)

func TestFetchSlotsForDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/slots" {
			t.Fatalf("path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2026-03-02" {
			t.Fatalf("date param %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"id":               "s1",
				"date":             "2026-03-02",
				"start_time":       "09:00",
				"end_time":         "09:30",
				"title":            "Visit",
				"duration_minutes": 30,
				"status":           "booked",
				"booked_by":        map[string]string{"name": "Dana", "email": "dana@example.com"},
			}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	slots, err := c.FetchSlotsForDate(context.Background(), "2026-03-02")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	s := slots[0]
	if s.ID != "s1" || s.Status != model.StatusBooked {
		t.Fatalf("slot %+v", s)
	}
	if s.BookedBy == nil || s.BookedBy.Name != "Dana" {
		t.Fatalf("booked_by %+v", s.BookedBy)
	}
}

func TestErrorUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "a slot already exists at this time",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.CreateSlot(context.Background(), model.SlotDescriptor{Date: "2026-03-02"})
	if err == nil || err.Error() != "a slot already exists at this time" {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	if err := c.DeleteSlot(context.Background(), "s1"); err == nil {
		t.Fatal("expected error for non-envelope response")
	}
}

func TestBookSlot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/slots/s1/book" {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["client_name"] != "Dana" || body["client_email"] != "dana@example.com" {
			t.Fatalf("body %+v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	err := c.BookSlot(context.Background(), "s1", model.ClientInfo{Name: "Dana", Email: "dana@example.com"})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
}

func TestCreateSlotsBulk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/slots/bulk" {
			t.Fatalf("path %s", r.URL.Path)
		}
		var body struct {
			Slots []json.RawMessage `json:"slots"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Slots) != 2 {
			t.Fatalf("expected 2 slots in body, got %d", len(body.Slots))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": "a"}, {"id": "b"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	created, err := c.CreateSlotsBulk(context.Background(), []model.SlotDescriptor{
		{Date: "2026-03-02", StartTime: "09:00"},
		{Date: "2026-03-02", StartTime: "09:30"},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(created))
	}
}
