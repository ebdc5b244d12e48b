package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/appointease/slot-service/internal/model"
)

func TestRespondEnvelope(t *testing.T) {
	rw := httptest.NewRecorder()
	respond(rw, http.StatusOK, map[string]int{"n": 1})

	if rw.Code != http.StatusOK {
		t.Fatalf("status %d", rw.Code)
	}
	if ct := rw.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	var env struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data["n"] != 1 {
		t.Fatalf("envelope %+v", env)
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	rw := httptest.NewRecorder()
	respondError(rw, http.StatusConflict, "slot taken")

	if rw.Code != http.StatusConflict {
		t.Fatalf("status %d", rw.Code)
	}
	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Message != "slot taken" {
		t.Fatalf("envelope %+v", env)
	}
}

func TestToSlotPayload(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	slot := model.Slot{
		ID:              "s1",
		Date:            "2026-03-02",
		StartTime:       "09:00",
		EndTime:         "09:30",
		Title:           "Visit",
		DurationMinutes: 30,
		Status:          model.StatusBooked,
		BookedBy:        &model.ClientInfo{Name: "Dana", Email: "dana@example.com"},
		CreatedAt:       created,
	}
	p := toSlotPayload(slot)
	if p.Status != "booked" || p.BookedBy == nil || p.BookedBy.Name != "Dana" {
		t.Fatalf("payload %+v", p)
	}
	if p.CreatedAt != "2026-03-01T12:00:00Z" {
		t.Fatalf("created_at %q", p.CreatedAt)
	}

	open := toSlotPayload(model.Slot{ID: "s2", Status: model.StatusAvailable})
	if open.BookedBy != nil {
		t.Fatal("booked_by set for an unbooked slot")
	}
}
