package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/appointease/slot-service/internal/model"
)

// apiResponse is the envelope the web client consumes: data on success,
// message on failure.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type slotPayload struct {
	ID              string           `json:"id"`
	Date            string           `json:"date"`
	StartTime       string           `json:"start_time"`
	EndTime         string           `json:"end_time"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
	Status          string           `json:"status"`
	BookedBy        *bookedByPayload `json:"booked_by,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
}

type bookedByPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

func toSlotPayload(slot model.Slot) slotPayload {
	p := slotPayload{
		ID:              slot.ID,
		Date:            slot.Date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		Title:           slot.Title,
		Description:     slot.Description,
		DurationMinutes: slot.DurationMinutes,
		Status:          string(slot.Status),
	}
	if !slot.CreatedAt.IsZero() {
		p.CreatedAt = slot.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if slot.BookedBy != nil {
		p.BookedBy = &bookedByPayload{
			Name:  slot.BookedBy.Name,
			Email: slot.BookedBy.Email,
			Phone: slot.BookedBy.Phone,
			Notes: slot.BookedBy.Notes,
		}
	}
	return p
}

func toSlotPayloads(slots []model.Slot) []slotPayload {
	out := make([]slotPayload, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotPayload(s))
	}
	return out
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: false, Message: message})
}
