package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/appointease/slot-service/internal/model"
	"github.com/appointease/slot-service/internal/outbox"
	"github.com/appointease/slot-service/internal/storage"
)

// Book handles POST /api/slots/{id}/book. The conditional update in the
// repository decides races between concurrent bookings of the same slot.
func (h *SlotHandler) Book(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respondError(w, http.StatusBadRequest, "slot id required")
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	client := clientInfoFromRequest(req)
	if err := client.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	slot, err := h.repo.BookTx(ctx, tx, id, client)
	if err != nil {
		switch {
		case storage.IsNotFound(err):
			respondError(w, http.StatusNotFound, "slot not found")
		case errors.Is(err, storage.ErrSlotUnavailable):
			respondError(w, http.StatusConflict, "slot is no longer available")
		default:
			h.logger.Error("book slot failed", "id", id, "err", err)
			respondError(w, http.StatusInternalServerError, "failed to book slot")
		}
		return
	}

	payload, err := json.Marshal(bookingEventPayload(slot, client))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build event payload")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "slot",
		AggregateID:   slot.ID,
		EventType:     outbox.EventSlotBooked,
		Payload:       payload,
	}); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}
	if err := tx.Commit(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	respond(w, http.StatusOK, toSlotPayload(slot))
}

func bookingEventPayload(slot model.Slot, client model.ClientInfo) map[string]any {
	return map[string]any{
		"slot_id":      slot.ID,
		"date":         slot.Date,
		"start_time":   slot.StartTime,
		"end_time":     slot.EndTime,
		"title":        slot.Title,
		"client_name":  client.Name,
		"client_email": client.Email,
		"client_phone": client.Phone,
	}
}
