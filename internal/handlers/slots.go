package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/appointease/slot-service/internal/availability"
	"github.com/appointease/slot-service/internal/model"
	"github.com/appointease/slot-service/internal/outbox"
	"github.com/appointease/slot-service/internal/storage"
)

type SlotHandler struct {
	repo       *storage.SlotRepository
	outboxRepo *outbox.Repository
	logger     *slog.Logger
}

func NewSlotHandler(repo *storage.SlotRepository, outboxRepo *outbox.Repository, logger *slog.Logger) *SlotHandler {
	return &SlotHandler{repo: repo, outboxRepo: outboxRepo, logger: logger}
}

// Register wires all slot routes onto the mux.
func (h *SlotHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/slots", h.Slots)
	mux.HandleFunc("/api/slots/range", h.Range)
	mux.HandleFunc("/api/slots/availability", h.MonthAvailability)
	mux.HandleFunc("/api/slots/bulk", h.CreateBulk)
	mux.HandleFunc("/api/slots/{id}", h.SlotByID)
	mux.HandleFunc("/api/slots/{id}/book", h.Book)
}

// Slots dispatches GET /api/slots?date= and POST /api/slots.
func (h *SlotHandler) Slots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listByDate(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SlotHandler) listByDate(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if !model.ValidDate(date) {
		respondError(w, http.StatusBadRequest, "date query parameter must be YYYY-MM-DD")
		return
	}
	slots, err := h.repo.ListByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("list slots failed", "date", date, "err", err)
		respondError(w, http.StatusInternalServerError, "failed to load slots")
		return
	}
	respond(w, http.StatusOK, toSlotPayloads(slots))
}

func (h *SlotHandler) Range(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	start := strings.TrimSpace(r.URL.Query().Get("startDate"))
	end := strings.TrimSpace(r.URL.Query().Get("endDate"))
	if !model.ValidDate(start) || !model.ValidDate(end) {
		respondError(w, http.StatusBadRequest, "startDate and endDate must be YYYY-MM-DD")
		return
	}
	if start > end {
		respondError(w, http.StatusBadRequest, "startDate must not be after endDate")
		return
	}
	slots, err := h.repo.ListByRange(r.Context(), start, end)
	if err != nil {
		h.logger.Error("list slot range failed", "start", start, "end", end, "err", err)
		respondError(w, http.StatusInternalServerError, "failed to load slots")
		return
	}
	respond(w, http.StatusOK, toSlotPayloads(slots))
}

// MonthAvailability returns the per-day occupancy map for one month, keyed
// by YYYY-MM-DD.
func (h *SlotHandler) MonthAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	year, month, err := parseMonthParams(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	byDay, err := h.repo.StatusesByMonth(r.Context(), year, month)
	if err != nil {
		h.logger.Error("month availability failed", "year", year, "month", int(month), "err", err)
		respondError(w, http.StatusInternalServerError, "failed to load availability")
		return
	}
	respond(w, http.StatusOK, availability.SummarizeMonth(byDay))
}

func parseMonthParams(yearRaw, monthRaw string) (int, time.Month, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearRaw))
	if err != nil || year < 1970 || year > 9999 {
		return 0, 0, errors.New("year query parameter must be a four-digit year")
	}
	m, err := strconv.Atoi(strings.TrimSpace(monthRaw))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, errors.New("month query parameter must be 1-12")
	}
	return year, time.Month(m), nil
}

func (h *SlotHandler) create(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	desc, err := descriptorFromRequest(req)
	if err != nil {
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

	slot, err := h.createOne(ctx, tx, desc)
	if err != nil {
		if storage.IsConflict(err) {
			respondError(w, http.StatusConflict, "a slot already exists at this time")
			return
		}
		h.logger.Error("create slot failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to create slot")
		return
	}
	if err := tx.Commit(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	respond(w, http.StatusCreated, toSlotPayload(slot))
}

// CreateBulk persists a pre-expanded descriptor list in one transaction:
// either every slot lands or none do.
func (h *SlotHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Slots []slotRequest `json:"slots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.Slots) == 0 {
		respondError(w, http.StatusBadRequest, "slots must not be empty")
		return
	}

	descs := make([]model.SlotDescriptor, 0, len(req.Slots))
	for i, sr := range req.Slots {
		desc, err := descriptorFromRequest(sr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "slot "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		descs = append(descs, desc)
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := make([]model.Slot, 0, len(descs))
	for _, desc := range descs {
		slot, err := h.createOne(ctx, tx, desc)
		if err != nil {
			if storage.IsConflict(err) {
				respondError(w, http.StatusConflict, "a slot already exists at "+desc.Date+" "+desc.StartTime)
				return
			}
			h.logger.Error("bulk create failed", "err", err)
			respondError(w, http.StatusInternalServerError, "failed to create slots")
			return
		}
		created = append(created, slot)
	}
	if err := tx.Commit(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	respond(w, http.StatusCreated, toSlotPayloads(created))
}

func (h *SlotHandler) createOne(ctx context.Context, tx pgx.Tx, desc model.SlotDescriptor) (model.Slot, error) {
	slot, err := h.repo.CreateTx(ctx, tx, desc)
	if err != nil {
		return model.Slot{}, err
	}
	payload, err := json.Marshal(slotEventPayload(slot))
	if err != nil {
		return model.Slot{}, err
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "slot",
		AggregateID:   slot.ID,
		EventType:     outbox.EventSlotCreated,
		Payload:       payload,
	}); err != nil {
		return model.Slot{}, err
	}
	return slot, nil
}

// SlotByID dispatches GET, PUT and DELETE on /api/slots/{id}.
func (h *SlotHandler) SlotByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respondError(w, http.StatusBadRequest, "slot id required")
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SlotHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	slot, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "slot not found")
			return
		}
		h.logger.Error("get slot failed", "id", id, "err", err)
		respondError(w, http.StatusInternalServerError, "failed to load slot")
		return
	}
	respond(w, http.StatusOK, toSlotPayload(slot))
}

func (h *SlotHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	desc, err := descriptorFromRequest(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	slot, err := h.repo.Update(r.Context(), id, desc)
	if err != nil {
		switch {
		case storage.IsNotFound(err):
			respondError(w, http.StatusNotFound, "slot not found")
		case errors.Is(err, storage.ErrSlotImmutable):
			respondError(w, http.StatusConflict, "booked slots cannot be modified")
		case storage.IsConflict(err):
			respondError(w, http.StatusConflict, "a slot already exists at this time")
		default:
			h.logger.Error("update slot failed", "id", id, "err", err)
			respondError(w, http.StatusInternalServerError, "failed to update slot")
		}
		return
	}
	respond(w, http.StatusOK, toSlotPayload(slot))
}

func (h *SlotHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	slot, err := h.repo.DeleteTx(ctx, tx, id)
	if err != nil {
		if storage.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "slot not found")
			return
		}
		h.logger.Error("delete slot failed", "id", id, "err", err)
		respondError(w, http.StatusInternalServerError, "failed to delete slot")
		return
	}

	payload, err := json.Marshal(slotEventPayload(slot))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build event payload")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "slot",
		AggregateID:   slot.ID,
		EventType:     outbox.EventSlotDeleted,
		Payload:       payload,
	}); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}
	if err := tx.Commit(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	respond(w, http.StatusOK, map[string]string{"id": slot.ID})
}

func slotEventPayload(slot model.Slot) map[string]any {
	payload := map[string]any{
		"slot_id":          slot.ID,
		"date":             slot.Date,
		"start_time":       slot.StartTime,
		"end_time":         slot.EndTime,
		"title":            slot.Title,
		"duration_minutes": slot.DurationMinutes,
		"status":           string(slot.Status),
	}
	if slot.BookedBy != nil {
		payload["client_email"] = slot.BookedBy.Email
	}
	return payload
}
