package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/appointease/slot-service/internal/model"
	"github.com/appointease/slot-service/internal/schedule"
)

// Collaborator is the persistence contract the session reconciles against.
// It is transport-agnostic: the pgx repository satisfies it in-process and
// the HTTP client satisfies it over the API.
type Collaborator interface {
	FetchSlotsForDate(ctx context.Context, date string) ([]model.Slot, error)
	FetchMonthAvailability(ctx context.Context, year int, month time.Month) (map[string]model.DayAvailability, error)
	CreateSlot(ctx context.Context, desc model.SlotDescriptor) (model.Slot, error)
	CreateSlotsBulk(ctx context.Context, descs []model.SlotDescriptor) ([]model.Slot, error)
	DeleteSlot(ctx context.Context, id string) error
	BookSlot(ctx context.Context, id string, client model.ClientInfo) error
}

var (
	// ErrNoSlots means bulk parameters yielded zero slots. Reported to the
	// user; nothing was sent to the collaborator.
	ErrNoSlots = errors.New("no slots could be generated from the given window")
	// ErrNoSelection means an operation needed a selected date or slot.
	ErrNoSelection = errors.New("nothing is selected")
	ErrBadDate     = errors.New("date must be YYYY-MM-DD")
)

// Session couples a State with a Collaborator. Every mutation follows the
// same contract: send the mutation, and only on success refetch the selected
// date's slots and the viewed month's availability. On mutation failure the
// state is left exactly as it was; the user retries explicitly. The state is
// never patched locally from a prediction of the mutation's effect.
type Session struct {
	state  *State
	api    Collaborator
	logger *slog.Logger
}

func New(api Collaborator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		state:  NewState(time.Now()),
		api:    api,
		logger: logger,
	}
}

// State exposes the view state read-only (callers must not mutate through it
// beyond the defined operations).
func (s *Session) State() *State { return s.state }

// SelectDate picks a date and refreshes both the slot list and the month
// availability for the month the date lives in.
func (s *Session) SelectDate(ctx context.Context, date string) error {
	if !model.ValidDate(date) {
		return fmt.Errorf("%w (got %q)", ErrBadDate, date)
	}
	s.state.SelectDate(date)
	return s.refresh(ctx)
}

// SetViewMonth changes the calendar scope and refetches its availability.
func (s *Session) SetViewMonth(ctx context.Context, year int, month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("month out of range: %d", month)
	}
	s.state.SetViewMonth(year, month)
	m, err := s.api.FetchMonthAvailability(ctx, year, month)
	if err != nil {
		return fmt.Errorf("fetch month availability: %w", err)
	}
	s.state.ApplyAvailability(year, month, m)
	return nil
}

// AddSlots persists descriptors for the selected date: one descriptor goes
// through single create, several through bulk create.
func (s *Session) AddSlots(ctx context.Context, descs []model.SlotDescriptor) ([]model.Slot, error) {
	if s.state.SelectedDate() == "" {
		return nil, ErrNoSelection
	}
	if len(descs) == 0 {
		return nil, ErrNoSlots
	}

	var created []model.Slot
	if len(descs) == 1 {
		slot, err := s.api.CreateSlot(ctx, descs[0])
		if err != nil {
			return nil, err
		}
		created = []model.Slot{slot}
	} else {
		slots, err := s.api.CreateSlotsBulk(ctx, descs)
		if err != nil {
			return nil, err
		}
		created = slots
	}
	return created, s.refresh(ctx)
}

// GenerateSlots expands day-level bulk parameters into descriptors and
// persists them. Zero generated slots is reported as ErrNoSlots without
// calling the collaborator.
func (s *Session) GenerateSlots(ctx context.Context, dayStart, dayEnd string, durationMinutes, gapMinutes int, title string) ([]model.Slot, error) {
	date := s.state.SelectedDate()
	if date == "" {
		return nil, ErrNoSelection
	}
	start, err := schedule.ParseTimeOfDay(dayStart)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseTimeOfDay(dayEnd)
	if err != nil {
		return nil, err
	}
	descs, err := schedule.Generate(date, start, end, durationMinutes, gapMinutes, title)
	if err != nil {
		return nil, err
	}
	if len(descs) == 0 {
		return nil, ErrNoSlots
	}
	return s.AddSlots(ctx, descs)
}

// DeleteSlot removes a slot and reconciles.
func (s *Session) DeleteSlot(ctx context.Context, id string) error {
	if err := s.api.DeleteSlot(ctx, id); err != nil {
		return err
	}
	return s.refresh(ctx)
}

// SelectSlotForBooking mirrors the state operation; false means the slot was
// not bookable and nothing changed.
func (s *Session) SelectSlotForBooking(slot model.Slot) bool {
	return s.state.SelectSlotForBooking(slot)
}

// ClearSelectedSlot abandons the booking form.
func (s *Session) ClearSelectedSlot() {
	s.state.ClearSelectedSlot()
}

// BookSlot books the selected slot for the given client. Validation and
// collaborator failures keep the selection so the user can retry the same
// slot; only a successful booking clears it.
func (s *Session) BookSlot(ctx context.Context, client model.ClientInfo) error {
	slot := s.state.SelectedSlot()
	if slot == nil {
		return ErrNoSelection
	}
	if err := client.Validate(); err != nil {
		return err
	}
	if err := s.api.BookSlot(ctx, slot.ID, client); err != nil {
		return err
	}
	s.state.ClearSelectedSlot()
	return s.refresh(ctx)
}

// refresh re-derives state from the source of truth: the selected date's
// slot list and the viewed month's availability. Results are applied through
// the guarded operations, so a response for a superseded selection is
// discarded. The availability leg is best-effort (logged, not returned); a
// failed slot fetch is surfaced because the list on screen would otherwise
// be silently stale.
func (s *Session) refresh(ctx context.Context) error {
	vm := s.state.ViewMonth()
	if m, err := s.api.FetchMonthAvailability(ctx, vm.Year, vm.Month); err != nil {
		s.logger.Warn("month availability refresh failed", "year", vm.Year, "month", int(vm.Month), "err", err)
	} else {
		s.state.ApplyAvailability(vm.Year, vm.Month, m)
	}

	date := s.state.SelectedDate()
	if date == "" {
		return nil
	}
	slots, err := s.api.FetchSlotsForDate(ctx, date)
	if err != nil {
		return fmt.Errorf("refresh slots for %s: %w", date, err)
	}
	s.state.ApplySlots(date, slots)
	return nil
}
