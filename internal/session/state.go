// Package session owns the scheduling view state for one user session and
// the mutate-then-refetch protocol that keeps it consistent with the
// persistence layer.
package session

import (
	"time"

	"github.com/appointease/slot-service/internal/model"
)

// Month is a (year, month) calendar scope.
type Month struct {
	Year  int
	Month time.Month
}

// State holds everything the presentation layer renders: the selected date
// and its slot list, the viewed month and its availability map, and the slot
// picked for booking. All transitions go through the methods below; apply
// methods guard against stale fetch results. Not safe for concurrent use —
// a session is a single logical thread of control.
type State struct {
	selectedDate      string
	viewMonth         Month
	slots             []model.Slot
	monthAvailability map[string]model.DayAvailability
	selectedSlot      *model.Slot
}

// NewState starts with the month containing now in view and no date selected.
func NewState(now time.Time) *State {
	return &State{
		viewMonth:         Month{Year: now.Year(), Month: now.Month()},
		monthAvailability: map[string]model.DayAvailability{},
	}
}

func (s *State) SelectedDate() string { return s.selectedDate }
func (s *State) ViewMonth() Month     { return s.viewMonth }

// Slots returns the slot list for the selected date, ordered by start time.
func (s *State) Slots() []model.Slot { return s.slots }

// MonthAvailability returns the per-day summary map for the viewed month.
func (s *State) MonthAvailability() map[string]model.DayAvailability {
	return s.monthAvailability
}

// SelectedSlot returns the slot picked for booking, or nil.
func (s *State) SelectedSlot() *model.Slot { return s.selectedSlot }

// SelectDate picks a date, moves the viewed month to match, and drops any
// pending booking selection. The slot list keeps its previous contents until
// a fetch for this date lands via ApplySlots.
func (s *State) SelectDate(date string) {
	s.selectedDate = date
	s.selectedSlot = nil
	if d, err := time.Parse(model.DateLayout, date); err == nil {
		s.viewMonth = Month{Year: d.Year(), Month: d.Month()}
	}
}

// SetViewMonth changes the availability scope without touching the selected
// date.
func (s *State) SetViewMonth(year int, month time.Month) {
	s.viewMonth = Month{Year: year, Month: month}
}

// ApplySlots installs a fetched slot list iff it is for the currently
// selected date. A response for a date the user has since navigated away
// from is discarded; the return value reports whether the result was taken.
func (s *State) ApplySlots(date string, slots []model.Slot) bool {
	if date != s.selectedDate {
		return false
	}
	s.slots = slots
	return true
}

// ApplyAvailability installs a fetched month map iff it is for the currently
// viewed month.
func (s *State) ApplyAvailability(year int, month time.Month, m map[string]model.DayAvailability) bool {
	if (Month{Year: year, Month: month}) != s.viewMonth {
		return false
	}
	if m == nil {
		m = map[string]model.DayAvailability{}
	}
	s.monthAvailability = m
	return true
}

// SelectSlotForBooking picks a slot for the booking form. Anything other
// than an available slot is a silent no-op.
func (s *State) SelectSlotForBooking(slot model.Slot) bool {
	if slot.Status != model.StatusAvailable {
		return false
	}
	copied := slot
	s.selectedSlot = &copied
	return true
}

// ClearSelectedSlot drops the booking selection unconditionally.
func (s *State) ClearSelectedSlot() {
	s.selectedSlot = nil
}
