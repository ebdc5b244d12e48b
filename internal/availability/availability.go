// Package availability reduces slot collections into the per-day occupancy
// summaries the calendar renders.
package availability

import "github.com/appointease/slot-service/internal/model"

// DayClass is the calendar indicator for one date.
type DayClass string

const (
	ClassNone      DayClass = "none"
	ClassAvailable DayClass = "available"
	ClassMixed     DayClass = "mixed"
	ClassBooked    DayClass = "booked"
)

// Summarize tallies one date's slots. Blocked slots inflate Total without
// appearing in either counter.
func Summarize(slots []model.Slot) model.DayAvailability {
	var info model.DayAvailability
	for _, s := range slots {
		info.Total++
		switch s.Status {
		case model.StatusAvailable:
			info.Available++
		case model.StatusBooked:
			info.Booked++
		}
	}
	return info
}

// SummarizeStatuses is Summarize over bare statuses, for callers that hold
// per-day status lists rather than full slots.
func SummarizeStatuses(statuses []model.SlotStatus) model.DayAvailability {
	var info model.DayAvailability
	for _, st := range statuses {
		info.Total++
		switch st {
		case model.StatusAvailable:
			info.Available++
		case model.StatusBooked:
			info.Booked++
		}
	}
	return info
}

// Classify maps a summary to its calendar indicator. A day holding only
// blocked slots (total > 0 but neither counter set) classifies as available;
// that mirrors how the calendar has always rendered such days and is kept
// deliberately.
func Classify(info model.DayAvailability) DayClass {
	switch {
	case info.Total == 0:
		return ClassNone
	case info.Booked == info.Total:
		return ClassBooked
	case info.Available > 0 && info.Booked > 0:
		return ClassMixed
	default:
		return ClassAvailable
	}
}

// SummarizeMonth reduces per-date status lists independently; there is no
// cross-day state. Keys are YYYY-MM-DD dates.
func SummarizeMonth(byDay map[string][]model.SlotStatus) map[string]model.DayAvailability {
	out := make(map[string]model.DayAvailability, len(byDay))
	for date, statuses := range byDay {
		out[date] = SummarizeStatuses(statuses)
	}
	return out
}
