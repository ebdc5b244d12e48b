package schedule

import (
	"errors"
	"fmt"

	"github.com/appointease/slot-service/internal/model"
)

var (
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrInvalidGap      = errors.New("gap must be zero or more minutes")
	ErrInvalidWindow   = errors.New("day start must be before day end")
)

// Generate produces equal-duration slot descriptors for one date, walking
// from dayStart in strides of durationMinutes+gapMinutes. A slot ending
// exactly at dayEnd is included; the first slot that would end past dayEnd
// stops the walk. An empty result (the window is shorter than one slot) is a
// valid outcome, not an error — callers decide how to report it.
func Generate(date string, dayStart, dayEnd TimeOfDay, durationMinutes, gapMinutes int, title string) ([]model.SlotDescriptor, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidDuration, durationMinutes)
	}
	if gapMinutes < 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidGap, gapMinutes)
	}
	if !dayStart.Before(dayEnd) {
		return nil, fmt.Errorf("%w (%s >= %s)", ErrInvalidWindow, dayStart, dayEnd)
	}
	if !model.ValidDate(date) {
		return nil, fmt.Errorf("invalid date %q", date)
	}

	var slots []model.SlotDescriptor
	cursor := dayStart
	for {
		slotEnd, err := cursor.Add(durationMinutes)
		if err != nil {
			// Past 23:59, so necessarily past dayEnd as well.
			break
		}
		if slotEnd.Compare(dayEnd) > 0 {
			break
		}
		slots = append(slots, model.SlotDescriptor{
			Date:            date,
			StartTime:       cursor.String(),
			EndTime:         slotEnd.String(),
			Title:           title,
			DurationMinutes: durationMinutes,
		})
		cursor, err = slotEnd.Add(gapMinutes)
		if err != nil {
			break
		}
	}
	return slots, nil
}
