package model

import "time"

type SlotStatus string

const (
	StatusAvailable SlotStatus = "available"
	StatusBooked    SlotStatus = "booked"
	StatusBlocked   SlotStatus = "blocked"
)

// SlotDescriptor is an unsaved slot as entered by an operator or produced by
// the bulk generator. Dates are calendar dates (YYYY-MM-DD), times are
// wall-clock HH:MM; the invariant EndTime == StartTime + DurationMinutes
// is enforced before a descriptor reaches storage.
type SlotDescriptor struct {
	Date            string
	StartTime       string
	EndTime         string
	Title           string
	Description     string
	DurationMinutes int
}

// Slot is a persisted slot. BookedBy is set iff Status is booked.
type Slot struct {
	ID              string
	Date            string
	StartTime       string
	EndTime         string
	Title           string
	Description     string
	DurationMinutes int
	Status          SlotStatus
	BookedBy        *ClientInfo
	CreatedAt       time.Time
}

// DayAvailability is the occupancy tally for one calendar date. Blocked
// slots count toward Total only, so Available+Booked < Total is a normal
// state whenever blocked slots exist.
type DayAvailability struct {
	Available int `json:"available"`
	Booked    int `json:"booked"`
	Total     int `json:"total"`
}

const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil && len(s) == len(DateLayout)
}
