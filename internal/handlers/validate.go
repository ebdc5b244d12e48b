package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/appointease/slot-service/internal/model"
	"github.com/appointease/slot-service/internal/schedule"
)

type slotRequest struct {
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

var errEndMismatch = errors.New("end_time must equal start_time plus duration_minutes")

// descriptorFromRequest normalizes and validates a slot request. The
// duration invariant is strict: when duration_minutes is omitted it is
// derived from the times, otherwise end must equal start plus duration.
func descriptorFromRequest(req slotRequest) (model.SlotDescriptor, error) {
	req.Date = strings.TrimSpace(req.Date)
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	req.Title = strings.TrimSpace(req.Title)

	if req.Title == "" {
		return model.SlotDescriptor{}, errors.New("title is required")
	}
	if !model.ValidDate(req.Date) {
		return model.SlotDescriptor{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", req.Date)
	}
	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return model.SlotDescriptor{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return model.SlotDescriptor{}, fmt.Errorf("end_time: %w", err)
	}
	if !start.Before(end) {
		return model.SlotDescriptor{}, errors.New("start_time must be before end_time")
	}

	span := end.Minutes() - start.Minutes()
	switch {
	case req.DurationMinutes == 0:
		req.DurationMinutes = span
	case req.DurationMinutes < 0:
		return model.SlotDescriptor{}, errors.New("duration_minutes must be positive")
	case req.DurationMinutes != span:
		return model.SlotDescriptor{}, errEndMismatch
	}

	return model.SlotDescriptor{
		Date:            req.Date,
		StartTime:       start.String(),
		EndTime:         end.String(),
		Title:           req.Title,
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
	}, nil
}

type bookingRequest struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
	Notes       string `json:"notes"`
}

func clientInfoFromRequest(req bookingRequest) model.ClientInfo {
	return model.ClientInfo{
		Name:  strings.TrimSpace(req.ClientName),
		Email: strings.TrimSpace(req.ClientEmail),
		Phone: strings.TrimSpace(req.ClientPhone),
		Notes: strings.TrimSpace(req.Notes),
	}
}
