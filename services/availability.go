package services

import (
	"context"
	"fmt"
	"time"

	"bookable/models"
)

const dateLayout = "2006-01-02"

// AvailabilityService defines methods for computing open appointment slots.
type AvailabilityService interface {
	GetAvailability(ctx context.Context, date string, slotMinutes int) (models.AvailabilityResponse, error)
	Configured() bool
	Timezone() string
}

// DefaultAvailabilityService is a concrete implementation. All fields are
// read-only after construction, so it is safe for concurrent requests.
type DefaultAvailabilityService struct {
	Feed     *FeedClient
	Location *time.Location
	TZName   string
}

// GetAvailability computes the free slot start times for the given date.
// The pipeline is resolve hours -> fetch busy intervals -> enumerate slots;
// a closed day short-circuits before the calendar fetch. The only error is
// a malformed date, which callers are expected to reject beforehand.
func (s *DefaultAvailabilityService) GetAvailability(ctx context.Context, date string, slotMinutes int) (models.AvailabilityResponse, error) {
	res := models.AvailabilityResponse{
		Date:        date,
		Timezone:    s.TZName,
		SlotMinutes: slotMinutes,
		Slots:       []string{},
		Configured:  s.Configured(),
	}

	day, err := time.ParseInLocation(dateLayout, date, s.Location)
	if err != nil {
		return res, fmt.Errorf("invalid date %q: %w", date, err)
	}

	window := BusinessHours(day)
	if window == nil {
		return res, nil
	}

	open := time.Date(day.Year(), day.Month(), day.Day(), window.OpenHour, window.OpenMinute, 0, 0, s.Location)
	close := time.Date(day.Year(), day.Month(), day.Day(), window.CloseHour, window.CloseMinute, 0, 0, s.Location)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.Location)

	busy := s.Feed.BusyIntervals(ctx, dayStart, s.Location)

	for _, slot := range FreeSlots(open, close, busy, time.Duration(slotMinutes)*time.Minute) {
		res.Slots = append(res.Slots, slot.Format(time.RFC3339))
	}
	return res, nil
}

// Configured reports whether a calendar feed URL is set.
func (s *DefaultAvailabilityService) Configured() bool {
	return s.Feed.Configured()
}

// Timezone returns the IANA zone name the service operates in.
func (s *DefaultAvailabilityService) Timezone() string {
	return s.TZName
}
