package models

import "time"

// BusinessWindow is the open/close time-of-day pair for one weekday.
// A nil *BusinessWindow means closed all day.
type BusinessWindow struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// Interval is a pair of timezone-aware instants. Start is strictly before
// End once an interval has been normalized and clipped.
type Interval struct {
	Start time.Time
	End   time.Time
}

// AvailabilityResponse is the per-request result of the slot computation.
// It is built fresh for every request and never cached.
type AvailabilityResponse struct {
	Date        string   `json:"date"`
	Timezone    string   `json:"timezone"`
	SlotMinutes int      `json:"slot_minutes"`
	Slots       []string `json:"slots"`
	Configured  bool     `json:"configured"`
}
