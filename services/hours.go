package services

import (
	"time"

	"bookable/models"
)

// BusinessHours maps a date to its open/close window. The policy is fixed:
// Mon-Fri 09:00-18:00, Sat 10:00-14:00, Sun closed (nil).
func BusinessHours(day time.Time) *models.BusinessWindow {
	switch day.Weekday() {
	case time.Saturday:
		return &models.BusinessWindow{OpenHour: 10, CloseHour: 14}
	case time.Sunday:
		return nil
	default:
		return &models.BusinessWindow{OpenHour: 9, CloseHour: 18}
	}
}
