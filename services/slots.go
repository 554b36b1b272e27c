package services

import (
	"time"

	"bookable/models"
)

// FreeSlots walks the window [open, close) in fixed slot-sized steps and
// returns each start whose slot fits before close and does not overlap any
// busy interval. The cursor advances by the slot length whether or not the
// candidate was free, so results always land on the fixed grid.
func FreeSlots(open, close time.Time, busy []models.Interval, slot time.Duration) []time.Time {
	if slot <= 0 || !close.After(open) {
		return nil
	}

	var slots []time.Time
	for cur := open; !cur.Add(slot).After(close); cur = cur.Add(slot) {
		if !overlapsAny(cur, cur.Add(slot), busy) {
			slots = append(slots, cur)
		}
	}
	return slots
}
