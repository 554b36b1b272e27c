package services

import (
	"sort"
	"time"

	"bookable/models"
)

// MergeIntervals sorts busy intervals ascending by start and collapses
// overlapping or touching neighbours. The result is pairwise disjoint:
// every interval ends strictly before the next one starts. Merging an
// already-merged set is a no-op.
func MergeIntervals(intervals []models.Interval) []models.Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]models.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []models.Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start.After(last.End) {
			merged = append(merged, iv)
			continue
		}
		if iv.End.After(last.End) {
			last.End = iv.End
		}
	}
	return merged
}

// clipToDay trims iv to [dayStart, dayEnd) and reports whether anything
// remains after clipping.
func clipToDay(iv models.Interval, dayStart, dayEnd time.Time) (models.Interval, bool) {
	start := iv.Start
	if start.Before(dayStart) {
		start = dayStart
	}
	end := iv.End
	if end.After(dayEnd) {
		end = dayEnd
	}
	if !start.Before(end) {
		return models.Interval{}, false
	}
	return models.Interval{Start: start, End: end}, true
}

// overlapsAny reports whether the half-open candidate [start,end) intersects
// any busy interval: start < busy.End && end > busy.Start. Touching at a
// boundary does not count as overlap, so a slot may end exactly when a busy
// interval begins and vice versa.
func overlapsAny(start, end time.Time, busy []models.Interval) bool {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}
