package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"bookable/models"
	"bookable/utils"
)

const (
	// Events without an explicit DTEND default to a 30 minute duration.
	defaultEventDuration = 30 * time.Minute

	defaultFeedTimeout = 10 * time.Second

	icalDateTimeUTC   = "20060102T150405Z"
	icalDateTimeLocal = "20060102T150405"
	icalDate          = "20060102"
)

// FeedClient retrieves busy intervals from a public iCalendar feed.
type FeedClient struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Configured reports whether a feed URL is set. It reflects configuration
// only, never the outcome of a fetch.
func (f *FeedClient) Configured() bool {
	return strings.TrimSpace(f.URL) != ""
}

// BusyIntervals returns the sorted, merged busy intervals overlapping the
// calendar day starting at dayStart (local midnight in loc). It never fails
// outward: every transport or parse problem degrades to an empty set so the
// availability endpoint stays up even when the calendar source is down.
func (f *FeedClient) BusyIntervals(ctx context.Context, dayStart time.Time, loc *time.Location) []models.Interval {
	logger := utils.GetLogger()

	if !f.Configured() {
		return nil
	}

	body, err := f.fetchFeed(ctx)
	if err != nil {
		logger.Warn("Calendar feed fetch failed, treating day as free", zap.Error(err))
		return nil
	}

	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		logger.Warn("Calendar feed parse failed, treating day as free", zap.Error(err))
		return nil
	}

	dayEnd := dayStart.AddDate(0, 0, 1)

	var busy []models.Interval
	for _, event := range cal.Events() {
		iv, err := eventInterval(event, loc)
		if err != nil {
			// One bad event must not abort the whole fetch.
			logger.Debug("Skipping unparseable calendar event", zap.Error(err))
			continue
		}
		clipped, ok := clipToDay(iv, dayStart, dayEnd)
		if !ok {
			continue
		}
		busy = append(busy, clipped)
	}

	return MergeIntervals(busy)
}

func (f *FeedClient) fetchFeed(ctx context.Context) (string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build feed request: %w", err)
	}

	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}
	return string(data), nil
}

// eventInterval resolves an event's DTSTART/DTEND into absolute instants in
// loc. A missing DTEND means 30 minutes after start, or one full day for
// date-only (all-day) entries, which therefore block the whole business day.
func eventInterval(event *ics.VEvent, loc *time.Location) (models.Interval, error) {
	startProp := event.GetProperty(ics.ComponentPropertyDtStart)
	if startProp == nil {
		return models.Interval{}, fmt.Errorf("event has no DTSTART")
	}
	start, allDay, err := parseEventTime(startProp, loc)
	if err != nil {
		return models.Interval{}, fmt.Errorf("DTSTART: %w", err)
	}

	endProp := event.GetProperty(ics.ComponentPropertyDtEnd)
	if endProp == nil {
		if allDay {
			return models.Interval{Start: start, End: start.AddDate(0, 0, 1)}, nil
		}
		return models.Interval{Start: start, End: start.Add(defaultEventDuration)}, nil
	}
	end, _, err := parseEventTime(endProp, loc)
	if err != nil {
		return models.Interval{}, fmt.Errorf("DTEND: %w", err)
	}
	return models.Interval{Start: start, End: end}, nil
}

// parseEventTime interprets a DTSTART/DTEND value. UTC and TZID-qualified
// timestamps are converted into loc; floating local times are taken to be
// in loc already. The second return value is true for date-only values.
func parseEventTime(prop *ics.IANAProperty, loc *time.Location) (time.Time, bool, error) {
	value := strings.TrimSpace(prop.Value)

	if t, err := time.Parse(icalDateTimeUTC, value); err == nil {
		return t.In(loc), false, nil
	}

	zone := loc
	if tzids := prop.ICalParameters["TZID"]; len(tzids) > 0 && tzids[0] != "" {
		if z, err := time.LoadLocation(tzids[0]); err == nil {
			zone = z
		}
	}
	if t, err := time.ParseInLocation(icalDateTimeLocal, value, zone); err == nil {
		return t.In(loc), false, nil
	}

	if t, err := time.ParseInLocation(icalDate, value, loc); err == nil {
		return t, true, nil
	}

	return time.Time{}, false, fmt.Errorf("unsupported time value %q", value)
}
