package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func amsterdam(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}
	return loc
}

func icsFeed(events ...string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//bookable//test//EN\r\n")
	for i, ev := range events {
		b.WriteString("BEGIN:VEVENT\r\nUID:test-" + strconv.Itoa(i) + "\r\n")
		b.WriteString(ev)
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedClient_NotConfigured(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	f := &FeedClient{URL: "   "}
	if f.Configured() {
		t.Fatal("blank URL must not count as configured")
	}
	if busy := f.BusyIntervals(context.Background(), day, loc); len(busy) != 0 {
		t.Fatalf("expected no busy intervals, got %v", busy)
	}
}

func TestFeedClient_ServerErrorDegradesToEmpty(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	f := &FeedClient{URL: srv.URL}
	if busy := f.BusyIntervals(context.Background(), day, loc); len(busy) != 0 {
		t.Fatalf("expected empty set on server error, got %v", busy)
	}
	if !f.Configured() {
		t.Fatal("fetch failure must not flip the configured flag")
	}
}

func TestFeedClient_TimeoutDegradesToEmpty(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		io.WriteString(w, icsFeed())
	}))
	t.Cleanup(srv.Close)

	f := &FeedClient{URL: srv.URL, Timeout: 50 * time.Millisecond}
	if busy := f.BusyIntervals(context.Background(), day, loc); len(busy) != 0 {
		t.Fatalf("expected empty set on timeout, got %v", busy)
	}
}

func TestFeedClient_MalformedFeedDegradesToEmpty(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := feedServer(t, "this is not a calendar")
	f := &FeedClient{URL: srv.URL}
	if busy := f.BusyIntervals(context.Background(), day, loc); len(busy) != 0 {
		t.Fatalf("expected empty set on malformed feed, got %v", busy)
	}
}

func TestFeedClient_NaiveTimesReadAsLocal(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := feedServer(t, icsFeed(
		"DTSTART:20260902T100000\r\nDTEND:20260902T110000\r\n",
	))
	f := &FeedClient{URL: srv.URL}

	busy := f.BusyIntervals(context.Background(), day, loc)
	if len(busy) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(busy))
	}
	if !busy[0].Start.Equal(day.Add(10 * time.Hour)) {
		t.Fatalf("expected start 10:00 local, got %s", busy[0].Start.Format(time.RFC3339))
	}
	if !busy[0].End.Equal(day.Add(11 * time.Hour)) {
		t.Fatalf("expected end 11:00 local, got %s", busy[0].End.Format(time.RFC3339))
	}
}

func TestFeedClient_UTCTimesConvertedToLocal(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	// 08:00Z is 10:00 in Amsterdam during CEST.
	srv := feedServer(t, icsFeed(
		"DTSTART:20260902T080000Z\r\nDTEND:20260902T090000Z\r\n",
	))
	f := &FeedClient{URL: srv.URL}

	busy := f.BusyIntervals(context.Background(), day, loc)
	if len(busy) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(busy))
	}
	if !busy[0].Start.Equal(day.Add(10 * time.Hour)) {
		t.Fatalf("expected start 10:00 local, got %s", busy[0].Start.Format(time.RFC3339))
	}
}

func TestFeedClient_MissingEndDefaultsToThirtyMinutes(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := feedServer(t, icsFeed(
		"DTSTART:20260902T130000\r\n",
	))
	f := &FeedClient{URL: srv.URL}

	busy := f.BusyIntervals(context.Background(), day, loc)
	if len(busy) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(busy))
	}
	if !busy[0].End.Equal(busy[0].Start.Add(30 * time.Minute)) {
		t.Fatalf("expected 30 minute default duration, got %v", busy[0].End.Sub(busy[0].Start))
	}
}

func TestFeedClient_BadEventSkippedIndividually(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := feedServer(t, icsFeed(
		"DTSTART:not-a-time\r\nDTEND:20260902T110000\r\n",
		"SUMMARY:no start at all\r\n",
		"DTSTART:20260902T140000\r\nDTEND:20260902T150000\r\n",
	))
	f := &FeedClient{URL: srv.URL}

	busy := f.BusyIntervals(context.Background(), day, loc)
	if len(busy) != 1 {
		t.Fatalf("expected only the valid event to survive, got %d intervals", len(busy))
	}
	if !busy[0].Start.Equal(day.Add(14 * time.Hour)) {
		t.Fatalf("expected start 14:00 local, got %s", busy[0].Start.Format(time.RFC3339))
	}
}

func TestFeedClient_AllDayEventBlocksWholeDay(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := feedServer(t, icsFeed(
		"DTSTART;VALUE=DATE:20260902\r\n",
	))
	f := &FeedClient{URL: srv.URL}

	busy := f.BusyIntervals(context.Background(), day, loc)
	if len(busy) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(busy))
	}
	if !busy[0].Start.Equal(day) || !busy[0].End.Equal(day.AddDate(0, 0, 1)) {
		t.Fatalf("expected midnight-to-midnight, got %v-%v", busy[0].Start, busy[0].End)
	}
}

func TestFeedClient_EventsOutsideDayDiscarded(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := feedServer(t, icsFeed(
		"DTSTART:20260901T100000\r\nDTEND:20260901T110000\r\n",
		"DTSTART:20260903T100000\r\nDTEND:20260903T110000\r\n",
	))
	f := &FeedClient{URL: srv.URL}

	if busy := f.BusyIntervals(context.Background(), day, loc); len(busy) != 0 {
		t.Fatalf("expected events on other days to be discarded, got %v", busy)
	}
}

func TestFeedClient_OverlappingEventsMerged(t *testing.T) {
	loc := amsterdam(t)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	srv := feedServer(t, icsFeed(
		"DTSTART:20260902T090000\r\nDTEND:20260902T100000\r\n",
		"DTSTART:20260902T093000\r\nDTEND:20260902T103000\r\n",
	))
	f := &FeedClient{URL: srv.URL}

	busy := f.BusyIntervals(context.Background(), day, loc)
	if len(busy) != 1 {
		t.Fatalf("expected overlapping events to merge into 1 interval, got %d", len(busy))
	}
	if !busy[0].Start.Equal(day.Add(9*time.Hour)) || !busy[0].End.Equal(day.Add(10*time.Hour+30*time.Minute)) {
		t.Fatalf("expected 09:00-10:30, got %v-%v", busy[0].Start, busy[0].End)
	}
}
