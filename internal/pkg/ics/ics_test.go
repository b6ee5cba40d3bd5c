package ics

import (
	"strings"
	"testing"
	"time"
)

func TestRender_BasicEvent(t *testing.T) {
	e := Event{
		UID:      "abc-123@skillswap",
		Title:    "Guitar lesson",
		Location: "Boston",
		Start:    time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC),
	}

	got := Render(e)

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"BEGIN:VEVENT\r\n",
		"UID:abc-123@skillswap\r\n",
		"DTSTART:20250601T140000Z\r\n",
		"DTEND:20250601T153000Z\r\n",
		"SUMMARY:Guitar lesson\r\n",
		"LOCATION:Boston\r\n",
		"END:VEVENT\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRender_DefaultsEndToOneHour(t *testing.T) {
	e := Event{
		UID:   "u",
		Title: "Chess",
		Start: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	got := Render(e)
	if !strings.Contains(got, "DTEND:20250601T100000Z\r\n") {
		t.Fatalf("expected one-hour default end:\n%s", got)
	}
}

func TestRender_EscapesReservedCharacters(t *testing.T) {
	e := Event{
		UID:         "u",
		Title:       "Cooking; basics, part 1",
		Description: "line one\nline two",
		Start:       time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	got := Render(e)
	if !strings.Contains(got, `SUMMARY:Cooking\; basics\, part 1`) {
		t.Fatalf("reserved characters not escaped:\n%s", got)
	}
	if !strings.Contains(got, `DESCRIPTION:line one\nline two`) {
		t.Fatalf("newline not escaped:\n%s", got)
	}
}

func TestRender_FoldsLongLines(t *testing.T) {
	e := Event{
		UID:         "u",
		Title:       "Session",
		Description: strings.Repeat("x", 300),
		Start:       time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	got := Render(e)
	for _, line := range strings.Split(got, "\r\n") {
		if len(line) > 76 {
			t.Fatalf("line exceeds fold limit (%d): %q", len(line), line)
		}
	}
	if !strings.Contains(got, "\r\n x") {
		t.Fatalf("expected folded continuation line:\n%s", got)
	}
}

func TestGoogleCalendarURL(t *testing.T) {
	e := Event{
		Title:    "Spanish practice",
		Location: "Cafe",
		Start:    time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
	}

	got := GoogleCalendarURL(e)
	if !strings.HasPrefix(got, "https://calendar.google.com/calendar/render?") {
		t.Fatalf("unexpected base URL: %s", got)
	}
	if !strings.Contains(got, "dates=20250601T140000Z%2F20250601T150000Z") {
		t.Fatalf("missing dates parameter: %s", got)
	}
	if !strings.Contains(got, "text=Spanish+practice") {
		t.Fatalf("missing title parameter: %s", got)
	}
}
