package ics

import (
	"net/url"
	"strings"
	"time"
)

// Event is one calendar entry. End defaults to one hour after Start when
// zero.
type Event struct {
	UID         string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

const dateTimeLayout = "20060102T150405Z"

// Render produces a single-event iCalendar document per RFC 5545, with
// CRLF line endings and lines folded at 75 octets.
func Render(e Event) string {
	start := e.Start.UTC()
	end := e.End
	if end.IsZero() {
		end = start.Add(time.Hour)
	}

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//skillswap//sessions//EN")
	writeLine(&b, "BEGIN:VEVENT")
	writeLine(&b, "UID:"+escape(e.UID))
	writeLine(&b, "DTSTAMP:"+time.Now().UTC().Format(dateTimeLayout))
	writeLine(&b, "DTSTART:"+start.Format(dateTimeLayout))
	writeLine(&b, "DTEND:"+end.UTC().Format(dateTimeLayout))
	writeLine(&b, "SUMMARY:"+escape(e.Title))
	if e.Description != "" {
		writeLine(&b, "DESCRIPTION:"+escape(e.Description))
	}
	if e.Location != "" {
		writeLine(&b, "LOCATION:"+escape(e.Location))
	}
	writeLine(&b, "END:VEVENT")
	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

// GoogleCalendarURL builds a prefilled Google Calendar event link for the
// same event.
func GoogleCalendarURL(e Event) string {
	start := e.Start.UTC()
	end := e.End
	if end.IsZero() {
		end = start.Add(time.Hour)
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", e.Title)
	q.Set("dates", start.Format(dateTimeLayout)+"/"+end.UTC().Format(dateTimeLayout))
	if e.Description != "" {
		q.Set("details", e.Description)
	}
	if e.Location != "" {
		q.Set("location", e.Location)
	}
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

// escape backslash-escapes the characters RFC 5545 reserves in text values.
func escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// writeLine folds content at 75 octets with a space continuation and
// terminates with CRLF.
func writeLine(b *strings.Builder, line string) {
	const maxLen = 75
	for len(line) > maxLen {
		cut := maxLen
		for cut > 0 && !isBoundary(line, cut) {
			cut--
		}
		if cut == 0 {
			cut = maxLen
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}

// isBoundary reports whether cutting at i keeps UTF-8 sequences intact.
func isBoundary(s string, i int) bool {
	return s[i]&0xC0 != 0x80
}
