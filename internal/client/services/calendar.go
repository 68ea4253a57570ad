package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/parishportal/parishportal/internal/client/models"
)

// Calendar export helpers: pure functions that render an event into forms
// external calendar apps understand. No I/O, deterministic for the same
// event.

const calendarTimeLayout = "20060102T150405Z"

// eventEnd falls back to one hour after start when the event has no
// explicit end time.
func eventEnd(ev *models.Event) time.Time {
	if ev.EndTime != nil {
		return *ev.EndTime
	}
	return ev.StartTime.Add(time.Hour)
}

// GoogleCalendarURL builds an "add to Google Calendar" link for the event.
func GoogleCalendarURL(ev *models.Event) string {
	v := url.Values{}
	v.Set("action", "TEMPLATE")
	v.Set("text", ev.Title)
	v.Set("dates", ev.StartTime.UTC().Format(calendarTimeLayout)+"/"+eventEnd(ev).UTC().Format(calendarTimeLayout))
	if ev.Description != "" {
		v.Set("details", ev.Description)
	}
	if ev.Location != "" {
		v.Set("location", ev.Location)
	}
	return "https://calendar.google.com/calendar/render?" + v.Encode()
}

// escapeICS escapes text per RFC 5545 §3.3.11.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// ICS renders the event as a minimal RFC 5545 document suitable for an
// .ics download.
func ICS(ev *models.Event) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//ParishPortal//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:event-%d@parishportal\r\n", ev.ID)
	fmt.Fprintf(&b, "DTSTART:%s\r\n", ev.StartTime.UTC().Format(calendarTimeLayout))
	fmt.Fprintf(&b, "DTEND:%s\r\n", eventEnd(ev).UTC().Format(calendarTimeLayout))
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeICS(ev.Title))
	if ev.Description != "" {
		fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeICS(ev.Description))
	}
	if ev.Location != "" {
		fmt.Fprintf(&b, "LOCATION:%s\r\n", escapeICS(ev.Location))
	}
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}
