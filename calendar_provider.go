package main

import (
	"context"
	"encoding/base64"
	"strings"
	"time"
)

const calendarLinkBase = "https://calendar.google.com/calendar/u/0?cid="

// CalendarStore is the remote side of a sync. Every calendar it lists is
// expected to hold exactly one event.
type CalendarStore interface {
	ListCalendars(ctx context.Context) ([]*Calendar, error)
	InsertCalendar(ctx context.Context, cal *Calendar) (string, error)
	UpdateCalendar(ctx context.Context, cal *Calendar) error
	DeleteCalendar(ctx context.Context, calendarID string) error
	SetCalendarColor(ctx context.Context, calendarID string, colorID string) error
	InsertEvent(ctx context.Context, calendarID string, event *Event) (string, error)
	ListEvents(ctx context.Context, calendarID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, calendarID string, eventID string, event *Event) error
	InsertACLRule(ctx context.Context, calendarID string, rule ACLRule) error
}

// Calendar is a remote calendar together with the course it was last
// synced from.
type Calendar struct {
	ID      string
	Summary string
	Course  Course
}

func newCalendar(course Course) (*Calendar, error) {
	title, err := course.Title()
	if err != nil {
		return nil, err
	}
	return &Calendar{Summary: title, Course: course}, nil
}

// Link is the public subscription URL of the calendar.
func (c *Calendar) Link() string {
	return calendarLink(c.ID)
}

func calendarLink(calendarID string) string {
	cid := strings.TrimRight(base64.StdEncoding.EncodeToString([]byte(calendarID)), "=")
	return calendarLinkBase + cid
}

// EventDateTime holds a wall-clock time and the zone it is meant in.
type EventDateTime struct {
	TimeZone string
	DateTime time.Time
}

type Event struct {
	ID          string
	Summary     string
	Description string
	Start       EventDateTime
	End         EventDateTime
	Recurrence  []string
	Location    string
}

type ACLRule struct {
	ScopeType string
	Role      string
}

// publicACLRule makes a calendar readable by anyone holding its link.
var publicACLRule = ACLRule{ScopeType: "default", Role: "reader"}
