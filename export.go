package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// exportICS renders the courses as an iCalendar feed with one VEVENT per
// course. The anchor matches the synced event; the RDATE list is sorted and
// holds each remaining occurrence once.
func exportICS(courses []Course, schedule Schedule, timeZone string, stamp time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gcalplan//course schedule//PL")
	cal.SetXWRCalName("gcalplan")
	cal.SetXWRTimezone(timeZone)

	tzid := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{timeZone}}

	for _, course := range courses {
		event, err := buildEvent(course, schedule, timeZone)
		if err != nil {
			return "", err
		}
		following, err := followingOccurrences(course, schedule)
		if err != nil {
			return "", err
		}
		stamps := make([]string, 0, len(following))
		for _, occurrence := range following {
			stamps = append(stamps, occurrence.Format(rdateLayout))
		}

		vevent := cal.AddEvent(course.ID + "@gcalplan")
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(event.Summary)
		if event.Description != "" {
			vevent.SetDescription(event.Description)
		}
		vevent.SetLocation(event.Location)
		vevent.SetProperty(ics.ComponentPropertyDtStart, event.Start.DateTime.Format(rdateLayout), tzid)
		vevent.SetProperty(ics.ComponentPropertyDtEnd, event.End.DateTime.Format(rdateLayout), tzid)
		if len(stamps) > 0 {
			vevent.AddProperty(ics.ComponentPropertyRdate, strings.Join(stamps, ","), tzid)
		}
	}

	return cal.Serialize(), nil
}

func writeICSFile(path string, courses []Course, schedule Schedule, timeZone string) error {
	data, err := exportICS(courses, schedule, timeZone, time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	printVerbosely(1, "✅ %d courses exported to %s\n", len(courses), path)
	return nil
}
