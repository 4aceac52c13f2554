package main

import (
	"context"
	"fmt"
	"io"
)

// cleanupCalendars deletes every course calendar in the store. Calendars not
// carrying a course are never listed and therefore never touched.
func cleanupCalendars(ctx context.Context, store CalendarStore, in io.Reader, assumeYes bool) (int, error) {
	calendars, err := store.ListCalendars(ctx)
	if err != nil {
		return 0, err
	}
	if len(calendars) == 0 {
		fmt.Println("📋 No course calendars to remove.")
		return 0, nil
	}

	if !assumeYes && !confirm(in, fmt.Sprintf("⚠️  Delete all %d course calendars? (y/N): ", len(calendars))) {
		fmt.Println("❌ Cleanup cancelled")
		return 0, nil
	}

	deleted := 0
	for _, cal := range calendars {
		printVerbosely(2, "  🗑 Deleting calendar %s (%s)\n", cal.Summary, cal.ID)
		if err := store.DeleteCalendar(ctx, cal.ID); err != nil {
			return deleted, err
		}
		deleted++
	}

	printVerbosely(1, "✅ %d course calendars removed\n", deleted)
	return deleted, nil
}
