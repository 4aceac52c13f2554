package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// deleteCourseCalendar removes the calendar of a single course after asking
// for confirmation.
func deleteCourseCalendar(ctx context.Context, store CalendarStore, courseID string, in io.Reader, assumeYes bool) error {
	calendars, err := store.ListCalendars(ctx)
	if err != nil {
		return err
	}
	cal := findCalendar(calendars, courseID)
	if cal == nil {
		fmt.Printf("❌ No calendar for course %s\n", courseID)
		return nil
	}

	if !assumeYes && !confirm(in, fmt.Sprintf("⚠️  Are you sure you want to delete %q? (y/N): ", cal.Summary)) {
		fmt.Println("❌ Calendar deletion cancelled")
		return nil
	}

	if err := store.DeleteCalendar(ctx, cal.ID); err != nil {
		return err
	}
	fmt.Printf("✅ Calendar deleted: %s\n", cal.Summary)
	return nil
}

func confirm(in io.Reader, prompt string) bool {
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
