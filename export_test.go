package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExportICS(t *testing.T) {
	stamp := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	out, err := exportICS([]Course{sampleCourse()}, testSchedule(t), "Europe/Warsaw", stamp)
	if err != nil {
		t.Fatalf("exportICS: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:ALG-W@gcalplan",
		"DTSTART;TZID=Europe/Warsaw:20240205T080000",
		"DTEND;TZID=Europe/Warsaw:20240205T093000",
		"LOCATION:A-1",
		"END:VEVENT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export is missing %q:\n%s", want, out)
		}
	}
	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	for _, occurrence := range []string{"RDATE;TZID=Europe/Warsaw:20240212T080000", "20240219T080000"} {
		if !strings.Contains(unfolded, occurrence) {
			t.Errorf("export is missing %q in the RDATE list:\n%s", occurrence, out)
		}
	}
}

func TestExportICS_InvalidCourse(t *testing.T) {
	bad := sampleCourse()
	bad.Weeks = []int{0, 9}
	if _, err := exportICS([]Course{bad}, testSchedule(t), "UTC", time.Now()); err == nil {
		t.Error("expected error for a week outside the schedule")
	}
}

func TestWriteICSFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.ics")
	if err := writeICSFile(path, []Course{sampleCourse()}, testSchedule(t), "UTC"); err != nil {
		t.Fatalf("writeICSFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "BEGIN:VEVENT") {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

func TestExportICS_SortsOccurrencesAndSkipsAnchor(t *testing.T) {
	course := sampleCourse()
	course.Weeks = []int{2, 0, 1, 0}

	out, err := exportICS([]Course{course}, testSchedule(t), "Europe/Warsaw", time.Now())
	if err != nil {
		t.Fatalf("exportICS: %v", err)
	}
	unfolded := strings.ReplaceAll(out, "\r\n ", "")

	if !strings.Contains(unfolded, "DTSTART;TZID=Europe/Warsaw:20240219T080000") {
		t.Errorf("anchor should be the first listed week:\n%s", out)
	}
	var rdate string
	for _, line := range strings.Split(unfolded, "\r\n") {
		if strings.HasPrefix(line, "RDATE") {
			rdate = line
		}
	}
	if rdate == "" {
		t.Fatalf("export has no RDATE:\n%s", out)
	}
	if strings.Contains(rdate, "20240219T080000") {
		t.Errorf("anchor must not repeat in RDATE: %s", rdate)
	}
	first := strings.Index(rdate, "20240205T080000")
	second := strings.Index(rdate, "20240212T080000")
	if first < 0 || second < 0 || first > second {
		t.Errorf("RDATE should list 02-05 then 02-12: %s", rdate)
	}
	if strings.Count(rdate, "20240205T080000") != 1 {
		t.Errorf("repeated week should appear once: %s", rdate)
	}
}
