package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCourseRow(t *testing.T) {
	row := []string{"0, 1,2", "0", "ignored", "ALG-W", "Algebra", "lecture", "A-1", "08:00", "09:30", "dr Nowak", "3"}

	got, err := parseCourseRow(row)
	if err != nil {
		t.Fatalf("parseCourseRow: %v", err)
	}
	if diff := cmp.Diff(sampleCourse(), got); diff != "" {
		t.Errorf("course mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCourseRow_OptionalColumns(t *testing.T) {
	row := []string{"1", "1", "", "FIZ-L", "Fizyka", "laboratory", "C-3", "12:15", "14:00"}

	got, err := parseCourseRow(row)
	if err != nil {
		t.Fatalf("parseCourseRow: %v", err)
	}
	if got.Instructor != "" || got.Group != "" {
		t.Errorf("missing columns should leave optionals absent: %+v", got)
	}
	if diff := cmp.Diff([]int{1}, got.Weeks); diff != "" {
		t.Errorf("weeks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCourseRow_Invalid(t *testing.T) {
	tests := map[string][]string{
		"short row":   {"1", "0", "", "ID", "Name"},
		"bad weeks":   {"1,x", "0", "", "ID", "Name", "lecture", "A", "08:00", "09:00"},
		"bad weekday": {"1", "mon", "", "ID", "Name", "lecture", "A", "08:00", "09:00"},
		"bad start":   {"1", "0", "", "ID", "Name", "lecture", "A", "8am", "09:00"},
		"bad end":     {"1", "0", "", "ID", "Name", "lecture", "A", "08:00", ""},
	}
	for name, row := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseCourseRow(row); !errors.Is(err, ErrInvalidCourseRow) {
				t.Errorf("expected ErrInvalidCourseRow, got %v", err)
			}
		})
	}
}

func TestSheetCourseSource(t *testing.T) {
	m := newMockGoogle(t)
	m.values = [][]interface{}{
		{"0,1,2", "0", "", "ALG-W", "Algebra", "lecture", "A-1", "08:00", "09:30", "dr Nowak", "3"},
		{"1", "1", "", "FIZ-L", "Fizyka", "laboratory", "C-3", "12:15", "14:00"},
	}

	source, err := NewSheetCourseSource(context.Background(), &http.Client{}, "sheet-id", "A:K", m.URL+"/")
	if err != nil {
		t.Fatalf("NewSheetCourseSource: %v", err)
	}
	courses, err := source.LoadCourses(context.Background())
	if err != nil {
		t.Fatalf("LoadCourses: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	if !courses[0].Equal(sampleCourse()) {
		t.Errorf("unexpected first course %+v", courses[0])
	}
	if courses[1].ID != "FIZ-L" || courses[1].Type != CourseLaboratory {
		t.Errorf("unexpected second course %+v", courses[1])
	}
}

func TestSheetCourseSource_BadRow(t *testing.T) {
	m := newMockGoogle(t)
	m.values = [][]interface{}{{"1", "0"}}

	source, err := NewSheetCourseSource(context.Background(), &http.Client{}, "sheet-id", "A:K", m.URL+"/")
	if err != nil {
		t.Fatalf("NewSheetCourseSource: %v", err)
	}
	if _, err := source.LoadCourses(context.Background()); !errors.Is(err, ErrInvalidCourseRow) {
		t.Errorf("expected ErrInvalidCourseRow, got %v", err)
	}
}

func TestFileCourseSource(t *testing.T) {
	semester := &Semester{Courses: []Course{sampleCourse()}}
	courses, err := NewFileCourseSource(semester).LoadCourses(context.Background())
	if err != nil {
		t.Fatalf("LoadCourses: %v", err)
	}
	if len(courses) != 1 {
		t.Errorf("expected 1 course, got %d", len(courses))
	}

	_, err = NewFileCourseSource(&Semester{}).LoadCourses(context.Background())
	if !errors.Is(err, ErrNoCourseSource) {
		t.Errorf("expected ErrNoCourseSource, got %v", err)
	}
}
