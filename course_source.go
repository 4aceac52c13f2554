package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	ErrInvalidCourseRow = errors.New("invalid course row")
	ErrNoCourseSource   = errors.New("no course source configured")
)

type CourseSource interface {
	LoadCourses(ctx context.Context) ([]Course, error)
}

// SheetCourseSource reads one course per spreadsheet row.
type SheetCourseSource struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
}

func NewSheetCourseSource(ctx context.Context, client *http.Client, spreadsheetID, readRange string, endpoint ...string) (*SheetCourseSource, error) {
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if len(endpoint) > 0 && endpoint[0] != "" {
		opts = append(opts, option.WithEndpoint(endpoint[0]))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetCourseSource{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

func (s *SheetCourseSource) LoadCourses(ctx context.Context) ([]Course, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	courses := make([]Course, 0, len(resp.Values))
	for i, values := range resp.Values {
		row := make([]string, len(values))
		for j, v := range values {
			row[j] = fmt.Sprint(v)
		}
		course, err := parseCourseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// parseCourseRow maps a spreadsheet row onto a course. Columns:
//
//	0 weeks ("1, 2, 3")  1 weekday  3 id  4 name  5 type  6 location
//	7 start (HH:MM)  8 end (HH:MM)  9 instructor  10 group
//
// Column 2 is not used.
func parseCourseRow(row []string) (Course, error) {
	if len(row) < 9 {
		return Course{}, fmt.Errorf("%w: expected at least 9 columns, got %d", ErrInvalidCourseRow, len(row))
	}

	weeks, err := parseWeeks(row[0])
	if err != nil {
		return Course{}, err
	}
	weekday, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return Course{}, fmt.Errorf("%w: weekday %q", ErrInvalidCourseRow, row[1])
	}
	start, err := ParseClockTime(row[7])
	if err != nil {
		return Course{}, fmt.Errorf("%w: start time: %v", ErrInvalidCourseRow, err)
	}
	end, err := ParseClockTime(row[8])
	if err != nil {
		return Course{}, fmt.Errorf("%w: end time: %v", ErrInvalidCourseRow, err)
	}

	course := Course{
		ID:        row[3],
		Name:      row[4],
		Type:      CourseType(row[5]),
		Location:  row[6],
		StartTime: start,
		EndTime:   end,
		Weekday:   weekday,
		Weeks:     weeks,
	}
	if len(row) > 9 {
		course.Instructor = row[9]
	}
	if len(row) > 10 {
		course.Group = row[10]
	}
	return course, nil
}

func parseWeeks(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	weeks := make([]int, 0, len(parts))
	for _, part := range parts {
		week, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: weeks %q", ErrInvalidCourseRow, s)
		}
		weeks = append(weeks, week)
	}
	return weeks, nil
}

// FileCourseSource serves the courses listed in the semester file.
type FileCourseSource struct {
	semester *Semester
}

func NewFileCourseSource(semester *Semester) *FileCourseSource {
	return &FileCourseSource{semester: semester}
}

func (f *FileCourseSource) LoadCourses(ctx context.Context) ([]Course, error) {
	if len(f.semester.Courses) == 0 {
		return nil, fmt.Errorf("%w: semester file lists no courses", ErrNoCourseSource)
	}
	return f.semester.Courses, nil
}
