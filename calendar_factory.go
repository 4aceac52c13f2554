package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
)

// CalendarFactory wires the collaborators of a run from the configuration.
type CalendarFactory struct {
	config *Config
	db     *sql.DB

	// httpClient replaces the OAuth client when set.
	httpClient *http.Client
}

type SyncDeps struct {
	Store    CalendarStore
	Source   CourseSource
	Semester *Semester
}

func NewCalendarFactory(config *Config, db *sql.DB) *CalendarFactory {
	return &CalendarFactory{config: config, db: db}
}

// Client returns the authorized HTTP client, creating it on first use.
func (cf *CalendarFactory) Client(ctx context.Context) (*http.Client, error) {
	if cf.httpClient != nil {
		return cf.httpClient, nil
	}
	client, err := getClient(ctx, newOAuthConfig(cf.config), cf.db, cf.config.AccountName)
	if err != nil {
		return nil, fmt.Errorf("error authorizing account %s: %w", cf.config.AccountName, err)
	}
	cf.httpClient = client
	return client, nil
}

func (cf *CalendarFactory) CreateCalendarStore(ctx context.Context) (*GoogleCalendarStore, error) {
	client, err := cf.Client(ctx)
	if err != nil {
		return nil, err
	}
	return NewGoogleCalendarStore(ctx, client, cf.config.APIEndpoint)
}

// CreateCourseSource prefers the spreadsheet and falls back to the courses
// listed in the semester file.
func (cf *CalendarFactory) CreateCourseSource(ctx context.Context, semester *Semester) (CourseSource, error) {
	if cf.config.Sheet.SpreadsheetID == "" {
		if len(semester.Courses) == 0 {
			return nil, fmt.Errorf("%w: set [sheet] spreadsheet_id or list courses in %s", ErrNoCourseSource, cf.config.SemesterFile)
		}
		return NewFileCourseSource(semester), nil
	}

	client, err := cf.Client(ctx)
	if err != nil {
		return nil, err
	}
	return NewSheetCourseSource(ctx, client, cf.config.Sheet.SpreadsheetID, cf.config.Sheet.Range, cf.config.APIEndpoint)
}

func (cf *CalendarFactory) Build(ctx context.Context) (*SyncDeps, error) {
	semester, err := loadSemester(cf.config.semesterPath())
	if err != nil {
		return nil, err
	}
	source, err := cf.CreateCourseSource(ctx, semester)
	if err != nil {
		return nil, err
	}
	store, err := cf.CreateCalendarStore(ctx)
	if err != nil {
		return nil, err
	}
	return &SyncDeps{Store: store, Source: source, Semester: semester}, nil
}
