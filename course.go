package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

type CourseType string

const (
	CourseLecture    CourseType = "lecture"
	CourseProject    CourseType = "project"
	CourseTutorial   CourseType = "tutorial"
	CourseLaboratory CourseType = "laboratory"
)

var ErrUnknownCourseType = errors.New("unknown course type")

var courseTypeNames = map[CourseType]string{
	CourseLecture:    "Wykład",
	CourseProject:    "Projekt",
	CourseTutorial:   "Ćwiczenia",
	CourseLaboratory: "Laboratorium",
}

// Course is one class as it should appear in the calendar. Instructor and
// Group are optional; the empty string means absent.
type Course struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Type       CourseType `json:"type" yaml:"type"`
	Location   string     `json:"location" yaml:"location"`
	StartTime  ClockTime  `json:"start_time" yaml:"start_time"`
	EndTime    ClockTime  `json:"end_time" yaml:"end_time"`
	Weekday    int        `json:"weekday" yaml:"weekday"`
	Weeks      []int      `json:"weeks" yaml:"weeks"`
	Instructor string     `json:"instructor,omitempty" yaml:"instructor"`
	Group      string     `json:"group,omitempty" yaml:"group"`
}

func (t CourseType) label() (string, error) {
	name, ok := courseTypeNames[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCourseType, string(t))
	}
	return name, nil
}

// Title is the calendar and event summary, e.g. "Algebra - Wykład gr. 3".
func (c Course) Title() (string, error) {
	label, err := c.Type.label()
	if err != nil {
		return "", fmt.Errorf("course %s: %w", c.ID, err)
	}
	title := c.Name + " - " + label
	if c.Group != "" {
		title += " gr. " + c.Group
	}
	return title, nil
}

func (c Course) Description() string {
	if c.Instructor == "" {
		return ""
	}
	return "Prowadzący: " + c.Instructor
}

// Equal reports whether every field of c and other matches.
func (c Course) Equal(other Course) bool {
	return c.ID == other.ID &&
		c.Name == other.Name &&
		c.Type == other.Type &&
		c.Location == other.Location &&
		c.StartTime == other.StartTime &&
		c.EndTime == other.EndTime &&
		c.Weekday == other.Weekday &&
		slices.Equal(c.Weeks, other.Weeks) &&
		c.Instructor == other.Instructor &&
		c.Group == other.Group
}

// encodeCourse produces the calendar description that carries the course.
func encodeCourse(c Course) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("unable to encode course %s: %w", c.ID, err)
	}
	return string(data), nil
}

func decodeCourse(description string) (Course, error) {
	var c Course
	if err := json.Unmarshal([]byte(description), &c); err != nil {
		return Course{}, fmt.Errorf("unable to decode course: %w", err)
	}
	if c.ID == "" {
		return Course{}, errors.New("unable to decode course: missing id")
	}
	return c, nil
}
