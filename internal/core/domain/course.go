package domain

import "errors"

// ErrPartNotFound is returned when a part id does not match any catalog entry.
var ErrPartNotFound = errors.New("course part not found")

// ClassesPerPart is the fixed number of classes every part carries.
const ClassesPerPart = 10

// CourseClass is a single lesson within a part.
type CourseClass struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CoursePart is one section of the course. Parts are static: built once at
// startup and never mutated afterwards.
type CoursePart struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Classes     []CourseClass `json:"classes"`
}
