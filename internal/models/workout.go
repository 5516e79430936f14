package models

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Workout is a single logged training session.
type Workout struct {
	Type           string    `json:"type"`
	Duration       int       `json:"duration" validate:"gt=0"` // minutes
	CaloriesBurned int       `json:"caloriesBurned" validate:"gte=0"`
	Date           time.Time `json:"date"`
}

// normalizeWorkoutType lower-cases a workout type label for comparison.
// Uses full Unicode case mapping, independent of the host locale.
func normalizeWorkoutType(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// IsType reports whether w has the given type, ignoring case.
func (w Workout) IsType(workoutType string) bool {
	return normalizeWorkoutType(w.Type) == normalizeWorkoutType(workoutType)
}

// DateOnlyLayout is the short date form accepted alongside RFC 3339.
const DateOnlyLayout = "2006-01-02"

// ParseWorkoutDate parses an RFC 3339 timestamp, falling back to a date-only
// value interpreted as midnight UTC.
func ParseWorkoutDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err2 := time.Parse(DateOnlyLayout, s)
	if err2 == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse workout date %q: %w", s, err)
}
