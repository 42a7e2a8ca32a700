package models

import "time"

// Trip represents a single bike rental from a city's trip log
type Trip struct {
	Line         int       `json:"line"`       // 1-based row in the source file
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time,omitzero"` // Zero when the source has no end time
	StartStation string    `json:"start_station"`
	EndStation   string    `json:"end_station"`
	Duration     float64   `json:"trip_duration"` // Seconds
	UserType     string    `json:"user_type"`
	Gender       string    `json:"gender,omitempty"`
	BirthYear    *int      `json:"birth_year,omitempty"` // nil when missing

	// Derived from StartTime at load time
	Month     string `json:"month"`
	DayOfWeek string `json:"day_of_week"`
	Hour      int    `json:"hour"`
}

// Trip returns the "<start> to <end>" station pair for the rental
func (t Trip) Trip() string {
	return t.StartStation + " to " + t.EndStation
}
