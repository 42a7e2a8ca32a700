package trips

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jgoulah/bikeshare/pkg/models"
)

// Table is an ordered, read-only set of trips for one city.
// Filtering produces a new Table and leaves the receiver untouched.
type Table struct {
	City    string
	Records []models.Trip
	Schema
}

// Len returns the number of trips in the table
func (t *Table) Len() int {
	return len(t.Records)
}

// Load reads a city's trips from src, derives the calendar fields and applies the month and day filters
func Load(ctx context.Context, src Source, f Filters) (*Table, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	records, schema, err := src.ReadTrips(ctx, f.City)
	if err != nil {
		return nil, err
	}
	Derive(records)

	table := &Table{City: f.City, Records: records, Schema: schema}
	filtered := table.Filter(f)

	slog.Debug("Loaded trip table",
		slog.String("city", f.City),
		slog.String("month", f.Month),
		slog.String("day", f.Day),
		slog.Int("loaded", table.Len()),
		slog.Int("selected", filtered.Len()))

	return filtered, nil
}

// Derive sets Month, DayOfWeek and Hour on each trip from its start time
func Derive(records []models.Trip) {
	for i := range records {
		start := records[i].StartTime
		records[i].Month = strings.ToLower(start.Month().String())
		records[i].DayOfWeek = strings.ToLower(start.Weekday().String())
		records[i].Hour = start.Hour()
	}
}

// Filter applies the month and day filters of f; "all" disables a filter
func (t *Table) Filter(f Filters) *Table {
	return t.FilterMonth(f.Month).FilterDay(f.Day)
}

// FilterMonth keeps trips that started in month
func (t *Table) FilterMonth(month string) *Table {
	if month == models.All {
		return t
	}
	return t.where(func(trip models.Trip) bool { return trip.Month == month })
}

// FilterDay keeps trips that started on the given weekday
func (t *Table) FilterDay(day string) *Table {
	if day == models.All {
		return t
	}
	return t.where(func(trip models.Trip) bool { return trip.DayOfWeek == day })
}

func (t *Table) where(keep func(models.Trip) bool) *Table {
	out := make([]models.Trip, 0, len(t.Records))
	for _, trip := range t.Records {
		if keep(trip) {
			out = append(out, trip)
		}
	}
	return &Table{City: t.City, Records: out, Schema: t.Schema}
}

// Page returns up to size trips starting at offset, or nil once offset passes the end
func (t *Table) Page(offset, size int) []models.Trip {
	if offset < 0 || size <= 0 || offset >= len(t.Records) {
		return nil
	}
	end := min(offset+size, len(t.Records))
	return t.Records[offset:end]
}

// String describes the table for log and error messages
func (t *Table) String() string {
	return fmt.Sprintf("%s (%d trips)", t.City, t.Len())
}
