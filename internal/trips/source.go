package trips

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jgoulah/bikeshare/pkg/models"
)

// Column headers in the city CSV files
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColDuration     = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// Plausible rider birth years; anything else is a data error
const (
	minBirthYear = 1800
	maxBirthYear = 2100
)

var requiredColumns = []string{ColStartTime, ColStartStation, ColEndStation, ColDuration, ColUserType}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
}

// Schema records which optional columns a city's dataset carries
type Schema struct {
	HasGender    bool `json:"has_gender"`
	HasBirthYear bool `json:"has_birth_year"`
}

// Source supplies the raw trips of a city in their stored order
type Source interface {
	ReadTrips(ctx context.Context, city string) ([]models.Trip, Schema, error)
}

// CSVSource reads city trip logs from CSV files in a directory
type CSVSource struct {
	Dir string
}

// NewCSVSource creates a source rooted at dir
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

// Path returns the CSV file path for a city
func (s *CSVSource) Path(city string) (string, error) {
	name, ok := models.CityFiles[city]
	if !ok {
		return "", fmt.Errorf("%w: unknown city %q", ErrInvalidFilters, city)
	}
	return filepath.Join(s.Dir, name), nil
}

// ReadTrips parses every row of the city's CSV file
func (s *CSVSource) ReadTrips(ctx context.Context, city string) ([]models.Trip, Schema, error) {
	path, err := s.Path(city)
	if err != nil {
		return nil, Schema{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Schema{}, &DataSourceError{City: city, Path: path, Err: err}
	}
	defer f.Close()

	slog.Debug("Reading trip data", slog.String("city", city), slog.String("path", path))

	records, schema, err := ParseCSV(ctx, f)
	if err != nil {
		var malformed *MalformedRecordError
		if errors.As(err, &malformed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, Schema{}, err
		}
		return nil, Schema{}, &DataSourceError{City: city, Path: path, Err: err}
	}
	return records, schema, nil
}

// ParseCSV reads trip rows from r. The header row decides which optional
// columns are present; a leading unnamed index column is ignored.
func ParseCSV(ctx context.Context, r io.Reader) ([]models.Trip, Schema, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, Schema{}, fmt.Errorf("missing header row")
		}
		return nil, Schema{}, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, Schema{}, fmt.Errorf("missing required column %q", name)
		}
	}

	_, hasEnd := cols[ColEndTime]
	_, hasGender := cols[ColGender]
	_, hasBirthYear := cols[ColBirthYear]
	schema := Schema{HasGender: hasGender, HasBirthYear: hasBirthYear}

	var trips []models.Trip
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Schema{}, fmt.Errorf("reading row: %w", err)
		}
		if len(trips)%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, Schema{}, err
			}
		}

		line, _ := reader.FieldPos(0)
		field := func(name string) string {
			return strings.TrimSpace(row[cols[name]])
		}

		trip := models.Trip{
			Line:         line,
			StartStation: field(ColStartStation),
			EndStation:   field(ColEndStation),
			UserType:     field(ColUserType),
		}

		if trip.StartTime, err = ParseTime(field(ColStartTime)); err != nil {
			return nil, Schema{}, &MalformedRecordError{Line: line, Column: ColStartTime, Value: field(ColStartTime), Err: err}
		}
		if hasEnd && field(ColEndTime) != "" {
			if trip.EndTime, err = ParseTime(field(ColEndTime)); err != nil {
				return nil, Schema{}, &MalformedRecordError{Line: line, Column: ColEndTime, Value: field(ColEndTime), Err: err}
			}
		}
		if trip.Duration, err = parseDuration(field(ColDuration)); err != nil {
			return nil, Schema{}, &MalformedRecordError{Line: line, Column: ColDuration, Value: field(ColDuration), Err: err}
		}
		if hasGender {
			trip.Gender = field(ColGender)
		}
		if hasBirthYear {
			if trip.BirthYear, err = parseBirthYear(field(ColBirthYear)); err != nil {
				return nil, Schema{}, &MalformedRecordError{Line: line, Column: ColBirthYear, Value: field(ColBirthYear), Err: err}
			}
		}

		trips = append(trips, trip)
	}

	return trips, schema, nil
}

// ParseTime parses a start or end timestamp in any of the supported layouts
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format")
}

// parseDuration parses a finite, non-negative number of seconds
func parseDuration(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("duration must be finite")
	}
	if v < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}
	return v, nil
}

// parseBirthYear returns nil for empty and non-finite values ("1985.0" is 1985)
func parseBirthYear(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, nil
	}
	if v < minBirthYear || v > maxBirthYear {
		return nil, fmt.Errorf("year outside %d-%d", minBirthYear, maxBirthYear)
	}
	year := int(v)
	return &year, nil
}
