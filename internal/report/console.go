package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jgoulah/bikeshare/internal/stats"
	"github.com/jgoulah/bikeshare/pkg/models"
)

const rule = "----------------------------------------"

// Console prints reports and raw trip rows as plain text
type Console struct {
	w io.Writer
}

// NewConsole creates a console presenter writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Summary prints all four reports in order
func (c *Console) Summary(s *stats.Summary) error {
	fmt.Fprintf(c.w, "\nShowing statistics for %s trips in %s.\n", humanize.Comma(int64(s.Trips)), s.City)
	c.Time(s.Time)
	c.Stations(s.Stations)
	c.Duration(s.Duration)
	c.Users(s.Users)
	return nil
}

// Error prints err, turning an empty selection into a friendly message
func (c *Console) Error(err error) {
	if errors.Is(err, stats.ErrEmptyTable) {
		fmt.Fprintln(c.w, "\nNo data for this selection.")
		fmt.Fprintln(c.w, rule)
		return
	}
	fmt.Fprintf(c.w, "\nError: %v\n", err)
	fmt.Fprintln(c.w, rule)
}

// Time prints the most frequent times of travel
func (c *Console) Time(r stats.TimeReport) {
	fmt.Fprintln(c.w, "\nCalculating The Most Frequent Times of Travel...")
	fmt.Fprintln(c.w)
	fmt.Fprintf(c.w, "Most Popular Start Month: %s (%s trips)\n", r.Month.Value, humanize.Comma(int64(r.Month.Count)))
	fmt.Fprintf(c.w, "Most Popular Start Day:   %s (%s trips)\n", r.Day.Value, humanize.Comma(int64(r.Day.Count)))
	fmt.Fprintf(c.w, "Most Popular Start Hour:  %d (%s trips)\n", r.Hour.Value, humanize.Comma(int64(r.Hour.Count)))
	c.footer(r.Elapsed)
}

// Stations prints the most popular stations and trip
func (c *Console) Stations(r stats.StationReport) {
	fmt.Fprintln(c.w, "\nCalculating The Most Popular Stations and Trip...")
	fmt.Fprintln(c.w)
	fmt.Fprintf(c.w, "Most popular start station: %s (%s trips)\n", r.Start.Value, humanize.Comma(int64(r.Start.Count)))
	fmt.Fprintf(c.w, "Most popular end station:   %s (%s trips)\n", r.End.Value, humanize.Comma(int64(r.End.Count)))
	fmt.Fprintf(c.w, "Most frequent trip:         %s (%s trips)\n", r.Trip.Value, humanize.Comma(int64(r.Trip.Count)))
	c.footer(r.Elapsed)
}

// Duration prints total and mean travel time
func (c *Console) Duration(r stats.DurationReport) {
	fmt.Fprintln(c.w, "\nCalculating Trip Duration...")
	fmt.Fprintln(c.w)
	fmt.Fprintf(c.w, "Total travel time: %s seconds (%s)\n", humanize.CommafWithDigits(r.Total, 2), seconds(r.Total))
	fmt.Fprintf(c.w, "Mean travel time:  %s seconds (%s)\n", humanize.CommafWithDigits(r.Mean, 2), seconds(r.Mean))
	c.footer(r.Elapsed)
}

// Users prints user type, gender and birth year statistics
func (c *Console) Users(r stats.UserReport) {
	fmt.Fprintln(c.w, "\nCalculating User Stats...")
	fmt.Fprintln(c.w)

	fmt.Fprintln(c.w, "Counts of user types:")
	c.counts(r.UserTypes)

	if r.HasGenders() {
		fmt.Fprintln(c.w, "Counts of gender:")
		c.counts(r.Genders)
	} else {
		fmt.Fprintln(c.w, "Gender information is not available for this dataset.")
	}

	if r.BirthYears != nil {
		fmt.Fprintf(c.w, "Earliest year of birth:    %d\n", r.BirthYears.Earliest)
		fmt.Fprintf(c.w, "Most recent year of birth: %d\n", r.BirthYears.MostRecent)
		fmt.Fprintf(c.w, "Most common year of birth: %d\n", r.BirthYears.MostCommon)
	} else {
		fmt.Fprintln(c.w, "Birth year information is not available for this dataset.")
	}
	c.footer(r.Elapsed)
}

// Page prints one page of raw trips; offset is the index of the first row
func (c *Console) Page(rows []models.Trip, offset int) {
	fmt.Fprintf(c.w, "\n%-6s  %-19s  %-19s  %10s  %-30s  %-30s  %-10s  %-6s  %5s\n",
		"Row", "Start Time", "End Time", "Duration", "Start Station", "End Station", "User Type", "Gender", "Born")
	fmt.Fprintln(c.w, rule+rule+rule+rule)
	for i, trip := range rows {
		var endTime, born string
		if !trip.EndTime.IsZero() {
			endTime = trip.EndTime.Format("2006-01-02 15:04:05")
		}
		if trip.BirthYear != nil {
			born = strconv.Itoa(*trip.BirthYear)
		}
		fmt.Fprintf(c.w, "%-6d  %-19s  %-19s  %10.1f  %-30s  %-30s  %-10s  %-6s  %5s\n",
			offset+i, trip.StartTime.Format("2006-01-02 15:04:05"), endTime, trip.Duration,
			truncate(trip.StartStation, 30), truncate(trip.EndStation, 30), trip.UserType, trip.Gender, born)
	}
}

func (c *Console) counts(counts []stats.Count) {
	if len(counts) == 0 {
		fmt.Fprintln(c.w, "  (none)")
		return
	}
	for _, ct := range counts {
		fmt.Fprintf(c.w, "  %-12s %10s\n", ct.Value, humanize.Comma(int64(ct.Count)))
	}
}

func (c *Console) footer(elapsed time.Duration) {
	fmt.Fprintf(c.w, "\nThis took %s seconds.\n", strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64))
	fmt.Fprintln(c.w, rule)
}

// seconds renders a second count as a rounded duration such as "1h2m3s"
func seconds(s float64) string {
	return time.Duration(s * float64(time.Second)).Round(time.Second).String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
