package stats

import (
	"time"

	"github.com/jgoulah/bikeshare/internal/trips"
	"github.com/jgoulah/bikeshare/pkg/models"
)

// TimeReport holds the most frequent times of travel
type TimeReport struct {
	Month   Popular[string] `json:"popular_month"`
	Day     Popular[string] `json:"popular_day"`
	Hour    Popular[int]    `json:"popular_hour"`
	Elapsed time.Duration   `json:"-"`
}

// TimeStats finds the most popular start month, day of week and hour
func TimeStats(t *trips.Table) (TimeReport, error) {
	var r TimeReport
	var err error

	if r.Month, err = Mode(column(t.Records, func(trip models.Trip) string { return trip.Month })); err != nil {
		return TimeReport{}, err
	}
	if r.Day, err = Mode(column(t.Records, func(trip models.Trip) string { return trip.DayOfWeek })); err != nil {
		return TimeReport{}, err
	}
	if r.Hour, err = Mode(column(t.Records, func(trip models.Trip) int { return trip.Hour })); err != nil {
		return TimeReport{}, err
	}
	return r, nil
}
