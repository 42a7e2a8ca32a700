package stats

import (
	"time"

	"github.com/jgoulah/bikeshare/internal/trips"
	"github.com/jgoulah/bikeshare/pkg/models"
)

// StationReport holds the most popular stations and station pair
type StationReport struct {
	Start   Popular[string] `json:"popular_start_station"`
	End     Popular[string] `json:"popular_end_station"`
	Trip    Popular[string] `json:"popular_trip"`
	Elapsed time.Duration   `json:"-"`
}

// StationStats finds the most popular start station, end station and "<start> to <end>" trip
func StationStats(t *trips.Table) (StationReport, error) {
	var r StationReport
	var err error

	if r.Start, err = Mode(column(t.Records, func(trip models.Trip) string { return trip.StartStation })); err != nil {
		return StationReport{}, err
	}
	if r.End, err = Mode(column(t.Records, func(trip models.Trip) string { return trip.EndStation })); err != nil {
		return StationReport{}, err
	}
	if r.Trip, err = Mode(column(t.Records, models.Trip.Trip)); err != nil {
		return StationReport{}, err
	}
	return r, nil
}
