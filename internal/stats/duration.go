package stats

import (
	"time"

	"github.com/jgoulah/bikeshare/internal/trips"
)

// DurationReport holds trip duration totals in seconds, unrounded
type DurationReport struct {
	Total   float64       `json:"total_seconds"`
	Mean    float64       `json:"mean_seconds"`
	Elapsed time.Duration `json:"-"`
}

// DurationStats sums trip durations and takes their mean
func DurationStats(t *trips.Table) (DurationReport, error) {
	if t.Len() == 0 {
		return DurationReport{}, ErrEmptyTable
	}

	var total float64
	for _, trip := range t.Records {
		total += trip.Duration
	}
	return DurationReport{Total: total, Mean: total / float64(t.Len())}, nil
}
