package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jgoulah/bikeshare/internal/trips"
)

// Summary collects all four reports for one filtered table
type Summary struct {
	City     string         `json:"city"`
	Trips    int            `json:"trips"`
	Time     TimeReport     `json:"time"`
	Stations StationReport  `json:"stations"`
	Duration DurationReport `json:"duration"`
	Users    UserReport     `json:"users"`
}

// Compute runs the aggregators concurrently over t. The table is only read,
// so no coordination is needed beyond waiting for all of them.
func Compute(ctx context.Context, t *trips.Table) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}

	s := &Summary{City: t.City, Trips: t.Len()}
	var g errgroup.Group

	g.Go(func() error {
		start := time.Now()
		r, err := TimeStats(t)
		r.Elapsed = time.Since(start)
		s.Time = r
		return err
	})
	g.Go(func() error {
		start := time.Now()
		r, err := StationStats(t)
		r.Elapsed = time.Since(start)
		s.Stations = r
		return err
	})
	g.Go(func() error {
		start := time.Now()
		r, err := DurationStats(t)
		r.Elapsed = time.Since(start)
		s.Duration = r
		return err
	})
	g.Go(func() error {
		start := time.Now()
		r, err := UserStats(t)
		r.Elapsed = time.Since(start)
		s.Users = r
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}
