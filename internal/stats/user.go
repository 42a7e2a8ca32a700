package stats

import (
	"slices"
	"time"

	"github.com/jgoulah/bikeshare/internal/trips"
	"github.com/jgoulah/bikeshare/pkg/models"
)

// UserReport holds rider demographics. Genders and BirthYears are nil when
// the city's dataset has no such column.
type UserReport struct {
	UserTypes  []Count          `json:"user_types"`
	Genders    []Count          `json:"genders,omitzero"`
	BirthYears *BirthYearReport `json:"birth_years,omitzero"`
	Elapsed    time.Duration    `json:"-"`
}

// BirthYearReport summarizes the known birth years
type BirthYearReport struct {
	Earliest   int `json:"earliest"`
	MostRecent int `json:"most_recent"`
	MostCommon int `json:"most_common"`
}

// HasGenders reports whether gender counts were computed
func (r UserReport) HasGenders() bool {
	return r.Genders != nil
}

// UserStats counts user types and, when the schema carries them, genders and birth years
func UserStats(t *trips.Table) (UserReport, error) {
	if t.Len() == 0 {
		return UserReport{}, ErrEmptyTable
	}

	r := UserReport{
		UserTypes: ValueCounts(column(t.Records, func(trip models.Trip) string { return trip.UserType })),
	}
	if t.HasGender {
		r.Genders = ValueCounts(column(t.Records, func(trip models.Trip) string { return trip.Gender }))
	}
	if t.HasBirthYear {
		r.BirthYears = birthYears(t.Records)
	}
	return r, nil
}

// birthYears skips missing years; it returns nil when none are known
func birthYears(records []models.Trip) *BirthYearReport {
	var years []int
	for _, trip := range records {
		if trip.BirthYear != nil {
			years = append(years, *trip.BirthYear)
		}
	}
	if len(years) == 0 {
		return nil
	}

	common, _ := Mode(years)
	return &BirthYearReport{
		Earliest:   slices.Min(years),
		MostRecent: slices.Max(years),
		MostCommon: common.Value,
	}
}
