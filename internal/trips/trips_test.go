package trips

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/bikeshare/pkg/models"
)

// 2017-01-01 is a Sunday, 2017-01-02 a Monday, 2017-02-06 a Monday, 2017-03-01 a Wednesday
const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-01-01 09:07:57,2017-01-01 09:20:53,776.0,Canal St & Adams St,Clark St & Randolph St,Subscriber,Male,1992.0
2,2017-01-02 17:45:00,2017-01-02 17:55:00,600.0,Lake Shore Dr & Monroe St,Canal St & Adams St,Customer,,
3,2017-02-06 08:00:00,2017-02-06 08:10:00,600.5,Canal St & Adams St,Clark St & Randolph St,Subscriber,Female,1985.0
4,2017-03-01 08:30:00,2017-03-01 08:40:00,300.0,Canal St & Adams St,Millennium Park,Subscriber,Male,NaN
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
0,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
1,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber
`

func writeCity(t *testing.T, dir, city, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, models.CityFiles[city]), []byte(contents), 0644))
}

func newSource(t *testing.T) *CSVSource {
	t.Helper()
	dir := t.TempDir()
	writeCity(t, dir, models.CityChicago, chicagoCSV)
	writeCity(t, dir, models.CityWashington, washingtonCSV)
	return NewCSVSource(dir)
}

func TestCSVSource_ReadTrips(t *testing.T) {
	src := newSource(t)

	records, schema, err := src.ReadTrips(context.Background(), models.CityChicago)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, Schema{HasGender: true, HasBirthYear: true}, schema)

	first := records[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, time.Date(2017, 1, 1, 9, 7, 57, 0, time.UTC), first.StartTime)
	assert.Equal(t, time.Date(2017, 1, 1, 9, 20, 53, 0, time.UTC), first.EndTime)
	assert.Equal(t, "Canal St & Adams St", first.StartStation)
	assert.Equal(t, 776.0, first.Duration)
	assert.Equal(t, "Male", first.Gender)
	require.NotNil(t, first.BirthYear)
	assert.Equal(t, 1992, *first.BirthYear)

	assert.Empty(t, records[1].Gender)
	assert.Nil(t, records[1].BirthYear, "empty birth year is missing")
	assert.Nil(t, records[3].BirthYear, "NaN birth year is missing")
}

func TestCSVSource_ReadTripsWithoutOptionalColumns(t *testing.T) {
	src := newSource(t)

	records, schema, err := src.ReadTrips(context.Background(), models.CityWashington)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.False(t, schema.HasGender)
	assert.False(t, schema.HasBirthYear)
	assert.Nil(t, records[0].BirthYear)
}

func TestCSVSource_MissingFile(t *testing.T) {
	src := newSource(t)

	_, _, err := src.ReadTrips(context.Background(), models.CityNewYorkCity)
	require.Error(t, err)

	var sourceErr *DataSourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.Equal(t, models.CityNewYorkCity, sourceErr.City)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name       string
		csv        string
		wantColumn string
		wantLine   int
	}{
		{
			name:       "bad start time",
			csv:        "Start Time,Trip Duration,Start Station,End Station,User Type\nyesterday,10,A,B,Customer\n",
			wantColumn: ColStartTime,
			wantLine:   2,
		},
		{
			name:       "bad duration",
			csv:        "Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01 00:00:00,10,A,B,Customer\n2017-01-01 00:00:00,ten,A,B,Customer\n",
			wantColumn: ColDuration,
			wantLine:   3,
		},
		{
			name:       "bad birth year",
			csv:        "Start Time,Trip Duration,Start Station,End Station,User Type,Birth Year\n2017-01-01 00:00:00,10,A,B,Customer,nineteen\n",
			wantColumn: ColBirthYear,
			wantLine:   2,
		},
		{
			name:       "NaN duration",
			csv:        "Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01 00:00:00,10,A,B,Customer\n2017-01-01 00:00:00,NaN,A,B,Customer\n",
			wantColumn: ColDuration,
			wantLine:   3,
		},
		{
			name:       "infinite duration",
			csv:        "Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01 00:00:00,+Inf,A,B,Customer\n",
			wantColumn: ColDuration,
			wantLine:   2,
		},
		{
			name:       "negative duration",
			csv:        "Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01 00:00:00,-5,A,B,Customer\n",
			wantColumn: ColDuration,
			wantLine:   2,
		},
		{
			name:       "birth year out of range",
			csv:        "Start Time,Trip Duration,Start Station,End Station,User Type,Birth Year\n2017-01-01 00:00:00,10,A,B,Customer,1e30\n",
			wantColumn: ColBirthYear,
			wantLine:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCSV(context.Background(), strings.NewReader(tt.csv))

			var recordErr *MalformedRecordError
			require.True(t, errors.As(err, &recordErr), "got %v", err)
			assert.Equal(t, tt.wantColumn, recordErr.Column)
			assert.Equal(t, tt.wantLine, recordErr.Line)
		})
	}
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	_, _, err := ParseCSV(context.Background(), strings.NewReader("Start Time,End Station\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColStartStation)
}

func TestParseCSV_ToleratesBOMAndAltLayouts(t *testing.T) {
	csv := "\ufeffStart Time,Trip Duration,Start Station,End Station,User Type\n2017-05-04T13:00:00,60,A,B,Customer\n2017-05-04 14:30,60,A,B,Customer\n"

	records, _, err := ParseCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 13, records[0].StartTime.Hour())
	assert.Equal(t, 30, records[1].StartTime.Minute())
	assert.True(t, records[0].EndTime.IsZero())
}

func TestLoad_DerivesCalendarFields(t *testing.T) {
	table, err := Load(context.Background(), newSource(t), Filters{City: "chicago", Month: "all", Day: "all"})
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	first := table.Records[0]
	assert.Equal(t, "january", first.Month)
	assert.Equal(t, "sunday", first.DayOfWeek)
	assert.Equal(t, 9, first.Hour)
	assert.Equal(t, "wednesday", table.Records[3].DayOfWeek)
	assert.Equal(t, "march", table.Records[3].Month)
}

func TestLoad_Filters(t *testing.T) {
	tests := []struct {
		name      string
		month     string
		day       string
		wantLines []int
	}{
		{name: "no filter", month: "all", day: "all", wantLines: []int{2, 3, 4, 5}},
		{name: "month only", month: "january", day: "all", wantLines: []int{2, 3}},
		{name: "day only", month: "all", day: "monday", wantLines: []int{3, 4}},
		{name: "month and day", month: "february", day: "monday", wantLines: []int{4}},
		{name: "no match", month: "june", day: "all", wantLines: []int{}},
	}

	src := newSource(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(context.Background(), src, Filters{City: "chicago", Month: tt.month, Day: tt.day})
			require.NoError(t, err)

			lines := make([]int, 0, table.Len())
			for _, trip := range table.Records {
				if tt.month != "all" {
					assert.Equal(t, tt.month, trip.Month)
				}
				if tt.day != "all" {
					assert.Equal(t, tt.day, trip.DayOfWeek)
				}
				lines = append(lines, trip.Line)
			}
			assert.Equal(t, tt.wantLines, lines)
			assert.True(t, table.HasGender)
		})
	}
}

func TestTable_FilterIsCommutative(t *testing.T) {
	table, err := Load(context.Background(), newSource(t), Filters{City: "chicago", Month: "all", Day: "all"})
	require.NoError(t, err)

	for _, month := range models.Months {
		for _, day := range models.Days {
			a := table.FilterMonth(month).FilterDay(day)
			b := table.FilterDay(day).FilterMonth(month)
			if diff := cmp.Diff(a.Records, b.Records); diff != "" {
				t.Errorf("%s/%s mismatch (-month first +day first):\n%s", month, day, diff)
			}
		}
	}
}

func TestTable_FilterDoesNotMutate(t *testing.T) {
	table, err := Load(context.Background(), newSource(t), Filters{City: "chicago", Month: "all", Day: "all"})
	require.NoError(t, err)

	filtered := table.FilterMonth("march")
	assert.Equal(t, 1, filtered.Len())
	assert.Equal(t, 4, table.Len())
	assert.Equal(t, "january", table.Records[0].Month)
}

func TestTable_TripColumn(t *testing.T) {
	table, err := Load(context.Background(), newSource(t), Filters{City: "chicago", Month: "all", Day: "all"})
	require.NoError(t, err)

	for _, trip := range table.Records {
		assert.Equal(t, trip.StartStation+" to "+trip.EndStation, trip.Trip())
	}
	assert.Equal(t, "Canal St & Adams St to Millennium Park", table.Records[3].Trip())
}

func TestTable_Page(t *testing.T) {
	table, err := Load(context.Background(), newSource(t), Filters{City: "chicago", Month: "all", Day: "all"})
	require.NoError(t, err)

	assert.Len(t, table.Page(0, 3), 3)
	assert.Len(t, table.Page(3, 3), 1)
	assert.Nil(t, table.Page(4, 3))
	assert.Nil(t, table.Page(0, 0))
	assert.Nil(t, table.Page(-1, 5))
	assert.Equal(t, 3, table.Page(1, 2)[0].Line)
}

func TestLoad_InvalidFilters(t *testing.T) {
	_, err := Load(context.Background(), newSource(t), Filters{City: "boston", Month: "all", Day: "all"})
	assert.True(t, errors.Is(err, ErrInvalidFilters))

	_, err = Load(context.Background(), newSource(t), Filters{City: "chicago", Month: "july", Day: "all"})
	assert.True(t, errors.Is(err, ErrInvalidFilters))
}

func TestLoad_MissingCityFile(t *testing.T) {
	_, err := Load(context.Background(), newSource(t), Filters{City: "new_york_city", Month: "all", Day: "all"})

	var sourceErr *DataSourceError
	assert.True(t, errors.As(err, &sourceErr))
}
