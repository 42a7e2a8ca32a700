package session

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/bikeshare/internal/trips"
)

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
0,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
1,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber
2,2017-03-12 10:40:00,2017-03-12 10:46:00,300,Yuma St & Tenley Circle NW,15th & K St NW,Customer
`

func newTestSession(t *testing.T, input string, pageSize int) (*Session, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "washington.csv"), []byte(washingtonCSV), 0644))

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(trips.NewCSVSource(dir), strings.NewReader(input), &out, pageSize, logger), &out
}

func TestSession_Reports(t *testing.T) {
	s, out := newTestSession(t, "washington\nall\nall\nno\nno\n", 5)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, StateDone, s.State())

	text := out.String()
	assert.Contains(t, text, "You will see all the data of bike sharing.")
	assert.Contains(t, text, "Most Popular Start Month: march")
	assert.Contains(t, text, "Most frequent trip:         14th & Belmont St NW to 15th & K St NW")
	assert.Contains(t, text, "Gender information is not available for this dataset.")
	assert.Contains(t, text, "Birth year information is not available for this dataset.")
}

func TestSession_RepromptsInvalidInput(t *testing.T) {
	s, out := newTestSession(t, "boston\nWashington\njuly\nMarch\nfunday\nsaturday\nno\nno\n", 5)

	require.NoError(t, s.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Invalid city name. Please try again.")
	assert.Contains(t, text, "Invalid month name. Please try again.")
	assert.Contains(t, text, "Invalid day name. Please try again.")
	assert.Equal(t, trips.Filters{City: "washington", Month: "march", Day: "saturday"}, s.filters)
	assert.Contains(t, text, "Most Popular Start Day:   saturday (1 trips)")
}

func TestSession_RawRowsPaging(t *testing.T) {
	s, out := newTestSession(t, "washington\nall\nall\nyes\nyes\nyes\nno\n", 2)

	require.NoError(t, s.Run(context.Background()))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Do you wish to continue?"))
	assert.Contains(t, text, "Yuma St & Tenley Circle NW")
	assert.Contains(t, text, "No more trips to show.")
	assert.NotContains(t, text, "Calculating")
}

func TestSession_EmptySelection(t *testing.T) {
	s, out := newTestSession(t, "washington\njanuary\nall\nno\nno\n", 5)

	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "No data for this selection.")
}

func TestSession_MissingDataAbortsCycle(t *testing.T) {
	s, out := newTestSession(t, "chicago\nall\nall\nyes\nwashington\nall\nsunday\nno\nno\n", 5)

	require.NoError(t, s.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Error: loading chicago trips")
	assert.Equal(t, 2, strings.Count(text, "Would you like to restart?"))
	assert.Contains(t, text, "Most Popular Start Day:   sunday")
}

func TestSession_EOFFinishes(t *testing.T) {
	s, _ := newTestSession(t, "washington\nall\n", 5)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, StateDone, s.State())
}

func TestSession_CanceledContext(t *testing.T) {
	s, _ := newTestSession(t, "washington\nall\nall\nno\nno\n", 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "collect_filters", StateCollectFilters.String())
	assert.Equal(t, "raw_rows", StateRawRows.String())
	assert.Equal(t, "state(42)", State(42).String())
}
