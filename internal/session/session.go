// Package session drives the interactive explore loop as a small state machine.
//
// A cycle moves through CollectFilters, Load and ChooseView, then either pages
// through raw rows or prints the reports, and ends at Restart, which either
// starts a new cycle or finishes. End of input at any prompt finishes the session.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jgoulah/bikeshare/internal/report"
	"github.com/jgoulah/bikeshare/internal/stats"
	"github.com/jgoulah/bikeshare/internal/trips"
)

// State is a step of the explore loop
type State int

const (
	StateCollectFilters State = iota
	StateLoad
	StateChooseView
	StateRawRows
	StateReports
	StateRestart
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCollectFilters:
		return "collect_filters"
	case StateLoad:
		return "load"
	case StateChooseView:
		return "choose_view"
	case StateRawRows:
		return "raw_rows"
	case StateReports:
		return "reports"
	case StateRestart:
		return "restart"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session holds the state of one interactive run
type Session struct {
	src      trips.Source
	in       *bufio.Scanner
	out      io.Writer
	console  *report.Console
	pageSize int
	logger   *slog.Logger

	state   State
	runID   string
	filters trips.Filters
	table   *trips.Table
	offset  int
}

// New creates a session reading answers from in and writing prompts and reports to out
func New(src trips.Source, in io.Reader, out io.Writer, pageSize int, logger *slog.Logger) *Session {
	if pageSize <= 0 {
		pageSize = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		src:      src,
		in:       bufio.NewScanner(in),
		out:      out,
		console:  report.NewConsole(out),
		pageSize: pageSize,
		logger:   logger,
		state:    StateCollectFilters,
	}
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Run steps the machine until it reaches StateDone. Source and parse errors
// abort only the current cycle; anything else is returned.
func (s *Session) Run(ctx context.Context) error {
	for s.state != StateDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		next, err := s.step(ctx)
		if errors.Is(err, io.EOF) {
			s.logger.Debug("Input closed", slog.String("state", s.state.String()))
			next, err = StateDone, nil
		}
		if err != nil {
			return err
		}

		s.logger.Debug("Session transition",
			slog.String("run_id", s.runID),
			slog.String("from", s.state.String()),
			slog.String("to", next.String()))
		s.state = next
	}
	return nil
}

func (s *Session) step(ctx context.Context) (State, error) {
	switch s.state {
	case StateCollectFilters:
		return s.collectFilters()
	case StateLoad:
		return s.load(ctx)
	case StateChooseView:
		return s.chooseView()
	case StateRawRows:
		return s.rawRows()
	case StateReports:
		return s.reports(ctx)
	case StateRestart:
		return s.restart()
	default:
		return StateDone, fmt.Errorf("unexpected state %s", s.state)
	}
}

func (s *Session) collectFilters() (State, error) {
	fmt.Fprintln(s.out, "Hello! Let's explore some US bikeshare data!")

	city, err := s.askUntilValid("Please enter the name of the city to analyze (chicago, new york city, washington): ", "city name", trips.ParseCity)
	if err != nil {
		return StateDone, err
	}
	month, err := s.askUntilValid("Please enter the month to filter by (all, january, february, ... , june): ", "month name", trips.ParseMonth)
	if err != nil {
		return StateDone, err
	}
	day, err := s.askUntilValid("Please enter the day of the week to filter by (all, monday, tuesday, ... sunday): ", "day name", trips.ParseDay)
	if err != nil {
		return StateDone, err
	}

	fmt.Fprintln(s.out, strings.Repeat("-", 40))
	s.filters = trips.Filters{City: city, Month: month, Day: day}
	return StateLoad, nil
}

func (s *Session) load(ctx context.Context) (State, error) {
	s.runID = uuid.NewString()
	s.logger.Info("Loading trips",
		slog.String("run_id", s.runID),
		slog.String("city", s.filters.City),
		slog.String("month", s.filters.Month),
		slog.String("day", s.filters.Day))

	table, err := trips.Load(ctx, s.src, s.filters)
	if err != nil {
		var sourceErr *trips.DataSourceError
		var recordErr *trips.MalformedRecordError
		if errors.As(err, &sourceErr) || errors.As(err, &recordErr) {
			s.logger.Error("Loading trips failed", slog.String("run_id", s.runID), slog.String("error", err.Error()))
			s.console.Error(err)
			return StateRestart, nil
		}
		return StateDone, fmt.Errorf("loading trips: %w", err)
	}

	s.table = table
	s.logger.Info("Trips loaded", slog.String("run_id", s.runID), slog.Int("trips", table.Len()))
	return StateChooseView, nil
}

func (s *Session) chooseView() (State, error) {
	answer, err := s.ask(fmt.Sprintf("Would you like to view %d rows of individual trip data? Enter 'yes' or 'no': ", s.pageSize))
	if err != nil {
		return StateDone, err
	}
	if isYes(answer) {
		s.offset = 0
		return StateRawRows, nil
	}
	fmt.Fprintln(s.out, "\nYou will see all the data of bike sharing.")
	return StateReports, nil
}

func (s *Session) rawRows() (State, error) {
	rows := s.table.Page(s.offset, s.pageSize)
	if len(rows) == 0 {
		if s.offset == 0 {
			s.console.Error(stats.ErrEmptyTable)
		} else {
			fmt.Fprintln(s.out, "\nNo more trips to show.")
		}
		return StateRestart, nil
	}

	s.console.Page(rows, s.offset)
	s.offset += len(rows)

	answer, err := s.ask("Do you wish to continue? Enter 'yes' or 'no': ")
	if err != nil {
		return StateDone, err
	}
	if isYes(answer) {
		return StateRawRows, nil
	}
	return StateRestart, nil
}

func (s *Session) reports(ctx context.Context) (State, error) {
	summary, err := stats.Compute(ctx, s.table)
	if err != nil {
		if errors.Is(err, stats.ErrEmptyTable) {
			s.console.Error(err)
			return StateRestart, nil
		}
		return StateDone, fmt.Errorf("computing statistics: %w", err)
	}
	if err := s.console.Summary(summary); err != nil {
		return StateDone, err
	}
	return StateRestart, nil
}

func (s *Session) restart() (State, error) {
	s.table = nil
	answer, err := s.ask("\nWould you like to restart? Enter yes or no.\n")
	if err != nil {
		return StateDone, err
	}
	if isYes(answer) {
		return StateCollectFilters, nil
	}
	return StateDone, nil
}

// askUntilValid repeats prompt until parse accepts the answer
func (s *Session) askUntilValid(prompt, field string, parse func(string) (string, error)) (string, error) {
	for {
		answer, err := s.ask(prompt)
		if err != nil {
			return "", err
		}
		value, err := parse(answer)
		if err == nil {
			return value, nil
		}
		fmt.Fprintf(s.out, "Invalid %s. Please try again.\n", field)
	}
}

// ask prints prompt and reads one line; io.EOF means the input is exhausted
func (s *Session) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
