package report

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/jgoulah/bikeshare/internal/stats"
	"github.com/jgoulah/bikeshare/pkg/models"
)

// JSON writes reports and raw trip pages as indented JSON documents
type JSON struct {
	w io.Writer
}

// NewJSON creates a JSON presenter writing to w
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

// Summary writes s as one JSON object
func (j *JSON) Summary(s *stats.Summary) error {
	return j.write(s)
}

// Page writes a page of trips as a JSON array
func (j *JSON) Page(rows []models.Trip) error {
	if rows == nil {
		rows = []models.Trip{}
	}
	return j.write(rows)
}

// Error writes err as {"error": "..."}, so JSON output stays parseable on failure
func (j *JSON) Error(err error) error {
	return j.write(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}

func (j *JSON) write(v any) error {
	if err := json.MarshalWrite(j.w, v, jsontext.WithIndent("  ")); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err := fmt.Fprintln(j.w)
	return err
}
