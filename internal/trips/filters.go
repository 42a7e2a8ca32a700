package trips

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jgoulah/bikeshare/pkg/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Filters selects a city dataset and narrows it by month and day of week
type Filters struct {
	City  string `json:"city" validate:"required,oneof=chicago new_york_city washington"`
	Month string `json:"month" validate:"required,oneof=all january february march april may june"`
	Day   string `json:"day" validate:"required,oneof=all monday tuesday wednesday thursday friday saturday sunday"`
}

// Validate checks every field against its supported set
func (f Filters) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilters, err)
	}
	return nil
}

// ParseFilters normalizes free-text city, month and day values and validates them
func ParseFilters(city, month, day string) (Filters, error) {
	var f Filters
	var err error

	if f.City, err = ParseCity(city); err != nil {
		return Filters{}, err
	}
	if f.Month, err = ParseMonth(month); err != nil {
		return Filters{}, err
	}
	if f.Day, err = ParseDay(day); err != nil {
		return Filters{}, err
	}
	return f, nil
}

// ParseCity accepts any casing and "new york city" or "new-york-city" spellings
func ParseCity(s string) (string, error) {
	city := strings.ToLower(strings.TrimSpace(s))
	city = strings.Join(strings.FieldsFunc(city, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
	return parseOneOf("city", city, models.Cities)
}

// ParseMonth accepts "all" or a full month name from january to june
func ParseMonth(s string) (string, error) {
	return parseOneOf("month", strings.ToLower(strings.TrimSpace(s)), models.Months)
}

// ParseDay accepts "all" or a full weekday name
func ParseDay(s string) (string, error) {
	return parseOneOf("day", strings.ToLower(strings.TrimSpace(s)), models.Days)
}

func parseOneOf(field, value string, allowed []string) (string, error) {
	if err := validate.Var(value, "required,oneof="+strings.Join(allowed, " ")); err != nil {
		return "", fmt.Errorf("%w: %s %q (available: %s)", ErrInvalidFilters, field, value, strings.Join(allowed, ", "))
	}
	return value, nil
}
