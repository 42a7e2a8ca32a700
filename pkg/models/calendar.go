package models

// Supported cities, keyed the way they are entered at the prompt
const (
	CityChicago     = "chicago"
	CityNewYorkCity = "new_york_city"
	CityWashington  = "washington"
)

// All is the filter value that disables a month or day filter
const All = "all"

// Cities lists the supported cities in display order
var Cities = []string{CityChicago, CityNewYorkCity, CityWashington}

// CityFiles maps each city to the CSV file that holds its trips
var CityFiles = map[string]string{
	CityChicago:     "chicago.csv",
	CityNewYorkCity: "new_york_city.csv",
	CityWashington:  "washington.csv",
}

// Months are the month filter values covered by the datasets, "all" first
var Months = []string{All, "january", "february", "march", "april", "may", "june"}

// Days are the day-of-week filter values, "all" first
var Days = []string{All, "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
