package stats

import (
	"errors"
	"slices"
)

// ErrEmptyTable is returned by every aggregate over a table with no trips
var ErrEmptyTable = errors.New("no data for this selection")

// Popular is the most frequent value of a column and how often it occurs
type Popular[T comparable] struct {
	Value T   `json:"value"`
	Count int `json:"count"`
}

// Count is one row of a value-count table
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Mode returns the most frequent value. When several values share the
// highest count, the one that occurs first in values wins.
func Mode[T comparable](values []T) (Popular[T], error) {
	if len(values) == 0 {
		return Popular[T]{}, ErrEmptyTable
	}

	counts := make(map[T]int)
	var order []T
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	var best Popular[T]
	for _, v := range order {
		if counts[v] > best.Count {
			best = Popular[T]{Value: v, Count: counts[v]}
		}
	}
	return best, nil
}

// ValueCounts counts each distinct non-empty value, most frequent first.
// Equal counts keep first-appearance order. The result is never nil.
func ValueCounts(values []string) []Count {
	index := make(map[string]int)
	out := make([]Count, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, Count{Value: v, Count: 1})
	}

	slices.SortStableFunc(out, func(a, b Count) int {
		return b.Count - a.Count
	})
	return out
}

// column projects one field out of every trip
func column[R any, T any](records []R, get func(R) T) []T {
	out := make([]T, len(records))
	for i, r := range records {
		out[i] = get(r)
	}
	return out
}
