package engine

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"go-sustainability-analytics/internal/model"
)

// ValueFn extracts a numeric value from a record.
type ValueFn func(model.ProductRecord) float64

// KeyFn extracts a grouping key from a record.
type KeyFn func(model.ProductRecord) string

// Predicate reports whether a record satisfies a condition.
type Predicate func(model.ProductRecord) bool

// Reducer folds the records of one group into a single value.
type Reducer func(records []model.ProductRecord) (float64, error)

// GroupResult holds the reduced metrics for one group key.
type GroupResult struct {
	Key     string             `json:"key"`
	Count   int                `json:"count"`
	Metrics map[string]float64 `json:"metrics"`
}

// Aggregate partitions records by keyFn and reduces every partition with
// each named reducer. Output groups follow first-seen key order; callers
// wanting a different order apply SortGroups afterwards.
func Aggregate(records []model.ProductRecord, keyFn KeyFn, reducers map[string]Reducer) ([]GroupResult, error) {
	grouped := make(map[string][]model.ProductRecord)
	order := make([]string, 0)

	for _, rec := range records {
		key := keyFn(rec)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], rec)
	}

	groups := make([]GroupResult, 0, len(order))
	for _, key := range order {
		partition := grouped[key]
		group := GroupResult{
			Key:     key,
			Count:   len(partition),
			Metrics: make(map[string]float64, len(reducers)),
		}
		for name, reduce := range reducers {
			value, err := reduce(partition)
			if err != nil {
				return nil, fmt.Errorf("reducer %q on group %q: %w", name, key, err)
			}
			group.Metrics[name] = value
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// SortGroups sorts groups stably with the given comparator. Equal groups
// keep their first-seen relative order.
func SortGroups(groups []GroupResult, less func(a, b GroupResult) bool) {
	sort.SliceStable(groups, func(i, j int) bool { return less(groups[i], groups[j]) })
}

// ------------------- Reducers -------------------

// Count returns the number of records in the group.
func Count() Reducer {
	return func(records []model.ProductRecord) (float64, error) {
		return float64(len(records)), nil
	}
}

// CountIf counts the records satisfying the predicate.
func CountIf(pred Predicate) Reducer {
	return func(records []model.ProductRecord) (float64, error) {
		count := 0
		for _, rec := range records {
			if pred(rec) {
				count++
			}
		}
		return float64(count), nil
	}
}

// Sum totals the extracted value across the group.
func Sum(value ValueFn) Reducer {
	return func(records []model.ProductRecord) (float64, error) {
		var total float64
		for _, rec := range records {
			total += value(rec)
		}
		return total, nil
	}
}

// Avg computes the mean of the extracted value. A group is never empty
// when produced by Aggregate, but direct callers get a guard anyway.
func Avg(value ValueFn) Reducer {
	return func(records []model.ProductRecord) (float64, error) {
		if len(records) == 0 {
			return 0, model.ErrEmptyDataset
		}
		return stat.Mean(values(records, value), nil), nil
	}
}

// Min returns the smallest extracted value.
func Min(value ValueFn) Reducer {
	return func(records []model.ProductRecord) (float64, error) {
		if len(records) == 0 {
			return 0, model.ErrEmptyDataset
		}
		m := value(records[0])
		for _, rec := range records[1:] {
			if v := value(rec); v < m {
				m = v
			}
		}
		return m, nil
	}
}

// Max returns the largest extracted value.
func Max(value ValueFn) Reducer {
	return func(records []model.ProductRecord) (float64, error) {
		if len(records) == 0 {
			return 0, model.ErrEmptyDataset
		}
		m := value(records[0])
		for _, rec := range records[1:] {
			if v := value(rec); v > m {
				m = v
			}
		}
		return m, nil
	}
}

// PercentileCont computes the continuous percentile at p in [0,1]:
// linear interpolation between order statistics at rank p*(n-1).
// Requires full materialization of the group's values sorted ascending.
//
// Implemented directly rather than via gonum stat.Quantile: gonum's
// LinInterp interpolates the empirical CDF, which disagrees with the
// rank-based PERCENTILE_CONT definition for small samples.
func PercentileCont(value ValueFn, p float64) Reducer {
	return func(records []model.ProductRecord) (float64, error) {
		if p < 0 || p > 1 {
			return 0, fmt.Errorf("percentile %v out of [0,1]: %w", p, model.ErrInvalidParameter)
		}
		if len(records) == 0 {
			return 0, model.ErrEmptyDataset
		}
		vals := values(records, value)
		sort.Float64s(vals)

		rank := p * float64(len(vals)-1)
		lo := int(math.Floor(rank))
		hi := int(math.Ceil(rank))
		if lo == hi {
			return vals[lo], nil
		}
		frac := rank - float64(lo)
		return vals[lo] + frac*(vals[hi]-vals[lo]), nil
	}
}

// Median is the continuous percentile at 0.5.
func Median(value ValueFn) Reducer {
	return PercentileCont(value, 0.5)
}

// values materializes the extracted values of a group.
func values(records []model.ProductRecord, value ValueFn) []float64 {
	vals := make([]float64, len(records))
	for i, rec := range records {
		vals[i] = value(rec)
	}
	return vals
}
