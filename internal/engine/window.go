package engine

import (
	"fmt"
	"sort"

	"go-sustainability-analytics/internal/model"
)

// LessFn orders two records by some key. Ties (neither a<b nor b<a) are
// always broken by ID ascending so window and tile assignment stays
// deterministic across runs.
type LessFn func(a, b model.ProductRecord) bool

// LagValue is one lag result. Valid is false on the first row of the
// ordered sequence, where no previous value exists.
type LagValue struct {
	Value float64
	Valid bool
}

// MovingAverage computes, for every record, the mean of value over the
// current row and up to `preceding` prior rows within the record's
// partition, ordered by less (ties by ID). At partition start the frame
// truncates to the rows available — no padding. The returned slice is
// aligned 1:1 with the input.
func MovingAverage(records []model.ProductRecord, partition KeyFn, less LessFn, value ValueFn, preceding int) ([]float64, error) {
	if preceding < 0 {
		return nil, fmt.Errorf("preceding row count %d: %w", preceding, model.ErrInvalidParameter)
	}

	out := make([]float64, len(records))
	for _, indices := range partitionIndices(records, partition) {
		sortIndices(records, indices, less)

		// Sliding sum over the ordered partition
		var windowSum float64
		for pos, idx := range indices {
			windowSum += value(records[idx])
			if pos > preceding {
				windowSum -= value(records[indices[pos-preceding-1]])
			}
			frameLen := pos + 1
			if frameLen > preceding+1 {
				frameLen = preceding + 1
			}
			out[idx] = windowSum / float64(frameLen)
		}
	}

	return out, nil
}

// Lag returns, for every record, the value of the immediately preceding
// record in the sequence ordered by less (ties by ID). The first record
// of the sequence gets an invalid LagValue. Aligned 1:1 with the input.
func Lag(records []model.ProductRecord, less LessFn, value ValueFn) []LagValue {
	out := make([]LagValue, len(records))
	indices := allIndices(len(records))
	sortIndices(records, indices, less)

	for pos, idx := range indices {
		if pos == 0 {
			continue
		}
		out[idx] = LagValue{Value: value(records[indices[pos-1]]), Valid: true}
	}

	return out
}

// NTile assigns every record a tile number in [1,k] over the sequence
// ordered by less (ties by ID). Tiles are contiguous and near-equal:
// with n rows the first n%k tiles hold ceil(n/k) rows, the rest
// floor(n/k). This remainder rule fixes the tier cutoffs. Aligned 1:1
// with the input.
func NTile(records []model.ProductRecord, less LessFn, k int) ([]int, error) {
	if k < 1 {
		return nil, fmt.Errorf("tile count %d: %w", k, model.ErrInvalidParameter)
	}

	n := len(records)
	out := make([]int, n)
	if n == 0 {
		return out, nil
	}

	indices := allIndices(n)
	sortIndices(records, indices, less)

	base := n / k
	remainder := n % k

	pos := 0
	for tile := 1; tile <= k; tile++ {
		size := base
		if tile <= remainder {
			size++
		}
		for i := 0; i < size && pos < n; i++ {
			out[indices[pos]] = tile
			pos++
		}
	}

	return out, nil
}

// ------------------- Ordering helpers -------------------

// partitionIndices groups record indices by partition key, partitions
// ordered by first appearance.
func partitionIndices(records []model.ProductRecord, partition KeyFn) [][]int {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i, rec := range records {
		key := partition(rec)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	partitions := make([][]int, 0, len(order))
	for _, key := range order {
		partitions = append(partitions, grouped[key])
	}
	return partitions
}

// sortIndices orders indices by less with ID ascending as tie-break.
func sortIndices(records []model.ProductRecord, indices []int, less LessFn) {
	sort.Slice(indices, func(i, j int) bool {
		a, b := records[indices[i]], records[indices[j]]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})
}

func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
