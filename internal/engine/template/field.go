package template

import (
	"Go2NetTemplates/internal/core/model"
	"sort"
)

// Field accumulates the values seen at one position of a template.
type Field struct {
	ID string

	counts map[string]int
	// values keeps distinct values in first-insertion order.
	values []model.Buffer
}

// newField creates a field seeded with one occurrence of value.
func newField(id string, value model.Buffer) *Field {
	f := &Field{
		ID:     id,
		counts: make(map[string]int),
	}
	f.Observe(value)
	return f
}

// Observe counts one more occurrence of value.
func (f *Field) Observe(value model.Buffer) {
	key := value.Key()
	if _, ok := f.counts[key]; !ok {
		f.values = append(f.values, value)
	}
	f.counts[key]++
}

// Count returns how many times value was observed.
func (f *Field) Count(value model.Buffer) int {
	return f.counts[value.Key()]
}

// Total returns the number of observations over all values.
func (f *Field) Total() int {
	total := 0
	for _, c := range f.counts {
		total += c
	}
	return total
}

// DistinctValueCount returns the number of distinct observed values.
func (f *Field) DistinctValueCount() int {
	return len(f.values)
}

// DistinctLengths returns the sorted set of bit lengths among distinct values.
func (f *Field) DistinctLengths() []int {
	seen := make(map[int]struct{})
	var lengths []int
	for _, v := range f.values {
		if _, ok := seen[v.Len()]; ok {
			continue
		}
		seen[v.Len()] = struct{}{}
		lengths = append(lengths, v.Len())
	}
	sort.Ints(lengths)
	return lengths
}

// Values returns the distinct values in first-insertion order.
func (f *Field) Values() []model.Buffer {
	out := make([]model.Buffer, len(f.values))
	copy(out, f.values)
	return out
}

// ValueCount pairs a value with its occurrence count.
type ValueCount struct {
	Value model.Buffer
	Count int
}

// Top returns the n most frequent values, highest count first. Equal counts
// keep first-insertion order. n <= 0 returns every value.
func (f *Field) Top(n int) []ValueCount {
	ranked := make([]ValueCount, len(f.values))
	for i, v := range f.values {
		ranked[i] = ValueCount{Value: v, Count: f.counts[v.Key()]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
