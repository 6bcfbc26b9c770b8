package browse

import "sort"

// Order is a deterministic, total ordering: a primary comparison plus an
// ascending identifier tie-break so repeated runs over identical input
// always produce the same sequence.
type Order[T any] struct {
	// Primary returns <0 when a sorts before b, >0 when after, 0 on ties.
	Primary func(a, b T) int
	// TieID yields the stable identifier used to break primary ties.
	TieID func(T) string
}

// Sort returns an ordered copy of records. The input is left untouched.
// Sorting the output again yields the same sequence.
func (o Order[T]) Sort(records []T) []T {
	out := append([]T(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		if o.Primary != nil {
			if c := o.Primary(out[i], out[j]); c != 0 {
				return c < 0
			}
		}
		if o.TieID != nil {
			return o.TieID(out[i]) < o.TieID(out[j])
		}
		return false
	})
	return out
}

// DescFloat builds a primary comparison sorting higher values first, used
// for severity metrics so the most actionable records surface on page one.
func DescFloat[T any](key func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		av, bv := key(a), key(b)
		switch {
		case av > bv:
			return -1
		case av < bv:
			return 1
		default:
			return 0
		}
	}
}

// DescInt64 is DescFloat for integer keys such as unix timestamps.
func DescInt64[T any](key func(T) int64) func(a, b T) int {
	return func(a, b T) int {
		av, bv := key(a), key(b)
		switch {
		case av > bv:
			return -1
		case av < bv:
			return 1
		default:
			return 0
		}
	}
}
