package browse

import "strings"

// Predicate reports whether a record passes one filter criterion.
type Predicate[T any] func(T) bool

// Stack composes independent predicates with logical AND. A record passes
// when every active predicate accepts it; evaluation short-circuits on the
// first rejection. Predicates must be pure and never mutate their input.
type Stack[T any] struct {
	preds []Predicate[T]
}

// NewStack returns an empty predicate stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Add appends a predicate. Nil predicates are skipped so callers can pass
// the result of conditional builders directly.
func (s *Stack[T]) Add(p Predicate[T]) *Stack[T] {
	if p != nil {
		s.preds = append(s.preds, p)
	}
	return s
}

// AddIf appends the predicate only when active is true. An inactive filter
// is no constraint at all, never a match-nothing constraint.
func (s *Stack[T]) AddIf(active bool, p Predicate[T]) *Stack[T] {
	if active {
		s.Add(p)
	}
	return s
}

// Len reports the number of active predicates.
func (s *Stack[T]) Len() int {
	return len(s.preds)
}

// Apply returns the records passing every predicate. The input slice is
// never mutated; the result is always a fresh slice.
func (s *Stack[T]) Apply(records []T) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if s.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Match evaluates the stack against a single record.
func (s *Stack[T]) Match(rec T) bool {
	for _, p := range s.preds {
		if !p(rec) {
			return false
		}
	}
	return true
}

// ContainsFold reports whether haystack contains needle case-insensitively.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// EqualFold is a case-insensitive equality check for categorical matches.
func EqualFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// InRange checks v against optional bounds; a nil bound is unconstrained on
// that side. Both bounds are inclusive.
func InRange(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}
