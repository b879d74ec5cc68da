// Package collection provides generic slice helpers used across the menu,
// cart and order log.
//
//	names := collection.Map(items, func(i models.MenuItem) string { return i.Name })
//	drinks := collection.Filter(items, func(i models.MenuItem) bool { return i.Category == "bebidas" })
package collection

import "slices"

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of s for which fn returns true. The result
// is never nil so it encodes as [] in JSON.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element of s satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// Distinct returns the keys produced by fn in first-seen order.
func Distinct[T any, K comparable](s []T, fn func(T) K) []K {
	seen := make(map[K]struct{}, len(s))
	out := make([]K, 0, len(s))
	for _, v := range s {
		k := fn(v)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// Reduce folds s into a single value using fn, starting with initial.
func Reduce[T, R any](s []T, initial R, fn func(carry R, item T) R) R {
	carry := initial
	for _, v := range s {
		carry = fn(carry, v)
	}
	return carry
}

// SortBy returns a stably sorted copy of s; s is left untouched.
func SortBy[T any](s []T, cmp func(a, b T) int) []T {
	out := slices.Clone(s)
	slices.SortStableFunc(out, cmp)
	return out
}

// Reverse returns a new slice with elements in reverse order.
func Reverse[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
