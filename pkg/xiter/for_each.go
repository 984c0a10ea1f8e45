//go:build go1.23

package xiter

import "iter"

// ForEach calls a function f on each element of an iterator.
func ForEach[T any](x iter.Seq[T], f func(T)) {
	for v := range x {
		f(v)
	}
}
