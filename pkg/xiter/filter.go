//go:build go1.23

package xiter

import "iter"

// Filter creates an iterator which uses a function f to determine if an element should be yielded.
func Filter[T any](x iter.Seq[T], f func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range x {
			if !f(v) {
				continue
			}

			if !yield(v) {
				break
			}
		}
	}
}
