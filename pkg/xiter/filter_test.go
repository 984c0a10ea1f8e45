//go:build go1.23

package xiter_test

import (
	"fmt"
	"slices"

	. "github.com/jlondono223/memory-allocator/pkg/xiter"
)

func ExampleFilter() {
	s := slices.Values([]int{1, 2, 3, 4, 5})
	f := Filter(s, func(n int) bool { return n%2 == 0 })

	fmt.Println(slices.Collect(f))

	// Output: [2 4]
}
