package xunsafe_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jlondono223/memory-allocator/pkg/xunsafe"
)

func TestCast(t *testing.T) {
	Convey("Given a pointer to an int", t, func() {
		i := 42
		ptr := &i

		Convey("Casting to a different pointer type preserves the address", func() {
			bytePtr := xunsafe.Cast[byte](ptr)
			So(bytePtr, ShouldNotBeNil)

			intPtr := xunsafe.Cast[int](bytePtr)
			So(*intPtr, ShouldEqual, 42)
		})
	})
}

func TestAdd(t *testing.T) {
	Convey("Given an array of ints", t, func() {
		arr := [5]int{1, 2, 3, 4, 5}
		basePtr := &arr[0]

		Convey("Add offsets the pointer scaled by the element size", func() {
			So(*xunsafe.Add(basePtr, 2), ShouldEqual, 3)
			So(*xunsafe.Add(basePtr, 4), ShouldEqual, 5)
			So(*xunsafe.Add(basePtr, 0), ShouldEqual, 1)
		})
	})
}

func TestSub(t *testing.T) {
	Convey("Given pointers into the same array", t, func() {
		arr := [5]int{1, 2, 3, 4, 5}
		basePtr := &arr[0]
		ptr2 := &arr[2]
		ptr4 := &arr[4]

		Convey("Sub returns the scaled element distance between them", func() {
			So(xunsafe.Sub(ptr4, ptr2), ShouldEqual, 2)
			So(xunsafe.Sub(ptr2, ptr2), ShouldEqual, 0)
			So(xunsafe.Sub(ptr2, basePtr), ShouldEqual, 2)
		})
	})
}
