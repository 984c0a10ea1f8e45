package heap_test

import (
	"testing"
	"unsafe"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jlondono223/memory-allocator/pkg/heap"
)

var lastFinalized unsafe.Pointer

// bumpFinalizer is a package-level, non-capturing func: the only kind of
// finalizer the header's single-word xunsafe.PC slot can carry.
func bumpFinalizer(p unsafe.Pointer) {
	lastFinalized = p
}

func TestBlockFinalizer(t *testing.T) {
	Convey("Given a block with no finalizer", t, func() {
		var a heap.Arena
		So(a.Initialize(64, new(noopCollector)), ShouldBeTrue)

		p := a.Allocate(4, nil)
		So(p, ShouldNotBeNil)

		Convey("Finalizer reads back as the zero PC", func() {
			So(uint64(a.First().Finalizer()), ShouldEqual, uint64(0))
		})
	})

	Convey("Given a block allocated with a finalizer", t, func() {
		var a heap.Arena
		So(a.Initialize(64, new(noopCollector)), ShouldBeTrue)

		p := a.Allocate(4, bumpFinalizer)
		So(p, ShouldNotBeNil)

		Convey("Finalizer reads back as non-zero and is callable", func() {
			fin := a.First().Finalizer()
			So(uint64(fin), ShouldNotEqual, uint64(0))

			lastFinalized = nil
			fin.Get()(p)
			So(lastFinalized, ShouldEqual, p)
		})
	})
}

func TestBlockAbsorb(t *testing.T) {
	Convey("Given two adjacent free blocks", t, func() {
		var a heap.Arena
		So(a.Initialize(64, new(noopCollector)), ShouldBeTrue)

		// Carve the single free block into two by allocating then
		// immediately making the split remainder the subject.
		a.Allocate(4, nil)
		first := a.First()
		remainder, ok := a.Next(first)
		So(ok, ShouldBeTrue)
		remainderSize := remainder.Size()

		Convey("Absorb grows the first block's size by the second's header and payload", func() {
			combinedSize := first.Size()
			first.SetAllocated(false)
			first.Absorb(remainder)

			So(first.Size(), ShouldEqual, combinedSize+heap.HeaderSize+remainderSize)
			_, hasNext := a.Next(first)
			So(hasNext, ShouldBeFalse)
		})
	})
}

func TestArenaPayloadView(t *testing.T) {
	Convey("Given an allocated block", t, func() {
		var a heap.Arena
		So(a.Initialize(64, new(noopCollector)), ShouldBeTrue)

		p := a.Allocate(2, nil)
		So(p, ShouldNotBeNil)

		Convey("PayloadView resolves to exactly the requested number of bytes", func() {
			view := a.PayloadView(a.First())
			So(view.Len(), ShouldEqual, 2*heap.WordSize)

			buf := a.Bytes(view)
			buf[0] = 0xAB
			So(*(*byte)(p), ShouldEqual, byte(0xAB))
		})
	})
}
