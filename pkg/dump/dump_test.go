package dump_test

import (
	"strings"
	"testing"

	"github.com/jlondono223/memory-allocator/pkg/dump"
	"github.com/jlondono223/memory-allocator/pkg/heap"
	"github.com/jlondono223/memory-allocator/pkg/platform"
)

type noopCollector struct{}

func (noopCollector) Collect(*heap.Arena) {}

func TestDumpHeapSection(t *testing.T) {
	var a heap.Arena
	if !a.Initialize(64, noopCollector{}) {
		t.Fatal("Initialize failed")
	}

	if a.Allocate(2, nil) == nil {
		t.Fatal("Allocate failed")
	}

	probe := platform.NewManual()

	var out strings.Builder
	dump.Dump(&out, &a, probe)
	text := out.String()

	for _, want := range []string{
		"Global Memory: start=", "Stack Memory", "Registers", "Heap", "(2 word header, 1 allocated)", "Block 2 Allocated Unmarked",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("dump output missing %q, got:\n%s", want, text)
		}
	}
}

func TestDumpAddressWidth(t *testing.T) {
	var a heap.Arena
	if !a.Initialize(16, noopCollector{}) {
		t.Fatal("Initialize failed")
	}

	probe := platform.NewManual()

	var out strings.Builder
	dump.Dump(&out, &a, probe)
	text := out.String()

	// Every block line records the finalizer as 16 hex digits, even when
	// the block is free and the value is zero.
	if !strings.Contains(text, "0000000000000000") {
		t.Errorf("expected a 16 hex digit zero finalizer, got:\n%s", text)
	}
}

func TestDumpFree(t *testing.T) {
	var a heap.Arena
	if !a.Initialize(16, noopCollector{}) {
		t.Fatal("Initialize failed")
	}

	probe := platform.NewManual()

	var out strings.Builder
	dump.Dump(&out, &a, probe)
	text := out.String()

	if !strings.Contains(text, "Free") {
		t.Errorf("expected the single untouched block to be reported Free, got:\n%s", text)
	}
}
