// Command memgc is a small host program that wires a Platform Probe, an
// Arena and a Collector together into a runnable demo: it exercises the
// same allocate/collect/dump surface a real embedder would link against,
// driven from a line-oriented REPL instead of compiled-in call sites.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jlondono223/memory-allocator/internal/xflag"
	"github.com/jlondono223/memory-allocator/pkg/dump"
	"github.com/jlondono223/memory-allocator/pkg/gc"
	"github.com/jlondono223/memory-allocator/pkg/heap"
	"github.com/jlondono223/memory-allocator/pkg/opt"
	"github.com/jlondono223/memory-allocator/pkg/platform"
	"github.com/jlondono223/memory-allocator/pkg/untrust"
	"github.com/jlondono223/memory-allocator/pkg/xerrors"
	"github.com/jlondono223/memory-allocator/pkg/xunsafe"
)

var words = xflag.Func("words", "initial arena size, in pointer-sized words", parseWords)

func parseWords(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("words must be positive, got %d", n)
	}
	return n, nil
}

const defaultWords = 4096

func main() {
	flag.Parse()

	n := *words
	if !xflag.Parsed("words") {
		n = defaultWords
	}

	probe := platform.NewManual()
	collector := gc.New(probe)

	var arena heap.Arena
	if err := arena.TryInitialize(n, collector); err != nil {
		if tooSmall, ok := xerrors.AsA[*heap.TooSmallError](err); ok {
			fmt.Fprintf(os.Stderr, "memgc: %v (requested %d words, need at least %d)\n",
				tooSmall, tooSmall.Requested, tooSmall.Minimum)
		} else {
			fmt.Fprintln(os.Stderr, "memgc:", err)
		}
		os.Exit(1)
	}

	fmt.Printf("memgc: arena ready, %d words\n", n)

	session := &repl{arena: &arena, probe: probe}
	session.run(os.Stdin, os.Stdout)
}

// repl holds the REPL's own root set: the pointers it has handed out,
// standing in for the "global references" a real host would have. Its
// backing array is re-registered with the probe before every operation,
// since append may relocate it.
type repl struct {
	arena *heap.Arena
	probe *platform.Manual
	roots []uintptr
}

func (s *repl) run(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}

		result := s.eval(scanner.Text())
		if result.IsSome() {
			fmt.Fprintln(out, result.Unwrap())
		}
	}
}

// eval parses and runs a single REPL command: alloc <words>, dump, gc, or
// drop <n>. Command lines are parsed with untrust.Reader so malformed
// input produces a message instead of a panic.
func (s *repl) eval(line string) opt.Option[string] {
	s.syncRoots()

	r := untrust.NewReader(untrust.Input(line))
	cmd, ok := readWord(r)
	if !ok {
		return opt.None[string]()
	}

	switch cmd {
	case "alloc":
		return s.cmdAlloc(r)
	case "gc":
		s.probe.SetStack(0, 0)
		s.probe.SetRegisters([3]xunsafe.Addr[byte]{})
		s.arena.Collect()
		return opt.Some("gc: collection complete")
	case "dump":
		dump.Dump(os.Stdout, s.arena, s.probe)
		return opt.None[string]()
	case "drop":
		return s.cmdDrop(r)
	default:
		return opt.Some(fmt.Sprintf("memgc: unknown command %q", cmd))
	}
}

func (s *repl) cmdAlloc(r *untrust.Reader) opt.Option[string] {
	arg, ok := readWord(r)
	if !ok {
		return opt.Some("usage: alloc <words>")
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return opt.Some("alloc: words must be a positive integer")
	}

	p := s.arena.Allocate(n, nil)
	if p == nil {
		return opt.Some("alloc: out of memory")
	}

	s.roots = append(s.roots, uintptr(p))
	return opt.Some(fmt.Sprintf("alloc: root %d -> %p", len(s.roots)-1, p))
}

func (s *repl) cmdDrop(r *untrust.Reader) opt.Option[string] {
	arg, ok := readWord(r)
	if !ok {
		return opt.Some("usage: drop <root index>")
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n >= len(s.roots) {
		return opt.Some("drop: no such root")
	}

	s.roots = append(s.roots[:n], s.roots[n+1:]...)
	return opt.Some(fmt.Sprintf("drop: root %d released", n))
}

// syncRoots re-registers the REPL's root slice with the probe as the
// global data range the collector scans, since the slice's backing array
// moves whenever append grows it.
func (s *repl) syncRoots() {
	if len(s.roots) == 0 {
		s.probe.SetGlobals(0, 0)
		return
	}

	start := xunsafe.Addr[byte](xunsafe.AddrOf(&s.roots[0]))
	end := xunsafe.Addr[byte](xunsafe.EndOf(s.roots))
	s.probe.SetGlobals(start, end)
}

func readWord(r *untrust.Reader) (string, bool) {
	var b strings.Builder
	for {
		c, err := r.ReadByte()
		if err != nil {
			break
		}
		if c == ' ' {
			if b.Len() == 0 {
				continue
			}
			break
		}
		b.WriteByte(c)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
