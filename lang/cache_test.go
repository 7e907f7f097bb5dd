package lang

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
)

func TestParseString_Cache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := "let cached = 1"

	p1, err := ParseString(t.Context(), src)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	p2, err := ParseString(t.Context(), src)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if p1 != p2 {
		t.Error("expected the cached program to be shared")
	}

	if n := cacheLen(); n != 1 {
		t.Errorf("cacheLen() = %d, want 1", n)
	}

	// Depth limits change the outcome of a parse, so they key separately.
	if _, err := ParseString(t.Context(), src, WithMaxDepth(8)); err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if n := cacheLen(); n != 2 {
		t.Errorf("cacheLen() = %d, want 2", n)
	}

	p3, err := ParseString(t.Context(), src, WithCache(false))
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if p3 == p1 {
		t.Error("uncached parse returned the cached program")
	}

	ClearCache()

	if n := cacheLen(); n != 0 {
		t.Errorf("cacheLen() after ClearCache = %d", n)
	}
}

func TestParseString_CachesErrors(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	for range 2 {
		if _, err := ParseString(t.Context(), "let = 1"); !errors.Is(err, ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}
	}

	if n := cacheLen(); n != 1 {
		t.Errorf("cacheLen() = %d, want 1", n)
	}
}

func TestParseString_Concurrent(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const workers = 16

	var (
		wg    sync.WaitGroup
		progs [workers]*Program
	)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			p, err := ParseString(t.Context(), "function f(x) { x * 2 } f(21)")
			if err != nil {
				t.Errorf("ParseString failed: %v", err)
			}

			progs[i] = p
		}()
	}

	wg.Wait()

	for i := 1; i < workers; i++ {
		if progs[i] != progs[0] {
			t.Fatalf("worker %d parsed its own program", i)
		}
	}
}

func TestParseReader(t *testing.T) {
	prog, err := ParseReader(t.Context(),
		strings.NewReader("let a = 1\nprint a"), WithCache(false))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if len(prog.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(prog.Statements))
	}

	_, err = ParseReader(t.Context(), iotest.ErrReader(errors.New("boom")))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}
