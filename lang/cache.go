package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed programs keyed by source and option hash.
// Programs are immutable, so a cached Program is shared by every caller.
var globalCache sync.Map

// entry parses its source exactly once.
type entry struct {
	once sync.Once
	prog *Program
	err  error
}

// cacheKey combines the source hash with the options that affect parsing.
func cacheKey(source string, o options) string {
	h := xxh3.HashString(source)
	h ^= xxh3.HashString(strconv.Itoa(o.maxDepth))

	return strconv.FormatUint(h, 36)
}

// ParseString lexes and parses source. Results, including errors, are cached
// unless disabled with [WithCache].
func ParseString(ctx context.Context, source string, opts ...Option) (*Program, error) {
	o := makeOptions(opts...)

	if !o.cache {
		return parseSource(ctx, source, opts...)
	}

	key := cacheKey(source, o)

	value, hit := globalCache.LoadOrStore(key, new(entry))

	e, ok := value.(*entry)
	if !ok {
		return parseSource(ctx, source, opts...)
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", hit))

	e.once.Do(func() {
		e.prog, e.err = parseSource(ctx, source, opts...)
	})

	return e.prog, e.err
}

// ParseReader reads all of r and parses it with [ParseString].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	// Wrap reader with async read-ahead so reading overlaps with lexing of
	// large inputs.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	makeOptions(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)))

	return ParseString(ctx, string(data), opts...)
}

// ClearCache removes all cached programs.
func ClearCache() {
	globalCache.Clear()
}

// cacheLen returns the number of cached entries.
func cacheLen() int {
	n := 0

	globalCache.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}
