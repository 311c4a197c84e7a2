package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed programs keyed by (source hash ^ options hash).
// Programs are immutable after parsing, so sharing one *Program across
// callers is safe; all mutable state lives in each caller's Env chain.
//
//nolint:gochecknoglobals
var globalCache sync.Map

// parseState tracks the one-time parse of a single cache key.
type parseState struct {
	once sync.Once
	prog *Program
	err  error
}

// hashOptions encodes the cache-relevant options using gob and hashes the
// encoding with xxh3. Two option sets that parse identically share a key.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(opts.maxCallDepth)

	return xxh3.Hash(buf.Bytes())
}

// ParseReader parses input from an io.Reader and returns the Program.
// The reader is drained through an asynchronous read-ahead buffer, and the
// parse result is cached the same way ParseString caches.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	var temp Program

	applyDefaults(&temp)
	applyOptions(&temp, opts...)

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	temp.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return ParseString(ctx, string(data), opts...)
}

// parseStringCached parses source with per-key memoization. The first
// caller for a given (source, options) pair parses; concurrent and later
// callers share the outcome, error included.
func parseStringCached(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Program, error) {
	var temp Program

	applyDefaults(&temp)
	applyOptions(&temp, opts...)

	sourceHash := xxh3.Hash([]byte(source))
	optsHash := hashOptions(temp.opts)
	key := strconv.FormatUint(sourceHash^optsHash, 36)

	entry := new(parseState)

	value, cacheHit := globalCache.LoadOrStore(key, entry)

	st, ok := value.(*parseState)
	if !ok {
		return nil, ErrParse.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	temp.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	st.once.Do(func() {
		prog, err := parseSource(source, opts...)
		if err != nil {
			st.err = WrapError(err).With(
				slog.Int("source_length", len(source)),
			)

			return
		}

		st.prog = prog
	})

	if st.err != nil {
		return nil, st.err
	}

	// The cached program carries the options it was parsed with; refresh
	// the non-cacheable parts (logger) for this caller.
	prog := &Program{Stmts: st.prog.Stmts}

	applyDefaults(prog)
	applyOptions(prog, opts...)

	return prog, nil
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
