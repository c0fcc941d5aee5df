// Package wisdom caches the fastest measured transpose configuration per
// matrix shape.
//
// Entries are written one per line as
//
//	rows:cols:type:threads:features:strategy:blockRows:blockCols:timestamp
//
// where features is the cpu.Features mask in decimal and timestamp is Unix
// seconds. Blank lines and lines starting with '#' are ignored on import.
package wisdom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cwbudde/cornerturn/internal/fftypes"
)

// ErrInvalidFormat is returned by Import for a malformed line.
var ErrInvalidFormat = errors.New("wisdom: invalid format")

const numFields = 9

// Key identifies a measured problem.
type Key struct {
	Rows        int
	Cols        int
	Type        string
	Threads     int
	CPUFeatures uint64
}

// Entry is the best configuration found for a Key.
type Entry struct {
	Key       Key
	Strategy  fftypes.Strategy
	BlockRows int
	BlockCols int
	Timestamp time.Time
}

// Wisdom is a concurrency-safe set of entries, one per Key.
type Wisdom struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

// New returns an empty cache.
func New() *Wisdom {
	return &Wisdom{entries: make(map[Key]Entry)}
}

// Store records e, replacing any entry with the same key.
func (w *Wisdom) Store(e Entry) {
	w.mu.Lock()
	w.entries[e.Key] = e
	w.mu.Unlock()
}

// Lookup returns the entry for key.
func (w *Wisdom) Lookup(key Key) (Entry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	e, ok := w.entries[key]

	return e, ok
}

// Len returns the number of entries.
func (w *Wisdom) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.entries)
}

// Clear removes all entries.
func (w *Wisdom) Clear() {
	w.mu.Lock()
	clear(w.entries)
	w.mu.Unlock()
}

// Entries returns a snapshot sorted by shape, type, threads and features.
func (w *Wisdom) Entries() []Entry {
	w.mu.RLock()
	out := make([]Entry, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e)
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		switch {
		case a.Rows != b.Rows:
			return a.Rows < b.Rows
		case a.Cols != b.Cols:
			return a.Cols < b.Cols
		case a.Type != b.Type:
			return a.Type < b.Type
		case a.Threads != b.Threads:
			return a.Threads < b.Threads
		default:
			return a.CPUFeatures < b.CPUFeatures
		}
	})

	return out
}

// Export writes all entries in a deterministic order.
func (w *Wisdom) Export(out io.Writer) error {
	bw := bufio.NewWriter(out)

	for _, e := range w.Entries() {
		_, err := fmt.Fprintf(bw, "%d:%d:%s:%d:%d:%s:%d:%d:%d\n",
			e.Key.Rows, e.Key.Cols, e.Key.Type, e.Key.Threads, e.Key.CPUFeatures,
			e.Strategy, e.BlockRows, e.BlockCols, e.Timestamp.Unix())
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Import reads entries written by Export and stores them. Parsing stops at
// the first malformed line; entries before it remain stored.
func (w *Wisdom) Import(in io.Reader) error {
	sc := bufio.NewScanner(in)
	lineNo := 0

	for sc.Scan() {
		lineNo++

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		e, err := parseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		w.Store(e)
	}

	return sc.Err()
}

func parseLine(line string) (Entry, error) {
	f := strings.Split(line, ":")
	if len(f) != numFields {
		return Entry{}, fmt.Errorf("%w: %d fields, want %d", ErrInvalidFormat, len(f), numFields)
	}

	var (
		e    Entry
		ints [5]int
	)

	for i, idx := range [...]int{0, 1, 3, 6, 7} {
		v, err := strconv.Atoi(f[idx])
		if err != nil || v < 0 {
			return Entry{}, fmt.Errorf("%w: field %d %q", ErrInvalidFormat, idx+1, f[idx])
		}

		ints[i] = v
	}

	features, err := strconv.ParseUint(f[4], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: features %q", ErrInvalidFormat, f[4])
	}

	strategy, ok := fftypes.ParseStrategy(f[5])
	if !ok {
		return Entry{}, fmt.Errorf("%w: strategy %q", ErrInvalidFormat, f[5])
	}

	ts, err := strconv.ParseInt(f[8], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: timestamp %q", ErrInvalidFormat, f[8])
	}

	if f[2] == "" {
		return Entry{}, fmt.Errorf("%w: empty type", ErrInvalidFormat)
	}

	e.Key = Key{Rows: ints[0], Cols: ints[1], Type: f[2], Threads: ints[2], CPUFeatures: features}
	e.Strategy = strategy
	e.BlockRows = ints[3]
	e.BlockCols = ints[4]
	e.Timestamp = time.Unix(ts, 0)

	return e, nil
}
