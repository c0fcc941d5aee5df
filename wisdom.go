package cornerturn

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cwbudde/cornerturn/internal/cpu"
	"github.com/cwbudde/cornerturn/internal/wisdom"
)

// Wisdom caches the fastest measured Options per problem. The engine never
// consults it on its own; callers look entries up explicitly.
type Wisdom = wisdom.Wisdom

// WisdomKey identifies a measured problem.
type WisdomKey = wisdom.Key

// WisdomEntry is the best configuration recorded for a WisdomKey.
type WisdomEntry = wisdom.Entry

// DefaultWisdom is the process-wide cache used by ImportWisdom and
// ExportWisdom.
var DefaultWisdom = wisdom.New()

// NewWisdom creates a new empty wisdom cache.
func NewWisdom() *Wisdom {
	return wisdom.New()
}

// WisdomKeyFor returns the key of a rows x cols problem of element type T
// run with threads goroutines on the current CPU.
func WisdomKeyFor[T Element](rows, cols, threads int) WisdomKey {
	return WisdomKey{
		Rows:        rows,
		Cols:        cols,
		Type:        TypeName[T](),
		Threads:     threads,
		CPUFeatures: cpu.DetectFeatures().Mask(),
	}
}

// RecordWisdom stores opts as the best configuration for key.
func RecordWisdom(w *Wisdom, key WisdomKey, opts Options) {
	w.Store(WisdomEntry{
		Key:       key,
		Strategy:  opts.Strategy,
		BlockRows: opts.BlockRows,
		BlockCols: opts.BlockCols,
		Timestamp: time.Now(),
	})
}

// LookupOptions returns the recorded Options for key.
func LookupOptions(w *Wisdom, key WisdomKey) (Options, bool) {
	e, ok := w.Lookup(key)
	if !ok {
		return Options{}, false
	}

	return Options{
		Strategy:  e.Strategy,
		BlockRows: e.BlockRows,
		BlockCols: e.BlockCols,
		Threads:   key.Threads,
	}, true
}

// ImportWisdom loads wisdom data from a file into DefaultWisdom.
// The file should be in the format produced by ExportWisdom.
func ImportWisdom(filename string) error {
	return ImportWisdomTo(filename, DefaultWisdom)
}

// ImportWisdomTo loads wisdom data from a file into w.
func ImportWisdomTo(filename string, w *Wisdom) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open wisdom file: %w", err)
	}

	defer f.Close()

	if err := w.Import(f); err != nil {
		return fmt.Errorf("failed to import wisdom: %w", err)
	}

	return nil
}

// ExportWisdom saves DefaultWisdom to a file.
func ExportWisdom(filename string) error {
	return ExportWisdomTo(filename, DefaultWisdom)
}

// ExportWisdomTo saves a specific wisdom cache to a file.
// This is useful for exporting benchmark results from custom wisdom instances.
func ExportWisdomTo(filename string, w *Wisdom) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create wisdom file: %w", err)
	}

	if err := w.Export(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to export wisdom: %w", err)
	}

	return file.Close()
}

// ImportWisdomFromString loads wisdom data from a string into DefaultWisdom.
// This is useful for embedding wisdom data in compiled binaries.
func ImportWisdomFromString(data string) error {
	err := DefaultWisdom.Import(strings.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to import wisdom from string: %w", err)
	}

	return nil
}

// ClearWisdom removes all entries from DefaultWisdom.
func ClearWisdom() {
	DefaultWisdom.Clear()
}

// WisdomLen returns the number of entries in DefaultWisdom.
func WisdomLen() int {
	return DefaultWisdom.Len()
}
