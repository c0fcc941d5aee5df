package simd

import (
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/cornerturn/internal/partition"
)

func fillSequential(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i)
	}

	return s
}

func naiveTranspose(src []float64, rows, cols int) []float64 {
	dst := make([]float64, rows*cols)
	for i := range rows {
		for j := range cols {
			dst[j*rows+i] = src[i*cols+j]
		}
	}

	return dst
}

func TestPermuteIndexTables(t *testing.T) {
	t.Parallel()

	tables := []struct {
		name string
		idx  uint32
		want [8]uint32
	}{
		{"2x2lo", idx2x2Lo, [8]uint32{0, 1, 8, 9, 4, 5, 12, 13}},
		{"2x2hi", idx2x2Hi, [8]uint32{10, 11, 2, 3, 14, 15, 6, 7}},
		{"4x4lo", idx4x4Lo, [8]uint32{0, 1, 2, 3, 8, 9, 10, 11}},
		{"4x4hi", idx4x4Hi, [8]uint32{12, 13, 14, 15, 4, 5, 6, 7}},
	}

	for _, tc := range tables {
		for i, want := range tc.want {
			if got := (tc.idx >> (4 * i)) & 0xF; got != want {
				t.Errorf("%s lane %d = %d, want %d", tc.name, i, got, want)
			}
		}
	}
}

func TestTranspose8x8Generic(t *testing.T) {
	t.Parallel()

	src := fillSequential(64)
	dst := make([]float64, 64)

	transpose8x8Generic(dst, src, 8, 8)

	for i := range 8 {
		for j := range 8 {
			if dst[j*8+i] != src[i*8+j] {
				t.Fatalf("dst[%d][%d] = %v, want %v", j, i, dst[j*8+i], src[i*8+j])
			}
		}
	}
}

func TestTranspose8x8Strided(t *testing.T) {
	t.Parallel()

	// Tile at (8, 16) of a 24x32 source into a 32x24 destination.
	const rows, cols = 24, 32

	src := fillSequential(rows * cols)
	dst := make([]float64, rows*cols)

	Transpose8x8(dst[16*rows+8:], src[8*cols+16:], cols, rows)

	for i := 8; i < 16; i++ {
		for j := 16; j < 24; j++ {
			if got, want := dst[j*rows+i], src[i*cols+j]; got != want {
				t.Fatalf("dst[%d][%d] = %v, want %v", j, i, got, want)
			}
		}
	}

	// Nothing outside the tile is touched.
	for k, v := range dst {
		j, i := k/rows, k%rows
		if (i < 8 || i >= 16 || j < 16 || j >= 24) && v != 0 {
			t.Fatalf("dst[%d] = %v written outside tile", k, v)
		}
	}
}

func TestDispatchMatchesGeneric(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	src := make([]float64, 64)
	for i := range src {
		src[i] = rng.Float64() - 0.5
	}

	want := make([]float64, 64)
	got := make([]float64, 64)

	transpose8x8Generic(want, src, 8, 8)
	Transpose8x8(got, src, 8, 8)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("level %v: got[%d] = %v, want %v", Level(), i, got[i], want[i])
		}
	}
}

func TestTilesFullAndPartial(t *testing.T) {
	t.Parallel()

	shapes := []struct{ rows, cols int }{
		{8, 8},
		{16, 8},
		{8, 24},
		{32, 40},
	}

	for _, sh := range shapes {
		src := fillSequential(sh.rows * sh.cols)
		want := naiveTranspose(src, sh.rows, sh.cols)
		got := make([]float64, sh.rows*sh.cols)

		Tiles(got, src, sh.rows, sh.cols, partition.Range{End: sh.rows}, partition.Range{End: sh.cols})

		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%dx%d: got[%d] = %v, want %v", sh.rows, sh.cols, i, got[i], want[i])
			}
		}
	}

	// Two disjoint row bands compose to the full result.
	const rows, cols = 24, 16

	src := fillSequential(rows * cols)
	want := naiveTranspose(src, rows, cols)
	got := make([]float64, rows*cols)

	Tiles(got, src, rows, cols, partition.Range{Start: 0, End: 8}, partition.Range{End: cols})
	Tiles(got, src, rows, cols, partition.Range{Start: 8, End: 24}, partition.Range{End: cols})

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("banded: got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func BenchmarkTranspose8x8(b *testing.B) {
	src := fillSequential(64)
	dst := make([]float64, 64)

	b.Run(Level().String(), func(b *testing.B) {
		b.SetBytes(64 * 8)

		for b.Loop() {
			Transpose8x8(dst, src, 8, 8)
		}
	})

	b.Run("generic", func(b *testing.B) {
		b.SetBytes(64 * 8)

		for b.Loop() {
			transpose8x8Generic(dst, src, 8, 8)
		}
	})
}
