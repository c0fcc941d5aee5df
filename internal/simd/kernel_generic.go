package simd

// vec8 models one 512-bit register holding eight float64 lanes.
type vec8 [8]float64

// Two-source permute index tables, one 4-bit lane selector per nibble with
// lane 0 in the low nibble. Bit 3 of a selector picks the second source.
const (
	idx2x2Lo uint32 = 0xDC549810 // 0 1 8 9 4 5 12 13
	idx2x2Hi uint32 = 0x76FE32BA // 10 11 2 3 14 15 6 7
	idx4x4Lo uint32 = 0xBA983210 // 0 1 2 3 8 9 10 11
	idx4x4Hi uint32 = 0x7654FEDC // 12 13 14 15 4 5 6 7
)

// unpackLo interleaves the even lanes of each 128-bit lane of a and b.
func unpackLo(a, b vec8) vec8 {
	return vec8{a[0], b[0], a[2], b[2], a[4], b[4], a[6], b[6]}
}

// unpackHi interleaves the odd lanes of each 128-bit lane of a and b.
func unpackHi(a, b vec8) vec8 {
	return vec8{a[1], b[1], a[3], b[3], a[5], b[5], a[7], b[7]}
}

// permute2 selects each output lane from a or b according to idx.
func permute2(a vec8, idx uint32, b vec8) vec8 {
	var out vec8

	for i := range out {
		sel := (idx >> (4 * i)) & 0xF
		if sel&8 != 0 {
			out[i] = b[sel&7]
		} else {
			out[i] = a[sel&7]
		}
	}

	return out
}

func transpose8x8Generic(dst, src []float64, srcStride, dstStride int) {
	var r, s [8]vec8

	for i := range r {
		r[i] = vec8(src[i*srcStride : i*srcStride+8])
	}

	s[0] = unpackLo(r[0], r[1])
	s[1] = unpackHi(r[0], r[1])
	s[2] = unpackLo(r[2], r[3])
	s[3] = unpackHi(r[2], r[3])
	s[4] = unpackLo(r[4], r[5])
	s[5] = unpackHi(r[4], r[5])
	s[6] = unpackLo(r[6], r[7])
	s[7] = unpackHi(r[6], r[7])

	r[0] = permute2(s[0], idx2x2Lo, s[2])
	r[1] = permute2(s[1], idx2x2Lo, s[3])
	r[2] = permute2(s[2], idx2x2Hi, s[0])
	r[3] = permute2(s[3], idx2x2Hi, s[1])
	r[4] = permute2(s[4], idx2x2Lo, s[6])
	r[5] = permute2(s[5], idx2x2Lo, s[7])
	r[6] = permute2(s[6], idx2x2Hi, s[4])
	r[7] = permute2(s[7], idx2x2Hi, s[5])

	s[0] = permute2(r[0], idx4x4Lo, r[4])
	s[1] = permute2(r[1], idx4x4Lo, r[5])
	s[2] = permute2(r[2], idx4x4Lo, r[6])
	s[3] = permute2(r[3], idx4x4Lo, r[7])
	s[4] = permute2(r[4], idx4x4Hi, r[0])
	s[5] = permute2(r[5], idx4x4Hi, r[1])
	s[6] = permute2(r[6], idx4x4Hi, r[2])
	s[7] = permute2(r[7], idx4x4Hi, r[3])

	for i := range s {
		copy(dst[i*dstStride:i*dstStride+8], s[i][:])
	}
}
