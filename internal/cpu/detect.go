// Package cpu reports the CPU features that select the transpose micro-kernel.
package cpu

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/cwbudde/cornerturn/internal/fftypes"
)

// NoAsmEnv forces the portable micro-kernel when set to a true value.
const NoAsmEnv = "CORNERTURN_NOASM"

// Features describes CPU capabilities relevant to kernel selection.
type Features struct {
	HasAVX2      bool
	HasAVX512F   bool
	HasNEON      bool
	ForceGeneric bool
	Architecture string
}

// SIMDLevel returns the best micro-kernel level the features allow.
func (f Features) SIMDLevel() fftypes.SIMDLevel {
	if f.ForceGeneric {
		return fftypes.SIMDNone
	}

	if f.HasAVX512F {
		return fftypes.SIMDAVX512
	}

	return fftypes.SIMDNone
}

var (
	detectOnce sync.Once
	detected   Features
)

// DetectFeatures reports the available CPU features for the current process.
// The result is computed once.
func DetectFeatures() Features {
	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
		detected.Architecture = runtime.GOARCH
		detected.ForceGeneric = envBool(NoAsmEnv)
	})

	return detected
}

func envBool(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}

	b, err := strconv.ParseBool(v)

	return err == nil && b
}

// Feature bits recorded by Mask.
const (
	MaskAVX2 uint64 = 1 << iota
	MaskAVX512F
	MaskNEON
)

// Mask packs the kernel-relevant features into a bit set. ForceGeneric clears
// the SIMD bits so measurements taken with the portable kernel are keyed
// apart from accelerated ones.
func (f Features) Mask() uint64 {
	if f.ForceGeneric {
		return 0
	}

	var m uint64
	if f.HasAVX2 {
		m |= MaskAVX2
	}

	if f.HasAVX512F {
		m |= MaskAVX512F
	}

	if f.HasNEON {
		m |= MaskNEON
	}

	return m
}
