//go:build amd64

package cpu

import "golang.org/x/sys/cpu"

// detectFeaturesImpl reads the CPUID flags exposed by golang.org/x/sys/cpu.
// AVX-512F is only reported when the OS saves the ZMM state, which
// x/sys/cpu already accounts for.
func detectFeaturesImpl() Features {
	return Features{
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512F: cpu.X86.HasAVX512F,
	}
}
