package simd

import "golang.org/x/sys/cpu"

// detectX86 returns the best x86 vector ISA detected at runtime. cpu.X86's
// fields are zero-valued on non-x86 hosts, so this is safe to call
// unconditionally.
func detectX86() ISA {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL:
		return AVX512
	case cpu.X86.HasAVX2:
		return AVX2
	case cpu.X86.HasSSE41:
		return SSE41
	default:
		return None
	}
}
