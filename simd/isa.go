// Package simd reports which vectorized instruction set, if any, the host
// CPU supports for the batch decode pipeline (see package batch).
//
// Nothing in this package executes hand-written vector instructions: Go's
// zero-copy slice reinterpretation in batch.Prefetch already gets the
// "decode the whole buffer in one pass" win the wire format's batch path
// is designed around, on every architecture, without an assembly
// fast path to maintain per ISA. What this package adds is an
// architecture-gated, runtime-detected ISA label — ISA.String() — so
// callers that log or report on batch decode performance can say which
// acceleration tier an item was processed on.
package simd

import "golang.org/x/sys/cpu"

// ISA identifies a vectorized instruction set level.
type ISA uint8

const (
	// None means no vector ISA beyond the scalar baseline was detected.
	None ISA = iota
	NEON
	SSE41
	AVX2
	AVX512
)

// String implements fmt.Stringer.
func (i ISA) String() string {
	switch i {
	case None:
		return "none"
	case NEON:
		return "neon"
	case SSE41:
		return "sse4.1"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// BestISA returns the highest vector ISA level the current CPU supports,
// per golang.org/x/sys/cpu's runtime feature detection.
func BestISA() ISA {
	return bestISA
}

// IsAccelerated reports whether the host supports any vector ISA beyond
// the scalar baseline.
func IsAccelerated() bool {
	return bestISA != None
}

var bestISA = detectISA()

func detectISA() ISA {
	if arch := detectX86(); arch != None {
		return arch
	}

	if cpu.ARM64.HasASIMD {
		return NEON
	}

	return None
}
