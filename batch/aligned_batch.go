// Package batch implements the four-stage batch decode pipeline used for
// fixed-width primitive arrays: Prefetch, Decode, Dispatch, Verify.
//
// The pipeline exists to let the decoder turn a contiguous run of
// same-typed wire bytes (a batch-eligible array element, see
// value.Type.IsBatchEligible) into a slice of Go values without an
// allocation per element. Prefetch is the only stage that looks at byte
// alignment or host endianness; every later stage consumes an
// already-valid typed view.
package batch

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/htlvproto/htlv/endian"
)

// AlignedBatch holds the result of the Prefetch stage: either a Borrowed
// slice reinterpreted in place from the source bytes (zero-copy), or an
// Owned slice built by copying each element out with an explicit
// little-endian decode. Which variant a given Prefetch call returns
// depends only on the alignment of the input pointer and the host's byte
// order; callers never choose.
type AlignedBatch[T any] struct {
	slice    []T
	borrowed bool
}

// Borrowed reports whether the batch is a zero-copy view over the
// original input bytes, as opposed to an owned copy.
func (b AlignedBatch[T]) Borrowed() bool { return b.borrowed }

// Slice returns the decoded elements. For a Borrowed batch the returned
// slice shares memory with the original input and must not outlive it.
func (b AlignedBatch[T]) Slice() []T { return b.slice }

// Len returns the number of decoded elements.
func (b AlignedBatch[T]) Len() int { return len(b.slice) }

// fromLE decodes one element of T from a little-endian byte slice of
// exactly elemSize(T) bytes. It is the scalar fallback used whenever the
// input cannot be safely reinterpreted in place.
func fromLE[T any](src []byte) T {
	var zero T
	var out T
	switch any(zero).(type) {
	case uint8:
		out = any(src[0]).(T)
	case int8:
		out = any(int8(src[0])).(T)
	case uint16:
		out = any(endian.GetLittleEndianEngine().Uint16(src)).(T)
	case int16:
		out = any(int16(endian.GetLittleEndianEngine().Uint16(src))).(T)
	case uint32:
		out = any(endian.GetLittleEndianEngine().Uint32(src)).(T)
	case int32:
		out = any(int32(endian.GetLittleEndianEngine().Uint32(src))).(T)
	case uint64:
		out = any(endian.GetLittleEndianEngine().Uint64(src)).(T)
	case int64:
		out = any(int64(endian.GetLittleEndianEngine().Uint64(src))).(T)
	case float32:
		bits := endian.GetLittleEndianEngine().Uint32(src)
		out = any(math.Float32frombits(bits)).(T)
	case float64:
		bits := endian.GetLittleEndianEngine().Uint64(src)
		out = any(math.Float64frombits(bits)).(T)
	default:
		panic(fmt.Sprintf("batch: unsupported element type %T", zero))
	}

	return out
}

// Prefetch implements stage 1 of the pipeline for a fixed-width element
// type T. It validates that raw is a whole number of elements, then
// either reinterprets raw in place (Borrowed) when the host is
// little-endian and raw's start address satisfies T's alignment
// requirement, or copies element-by-element via a little-endian decode
// (Owned) otherwise.
func Prefetch[T any](raw []byte) (AlignedBatch[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))

	if elemSize == 0 {
		return AlignedBatch[T]{}, fmt.Errorf("batch: zero-size element type %T", zero)
	}

	if len(raw)%elemSize != 0 {
		return AlignedBatch[T]{}, fmt.Errorf(
			"batch: length %d is not a multiple of element size %d", len(raw), elemSize,
		)
	}

	count := len(raw) / elemSize
	if count == 0 {
		return AlignedBatch[T]{slice: []T{}, borrowed: true}, nil
	}

	if isAligned[T](raw) {
		slice := unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), count)
		return AlignedBatch[T]{slice: slice, borrowed: true}, nil
	}

	values := make([]T, count)
	for i := 0; i < count; i++ {
		values[i] = fromLE[T](raw[i*elemSize : (i+1)*elemSize])
	}

	return AlignedBatch[T]{slice: values, borrowed: false}, nil
}

// PrefetchOwned behaves like Prefetch but always returns an Owned batch,
// even when raw would otherwise qualify for a zero-copy Borrowed view. It
// backs codec.WithSIMDDisabled: forcing the copy path lets a caller rule
// out zero-copy/ISA-specific behavior while Verify still confirms the
// decoded result accounts for every input byte.
func PrefetchOwned[T any](raw []byte) (AlignedBatch[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))

	if elemSize == 0 {
		return AlignedBatch[T]{}, fmt.Errorf("batch: zero-size element type %T", zero)
	}

	if len(raw)%elemSize != 0 {
		return AlignedBatch[T]{}, fmt.Errorf(
			"batch: length %d is not a multiple of element size %d", len(raw), elemSize,
		)
	}

	count := len(raw) / elemSize
	values := make([]T, count)
	for i := 0; i < count; i++ {
		values[i] = fromLE[T](raw[i*elemSize : (i+1)*elemSize])
	}

	return AlignedBatch[T]{slice: values, borrowed: false}, nil
}

// isAligned reports whether raw's backing array starts at an address
// satisfying T's alignment, and the host is little-endian (otherwise a
// byte-for-byte reinterpretation would read the wrong value).
func isAligned[T any](raw []byte) bool {
	if !endian.IsNativeLittleEndian() {
		return false
	}

	var zero T
	align := uintptr(unsafe.Alignof(zero))

	return uintptr(unsafe.Pointer(&raw[0]))%align == 0
}
