package batch

import (
	"fmt"

	"github.com/htlvproto/htlv/value"
)

// Process runs the full four-stage pipeline (Prefetch, Decode, Dispatch,
// Verify) over raw, a contiguous run of wire bytes for elemType, and
// returns the decoded elements as Items tagged 0 — the tag every element
// of a batch-decoded array carries, since the array's own Item already
// carries the schema-assigned tag.
//
// elemType must satisfy value.Type.IsBatchEligible; Process panics
// otherwise, since routing a non-batch-eligible type here is a decoder
// bug, not a data error.
func Process(elemType value.Type, raw []byte) ([]value.Item, error) {
	return process(elemType, raw, false)
}

// ProcessForceOwned runs the same four-stage pipeline but forces Prefetch
// down its owned-copy path even when the input would otherwise qualify
// for a zero-copy borrow. It exists for codec.WithSIMDDisabled and for
// tests that want to exercise the owned path deterministically; the
// decoded result is identical to Process's either way (see
// AlignedBatch's borrowed/owned equivalence contract).
func ProcessForceOwned(elemType value.Type, raw []byte) ([]value.Item, error) {
	return process(elemType, raw, true)
}

func process(elemType value.Type, raw []byte, forceOwned bool) ([]value.Item, error) {
	if !elemType.IsBatchEligible() {
		panic(fmt.Sprintf("batch: %s is not batch-eligible", elemType))
	}

	switch elemType {
	case value.TypeU16:
		return processUnsigned(raw, value.U16, forceOwned)
	case value.TypeU32:
		return processUnsigned(raw, value.U32, forceOwned)
	case value.TypeU64:
		return processUnsigned(raw, value.U64, forceOwned)
	case value.TypeI16:
		return processSigned(raw, value.I16, forceOwned)
	case value.TypeI32:
		return processSigned(raw, value.I32, forceOwned)
	case value.TypeI64:
		return processSigned(raw, value.I64, forceOwned)
	case value.TypeF32:
		return processFloat32(raw, forceOwned)
	case value.TypeF64:
		return processFloat64(raw, forceOwned)
	default:
		panic(fmt.Sprintf("batch: unhandled batch-eligible type %s", elemType))
	}
}

// prefetch chooses between the zero-copy and forced-owned Prefetch paths.
func prefetch[T any](raw []byte, forceOwned bool) (AlignedBatch[T], error) {
	if forceOwned {
		return PrefetchOwned[T](raw)
	}

	return Prefetch[T](raw)
}

// processUnsigned implements the pipeline for the three unsigned integer
// widths, which share a single code path because dispatch is a plain
// value-constructor call.
func processUnsigned[T ~uint16 | ~uint32 | ~uint64](raw []byte, ctor func(T) value.Value, forceOwned bool) ([]value.Item, error) {
	batch, err := prefetch[T](raw, forceOwned)
	if err != nil {
		return nil, err
	}

	items := dispatch(batch.Slice(), ctor)

	if err := verify(batch, raw, elementSize[T]()); err != nil {
		return nil, err
	}

	return items, nil
}

func processSigned[T ~int16 | ~int32 | ~int64](raw []byte, ctor func(T) value.Value, forceOwned bool) ([]value.Item, error) {
	batch, err := prefetch[T](raw, forceOwned)
	if err != nil {
		return nil, err
	}

	items := dispatch(batch.Slice(), ctor)

	if err := verify(batch, raw, elementSize[T]()); err != nil {
		return nil, err
	}

	return items, nil
}

func processFloat32(raw []byte, forceOwned bool) ([]value.Item, error) {
	batch, err := prefetch[float32](raw, forceOwned)
	if err != nil {
		return nil, err
	}

	items := dispatch(batch.Slice(), value.F32)

	if err := verify(batch, raw, 4); err != nil {
		return nil, err
	}

	return items, nil
}

func processFloat64(raw []byte, forceOwned bool) ([]value.Item, error) {
	batch, err := prefetch[float64](raw, forceOwned)
	if err != nil {
		return nil, err
	}

	items := dispatch(batch.Slice(), value.F64)

	if err := verify(batch, raw, 8); err != nil {
		return nil, err
	}

	return items, nil
}

// dispatch implements stage 3: converting decoded scalars into
// schema-opaque Items, each tagged 0.
func dispatch[T any](decoded []T, ctor func(T) value.Value) []value.Item {
	items := make([]value.Item, len(decoded))
	for i, v := range decoded {
		items[i] = value.NewItem(0, ctor(v))
	}

	return items
}

// verify implements stage 4: confirming the batch accounts for every
// byte of the original input. This is a sanity check on Prefetch's own
// arithmetic, not a data validation step — Prefetch already rejected a
// length that isn't a multiple of the element size.
func verify[T any](batch AlignedBatch[T], original []byte, elemSize int) error {
	if batch.Len()*elemSize != len(original) {
		return fmt.Errorf(
			"batch: verify failed: decoded %d elements of size %d (%d bytes) but input was %d bytes",
			batch.Len(), elemSize, batch.Len()*elemSize, len(original),
		)
	}

	return nil
}

func elementSize[T any]() int {
	var zero T
	switch any(zero).(type) {
	case uint16, int16:
		return 2
	case uint32, int32:
		return 4
	case uint64, int64:
		return 8
	default:
		panic(fmt.Sprintf("batch: unhandled element type %T", zero))
	}
}
