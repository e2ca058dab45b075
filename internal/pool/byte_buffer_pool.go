// Package pool provides pooled byte buffers used by the encoder and by the
// large-field reassembly path to avoid per-call allocation.
package pool

import (
	"io"
	"sync"
)

// Default and maximum sizes for pooled buffers. ItemBuffer sizes back the
// encoder's per-composite child buffer; LargeFieldBuffer sizes back the
// decoder's shard-reassembly accumulator, which tends to run larger since it
// holds a fully reassembled sharded payload.
const (
	ItemBufferDefaultSize       = 1024 * 4   // 4KiB
	ItemBufferMaxThreshold      = 1024 * 128 // 128KiB
	LargeFieldBufferDefaultSize = 1024 * 64  // 64KiB
	LargeFieldBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

// ByteBuffer is a growable byte buffer with an amortized growth strategy,
// adapted from the teacher's blob-buffer implementation for general-purpose
// reuse by the codec.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("pool: Slice: invalid indices")
	}

	return bb.B[start:end]
}

// ExtendOrGrow extends the buffer's length by n bytes, growing the backing
// array first if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		bb.Grow(n)
	}

	bb.B = bb.B[:curLen+n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating.
//
// Growth strategy:
//   - Small buffers (<4x the default size) grow by the default size.
//   - Larger buffers grow by 25% of current capacity.
//   - Either way, growth is never smaller than requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ItemBufferDefaultSize
	if cap(bb.B) > 4*ItemBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
// It implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.MustWrite(data)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w. It implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool pools ByteBuffers to minimize allocations across repeated
// encode/decode invocations.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size. Buffers whose capacity has grown past
// maxThreshold are discarded rather than pooled, to avoid memory bloat from
// one oversized payload pinning a large buffer forever.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	itemDefaultPool       = NewByteBufferPool(ItemBufferDefaultSize, ItemBufferMaxThreshold)
	largeFieldDefaultPool = NewByteBufferPool(LargeFieldBufferDefaultSize, LargeFieldBufferMaxThreshold)
)

// GetItemBuffer retrieves a ByteBuffer from the default item-encoding pool.
func GetItemBuffer() *ByteBuffer { return itemDefaultPool.Get() }

// PutItemBuffer returns a ByteBuffer to the default item-encoding pool.
func PutItemBuffer(bb *ByteBuffer) { itemDefaultPool.Put(bb) }

// GetLargeFieldBuffer retrieves a ByteBuffer from the default large-field
// reassembly pool.
func GetLargeFieldBuffer() *ByteBuffer { return largeFieldDefaultPool.Get() }

// PutLargeFieldBuffer returns a ByteBuffer to the default large-field
// reassembly pool.
func PutLargeFieldBuffer(bb *ByteBuffer) { largeFieldDefaultPool.Put(bb) }
