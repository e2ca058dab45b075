package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/htlvproto/htlv/errs"
	"github.com/htlvproto/htlv/internal/pool"
	"github.com/htlvproto/htlv/value"
)

// largeFieldOutcome reports what appendShard accomplished for one shard.
type largeFieldOutcome int

const (
	lfIncomplete largeFieldOutcome = iota
	lfCompletedRoot
	lfCompletedNested
)

// largeField accumulates shard payloads for one in-progress sharded
// Bytes/String value (see spec.md §4.6). Exactly one may be in progress at
// a time, since the state machine processes one item stream sequentially.
type largeField struct {
	active bool
	tag    uint64
	kind   value.Type // TypeBytes or TypeString
	total  uint64
	buf    *pool.ByteBuffer
}

// begin starts reassembly for a header item declaring total bytes across
// its shard run.
func (lf *largeField) begin(tag uint64, kind value.Type, total uint64) {
	lf.active = true
	lf.tag = tag
	lf.kind = kind
	lf.total = total
	lf.buf = pool.GetLargeFieldBuffer()
}

// appendShard appends shard to the accumulation buffer. On completion it
// drains the buffer into the final item and, if a composite frame is open,
// attaches the item to its top frame as a side effect — matching the
// reference handler, whose caller does not need to distinguish a nested
// completion from an ordinary incomplete shard.
func (lf *largeField) appendShard(shard []byte, frames *frameStack) (value.Item, largeFieldOutcome, error) {
	lf.buf.MustWrite(shard)

	if uint64(lf.buf.Len()) > lf.total {
		total := lf.total
		lf.reset()
		return value.Item{}, lfIncomplete, fmt.Errorf(
			"%w: expected total length %d, got more than that many bytes",
			errs.ErrLargeFieldOverflow, total,
		)
	}

	if uint64(lf.buf.Len()) < lf.total {
		return value.Item{}, lfIncomplete, nil
	}

	final := make([]byte, lf.buf.Len())
	copy(final, lf.buf.Bytes())

	var v value.Value
	if lf.kind == value.TypeString {
		if !utf8.Valid(final) {
			lf.reset()
			return value.Item{}, lfIncomplete, fmt.Errorf("%w", errs.ErrInvalidUTF8)
		}
		v = value.String(string(final))
	} else {
		v = value.Bytes(final)
	}

	item := value.NewItem(lf.tag, v)
	lf.reset()

	if frames.empty() {
		return item, lfCompletedRoot, nil
	}

	top := frames.top()
	top.children = append(top.children, item)

	return item, lfCompletedNested, nil
}

// reset drains the accumulation buffer back to the pool and clears the
// in-progress flag.
func (lf *largeField) reset() {
	pool.PutLargeFieldBuffer(lf.buf)
	*lf = largeField{}
}
