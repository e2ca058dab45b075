// Package errs defines the sentinel errors returned by the htlv codec.
//
// Every fatal condition listed in the failure-mode table of the codec
// specification has a corresponding sentinel here. Callers should use
// errors.Is against these sentinels rather than matching on message text;
// the message text (added via fmt.Errorf wrapping at the call site) is for
// humans only and may change.
package errs

import "errors"

// Truncated input: the decoder ran out of bytes before a value was complete.
var (
	ErrTruncatedVarint  = errors.New("htlv: truncated varint")
	ErrTruncatedHeader  = errors.New("htlv: truncated item header")
	ErrTruncatedValue   = errors.New("htlv: truncated value payload")
	ErrTruncatedLargeField = errors.New("htlv: truncated large-field shard sequence")
	ErrTruncatedPacket  = errors.New("htlv: truncated packet")
)

// Invalid encoding: the bytes are present but do not form a well-formed value.
var (
	ErrVarintOverflow   = errors.New("htlv: varint exceeds 64 bits")
	ErrUnknownType      = errors.New("htlv: unknown value type byte")
	ErrInvalidUTF8      = errors.New("htlv: string payload is not valid UTF-8")
	ErrUnknownBodyType  = errors.New("htlv: unknown packet body type")
	ErrUnknownStrategy  = errors.New("htlv: unknown or reserved compression strategy")
)

// Limit exceeded.
var (
	ErrDepthExceeded       = errors.New("htlv: nesting depth exceeds limit")
	ErrLargeFieldOverflow  = errors.New("htlv: large-field accumulator exceeds declared total length")
)

// Length mismatch.
var (
	ErrLengthMismatch   = errors.New("htlv: declared length does not match actual length")
	ErrBatchAlignment   = errors.New("htlv: batch payload length is not a multiple of the element size")
)

// Integrity failure.
var ErrIntegrity = errors.New("htlv: digest verification failed")

// Contract misuse: calling the wrong decode path for a value's type.
var ErrContractMisuse = errors.New("htlv: value type is not valid for this decode path")
