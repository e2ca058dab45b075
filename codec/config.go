package codec

import (
	"fmt"

	"github.com/htlvproto/htlv/internal/options"
)

// EncoderConfig holds the overridable knobs for an Encoder, composed via
// functional options exactly as blob.NumericEncoderConfig composes its
// options in the teacher package this codec was adapted from.
type EncoderConfig struct {
	shardThreshold int
}

func defaultEncoderConfig() *EncoderConfig {
	return &EncoderConfig{shardThreshold: LargeFieldThreshold}
}

// WithShardThreshold overrides the byte threshold above which a
// Bytes/String value is split into a sharded header-plus-shards run. The
// reference value (spec.md §3/§6) is 1024; this option exists for callers
// who need a different boundary, e.g. in tests that want to exercise
// sharding without megabyte-sized fixtures.
func WithShardThreshold(n int) options.Option[*EncoderConfig] {
	return options.New(func(c *EncoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("codec: shard threshold must be positive, got %d", n)
		}
		c.shardThreshold = n
		return nil
	})
}

// DecoderConfig holds the overridable knobs for a Decoder.
type DecoderConfig struct {
	maxDepth           int
	simdDisabled       bool
	minLargeFieldTotal uint64
}

func defaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{maxDepth: maxNestingDepth, minLargeFieldTotal: LargeFieldThreshold}
}

// WithMaxDepth overrides the nesting-depth cap (spec invariant I4; the
// reference value is 32). A non-positive value is rejected since it would
// make every composite an immediate depth violation.
func WithMaxDepth(n int) options.Option[*DecoderConfig] {
	return options.New(func(c *DecoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("codec: max depth must be positive, got %d", n)
		}
		c.maxDepth = n
		return nil
	})
}

// WithSIMDDisabled forces the batch pipeline's scalar path even when the
// host reports an accelerated instruction set available (see package
// simd). Accelerated and scalar paths are defined to produce identical
// results, so this option exists only for benchmarking and for hosts
// where the caller wants to rule out ISA-specific code paths, not to work
// around a correctness difference.
func WithSIMDDisabled() options.Option[*DecoderConfig] {
	return options.New(func(c *DecoderConfig) error {
		c.simdDisabled = true
		return nil
	})
}

// WithMinLargeFieldTotal overrides the decoded total-length an 8-byte
// Bytes/String item's payload must exceed before tryBeginLargeField
// considers it a sharding header (see that function's doc comment). The
// reference value matches LargeFieldThreshold, the default shard
// threshold an Encoder uses; callers that paired a lower
// WithShardThreshold on the encode side must set the matching bound here,
// or a genuine sharding header whose total falls at or below the default
// will be decoded as a plain 8-byte value instead.
func WithMinLargeFieldTotal(n uint64) options.Option[*DecoderConfig] {
	return options.New(func(c *DecoderConfig) error {
		if n == 0 {
			return fmt.Errorf("codec: min large-field total must be positive, got %d", n)
		}
		c.minLargeFieldTotal = n
		return nil
	})
}
