package codec

import (
	"github.com/yajbe-go/yajbe/internal/enum"
	"github.com/yajbe-go/yajbe/internal/options"
)

// DefaultMaxDepth bounds array/object recursion depth, the one unbounded
// resource in an otherwise fixed-footprint encode/decode call.
const DefaultMaxDepth = 1000

// EncoderConfig holds Encoder construction parameters, assembled by EncoderOption.
type EncoderConfig struct {
	initialFieldNames []string
	enumConfig        *enum.Config
	maxDepth          int
}

// EncoderOption configures a new Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithInitialFieldNames pre-seeds the field-name dictionary identically to
// how WithDecoderInitialFieldNames must be used on the matching Decoder.
func WithInitialFieldNames(names []string) EncoderOption {
	return options.New(func(c *EncoderConfig) { c.initialFieldNames = names })
}

// WithEnumConfig activates the enum-LRU string dictionary. lruSize must be
// a power of two in [enum.MinLRUSize, enum.MaxLRUSize];
// minFreq must be in [1, 256].
func WithEnumConfig(lruSize, minFreq int) EncoderOption {
	return options.New(func(c *EncoderConfig) {
		c.enumConfig = &enum.Config{LRUSize: lruSize, MinFreq: minFreq}
	})
}

// WithMaxDepth overrides DefaultMaxDepth for the nesting-depth guard.
func WithMaxDepth(maxDepth int) EncoderOption {
	return options.New(func(c *EncoderConfig) { c.maxDepth = maxDepth })
}

func newEncoderConfig(opts []EncoderOption) *EncoderConfig {
	cfg := &EncoderConfig{maxDepth: DefaultMaxDepth}
	options.Apply(cfg, opts...)

	return cfg
}

// DecoderConfig holds Decoder construction parameters, assembled by DecoderOption.
type DecoderConfig struct {
	initialFieldNames []string
	maxDepth          int
}

// DecoderOption configures a new Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithDecoderInitialFieldNames pre-seeds the field-name dictionary; it must
// carry the same content as the encoder's WithInitialFieldNames. The enum
// config is never supplied here - the decoder always reads it from the wire
// marker.
func WithDecoderInitialFieldNames(names []string) DecoderOption {
	return options.New(func(c *DecoderConfig) { c.initialFieldNames = names })
}

// WithDecoderMaxDepth overrides DefaultMaxDepth for the nesting-depth guard.
func WithDecoderMaxDepth(maxDepth int) DecoderOption {
	return options.New(func(c *DecoderConfig) { c.maxDepth = maxDepth })
}

func newDecoderConfig(opts []DecoderOption) *DecoderConfig {
	cfg := &DecoderConfig{maxDepth: DefaultMaxDepth}
	options.Apply(cfg, opts...)

	return cfg
}
