package dicomio

import (
	"github.com/b71729/dcmcodec/dicom"
	"github.com/b71729/dcmcodec/dictionary"
	"github.com/b71729/dcmcodec/transfer"
	"github.com/klauspost/compress/flate"
)

// DefaultAllocateLimit caps the initial buffer allocated for a single value.
const DefaultAllocateLimit = 64 << 20

// DefaultMaxDepth bounds sequence nesting.
const DefaultMaxDepth = 64

// DecoderOptions configures a `Decoder`.
type DecoderOptions struct {
	// TransferSyntax is the encoding of the stream. If nil, the preamble and
	// the first element header are inspected to determine it.
	TransferSyntax *transfer.Syntax
	// AllocateLimit caps the initial allocation for a value; larger values
	// are read by doubling the buffer. Zero or negative means no cap, so a
	// forged length allocates in full: decode untrusted input with options
	// derived from `DefaultDecoderOptions`.
	AllocateLimit int64
	// MaxDepth bounds sequence nesting. Zero or negative means no bound, which
	// is unsafe for untrusted input.
	MaxDepth int
	// Dictionary resolves implicit VRs. If nil, `dictionary.Default()` is used.
	Dictionary *dictionary.Registry
	// TransferSyntaxes resolves (0002,0010). If nil, `transfer.Default()` is used.
	TransferSyntaxes *transfer.Registry
	// Intern, if set, shares identical primitive elements between data sets.
	Intern *dicom.InternTable
	// Strict turns recoverable anomalies into errors.
	Strict bool
	// BufferSize is the size of the read buffer. Values under 4096 use the bufio default.
	BufferSize int
}

// DefaultDecoderOptions returns the options used when none are given.
func DefaultDecoderOptions() DecoderOptions {
	return DecoderOptions{
		AllocateLimit: DefaultAllocateLimit,
		MaxDepth:      DefaultMaxDepth,
	}
}

// EncoderOptions configures an `Encoder`.
type EncoderOptions struct {
	// ExplicitItemLength writes defined lengths for non-empty items.
	ExplicitItemLength bool
	// ExplicitSequenceLength writes defined lengths for non-empty sequences.
	ExplicitSequenceLength bool
	// ExplicitItemLengthIfZero writes a zero length for empty items instead
	// of an undefined length plus delimiter.
	ExplicitItemLengthIfZero bool
	// ExplicitSequenceLengthIfZero does the same for empty sequences.
	ExplicitSequenceLengthIfZero bool
	// IncludeGroupLength writes a (gggg,0000) element before each group of a data set.
	IncludeGroupLength bool
	// AutoFinish finishes a deflate stream once the data set is written.
	AutoFinish bool
	// Preamble is written before "DICM" by `WriteFileMetaInformation`.
	// If nil, 128 zero bytes are written.
	Preamble []byte
	// OmitPreamble suppresses both the preamble and "DICM".
	OmitPreamble bool
	// CompressionLevel is passed to the deflate writer. The zero value is
	// flate.NoCompression, which writes stored blocks; `DefaultEncoderOptions`
	// sets flate.DefaultCompression.
	CompressionLevel int
}

// DefaultEncoderOptions returns the options used when none are given.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		ExplicitItemLengthIfZero:     true,
		ExplicitSequenceLengthIfZero: true,
		AutoFinish:                   true,
		CompressionLevel:             flate.DefaultCompression,
	}
}
