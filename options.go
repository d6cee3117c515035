package stitch

// DecodeOption configures a decode operation.
//
// Example:
//
//	// Skip thumbnail extraction for faster bulk scanning:
//	pat, err := stitch.Decode(data, stitch.WithoutThumbnails())
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	skipThumbnails bool
	chart          ColorTable
}

func buildDecodeOptions(opts []DecodeOption) decodeOptions {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithoutThumbnails skips reading the PEC thumbnail section. The decoded
// Pattern then has no Thumbnails and the encoder writes placeholder icons.
func WithoutThumbnails() DecodeOption {
	return func(o *decodeOptions) { o.skipThumbnails = true }
}

// WithCatalog supplies a thread chart for resolving PEC color indices in
// files that carry none of their own, replacing the built-in Brother catalog.
// A PES version 6 header chart still takes precedence.
func WithCatalog(chart ColorTable) DecodeOption {
	return func(o *decodeOptions) { o.chart = chart }
}

// EncodeOption configures an encode operation.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	label string
}

func buildEncodeOptions(opts []EncodeOption) encodeOptions {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLabel overrides the pattern label written to the PEC header. Labels
// longer than the 16-byte wire field are truncated.
func WithLabel(label string) EncodeOption {
	return func(o *encodeOptions) { o.label = label }
}
