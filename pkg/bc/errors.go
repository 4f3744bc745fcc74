package bc

import "errors"

var (
	// ErrUnsupportedFormat is returned for a Format with no codec.
	ErrUnsupportedFormat = errors.New("bc: unsupported format")
	// ErrShortBuffer is returned when a surface buffer cannot hold the
	// requested dimensions at the given pitch.
	ErrShortBuffer = errors.New("bc: buffer too small")
	// ErrInvalidDimensions is returned for non-positive sizes or pitches
	// narrower than one row.
	ErrInvalidDimensions = errors.New("bc: invalid dimensions")
)
