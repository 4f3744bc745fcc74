package bc

import (
	"fmt"
	"strings"
)

// Format identifies a block-compressed pixel format.
type Format int

const (
	Unknown Format = iota
	BC1
	BC1SRGB
	BC2
	BC2SRGB
	BC3
	BC3SRGB
	BC4
	BC4SRGB
	BC5
	BC5SRGB
	BC7
	BC7SRGB
	BC4SNorm
	BC5SNorm
)

// Formats lists every known format in declaration order.
var Formats = []Format{
	BC1, BC1SRGB, BC2, BC2SRGB, BC3, BC3SRGB,
	BC4, BC4SRGB, BC4SNorm, BC5, BC5SRGB, BC5SNorm,
	BC7, BC7SRGB,
}

var formatNames = map[Format]string{
	BC1:     "BC1",
	BC1SRGB: "BC1_SRGB",
	BC2:     "BC2",
	BC2SRGB: "BC2_SRGB",
	BC3:     "BC3",
	BC3SRGB: "BC3_SRGB",
	BC4:     "BC4",
	BC4SRGB: "BC4_SRGB",
	BC5:     "BC5",
	BC5SRGB: "BC5_SRGB",
	BC7:     "BC7",
	BC7SRGB: "BC7_SRGB",

	BC4SNorm: "BC4_SNORM",
	BC5SNorm: "BC5_SNORM",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts the names printed by String in any case, with or
// without the underscore, and the legacy DXT/ATI aliases.
func ParseFormat(s string) (Format, error) {
	key := strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
	switch key {
	case "DXT1":
		return BC1, nil
	case "DXT2", "DXT3":
		return BC2, nil
	case "DXT4", "DXT5":
		return BC3, nil
	case "ATI1", "BC4U":
		return BC4, nil
	case "ATI2", "BC5U":
		return BC5, nil
	case "BC4S":
		return BC4SNorm, nil
	case "BC5S":
		return BC5SNorm, nil
	}
	for f, name := range formatNames {
		if key == name || key == strings.ReplaceAll(name, "_", "") {
			return f, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Valid reports whether f names a known format.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// IsSRGB reports whether colour channels are stored sRGB-encoded.
func (f Format) IsSRGB() bool {
	switch f {
	case BC1SRGB, BC2SRGB, BC3SRGB, BC4SRGB, BC5SRGB, BC7SRGB:
		return true
	}
	return false
}

// Linear returns the non-sRGB counterpart of f.
func (f Format) Linear() Format {
	if f.IsSRGB() {
		return f - 1
	}
	return f
}

// SRGB returns the sRGB counterpart of f, or f when it has none.
func (f Format) SRGB() Format {
	switch f {
	case BC1, BC2, BC3, BC4, BC5, BC7:
		return f + 1
	}
	return f
}

// IsSigned reports whether channels are stored as signed values.
func (f Format) IsSigned() bool {
	return f == BC4SNorm || f == BC5SNorm
}

// HasAlpha reports whether the format stores an alpha channel.
func (f Format) HasAlpha() bool {
	switch f.Linear() {
	case BC1, BC2, BC3, BC7:
		return true
	}
	return false
}

// BlockBytes returns the encoded size of one 4x4 block.
func (f Format) BlockBytes() int {
	switch f.Linear() {
	case BC1, BC4, BC4SNorm:
		return 8
	case BC2, BC3, BC5, BC5SNorm, BC7:
		return 16
	}
	return 0
}

// PixelLayout describes the uncompressed pixels a format encodes from and
// decodes to.
type PixelLayout int

const (
	// LayoutARGB8 is one little-endian ARGB uint32 per pixel (bytes B, G, R, A).
	LayoutARGB8 PixelLayout = iota
	// LayoutR8 is one byte per pixel.
	LayoutR8
	// LayoutGR8 is two bytes per pixel, red then green.
	LayoutGR8
)

// Bytes returns the size of one pixel.
func (l PixelLayout) Bytes() int {
	switch l {
	case LayoutR8:
		return 1
	case LayoutGR8:
		return 2
	}
	return 4
}

func (l PixelLayout) String() string {
	switch l {
	case LayoutR8:
		return "R8"
	case LayoutGR8:
		return "GR8"
	}
	return "ARGB8"
}

// DecodedLayout returns the uncompressed layout of f.
func (f Format) DecodedLayout() PixelLayout {
	switch f.Linear() {
	case BC4, BC4SNorm:
		return LayoutR8
	case BC5, BC5SNorm:
		return LayoutGR8
	}
	return LayoutARGB8
}

// PixelBytes returns the uncompressed size of one pixel of f.
func (f Format) PixelBytes() int {
	return f.DecodedLayout().Bytes()
}

// BlocksWide returns the number of block columns covering width pixels.
func BlocksWide(width int) int {
	return (width + BlockWidth - 1) / BlockWidth
}

// BlocksHigh returns the number of block rows covering height pixels.
func BlocksHigh(height int) int {
	return (height + BlockHeight - 1) / BlockHeight
}

// RowPitch returns the tightly packed size of one block row.
func (f Format) RowPitch(width int) int {
	return BlocksWide(width) * f.BlockBytes()
}

// SurfaceSize returns the tightly packed encoded size of a width x height
// surface.
func (f Format) SurfaceSize(width, height int) int {
	return f.RowPitch(width) * BlocksHigh(height)
}
