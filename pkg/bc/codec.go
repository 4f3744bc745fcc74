package bc

import "fmt"

// Codec encodes and decodes single blocks of one format. The uncompressed
// side is 16 pixels in raster order laid out as Format().DecodedLayout().
type Codec interface {
	Format() Format
	// EncodeBlock compresses 16 pixels from src into one block in dst.
	EncodeBlock(dst, src []byte, method Method)
	// DecodeBlock expands the block in src into 16 pixels in dst.
	DecodeBlock(dst, src []byte)
}

type blockCodec struct {
	format Format
	encode func(dst, src []byte, method Method)
	decode func(dst, src []byte)
}

func (c blockCodec) Format() Format { return c.format }

func (c blockCodec) EncodeBlock(dst, src []byte, method Method) { c.encode(dst, src, method) }

func (c blockCodec) DecodeBlock(dst, src []byte) { c.decode(dst, src) }

// argbCodec adapts block functions over [16]ARGB to raw bytes.
func argbCodec(f Format,
	enc func([]byte, *[BlockPixels]ARGB, Method),
	dec func(*[BlockPixels]ARGB, []byte)) blockCodec {
	return blockCodec{
		format: f,
		encode: func(dst, src []byte, method Method) {
			var px [BlockPixels]ARGB
			readARGBBlock(&px, src)
			enc(dst, &px, method)
		},
		decode: func(dst, src []byte) {
			var px [BlockPixels]ARGB
			dec(&px, src)
			writeARGBBlock(dst, &px)
		},
	}
}

func r8Codec(f Format,
	enc func([]byte, *[BlockPixels]uint8),
	dec func(*[BlockPixels]uint8, []byte)) blockCodec {
	return blockCodec{
		format: f,
		encode: func(dst, src []byte, _ Method) {
			var px [BlockPixels]uint8
			copy(px[:], src[:BlockPixels])
			enc(dst, &px)
		},
		decode: func(dst, src []byte) {
			var px [BlockPixels]uint8
			dec(&px, src)
			copy(dst[:BlockPixels], px[:])
		},
	}
}

func gr8Codec(f Format,
	enc func([]byte, *[BlockPixels]uint16),
	dec func(*[BlockPixels]uint16, []byte)) blockCodec {
	return blockCodec{
		format: f,
		encode: func(dst, src []byte, _ Method) {
			_ = src[BlockPixels*2-1]
			var px [BlockPixels]uint16
			for i := range px {
				px[i] = uint16(src[2*i]) | uint16(src[2*i+1])<<8
			}
			enc(dst, &px)
		},
		decode: func(dst, src []byte) {
			_ = dst[BlockPixels*2-1]
			var px [BlockPixels]uint16
			dec(&px, src)
			for i, v := range px {
				dst[2*i] = byte(v)
				dst[2*i+1] = byte(v >> 8)
			}
		},
	}
}

// BC7 stores sRGB data as-is; the sRGB flag only tags the payload.
var codecs = map[Format]blockCodec{
	BC1:     argbCodec(BC1, EncodeBC1, DecodeBC1),
	BC1SRGB: argbCodec(BC1SRGB, EncodeBC1SRGB, DecodeBC1SRGB),
	BC2:     argbCodec(BC2, EncodeBC2, DecodeBC2),
	BC2SRGB: argbCodec(BC2SRGB, EncodeBC2SRGB, DecodeBC2SRGB),
	BC3:     argbCodec(BC3, EncodeBC3, DecodeBC3),
	BC3SRGB: argbCodec(BC3SRGB, EncodeBC3SRGB, DecodeBC3SRGB),
	BC4:     r8Codec(BC4, EncodeBC4, DecodeBC4),
	BC4SRGB: r8Codec(BC4SRGB, EncodeBC4SRGB, DecodeBC4SRGB),
	BC5:     gr8Codec(BC5, EncodeBC5, DecodeBC5),
	BC5SRGB: gr8Codec(BC5SRGB, EncodeBC5SRGB, DecodeBC5SRGB),
	BC7:     argbCodec(BC7, EncodeBC7, DecodeBC7),
	BC7SRGB: argbCodec(BC7SRGB, EncodeBC7, DecodeBC7),

	BC4SNorm: r8Codec(BC4SNorm, EncodeBC4SNorm, DecodeBC4SNorm),
	BC5SNorm: gr8Codec(BC5SNorm, EncodeBC5SNorm, DecodeBC5SNorm),
}

// NewCodec returns the block codec for f.
func NewCodec(f Format) (Codec, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	return c, nil
}
