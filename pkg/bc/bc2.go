package bc

// EncodeBC2Block stores alpha as explicit 4-bit values and colour as an
// opaque BC1 block.
func EncodeBC2Block(src *[BlockPixels]ARGB, method Method) BC2Block {
	px := opaqueCopy(src)
	return BC2Block{Alpha: explicitAlpha(src), Color: encodeBC1(&px, false, method)}
}

// explicitAlpha quantises every pixel's alpha to 4 bits, one row per word.
func explicitAlpha(src *[BlockPixels]ARGB) [4]uint16 {
	var rows [4]uint16
	for i, c := range src {
		n := uint16(mul8Bit(int(c.A()), 15))
		rows[i/4] |= n << (4 * uint(i%4))
	}
	return rows
}

// EncodeBC2 compresses src and writes the 16-byte block to dst.
func EncodeBC2(dst []byte, src *[BlockPixels]ARGB, method Method) {
	EncodeBC2Block(src, method).PutBytes(dst)
}

// DecodeBC2 expands the 16-byte block in src.
func DecodeBC2(dst *[BlockPixels]ARGB, src []byte) {
	*dst = DecodeBC2Block(ReadBC2Block(src))
}

// DecodeBC2Block expands a BC2 block to 16 pixels.
func DecodeBC2Block(b BC2Block) [BlockPixels]ARGB {
	dst := expandBC1(b.Color, bc1Palette(b.Color, true))
	for i := range dst {
		n := uint8(b.Alpha[i/4]>>(4*uint(i%4))) & 0xF
		dst[i] = withAlpha(dst[i], n<<4|n)
	}
	return dst
}

func opaqueCopy(src *[BlockPixels]ARGB) [BlockPixels]ARGB {
	var px [BlockPixels]ARGB
	for i, c := range src {
		px[i] = c | 0xFF000000
	}
	return px
}

func withAlpha(c ARGB, a uint8) ARGB {
	return c&0x00FFFFFF | ARGB(a)<<24
}
