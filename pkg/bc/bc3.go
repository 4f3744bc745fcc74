package bc

// EncodeBC3Block stores alpha as a BC4 block and colour as an opaque BC1
// block.
func EncodeBC3Block(src *[BlockPixels]ARGB, method Method) BC3Block {
	alpha := alphaChannel(src)
	px := opaqueCopy(src)
	return BC3Block{
		Alpha: EncodeBC4Block(&alpha),
		Color: encodeBC1(&px, false, method),
	}
}

func alphaChannel(src *[BlockPixels]ARGB) [BlockPixels]uint8 {
	var alpha [BlockPixels]uint8
	for i, c := range src {
		alpha[i] = c.A()
	}
	return alpha
}

// EncodeBC3 compresses src and writes the 16-byte block to dst.
func EncodeBC3(dst []byte, src *[BlockPixels]ARGB, method Method) {
	EncodeBC3Block(src, method).PutBytes(dst)
}

// DecodeBC3 expands the 16-byte block in src.
func DecodeBC3(dst *[BlockPixels]ARGB, src []byte) {
	*dst = DecodeBC3Block(ReadBC3Block(src))
}

// DecodeBC3Block expands a BC3 block to 16 pixels.
func DecodeBC3Block(b BC3Block) [BlockPixels]ARGB {
	dst := expandBC1(b.Color, bc1Palette(b.Color, true))
	alpha := DecodeBC4Block(b.Alpha)
	for i := range dst {
		dst[i] = withAlpha(dst[i], alpha[i])
	}
	return dst
}
