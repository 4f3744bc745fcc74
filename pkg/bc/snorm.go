package bc

// Signed BC4 and BC5 blocks hold two's-complement endpoints in [-127, 127];
// -128 decodes as -127. Their uncompressed side maps the signed range onto
// unsigned bytes, 0 for -1.0 and 255 for +1.0, so they share the R8 and GR8
// layouts with the unsigned formats.

// SNormToUnorm maps a signed channel value to its unsigned byte.
func SNormToUnorm(s int8) uint8 {
	v := max(int(s), -127)
	return uint8(((v+127)*255 + 127) / 254)
}

// UnormToSNorm maps an unsigned byte to the nearest signed channel value.
func UnormToSNorm(u uint8) int8 {
	return int8((int(u)*254+127)/255 - 127)
}

// EncodeBC4SNormBlock compresses one unsigned-mapped channel into a signed
// BC4 block.
func EncodeBC4SNormBlock(src *[BlockPixels]uint8) BC4Block {
	var biased [BlockPixels]uint8
	for i, v := range src {
		biased[i] = uint8(int(UnormToSNorm(v)) + 127)
	}
	// the unsigned encoder orders endpoints the same way after the shift
	b := EncodeBC4Block(&biased)
	b.Alpha0 = uint8(int8(int(b.Alpha0) - 127))
	b.Alpha1 = uint8(int8(int(b.Alpha1) - 127))
	return b
}

// DecodeBC4SNormBlock expands a signed BC4 block to unsigned-mapped values.
func DecodeBC4SNormBlock(b BC4Block) [BlockPixels]uint8 {
	pal := BC4SNormPalette(int8(b.Alpha0), int8(b.Alpha1))
	var dst [BlockPixels]uint8
	for i := range dst {
		dst[i] = SNormToUnorm(pal[b.Index(i)])
	}
	return dst
}

// BC4SNormPalette is BC4Palette for signed endpoints. The literals of the
// six-value ramp are -127 and 127.
func BC4SNormPalette(a0, a1 int8) [8]int8 {
	e0, e1 := max(a0, -127), max(a1, -127)
	pal := [8]int8{e0, e1}
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			pal[i+1] = lerpRoundSigned(e0, e1, 7-i, i, 7)
		}
		return pal
	}
	for i := 1; i < 5; i++ {
		pal[i+1] = lerpRoundSigned(e0, e1, 5-i, i, 5)
	}
	pal[6] = -127
	pal[7] = 127
	return pal
}

func lerpRoundSigned(a, b int8, wa, wb, div int) int8 {
	num := wa*int(a) + wb*int(b)
	if num < 0 {
		return int8(-((-2*num + div) / (2 * div)))
	}
	return int8((2*num + div) / (2 * div))
}

// EncodeBC4SNorm compresses src and writes the 8-byte block to dst.
func EncodeBC4SNorm(dst []byte, src *[BlockPixels]uint8) {
	EncodeBC4SNormBlock(src).PutBytes(dst)
}

// DecodeBC4SNorm expands the 8-byte block in src.
func DecodeBC4SNorm(dst *[BlockPixels]uint8, src []byte) {
	*dst = DecodeBC4SNormBlock(ReadBC4Block(src))
}

// EncodeBC5SNormBlock compresses two unsigned-mapped channels into a signed
// BC5 block.
func EncodeBC5SNormBlock(src *[BlockPixels]uint16) BC5Block {
	var r, g [BlockPixels]uint8
	splitGR(src, &r, &g)
	return BC5Block{Red: EncodeBC4SNormBlock(&r), Green: EncodeBC4SNormBlock(&g)}
}

// DecodeBC5SNormBlock expands a signed BC5 block.
func DecodeBC5SNormBlock(b BC5Block) [BlockPixels]uint16 {
	r := DecodeBC4SNormBlock(b.Red)
	g := DecodeBC4SNormBlock(b.Green)
	return joinGR(&r, &g)
}

// EncodeBC5SNorm compresses src and writes the 16-byte block to dst.
func EncodeBC5SNorm(dst []byte, src *[BlockPixels]uint16) {
	EncodeBC5SNormBlock(src).PutBytes(dst)
}

// DecodeBC5SNorm expands the 16-byte block in src.
func DecodeBC5SNorm(dst *[BlockPixels]uint16, src []byte) {
	*dst = DecodeBC5SNormBlock(ReadBC5Block(src))
}
