package bc

// EncodeBC5Block compresses two channels. Each src value packs red in the
// low byte and green in the high byte.
func EncodeBC5Block(src *[BlockPixels]uint16) BC5Block {
	var r, g [BlockPixels]uint8
	splitGR(src, &r, &g)
	return BC5Block{Red: EncodeBC4Block(&r), Green: EncodeBC4Block(&g)}
}

// EncodeBC5 compresses src and writes the 16-byte block to dst.
func EncodeBC5(dst []byte, src *[BlockPixels]uint16) {
	EncodeBC5Block(src).PutBytes(dst)
}

// DecodeBC5 expands the 16-byte block in src.
func DecodeBC5(dst *[BlockPixels]uint16, src []byte) {
	*dst = DecodeBC5Block(ReadBC5Block(src))
}

// DecodeBC5Block expands a BC5 block to 16 packed red/green values.
func DecodeBC5Block(b BC5Block) [BlockPixels]uint16 {
	r := DecodeBC4Block(b.Red)
	g := DecodeBC4Block(b.Green)
	return joinGR(&r, &g)
}

func splitGR(src *[BlockPixels]uint16, r, g *[BlockPixels]uint8) {
	for i, v := range src {
		r[i] = uint8(v)
		g[i] = uint8(v >> 8)
	}
}

func joinGR(r, g *[BlockPixels]uint8) [BlockPixels]uint16 {
	var dst [BlockPixels]uint16
	for i := range dst {
		dst[i] = uint16(r[i]) | uint16(g[i])<<8
	}
	return dst
}
