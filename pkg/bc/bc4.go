package bc

// EncodeBC4Block compresses one 8-bit channel. Alpha0 is the block maximum
// and Alpha1 the minimum, so the decoder uses the eight-value ramp.
func EncodeBC4Block(src *[BlockPixels]uint8) BC4Block {
	mn, mx := src[0], src[0]
	for _, v := range src[1:] {
		mn = min(mn, v)
		mx = max(mx, v)
	}

	b := BC4Block{Alpha0: mx, Alpha1: mn}

	dist := int32(mx) - int32(mn)
	bias := int32(mn)*7 - (dist >> 1)
	dist4 := dist * 4
	dist2 := dist * 2

	for i, v := range src {
		a := int32(v)*7 - bias

		t := (dist4 - a) >> 31
		ind := t & 4
		a -= dist4 & t

		t = (dist2 - a) >> 31
		ind += t & 2
		a -= dist2 & t

		t = (dist - a) >> 31
		ind += t & 1

		// linear ramp position to BC4 index; 0 and 1 are the endpoints
		ind = -ind & 7
		if ind < 2 {
			ind ^= 1
		}
		b.Indices |= uint64(ind) << (3 * uint(i))
	}
	return b
}

// EncodeBC4 compresses src and writes the 8-byte block to dst.
func EncodeBC4(dst []byte, src *[BlockPixels]uint8) {
	EncodeBC4Block(src).PutBytes(dst)
}

// DecodeBC4 expands the 8-byte block in src.
func DecodeBC4(dst *[BlockPixels]uint8, src []byte) {
	*dst = DecodeBC4Block(ReadBC4Block(src))
}

// DecodeBC4Block expands a BC4 block to 16 values.
func DecodeBC4Block(b BC4Block) [BlockPixels]uint8 {
	pal := BC4Palette(b.Alpha0, b.Alpha1)
	var dst [BlockPixels]uint8
	for i := range dst {
		dst[i] = pal[b.Index(i)]
	}
	return dst
}

// BC4Palette returns the eight values addressed by BC4 indices. When
// a0 > a1 indices 2..7 interpolate in sevenths; otherwise 2..5 interpolate
// in fifths and 6 and 7 are the literals 0 and 255.
func BC4Palette(a0, a1 uint8) [8]uint8 {
	pal := [8]uint8{a0, a1}
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			pal[i+1] = lerpRound(a0, a1, 7-i, i, 7)
		}
		return pal
	}
	for i := 1; i < 5; i++ {
		pal[i+1] = lerpRound(a0, a1, 5-i, i, 5)
	}
	pal[6] = 0
	pal[7] = 255
	return pal
}

func lerpRound(a, b uint8, wa, wb, div int) uint8 {
	num := wa*int(a) + wb*int(b)
	return uint8((2*num + div) / (2 * div))
}
