package bc

// EncodeBC1Block compresses 16 pixels into a BC1 block. Pixels with alpha
// below 0x80 are stored as transparent black using the three-colour mode.
func EncodeBC1Block(src *[BlockPixels]ARGB, method Method) BC1Block {
	var px [BlockPixels]ARGB
	alpha := false
	for i, c := range src {
		if c.A() < 0x80 {
			alpha = true
			continue
		}
		px[i] = c
	}
	return encodeBC1(&px, alpha, method)
}

// EncodeBC1 compresses src and writes the 8-byte block to dst.
func EncodeBC1(dst []byte, src *[BlockPixels]ARGB, method Method) {
	EncodeBC1Block(src, method).PutBytes(dst)
}

// DecodeBC1 expands the 8-byte block in src.
func DecodeBC1(dst *[BlockPixels]ARGB, src []byte) {
	*dst = DecodeBC1Block(ReadBC1Block(src))
}

// DecodeBC1Block expands a BC1 block to 16 pixels.
func DecodeBC1Block(b BC1Block) [BlockPixels]ARGB {
	return expandBC1(b, bc1Palette(b, false))
}

func expandBC1(b BC1Block, pal [4]ARGB) [BlockPixels]ARGB {
	var dst [BlockPixels]ARGB
	for i := range dst {
		dst[i] = pal[b.Index(i)]
	}
	return dst
}

// bc1Palette returns the four block colours. forceOpaque selects the
// four-colour palette regardless of endpoint order, as BC2 and BC3 do.
func bc1Palette(b BC1Block, forceOpaque bool) [4]ARGB {
	c0 := b.Color0.ToARGB()
	c1 := b.Color1.ToARGB()
	pal := [4]ARGB{c0, c1}
	if forceOpaque || b.Opaque() {
		pal[2] = mix(c0, c1, 2, 1, 3)
		pal[3] = mix(c0, c1, 1, 2, 3)
	} else {
		pal[2] = mix(c0, c1, 1, 1, 2)
		pal[3] = 0
	}
	return pal
}

// mix returns (wa*a + wb*b) / div per colour channel with full alpha.
func mix(a, b ARGB, wa, wb, div int) ARGB {
	r := (wa*int(a.R()) + wb*int(b.R())) / div
	g := (wa*int(a.G()) + wb*int(b.G())) / div
	bl := (wa*int(a.B()) + wb*int(b.B())) / div
	return NewARGB(0xFF, uint8(r), uint8(g), uint8(bl))
}

// encodeBC1 encodes pixels whose transparent entries are already zero.
// alpha selects the three-colour mode; BC2 and BC3 pass false.
func encodeBC1(px *[BlockPixels]ARGB, alpha bool, method Method) BC1Block {
	min32, max32 := px[0], px[0]
	for _, c := range px[1:] {
		min32 = min(min32, c)
		max32 = max(max32, c)
	}

	var max16, min16 RGB565
	var mask uint32
	if min32 == max32 {
		c := px[0]
		if alpha && c == 0 {
			return BC1Block{Indices: 0xFFFFFFFF}
		}
		// constant colour: every pixel uses the 2/3 interpolant
		mask = 0xAAAAAAAA
		r, g, b := c.R(), c.G(), c.B()
		max16 = makeRGB565(int(oMatch5[r][0]), int(oMatch6[g][0]), int(oMatch5[b][0]))
		min16 = makeRGB565(int(oMatch5[r][1]), int(oMatch6[g][1]), int(oMatch5[b][1]))
	} else {
		maxClr, minClr := optimizeColorsBlock(px, method)
		max16 = PackRGB565(maxClr)
		min16 = PackRGB565(minClr)
		mask = endpointMask(px, max16, min16, alpha)

		if !alpha && method != Speed {
			if refineBlock(px, mask, &max16, &min16) {
				mask = endpointMask(px, max16, min16, alpha)
			}
		}
	}
	return canonicalBC1(max16, min16, mask, alpha)
}

func endpointMask(px *[BlockPixels]ARGB, max16, min16 RGB565, alpha bool) uint32 {
	if max16 != min16 {
		return matchColorsBlock(px, max16.ToARGB(), min16.ToARGB(), alpha)
	}
	if alpha {
		return transparencyMask(px)
	}
	return 0
}

// canonicalBC1 orders the endpoints so the decoder selects the intended
// mode: Color0 >= Color1 for opaque blocks, Color0 <= Color1 for alpha ones.
func canonicalBC1(max16, min16 RGB565, mask uint32, alpha bool) BC1Block {
	if alpha {
		if max16 < min16 {
			max16, min16 = min16, max16
			mask = swapLowIndices(mask)
		}
		return BC1Block{Color0: min16, Color1: max16, Indices: mask}
	}
	if max16 < min16 {
		max16, min16 = min16, max16
		mask ^= 0x55555555
	}
	return BC1Block{Color0: max16, Color1: min16, Indices: mask}
}

// swapLowIndices exchanges indices 0 and 1, leaving 2 and 3 untouched.
func swapLowIndices(mask uint32) uint32 {
	hi := mask & 0xAAAAAAAA
	return mask ^ (^(hi >> 1) & 0x55555555)
}
