package bc

// Index weights toward the max endpoint (out of 3) for each BC1 index,
// and the matching packed xx/yy/xy products of the normal equations.
var (
	w1Tab = [4]int{3, 0, 2, 1}
	prods = [4]int{0x090000, 0x000900, 0x040102, 0x010402}
)

// matchColorsBlock assigns each pixel the palette index nearest to it along
// the max-min axis. Indices follow the stored-block convention of the mode:
// opaque 0=max 1=min 2,3 interpolated; alpha 0=min 1=max 2=average
// 3=transparent.
func matchColorsBlock(src *[BlockPixels]ARGB, maxClr, minClr ARGB, alpha bool) uint32 {
	var pal [4][3]int
	for ch := 0; ch < 3; ch++ {
		hi := channel(maxClr, ch)
		lo := channel(minClr, ch)
		pal[0][ch] = hi
		pal[1][ch] = lo
		pal[2][ch] = (2*hi + lo) / 3
		pal[3][ch] = (hi + 2*lo) / 3
	}

	dirR := pal[0][0] - pal[1][0]
	dirG := pal[0][1] - pal[1][1]
	dirB := pal[0][2] - pal[1][2]

	var stops [4]int
	for i := range stops {
		stops[i] = pal[i][0]*dirR + pal[i][1]*dirG + pal[i][2]*dirB
	}

	var mask uint32
	if alpha {
		c0Point := (stops[0] + 2*stops[1]) / 3
		c3Point := (2*stops[0] + stops[1]) / 3
		for i := BlockPixels - 1; i >= 0; i-- {
			mask <<= 2
			c := src[i]
			if c.A() < 0x80 {
				mask |= 3
				continue
			}
			dot := int(c.R())*dirR + int(c.G())*dirG + int(c.B())*dirB
			if dot >= c0Point {
				if dot < c3Point {
					mask |= 2
				} else {
					mask |= 1
				}
			}
		}
		return mask
	}

	c0Point := (stops[1] + stops[3]) >> 1
	halfPoint := (stops[3] + stops[2]) >> 1
	c3Point := (stops[2] + stops[0]) >> 1
	for i := BlockPixels - 1; i >= 0; i-- {
		mask <<= 2
		c := src[i]
		dot := int(c.R())*dirR + int(c.G())*dirG + int(c.B())*dirB
		if dot < halfPoint {
			if dot < c0Point {
				mask |= 1
			} else {
				mask |= 3
			}
		} else if dot < c3Point {
			mask |= 2
		}
	}
	return mask
}

// transparencyMask returns index 3 for every transparent pixel and 0
// elsewhere, for alpha blocks whose endpoints coincide.
func transparencyMask(src *[BlockPixels]ARGB) uint32 {
	var mask uint32
	for i, c := range src {
		if c.A() < 0x80 {
			mask |= 3 << (2 * uint(i))
		}
	}
	return mask
}

// refineBlock solves the least-squares endpoints for a fixed opaque index
// mask. It reports whether the quantised endpoints changed; a solution that
// would reconstruct the block worse than the current endpoints is rejected.
func refineBlock(src *[BlockPixels]ARGB, mask uint32, max16, min16 *RGB565) bool {
	var at1, at2 [3]int
	akku := 0
	cm := mask
	for i := 0; i < BlockPixels; i++ {
		step := cm & 3
		cm >>= 2
		w1 := w1Tab[step]
		akku += prods[step]
		for ch := 0; ch < 3; ch++ {
			v := channel(src[i], ch)
			at1[ch] += w1 * v
			at2[ch] += v
		}
	}
	for ch := range at2 {
		at2[ch] = 3*at2[ch] - at1[ch]
	}

	xx := akku >> 16
	yy := (akku >> 8) & 0xFF
	xy := akku & 0xFF
	if xx == 0 || yy == 0 || xx*yy == xy*xy {
		return false
	}

	frb := 3.0 * 31.0 / 255.0 / float32(xx*yy-xy*xy)
	fg := frb * 63.0 / 31.0

	solve := func(a, b int, f float32, hi int) int {
		return clamp(int(float32(a*yy-b*xy)*f+0.5), 0, hi)
	}
	solveMin := func(a, b int, f float32, hi int) int {
		return clamp(int(float32(b*xx-a*xy)*f+0.5), 0, hi)
	}

	newMax := makeRGB565(
		solve(at1[0], at2[0], frb, 31),
		solve(at1[1], at2[1], fg, 63),
		solve(at1[2], at2[2], frb, 31))
	newMin := makeRGB565(
		solveMin(at1[0], at2[0], frb, 31),
		solveMin(at1[1], at2[1], fg, 63),
		solveMin(at1[2], at2[2], frb, 31))

	if newMax == *max16 && newMin == *min16 {
		return false
	}
	oldErr := blockError(src, max16.ToARGB(), min16.ToARGB(), mask)
	newErr := blockError(src, newMax.ToARGB(), newMin.ToARGB(), mask)
	if newErr > oldErr {
		return false
	}
	*max16 = newMax
	*min16 = newMin
	return true
}

// blockError sums the squared RGB error of reconstructing src from the
// opaque palette spanned by maxClr and minClr under mask.
func blockError(src *[BlockPixels]ARGB, maxClr, minClr ARGB, mask uint32) int {
	var pal [4][3]int
	for ch := 0; ch < 3; ch++ {
		hi := channel(maxClr, ch)
		lo := channel(minClr, ch)
		pal[0][ch] = hi
		pal[1][ch] = lo
		pal[2][ch] = (2*hi + lo) / 3
		pal[3][ch] = (hi + 2*lo) / 3
	}
	total := 0
	for i, c := range src {
		p := pal[(mask>>(2*uint(i)))&3]
		for ch := 0; ch < 3; ch++ {
			d := channel(c, ch) - p[ch]
			total += d * d
		}
	}
	return total
}
