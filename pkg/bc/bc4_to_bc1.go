package bc

// BC4ToBC1G re-expresses a BC4 channel as the green plane of an opaque BC1
// block, with red and blue zero. Normal-map pipelines use it to move a
// channel between the two formats without touching the source pixels.
func BC4ToBC1G(b BC4Block) BC1Block {
	vals := DecodeBC4Block(b)
	mn, mx := vals[0], vals[0]
	for _, v := range vals[1:] {
		mn = min(mn, v)
		mx = max(mx, v)
	}

	hi := int(quantGTab[int(mx)+8] >> 2)
	lo := int(quantGTab[int(mn)+8] >> 2)
	out := BC1Block{Color0: makeRGB565(0, hi, 0), Color1: makeRGB565(0, lo, 0)}
	if hi == lo {
		return out
	}

	g0, g1 := int(expand6[hi]), int(expand6[lo])
	greens := [4]int{g0, g1, (2*g0 + g1) / 3, (g0 + 2*g1) / 3}
	for i, v := range vals {
		best, bestErr := 0, 256
		for j, g := range greens {
			d := int(v) - g
			if d < 0 {
				d = -d
			}
			if d < bestErr {
				best, bestErr = j, d
			}
		}
		out.Indices |= uint32(best) << (2 * uint(i))
	}
	return out
}
