package bc

import "math"

// DecodeBC7 expands the 16-byte BC7 block in src. Blocks with a reserved
// mode decode to transparent black.
func DecodeBC7(dst *[BlockPixels]ARGB, src []byte) {
	_ = src[BC7BlockSize-1]
	*dst = [BlockPixels]ARGB{}

	mode := 0
	for mode < 8 && (src[0]>>uint(mode))&1 == 0 {
		mode++
	}
	if mode == 8 {
		return
	}
	info := &bc7Modes[mode]
	r := bitReader{data: src[:BC7BlockSize], pos: mode + 1}

	shape := r.read(info.partitionBits)
	rotation := r.read(info.rotationBits)
	indexMode := r.read(info.indexModeBits)

	numEndpoints := info.partitions * 2
	var ep [6][4]int
	for ch := 0; ch < 4; ch++ {
		for j := 0; j < numEndpoints; j++ {
			if info.prec[ch] == 0 {
				ep[j][ch] = 255
				continue
			}
			ep[j][ch] = r.read(info.prec[ch])
		}
	}

	var pbits [6]int
	for i := 0; i < info.pBits; i++ {
		pbits[i] = r.read(1)
	}
	for j := 0; j < numEndpoints; j++ {
		for ch := 0; ch < 4; ch++ {
			if info.prec[ch] == 0 {
				continue
			}
			if info.prec[ch] != info.precWithP[ch] {
				ep[j][ch] = ep[j][ch]<<1 | pbits[j*info.pBits/numEndpoints]
			}
			ep[j][ch] = unquantize(ep[j][ch], info.precWithP[ch])
		}
	}

	var w1, w2 [BlockPixels]int
	for i := range w1 {
		n := info.indexPrec1
		if bc7IsAnchor(info.partitions, shape, i) {
			n--
		}
		w1[i] = r.read(n)
	}
	if info.indexPrec2 > 0 {
		for i := range w2 {
			n := info.indexPrec2
			if i == 0 {
				n--
			}
			w2[i] = r.read(n)
		}
	}

	for i := range dst {
		sub := bc7Subset(info.partitions, shape, i)
		e0, e1 := ep[2*sub], ep[2*sub+1]

		wc, pc := w1[i], info.indexPrec1
		wa, pa := w1[i], info.indexPrec1
		if info.indexPrec2 > 0 {
			if indexMode == 0 {
				wa, pa = w2[i], info.indexPrec2
			} else {
				wc, pc = w2[i], info.indexPrec2
			}
		}

		var out [4]int
		for ch := 0; ch < 3; ch++ {
			out[ch] = bc7Interpolate(e0[ch], e1[ch], bc7Weights[pc][wc])
		}
		out[3] = bc7Interpolate(e0[3], e1[3], bc7Weights[pa][wa])

		if rotation > 0 {
			out[rotation-1], out[3] = out[3], out[rotation-1]
		}
		dst[i] = NewARGB(uint8(out[3]), uint8(out[0]), uint8(out[1]), uint8(out[2]))
	}
}

func unquantize(v, prec int) int {
	if prec >= 8 {
		return v
	}
	v <<= uint(8 - prec)
	return v | v>>uint(prec)
}

func bc7Interpolate(e0, e1, w int) int {
	return (e0*(64-w) + e1*w + 32) >> 6
}

// EncodeBC7 compresses src and writes the 16-byte block to dst.
func EncodeBC7(dst []byte, src *[BlockPixels]ARGB, method Method) {
	b := EncodeBC7Block(src, method)
	copy(dst[:BC7BlockSize], b[:])
}

// EncodeBC7Block compresses 16 pixels into a BC7 block. Uniform blocks use
// mode 5; everything else is fitted with the single-subset mode 6.
func EncodeBC7Block(src *[BlockPixels]ARGB, method Method) [BC7BlockSize]byte {
	uniform := true
	for _, c := range src[1:] {
		if c != src[0] {
			uniform = false
			break
		}
	}
	if uniform {
		return packBC7Uniform(src[0])
	}
	return encodeBC7Mode6(src, method)
}

func packBC7Uniform(c ARGB) [BC7BlockSize]byte {
	var w bitWriter
	w.write(6, 1<<5)
	w.write(2, 0) // rotation

	for _, v := range []uint8{c.R(), c.G(), c.B()} {
		w.write(7, int(oMatch7[v][0]))
		w.write(7, int(oMatch7[v][1]))
	}
	w.write(8, int(c.A()))
	w.write(8, int(c.A()))

	// every colour and alpha index is 1; anchors drop their high bit
	for plane := 0; plane < 2; plane++ {
		w.write(1, 1)
		for i := 1; i < BlockPixels; i++ {
			w.write(2, 1)
		}
	}
	return w.data
}

type bc7Endpoints [2][4]int

// encodeBC7Mode6 fits one RGBA line segment with 4-bit indices.
func encodeBC7Mode6(src *[BlockPixels]ARGB, method Method) [BC7BlockSize]byte {
	var px [BlockPixels][4]float64
	for i, c := range src {
		px[i] = [4]float64{float64(c.R()), float64(c.G()), float64(c.B()), float64(c.A())}
	}

	lo, hi := principalSegment(&px)
	ep, pb := quantizeMode6(lo, hi)
	idx, bestErr := assignMode6(&px, ep)

	refits := 0
	switch method {
	case Balanced:
		refits = 1
	case Quality:
		refits = 3
	}
	for it := 0; it < refits; it++ {
		lo, hi, ok := refitSegment(&px, &idx)
		if !ok {
			break
		}
		nep, npb := quantizeMode6(lo, hi)
		nidx, nerr := assignMode6(&px, nep)
		if nerr >= bestErr {
			break
		}
		ep, pb, idx, bestErr = nep, npb, nidx, nerr
	}

	// the anchor index is stored without its high bit
	if idx[0] >= 8 {
		ep[0], ep[1] = ep[1], ep[0]
		pb[0], pb[1] = pb[1], pb[0]
		for i := range idx {
			idx[i] = 15 - idx[i]
		}
	}

	var w bitWriter
	w.write(7, 1<<6)
	for ch := 0; ch < 4; ch++ {
		w.write(7, ep[0][ch]>>1)
		w.write(7, ep[1][ch]>>1)
	}
	w.write(1, pb[0])
	w.write(1, pb[1])
	w.write(3, idx[0])
	for i := 1; i < BlockPixels; i++ {
		w.write(4, idx[i])
	}
	return w.data
}

// principalSegment returns the extent of the pixels along their principal
// RGBA axis.
func principalSegment(px *[BlockPixels][4]float64) (lo, hi [4]float64) {
	var mean, mn, mx [4]float64
	for ch := 0; ch < 4; ch++ {
		mn[ch], mx[ch] = 255, 0
	}
	for _, p := range px {
		for ch := 0; ch < 4; ch++ {
			mean[ch] += p[ch]
			mn[ch] = min(mn[ch], p[ch])
			mx[ch] = max(mx[ch], p[ch])
		}
	}
	for ch := range mean {
		mean[ch] /= BlockPixels
	}

	var cov [4][4]float64
	for _, p := range px {
		for a := 0; a < 4; a++ {
			for b := 0; b < 4; b++ {
				cov[a][b] += (p[a] - mean[a]) * (p[b] - mean[b])
			}
		}
	}

	var axis [4]float64
	for ch := range axis {
		axis[ch] = mx[ch] - mn[ch]
	}
	for iter := 0; iter < 8; iter++ {
		var next [4]float64
		for a := 0; a < 4; a++ {
			for b := 0; b < 4; b++ {
				next[a] += cov[a][b] * axis[b]
			}
		}
		n := math.Sqrt(next[0]*next[0] + next[1]*next[1] + next[2]*next[2] + next[3]*next[3])
		if n < 1e-9 {
			break
		}
		for ch := range axis {
			axis[ch] = next[ch] / n
		}
	}
	n := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2] + axis[3]*axis[3])
	if n < 1e-9 {
		return mn, mx
	}
	for ch := range axis {
		axis[ch] /= n
	}

	tmin, tmax := math.Inf(1), math.Inf(-1)
	for _, p := range px {
		t := 0.0
		for ch := 0; ch < 4; ch++ {
			t += (p[ch] - mean[ch]) * axis[ch]
		}
		tmin = min(tmin, t)
		tmax = max(tmax, t)
	}
	for ch := 0; ch < 4; ch++ {
		lo[ch] = mean[ch] + tmin*axis[ch]
		hi[ch] = mean[ch] + tmax*axis[ch]
	}
	return lo, hi
}

// quantizeMode6 rounds both endpoints to 7 bits per channel plus the p-bit
// that brings them closest to the target.
func quantizeMode6(lo, hi [4]float64) (ep bc7Endpoints, pb [2]int) {
	for e, target := range [2][4]float64{lo, hi} {
		bestErr := math.Inf(1)
		for p := 0; p < 2; p++ {
			var cand [4]int
			err := 0.0
			for ch := 0; ch < 4; ch++ {
				q := clamp(int(math.Round((target[ch]-float64(p))/2)), 0, 127)
				cand[ch] = q<<1 | p
				d := float64(cand[ch]) - target[ch]
				err += d * d
			}
			if err < bestErr {
				bestErr = err
				ep[e] = cand
				pb[e] = p
			}
		}
	}
	return ep, pb
}

// assignMode6 picks the nearest of the 16 interpolated colours per pixel.
func assignMode6(px *[BlockPixels][4]float64, ep bc7Endpoints) (idx [BlockPixels]int, total float64) {
	var pal [16][4]float64
	for i, w := range bc7Weights[4] {
		for ch := 0; ch < 4; ch++ {
			pal[i][ch] = float64(bc7Interpolate(ep[0][ch], ep[1][ch], w))
		}
	}
	for i, p := range px {
		best := math.Inf(1)
		for j := range pal {
			err := 0.0
			for ch := 0; ch < 4; ch++ {
				d := p[ch] - pal[j][ch]
				err += d * d
			}
			if err < best {
				best = err
				idx[i] = j
			}
		}
		total += best
	}
	return idx, total
}

// refitSegment solves the least-squares endpoints for fixed indices.
func refitSegment(px *[BlockPixels][4]float64, idx *[BlockPixels]int) (lo, hi [4]float64, ok bool) {
	var aa, ab, bb float64
	var ax, bx [4]float64
	for i, p := range px {
		t := float64(bc7Weights[4][idx[i]]) / 64
		s := 1 - t
		aa += s * s
		ab += s * t
		bb += t * t
		for ch := 0; ch < 4; ch++ {
			ax[ch] += s * p[ch]
			bx[ch] += t * p[ch]
		}
	}
	det := aa*bb - ab*ab
	if math.Abs(det) < 1e-9 {
		return lo, hi, false
	}
	for ch := 0; ch < 4; ch++ {
		lo[ch] = math.Max(0, math.Min(255, (ax[ch]*bb-bx[ch]*ab)/det))
		hi[ch] = math.Max(0, math.Min(255, (bx[ch]*aa-ax[ch]*ab)/det))
	}
	return lo, hi, true
}
