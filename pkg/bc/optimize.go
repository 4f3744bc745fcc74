package bc

import "math"

const powerIterations = 4

// optimizeColorsBlock picks the two block colours that span the pixel set.
// Non-quality methods take the darkest and brightest pixel; Quality projects
// every pixel onto the principal axis of the colour covariance.
func optimizeColorsBlock(src *[BlockPixels]ARGB, method Method) (maxClr, minClr ARGB) {
	if method != Quality {
		return luminanceExtremes(src)
	}
	return principalAxisExtremes(src)
}

func luminanceExtremes(src *[BlockPixels]ARGB) (maxClr, minClr ARGB) {
	maxLum := float32(-1)
	minLum := float32(math.MaxFloat32)
	for _, c := range src {
		lum := 0.2126*float32(c.R()) + 0.7152*float32(c.G()) + 0.0722*float32(c.B())
		if lum > maxLum {
			maxLum = lum
			maxClr = c
		}
		if lum < minLum {
			minLum = lum
			minClr = c
		}
	}
	return maxClr, minClr
}

func principalAxisExtremes(src *[BlockPixels]ARGB) (maxClr, minClr ARGB) {
	var mu, lo, hi [3]int
	for ch := 0; ch < 3; ch++ {
		v := channel(src[0], ch)
		sum, mn, mx := v, v, v
		for i := 1; i < BlockPixels; i++ {
			v = channel(src[i], ch)
			sum += v
			mn = min(mn, v)
			mx = max(mx, v)
		}
		mu[ch] = (sum + 8) >> 4
		lo[ch] = mn
		hi[ch] = mx
	}

	var cov [6]int
	for _, c := range src {
		r := int(c.R()) - mu[0]
		g := int(c.G()) - mu[1]
		b := int(c.B()) - mu[2]
		cov[0] += r * r
		cov[1] += r * g
		cov[2] += r * b
		cov[3] += g * g
		cov[4] += g * b
		cov[5] += b * b
	}

	var covf [6]float32
	for i, v := range cov {
		covf[i] = float32(v) / 255
	}

	vfr := float32(hi[0] - lo[0])
	vfg := float32(hi[1] - lo[1])
	vfb := float32(hi[2] - lo[2])
	for iter := 0; iter < powerIterations; iter++ {
		r := vfr*covf[0] + vfg*covf[1] + vfb*covf[2]
		g := vfr*covf[1] + vfg*covf[3] + vfb*covf[4]
		b := vfr*covf[2] + vfg*covf[4] + vfb*covf[5]
		vfr, vfg, vfb = r, g, b
	}

	magn := max(abs32(vfr), abs32(vfg), abs32(vfb))
	var vr, vg, vb int
	if magn < 4 {
		// degenerate axis, fall back to luma weights
		vr, vg, vb = 148, 300, 58
	} else {
		scale := 512 / magn
		vr = int(vfr * scale)
		vg = int(vfg * scale)
		vb = int(vfb * scale)
	}

	minD, maxD := math.MaxInt32, -math.MaxInt32
	for _, c := range src {
		dot := int(c.R())*vr + int(c.G())*vg + int(c.B())*vb
		if dot < minD {
			minD = dot
			minClr = c
		}
		if dot > maxD {
			maxD = dot
			maxClr = c
		}
	}
	return maxClr, minClr
}

func channel(c ARGB, ch int) int {
	return int(c>>(16-8*uint(ch))) & 0xFF
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
