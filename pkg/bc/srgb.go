package bc

import "math"

// sRGB formats store endpoints in sRGB and interpolate between them in
// linear light. Encoders pick and refine endpoints on float linear values,
// quantise each endpoint from its sRGB encoding and choose indices by the
// decoded sRGB error. Alpha is always linear.

var srgbToLinearTab = buildSRGBTable()

var (
	// Constant-block pairs for sRGB blocks, matched against the
	// linear-light 2/3 blend the sRGB decoder produces.
	oMatch5SRGB = buildMatchTable(expand5, blendSRGB)
	oMatch6SRGB = buildMatchTable(expand6, blendSRGB)
)

func buildSRGBTable() [256]float32 {
	var t [256]float32
	for i := range t {
		t[i] = SRGBToLinear(float32(i) / 255)
	}
	return t
}

func blendSRGB(maxe, mine int) int {
	return int(unorm8(LinearToSRGB((2*srgbToLinearTab[maxe] + srgbToLinearTab[mine]) / 3)))
}

// SRGBToLinear converts an sRGB-encoded value in [0, 1] to linear light.
func SRGBToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow(float64((v+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear value in [0, 1] to sRGB encoding.
func LinearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*float32(math.Pow(float64(v), 1/2.4)) - 0.055
}

func unorm8(v float32) uint8 {
	return uint8(clamp(int(v*255+0.5), 0, 255))
}

// linearRGB is a colour in linear light.
type linearRGB [3]float32

func toLinearRGB(c ARGB) linearRGB {
	return linearRGB{srgbToLinearTab[c.R()], srgbToLinearTab[c.G()], srgbToLinearTab[c.B()]}
}

func (l linearRGB) toSRGB() ARGB {
	return NewARGB(0xFF, unorm8(LinearToSRGB(l[0])), unorm8(LinearToSRGB(l[1])), unorm8(LinearToSRGB(l[2])))
}

func colourDist(a, b ARGB) int {
	dr := int(a.R()) - int(b.R())
	dg := int(a.G()) - int(b.G())
	db := int(a.B()) - int(b.B())
	return dr*dr + dg*dg + db*db
}

// mixSRGB interpolates two sRGB colours in linear light.
func mixSRGB(a, b ARGB, wa, wb, div int) ARGB {
	ch := func(x, y uint8) uint8 {
		l := (float32(wa)*srgbToLinearTab[x] + float32(wb)*srgbToLinearTab[y]) / float32(div)
		return unorm8(LinearToSRGB(l))
	}
	return NewARGB(0xFF, ch(a.R(), b.R()), ch(a.G(), b.G()), ch(a.B(), b.B()))
}

func bc1PaletteSRGB(b BC1Block, forceOpaque bool) [4]ARGB {
	c0 := b.Color0.ToARGB()
	c1 := b.Color1.ToARGB()
	pal := [4]ARGB{c0, c1}
	if forceOpaque || b.Opaque() {
		pal[2] = mixSRGB(c0, c1, 2, 1, 3)
		pal[3] = mixSRGB(c0, c1, 1, 2, 3)
	} else {
		pal[2] = mixSRGB(c0, c1, 1, 1, 2)
		pal[3] = 0
	}
	return pal
}

// encodeBC1SRGB encodes sRGB pixels. Unless forceOpaque is set, pixels
// with alpha below 0x80 become transparent black in the three-colour mode.
func encodeBC1SRGB(src *[BlockPixels]ARGB, forceOpaque bool, method Method) BC1Block {
	var lin [BlockPixels]linearRGB
	var used uint16
	first := -1
	for i, c := range src {
		if !forceOpaque && c.A() < 0x80 {
			continue
		}
		used |= 1 << uint(i)
		lin[i] = toLinearRGB(c)
		if first < 0 {
			first = i
		}
	}
	if used == 0 {
		return BC1Block{Indices: 0xFFFFFFFF}
	}
	alpha := used != 0xFFFF

	constant := true
	for i, c := range src {
		if used&(1<<uint(i)) != 0 && c&0x00FFFFFF != src[first]&0x00FFFFFF {
			constant = false
			break
		}
	}
	if constant {
		return constantBC1SRGB(src[first], used, alpha)
	}

	hi, lo := srgbExtremes(&lin, used, method)
	best, bestErr := fitBC1SRGB(src, used, packRGB565Round(src[hi]), packRGB565Round(src[lo]), alpha, forceOpaque)
	if method == Speed {
		return best
	}

	passes := 1
	if method == Quality {
		passes = 3
	}
	for ; passes > 0; passes-- {
		c0, c1, ok := refineBC1SRGB(&lin, used, best, forceOpaque)
		if !ok {
			break
		}
		b, err := fitBC1SRGB(src, used, c0, c1, alpha, forceOpaque)
		if err >= bestErr {
			break
		}
		best, bestErr = b, err
	}
	return best
}

func constantBC1SRGB(c ARGB, used uint16, alpha bool) BC1Block {
	if alpha {
		// both endpoints on the nearest colour, index 3 for transparent pixels
		e := packRGB565Round(c)
		var mask uint32
		for i := 0; i < BlockPixels; i++ {
			if used&(1<<uint(i)) == 0 {
				mask |= 3 << (2 * uint(i))
			}
		}
		return BC1Block{Color0: e, Color1: e, Indices: mask}
	}
	r, g, b := c.R(), c.G(), c.B()
	max16 := makeRGB565(int(oMatch5SRGB[r][0]), int(oMatch6SRGB[g][0]), int(oMatch5SRGB[b][0]))
	min16 := makeRGB565(int(oMatch5SRGB[r][1]), int(oMatch6SRGB[g][1]), int(oMatch5SRGB[b][1]))
	return canonicalBC1(max16, min16, 0xAAAAAAAA, false)
}

// srgbExtremes returns the pixels spanning the linear-light colour set:
// luminance extremes, or principal-axis extremes for Quality.
func srgbExtremes(lin *[BlockPixels]linearRGB, used uint16, method Method) (hi, lo int) {
	axis := linearRGB{0.2126, 0.7152, 0.0722}
	if method == Quality {
		if a, ok := principalAxis(lin, used); ok {
			axis = a
		}
	}
	maxD := float32(-math.MaxFloat32)
	minD := float32(math.MaxFloat32)
	for i, l := range lin {
		if used&(1<<uint(i)) == 0 {
			continue
		}
		d := l[0]*axis[0] + l[1]*axis[1] + l[2]*axis[2]
		if d > maxD {
			maxD, hi = d, i
		}
		if d < minD {
			minD, lo = d, i
		}
	}
	return hi, lo
}

func principalAxis(lin *[BlockPixels]linearRGB, used uint16) (linearRGB, bool) {
	var mu, lo, hi linearRGB
	lo = linearRGB{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	n := float32(0)
	for i, l := range lin {
		if used&(1<<uint(i)) == 0 {
			continue
		}
		n++
		for ch, v := range l {
			mu[ch] += v
			lo[ch] = min(lo[ch], v)
			hi[ch] = max(hi[ch], v)
		}
	}
	for ch := range mu {
		mu[ch] /= n
	}

	var cov [6]float32
	for i, l := range lin {
		if used&(1<<uint(i)) == 0 {
			continue
		}
		r, g, b := l[0]-mu[0], l[1]-mu[1], l[2]-mu[2]
		cov[0] += r * r
		cov[1] += r * g
		cov[2] += r * b
		cov[3] += g * g
		cov[4] += g * b
		cov[5] += b * b
	}

	v := linearRGB{hi[0] - lo[0], hi[1] - lo[1], hi[2] - lo[2]}
	for iter := 0; iter < powerIterations; iter++ {
		v = linearRGB{
			v[0]*cov[0] + v[1]*cov[1] + v[2]*cov[2],
			v[0]*cov[1] + v[1]*cov[3] + v[2]*cov[4],
			v[0]*cov[2] + v[1]*cov[4] + v[2]*cov[5],
		}
		magn := max(abs32(v[0]), abs32(v[1]), abs32(v[2]))
		if magn < 1e-12 {
			return v, false
		}
		for ch := range v {
			v[ch] /= magn
		}
	}
	return v, true
}

// fitBC1SRGB orders the endpoints for the block mode and assigns every
// pixel the palette entry closest to it in sRGB. It returns the block and
// its squared error.
func fitBC1SRGB(src *[BlockPixels]ARGB, used uint16, c0, c1 RGB565, alpha, forceOpaque bool) (BC1Block, int) {
	if alpha {
		if c0 > c1 {
			c0, c1 = c1, c0
		}
	} else if c0 < c1 {
		c0, c1 = c1, c0
	}
	b := BC1Block{Color0: c0, Color1: c1}
	pal := bc1PaletteSRGB(b, forceOpaque)
	entries := 4
	if !forceOpaque && !b.Opaque() {
		entries = 3
	}

	total := 0
	for i, c := range src {
		if used&(1<<uint(i)) == 0 {
			b.Indices |= 3 << (2 * uint(i))
			continue
		}
		best, bestD := 0, colourDist(c, pal[0])
		for k := 1; k < entries; k++ {
			if d := colourDist(c, pal[k]); d < bestD {
				best, bestD = k, d
			}
		}
		b.Indices |= uint32(best) << (2 * uint(i))
		total += bestD
	}
	return b, total
}

// refineBC1SRGB solves for the linear-light endpoints that best reproduce
// the pixels under the block's current indices.
func refineBC1SRGB(lin *[BlockPixels]linearRGB, used uint16, b BC1Block, forceOpaque bool) (c0, c1 RGB565, ok bool) {
	weights := [4]float32{1, 0, 2.0 / 3, 1.0 / 3}
	fourColour := forceOpaque || b.Opaque()
	if !fourColour {
		weights[2] = 0.5
	}

	var aa, bb, ab float32
	var ax, bx linearRGB
	for i, l := range lin {
		if used&(1<<uint(i)) == 0 {
			continue
		}
		k := b.Index(i)
		if !fourColour && k == 3 {
			continue
		}
		w := weights[k]
		v := 1 - w
		aa += w * w
		bb += v * v
		ab += w * v
		for ch := range l {
			ax[ch] += w * l[ch]
			bx[ch] += v * l[ch]
		}
	}
	det := aa*bb - ab*ab
	if det < 1e-6 {
		return 0, 0, false
	}

	var e0, e1 linearRGB
	for ch := range e0 {
		e0[ch] = (bb*ax[ch] - ab*bx[ch]) / det
		e1[ch] = (aa*bx[ch] - ab*ax[ch]) / det
	}
	return packRGB565Round(e0.toSRGB()), packRGB565Round(e1.toSRGB()), true
}

// EncodeBC1SRGBBlock compresses sRGB pixels into a BC1 block.
func EncodeBC1SRGBBlock(src *[BlockPixels]ARGB, method Method) BC1Block {
	return encodeBC1SRGB(src, false, method)
}

// DecodeBC1SRGBBlock expands a BC1 block holding sRGB endpoints.
func DecodeBC1SRGBBlock(b BC1Block) [BlockPixels]ARGB {
	return expandBC1(b, bc1PaletteSRGB(b, false))
}

// EncodeBC1SRGB compresses src and writes the 8-byte block to dst.
func EncodeBC1SRGB(dst []byte, src *[BlockPixels]ARGB, method Method) {
	EncodeBC1SRGBBlock(src, method).PutBytes(dst)
}

// DecodeBC1SRGB expands the 8-byte block in src.
func DecodeBC1SRGB(dst *[BlockPixels]ARGB, src []byte) {
	*dst = DecodeBC1SRGBBlock(ReadBC1Block(src))
}

// EncodeBC2SRGBBlock compresses sRGB pixels into a BC2 block.
func EncodeBC2SRGBBlock(src *[BlockPixels]ARGB, method Method) BC2Block {
	return BC2Block{Alpha: explicitAlpha(src), Color: encodeBC1SRGB(src, true, method)}
}

// DecodeBC2SRGBBlock expands a BC2 block holding sRGB endpoints.
func DecodeBC2SRGBBlock(b BC2Block) [BlockPixels]ARGB {
	dst := expandBC1(b.Color, bc1PaletteSRGB(b.Color, true))
	for i := range dst {
		n := uint8(b.Alpha[i/4]>>(4*uint(i%4))) & 0xF
		dst[i] = withAlpha(dst[i], n<<4|n)
	}
	return dst
}

// EncodeBC2SRGB compresses src and writes the 16-byte block to dst.
func EncodeBC2SRGB(dst []byte, src *[BlockPixels]ARGB, method Method) {
	EncodeBC2SRGBBlock(src, method).PutBytes(dst)
}

// DecodeBC2SRGB expands the 16-byte block in src.
func DecodeBC2SRGB(dst *[BlockPixels]ARGB, src []byte) {
	*dst = DecodeBC2SRGBBlock(ReadBC2Block(src))
}

// EncodeBC3SRGBBlock compresses sRGB pixels into a BC3 block.
func EncodeBC3SRGBBlock(src *[BlockPixels]ARGB, method Method) BC3Block {
	alpha := alphaChannel(src)
	return BC3Block{Alpha: EncodeBC4Block(&alpha), Color: encodeBC1SRGB(src, true, method)}
}

// DecodeBC3SRGBBlock expands a BC3 block holding sRGB endpoints.
func DecodeBC3SRGBBlock(b BC3Block) [BlockPixels]ARGB {
	dst := expandBC1(b.Color, bc1PaletteSRGB(b.Color, true))
	alpha := DecodeBC4Block(b.Alpha)
	for i := range dst {
		dst[i] = withAlpha(dst[i], alpha[i])
	}
	return dst
}

// EncodeBC3SRGB compresses src and writes the 16-byte block to dst.
func EncodeBC3SRGB(dst []byte, src *[BlockPixels]ARGB, method Method) {
	EncodeBC3SRGBBlock(src, method).PutBytes(dst)
}

// DecodeBC3SRGB expands the 16-byte block in src.
func DecodeBC3SRGB(dst *[BlockPixels]ARGB, src []byte) {
	*dst = DecodeBC3SRGBBlock(ReadBC3Block(src))
}

// BC4PaletteSRGB is BC4Palette with interpolation in linear light.
func BC4PaletteSRGB(a0, a1 uint8) [8]uint8 {
	pal := [8]uint8{a0, a1}
	lerp := func(wa, wb, div int) uint8 {
		l := (float32(wa)*srgbToLinearTab[a0] + float32(wb)*srgbToLinearTab[a1]) / float32(div)
		return unorm8(LinearToSRGB(l))
	}
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			pal[i+1] = lerp(7-i, i, 7)
		}
		return pal
	}
	for i := 1; i < 5; i++ {
		pal[i+1] = lerp(5-i, i, 5)
	}
	pal[6] = 0
	pal[7] = 255
	return pal
}

// EncodeBC4SRGBBlock compresses one sRGB-encoded channel. The endpoints are
// the exact channel extremes; indices pick the linear-light ramp entry
// closest to each pixel.
func EncodeBC4SRGBBlock(src *[BlockPixels]uint8) BC4Block {
	lo, hi := src[0], src[0]
	for _, v := range src[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	b := BC4Block{Alpha0: hi, Alpha1: lo}
	if lo == hi {
		return b
	}

	pal := BC4PaletteSRGB(hi, lo)
	for i, v := range src {
		best, bestD := 0, 256
		for k, p := range pal {
			d := int(p) - int(v)
			if d < 0 {
				d = -d
			}
			if d < bestD {
				best, bestD = k, d
			}
		}
		b.Indices |= uint64(best) << (3 * uint(i))
	}
	return b
}

// DecodeBC4SRGBBlock expands a BC4 block holding sRGB endpoints.
func DecodeBC4SRGBBlock(b BC4Block) [BlockPixels]uint8 {
	pal := BC4PaletteSRGB(b.Alpha0, b.Alpha1)
	var dst [BlockPixels]uint8
	for i := range dst {
		dst[i] = pal[b.Index(i)]
	}
	return dst
}

// EncodeBC4SRGB compresses src and writes the 8-byte block to dst.
func EncodeBC4SRGB(dst []byte, src *[BlockPixels]uint8) {
	EncodeBC4SRGBBlock(src).PutBytes(dst)
}

// DecodeBC4SRGB expands the 8-byte block in src.
func DecodeBC4SRGB(dst *[BlockPixels]uint8, src []byte) {
	*dst = DecodeBC4SRGBBlock(ReadBC4Block(src))
}

// EncodeBC5SRGBBlock compresses two sRGB-encoded channels.
func EncodeBC5SRGBBlock(src *[BlockPixels]uint16) BC5Block {
	var r, g [BlockPixels]uint8
	splitGR(src, &r, &g)
	return BC5Block{Red: EncodeBC4SRGBBlock(&r), Green: EncodeBC4SRGBBlock(&g)}
}

// DecodeBC5SRGBBlock expands a BC5 block holding sRGB endpoints.
func DecodeBC5SRGBBlock(b BC5Block) [BlockPixels]uint16 {
	r := DecodeBC4SRGBBlock(b.Red)
	g := DecodeBC4SRGBBlock(b.Green)
	return joinGR(&r, &g)
}

// EncodeBC5SRGB compresses src and writes the 16-byte block to dst.
func EncodeBC5SRGB(dst []byte, src *[BlockPixels]uint16) {
	EncodeBC5SRGBBlock(src).PutBytes(dst)
}

// DecodeBC5SRGB expands the 16-byte block in src.
func DecodeBC5SRGB(dst *[BlockPixels]uint16, src []byte) {
	*dst = DecodeBC5SRGBBlock(ReadBC5Block(src))
}
