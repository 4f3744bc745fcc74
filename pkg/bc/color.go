package bc

// ARGB is an 8-bit-per-channel pixel packed as A<<24 | R<<16 | G<<8 | B.
// Surface buffers hold it little-endian, so the bytes in memory are B, G, R, A.
type ARGB uint32

// NewARGB packs four channels into an ARGB pixel.
func NewARGB(a, r, g, b uint8) ARGB {
	return ARGB(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c ARGB) A() uint8 { return uint8(c >> 24) }
func (c ARGB) R() uint8 { return uint8(c >> 16) }
func (c ARGB) G() uint8 { return uint8(c >> 8) }
func (c ARGB) B() uint8 { return uint8(c) }

// Channels returns the channels in R, G, B, A order.
func (c ARGB) Channels() (r, g, b, a uint8) {
	return c.R(), c.G(), c.B(), c.A()
}

// RGB565 is a 16-bit colour with 5 bits red, 6 bits green and 5 bits blue.
type RGB565 uint16

// PackRGB565 quantises c by truncation.
func PackRGB565(c ARGB) RGB565 {
	return RGB565(uint16(c.R()>>3)<<11 | uint16(c.G()>>2)<<5 | uint16(c.B()>>3))
}

// packRGB565Round quantises c to the nearest representable colour.
func packRGB565Round(c ARGB) RGB565 {
	r := quantRBTab[int(c.R())+8]
	g := quantGTab[int(c.G())+8]
	b := quantRBTab[int(c.B())+8]
	return RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// ToARGB expands the colour to 8 bits per channel with full alpha.
func (c RGB565) ToARGB() ARGB {
	return NewARGB(0xFF, expand5[c>>11], expand6[(c>>5)&0x3F], expand5[c&0x1F])
}

func (c RGB565) components() (r, g, b int) {
	return int(c >> 11), int((c >> 5) & 0x3F), int(c & 0x1F)
}

func makeRGB565(r, g, b int) RGB565 {
	return RGB565(r<<11 | g<<5 | b)
}

// readARGBBlock reads 16 little-endian ARGB pixels from src.
func readARGBBlock(dst *[BlockPixels]ARGB, src []byte) {
	_ = src[BlockPixels*4-1]
	for i := range dst {
		o := i * 4
		dst[i] = ARGB(uint32(src[o]) | uint32(src[o+1])<<8 | uint32(src[o+2])<<16 | uint32(src[o+3])<<24)
	}
}

func writeARGBBlock(dst []byte, src *[BlockPixels]ARGB) {
	_ = dst[BlockPixels*4-1]
	for i, c := range src {
		o := i * 4
		dst[o] = byte(c)
		dst[o+1] = byte(c >> 8)
		dst[o+2] = byte(c >> 16)
		dst[o+3] = byte(c >> 24)
	}
}
