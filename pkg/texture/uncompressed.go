package texture

import (
	"fmt"
	"image"
	"math"
)

// rawFormat describes an uncompressed pixel format that can be read and
// decoded but not produced by Encode.
type rawFormat struct {
	bytes int
	// toNRGBA converts one packed pixel to R, G, B, A.
	toNRGBA func(dst, src []byte)
}

var rawFormats = map[uint32]rawFormat{
	DXGI_FORMAT_R8_UNORM:            {1, greyPixel},
	DXGI_FORMAT_R8G8B8A8_UNORM:      {4, rgbaPixel},
	DXGI_FORMAT_R8G8B8A8_UNORM_SRGB: {4, rgbaPixel},
	DXGI_FORMAT_B8G8R8A8_UNORM:      {4, bgraPixel},
	DXGI_FORMAT_B8G8R8A8_TYPELESS:   {4, bgraPixel},
	DXGI_FORMAT_B8G8R8A8_UNORM_SRGB: {4, bgraPixel},
	DXGI_FORMAT_R11G11B10_FLOAT:     {4, r11g11b10Pixel},
}

// IsUncompressed reports whether dxgi is an uncompressed format that
// ReadDDS and WrapRaw accept.
func IsUncompressed(dxgi uint32) bool {
	_, ok := rawFormats[dxgi]
	return ok
}

func greyPixel(dst, src []byte) {
	dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 255
}

func rgbaPixel(dst, src []byte) {
	copy(dst[:4], src[:4])
}

func bgraPixel(dst, src []byte) {
	dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], src[3]
}

func r11g11b10Pixel(dst, src []byte) {
	packed := uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
	dst[0] = clampUnit(smallFloat(packed&0x7FF, 6))
	dst[1] = clampUnit(smallFloat((packed>>11)&0x7FF, 6))
	dst[2] = clampUnit(smallFloat((packed>>22)&0x3FF, 5))
	dst[3] = 255
}

// smallFloat expands an unsigned float with a 5-bit exponent and the given
// mantissa width. Infinity and NaN saturate.
func smallFloat(u uint32, mantissaBits uint) float32 {
	exp := int(u >> mantissaBits)
	m := float32(u&(1<<mantissaBits-1)) / float32(uint32(1)<<mantissaBits)
	switch exp {
	case 0:
		return m / 16384
	case 31:
		return 65504
	}
	return float32(math.Ldexp(float64(1+m), exp-15))
}

func clampUnit(v float32) uint8 {
	return uint8(math.Round(float64(min(1, max(0, v)) * 255)))
}

// newTexture returns a texture with no levels for the given DXGI format.
func newTexture(dxgi uint32, width, height int) (*Texture, error) {
	if IsUncompressed(dxgi) {
		return &Texture{Raw: dxgi, Width: width, Height: height}, nil
	}
	f, err := FormatFromDXGI(dxgi)
	if err != nil {
		return nil, err
	}
	return &Texture{Format: f, Width: width, Height: height}, nil
}

// surfaceSize returns the payload size of one width x height level.
func (t *Texture) surfaceSize(width, height int) int {
	if t.Raw != 0 {
		return width * height * rawFormats[t.Raw].bytes
	}
	return t.Format.SurfaceSize(width, height)
}

func (t *Texture) payloadSize(mips int) int {
	if t.Raw == 0 {
		return DataSize(t.Format, t.Width, t.Height, mips)
	}
	total := 0
	for i := 0; i < mips; i++ {
		total += t.surfaceSize(t.LevelSize(i))
	}
	return total
}

// split slices concatenated level data into mips levels.
func (t *Texture) split(data []byte, mips int) error {
	if mips <= 0 {
		mips = 1
	}
	if need := t.payloadSize(mips); len(data) < need {
		return fmt.Errorf("%w: need %d bytes for %d levels, got %d", ErrTruncated, need, mips, len(data))
	}
	t.Levels = make([][]byte, mips)
	off := 0
	for i := range t.Levels {
		n := t.surfaceSize(t.LevelSize(i))
		t.Levels[i] = data[off : off+n : off+n]
		off += n
	}
	return nil
}

// PayloadSize returns the size of mips levels of a width x height texture
// stored as dxgi, compressed or not.
func PayloadSize(dxgi uint32, width, height, mips int) (int, error) {
	if err := ValidateGeometry(width, height, mips); err != nil {
		return 0, err
	}
	t, err := newTexture(dxgi, width, height)
	if err != nil {
		return 0, err
	}
	return t.payloadSize(mips), nil
}

// decodeRaw expands an uncompressed level.
func (t *Texture) decodeRaw(level int) *image.NRGBA {
	rf := rawFormats[t.Raw]
	w, h := t.LevelSize(level)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	src := t.Levels[level]
	for i := 0; i < w*h; i++ {
		rf.toNRGBA(img.Pix[i*4:], src[i*rf.bytes:])
	}
	return img
}

// legacyRawFormat maps a FourCC-less DDS pixel format to a DXGI value.
func legacyRawFormat(pf PixelFormat) (uint32, bool) {
	switch {
	case pf.Flags&DDPFRGB != 0 && pf.RGBBitCount == 32 && pf.RBitMask == 0x00FF0000:
		return DXGI_FORMAT_B8G8R8A8_UNORM, true
	case pf.Flags&DDPFRGB != 0 && pf.RGBBitCount == 32 && pf.RBitMask == 0x000000FF:
		return DXGI_FORMAT_R8G8B8A8_UNORM, true
	case pf.Flags&DDPFLuminance != 0 && pf.RGBBitCount == 8:
		return DXGI_FORMAT_R8_UNORM, true
	}
	return 0, false
}

// FormatString names the stored format of t.
func (t *Texture) FormatString() string {
	if t.Raw != 0 {
		return FormatName(t.Raw)
	}
	return t.Format.String()
}

// DXGIFormat returns the DXGI_FORMAT value t is stored as.
func (t *Texture) DXGIFormat() (uint32, error) {
	if t.Raw != 0 {
		return t.Raw, nil
	}
	return DXGIFormat(t.Format)
}
