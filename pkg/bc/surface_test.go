package bc

import (
	"errors"
	"testing"
)

func TestSurfaceRoundTrip(t *testing.T) {
	for _, f := range Formats {
		t.Run(f.String(), func(t *testing.T) {
			const width, height = 7, 5
			pb := f.PixelBytes()
			want := func(i int) int {
				if pb == 4 && i%4 == 3 {
					return 0xFF // opaque so BC1 keeps the four-colour mode
				}
				return 0xC0
			}
			src := make([]byte, width*height*pb)
			for i := range src {
				src[i] = byte(want(i))
			}

			enc := make([]byte, f.SurfaceSize(width, height))
			if err := EncodeSurface(f, enc, 0, src, 0, width, height, Balanced); err != nil {
				t.Fatalf("encode: %v", err)
			}
			if len(enc) != 2*2*f.BlockBytes() {
				t.Errorf("expected %d encoded bytes, got %d", 4*f.BlockBytes(), len(enc))
			}

			// a wider destination pitch leaves the padding untouched
			pitch := width*pb + 3
			dst := make([]byte, pitch*height)
			for i := range dst {
				dst[i] = 0x5A
			}
			if err := DecodeSurface(f, dst, pitch, enc, 0, width, height); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for y := 0; y < height; y++ {
				row := dst[y*pitch : (y+1)*pitch]
				for x := 0; x < width*pb; x++ {
					d := int(row[x]) - want(x)
					if d < -24 || d > 24 {
						t.Fatalf("texel byte (%d,%d): expected about %#x, got %#x", x, y, want(x), row[x])
					}
				}
				for x := width * pb; x < pitch; x++ {
					if row[x] != 0x5A {
						t.Fatalf("padding byte (%d,%d) overwritten with %#x", x, y, row[x])
					}
				}
			}
		})
	}
}

func TestSurfaceEdgeBlocksReadZero(t *testing.T) {
	src := []byte{255, 255, 255, 255} // 2x2 R8 image
	enc := make([]byte, BC4.SurfaceSize(2, 2))
	if err := EncodeSurface(BC4, enc, 0, src, 2, 2, 2, Speed); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var block [BlockPixels]uint8
	DecodeBC4(&block, enc)
	for y := 0; y < BlockHeight; y++ {
		for x := 0; x < BlockWidth; x++ {
			want := uint8(0)
			if x < 2 && y < 2 {
				want = 255
			}
			if got := block[y*BlockWidth+x]; got != want {
				t.Errorf("texel (%d,%d): expected %d, got %d", x, y, want, got)
			}
		}
	}
}

func TestSurfaceBlockPlacement(t *testing.T) {
	// 8x4 ARGB image: left block red, right block blue
	const width, height = 8, 4
	src := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := NewARGB(255, 255, 0, 0)
			if x >= 4 {
				c = NewARGB(255, 0, 0, 255)
			}
			o := (y*width + x) * 4
			src[o], src[o+1], src[o+2], src[o+3] = c.B(), c.G(), c.R(), c.A()
		}
	}
	enc := make([]byte, 2*BC1BlockSize+4)
	if err := EncodeSurface(BC1, enc, 2*BC1BlockSize+4, src, 0, width, height, Speed); err != nil {
		t.Fatalf("encode: %v", err)
	}
	left := ReadBC1Block(enc[0:8])
	right := ReadBC1Block(enc[8:16])
	if left.Color0 != 0xF800 || right.Color0 != 0x001F {
		t.Errorf("unexpected blocks %v %v", left, right)
	}
}

func TestSurfaceErrors(t *testing.T) {
	tests := []struct {
		name   string
		f      Format
		dst    int
		src    int
		w, h   int
		pitch  int
		target error
	}{
		{"ZeroWidth", BC1, 8, 64, 0, 4, 0, ErrInvalidDimensions},
		{"NegativeHeight", BC1, 8, 64, 4, -1, 0, ErrInvalidDimensions},
		{"NarrowPitch", BC1, 8, 64, 4, 4, 8, ErrInvalidDimensions},
		{"ShortDst", BC1, 7, 64, 4, 4, 0, ErrShortBuffer},
		{"ShortSrc", BC1, 8, 63, 4, 4, 0, ErrShortBuffer},
		{"UnknownFormat", Unknown, 8, 64, 4, 4, 0, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EncodeSurface(tt.f, make([]byte, tt.dst), 0, make([]byte, tt.src), tt.pitch, tt.w, tt.h, Speed)
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}
