package bc

import (
	"bytes"
	"math/rand"
	"testing"
)

var methods = []Method{Speed, Balanced, Quality}

func fillBlock(c ARGB) *[BlockPixels]ARGB {
	var px [BlockPixels]ARGB
	for i := range px {
		px[i] = c
	}
	return &px
}

func randomBlock(rng *rand.Rand, opaque bool) *[BlockPixels]ARGB {
	var px [BlockPixels]ARGB
	for i := range px {
		px[i] = ARGB(rng.Uint32())
		if opaque {
			px[i] |= 0xFF000000
		}
	}
	return &px
}

func channelDiff(a, b ARGB) int {
	worst := 0
	for ch := 0; ch < 3; ch++ {
		d := channel(a, ch) - channel(b, ch)
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}

func TestBC1ConstantBlock(t *testing.T) {
	red := NewARGB(255, 255, 0, 0)
	for _, m := range methods {
		t.Run(m.String(), func(t *testing.T) {
			b := EncodeBC1Block(fillBlock(red), m)
			if b.Color0 != 0xF800 || b.Color1 != 0xF800 {
				t.Errorf("expected endpoints f800/f800, got %04x/%04x", b.Color0, b.Color1)
			}
			if b.Indices != 0xAAAAAAAA {
				t.Errorf("expected mask aaaaaaaa, got %08x", b.Indices)
			}

			var buf [BC1BlockSize]byte
			b.PutBytes(buf[:])
			want := []byte{0x00, 0xF8, 0x00, 0xF8, 0xAA, 0xAA, 0xAA, 0xAA}
			if !bytes.Equal(buf[:], want) {
				t.Errorf("expected bytes %x, got %x", want, buf)
			}

			for i, c := range DecodeBC1Block(b) {
				if c != red {
					t.Errorf("pixel %d: expected %08x, got %08x", i, uint32(red), uint32(c))
				}
			}
		})
	}
}

func TestBC1ConstantBlockAccuracy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		c := ARGB(rng.Uint32()) | 0xFF000000
		got := DecodeBC1Block(EncodeBC1Block(fillBlock(c), Speed))
		for i := range got {
			if d := channelDiff(got[i], c); d > 3 {
				t.Fatalf("colour %08x pixel %d decoded %08x (error %d)", uint32(c), i, uint32(got[i]), d)
			}
		}
	}
}

func TestBC1FullyTransparent(t *testing.T) {
	b := EncodeBC1Block(fillBlock(NewARGB(0x10, 200, 100, 50)), Quality)
	if b.Color0 != 0 || b.Color1 != 0 || b.Indices != 0xFFFFFFFF {
		t.Errorf("expected {0 0 ffffffff}, got %v", b)
	}
	for i, c := range DecodeBC1Block(b) {
		if c != 0 {
			t.Errorf("pixel %d: expected transparent black, got %08x", i, uint32(c))
		}
	}
}

func TestBC1AlphaThreshold(t *testing.T) {
	var px [BlockPixels]ARGB
	for i := range px {
		a := uint8(0x7F)
		if i%2 == 0 {
			a = 0x80
		}
		px[i] = NewARGB(a, 255, 0, 0)
	}
	for _, m := range methods {
		t.Run(m.String(), func(t *testing.T) {
			b := EncodeBC1Block(&px, m)
			if b.Opaque() {
				t.Fatalf("expected three-colour block, got %v", b)
			}
			got := DecodeBC1Block(b)
			for i, c := range got {
				if px[i].A() < 0x80 {
					if c.A() != 0 {
						t.Errorf("pixel %d: expected alpha 0, got %d", i, c.A())
					}
					continue
				}
				if c.A() != 255 {
					t.Errorf("pixel %d: expected alpha 255, got %d", i, c.A())
				}
				if d := channelDiff(c, px[i]); d > 8 {
					t.Errorf("pixel %d: colour error %d", i, d)
				}
			}
		})
	}
}

func TestBC1OpaqueEndpointOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, m := range methods {
		for n := 0; n < 500; n++ {
			b := EncodeBC1Block(randomBlock(rng, true), m)
			if b.Color0 < b.Color1 {
				t.Fatalf("%v: opaque block stored Color0 %04x < Color1 %04x", m, b.Color0, b.Color1)
			}
			if b.Color0 == b.Color1 {
				for i := 0; i < BlockPixels; i++ {
					if b.Index(i) == 3 {
						t.Fatalf("%v: equal endpoints with transparent index at pixel %d", m, i)
					}
				}
			}
		}
	}
}

func TestBC1TwoColourRoundTrip(t *testing.T) {
	pairs := [][2]ARGB{
		{NewARGB(255, 200, 40, 90), NewARGB(255, 20, 180, 250)},
		{NewARGB(255, 0, 0, 0), NewARGB(255, 255, 255, 255)},
		{NewARGB(255, 128, 128, 128), NewARGB(255, 130, 126, 131)},
		{NewARGB(255, 7, 250, 3), NewARGB(255, 250, 3, 7)},
	}
	for _, m := range methods {
		t.Run(m.String(), func(t *testing.T) {
			for _, p := range pairs {
				var px [BlockPixels]ARGB
				for i := range px {
					px[i] = p[(i+i/4)%2]
				}
				got := DecodeBC1Block(EncodeBC1Block(&px, m))
				for i := range px {
					// one quantisation step of a 5-bit channel
					if d := channelDiff(got[i], px[i]); d > 8 {
						t.Errorf("pair %08x/%08x pixel %d: error %d", uint32(p[0]), uint32(p[1]), i, d)
					}
				}
			}
		})
	}
}

func TestBC1RandomError(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	total := map[Method]int{}
	for n := 0; n < 300; n++ {
		px := randomBlock(rng, true)
		for _, m := range methods {
			got := DecodeBC1Block(EncodeBC1Block(px, m))
			for i := range px {
				for ch := 0; ch < 3; ch++ {
					d := channel(got[i], ch) - channel(px[i], ch)
					total[m] += d * d
				}
			}
		}
	}
	if total[Balanced] > total[Speed] {
		t.Errorf("Balanced error %d exceeds Speed error %d", total[Balanced], total[Speed])
	}
}

func TestBC1DecodeModes(t *testing.T) {
	t.Run("FourColour", func(t *testing.T) {
		b := BC1Block{Color0: 0xFFFF, Color1: 0x0000, Indices: 0xE4} // indices 0,1,2,3
		got := DecodeBC1Block(b)
		want := []ARGB{
			NewARGB(255, 255, 255, 255),
			NewARGB(255, 0, 0, 0),
			NewARGB(255, 170, 170, 170),
			NewARGB(255, 85, 85, 85),
		}
		for i, w := range want {
			if got[i] != w {
				t.Errorf("index %d: expected %08x, got %08x", i, uint32(w), uint32(got[i]))
			}
		}
	})

	t.Run("ThreeColour", func(t *testing.T) {
		b := BC1Block{Color0: 0x0000, Color1: 0xFFFF, Indices: 0xE4}
		got := DecodeBC1Block(b)
		want := []ARGB{
			NewARGB(255, 0, 0, 0),
			NewARGB(255, 255, 255, 255),
			NewARGB(255, 127, 127, 127),
			0,
		}
		for i, w := range want {
			if got[i] != w {
				t.Errorf("index %d: expected %08x, got %08x", i, uint32(w), uint32(got[i]))
			}
		}
	})
}

func TestSwapLowIndices(t *testing.T) {
	// pixel indices 0,1,2,3 become 1,0,2,3; the zero indices above flip to 1
	if got := swapLowIndices(0xE4); got != 0x555555E1 {
		t.Errorf("expected 555555e1, got %x", got)
	}
	if got := swapLowIndices(0xFFFFFFFF); got != 0xFFFFFFFF {
		t.Errorf("expected ffffffff, got %x", got)
	}
}

func TestBC1BlockBytes(t *testing.T) {
	b := BC1Block{Color0: 0x1234, Color1: 0xABCD, Indices: 0x01020304}
	var buf [BC1BlockSize]byte
	b.PutBytes(buf[:])
	want := []byte{0x34, 0x12, 0xCD, 0xAB, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("expected %x, got %x", want, buf)
	}
	if got := ReadBC1Block(buf[:]); got != b {
		t.Errorf("expected %v, got %v", b, got)
	}
}
