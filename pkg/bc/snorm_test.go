package bc

import (
	"math/rand"
	"testing"
)

func TestSNormMapping(t *testing.T) {
	for s := -127; s <= 127; s++ {
		if got := UnormToSNorm(SNormToUnorm(int8(s))); int(got) != s {
			t.Errorf("%d: round trip gave %d", s, got)
		}
	}
	if SNormToUnorm(-128) != 0 || SNormToUnorm(-127) != 0 {
		t.Error("expected -128 and -127 to map to 0")
	}
	if SNormToUnorm(0) != 128 || SNormToUnorm(127) != 255 {
		t.Errorf("expected 0->128 and 127->255, got %d %d", SNormToUnorm(0), SNormToUnorm(127))
	}
}

func TestBC4SNormPalette(t *testing.T) {
	pal := BC4SNormPalette(127, -127)
	want := [8]int8{127, -127, 91, 54, 18, -18, -54, -91}
	if pal != want {
		t.Errorf("eight-value ramp: expected %v, got %v", want, pal)
	}

	pal = BC4SNormPalette(-128, 100)
	if pal[0] != -127 || pal[6] != -127 || pal[7] != 127 {
		t.Errorf("six-value ramp: unexpected %v", pal)
	}
}

func TestBC4SNormEndpoints(t *testing.T) {
	var src [BlockPixels]uint8
	for i := range src {
		src[i] = uint8(i * 17)
	}
	b := EncodeBC4SNormBlock(&src)
	if int8(b.Alpha0) != 127 || int8(b.Alpha1) != -127 {
		t.Fatalf("expected endpoints 127/-127, got %d/%d", int8(b.Alpha0), int8(b.Alpha1))
	}
	got := DecodeBC4SNormBlock(b)
	if got[0] != 0 || got[15] != 255 {
		t.Errorf("expected extremes to decode exactly, got %d %d", got[0], got[15])
	}
}

func TestBC4SNormRandomError(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for n := 0; n < 300; n++ {
		var src [BlockPixels]uint8
		for i := range src {
			src[i] = uint8(rng.Intn(256))
		}
		b := EncodeBC4SNormBlock(&src)
		got := DecodeBC4SNormBlock(b)
		step := (int(int8(b.Alpha0))-int(int8(b.Alpha1)))*255/254/14 + 2
		for i := range src {
			d := int(got[i]) - int(src[i])
			if d < 0 {
				d = -d
			}
			if d > step+1 {
				t.Fatalf("block %d pixel %d: %d decoded as %d", n, i, src[i], got[i])
			}
		}
	}
}

func TestBC5SNormConstant(t *testing.T) {
	for _, v := range []uint16{0x0000, 0x80FF, 0xFF80, 0xFFFF} {
		var src [BlockPixels]uint16
		for i := range src {
			src[i] = v
		}
		var buf [BC5BlockSize]byte
		EncodeBC5SNorm(buf[:], &src)
		var got [BlockPixels]uint16
		DecodeBC5SNorm(&got, buf[:])
		if got != src {
			t.Errorf("%#04x: expected %v, got %v", v, src, got)
		}
	}
}
