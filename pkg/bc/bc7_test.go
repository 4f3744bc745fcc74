package bc

import (
	"math/rand"
	"testing"
)

func diffRGBA(a, b ARGB) int {
	worst := channelDiff(a, b)
	d := int(a.A()) - int(b.A())
	if d < 0 {
		d = -d
	}
	return max(worst, d)
}

func TestBC7Uniform(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	colours := []ARGB{0, 0xFFFFFFFF, NewARGB(255, 255, 0, 0), NewARGB(128, 1, 2, 3)}
	for i := 0; i < 100; i++ {
		colours = append(colours, ARGB(rng.Uint32()))
	}
	for _, c := range colours {
		blk := EncodeBC7Block(fillBlock(c), Speed)
		if blk[0]&0x3F != 0x20 {
			t.Fatalf("%08x: expected mode 5, got first byte %02x", uint32(c), blk[0])
		}
		var got [BlockPixels]ARGB
		DecodeBC7(&got, blk[:])
		for i := range got {
			if got[i].A() != c.A() {
				t.Fatalf("%08x pixel %d: alpha %d", uint32(c), i, got[i].A())
			}
			if d := channelDiff(got[i], c); d > 1 {
				t.Fatalf("%08x pixel %d: decoded %08x", uint32(c), i, uint32(got[i]))
			}
		}
	}
}

func TestBC7Gradient(t *testing.T) {
	var px [BlockPixels]ARGB
	for i := range px {
		px[i] = NewARGB(uint8(255-i*8), uint8(i*16), uint8(i*8), uint8(255-i*16))
	}
	for _, m := range methods {
		t.Run(m.String(), func(t *testing.T) {
			blk := EncodeBC7Block(&px, m)
			if blk[0]&0x7F != 0x40 {
				t.Fatalf("expected mode 6, got first byte %02x", blk[0])
			}
			var got [BlockPixels]ARGB
			DecodeBC7(&got, blk[:])
			for i := range px {
				if d := diffRGBA(got[i], px[i]); d > 6 {
					t.Errorf("pixel %d: %08x decoded as %08x", i, uint32(px[i]), uint32(got[i]))
				}
			}
		})
	}
}

func TestBC7MethodsImprove(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	blockErr := func(px *[BlockPixels]ARGB, m Method) int {
		blk := EncodeBC7Block(px, m)
		var got [BlockPixels]ARGB
		DecodeBC7(&got, blk[:])
		total := 0
		for i := range px {
			for shift := 0; shift < 32; shift += 8 {
				d := int(uint8(px[i]>>shift)) - int(uint8(got[i]>>shift))
				total += d * d
			}
		}
		return total
	}
	for n := 0; n < 200; n++ {
		px := randomBlock(rng, false)
		speed := blockErr(px, Speed)
		balanced := blockErr(px, Balanced)
		quality := blockErr(px, Quality)
		if balanced > speed || quality > balanced {
			t.Fatalf("block %d: errors speed=%d balanced=%d quality=%d", n, speed, balanced, quality)
		}
	}
}

func TestBC7ReservedMode(t *testing.T) {
	var blk [BC7BlockSize]byte
	for i := 1; i < len(blk); i++ {
		blk[i] = 0xFF
	}
	got := [BlockPixels]ARGB{1, 2, 3}
	DecodeBC7(&got, blk[:])
	for i, c := range got {
		if c != 0 {
			t.Errorf("pixel %d: expected zero, got %08x", i, uint32(c))
		}
	}
}

func TestBC7DecodeMode6(t *testing.T) {
	var w bitWriter
	w.write(7, 1<<6)
	e0 := [4]int{0, 20, 40, 127}   // 7-bit R, G, B, A
	e1 := [4]int{127, 100, 60, 127}
	for ch := 0; ch < 4; ch++ {
		w.write(7, e0[ch])
		w.write(7, e1[ch])
	}
	w.write(1, 0)
	w.write(1, 1)
	w.write(3, 0)
	for i := 1; i < BlockPixels; i++ {
		w.write(4, i)
	}

	var got [BlockPixels]ARGB
	DecodeBC7(&got, w.data[:])

	lo := [4]int{0, 40, 80, 254}
	hi := [4]int{255, 201, 121, 255}
	weights := bc7Weights[4]
	for i := range got {
		want := NewARGB(
			uint8(bc7Interpolate(lo[3], hi[3], weights[i])),
			uint8(bc7Interpolate(lo[0], hi[0], weights[i])),
			uint8(bc7Interpolate(lo[1], hi[1], weights[i])),
			uint8(bc7Interpolate(lo[2], hi[2], weights[i])))
		if got[i] != want {
			t.Errorf("pixel %d: expected %08x, got %08x", i, uint32(want), uint32(got[i]))
		}
	}
}

func TestBC7DecodeRotation(t *testing.T) {
	// mode 5 with rotation 1 swaps red and alpha
	var w bitWriter
	w.write(6, 1<<5)
	w.write(2, 1)
	for ch := 0; ch < 3; ch++ {
		w.write(7, 0x7F)
		w.write(7, 0x7F)
	}
	w.write(8, 0x10)
	w.write(8, 0x10)

	var got [BlockPixels]ARGB
	DecodeBC7(&got, w.data[:])
	want := NewARGB(255, 0x10, 255, 255)
	for i, c := range got {
		if c != want {
			t.Errorf("pixel %d: expected %08x, got %08x", i, uint32(want), uint32(c))
		}
	}
}

func TestBC7Subsets(t *testing.T) {
	for shape := 0; shape < 64; shape++ {
		for _, partitions := range []int{2, 3} {
			for p := 0; p < partitions; p++ {
				anchor := int(bc7AnchorTable[partitions-2][shape]>>(4*uint(p))) & 0xF
				if got := bc7Subset(partitions, shape, anchor); got != p {
					t.Errorf("partitions=%d shape=%d: anchor %d of subset %d lies in subset %d",
						partitions, shape, anchor, p, got)
				}
				if !bc7IsAnchor(partitions, shape, anchor) {
					t.Errorf("partitions=%d shape=%d: pixel %d not reported as anchor", partitions, shape, anchor)
				}
			}
		}
	}
}
