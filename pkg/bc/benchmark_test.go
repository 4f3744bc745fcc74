package bc

import (
	"math/rand"
	"testing"
)

// BenchmarkEncodeBlock benchmarks single-block encoding per format and method.
func BenchmarkEncodeBlock(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	px := randomBlock(rng, true)
	var r8 [BlockPixels]uint8
	for i := range r8 {
		r8[i] = uint8(rng.Intn(256))
	}
	var dst [16]byte

	for _, m := range methods {
		b.Run("BC1_"+m.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				EncodeBC1(dst[:], px, m)
			}
		})
		b.Run("BC3_"+m.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				EncodeBC3(dst[:], px, m)
			}
		})
		b.Run("BC7_"+m.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				EncodeBC7(dst[:], px, m)
			}
		})
	}

	b.Run("BC4", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			EncodeBC4(dst[:], &r8)
		}
	})

	b.Run("BC1_SRGB", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			EncodeBC1SRGB(dst[:], px, Balanced)
		}
	})
}

// BenchmarkDecodeBlock benchmarks single-block decoding.
func BenchmarkDecodeBlock(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	px := randomBlock(rng, false)
	var bc1, bc3, bc7 [16]byte
	EncodeBC1(bc1[:], px, Balanced)
	EncodeBC3(bc3[:], px, Balanced)
	EncodeBC7(bc7[:], px, Balanced)
	var out [BlockPixels]ARGB

	b.Run("BC1", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			DecodeBC1(&out, bc1[:])
		}
	})
	b.Run("BC3", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			DecodeBC3(&out, bc3[:])
		}
	})
	b.Run("BC7", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			DecodeBC7(&out, bc7[:])
		}
	})
}

// BenchmarkSurface benchmarks a 256x256 surface round trip.
func BenchmarkSurface(b *testing.B) {
	const size = 256
	src := make([]byte, size*size*4)
	for i := range src {
		src[i] = byte(i * 7)
	}
	enc := make([]byte, BC3.SurfaceSize(size, size))
	dec := make([]byte, len(src))

	b.Run("Encode", func(b *testing.B) {
		b.SetBytes(int64(len(src)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := EncodeSurface(BC3, enc, 0, src, 0, size, size, Balanced); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Decode", func(b *testing.B) {
		b.SetBytes(int64(len(src)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := DecodeSurface(BC3, dec, 0, enc, 0, size, size); err != nil {
				b.Fatal(err)
			}
		}
	})
}
