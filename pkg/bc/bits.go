package bc

// bitReader reads LSB-first bit fields from a 128-bit block.
// Reads past the end return zero bits.
type bitReader struct {
	data []byte
	pos  int
}

func (r *bitReader) read(n int) int {
	v := 0
	for i := 0; i < n; i++ {
		if r.pos < len(r.data)*8 {
			bit := int(r.data[r.pos>>3]>>(uint(r.pos)&7)) & 1
			v |= bit << uint(i)
		}
		r.pos++
	}
	return v
}

// bitWriter packs LSB-first bit fields into a 128-bit block.
type bitWriter struct {
	data [16]byte
	pos  int
}

func (w *bitWriter) write(n, v int) {
	for i := 0; i < n; i++ {
		if (v>>uint(i))&1 != 0 {
			w.data[w.pos>>3] |= 1 << (uint(w.pos) & 7)
		}
		w.pos++
	}
}
