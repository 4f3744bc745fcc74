package bc

// Quantisation tables shared by every encoder and decoder in this package.
// They are filled by package variable initialisers and never written again,
// so concurrent readers need no synchronisation.
var (
	expand5 = BuildExpansionTable(5)
	expand6 = BuildExpansionTable(6)
	expand7 = BuildExpansionTable(7)

	oMatch5 = BuildOptimalMatchTable(expand5)
	oMatch6 = BuildOptimalMatchTable(expand6)

	// oMatch7 pairs 7-bit endpoints for the BC7 uniform block, whose
	// two-bit index 1 carries weight 21/64.
	oMatch7 = buildMatchTable(expand7, func(maxe, mine int) int {
		return (maxe*(64-21) + mine*21 + 32) >> 6
	})

	quantRBTab = buildQuantTable(expand5, 31)
	quantGTab  = buildQuantTable(expand6, 63)
)

// BuildExpansionTable returns the table that widens a bits-wide channel
// value to 8 bits by replicating its high bits into the low ones.
func BuildExpansionTable(bits int) []uint8 {
	if bits <= 0 || bits > 8 {
		return nil
	}
	size := 1 << bits
	t := make([]uint8, size)
	for v := 0; v < size; v++ {
		x := v << (8 - bits)
		x |= x >> bits
		if bits < 4 {
			// fewer than four bits need more than one replication step
			for s := 2 * bits; s < 8; s += bits {
				x |= x >> s
			}
		}
		t[v] = uint8(x)
	}
	return t
}

// BuildOptimalMatchTable returns, for every 8-bit value i, the pair of
// quantised endpoints whose palette index 2 reproduces i most closely.
// Entry [i][0] is the max endpoint, [i][1] the min endpoint.
func BuildOptimalMatchTable(expand []uint8) [256][2]uint8 {
	return buildMatchTable(expand, func(maxe, mine int) int {
		return (2*maxe + mine) / 3
	})
}

func buildMatchTable(expand []uint8, blend func(maxe, mine int) int) [256][2]uint8 {
	size := len(expand)
	blends := make([]int, size*size)
	for mn := 0; mn < size; mn++ {
		for mx := 0; mx < size; mx++ {
			blends[mn*size+mx] = blend(int(expand[mx]), int(expand[mn]))
		}
	}

	var t [256][2]uint8
	for i := 0; i < 256; i++ {
		bestErr := 256
		for mn := 0; mn < size; mn++ {
			for mx := 0; mx < size; mx++ {
				e := blends[mn*size+mx] - i
				if e < 0 {
					e = -e
				}
				if e < bestErr {
					t[i][0] = uint8(mx)
					t[i][1] = uint8(mn)
					bestErr = e
				}
			}
		}
	}
	return t
}

func buildQuantTable(expand []uint8, levels int) [256 + 16]uint8 {
	var t [256 + 16]uint8
	for i := range t {
		v := clamp(i-8, 0, 255)
		t[i] = expand[mul8Bit(v, levels)]
	}
	return t
}

// mul8Bit computes a*b/255 rounded to nearest.
func mul8Bit(a, b int) int {
	t := a*b + 128
	return (t + (t >> 8)) >> 8
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
