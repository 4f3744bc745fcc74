package bc

import "testing"

func TestBuildExpansionTable(t *testing.T) {
	for _, bits := range []int{4, 5, 6, 7, 8} {
		tab := BuildExpansionTable(bits)
		if len(tab) != 1<<bits {
			t.Fatalf("bits=%d: expected %d entries, got %d", bits, 1<<bits, len(tab))
		}
		for v := range tab {
			want := uint8(v<<(8-bits) | v>>(2*bits-8))
			if tab[v] != want {
				t.Errorf("bits=%d v=%d: expected %d, got %d", bits, v, want, tab[v])
			}
		}
		if tab[0] != 0 || tab[len(tab)-1] != 255 {
			t.Errorf("bits=%d: endpoints %d..%d, expected 0..255", bits, tab[0], tab[len(tab)-1])
		}
	}

	if BuildExpansionTable(0) != nil || BuildExpansionTable(9) != nil {
		t.Error("expected nil table for out-of-range widths")
	}
}

func TestOptimalMatchTable(t *testing.T) {
	for _, tc := range []struct {
		name   string
		expand []uint8
		table  *[256][2]uint8
	}{
		{"5bit", expand5, &oMatch5},
		{"6bit", expand6, &oMatch6},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 256; i++ {
				maxe := int(tc.expand[tc.table[i][0]])
				mine := int(tc.expand[tc.table[i][1]])
				got := (2*maxe + mine) / 3
				e := got - i
				if e < 0 {
					e = -e
				}
				if e > 2 {
					t.Errorf("i=%d: pair (%d,%d) reconstructs %d", i, tc.table[i][0], tc.table[i][1], got)
				}
			}
			if tc.table[0] != [2]uint8{0, 0} {
				t.Errorf("expected (0,0) for 0, got %v", tc.table[0])
			}
			top := uint8(len(tc.expand) - 1)
			if tc.table[255] != [2]uint8{top, top} {
				t.Errorf("expected (%d,%d) for 255, got %v", top, top, tc.table[255])
			}
		})
	}
}

func TestMul8Bit(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			want := (a*b*2 + 255) / 510
			if got := mul8Bit(a, b); got != want {
				t.Fatalf("mul8Bit(%d,%d): expected %d, got %d", a, b, want, got)
			}
		}
	}
}

func TestQuantTables(t *testing.T) {
	for i := 0; i < 256; i++ {
		r := int(quantRBTab[i+8])
		if d := r - i; d < -5 || d > 5 {
			t.Errorf("red %d quantises to %d", i, r)
		}
		g := int(quantGTab[i+8])
		if d := g - i; d < -3 || d > 3 {
			t.Errorf("green %d quantises to %d", i, g)
		}
	}
}
