package bitstream

import (
	"errors"
	"testing"
)

func TestTreeDecode(t *testing.T) {
	tree := NewPrefixCodeTree()
	for _, c := range []struct {
		code   uint32
		length int
		sym    uint16
	}{
		{0b1, 1, 'B'},
		{0b10, 2, 'A'},
		{0b000, 3, 'C'},
	} {
		if err := tree.Insert(c.code, c.length, c.sym); err != nil {
			t.Fatal(err)
		}
	}

	// Bit stream 1,0 0,0,0 — padded with zeros to a byte.
	r := NewReaderBytes([]byte{0b10000000}, Config{})

	if sym, err := tree.Decode(r); sym != 'A' || err != nil {
		t.Errorf("Got %c, want A, error: %v", sym, err)
	}
	if sym, err := tree.Decode(r); sym != 'C' || err != nil {
		t.Errorf("Got %c, want C, error: %v", sym, err)
	}
}

func TestTreeLastInsertWins(t *testing.T) {
	// A codeword extending a previously inserted one orphans the shorter
	// symbol; the longer path decodes.
	tree := NewPrefixCodeTree()
	if err := tree.Insert(0b0, 1, 'X'); err != nil {
		t.Fatal(err)
	}
	if err := tree.Insert(0b01, 2, 'Y'); err != nil {
		t.Fatal(err)
	}

	r := NewReaderBytes([]byte{0b01000000}, Config{})
	if sym, err := tree.Decode(r); sym != 'Y' || err != nil {
		t.Errorf("Got %c, want Y, error: %v", sym, err)
	}
}

func TestTreeDecodeCorrupt(t *testing.T) {
	// A bit sequence leading off the tree.
	tree := NewPrefixCodeTree()
	if err := tree.Insert(0b11, 2, 'Z'); err != nil {
		t.Fatal(err)
	}
	r := NewReaderBytes([]byte{0b10000000}, Config{})
	if _, err := tree.Decode(r); !errors.Is(err, ErrInvalidRead) {
		t.Errorf("Got %v, want ErrInvalidRead", err)
	}

	// An internal position never assigned a symbol: an empty tree's root.
	empty := NewPrefixCodeTree()
	r = NewReaderBytes([]byte{0xff}, Config{})
	if _, err := empty.Decode(r); !errors.Is(err, ErrInvalidRead) {
		t.Errorf("Got %v, want ErrInvalidRead", err)
	}
	if r.BitPosition() != 0 {
		t.Errorf("empty tree consumed %d bits", r.BitPosition())
	}

	// A truncated stream mid-codeword.
	r = NewReaderBytes(nil, Config{})
	if _, err := tree.Decode(r); !errors.Is(err, ErrInvalidRead) {
		t.Errorf("Got %v, want ErrInvalidRead", err)
	}
}

func TestTreeInsertInvalidArgs(t *testing.T) {
	tree := NewPrefixCodeTree()
	if err := tree.Insert(0, 0, 'A'); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("Got %v, want ErrInvalidArgs", err)
	}
	if err := tree.Insert(0, 33, 'A'); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("Got %v, want ErrInvalidArgs", err)
	}
	if tree.Len() != 0 {
		t.Errorf("rejected inserts created %d nodes", tree.Len())
	}
}

func TestTreeDestroy(t *testing.T) {
	tests := []struct {
		name    string
		symbols int
	}{
		{"empty", 0},
		{"single", 1},
		{"fifty", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewPrefixCodeTree()
			for i := 0; i < tt.symbols; i++ {
				// Equal-length codewords are prefix-free by construction.
				if err := tree.Insert(uint32(i), 6, uint16(i)); err != nil {
					t.Fatal(err)
				}
			}

			allocated := tree.Len()
			if tt.symbols > 0 && allocated < tt.symbols {
				t.Fatalf("Got %d nodes for %d symbols", allocated, tt.symbols)
			}

			if released := tree.Destroy(); released != allocated {
				t.Errorf("Got %d released, want %d", released, allocated)
			}
			if tree.Len() != 0 {
				t.Errorf("Got %d live nodes after destroy", tree.Len())
			}

			// A second teardown finds nothing left to release.
			if released := tree.Destroy(); released != 0 {
				t.Errorf("Got %d released on second destroy, want 0", released)
			}
		})
	}
}

func TestTreeReuseAfterDestroy(t *testing.T) {
	tree := NewPrefixCodeTree()
	if err := tree.Insert(0b1, 1, 'Q'); err != nil {
		t.Fatal(err)
	}
	tree.Destroy()

	if err := tree.Insert(0b0, 1, 'R'); err != nil {
		t.Fatal(err)
	}
	r := NewReaderBytes([]byte{0x00}, Config{})
	if sym, err := tree.Decode(r); sym != 'R' || err != nil {
		t.Errorf("Got %c, want R, error: %v", sym, err)
	}
}

func TestTreeDecodeJPEGStyleTable(t *testing.T) {
	// Canonical code assignment from a JPEG-style length table (Annex K
	// DC luminance): counts[i] codes of length i+1, values in order.
	counts := [16]int{0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0}
	values := []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	tree := NewPrefixCodeTree()
	code := uint32(0)
	vi := 0
	for i, cnt := range counts {
		for j := 0; j < cnt; j++ {
			if err := tree.Insert(code, i+1, values[vi]); err != nil {
				t.Fatal(err)
			}
			code++
			vi++
		}
		code <<= 1
	}

	// Encode a symbol run through the same canonical assignment and decode
	// it back: category 0 is 00, category 3 is 100, category 11 is
	// 111111110.
	w := NewWriter(Config{})
	for _, c := range []struct {
		code   uint32
		length int
	}{
		{0b00, 2}, {0b100, 3}, {0b111111110, 9},
	} {
		if err := w.WriteBits(c.code, c.length); err != nil {
			t.Fatal(err)
		}
	}
	w.Align()

	r := NewReaderBytes(w.Bytes(), Config{})
	for _, want := range []uint16{0, 3, 11} {
		if sym, err := tree.Decode(r); sym != want || err != nil {
			t.Errorf("Got %d, want %d, error: %v", sym, want, err)
		}
	}
}
