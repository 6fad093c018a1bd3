/*

BitWriter: the fixed-width encoding counterpart of BitReader.

*/

package bitstream

import "fmt"

// BitWriter encodes bytes, words, ints and bit groups into an in-memory
// stream, sharing the Config axes of BitReader: anything a writer encodes
// reads back bit-for-bit with a reader using the same configuration. With
// the escape filter enabled, a literal 0xff produced by bit-level writes is
// followed by a stuffed 0x00, matching what the reader strips.
//
// Bytes written with the byte-aligned methods (WriteByte, WriteWord,
// WriteInt) are never stuffed, mirroring the reader's unfiltered
// byte-aligned reads.
type BitWriter struct {
	cfg   Config
	out   []byte
	cache byte  // bits not yet forming a whole byte
	bits  uint8 // number of bits in cache, 0..7
}

// NewWriter returns an empty writer with the given configuration.
func NewWriter(cfg Config) *BitWriter {
	return &BitWriter{cfg: cfg}
}

// emit appends a completed data byte produced by bit-level writes, stuffing
// a zero after a literal 0xff when the escape filter is on.
func (w *BitWriter) emit(b byte) {
	w.out = append(w.out, b)
	if w.cfg.EscapeFilter && b == 0xff {
		w.out = append(w.out, 0x00)
	}
}

// WriteByte aligns to a byte boundary and appends one byte.
// WriteByte implements io.ByteWriter.
func (w *BitWriter) WriteByte(b byte) error {
	w.Align()
	w.out = append(w.out, b)
	return nil
}

// WriteWord aligns to a byte boundary and appends a 16-bit integer in the
// configured byte order.
func (w *BitWriter) WriteWord(v uint16) error {
	w.Align()
	if w.cfg.LittleEndian {
		w.out = append(w.out, byte(v), byte(v>>8))
	} else {
		w.out = append(w.out, byte(v>>8), byte(v))
	}
	return nil
}

// WriteInt aligns to a byte boundary and appends a 32-bit integer in the
// configured byte order.
func (w *BitWriter) WriteInt(v uint32) error {
	w.Align()
	if w.cfg.LittleEndian {
		w.out = append(w.out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	} else {
		w.out = append(w.out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return nil
}

// WriteBit writes a single bit, which must be 0 or 1. The bit lands where a
// matching reader's ReadBit will look for it: filling bytes from the most
// significant bit down, or from the least significant bit up with
// ReverseBits.
func (w *BitWriter) WriteBit(bit byte) error {
	if bit > 1 {
		return fmt.Errorf("%w: bit value %d", ErrInvalidArgs, bit)
	}
	if w.cfg.ReverseBits {
		w.cache |= bit << w.bits
	} else {
		w.cache |= bit << (7 - w.bits)
	}
	w.bits++
	if w.bits == 8 {
		w.emit(w.cache)
		w.cache, w.bits = 0, 0
	}
	return nil
}

// WriteBits writes the n (0..32) lowest bits of v via repeated WriteBit, in
// the order the matching reader's ReadBits reassembles them: most
// significant first, or least significant first with ReverseBits.
func (w *BitWriter) WriteBits(v uint32, n int) error {
	if n < 0 || n > 32 {
		return fmt.Errorf("%w: bit count %d", ErrInvalidArgs, n)
	}
	for i := 0; i < n; i++ {
		var bit byte
		if w.cfg.ReverseBits {
			bit = byte(v >> i & 1)
		} else {
			bit = byte(v >> (n - 1 - i) & 1)
		}
		if err := w.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

// WriteRestartMarker aligns the stream and emits restart marker n (0..7) as
// the bytes 0xff, 0xd0+n. It requires the escape filter, markers have no
// meaning in an unfiltered stream.
func (w *BitWriter) WriteRestartMarker(n int) error {
	if n < 0 || n > 7 {
		return fmt.Errorf("%w: restart marker %d", ErrInvalidArgs, n)
	}
	if !w.cfg.EscapeFilter {
		return fmt.Errorf("%w: restart marker without escape filter", ErrInvalidArgs)
	}
	w.Align()
	w.out = append(w.out, 0xff, byte(0xd0+n))
	return nil
}

// Align pads the pending byte with zero bits up to a byte boundary and
// returns the number of padding bits written. A no-op on an aligned stream.
func (w *BitWriter) Align() (padded int) {
	if w.bits > 0 {
		padded = int(8 - w.bits)
		w.emit(w.cache)
		w.cache, w.bits = 0, 0
	}
	return padded
}

// Bytes returns the encoded stream. Pending bits of an unfinished byte are
// not included until Align is called. The returned slice aliases the
// writer's buffer.
func (w *BitWriter) Bytes() []byte {
	return w.out
}
