/*

BitReader: bit-level reads over a ByteCursor with configurable byte order,
bit order and escape filtering.

*/

package bitstream

import "fmt"

// Config selects the format-variation axes of a BitReader or BitWriter.
// The zero value is valid and selects the defaults: big-endian multi-byte
// integers, no escape filtering, most-significant-bit-first bit order.
// A Config is fixed at construction and never changes afterwards.
type Config struct {
	// LittleEndian selects least-significant-byte-first assembly for
	// ReadWord and ReadInt (and their writer counterparts).
	LittleEndian bool

	// EscapeFilter makes bit-level reads resolve JPEG-style escape
	// sequences: byte stuffing (0xff 0x00) and restart markers
	// (0xff 0xd0..0xd7) become invisible to the caller.
	EscapeFilter bool

	// ReverseBits consumes each byte least significant bit first, and
	// makes ReadBits pack the first bit read into bit 0 of its result.
	ReverseBits bool
}

// BitReader reads bytes, words, ints, single bits and bit groups from a
// ByteCursor. It keeps at most one partially consumed byte of state; any
// byte-aligned read discards the unread bits of that byte first.
//
// A BitReader must be confined to a single goroutine.
type BitReader struct {
	cursor *ByteCursor
	cfg    Config

	cur byte   // byte bits are currently extracted from
	off uint8  // next bit to extract, 0..7; 0 means a fresh byte is needed
	pos uint64 // data bits consumed so far, see BitPosition
}

// NewReader returns a reader over the given cursor. A nil cursor fails with
// ErrInvalidArgs.
func NewReader(cursor *ByteCursor, cfg Config) (*BitReader, error) {
	if cursor == nil {
		return nil, fmt.Errorf("%w: nil cursor", ErrInvalidArgs)
	}
	return &BitReader{cursor: cursor, cfg: cfg}, nil
}

// NewReaderBytes returns a reader over a cursor borrowing the caller's
// buffer.
func NewReaderBytes(data []byte, cfg Config) *BitReader {
	return &BitReader{cursor: NewCursor(data), cfg: cfg}
}

// NewReaderFile returns a reader over a cursor owning the contents of the
// named file.
func NewReaderFile(name string, cfg Config) (*BitReader, error) {
	cursor, err := OpenFile(name)
	if err != nil {
		return nil, err
	}
	return &BitReader{cursor: cursor, cfg: cfg}, nil
}

// HasMoreBits reports whether the cursor has not yet reached its last byte.
func (r *BitReader) HasMoreBits() bool {
	return r.cursor.Pos() != r.cursor.EndPos()
}

// ReadByte realigns to a byte boundary and reads one byte from the cursor.
// ReadByte implements io.ByteReader.
func (r *BitReader) ReadByte() (b byte, err error) {
	r.Align()
	if b, err = r.cursor.ReadByte(); err != nil {
		return 0, err
	}
	r.pos += 8
	return b, nil
}

// ReadWord realigns to a byte boundary and reads a 16-bit integer, assembled
// from two bytes in the configured byte order.
func (r *BitReader) ReadWord() (v uint16, err error) {
	r.Align()
	var b0, b1 byte
	if b0, err = r.cursor.ReadByte(); err != nil {
		return 0, err
	}
	if b1, err = r.cursor.ReadByte(); err != nil {
		return 0, err
	}
	r.pos += 16
	if r.cfg.LittleEndian {
		return uint16(b0) | uint16(b1)<<8, nil
	}
	return uint16(b0)<<8 | uint16(b1), nil
}

// ReadInt realigns to a byte boundary and reads a 32-bit integer, assembled
// from four bytes in the configured byte order.
func (r *BitReader) ReadInt() (v uint32, err error) {
	r.Align()
	var b [4]byte
	for i := range b {
		if b[i], err = r.cursor.ReadByte(); err != nil {
			return 0, err
		}
	}
	r.pos += 32
	if r.cfg.LittleEndian {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// ReadBit reads a single bit and returns it as 0 or 1. When the current byte
// is exhausted a fresh one is pulled from the cursor, resolving escape
// sequences first if the filter is enabled. Running out of bytes fails with
// ErrInvalidRead.
func (r *BitReader) ReadBit() (bit byte, err error) {
	if r.off == 0 {
		if r.cur, err = r.fetchByte(); err != nil {
			return 0, err
		}
	}
	if r.cfg.ReverseBits {
		bit = r.cur >> r.off & 1
	} else {
		bit = r.cur >> (7 - r.off) & 1
	}
	r.off = (r.off + 1) % 8
	r.pos++
	return bit, nil
}

// fetchByte pulls the next data byte from the cursor. With the escape filter
// enabled, a 0xff is never data by itself: the byte after it tells a stuffed
// literal from a restart marker, and anything else is a corrupt stream.
func (r *BitReader) fetchByte() (b byte, err error) {
	if b, err = r.cursor.ReadByte(); err != nil {
		return 0, fmt.Errorf("%w: no bits left", ErrInvalidRead)
	}
	if !r.cfg.EscapeFilter || b != 0xff {
		return b, nil
	}
	// Runs of 0xff are fill bytes, only the byte after the last one matters.
	next := byte(0xff)
	for next == 0xff {
		if next, err = r.cursor.ReadByte(); err != nil {
			return 0, fmt.Errorf("%w: truncated escape sequence", ErrInvalidRead)
		}
	}
	switch {
	case next == 0x00:
		// Stuffed zero: the 0xff itself is the data byte.
		return 0xff, nil
	case next >= 0xd0 && next <= 0xd7:
		// Restart marker: skipped, the byte after it carries the data.
		if b, err = r.cursor.ReadByte(); err != nil {
			return 0, fmt.Errorf("%w: truncated after restart marker", ErrInvalidRead)
		}
		return b, nil
	default:
		return 0, fmt.Errorf("%w: unexpected marker 0xff%02x in bit stream", ErrInvalidRead, next)
	}
}

// ReadBits reads n bits (0..32) via repeated ReadBit. Without ReverseBits
// each new bit is shifted in at the low end of the accumulator, so a stream
// written most significant bit first reads back as the original value. With
// ReverseBits the i-th bit read lands at bit position i of the result.
func (r *BitReader) ReadBits(n int) (v uint32, err error) {
	if n < 0 || n > 32 {
		return 0, fmt.Errorf("%w: bit count %d", ErrInvalidArgs, n)
	}
	var bit byte
	for i := 0; i < n; i++ {
		if bit, err = r.ReadBit(); err != nil {
			return 0, err
		}
		if r.cfg.ReverseBits {
			v |= uint32(bit) << i
		} else {
			v = v<<1 | uint32(bit)
		}
	}
	return v, nil
}

// Align forces the reader to a byte boundary without consuming a byte, so
// the next bit read pulls fresh data from the cursor. It returns the number
// of unread bits skipped in the current byte.
func (r *BitReader) Align() (skipped int) {
	if r.off > 0 {
		skipped = int(8 - r.off)
		r.pos += uint64(skipped)
		r.off = 0
	}
	return skipped
}

// BitPosition returns the number of data bits consumed so far. Bits skipped
// by Align count; bytes removed by the escape filter do not.
func (r *BitReader) BitPosition() uint64 {
	return r.pos
}

// Close releases the underlying cursor.
func (r *BitReader) Close() {
	r.cursor.Close()
}
