/*

ByteCursor: sequential, bounds-checked byte access over an in-memory buffer.

*/

package bitstream

import (
	"fmt"
	"os"
)

// maxBufferSize is the largest file OpenFile loads into memory: 4 GiB.
const maxBufferSize = 1 << 32

// ownership tags how a cursor obtained its buffer, and therefore what Close
// is responsible for.
type ownership int

const (
	// ownBorrowed means the buffer belongs to the caller.
	ownBorrowed ownership = iota
	// ownLoaded means the buffer was loaded from a file and belongs to the
	// cursor.
	ownLoaded
)

// ByteCursor provides sequential, forward-only, bounds-checked access to a
// byte buffer. The position only ever moves forward; there is no seeking and
// no random access.
type ByteCursor struct {
	pos int
	buf []byte
	own ownership
}

// NewCursor returns a cursor over the caller's buffer, positioned at its
// first byte. The buffer is borrowed, not copied; it must not be modified
// while the cursor reads from it.
func NewCursor(data []byte) *ByteCursor {
	return &ByteCursor{buf: data, own: ownBorrowed}
}

// OpenFile loads the whole named file into memory in a single read and
// returns a cursor owning its contents. Files larger than 4 GiB fail with
// ErrInvalidArgs.
func OpenFile(name string) (*ByteCursor, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("bitstream: stat %s: %w", name, err)
	}
	if fi.Size() > maxBufferSize {
		return nil, fmt.Errorf("%w: %s exceeds the 4 GiB buffer limit", ErrInvalidArgs, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("bitstream: read %s: %w", name, err)
	}
	return &ByteCursor{buf: data, own: ownLoaded}, nil
}

// Pos returns the index of the next byte to be read.
func (c *ByteCursor) Pos() int {
	return c.pos
}

// EndPos returns the index of the last valid byte: length-1, not the
// exclusive length. It is -1 for an empty buffer. The end marker being
// inclusive is a convention callers must be aware of.
func (c *ByteCursor) EndPos() int {
	return len(c.buf) - 1
}

// Peek returns the byte at the current position without advancing.
func (c *ByteCursor) Peek() (b byte, err error) {
	if c.pos > c.EndPos() {
		return 0, ErrOutOfBounds
	}
	return c.buf[c.pos], nil
}

// ReadByte returns the byte at the current position and advances past it.
// ReadByte implements io.ByteReader.
func (c *ByteCursor) ReadByte() (b byte, err error) {
	if c.pos > c.EndPos() {
		return 0, ErrOutOfBounds
	}
	b = c.buf[c.pos]
	c.pos++
	return b, nil
}

// Owned reports whether the cursor owns its buffer (it was loaded with
// OpenFile) rather than borrowing it from the caller.
func (c *ByteCursor) Owned() bool {
	return c.own == ownLoaded
}

// Close drops the cursor's buffer. For a cursor owning its buffer this
// releases the loaded contents (the cursor held the only reference); on a
// borrowed buffer it only detaches the cursor, the buffer stays with the
// caller. Reads after Close fail with ErrOutOfBounds.
func (c *ByteCursor) Close() {
	c.buf = nil
}
