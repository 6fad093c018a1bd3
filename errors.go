/*

Error values reported by the package.

*/

package bitstream

import "errors"

var (
	// ErrOutOfBounds is returned when a cursor read or peek is attempted
	// past the last valid byte of the buffer.
	ErrOutOfBounds = errors.New("bitstream: read past the last valid byte")

	// ErrInvalidRead is returned when a bit read needs a fresh byte and none
	// remain, when an escape sequence is truncated or names an unrecognized
	// marker, and when a decoded bit sequence does not name a symbol.
	ErrInvalidRead = errors.New("bitstream: invalid read")

	// ErrInvalidArgs is returned for malformed construction or call
	// arguments, such as a nil cursor or a codeword length out of range.
	ErrInvalidArgs = errors.New("bitstream: invalid arguments")
)
