/*

Package bitstream provides the low-level binary and bit-level access layer
that image-format decoders are built on.

It is organized as three layers. A ByteCursor gives sequential, forward-only,
bounds-checked access to an in-memory buffer, which is either borrowed from
the caller or loaded from a file and owned by the cursor. A BitReader wraps a
ByteCursor and exposes byte-, word-, int- and bit-level reads whose semantics
are selected once, at construction, by a Config: byte order of multi-byte
integers, bit order within a byte, and an optional escape filter for
entropy-coded streams. A PrefixCodeTree maps prefix-free codewords to symbols
and is walked one BitReader bit at a time to decode them.

Bit order

By default the most significant bit of each byte is consumed first. For the
input bytes 0x8f and 0x55:

	HEXA    8    f     5    5
	BINARY  1000 1111  0101 0101
	        aaaa bbbc  ccdd dddd

ReadBits returns the following values:

	r := bitstream.NewReaderBytes([]byte{0x8f, 0x55}, bitstream.Config{})
	a, err := r.ReadBits(4) //   1000 = 0x08
	b, err := r.ReadBits(3) //    111 = 0x07
	c, err := r.ReadBits(3) //    101 = 0x05
	d, err := r.ReadBits(6) // 010101 = 0x15

With Config.ReverseBits each byte is consumed least significant bit first
instead, and ReadBits packs the first bit read into bit 0 of the result. The
two packings mirror the two ways codewords are laid out in real bitstreams;
a PrefixCodeTree decodes correctly as long as reader and code table agree.

Escape filter

Entropy-coded segments of JPEG-style streams embed escape sequences: a
literal 0xff data byte is followed by a stuffed 0x00, and restart markers
0xff 0xd0..0xd7 may appear between coded units. With Config.EscapeFilter the
bit-level reads resolve both transparently:

	r := bitstream.NewReaderBytes([]byte{0xff, 0x00, 0xab}, bitstream.Config{EscapeFilter: true})
	v, err := r.ReadBits(16) // 0xffab, the stuffing byte is invisible

Any other byte following 0xff in a filtered stream is a protocol error and
fails the read. Byte-aligned reads (ReadByte, ReadWord, ReadInt) are never
filtered; they are meant for headers outside entropy-coded segments.

The package is a library boundary only: it never logs, never retries, and
reports every failure to the caller as an error wrapping one of the exported
sentinel values.

*/
package bitstream
