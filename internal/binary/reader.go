package binary

import (
	"encoding/binary"
	"errors"
	"io"
)

// chunkSize bounds a single allocation when the remaining length is unknown.
const chunkSize = 64 << 10

// Reader wraps an io.ByteReader with position tracking and fixed-width read methods.
// Multi-byte reads that run out of input part-way return io.ErrUnexpectedEOF;
// io.EOF is only returned when no byte of the value was available.
type Reader struct {
	r   io.ByteReader
	pos int
}

// NewReader creates a new Reader wrapping the given io.ByteReader.
func NewReader(r io.ByteReader) *Reader {
	return &Reader{r: r, pos: 0}
}

// Position returns the number of bytes consumed so far.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining reports how many bytes are left when the underlying reader knows it.
func (r *Reader) Remaining() (int, bool) {
	if l, ok := r.r.(interface{ Len() int }); ok {
		return l.Len(), true
	}
	return 0, false
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. When the underlying reader reports its
// length, a short input fails before anything is allocated or consumed.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.New("binary: negative length")
	}
	if n == 0 {
		return []byte{}, nil
	}
	if left, ok := r.Remaining(); ok {
		if left < n {
			return nil, io.ErrUnexpectedEOF
		}
		buf := make([]byte, n)
		if rr, ok := r.r.(io.Reader); ok {
			got, err := io.ReadFull(rr, buf)
			r.pos += got
			if err != nil {
				return nil, err
			}
			return buf, nil
		}
		return r.readInto(buf)
	}

	buf := make([]byte, 0, min(n, chunkSize))
	for len(buf) < n {
		b, err := r.ReadByte()
		if err != nil {
			return nil, unexpected(err, len(buf))
		}
		buf = append(buf, b)
	}
	return buf, nil
}

func (r *Reader) readInto(buf []byte) ([]byte, error) {
	for i := range buf {
		b, err := r.ReadByte()
		if err != nil {
			return nil, unexpected(err, i)
		}
		buf[i] = b
	}
	return buf, nil
}

// ReadU16LE reads a little-endian uint16.
func (r *Reader) ReadU16LE() (uint16, error) {
	var buf [2]byte
	if _, err := r.readInto(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadU16BE reads a big-endian uint16.
func (r *Reader) ReadU16BE() (uint16, error) {
	var buf [2]byte
	if _, err := r.readInto(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU24LE reads a little-endian 24-bit value.
func (r *Reader) ReadU24LE() (uint32, error) {
	var buf [3]byte
	if _, err := r.readInto(buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16, nil
}

// ReadU32LE reads a little-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32LE() (uint32, error) {
	var buf [4]byte
	if _, err := r.readInto(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func unexpected(err error, got int) error {
	if got > 0 && errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
