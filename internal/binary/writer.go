package binary

import (
	"bytes"
	"encoding/binary"
)

// Writer provides fixed-width writing utilities over a bytes.Buffer.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriterTo creates a Writer appending to buf.
func NewWriterTo(buf *bytes.Buffer) *Writer {
	return &Writer{buf: buf}
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU16LE writes a little-endian uint16.
func (w *Writer) WriteU16LE(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteU16BE writes a big-endian uint16.
func (w *Writer) WriteU16BE(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteU24LE writes the low 24 bits of v, little-endian.
func (w *Writer) WriteU24LE(v uint32) {
	w.buf.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
}

// WriteU32LE writes a little-endian uint32 (fixed 4 bytes).
func (w *Writer) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}
