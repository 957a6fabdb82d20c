package vgmfile

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/vgm/command"
	"github.com/wippyai/vgm/errors"
)

// DefaultMaxFileSize bounds the decompressed size of a file read by Load.
const DefaultMaxFileSize = 512 << 20

// Options controls file parsing.
type Options struct {
	// Decode is passed to the command decoder. BaseOffset is set by the parser.
	Decode command.DecodeOptions

	// MaxFileSize rejects larger inputs. 0 means no limit.
	MaxFileSize int64
}

// DefaultOptions returns default parsing configuration.
func DefaultOptions() Options {
	return Options{
		Decode:      command.DefaultDecodeOptions(),
		MaxFileSize: DefaultMaxFileSize,
	}
}

// File is a parsed VGM file.
type File struct {
	Header   Header
	Commands []command.Command // without the end-of-stream marker
	GD3      *GD3              // nil when the file has no tag

	// Extra holds bytes between the end-of-stream marker and the GD3 tag
	// (or the end of file), written back verbatim.
	Extra []byte

	// LoopIndex is the index in Commands where the loop starts, len(Commands)
	// when the loop points at the marker, or -1 when the track does not loop
	// or the loop offset does not land on a command boundary.
	LoopIndex int
}

// New returns an empty file with a fresh header.
func New() *File {
	return &File{Header: NewHeader(), LoopIndex: -1}
}

// Parse parses a complete, uncompressed VGM file.
func Parse(data []byte) (*File, error) {
	return ParseWithOptions(data, DefaultOptions())
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(data []byte, opts Options) (*File, error) {
	if opts.MaxFileSize > 0 && int64(len(data)) > opts.MaxFileSize {
		return nil, errors.Overflow(errors.PhaseLoad, []string{"File"}, len(data),
			strconv.FormatInt(opts.MaxFileSize, 10)+" bytes")
	}

	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	f := &File{Header: h, LoopIndex: -1}

	start := h.DataStart()
	end := h.EOF()
	if h.EOFOffset == 0 || end < start || end > len(data) {
		Logger().Debug("header EOF offset unusable, using data length",
			zap.Int("eof", end), zap.Int("size", len(data)))
		end = len(data)
	}

	streamEnd, err := f.decodeStream(data[start:end], start, opts.Decode)
	if err != nil {
		return nil, fmt.Errorf("command stream: %w", err)
	}

	tail := end
	if gd3 := h.GD3Start(); gd3 != 0 {
		if gd3 < streamEnd || gd3 > end {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Path("Header", "GD3Offset").
				Offset(offGD3).
				Value(h.GD3Offset).
				Detail("GD3 tag at 0x%x outside 0x%x..0x%x", gd3, streamEnd, end).
				Build()
		}
		tag, n, err := ParseGD3(data[gd3:end], gd3)
		if err != nil {
			return nil, err
		}
		f.GD3 = tag
		tail = gd3
		if gd3+n < end {
			Logger().Debug("ignoring bytes after GD3 tag", zap.Int("bytes", end-gd3-n))
		}
	}
	if tail > streamEnd {
		f.Extra = bytes.Clone(data[streamEnd:tail])
	}

	if loop := h.LoopStart(); loop != 0 && f.LoopIndex < 0 {
		Logger().Warn("loop offset does not start a command", zap.Int("offset", loop))
	}
	return f, nil
}

// decodeStream decodes the command stream, recording the loop point, and
// returns the absolute offset just past the end-of-stream marker.
func (f *File) decodeStream(data []byte, base int, opts command.DecodeOptions) (int, error) {
	opts.BaseOffset = base
	loop := f.Header.LoopStart()
	d := command.NewDecoder(bytes.NewReader(data), opts)

	for {
		off := d.Offset()
		if loop != 0 && off == loop {
			f.LoopIndex = len(f.Commands)
		}

		c, err := d.Next()
		if err == io.EOF {
			return 0, errors.Truncated(errors.PhaseDecode, []string{"EndOfSoundData"}, off, io.ErrUnexpectedEOF)
		}
		if err != nil {
			return 0, err
		}
		if _, ok := c.(command.EndOfSoundData); ok {
			return d.Offset(), nil
		}
		if opts.MaxCommands > 0 && len(f.Commands) >= opts.MaxCommands {
			return 0, errors.Overflow(errors.PhaseDecode, []string{"Commands"}, len(f.Commands)+1,
				strconv.Itoa(opts.MaxCommands)+" commands")
		}
		f.Commands = append(f.Commands, c)
	}
}

// Bytes serializes the file. The header's EOF, GD3 and loop offsets are
// recomputed; the loop offset is left as stored when LoopIndex is -1.
func (f *File) Bytes() ([]byte, error) {
	out := f.Header.Bytes()
	start := len(out)

	if f.LoopIndex > len(f.Commands) {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Path("File", "LoopIndex").
			Value(f.LoopIndex).
			Detail("loop index %d past %d commands", f.LoopIndex, len(f.Commands)).
			Build()
	}

	buf := bytes.NewBuffer(out)
	loop := 0
	for i, c := range f.Commands {
		if i == f.LoopIndex {
			loop = buf.Len()
		}
		if err := command.EncodeTo(buf, c); err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
	}
	if f.LoopIndex == len(f.Commands) {
		loop = buf.Len()
	}
	buf.WriteByte(command.OpEndOfSoundData)
	buf.Write(f.Extra)

	gd3 := 0
	if f.GD3 != nil {
		tag, err := f.GD3.Bytes()
		if err != nil {
			return nil, err
		}
		gd3 = buf.Len()
		buf.Write(tag)
	}

	out = buf.Bytes()
	put := func(off int, v uint32) { binary.LittleEndian.PutUint32(out[off:], v) }
	put(offEOF, uint32(len(out)-offEOF))
	if gd3 != 0 {
		put(offGD3, uint32(gd3-offGD3))
	} else {
		put(offGD3, 0)
	}
	if f.LoopIndex >= 0 {
		put(offLoop, uint32(loop-offLoop))
	}

	Logger().Debug("file serialized",
		zap.Int("bytes", len(out)),
		zap.Int("stream", len(out)-start))
	return out, nil
}

// WriteTo writes the serialized file to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	data, err := f.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Validate reports inconsistencies the encoder does not check: data blocks
// whose declared size differs from the payload, and a loop index out of range.
func (f *File) Validate() error {
	var errs []error
	for i, c := range f.Commands {
		db, ok := c.(command.DataBlock)
		if !ok || int64(db.Size) == int64(len(db.Data)) {
			continue
		}
		errs = append(errs, errors.New(errors.PhaseValidate, errors.KindInvalidData).
			Path("Commands", strconv.Itoa(i), "DataBlock", "Size").
			Value(db.Size).
			Detail("declared %d bytes, payload has %d", db.Size, len(db.Data)).
			Build())
	}
	if f.LoopIndex < -1 || f.LoopIndex > len(f.Commands) {
		errs = append(errs, errors.New(errors.PhaseValidate, errors.KindInvalidData).
			Path("File", "LoopIndex").
			Value(f.LoopIndex).
			Detail("loop index out of range").
			Build())
	}
	return stderrors.Join(errs...)
}
