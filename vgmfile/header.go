package vgmfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/vgm/errors"
)

// Ident is the magic at the start of every VGM file.
const Ident = "Vgm "

// SampleRate is the fixed rate all VGM wait counts refer to.
const SampleRate = 44100

// Header field offsets. Relative offsets are stored relative to their own field.
const (
	offEOF          = 0x04
	offVersion      = 0x08
	offSN76489Clock = 0x0C
	offYM2413Clock  = 0x10
	offGD3          = 0x14
	offTotalSamples = 0x18
	offLoop         = 0x1C
	offLoopSamples  = 0x20
	offRate         = 0x24
	offDataOffset   = 0x34

	// MinHeaderSize is the header size of files before version 1.50, and the
	// smallest header this package accepts.
	MinHeaderSize = 0x40

	dataOffsetVersion = 0x150
	rateVersion       = 0x101
)

// Header is a VGM file header. Raw holds every header byte up to the start of
// the command stream, so fields this package does not model survive a
// round trip. The named fields shadow their positions in Raw and take
// precedence when the header is written back.
type Header struct {
	Raw []byte

	EOFOffset    uint32 // relative to 0x04
	Version      uint32 // BCD, 0x171 is 1.71
	SN76489Clock uint32
	YM2413Clock  uint32
	GD3Offset    uint32 // relative to 0x14, 0 when absent
	TotalSamples uint32
	LoopOffset   uint32 // relative to 0x1C, 0 when the track does not loop
	LoopSamples  uint32
	Rate         uint32 // 1.01+
	DataOffset   uint32 // relative to 0x34, 1.50+
}

// NewHeader returns a minimal version 1.50 header with the command stream
// starting right after it.
func NewHeader() Header {
	raw := make([]byte, MinHeaderSize)
	copy(raw, Ident)
	return Header{
		Raw:        raw,
		Version:    dataOffsetVersion,
		DataOffset: MinHeaderSize - offDataOffset,
	}
}

// ParseHeader reads the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < MinHeaderSize {
		return Header{}, errors.New(errors.PhaseParse, errors.KindTruncated).
			Path("Header").
			Offset(len(data)).
			Detail("file is %d bytes, header needs %d", len(data), MinHeaderSize).
			Build()
	}
	if !bytes.Equal(data[:4], []byte(Ident)) {
		return Header{}, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Path("Header", "Ident").
			Offset(0).
			Value(string(data[:4])).
			Detail("bad identifier %q", data[:4]).
			Build()
	}

	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(data[off:]) }
	h := Header{
		EOFOffset:    u32(offEOF),
		Version:      u32(offVersion),
		SN76489Clock: u32(offSN76489Clock),
		YM2413Clock:  u32(offYM2413Clock),
		GD3Offset:    u32(offGD3),
		TotalSamples: u32(offTotalSamples),
		LoopOffset:   u32(offLoop),
		LoopSamples:  u32(offLoopSamples),
		Rate:         u32(offRate),
		DataOffset:   u32(offDataOffset),
	}

	start := h.DataStart()
	if start < MinHeaderSize || start > len(data) {
		return Header{}, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Path("Header", "DataOffset").
			Offset(offDataOffset).
			Value(h.DataOffset).
			Detail("command stream start 0x%x outside file of %d bytes", start, len(data)).
			Build()
	}
	h.Raw = bytes.Clone(data[:start])

	Logger().Debug("header parsed",
		zap.String("version", h.VersionString()),
		zap.Int("data_start", start),
		zap.Uint32("total_samples", h.TotalSamples))
	return h, nil
}

// DataStart returns the absolute offset of the command stream.
func (h *Header) DataStart() int {
	if h.Version >= dataOffsetVersion && h.DataOffset != 0 {
		return offDataOffset + int(h.DataOffset)
	}
	return MinHeaderSize
}

// EOF returns the absolute end-of-file offset recorded in the header.
func (h *Header) EOF() int {
	return offEOF + int(h.EOFOffset)
}

// GD3Start returns the absolute offset of the GD3 tag, or 0 when there is none.
func (h *Header) GD3Start() int {
	if h.GD3Offset == 0 {
		return 0
	}
	return offGD3 + int(h.GD3Offset)
}

// LoopStart returns the absolute offset of the loop point, or 0 when the
// track does not loop.
func (h *Header) LoopStart() int {
	if h.LoopOffset == 0 {
		return 0
	}
	return offLoop + int(h.LoopOffset)
}

// VersionString formats the BCD version, e.g. "1.71".
func (h *Header) VersionString() string {
	return fmt.Sprintf("%x.%02x", h.Version>>8, h.Version&0xFF)
}

// Duration returns the playback length of one pass through the track.
func (h *Header) Duration() time.Duration {
	return samplesToDuration(h.TotalSamples)
}

// LoopDuration returns the length of the looped section.
func (h *Header) LoopDuration() time.Duration {
	return samplesToDuration(h.LoopSamples)
}

func samplesToDuration(n uint32) time.Duration {
	return time.Duration(n) * time.Second / SampleRate
}

// Bytes returns Raw with the named fields written into it.
func (h *Header) Bytes() []byte {
	size := max(len(h.Raw), MinHeaderSize)
	out := make([]byte, size)
	copy(out, h.Raw)
	copy(out, Ident)

	put := func(off int, v uint32) { binary.LittleEndian.PutUint32(out[off:], v) }
	put(offEOF, h.EOFOffset)
	put(offVersion, h.Version)
	put(offSN76489Clock, h.SN76489Clock)
	put(offYM2413Clock, h.YM2413Clock)
	put(offGD3, h.GD3Offset)
	put(offTotalSamples, h.TotalSamples)
	put(offLoop, h.LoopOffset)
	put(offLoopSamples, h.LoopSamples)
	if h.Version >= rateVersion {
		put(offRate, h.Rate)
	}
	if h.Version >= dataOffsetVersion {
		put(offDataOffset, h.DataOffset)
	}
	return out
}

// ChipClock is a non-zero chip clock found in the header.
type ChipClock struct {
	Chip  string
	Clock uint32 // Hz, flag bits removed
	Dual  bool   // two chips of this type
}

const (
	clockDualFlag = 1 << 31
	clockMask     = 0x3FFFFFFF
)

// clockFields lists header clock fields with chip names matching command.Chip.
var clockFields = []struct {
	chip string
	off  int
}{
	{"SN76489", 0x0C}, {"YM2413", 0x10}, {"YM2612", 0x2C}, {"YM2151", 0x30},
	{"SegaPCM", 0x38}, {"RF5C68", 0x40}, {"YM2203", 0x44}, {"YM2608", 0x48},
	{"YM2610", 0x4C}, {"YM3812", 0x50}, {"YM3526", 0x54}, {"Y8950", 0x58},
	{"YMF262", 0x5C}, {"YMF278B", 0x60}, {"YMF271", 0x64}, {"YMZ280B", 0x68},
	{"RF5C164", 0x6C}, {"PWM", 0x70}, {"AY8910", 0x74}, {"GameBoyDMG", 0x80},
	{"NESAPU", 0x84}, {"MultiPCM", 0x88}, {"uPD7759", 0x8C}, {"OKIM6258", 0x90},
	{"OKIM6295", 0x98}, {"SCC1", 0x9C}, {"K054539", 0xA0}, {"HuC6280", 0xA4},
	{"C140", 0xA8}, {"K053260", 0xAC}, {"Pokey", 0xB0}, {"QSound", 0xB4},
	{"SCSP", 0xB8}, {"WonderSwan", 0xC0}, {"VSU", 0xC4}, {"SAA1099", 0xC8},
	{"ES5503", 0xCC}, {"ES5506", 0xD0}, {"X1-010", 0xD8}, {"C352", 0xDC},
	{"GA20", 0xE0},
}

// Clocks returns the chips the header declares, in header order. Fields past
// the end of the header read as absent.
func (h *Header) Clocks() []ChipClock {
	raw := h.Bytes()
	var clocks []ChipClock
	for _, f := range clockFields {
		if f.off+4 > len(raw) || f.off+4 > h.DataStart() {
			break
		}
		v := binary.LittleEndian.Uint32(raw[f.off:])
		if v&clockMask == 0 {
			continue
		}
		clocks = append(clocks, ChipClock{Chip: f.chip, Clock: v & clockMask, Dual: v&clockDualFlag != 0})
	}
	return clocks
}
