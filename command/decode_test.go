package command_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/vgm/command"
	vgmerrors "github.com/wippyai/vgm/errors"
)

// sample builds a syntactically valid record for a fixed-length opcode.
func sample(t *testing.T, op byte) []byte {
	t.Helper()
	info, ok := command.Lookup(op)
	if !ok {
		t.Fatalf("opcode 0x%02x is not known", op)
	}
	if info.Length == command.Variable {
		return []byte{op, command.CompatByte, 0x01, 0x03, 0x00, 0x00, 0x00, 0xAA, 0xBB, 0xCC}
	}
	rec := []byte{op}
	for i := 0; i < info.Length; i++ {
		rec = append(rec, byte(0x11*(i+1)))
	}
	if op == command.OpPCMRAMWrite {
		rec[1] = command.CompatByte
	}
	return rec
}

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		name string
		want command.Command
		data []byte
	}{
		{"AY8910 stereo mask", command.AY8910StereoMask{Value: 0x3F}, []byte{0x31, 0x3F}},
		{"Game Gear stereo", command.GameGearPSGStereo{Value: 0xFF}, []byte{0x4F, 0xFF}},
		{"PSG", command.PSGWrite{Value: 0x9F}, []byte{0x50, 0x9F}},
		{"YM2413", command.YM2413Write{Register: 0x10, Value: 0x20}, []byte{0x51, 0x10, 0x20}},
		{"YM2612 port 0", command.YM2612Port0Write{Register: 0x28, Value: 0xF0}, []byte{0x52, 0x28, 0xF0}},
		{"YM2612 port 1", command.YM2612Port1Write{Register: 0xB4, Value: 0xC0}, []byte{0x53, 0xB4, 0xC0}},
		{"YMF262 port 1", command.YMF262Port1Write{Register: 0x05, Value: 0x01}, []byte{0x5F, 0x05, 0x01}},
		{"wait n", command.WaitNSamples{N: 0x1234}, []byte{0x61, 0x34, 0x12}},
		{"wait 735", command.Wait735Samples{}, []byte{0x62}},
		{"wait 882", command.Wait882Samples{}, []byte{0x63}},
		{"end", command.EndOfSoundData{}, []byte{0x66}},
		{
			"PCM RAM write",
			command.PCMRAMWrite{ChipType: 0x01, ReadOffset: 0x030201, WriteOffset: 0x060504, Size: 0x090807},
			[]byte{0x68, 0x66, 0x01, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09},
		},
		{"DAC setup", command.DACStreamSetup{StreamID: 0, ChipType: 0x02, Port: 0x00, Command: 0x2A}, []byte{0x90, 0x00, 0x02, 0x00, 0x2A}},
		{"DAC set data", command.DACStreamSetData{StreamID: 0, DataBankID: 0, StepSize: 1, StepBase: 0}, []byte{0x91, 0x00, 0x00, 0x01, 0x00}},
		{"DAC frequency", command.DACStreamSetFrequency{StreamID: 1, Frequency: 22050}, []byte{0x92, 0x01, 0x22, 0x56, 0x00, 0x00}},
		{
			"DAC start",
			command.DACStreamStart{StreamID: 1, DataStart: 0x100, LengthMode: 0x01, DataLength: 0x200},
			[]byte{0x93, 0x01, 0x00, 0x01, 0x00, 0x00, 0x01, 0x00, 0x02, 0x00, 0x00},
		},
		{"DAC stop", command.DACStreamStop{StreamID: 0xFF}, []byte{0x94, 0xFF}},
		{"DAC start fast", command.DACStreamStartFast{StreamID: 2, BlockID: 0x0102, Flags: 0x10}, []byte{0x95, 0x02, 0x02, 0x01, 0x10}},
		{"AY8910", command.AY8910Write{Register: 0x07, Value: 0x38}, []byte{0xA0, 0x07, 0x38}},
		{"PWM", command.PWMWrite{Register: 0x01, Value: 0x0FFF}, []byte{0xB2, 0x01, 0xFF, 0x0F}},
		{"OKIM6258", command.OKIM6258Write{Register: 1, Value: 2}, []byte{0xB7, 0x01, 0x02}},
		{"OKIM6295", command.OKIM6295Write{Register: 1, Value: 2}, []byte{0xB8, 0x01, 0x02}},
		{"HuC6280", command.HuC6280Write{Register: 1, Value: 2}, []byte{0xB9, 0x01, 0x02}},
		{"K053260", command.K053260Write{Register: 1, Value: 2}, []byte{0xBA, 0x01, 0x02}},
		{"Pokey", command.PokeyWrite{Register: 1, Value: 2}, []byte{0xBB, 0x01, 0x02}},
		{"WonderSwan", command.WonderSwanWrite{Register: 1, Value: 2}, []byte{0xBC, 0x01, 0x02}},
		{"SAA1099", command.SAA1099Write{Register: 1, Value: 2}, []byte{0xBD, 0x01, 0x02}},
		{"ES5506", command.ES5506Write{Register: 1, Value: 2}, []byte{0xBE, 0x01, 0x02}},
		{"GA20", command.GA20Write{Register: 1, Value: 2}, []byte{0xBF, 0x01, 0x02}},
		{"SegaPCM", command.SegaPCMWrite{Offset: 0x1234, Value: 0x56}, []byte{0xC0, 0x34, 0x12, 0x56}},
		{"RF5C68 offset", command.RF5C68WriteOffset{Offset: 0x1234, Value: 0x56}, []byte{0xC1, 0x34, 0x12, 0x56}},
		{"MultiPCM bank", command.MultiPCMSetBank{Channel: 0x07, Offset: 0x1234}, []byte{0xC3, 0x07, 0x34, 0x12}},
		{"QSound", command.QSoundWrite{Value: 0x1234, Register: 0x05}, []byte{0xC4, 0x12, 0x34, 0x05}},
		{"SCSP", command.SCSPWrite{Offset: 0x1234, Value: 0x56}, []byte{0xC5, 0x12, 0x34, 0x56}},
		{"WonderSwan16", command.WonderSwanWrite16{Offset: 0x1234, Value: 0x56}, []byte{0xC6, 0x12, 0x34, 0x56}},
		{"VSU", command.VSUWrite{Offset: 0x1234, Value: 0x56}, []byte{0xC7, 0x12, 0x34, 0x56}},
		{"X1-010", command.X1010Write{Offset: 0x1234, Value: 0x56}, []byte{0xC8, 0x12, 0x34, 0x56}},
		{"YMF278B", command.YMF278BWrite{Port: 1, Register: 2, Value: 3}, []byte{0xD0, 0x01, 0x02, 0x03}},
		{"YMF271", command.YMF271Write{Port: 1, Register: 2, Value: 3}, []byte{0xD1, 0x01, 0x02, 0x03}},
		{"SCC1", command.SCC1Write{Port: 1, Register: 2, Value: 3}, []byte{0xD2, 0x01, 0x02, 0x03}},
		{"K054539", command.K054539Write{Register: 0x0201, Value: 3}, []byte{0xD3, 0x01, 0x02, 0x03}},
		{"C140", command.C140Write{Register: 0x0201, Value: 3}, []byte{0xD4, 0x01, 0x02, 0x03}},
		{"ES5503", command.ES5503Write{Register: 0x0201, Value: 3}, []byte{0xD5, 0x01, 0x02, 0x03}},
		{"ES5506 16-bit", command.ES5506Write16{Register: 1, Value: 0x0302}, []byte{0xD6, 0x01, 0x02, 0x03}},
		{"seek PCM", command.SeekPCM{Offset: 0x12345678}, []byte{0xE0, 0x78, 0x56, 0x34, 0x12}},
		{"C352", command.C352Write{Register: 0x0201, Value: 0x0403}, []byte{0xE1, 0x01, 0x02, 0x03, 0x04}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := command.DecodeCommand(tt.data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if n != len(tt.data) {
				t.Errorf("consumed %d bytes, want %d", n, len(tt.data))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decoded command mismatch (-want +got):\n%s", diff)
			}

			encoded, err := command.Encode([]command.Command{got})
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !bytes.Equal(encoded, tt.data) {
				t.Errorf("re-encoded % x, want % x", encoded, tt.data)
			}
		})
	}
}

func TestRoundTripEveryOpcode(t *testing.T) {
	recognised := 0
	for i := 0; i < 256; i++ {
		op := byte(i)
		if !command.Known(op) {
			continue
		}
		recognised++
		rec := sample(t, op)

		c, n, err := command.DecodeCommand(rec)
		if err != nil {
			t.Errorf("opcode 0x%02x: decode error: %v", op, err)
			continue
		}
		if n != len(rec) {
			t.Errorf("opcode 0x%02x: consumed %d, want %d", op, n, len(rec))
		}
		if c.Opcode() != op {
			t.Errorf("opcode 0x%02x: decoded command reports opcode 0x%02x", op, c.Opcode())
		}
		if command.Size(c) != len(rec) {
			t.Errorf("opcode 0x%02x: Size = %d, want %d", op, command.Size(c), len(rec))
		}

		encoded, err := command.Encode([]command.Command{c})
		if err != nil {
			t.Errorf("opcode 0x%02x: encode error: %v", op, err)
			continue
		}
		if !bytes.Equal(encoded, rec) {
			t.Errorf("opcode 0x%02x: round trip % x, want % x", op, encoded, rec)
		}
	}

	// 64 exact opcodes plus two 16-entry nibble ranges.
	if recognised != 64+32 {
		t.Errorf("recognised %d opcodes, want %d", recognised, 64+32)
	}
}

func TestUnknownOpcodes(t *testing.T) {
	for i := 0; i < 256; i++ {
		op := byte(i)
		if command.Known(op) {
			continue
		}
		data := []byte{op, 0x01, 0x02, 0x03}
		c, n, err := command.DecodeCommand(data)
		if c != nil {
			t.Errorf("opcode 0x%02x: got command %v", op, c)
		}
		if !errors.Is(err, command.ErrUnknownOpcode) {
			t.Fatalf("opcode 0x%02x: expected unknown opcode error, got %v", op, err)
		}
		if n != 1 {
			t.Errorf("opcode 0x%02x: consumed %d bytes, want 1", op, n)
		}
	}
}

func TestUnknownOpcodeFF(t *testing.T) {
	d := command.NewDecoder(bytes.NewReader([]byte{0xFF, 0x50, 0x01, 0x66}), command.DefaultDecodeOptions())
	cmds, err := d.DecodeAll()
	if cmds != nil {
		t.Errorf("expected no commands, got %v", cmds)
	}

	var verr *vgmerrors.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	if verr.Kind != vgmerrors.KindUnknownOpcode {
		t.Errorf("Kind = %v, want unknown_opcode", verr.Kind)
	}
	if verr.Value != byte(0xFF) {
		t.Errorf("Value = %v, want 0xFF", verr.Value)
	}
	if verr.Offset != 0 {
		t.Errorf("Offset = %d, want 0", verr.Offset)
	}
	if d.Consumed() != 1 {
		t.Errorf("consumed %d bytes, want 1", d.Consumed())
	}
}

func TestSharedOpcodeC2NotRecognised(t *testing.T) {
	if command.Known(0xC2) {
		t.Fatal("0xC2 must not be recognised")
	}
	_, _, err := command.DecodeCommand([]byte{0xC2, 0x34, 0x12, 0x56})
	if !errors.Is(err, command.ErrUnknownOpcode) {
		t.Errorf("expected unknown opcode, got %v", err)
	}
}

func TestNibbleBoundaries(t *testing.T) {
	tests := []struct {
		want    command.Command
		samples uint32
		op      byte
	}{
		{command.WaitNSamplesPlus1{N: 0}, 1, 0x70},
		{command.WaitNSamplesPlus1{N: 15}, 16, 0x7F},
		{command.YM2612Port0Address2AWriteWait{N: 0}, 0, 0x80},
		{command.YM2612Port0Address2AWriteWait{N: 15}, 15, 0x8F},
	}

	for _, tt := range tests {
		got, n, err := command.DecodeCommand([]byte{tt.op, 0xEE})
		if err != nil {
			t.Fatalf("0x%02x: %v", tt.op, err)
		}
		if n != 1 {
			t.Errorf("0x%02x: consumed %d, want 1", tt.op, n)
		}
		if got != tt.want {
			t.Errorf("0x%02x: got %#v, want %#v", tt.op, got, tt.want)
		}
		if s := command.WaitSamples(got); s != tt.samples {
			t.Errorf("0x%02x: waits %d samples, want %d", tt.op, s, tt.samples)
		}
	}
}

func TestDataBlockExact(t *testing.T) {
	data := []byte{0x67, 0x66, 0x00, 0x04, 0x00, 0x00, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0x50}
	r := bytes.NewReader(data)
	d := command.NewDecoder(r, command.DefaultDecodeOptions())
	c, err := d.Next()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := command.DataBlock{Type: 0x00, Size: 4, Data: []byte{0xAA, 0xBB, 0xCC, 0xDD}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("data block mismatch (-want +got):\n%s", diff)
	}
	// opcode plus ten bytes: compat byte, type, size, payload
	if d.Consumed() != 11 {
		t.Errorf("consumed %d bytes, want 11", d.Consumed())
	}
	if r.Len() != 1 {
		t.Errorf("%d bytes left in cursor, want 1", r.Len())
	}
}

func TestDataBlockEmptyAndCompatByte(t *testing.T) {
	// A compat byte other than 0x66 is skipped without complaint.
	c, n, err := command.DecodeCommand([]byte{0x67, 0x00, 0x82, 0x00, 0x00, 0x00, 0x00})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != 7 {
		t.Errorf("consumed %d, want 7", n)
	}
	db := c.(command.DataBlock)
	if db.Type != 0x82 || db.Size != 0 || len(db.Data) != 0 {
		t.Errorf("got %#v", db)
	}
}

func TestTerminatorExcluded(t *testing.T) {
	cmds, n, err := command.ParseCommands([]byte{0x50, 0x01, 0x66, 0x47, 0x64, 0x33})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []command.Command{command.PSGWrite{Value: 0x01}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if n != 3 {
		t.Errorf("consumed %d, want 3", n)
	}
}

func TestNextReturnsTerminator(t *testing.T) {
	d := command.NewDecoder(bytes.NewReader([]byte{0x66}), command.DefaultDecodeOptions())
	c, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, ok := c.(command.EndOfSoundData); !ok {
		t.Errorf("got %#v, want EndOfSoundData", c)
	}
	if _, err := d.Next(); err != io.EOF {
		t.Errorf("expected io.EOF at end, got %v", err)
	}
}

func TestEmptyStreamEndsImmediately(t *testing.T) {
	cmds, n, err := command.ParseCommands([]byte{0x66})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cmds) != 0 {
		t.Errorf("got %d commands, want 0", len(cmds))
	}
	if n != 1 {
		t.Errorf("consumed %d, want 1", n)
	}
}

func TestMissingTerminator(t *testing.T) {
	_, _, err := command.ParseCommands([]byte{0x50, 0x01, 0x62})
	if !errors.Is(err, command.ErrTruncated) {
		t.Fatalf("expected truncated error, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF cause, got %v", err)
	}
}

func TestTruncatedRecords(t *testing.T) {
	for i := 0; i < 256; i++ {
		op := byte(i)
		if !command.Known(op) {
			continue
		}
		rec := sample(t, op)
		for cut := 1; cut < len(rec); cut++ {
			c, _, err := command.DecodeCommand(rec[:cut])
			if c != nil {
				t.Errorf("opcode 0x%02x cut at %d: got partial command %#v", op, cut, c)
			}
			if !errors.Is(err, command.ErrTruncated) {
				t.Errorf("opcode 0x%02x cut at %d: expected truncated, got %v", op, cut, err)
				continue
			}
			var verr *vgmerrors.Error
			if errors.As(err, &verr) && verr.Value != op {
				t.Errorf("opcode 0x%02x cut at %d: error value %v", op, cut, verr.Value)
			}
		}
	}
}

func TestTruncatedDataBlockPayloadUnknownLength(t *testing.T) {
	// bufio.Reader hides the remaining length, exercising the incremental read.
	data := []byte{0x67, 0x66, 0x00, 0x10, 0x00, 0x00, 0x00, 0xAA}
	d := command.NewDecoder(bufio.NewReader(bytes.NewReader(data)), command.DefaultDecodeOptions())
	_, err := d.Next()
	if !errors.Is(err, command.ErrTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestEmptyInput(t *testing.T) {
	_, n, err := command.DecodeCommand(nil)
	if !errors.Is(err, command.ErrTruncated) {
		t.Errorf("expected truncated, got %v", err)
	}
	if n != 0 {
		t.Errorf("consumed %d, want 0", n)
	}
}

func TestBaseOffsetInErrors(t *testing.T) {
	opts := command.DefaultDecodeOptions()
	opts.BaseOffset = 0x100
	_, _, err := command.ParseCommandsWithOptions([]byte{0x50, 0x01, 0x62, 0xFE}, opts)

	var verr *vgmerrors.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if verr.Offset != 0x103 {
		t.Errorf("Offset = 0x%x, want 0x103", verr.Offset)
	}
}

func TestMaxDataBlockSize(t *testing.T) {
	opts := command.DefaultDecodeOptions()
	opts.MaxDataBlockSize = 2
	data := []byte{0x67, 0x66, 0x00, 0x04, 0x00, 0x00, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, 0x66}

	_, _, err := command.ParseCommandsWithOptions(data, opts)
	if !errors.Is(err, command.ErrLimit) {
		t.Fatalf("expected limit error, got %v", err)
	}

	opts.MaxDataBlockSize = 4
	cmds, _, err := command.ParseCommandsWithOptions(data, opts)
	if err != nil {
		t.Fatalf("at limit: %v", err)
	}
	if len(cmds) != 1 {
		t.Errorf("got %d commands, want 1", len(cmds))
	}
}

func TestHugeDeclaredDataBlock(t *testing.T) {
	// Declared size far beyond the input must fail as truncation, not allocate.
	opts := command.DecodeOptions{}
	data := []byte{0x67, 0x66, 0x00, 0xFF, 0xFF, 0xFF, 0x7F, 0x00}
	_, _, err := command.ParseCommandsWithOptions(data, opts)
	if !errors.Is(err, command.ErrTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestMaxCommands(t *testing.T) {
	opts := command.DefaultDecodeOptions()
	opts.MaxCommands = 2
	_, _, err := command.ParseCommandsWithOptions([]byte{0x62, 0x62, 0x62, 0x66}, opts)
	if !errors.Is(err, command.ErrLimit) {
		t.Fatalf("expected limit error, got %v", err)
	}

	cmds, _, err := command.ParseCommandsWithOptions([]byte{0x62, 0x62, 0x66}, opts)
	if err != nil {
		t.Fatalf("at limit: %v", err)
	}
	if len(cmds) != 2 {
		t.Errorf("got %d commands, want 2", len(cmds))
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	var stream []byte
	for i := 0; i < 256; i++ {
		op := byte(i)
		if !command.Known(op) || op == command.OpEndOfSoundData {
			continue
		}
		stream = append(stream, sample(t, op)...)
	}
	stream = append(stream, command.OpEndOfSoundData)

	cmds, n, err := command.ParseCommands(stream)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n != len(stream) {
		t.Errorf("consumed %d, want %d", n, len(stream))
	}

	encoded, err := command.Encode(append(cmds, command.EndOfSoundData{}))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, stream) {
		t.Errorf("sequence round trip differs:\n got % x\nwant % x", encoded, stream)
	}
}
