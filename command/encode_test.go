package command_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wippyai/vgm/command"
)

func TestEncodeNoTerminator(t *testing.T) {
	out, err := command.Encode([]command.Command{command.PSGWrite{Value: 0x9F}, command.Wait735Samples{}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x50, 0x9F, 0x62}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	out, err := command.Encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got % x, want empty", out)
	}
}

func TestEncodeDataBlock(t *testing.T) {
	out, err := command.Encode([]command.Command{
		command.DataBlock{Type: 0x00, Size: 4, Data: []byte{0xAA, 0xBB, 0xCC, 0xDD}},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x67, 0x66, 0x00, 0x04, 0x00, 0x00, 0x00, 0xAA, 0xBB, 0xCC, 0xDD}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}

func TestEncodeDataBlockSizeNotValidated(t *testing.T) {
	// Size is written as given even when it disagrees with the payload.
	out, err := command.Encode([]command.Command{
		command.DataBlock{Type: 0x01, Size: 9, Data: []byte{0x01}},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x67, 0x66, 0x01, 0x09, 0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}

func TestEncodeSharedOpcode(t *testing.T) {
	out, err := command.Encode([]command.Command{
		command.RF5C68WriteOffset{Offset: 0x1234, Value: 0x56},
		command.RF5C164WriteOffset{Offset: 0x1234, Value: 0x56},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0xC1, 0x34, 0x12, 0x56, 0xC1, 0x34, 0x12, 0x56}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}

	cmds, _, err := command.ParseCommands(append(out, 0x66))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for i, c := range cmds {
		if _, ok := c.(command.RF5C68WriteOffset); !ok {
			t.Errorf("command %d decoded as %T, want RF5C68WriteOffset", i, c)
		}
	}
}

func TestEncodeNibbles(t *testing.T) {
	out, err := command.Encode([]command.Command{
		command.WaitNSamplesPlus1{N: 0},
		command.WaitNSamplesPlus1{N: 15},
		command.YM2612Port0Address2AWriteWait{N: 0},
		command.YM2612Port0Address2AWriteWait{N: 15},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x70, 0x7F, 0x80, 0x8F}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}

func TestEncodeFieldOverflow(t *testing.T) {
	tests := []struct {
		cmd  command.Command
		name string
		path string
	}{
		{command.WaitNSamplesPlus1{N: 16}, "wait nibble", "WaitNSamplesPlus1.N"},
		{command.YM2612Port0Address2AWriteWait{N: 0xFF}, "YM2612 nibble", "YM2612Port0Address2AWriteWait.N"},
		{command.PCMRAMWrite{ReadOffset: 0x01000000}, "read offset", "PCMRAMWrite.ReadOffset"},
		{command.PCMRAMWrite{WriteOffset: 0x01000000}, "write offset", "PCMRAMWrite.WriteOffset"},
		{command.PCMRAMWrite{Size: 0xFFFFFFFF}, "size", "PCMRAMWrite.Size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			buf.WriteByte(0x50)
			err := command.EncodeTo(&buf, tt.cmd)
			if !errors.Is(err, command.ErrFieldOverflow) {
				t.Fatalf("expected overflow, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q does not name %s", err, tt.path)
			}
			if buf.Len() != 1 {
				t.Errorf("buffer grew to %d bytes on failure", buf.Len())
			}
		})
	}
}

func TestEncodePCMRAMWriteMaxOffsets(t *testing.T) {
	c := command.PCMRAMWrite{ChipType: 2, ReadOffset: command.MaxU24, WriteOffset: command.MaxU24, Size: command.MaxU24}
	out, err := command.Encode([]command.Command{c})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x68, 0x66, 0x02, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}

type embeddedCommand struct{ command.PSGWrite }

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer

	if err := command.EncodeTo(&buf, nil); err == nil {
		t.Error("expected error for nil command")
	}

	// Embedding a variant satisfies the interface but is not one of the variants.
	if err := command.EncodeTo(&buf, embeddedCommand{}); !errors.Is(err, command.ErrUnsupported) {
		t.Errorf("expected unsupported for embedded variant, got %v", err)
	}
	if err := command.EncodeTo(&buf, &command.PSGWrite{}); !errors.Is(err, command.ErrUnsupported) {
		t.Errorf("expected unsupported for pointer variant, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("buffer holds % x after failures", buf.Bytes())
	}
}

func TestEncodeStopsAtFirstError(t *testing.T) {
	var buf bytes.Buffer
	err := command.EncodeCommandsTo(&buf, []command.Command{
		command.PSGWrite{Value: 1},
		command.WaitNSamplesPlus1{N: 20},
		command.PSGWrite{Value: 2},
	})
	if !errors.Is(err, command.ErrFieldOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if !strings.Contains(err.Error(), "command 1") {
		t.Errorf("error %q does not name the failing index", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x50, 0x01}) {
		t.Errorf("buffer = % x, want 50 01", buf.Bytes())
	}

	if _, err := command.Encode([]command.Command{command.WaitNSamplesPlus1{N: 20}}); err == nil {
		t.Error("Encode should fail")
	}
}

func TestAppendCommand(t *testing.T) {
	dst := []byte{0xAA}
	dst, err := command.AppendCommand(dst, command.YM2612Port0Write{Register: 0x2A, Value: 0x80})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if !bytes.Equal(dst, []byte{0xAA, 0x52, 0x2A, 0x80}) {
		t.Errorf("got % x", dst)
	}

	before := len(dst)
	dst, err = command.AppendCommand(dst, command.WaitNSamplesPlus1{N: 16})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(dst) != before {
		t.Errorf("dst grew on failure")
	}
}

func TestEncodeReusesPooledBuffers(t *testing.T) {
	first, err := command.Encode([]command.Command{command.PSGWrite{Value: 1}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := command.Encode([]command.Command{command.PSGWrite{Value: 2}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, []byte{0x50, 0x01}) {
		t.Errorf("first result changed to % x", first)
	}
	if !bytes.Equal(second, []byte{0x50, 0x02}) {
		t.Errorf("second result = % x", second)
	}
}
