package command

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/wippyai/vgm/errors"
	"github.com/wippyai/vgm/internal/binary"
)

// Sentinels for errors.Is checks against encode failures.
var (
	ErrFieldOverflow = errors.New(errors.PhaseEncode, errors.KindOverflow).Build()
	ErrUnsupported   = errors.New(errors.PhaseEncode, errors.KindUnsupported).Build()
)

// Encode encodes commands to bytes. It never appends an end-of-stream marker;
// include EndOfSoundData in cmds to get one.
func Encode(cmds []Command) ([]byte, error) {
	buf := getBuf()
	defer putBuf(buf)

	if err := EncodeCommandsTo(buf, cmds); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// EncodeCommandsTo writes commands to buf in order, stopping at the first
// command that cannot be encoded. Commands before it remain in buf.
func EncodeCommandsTo(buf *bytes.Buffer, cmds []Command) error {
	for i, c := range cmds {
		if err := EncodeTo(buf, c); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}

// AppendCommand appends the encoding of c to dst.
func AppendCommand(dst []byte, c Command) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := EncodeTo(buf, c); err != nil {
		return dst, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes a single command to buf. Nothing is written when c violates
// a field width, such as a nibble count above 15.
func EncodeTo(buf *bytes.Buffer, c Command) error {
	if err := check(c); err != nil {
		return err
	}

	start := buf.Len()
	w := binary.NewWriterTo(buf)
	w.Byte(c.Opcode())

	switch v := c.(type) {
	case AY8910StereoMask:
		w.Byte(v.Value)
	case GameGearPSGStereo:
		w.Byte(v.Value)
	case PSGWrite:
		w.Byte(v.Value)
	case YM2413Write:
		pair(w, v.Register, v.Value)
	case YM2612Port0Write:
		pair(w, v.Register, v.Value)
	case YM2612Port1Write:
		pair(w, v.Register, v.Value)
	case YM2151Write:
		pair(w, v.Register, v.Value)
	case YM2203Write:
		pair(w, v.Register, v.Value)
	case YM2608Port0Write:
		pair(w, v.Register, v.Value)
	case YM2608Port1Write:
		pair(w, v.Register, v.Value)
	case YM2610Port0Write:
		pair(w, v.Register, v.Value)
	case YM2610Port1Write:
		pair(w, v.Register, v.Value)
	case YM3812Write:
		pair(w, v.Register, v.Value)
	case YM3526Write:
		pair(w, v.Register, v.Value)
	case Y8950Write:
		pair(w, v.Register, v.Value)
	case YMZ280BWrite:
		pair(w, v.Register, v.Value)
	case YMF262Port0Write:
		pair(w, v.Register, v.Value)
	case YMF262Port1Write:
		pair(w, v.Register, v.Value)

	case WaitNSamples:
		w.WriteU16LE(v.N)
	case Wait735Samples, Wait882Samples, EndOfSoundData,
		WaitNSamplesPlus1, YM2612Port0Address2AWriteWait:
		// opcode only

	case DataBlock:
		w.Byte(CompatByte)
		w.Byte(v.Type)
		w.WriteU32LE(v.Size)
		w.WriteBytes(v.Data)
	case PCMRAMWrite:
		w.Byte(CompatByte)
		w.Byte(v.ChipType)
		w.WriteU24LE(v.ReadOffset)
		w.WriteU24LE(v.WriteOffset)
		w.WriteU24LE(v.Size)

	case DACStreamSetup:
		w.WriteBytes([]byte{v.StreamID, v.ChipType, v.Port, v.Command})
	case DACStreamSetData:
		w.WriteBytes([]byte{v.StreamID, v.DataBankID, v.StepSize, v.StepBase})
	case DACStreamSetFrequency:
		w.Byte(v.StreamID)
		w.WriteU32LE(v.Frequency)
	case DACStreamStart:
		w.Byte(v.StreamID)
		w.WriteU32LE(v.DataStart)
		w.Byte(v.LengthMode)
		w.WriteU32LE(v.DataLength)
	case DACStreamStop:
		w.Byte(v.StreamID)
	case DACStreamStartFast:
		w.Byte(v.StreamID)
		w.WriteU16LE(v.BlockID)
		w.Byte(v.Flags)

	case AY8910Write:
		pair(w, v.Register, v.Value)
	case RF5C68Write:
		pair(w, v.Register, v.Value)
	case RF5C164Write:
		pair(w, v.Register, v.Value)
	case PWMWrite:
		w.Byte(v.Register)
		w.WriteU16LE(v.Value)
	case GameBoyDMGWrite:
		pair(w, v.Register, v.Value)
	case NESAPUWrite:
		pair(w, v.Register, v.Value)
	case MultiPCMWrite:
		pair(w, v.Register, v.Value)
	case UPD7759Write:
		pair(w, v.Register, v.Value)
	case OKIM6258Write:
		pair(w, v.Register, v.Value)
	case OKIM6295Write:
		pair(w, v.Register, v.Value)
	case HuC6280Write:
		pair(w, v.Register, v.Value)
	case K053260Write:
		pair(w, v.Register, v.Value)
	case PokeyWrite:
		pair(w, v.Register, v.Value)
	case WonderSwanWrite:
		pair(w, v.Register, v.Value)
	case SAA1099Write:
		pair(w, v.Register, v.Value)
	case ES5506Write:
		pair(w, v.Register, v.Value)
	case GA20Write:
		pair(w, v.Register, v.Value)

	case SegaPCMWrite:
		w.WriteU16LE(v.Offset)
		w.Byte(v.Value)
	case RF5C68WriteOffset:
		w.WriteU16LE(v.Offset)
		w.Byte(v.Value)
	case RF5C164WriteOffset:
		w.WriteU16LE(v.Offset)
		w.Byte(v.Value)
	case MultiPCMSetBank:
		w.Byte(v.Channel)
		w.WriteU16LE(v.Offset)
	case QSoundWrite:
		w.WriteU16BE(v.Value)
		w.Byte(v.Register)
	case SCSPWrite:
		w.WriteU16BE(v.Offset)
		w.Byte(v.Value)
	case WonderSwanWrite16:
		w.WriteU16BE(v.Offset)
		w.Byte(v.Value)
	case VSUWrite:
		w.WriteU16BE(v.Offset)
		w.Byte(v.Value)
	case X1010Write:
		w.WriteU16BE(v.Offset)
		w.Byte(v.Value)

	case YMF278BWrite:
		w.WriteBytes([]byte{v.Port, v.Register, v.Value})
	case YMF271Write:
		w.WriteBytes([]byte{v.Port, v.Register, v.Value})
	case SCC1Write:
		w.WriteBytes([]byte{v.Port, v.Register, v.Value})
	case K054539Write:
		w.WriteU16LE(v.Register)
		w.Byte(v.Value)
	case C140Write:
		w.WriteU16LE(v.Register)
		w.Byte(v.Value)
	case ES5503Write:
		w.WriteU16LE(v.Register)
		w.Byte(v.Value)
	case ES5506Write16:
		w.Byte(v.Register)
		w.WriteU16LE(v.Value)

	case SeekPCM:
		w.WriteU32LE(v.Offset)
	case C352Write:
		w.WriteU16LE(v.Register)
		w.WriteU16LE(v.Value)

	default:
		buf.Truncate(start)
		return errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("cannot encode %T", c))
	}
	return nil
}

func pair(w *binary.Writer, a, b uint8) {
	w.Byte(a)
	w.Byte(b)
}

// check rejects commands whose fields do not fit their wire encoding.
func check(c Command) error {
	switch v := c.(type) {
	case nil:
		return errors.InvalidInput(errors.PhaseEncode, "nil command")
	case WaitNSamplesPlus1:
		return checkNibble("WaitNSamplesPlus1", v.N)
	case YM2612Port0Address2AWriteWait:
		return checkNibble("YM2612Port0Address2AWriteWait", v.N)
	case PCMRAMWrite:
		for _, f := range []struct {
			name string
			val  uint32
		}{
			{"ReadOffset", v.ReadOffset},
			{"WriteOffset", v.WriteOffset},
			{"Size", v.Size},
		} {
			if f.val > MaxU24 {
				return errors.Overflow(errors.PhaseEncode, []string{"PCMRAMWrite", f.name}, f.val, "24 bits")
			}
		}
	}
	if reflect.TypeOf(c).Kind() != reflect.Struct {
		return errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("cannot encode %T", c))
	}
	return nil
}

func checkNibble(name string, n uint8) error {
	if n > MaxNibble {
		return errors.Overflow(errors.PhaseEncode, []string{name, "N"}, n, "4 bits")
	}
	return nil
}
