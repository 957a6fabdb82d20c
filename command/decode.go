package command

import (
	"bytes"
	stderrors "errors"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/vgm/errors"
	"github.com/wippyai/vgm/internal/binary"
)

// Sentinels for errors.Is checks against decode failures.
var (
	ErrUnknownOpcode = errors.New(errors.PhaseDecode, errors.KindUnknownOpcode).Build()
	ErrTruncated     = errors.New(errors.PhaseDecode, errors.KindTruncated).Build()
	ErrLimit         = errors.New(errors.PhaseDecode, errors.KindOverflow).Build()
)

// DefaultMaxDataBlockSize bounds a single data block when DefaultDecodeOptions is used.
const DefaultMaxDataBlockSize = 256 << 20

// DecodeOptions controls decoding behavior
type DecodeOptions struct {
	// BaseOffset is added to positions reported in errors, so that offsets
	// refer to the enclosing file rather than the start of the stream.
	BaseOffset int

	// MaxDataBlockSize rejects data blocks declaring more bytes. 0 means no limit.
	MaxDataBlockSize uint32

	// MaxCommands bounds DecodeAll. 0 means no limit.
	MaxCommands int
}

// DefaultDecodeOptions returns default decoder configuration.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		MaxDataBlockSize: DefaultMaxDataBlockSize,
	}
}

// Decoder reads commands from a byte cursor, one record at a time.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	r    *binary.Reader
	err  error
	opts DecodeOptions
}

// NewDecoder creates a decoder reading from r, which must be positioned at
// the first opcode of a command stream.
func NewDecoder(r io.ByteReader, opts DecodeOptions) *Decoder {
	return &Decoder{r: binary.NewReader(r), opts: opts}
}

// Offset returns the absolute offset of the next unread byte.
func (d *Decoder) Offset() int {
	return d.opts.BaseOffset + d.r.Position()
}

// Consumed returns the number of bytes read from the cursor.
func (d *Decoder) Consumed() int {
	return d.r.Position()
}

// Next decodes one command. EndOfSoundData is returned like any other command.
// At a clean record boundary with no input left Next returns io.EOF.
func (d *Decoder) Next() (Command, error) {
	start := d.Offset()
	op, err := d.r.ReadByte()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "read opcode")
	}
	return d.decode(op, start)
}

// DecodeAll decodes commands up to the end-of-stream marker. The marker is
// consumed but not included in the result. Decoding stops at the first error;
// there is no attempt to resynchronise after an unknown opcode.
func (d *Decoder) DecodeAll() ([]Command, error) {
	var cmds []Command
	for {
		c, err := d.Next()
		if err == io.EOF {
			return nil, errors.New(errors.PhaseDecode, errors.KindTruncated).
				Offset(d.Offset()).
				Detail("stream ended without end-of-stream marker after %d commands", len(cmds)).
				Cause(io.ErrUnexpectedEOF).
				Build()
		}
		if err != nil {
			return nil, err
		}
		if _, ok := c.(EndOfSoundData); ok {
			Logger().Debug("command stream decoded",
				zap.Int("commands", len(cmds)),
				zap.Int("bytes", d.Consumed()))
			return cmds, nil
		}
		if d.opts.MaxCommands > 0 && len(cmds) >= d.opts.MaxCommands {
			return nil, errors.New(errors.PhaseDecode, errors.KindOverflow).
				Offset(d.Offset()).
				Value(len(cmds) + 1).
				Detail("more than %d commands", d.opts.MaxCommands).
				Build()
		}
		cmds = append(cmds, c)
	}
}

// DecodeCommand decodes a single command from the start of data and reports
// how many bytes it occupied.
func DecodeCommand(data []byte) (Command, int, error) {
	d := NewDecoder(bytes.NewReader(data), DefaultDecodeOptions())
	c, err := d.Next()
	if err == io.EOF {
		return nil, 0, errors.Truncated(errors.PhaseDecode, nil, 0, io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, d.Consumed(), err
	}
	return c, d.Consumed(), nil
}

// ParseCommands decodes a whole command stream from data, excluding the
// end-of-stream marker, and reports the bytes consumed including the marker.
func ParseCommands(data []byte) ([]Command, int, error) {
	return ParseCommandsWithOptions(data, DefaultDecodeOptions())
}

// ParseCommandsWithOptions is ParseCommands with explicit options.
func ParseCommandsWithOptions(data []byte, opts DecodeOptions) ([]Command, int, error) {
	d := NewDecoder(bytes.NewReader(data), opts)
	cmds, err := d.DecodeAll()
	return cmds, d.Consumed(), err
}

// field readers record the first failure in d.err and return zero afterwards,
// so a case can read all of its fields and check once.

func (d *Decoder) u8() uint8 {
	if d.err != nil {
		return 0
	}
	b, err := d.r.ReadByte()
	d.err = err
	return b
}

func (d *Decoder) u16le() uint16 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU16LE()
	d.err = err
	return v
}

func (d *Decoder) u16be() uint16 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU16BE()
	d.err = err
	return v
}

func (d *Decoder) u24le() uint32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU24LE()
	d.err = err
	return v
}

func (d *Decoder) u32le() uint32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU32LE()
	d.err = err
	return v
}

func (d *Decoder) decode(op byte, start int) (Command, error) {
	d.err = nil
	var c Command

	switch op {
	case OpAY8910StereoMask:
		c = AY8910StereoMask{Value: d.u8()}
	case OpGameGearPSGStereo:
		c = GameGearPSGStereo{Value: d.u8()}
	case OpPSGWrite:
		c = PSGWrite{Value: d.u8()}
	case OpYM2413Write:
		c = YM2413Write{Register: d.u8(), Value: d.u8()}
	case OpYM2612Port0Write:
		c = YM2612Port0Write{Register: d.u8(), Value: d.u8()}
	case OpYM2612Port1Write:
		c = YM2612Port1Write{Register: d.u8(), Value: d.u8()}
	case OpYM2151Write:
		c = YM2151Write{Register: d.u8(), Value: d.u8()}
	case OpYM2203Write:
		c = YM2203Write{Register: d.u8(), Value: d.u8()}
	case OpYM2608Port0Write:
		c = YM2608Port0Write{Register: d.u8(), Value: d.u8()}
	case OpYM2608Port1Write:
		c = YM2608Port1Write{Register: d.u8(), Value: d.u8()}
	case OpYM2610Port0Write:
		c = YM2610Port0Write{Register: d.u8(), Value: d.u8()}
	case OpYM2610Port1Write:
		c = YM2610Port1Write{Register: d.u8(), Value: d.u8()}
	case OpYM3812Write:
		c = YM3812Write{Register: d.u8(), Value: d.u8()}
	case OpYM3526Write:
		c = YM3526Write{Register: d.u8(), Value: d.u8()}
	case OpY8950Write:
		c = Y8950Write{Register: d.u8(), Value: d.u8()}
	case OpYMZ280BWrite:
		c = YMZ280BWrite{Register: d.u8(), Value: d.u8()}
	case OpYMF262Port0Write:
		c = YMF262Port0Write{Register: d.u8(), Value: d.u8()}
	case OpYMF262Port1Write:
		c = YMF262Port1Write{Register: d.u8(), Value: d.u8()}

	case OpWaitNSamples:
		c = WaitNSamples{N: d.u16le()}
	case OpWait735Samples:
		c = Wait735Samples{}
	case OpWait882Samples:
		c = Wait882Samples{}
	case OpEndOfSoundData:
		c = EndOfSoundData{}

	case OpDataBlock:
		return d.decodeDataBlock(start)

	case OpPCMRAMWrite:
		d.compat(op, start)
		c = PCMRAMWrite{
			ChipType:    d.u8(),
			ReadOffset:  d.u24le(),
			WriteOffset: d.u24le(),
			Size:        d.u24le(),
		}

	case OpDACStreamSetup:
		c = DACStreamSetup{StreamID: d.u8(), ChipType: d.u8(), Port: d.u8(), Command: d.u8()}
	case OpDACStreamSetData:
		c = DACStreamSetData{StreamID: d.u8(), DataBankID: d.u8(), StepSize: d.u8(), StepBase: d.u8()}
	case OpDACStreamSetFrequency:
		c = DACStreamSetFrequency{StreamID: d.u8(), Frequency: d.u32le()}
	case OpDACStreamStart:
		c = DACStreamStart{StreamID: d.u8(), DataStart: d.u32le(), LengthMode: d.u8(), DataLength: d.u32le()}
	case OpDACStreamStop:
		c = DACStreamStop{StreamID: d.u8()}
	case OpDACStreamStartFast:
		c = DACStreamStartFast{StreamID: d.u8(), BlockID: d.u16le(), Flags: d.u8()}

	case OpAY8910Write:
		c = AY8910Write{Register: d.u8(), Value: d.u8()}
	case OpRF5C68Write:
		c = RF5C68Write{Register: d.u8(), Value: d.u8()}
	case OpRF5C164Write:
		c = RF5C164Write{Register: d.u8(), Value: d.u8()}
	case OpPWMWrite:
		c = PWMWrite{Register: d.u8(), Value: d.u16le()}
	case OpGameBoyDMGWrite:
		c = GameBoyDMGWrite{Register: d.u8(), Value: d.u8()}
	case OpNESAPUWrite:
		c = NESAPUWrite{Register: d.u8(), Value: d.u8()}
	case OpMultiPCMWrite:
		c = MultiPCMWrite{Register: d.u8(), Value: d.u8()}
	case OpUPD7759Write:
		c = UPD7759Write{Register: d.u8(), Value: d.u8()}
	case OpOKIM6258Write:
		c = OKIM6258Write{Register: d.u8(), Value: d.u8()}
	case OpOKIM6295Write:
		c = OKIM6295Write{Register: d.u8(), Value: d.u8()}
	case OpHuC6280Write:
		c = HuC6280Write{Register: d.u8(), Value: d.u8()}
	case OpK053260Write:
		c = K053260Write{Register: d.u8(), Value: d.u8()}
	case OpPokeyWrite:
		c = PokeyWrite{Register: d.u8(), Value: d.u8()}
	case OpWonderSwanWrite:
		c = WonderSwanWrite{Register: d.u8(), Value: d.u8()}
	case OpSAA1099Write:
		c = SAA1099Write{Register: d.u8(), Value: d.u8()}
	case OpES5506Write:
		c = ES5506Write{Register: d.u8(), Value: d.u8()}
	case OpGA20Write:
		c = GA20Write{Register: d.u8(), Value: d.u8()}

	case OpSegaPCMWrite:
		c = SegaPCMWrite{Offset: d.u16le(), Value: d.u8()}
	case OpRAMWriteOffset:
		// Canonical decoding for the shared opcode. RF5C164WriteOffset is encode-only.
		c = RF5C68WriteOffset{Offset: d.u16le(), Value: d.u8()}
	case OpMultiPCMSetBank:
		c = MultiPCMSetBank{Channel: d.u8(), Offset: d.u16le()}
	case OpQSoundWrite:
		// Value comes before the register on the wire.
		c = QSoundWrite{Value: d.u16be(), Register: d.u8()}
	case OpSCSPWrite:
		c = SCSPWrite{Offset: d.u16be(), Value: d.u8()}
	case OpWonderSwanWrite16:
		c = WonderSwanWrite16{Offset: d.u16be(), Value: d.u8()}
	case OpVSUWrite:
		c = VSUWrite{Offset: d.u16be(), Value: d.u8()}
	case OpX1010Write:
		c = X1010Write{Offset: d.u16be(), Value: d.u8()}

	case OpYMF278BWrite:
		c = YMF278BWrite{Port: d.u8(), Register: d.u8(), Value: d.u8()}
	case OpYMF271Write:
		c = YMF271Write{Port: d.u8(), Register: d.u8(), Value: d.u8()}
	case OpSCC1Write:
		c = SCC1Write{Port: d.u8(), Register: d.u8(), Value: d.u8()}
	case OpK054539Write:
		c = K054539Write{Register: d.u16le(), Value: d.u8()}
	case OpC140Write:
		c = C140Write{Register: d.u16le(), Value: d.u8()}
	case OpES5503Write:
		c = ES5503Write{Register: d.u16le(), Value: d.u8()}
	case OpES5506Write16:
		c = ES5506Write16{Register: d.u8(), Value: d.u16le()}

	case OpSeekPCM:
		c = SeekPCM{Offset: d.u32le()}
	case OpC352Write:
		c = C352Write{Register: d.u16le(), Value: d.u16le()}

	default:
		switch op &^ MaxNibble {
		case OpWaitNSamplesPlus1:
			c = WaitNSamplesPlus1{N: op & MaxNibble}
		case OpYM2612Port0Address2AWriteWait:
			c = YM2612Port0Address2AWriteWait{N: op & MaxNibble}
		default:
			return nil, errors.UnknownOpcode(start, op)
		}
	}

	if d.err != nil {
		return nil, d.truncated(op, start)
	}
	return c, nil
}

func (d *Decoder) decodeDataBlock(start int) (Command, error) {
	d.compat(OpDataBlock, start)
	typ := d.u8()
	size := d.u32le()
	if d.err != nil {
		return nil, d.truncated(OpDataBlock, start)
	}

	if limit := d.opts.MaxDataBlockSize; limit > 0 && size > limit {
		return nil, errors.New(errors.PhaseDecode, errors.KindOverflow).
			Path("DataBlock", "Size").
			Offset(start).
			Value(size).
			Detail("data block of %d bytes exceeds limit of %d", size, limit).
			Build()
	}

	data, err := d.r.ReadBytes(int(size))
	if err != nil {
		d.err = err
		return nil, d.truncated(OpDataBlock, start)
	}

	Logger().Debug("data block",
		zap.Int("offset", start),
		zap.Uint8("type", typ),
		zap.Uint32("size", size))

	return DataBlock{Type: typ, Size: size, Data: data}, nil
}

// compat consumes the compatibility byte that follows 0x67 and 0x68. Its value
// is not checked; the encoder always writes CompatByte.
func (d *Decoder) compat(op byte, start int) {
	b := d.u8()
	if d.err == nil && b != CompatByte {
		Logger().Debug("unexpected compatibility byte",
			zap.Int("offset", start),
			zap.Uint8("opcode", op),
			zap.Uint8("byte", b))
	}
}

func (d *Decoder) truncated(op byte, start int) error {
	info, _ := Lookup(op)
	err := errors.Truncated(errors.PhaseDecode, []string{info.Name}, start, d.err)
	err.Value = op
	if stderrors.Is(d.err, io.EOF) {
		err.Cause = io.ErrUnexpectedEOF
	}
	return err
}
