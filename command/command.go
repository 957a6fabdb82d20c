package command

// Command is one decoded record of the command stream.
//
// The set of implementations is closed: every variant below is a plain value
// type, and code that needs per-variant behaviour uses a type switch.
type Command interface {
	// Opcode returns the first byte the command encodes to.
	Opcode() byte
	isCommand()
}

// Single-value writes.

// AY8910StereoMask sets the AY8910 stereo mask.
type AY8910StereoMask struct{ Value uint8 }

// GameGearPSGStereo writes the Game Gear PSG stereo register.
type GameGearPSGStereo struct{ Value uint8 }

// PSGWrite writes a byte to the SN76489 PSG.
type PSGWrite struct{ Value uint8 }

// Register/value writes, one byte each.

// YM2413Write writes a YM2413 (OPLL) register.
type YM2413Write struct{ Register, Value uint8 }

// YM2612Port0Write writes a YM2612 register on port 0.
type YM2612Port0Write struct{ Register, Value uint8 }

// YM2612Port1Write writes a YM2612 register on port 1.
type YM2612Port1Write struct{ Register, Value uint8 }

// YM2151Write writes a YM2151 (OPM) register.
type YM2151Write struct{ Register, Value uint8 }

// YM2203Write writes a YM2203 (OPN) register.
type YM2203Write struct{ Register, Value uint8 }

// YM2608Port0Write writes a YM2608 register on port 0.
type YM2608Port0Write struct{ Register, Value uint8 }

// YM2608Port1Write writes a YM2608 register on port 1.
type YM2608Port1Write struct{ Register, Value uint8 }

// YM2610Port0Write writes a YM2610 register on port 0.
type YM2610Port0Write struct{ Register, Value uint8 }

// YM2610Port1Write writes a YM2610 register on port 1.
type YM2610Port1Write struct{ Register, Value uint8 }

// YM3812Write writes a YM3812 (OPL2) register.
type YM3812Write struct{ Register, Value uint8 }

// YM3526Write writes a YM3526 (OPL) register.
type YM3526Write struct{ Register, Value uint8 }

// Y8950Write writes a Y8950 register.
type Y8950Write struct{ Register, Value uint8 }

// YMZ280BWrite writes a YMZ280B register.
type YMZ280BWrite struct{ Register, Value uint8 }

// YMF262Port0Write writes a YMF262 (OPL3) register on port 0.
type YMF262Port0Write struct{ Register, Value uint8 }

// YMF262Port1Write writes a YMF262 (OPL3) register on port 1.
type YMF262Port1Write struct{ Register, Value uint8 }

// AY8910Write writes an AY8910 register.
type AY8910Write struct{ Register, Value uint8 }

// RF5C68Write writes an RF5C68 register.
type RF5C68Write struct{ Register, Value uint8 }

// RF5C164Write writes an RF5C164 register.
type RF5C164Write struct{ Register, Value uint8 }

// GameBoyDMGWrite writes a Game Boy DMG sound register.
type GameBoyDMGWrite struct{ Register, Value uint8 }

// NESAPUWrite writes a NES APU register.
type NESAPUWrite struct{ Register, Value uint8 }

// MultiPCMWrite writes a MultiPCM register.
type MultiPCMWrite struct{ Register, Value uint8 }

// UPD7759Write writes a uPD7759 register.
type UPD7759Write struct{ Register, Value uint8 }

// OKIM6258Write writes an OKIM6258 register.
type OKIM6258Write struct{ Register, Value uint8 }

// OKIM6295Write writes an OKIM6295 register.
type OKIM6295Write struct{ Register, Value uint8 }

// HuC6280Write writes a HuC6280 PSG register.
type HuC6280Write struct{ Register, Value uint8 }

// K053260Write writes a K053260 register.
type K053260Write struct{ Register, Value uint8 }

// PokeyWrite writes a Pokey register.
type PokeyWrite struct{ Register, Value uint8 }

// WonderSwanWrite writes a WonderSwan sound register.
type WonderSwanWrite struct{ Register, Value uint8 }

// SAA1099Write writes a SAA1099 register.
type SAA1099Write struct{ Register, Value uint8 }

// ES5506Write writes an 8-bit value to an ES5506 register.
type ES5506Write struct{ Register, Value uint8 }

// GA20Write writes a GA20 register.
type GA20Write struct{ Register, Value uint8 }

// PWMWrite writes a 16-bit value (little-endian on the wire) to a PWM register.
type PWMWrite struct {
	Register uint8
	Value    uint16
}

// ES5506Write16 writes a 16-bit value (little-endian) to an ES5506 register.
type ES5506Write16 struct {
	Register uint8
	Value    uint16
}

// Waits and stream structure.

// WaitNSamples waits N samples (N little-endian on the wire).
type WaitNSamples struct{ N uint16 }

// Wait735Samples waits one 60 Hz frame.
type Wait735Samples struct{}

// Wait882Samples waits one 50 Hz frame.
type Wait882Samples struct{}

// EndOfSoundData terminates the command stream.
type EndOfSoundData struct{}

// WaitNSamplesPlus1 waits N+1 samples; N lives in the opcode's low nibble.
type WaitNSamplesPlus1 struct{ N uint8 }

// YM2612Port0Address2AWriteWait writes the next byte of the PCM data bank to
// YM2612 register 0x2A, then waits N samples; N lives in the opcode's low nibble.
type YM2612Port0Address2AWriteWait struct{ N uint8 }

// DataBlock embeds raw data in the stream.
//
// Size is written back as-is; keeping it equal to len(Data) is up to the caller.
type DataBlock struct {
	Data []byte
	Size uint32
	Type uint8
}

// PCMRAMWrite copies Size bytes from a data block (ReadOffset) into chip RAM
// (WriteOffset). All three offsets are 24-bit on the wire; a Size of 0 means
// 0x1000000 bytes.
type PCMRAMWrite struct {
	ReadOffset  uint32
	WriteOffset uint32
	Size        uint32
	ChipType    uint8
}

// DAC stream control.

// DACStreamSetup binds a stream to a chip port and register.
type DACStreamSetup struct {
	StreamID uint8
	ChipType uint8
	Port     uint8
	Command  uint8
}

// DACStreamSetData selects the data bank a stream reads from.
type DACStreamSetData struct {
	StreamID   uint8
	DataBankID uint8
	StepSize   uint8
	StepBase   uint8
}

// DACStreamSetFrequency sets the stream frequency in Hz.
type DACStreamSetFrequency struct {
	Frequency uint32
	StreamID  uint8
}

// DACStreamStart starts a stream at an offset into its data bank.
type DACStreamStart struct {
	DataStart  uint32
	DataLength uint32
	StreamID   uint8
	LengthMode uint8
}

// DACStreamStop stops a stream. A StreamID of 0xFF stops all streams.
type DACStreamStop struct{ StreamID uint8 }

// DACStreamStartFast starts a stream from a data block id.
type DACStreamStartFast struct {
	BlockID  uint16
	StreamID uint8
	Flags    uint8
}

// Offset writes.

// SegaPCMWrite writes Value at a little-endian 16-bit memory offset.
type SegaPCMWrite struct {
	Offset uint16
	Value  uint8
}

// RF5C68WriteOffset writes RF5C68 RAM. It is the variant opcode 0xC1 decodes to.
type RF5C68WriteOffset struct {
	Offset uint16
	Value  uint8
}

// RF5C164WriteOffset writes RF5C164 RAM. It encodes to 0xC1, the same opcode as
// RF5C68WriteOffset, so decoding never produces it.
type RF5C164WriteOffset struct {
	Offset uint16
	Value  uint8
}

// MultiPCMSetBank sets the bank offset of a MultiPCM channel.
type MultiPCMSetBank struct {
	Offset  uint16
	Channel uint8
}

// QSoundWrite writes a 16-bit value to a QSound register. The value precedes
// the register on the wire and is big-endian.
type QSoundWrite struct {
	Value    uint16
	Register uint8
}

// SCSPWrite writes Value at a big-endian 16-bit offset.
type SCSPWrite struct {
	Offset uint16
	Value  uint8
}

// WonderSwanWrite16 writes Value at a big-endian 16-bit offset.
type WonderSwanWrite16 struct {
	Offset uint16
	Value  uint8
}

// VSUWrite writes Value at a big-endian 16-bit offset.
type VSUWrite struct {
	Offset uint16
	Value  uint8
}

// X1010Write writes Value at a big-endian 16-bit offset.
type X1010Write struct {
	Offset uint16
	Value  uint8
}

// Port/register/value writes.

// YMF278BWrite writes a YMF278B (OPL4) register on Port.
type YMF278BWrite struct{ Port, Register, Value uint8 }

// YMF271Write writes a YMF271 (OPX) register on Port.
type YMF271Write struct{ Port, Register, Value uint8 }

// SCC1Write writes a Konami SCC1 register on Port.
type SCC1Write struct{ Port, Register, Value uint8 }

// 16-bit register writes (register little-endian).

// K054539Write writes a K054539 register.
type K054539Write struct {
	Register uint16
	Value    uint8
}

// C140Write writes a C140 register.
type C140Write struct {
	Register uint16
	Value    uint8
}

// ES5503Write writes an ES5503 register.
type ES5503Write struct {
	Register uint16
	Value    uint8
}

// SeekPCM moves the PCM data bank pointer to Offset.
type SeekPCM struct{ Offset uint32 }

// C352Write writes a 16-bit value to a 16-bit C352 register, both little-endian.
type C352Write struct{ Register, Value uint16 }

func (AY8910StereoMask) Opcode() byte  { return OpAY8910StereoMask }
func (GameGearPSGStereo) Opcode() byte { return OpGameGearPSGStereo }
func (PSGWrite) Opcode() byte          { return OpPSGWrite }
func (YM2413Write) Opcode() byte       { return OpYM2413Write }
func (YM2612Port0Write) Opcode() byte  { return OpYM2612Port0Write }
func (YM2612Port1Write) Opcode() byte  { return OpYM2612Port1Write }
func (YM2151Write) Opcode() byte       { return OpYM2151Write }
func (YM2203Write) Opcode() byte       { return OpYM2203Write }
func (YM2608Port0Write) Opcode() byte  { return OpYM2608Port0Write }
func (YM2608Port1Write) Opcode() byte  { return OpYM2608Port1Write }
func (YM2610Port0Write) Opcode() byte  { return OpYM2610Port0Write }
func (YM2610Port1Write) Opcode() byte  { return OpYM2610Port1Write }
func (YM3812Write) Opcode() byte       { return OpYM3812Write }
func (YM3526Write) Opcode() byte       { return OpYM3526Write }
func (Y8950Write) Opcode() byte        { return OpY8950Write }
func (YMZ280BWrite) Opcode() byte      { return OpYMZ280BWrite }
func (YMF262Port0Write) Opcode() byte  { return OpYMF262Port0Write }
func (YMF262Port1Write) Opcode() byte  { return OpYMF262Port1Write }
func (AY8910Write) Opcode() byte       { return OpAY8910Write }
func (RF5C68Write) Opcode() byte       { return OpRF5C68Write }
func (RF5C164Write) Opcode() byte      { return OpRF5C164Write }
func (GameBoyDMGWrite) Opcode() byte   { return OpGameBoyDMGWrite }
func (NESAPUWrite) Opcode() byte       { return OpNESAPUWrite }
func (MultiPCMWrite) Opcode() byte     { return OpMultiPCMWrite }
func (UPD7759Write) Opcode() byte      { return OpUPD7759Write }
func (OKIM6258Write) Opcode() byte     { return OpOKIM6258Write }
func (OKIM6295Write) Opcode() byte     { return OpOKIM6295Write }
func (HuC6280Write) Opcode() byte      { return OpHuC6280Write }
func (K053260Write) Opcode() byte      { return OpK053260Write }
func (PokeyWrite) Opcode() byte        { return OpPokeyWrite }
func (WonderSwanWrite) Opcode() byte   { return OpWonderSwanWrite }
func (SAA1099Write) Opcode() byte      { return OpSAA1099Write }
func (ES5506Write) Opcode() byte       { return OpES5506Write }
func (GA20Write) Opcode() byte         { return OpGA20Write }
func (PWMWrite) Opcode() byte          { return OpPWMWrite }
func (ES5506Write16) Opcode() byte     { return OpES5506Write16 }
func (WaitNSamples) Opcode() byte      { return OpWaitNSamples }
func (Wait735Samples) Opcode() byte    { return OpWait735Samples }
func (Wait882Samples) Opcode() byte    { return OpWait882Samples }
func (EndOfSoundData) Opcode() byte    { return OpEndOfSoundData }
func (DataBlock) Opcode() byte         { return OpDataBlock }
func (PCMRAMWrite) Opcode() byte       { return OpPCMRAMWrite }
func (c WaitNSamplesPlus1) Opcode() byte {
	return OpWaitNSamplesPlus1 | c.N&MaxNibble
}
func (c YM2612Port0Address2AWriteWait) Opcode() byte {
	return OpYM2612Port0Address2AWriteWait | c.N&MaxNibble
}
func (DACStreamSetup) Opcode() byte        { return OpDACStreamSetup }
func (DACStreamSetData) Opcode() byte      { return OpDACStreamSetData }
func (DACStreamSetFrequency) Opcode() byte { return OpDACStreamSetFrequency }
func (DACStreamStart) Opcode() byte        { return OpDACStreamStart }
func (DACStreamStop) Opcode() byte         { return OpDACStreamStop }
func (DACStreamStartFast) Opcode() byte    { return OpDACStreamStartFast }
func (SegaPCMWrite) Opcode() byte          { return OpSegaPCMWrite }
func (RF5C68WriteOffset) Opcode() byte     { return OpRAMWriteOffset }
func (RF5C164WriteOffset) Opcode() byte    { return OpRAMWriteOffset }
func (MultiPCMSetBank) Opcode() byte       { return OpMultiPCMSetBank }
func (QSoundWrite) Opcode() byte           { return OpQSoundWrite }
func (SCSPWrite) Opcode() byte             { return OpSCSPWrite }
func (WonderSwanWrite16) Opcode() byte     { return OpWonderSwanWrite16 }
func (VSUWrite) Opcode() byte              { return OpVSUWrite }
func (X1010Write) Opcode() byte            { return OpX1010Write }
func (YMF278BWrite) Opcode() byte          { return OpYMF278BWrite }
func (YMF271Write) Opcode() byte           { return OpYMF271Write }
func (SCC1Write) Opcode() byte             { return OpSCC1Write }
func (K054539Write) Opcode() byte          { return OpK054539Write }
func (C140Write) Opcode() byte             { return OpC140Write }
func (ES5503Write) Opcode() byte           { return OpES5503Write }
func (SeekPCM) Opcode() byte               { return OpSeekPCM }
func (C352Write) Opcode() byte             { return OpC352Write }

func (AY8910StereoMask) isCommand()              {}
func (GameGearPSGStereo) isCommand()             {}
func (PSGWrite) isCommand()                      {}
func (YM2413Write) isCommand()                   {}
func (YM2612Port0Write) isCommand()              {}
func (YM2612Port1Write) isCommand()              {}
func (YM2151Write) isCommand()                   {}
func (YM2203Write) isCommand()                   {}
func (YM2608Port0Write) isCommand()              {}
func (YM2608Port1Write) isCommand()              {}
func (YM2610Port0Write) isCommand()              {}
func (YM2610Port1Write) isCommand()              {}
func (YM3812Write) isCommand()                   {}
func (YM3526Write) isCommand()                   {}
func (Y8950Write) isCommand()                    {}
func (YMZ280BWrite) isCommand()                  {}
func (YMF262Port0Write) isCommand()              {}
func (YMF262Port1Write) isCommand()              {}
func (AY8910Write) isCommand()                   {}
func (RF5C68Write) isCommand()                   {}
func (RF5C164Write) isCommand()                  {}
func (GameBoyDMGWrite) isCommand()               {}
func (NESAPUWrite) isCommand()                   {}
func (MultiPCMWrite) isCommand()                 {}
func (UPD7759Write) isCommand()                  {}
func (OKIM6258Write) isCommand()                 {}
func (OKIM6295Write) isCommand()                 {}
func (HuC6280Write) isCommand()                  {}
func (K053260Write) isCommand()                  {}
func (PokeyWrite) isCommand()                    {}
func (WonderSwanWrite) isCommand()               {}
func (SAA1099Write) isCommand()                  {}
func (ES5506Write) isCommand()                   {}
func (GA20Write) isCommand()                     {}
func (PWMWrite) isCommand()                      {}
func (ES5506Write16) isCommand()                 {}
func (WaitNSamples) isCommand()                  {}
func (Wait735Samples) isCommand()                {}
func (Wait882Samples) isCommand()                {}
func (EndOfSoundData) isCommand()                {}
func (DataBlock) isCommand()                     {}
func (PCMRAMWrite) isCommand()                   {}
func (WaitNSamplesPlus1) isCommand()             {}
func (YM2612Port0Address2AWriteWait) isCommand() {}
func (DACStreamSetup) isCommand()                {}
func (DACStreamSetData) isCommand()              {}
func (DACStreamSetFrequency) isCommand()         {}
func (DACStreamStart) isCommand()                {}
func (DACStreamStop) isCommand()                 {}
func (DACStreamStartFast) isCommand()            {}
func (SegaPCMWrite) isCommand()                  {}
func (RF5C68WriteOffset) isCommand()             {}
func (RF5C164WriteOffset) isCommand()            {}
func (MultiPCMSetBank) isCommand()               {}
func (QSoundWrite) isCommand()                   {}
func (SCSPWrite) isCommand()                     {}
func (WonderSwanWrite16) isCommand()             {}
func (VSUWrite) isCommand()                      {}
func (X1010Write) isCommand()                    {}
func (YMF278BWrite) isCommand()                  {}
func (YMF271Write) isCommand()                   {}
func (SCC1Write) isCommand()                     {}
func (K054539Write) isCommand()                  {}
func (C140Write) isCommand()                     {}
func (ES5503Write) isCommand()                   {}
func (SeekPCM) isCommand()                       {}
func (C352Write) isCommand()                     {}
