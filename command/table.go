package command

import "fmt"

// Class describes the wire layout of the bytes that follow an opcode.
type Class uint8

const (
	ClassNone            Class = iota // no trailing bytes
	ClassValue                        // value
	ClassRegValue                     // register, value
	ClassRegValue16                   // register, value lo, value hi
	ClassReg16Value                   // register lo, register hi, value
	ClassReg16Value16                 // register lo, register hi, value lo, value hi
	ClassPortRegValue                 // port, register, value
	ClassOffset16Value                // offset lo, offset hi, value
	ClassOffset16BEValue              // offset hi, offset lo, value
	ClassChannelOffset16              // channel, offset lo, offset hi
	ClassValue16BEReg                 // value hi, value lo, register
	ClassOffset32                     // 32-bit little-endian offset
	ClassWait16                       // 16-bit little-endian sample count
	ClassNibble                       // count in the opcode's low nibble
	ClassDataBlock                    // compat byte, type, 32-bit size, payload
	ClassPCMRAMWrite                  // compat byte, chip type, three 24-bit fields
	ClassStreamControl                // DAC stream control, opcode specific
	ClassEnd                          // end of stream
)

var classNames = [...]string{
	ClassNone:            "none",
	ClassValue:           "val",
	ClassRegValue:        "reg+val",
	ClassRegValue16:      "reg+val16",
	ClassReg16Value:      "reg16+val",
	ClassReg16Value16:    "reg16+val16",
	ClassPortRegValue:    "port+reg+val",
	ClassOffset16Value:   "offset16+val",
	ClassOffset16BEValue: "offset16be+val",
	ClassChannelOffset16: "channel+offset16",
	ClassValue16BEReg:    "val16be+reg",
	ClassOffset32:        "offset32",
	ClassWait16:          "wait16",
	ClassNibble:          "nibble",
	ClassDataBlock:       "data-block",
	ClassPCMRAMWrite:     "pcm-ram-write",
	ClassStreamControl:   "stream-control",
	ClassEnd:             "end",
}

// String returns the short name of the layout class.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", c)
}

// Variable marks an Info whose record length depends on its content.
const Variable = -1

// Info describes one recognised opcode.
type Info struct {
	Name   string // variant name
	Chip   string // chip family addressed, empty for waits and stream structure
	Length int    // trailing bytes after the opcode, or Variable
	Class  Class
	Opcode byte
}

var catalog = []Info{
	{Opcode: OpAY8910StereoMask, Name: "AY8910StereoMask", Chip: "AY8910", Class: ClassValue, Length: 1},
	{Opcode: OpGameGearPSGStereo, Name: "GameGearPSGStereo", Chip: "SN76489", Class: ClassValue, Length: 1},
	{Opcode: OpPSGWrite, Name: "PSGWrite", Chip: "SN76489", Class: ClassValue, Length: 1},
	{Opcode: OpYM2413Write, Name: "YM2413Write", Chip: "YM2413", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM2612Port0Write, Name: "YM2612Port0Write", Chip: "YM2612", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM2612Port1Write, Name: "YM2612Port1Write", Chip: "YM2612", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM2151Write, Name: "YM2151Write", Chip: "YM2151", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM2203Write, Name: "YM2203Write", Chip: "YM2203", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM2608Port0Write, Name: "YM2608Port0Write", Chip: "YM2608", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM2608Port1Write, Name: "YM2608Port1Write", Chip: "YM2608", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM2610Port0Write, Name: "YM2610Port0Write", Chip: "YM2610", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM2610Port1Write, Name: "YM2610Port1Write", Chip: "YM2610", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM3812Write, Name: "YM3812Write", Chip: "YM3812", Class: ClassRegValue, Length: 2},
	{Opcode: OpYM3526Write, Name: "YM3526Write", Chip: "YM3526", Class: ClassRegValue, Length: 2},
	{Opcode: OpY8950Write, Name: "Y8950Write", Chip: "Y8950", Class: ClassRegValue, Length: 2},
	{Opcode: OpYMZ280BWrite, Name: "YMZ280BWrite", Chip: "YMZ280B", Class: ClassRegValue, Length: 2},
	{Opcode: OpYMF262Port0Write, Name: "YMF262Port0Write", Chip: "YMF262", Class: ClassRegValue, Length: 2},
	{Opcode: OpYMF262Port1Write, Name: "YMF262Port1Write", Chip: "YMF262", Class: ClassRegValue, Length: 2},

	{Opcode: OpWaitNSamples, Name: "WaitNSamples", Class: ClassWait16, Length: 2},
	{Opcode: OpWait735Samples, Name: "Wait735Samples", Class: ClassNone, Length: 0},
	{Opcode: OpWait882Samples, Name: "Wait882Samples", Class: ClassNone, Length: 0},
	{Opcode: OpEndOfSoundData, Name: "EndOfSoundData", Class: ClassEnd, Length: 0},
	{Opcode: OpDataBlock, Name: "DataBlock", Class: ClassDataBlock, Length: Variable},
	{Opcode: OpPCMRAMWrite, Name: "PCMRAMWrite", Class: ClassPCMRAMWrite, Length: 11},

	{Opcode: OpDACStreamSetup, Name: "DACStreamSetup", Class: ClassStreamControl, Length: 4},
	{Opcode: OpDACStreamSetData, Name: "DACStreamSetData", Class: ClassStreamControl, Length: 4},
	{Opcode: OpDACStreamSetFrequency, Name: "DACStreamSetFrequency", Class: ClassStreamControl, Length: 5},
	{Opcode: OpDACStreamStart, Name: "DACStreamStart", Class: ClassStreamControl, Length: 10},
	{Opcode: OpDACStreamStop, Name: "DACStreamStop", Class: ClassStreamControl, Length: 1},
	{Opcode: OpDACStreamStartFast, Name: "DACStreamStartFast", Class: ClassStreamControl, Length: 4},

	{Opcode: OpAY8910Write, Name: "AY8910Write", Chip: "AY8910", Class: ClassRegValue, Length: 2},
	{Opcode: OpRF5C68Write, Name: "RF5C68Write", Chip: "RF5C68", Class: ClassRegValue, Length: 2},
	{Opcode: OpRF5C164Write, Name: "RF5C164Write", Chip: "RF5C164", Class: ClassRegValue, Length: 2},
	{Opcode: OpPWMWrite, Name: "PWMWrite", Chip: "PWM", Class: ClassRegValue16, Length: 3},
	{Opcode: OpGameBoyDMGWrite, Name: "GameBoyDMGWrite", Chip: "GameBoyDMG", Class: ClassRegValue, Length: 2},
	{Opcode: OpNESAPUWrite, Name: "NESAPUWrite", Chip: "NESAPU", Class: ClassRegValue, Length: 2},
	{Opcode: OpMultiPCMWrite, Name: "MultiPCMWrite", Chip: "MultiPCM", Class: ClassRegValue, Length: 2},
	{Opcode: OpUPD7759Write, Name: "UPD7759Write", Chip: "uPD7759", Class: ClassRegValue, Length: 2},
	{Opcode: OpOKIM6258Write, Name: "OKIM6258Write", Chip: "OKIM6258", Class: ClassRegValue, Length: 2},
	{Opcode: OpOKIM6295Write, Name: "OKIM6295Write", Chip: "OKIM6295", Class: ClassRegValue, Length: 2},
	{Opcode: OpHuC6280Write, Name: "HuC6280Write", Chip: "HuC6280", Class: ClassRegValue, Length: 2},
	{Opcode: OpK053260Write, Name: "K053260Write", Chip: "K053260", Class: ClassRegValue, Length: 2},
	{Opcode: OpPokeyWrite, Name: "PokeyWrite", Chip: "Pokey", Class: ClassRegValue, Length: 2},
	{Opcode: OpWonderSwanWrite, Name: "WonderSwanWrite", Chip: "WonderSwan", Class: ClassRegValue, Length: 2},
	{Opcode: OpSAA1099Write, Name: "SAA1099Write", Chip: "SAA1099", Class: ClassRegValue, Length: 2},
	{Opcode: OpES5506Write, Name: "ES5506Write", Chip: "ES5506", Class: ClassRegValue, Length: 2},
	{Opcode: OpGA20Write, Name: "GA20Write", Chip: "GA20", Class: ClassRegValue, Length: 2},

	{Opcode: OpSegaPCMWrite, Name: "SegaPCMWrite", Chip: "SegaPCM", Class: ClassOffset16Value, Length: 3},
	{Opcode: OpRAMWriteOffset, Name: "RF5C68WriteOffset", Chip: "RF5C68", Class: ClassOffset16Value, Length: 3},
	{Opcode: OpMultiPCMSetBank, Name: "MultiPCMSetBank", Chip: "MultiPCM", Class: ClassChannelOffset16, Length: 3},
	{Opcode: OpQSoundWrite, Name: "QSoundWrite", Chip: "QSound", Class: ClassValue16BEReg, Length: 3},
	{Opcode: OpSCSPWrite, Name: "SCSPWrite", Chip: "SCSP", Class: ClassOffset16BEValue, Length: 3},
	{Opcode: OpWonderSwanWrite16, Name: "WonderSwanWrite16", Chip: "WonderSwan", Class: ClassOffset16BEValue, Length: 3},
	{Opcode: OpVSUWrite, Name: "VSUWrite", Chip: "VSU", Class: ClassOffset16BEValue, Length: 3},
	{Opcode: OpX1010Write, Name: "X1010Write", Chip: "X1-010", Class: ClassOffset16BEValue, Length: 3},

	{Opcode: OpYMF278BWrite, Name: "YMF278BWrite", Chip: "YMF278B", Class: ClassPortRegValue, Length: 3},
	{Opcode: OpYMF271Write, Name: "YMF271Write", Chip: "YMF271", Class: ClassPortRegValue, Length: 3},
	{Opcode: OpSCC1Write, Name: "SCC1Write", Chip: "SCC1", Class: ClassPortRegValue, Length: 3},
	{Opcode: OpK054539Write, Name: "K054539Write", Chip: "K054539", Class: ClassReg16Value, Length: 3},
	{Opcode: OpC140Write, Name: "C140Write", Chip: "C140", Class: ClassReg16Value, Length: 3},
	{Opcode: OpES5503Write, Name: "ES5503Write", Chip: "ES5503", Class: ClassReg16Value, Length: 3},
	{Opcode: OpES5506Write16, Name: "ES5506Write16", Chip: "ES5506", Class: ClassRegValue16, Length: 3},

	{Opcode: OpSeekPCM, Name: "SeekPCM", Chip: "YM2612", Class: ClassOffset32, Length: 4},
	{Opcode: OpC352Write, Name: "C352Write", Chip: "C352", Class: ClassReg16Value16, Length: 4},
}

// rf5c164Offset describes the encode-only variant sharing opcode 0xC1.
var rf5c164Offset = Info{
	Opcode: OpRAMWriteOffset, Name: "RF5C164WriteOffset", Chip: "RF5C164",
	Class: ClassOffset16Value, Length: 3,
}

var (
	table [256]Info
	known [256]bool
)

func init() {
	for _, info := range catalog {
		table[info.Opcode] = info
		known[info.Opcode] = true
	}
	for n := byte(0); n <= MaxNibble; n++ {
		table[OpWaitNSamplesPlus1|n] = Info{
			Opcode: OpWaitNSamplesPlus1 | n, Name: "WaitNSamplesPlus1", Class: ClassNibble,
		}
		known[OpWaitNSamplesPlus1|n] = true
		table[OpYM2612Port0Address2AWriteWait|n] = Info{
			Opcode: OpYM2612Port0Address2AWriteWait | n, Name: "YM2612Port0Address2AWriteWait",
			Chip: "YM2612", Class: ClassNibble,
		}
		known[OpYM2612Port0Address2AWriteWait|n] = true
	}
}

// Lookup returns the table entry for a wire opcode. The second result is
// false for opcodes the decoder does not recognise.
func Lookup(op byte) (Info, bool) {
	return table[op], known[op]
}

// Known reports whether op is a recognised opcode.
func Known(op byte) bool {
	return known[op]
}

// Describe returns the table entry for the variant of c. Unlike Lookup it
// tells the two 0xC1 variants apart.
func Describe(c Command) Info {
	switch c.(type) {
	case nil:
		return Info{}
	case RF5C164WriteOffset:
		return rf5c164Offset
	}
	return table[c.Opcode()]
}

// Name returns the variant name of c.
func Name(c Command) string {
	return Describe(c).Name
}

// Size returns the number of bytes c encodes to.
func Size(c Command) int {
	if db, ok := c.(DataBlock); ok {
		return 7 + len(db.Data)
	}
	info := Describe(c)
	if info.Name == "" {
		return 0
	}
	return 1 + info.Length
}
