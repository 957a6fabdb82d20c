package command

// Command stream opcodes. Each constant is the first byte of a record on the wire.
const (
	OpAY8910StereoMask  byte = 0x31
	OpGameGearPSGStereo byte = 0x4F
	OpPSGWrite          byte = 0x50 // SN76489
	OpYM2413Write       byte = 0x51
	OpYM2612Port0Write  byte = 0x52
	OpYM2612Port1Write  byte = 0x53
	OpYM2151Write       byte = 0x54
	OpYM2203Write       byte = 0x55
	OpYM2608Port0Write  byte = 0x56
	OpYM2608Port1Write  byte = 0x57
	OpYM2610Port0Write  byte = 0x58
	OpYM2610Port1Write  byte = 0x59
	OpYM3812Write       byte = 0x5A
	OpYM3526Write       byte = 0x5B
	OpY8950Write        byte = 0x5C
	OpYMZ280BWrite      byte = 0x5D
	OpYMF262Port0Write  byte = 0x5E
	OpYMF262Port1Write  byte = 0x5F

	OpWaitNSamples   byte = 0x61
	OpWait735Samples byte = 0x62 // one NTSC frame
	OpWait882Samples byte = 0x63 // one PAL frame
	OpEndOfSoundData byte = 0x66
	OpDataBlock      byte = 0x67
	OpPCMRAMWrite    byte = 0x68

	// Range opcodes carry a 4-bit count in the low nibble.
	OpWaitNSamplesPlus1             byte = 0x70 // 0x70-0x7F
	OpYM2612Port0Address2AWriteWait byte = 0x80 // 0x80-0x8F

	OpDACStreamSetup        byte = 0x90
	OpDACStreamSetData      byte = 0x91
	OpDACStreamSetFrequency byte = 0x92
	OpDACStreamStart        byte = 0x93
	OpDACStreamStop         byte = 0x94
	OpDACStreamStartFast    byte = 0x95

	OpAY8910Write     byte = 0xA0
	OpRF5C68Write     byte = 0xB0
	OpRF5C164Write    byte = 0xB1
	OpPWMWrite        byte = 0xB2
	OpGameBoyDMGWrite byte = 0xB3
	OpNESAPUWrite     byte = 0xB4
	OpMultiPCMWrite   byte = 0xB5
	OpUPD7759Write    byte = 0xB6
	OpOKIM6258Write   byte = 0xB7
	OpOKIM6295Write   byte = 0xB8
	OpHuC6280Write    byte = 0xB9
	OpK053260Write    byte = 0xBA
	OpPokeyWrite      byte = 0xBB
	OpWonderSwanWrite byte = 0xBC
	OpSAA1099Write    byte = 0xBD
	OpES5506Write     byte = 0xBE
	OpGA20Write       byte = 0xBF

	OpSegaPCMWrite byte = 0xC0
	// OpRAMWriteOffset is shared by the RF5C68 and RF5C164 offset writes.
	// Decoding always yields RF5C68WriteOffset.
	OpRAMWriteOffset    byte = 0xC1
	OpMultiPCMSetBank   byte = 0xC3
	OpQSoundWrite       byte = 0xC4
	OpSCSPWrite         byte = 0xC5
	OpWonderSwanWrite16 byte = 0xC6
	OpVSUWrite          byte = 0xC7
	OpX1010Write        byte = 0xC8

	OpYMF278BWrite  byte = 0xD0
	OpYMF271Write   byte = 0xD1
	OpSCC1Write     byte = 0xD2
	OpK054539Write  byte = 0xD3
	OpC140Write     byte = 0xD4
	OpES5503Write   byte = 0xD5
	OpES5506Write16 byte = 0xD6

	OpSeekPCM   byte = 0xE0
	OpC352Write byte = 0xE1
)

// Fixed sample counts of the frame wait opcodes.
const (
	SamplesNTSCFrame = 735
	SamplesPALFrame  = 882
)

// CompatByte follows the 0x67 and 0x68 opcodes so that old players treat the
// record as an end-of-stream marker.
const CompatByte byte = 0x66

// MaxNibble is the largest count a range opcode can carry.
const MaxNibble = 0x0F

// MaxU24 is the largest value a 24-bit PCM RAM write field can hold.
const MaxU24 = 1<<24 - 1
