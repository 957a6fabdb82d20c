// Package vgm reads and writes VGM chip-music files.
//
// A VGM file is a header, a stream of commands that write sound chip
// registers and wait for a number of samples at 44100 Hz, and an optional
// GD3 metadata tag. The command stream is the core of the format: each
// command is a one-byte opcode followed by a fixed number of operand bytes
// that depends on the opcode, except for data blocks which carry their own
// length.
//
// # Packages
//
//	vgm/               Convenience entry points and logger wiring
//	├── command/       Command catalog, opcode table, stream decoder and encoder
//	├── vgmfile/       Header, GD3 tag, whole-file parse and serialize, .vgz
//	├── errors/        Structured error types
//	└── cmd/vgmtool/   Command-line inspector
//
// # Quick Start
//
// Load a file and walk its commands:
//
//	f, err := vgm.ReadFile("song.vgz")
//	if err != nil {
//		return err
//	}
//	for _, c := range f.Commands {
//		fmt.Println(command.Format(c))
//	}
//
// Decode and re-encode a bare command stream:
//
//	cmds, n, err := vgm.DecodeCommands(stream)
//	out, err := vgm.EncodeCommands(append(cmds, command.EndOfSoundData{}))
//
// Decoding followed by encoding reproduces the input bytes exactly for every
// recognised opcode.
//
// # Errors
//
// All packages return *errors.Error values carrying the processing phase,
// the error kind, the byte offset and the offending value. Use errors.Is with
// the sentinels in package command, or errors.As to inspect the details.
package vgm
