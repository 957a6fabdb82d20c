// Package command implements the VGM command stream codec.
//
// A VGM command stream is a sequence of records, each starting with an opcode
// byte followed by a fixed, opcode-specific number of bytes (register writes,
// waits, stream control) or, for data blocks, a declared length and payload.
// The stream ends with opcode 0x66.
//
// # Decoding
//
// Decode a whole stream from a byte slice. The end-of-stream marker is consumed
// but not returned; n includes it:
//
//	cmds, n, err := command.ParseCommands(stream)
//
// Or decode record by record from any io.ByteReader:
//
//	d := command.NewDecoder(r, command.DefaultDecodeOptions())
//	for {
//	    c, err := d.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(command.Format(c))
//	}
//
// Next returns EndOfSoundData like any other command.
//
// # Encoding
//
//	data, err := command.Encode(append(cmds, command.EndOfSoundData{}))
//
// The encoder never adds the end-of-stream marker itself. For every opcode the
// decoder recognises, Encode(decode(b)) reproduces b.
//
// # Opcode quirks
//
//	0x67, 0x68   a compatibility byte (0x66) follows the opcode; it is skipped on
//	             decode and always written as 0x66
//	0x70-0x8F    the count lives in the low nibble of the opcode
//	0xC1         shared by RF5C68WriteOffset and RF5C164WriteOffset; decoding
//	             yields RF5C68WriteOffset, 0xC2 is not recognised
//	0xC4         QSound: big-endian value before the register
//	0xC5-0xC8    big-endian 16-bit offsets
//
// # Errors
//
// Decode failures are *errors.Error values from the module's errors package
// and match ErrUnknownOpcode, ErrTruncated or ErrLimit with errors.Is. The
// offending opcode is in Error.Value and the record's absolute offset in
// Error.Offset. Decoding never skips ahead after a failure.
package command
