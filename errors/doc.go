// Package errors provides structured error types for the vgm library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the byte offset, the variant/field path, the offending value
// and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTruncated).
//		Path("DataBlock", "Data").
//		Offset(0x40).
//		Detail("need %d bytes", 16).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownOpcode(offset, 0xFF)
//	err := errors.Overflow(errors.PhaseEncode, path, 16, "4-bit nibble")
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind, so a bare builder result works as a sentinel:
//
//	if errors.Is(err, errors.New(errors.PhaseDecode, errors.KindTruncated).Build()) { ... }
package errors
