package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/wippyai/vgm/vgmfile"
)

type roundtripOptions struct {
	write    string
	compress bool
}

func roundtripFlags(fs *pflag.FlagSet, t *tool) {
	fs.StringVarP(&t.roundtrip.write, "write", "o", "", "write the re-encoded file here")
	fs.BoolVarP(&t.roundtrip.compress, "compress", "z", false, "gzip the written file")
}

func runRoundtrip(t *tool, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one file argument, got %d", len(args))
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	opts := t.options()
	data, err := vgmfile.DecompressWithLimit(raw, opts.MaxFileSize)
	if err != nil {
		return err
	}

	f, err := vgmfile.ParseWithOptions(data, opts)
	if err != nil {
		return err
	}
	out, err := f.Bytes()
	if err != nil {
		return err
	}

	if t.roundtrip.write != "" {
		if err := f.WriteFile(t.roundtrip.write, t.roundtrip.compress); err != nil {
			return err
		}
	}

	if off := firstDifference(data, out); off >= 0 {
		return fmt.Errorf("round trip differs at offset 0x%x (input %d bytes, output %d bytes)", off, len(data), len(out))
	}
	fmt.Fprintf(t.out, "%s: identical, %d commands, %d bytes\n", args[0], len(f.Commands), len(out))
	return nil
}

// firstDifference returns the first offset where a and b differ, or -1.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
