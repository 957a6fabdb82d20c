package main

import (
	"encoding/hex"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/wippyai/vgm/command"
	"github.com/wippyai/vgm/vgmfile"
)

type infoOptions struct {
	noTag    bool
	noDigest bool
}

func infoFlags(fs *pflag.FlagSet, t *tool) {
	fs.BoolVar(&t.info.noTag, "no-tag", false, "omit the GD3 tag")
	fs.BoolVar(&t.info.noDigest, "no-digest", false, "omit the command stream digest")
}

func runInfo(t *tool, args []string) error {
	f, path, err := t.load(args)
	if err != nil {
		return err
	}

	stream, err := command.Encode(f.Commands)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	stats := command.Summarize(f.Commands)
	h := &f.Header

	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "File:\t%s\n", path)
	fmt.Fprintf(w, "Version:\t%s\n", h.VersionString())
	fmt.Fprintf(w, "Size:\t%s (header %s, stream %s)\n",
		humanize.IBytes(uint64(h.EOF())),
		humanize.IBytes(uint64(h.DataStart())),
		humanize.IBytes(uint64(len(stream)+1)))
	fmt.Fprintf(w, "Duration:\t%s\n", h.Duration().Round(10*time.Millisecond))
	if f.LoopIndex >= 0 {
		fmt.Fprintf(w, "Loop:\t%s from command %d\n", h.LoopDuration().Round(10*time.Millisecond), f.LoopIndex)
	}
	if h.Rate != 0 {
		fmt.Fprintf(w, "Rate:\t%d Hz\n", h.Rate)
	}
	for _, c := range h.Clocks() {
		dual := ""
		if c.Dual {
			dual = " x2"
		}
		fmt.Fprintf(w, "Clock:\t%s %.4f MHz%s\n", c.Chip, float64(c.Clock)/1e6, dual)
	}
	fmt.Fprintf(w, "Commands:\t%s\n", humanize.Comma(int64(stats.Commands)))
	fmt.Fprintf(w, "Samples:\t%s\n", humanize.Comma(int64(stats.Samples)))
	if stats.DataBlocks > 0 {
		fmt.Fprintf(w, "Data blocks:\t%d (%s)\n", stats.DataBlocks, humanize.IBytes(stats.DataBytes))
	}
	if !t.info.noDigest {
		sum := blake3.Sum256(stream)
		fmt.Fprintf(w, "Digest:\tblake3:%s\n", hex.EncodeToString(sum[:]))
	}

	if chips := stats.Chips(); len(chips) > 0 {
		fmt.Fprintln(w, "Writes:")
		for _, chip := range chips {
			fmt.Fprintf(w, "  %s\t%s\n", chip, humanize.Comma(int64(stats.ByChip[chip])))
		}
	}

	if f.GD3 != nil && !t.info.noTag {
		fmt.Fprintln(w, "Tag:")
		for _, field := range f.GD3.Fields() {
			if field.Value != "" {
				fmt.Fprintf(w, "  %s\t%s\n", field.Name, field.Value)
			}
		}
	}

	if err := f.Validate(); err != nil {
		fmt.Fprintf(w, "Warnings:\t%v\n", err)
	}
	return w.Flush()
}

// streamOffsets returns the absolute offset of each command in f.
func streamOffsets(f *vgmfile.File) []int {
	offsets := make([]int, len(f.Commands))
	off := f.Header.DataStart()
	for i, c := range f.Commands {
		offsets[i] = off
		off += command.Size(c)
	}
	return offsets
}
