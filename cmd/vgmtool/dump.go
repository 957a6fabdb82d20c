package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/wippyai/vgm/command"
)

const maxDumpBytes = 8

type dumpOptions struct {
	chip  string
	from  int
	limit int
}

func dumpFlags(fs *pflag.FlagSet, t *tool) {
	fs.StringVar(&t.dump.chip, "chip", "", "only show commands for this chip")
	fs.IntVar(&t.dump.from, "from", 0, "first command index")
	fs.IntVarP(&t.dump.limit, "limit", "n", 0, "maximum commands to show (0 = all)")
}

type palette struct {
	offset lipgloss.Style
	raw    lipgloss.Style
	name   lipgloss.Style
	wait   lipgloss.Style
	loop   lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{offset: plain, raw: plain, name: plain, wait: plain, loop: plain}
	}
	return palette{
		offset: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		raw:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		name:   lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		wait:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		loop:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// colorEnabled resolves the color setting against the output stream.
func colorEnabled(setting string, out io.Writer) bool {
	switch setting {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runDump(t *tool, args []string) error {
	if t.dump.from < 0 {
		return fmt.Errorf("--from must not be negative, got %d", t.dump.from)
	}
	f, _, err := t.load(args)
	if err != nil {
		return err
	}
	p := newPalette(colorEnabled(t.cfg.Color, t.out))
	offsets := streamOffsets(f)

	shown := 0
	for i := t.dump.from; i < len(f.Commands); i++ {
		c := f.Commands[i]
		if t.dump.chip != "" && !strings.EqualFold(command.Chip(c), t.dump.chip) {
			continue
		}
		if t.dump.limit > 0 && shown >= t.dump.limit {
			break
		}
		shown++

		marker := "  "
		if i == f.LoopIndex {
			marker = p.loop.Render("L ")
		}
		text := p.name.Render(command.Format(c))
		if command.WaitSamples(c) > 0 {
			text = p.wait.Render(command.Format(c))
		}
		fmt.Fprintf(t.out, "%s%s  %s  %s\n",
			marker,
			p.offset.Render(fmt.Sprintf("%08x", offsets[i])),
			p.raw.Render(fmt.Sprintf("%-*s", maxDumpBytes*3+1, rawBytes(c))),
			text)
	}
	return nil
}

// rawBytes renders the encoding of c as hex, elided past maxDumpBytes.
func rawBytes(c command.Command) string {
	b, err := command.AppendCommand(nil, c)
	if err != nil {
		return "??"
	}
	more := ""
	if len(b) > maxDumpBytes {
		b = b[:maxDumpBytes]
		more = " …"
	}
	return fmt.Sprintf("% x%s", b, more)
}
