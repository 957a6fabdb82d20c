package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/vgm/command"
	"github.com/wippyai/vgm/vgmfile"
)

type subcommand struct {
	run     func(t *tool, args []string) error
	flags   func(fs *pflag.FlagSet, t *tool)
	usage   string
	summary string
}

var subcommands = map[string]subcommand{
	"info": {
		run: runInfo, flags: infoFlags,
		usage: "info [flags] <file>", summary: "show header, tag and command statistics",
	},
	"dump": {
		run: runDump, flags: dumpFlags,
		usage: "dump [flags] <file>", summary: "list commands with offsets and raw bytes",
	},
	"roundtrip": {
		run: runRoundtrip, flags: roundtripFlags,
		usage: "roundtrip [flags] <file>", summary: "decode and re-encode, reporting the first difference",
	},
	"export": {
		run: runExport, flags: exportFlags,
		usage: "export [flags] <file>", summary: "write the decoded file as JSON, YAML or CBOR",
	},
	"browse": {
		run: runBrowse, flags: func(*pflag.FlagSet, *tool) {},
		usage: "browse [flags] <file>", summary: "interactive command browser",
	},
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(out)
		return nil
	}

	sub, ok := subcommands[args[0]]
	if !ok {
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	t := &tool{out: out}
	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	t.common.addFlags(fs)
	sub.flags(fs, t)

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if help, _ := fs.GetBool("help"); help {
		fmt.Fprintf(out, "Usage: vgmtool %s\n\n%s", sub.usage, fs.FlagUsages())
		return nil
	}
	if err := t.setup(fs); err != nil {
		return err
	}
	defer t.log.Sync() //nolint:errcheck

	return sub.run(t, fs.Args())
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: vgmtool <command> [flags] <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, subcommands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'vgmtool <command> --help' for command flags.")
}

// tool carries resolved configuration into subcommands.
type tool struct {
	out       io.Writer
	log       *zap.Logger
	export    exportOptions
	cfg       Config
	common    commonFlags
	dump      dumpOptions
	roundtrip roundtripOptions
	info      infoOptions
}

func (t *tool) setup(fs *pflag.FlagSet) error {
	cfg, err := t.common.resolve(fs)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	t.cfg = cfg
	t.log = logger
	command.SetLogger(logger.Named("command"))
	vgmfile.SetLogger(logger.Named("vgmfile"))
	return nil
}

func (t *tool) options() vgmfile.Options {
	opts := vgmfile.DefaultOptions()
	opts.Decode.MaxDataBlockSize = t.cfg.MaxDataBlock
	opts.Decode.MaxCommands = t.cfg.MaxCommands
	return opts
}

// load reads the single file argument.
func (t *tool) load(args []string) (*vgmfile.File, string, error) {
	if len(args) != 1 {
		return nil, "", fmt.Errorf("expected exactly one file argument, got %d", len(args))
	}
	f, err := vgmfile.ReadFileWithOptions(args[0], t.options())
	if err != nil {
		return nil, "", err
	}
	return f, args[0], nil
}
