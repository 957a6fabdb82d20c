package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/vgm/command"
	"github.com/wippyai/vgm/vgmfile"
)

type exportOptions struct {
	output string
}

func exportFlags(fs *pflag.FlagSet, t *tool) {
	fs.StringP("format", "f", DefaultConfig().ExportFormat, "output format: "+fmt.Sprint(exportFormats()))
	fs.StringVarP(&t.export.output, "output", "o", "", "output file (default stdout)")
}

type exportDocument struct {
	Tag       map[string]string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Version   string            `json:"version" yaml:"version"`
	Clocks    []exportClock     `json:"clocks,omitempty" yaml:"clocks,omitempty"`
	Commands  []exportCommand   `json:"commands" yaml:"commands"`
	Samples   uint32            `json:"total_samples" yaml:"total_samples"`
	LoopIndex int               `json:"loop_index" yaml:"loop_index"`
}

type exportClock struct {
	Chip  string `json:"chip" yaml:"chip"`
	Clock uint32 `json:"clock" yaml:"clock"`
	Dual  bool   `json:"dual,omitempty" yaml:"dual,omitempty"`
}

type exportCommand struct {
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
	Name   string         `json:"name" yaml:"name"`
	Chip   string         `json:"chip,omitempty" yaml:"chip,omitempty"`
	Index  int            `json:"index" yaml:"index"`
	Offset int            `json:"offset" yaml:"offset"`
	Opcode uint8          `json:"opcode" yaml:"opcode"`
}

var cborMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("vgmtool: CBOR encoder initialization failed: " + err.Error())
	}
	return mode
}()

var exporters = map[string]func(w io.Writer, doc *exportDocument) error{
	"json": func(w io.Writer, doc *exportDocument) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
	"yaml": func(w io.Writer, doc *exportDocument) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	},
	"cbor": func(w io.Writer, doc *exportDocument) error {
		return cborMode.NewEncoder(w).Encode(doc)
	},
}

func exportFormats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runExport(t *tool, args []string) (err error) {
	f, _, err := t.load(args)
	if err != nil {
		return err
	}
	doc := newExportDocument(f)

	w := t.out
	if t.export.output != "" {
		fh, err := os.Create(t.export.output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := fh.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", t.export.output, cerr)
			}
		}()
		w = fh
	}

	t.log.Debug("exporting")
	if err := exporters[t.cfg.ExportFormat](w, doc); err != nil {
		return fmt.Errorf("export %s: %w", t.cfg.ExportFormat, err)
	}
	return nil
}

func newExportDocument(f *vgmfile.File) *exportDocument {
	doc := &exportDocument{
		Version:   f.Header.VersionString(),
		Samples:   f.Header.TotalSamples,
		LoopIndex: f.LoopIndex,
		Commands:  make([]exportCommand, len(f.Commands)),
	}
	for _, c := range f.Header.Clocks() {
		doc.Clocks = append(doc.Clocks, exportClock{Chip: c.Chip, Clock: c.Clock, Dual: c.Dual})
	}
	if f.GD3 != nil {
		doc.Tag = make(map[string]string)
		for _, field := range f.GD3.Fields() {
			if field.Value != "" {
				doc.Tag[field.Name] = field.Value
			}
		}
	}

	offsets := streamOffsets(f)
	for i, c := range f.Commands {
		doc.Commands[i] = exportCommand{
			Index:  i,
			Offset: offsets[i],
			Opcode: c.Opcode(),
			Name:   command.Name(c),
			Chip:   command.Chip(c),
			Fields: commandFields(c),
		}
	}
	return doc
}

// commandFields returns the exported fields of a command by name.
func commandFields(c command.Command) map[string]any {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Struct || v.NumField() == 0 {
		return nil
	}
	fields := make(map[string]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		fields[v.Type().Field(i).Name] = v.Field(i).Interface()
	}
	return fields
}
