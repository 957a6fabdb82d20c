package command

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// WaitSamples returns the number of samples c waits for.
func WaitSamples(c Command) uint32 {
	switch v := c.(type) {
	case WaitNSamples:
		return uint32(v.N)
	case Wait735Samples:
		return SamplesNTSCFrame
	case Wait882Samples:
		return SamplesPALFrame
	case WaitNSamplesPlus1:
		return uint32(v.N) + 1
	case YM2612Port0Address2AWriteWait:
		return uint32(v.N)
	}
	return 0
}

// Chip returns the chip family c addresses, or "" for waits and stream structure.
func Chip(c Command) string {
	return Describe(c).Chip
}

// Stats summarizes a command sequence.
type Stats struct {
	ByChip     map[string]int
	ByName     map[string]int
	Commands   int
	Samples    uint64
	DataBlocks int
	DataBytes  uint64
	Bytes      int
}

// Summarize walks cmds once and collects Stats.
func Summarize(cmds []Command) Stats {
	s := Stats{
		ByChip: make(map[string]int),
		ByName: make(map[string]int),
	}
	for _, c := range cmds {
		info := Describe(c)
		s.Commands++
		s.Samples += uint64(WaitSamples(c))
		s.Bytes += Size(c)
		s.ByName[info.Name]++
		if info.Chip != "" {
			s.ByChip[info.Chip]++
		}
		if db, ok := c.(DataBlock); ok {
			s.DataBlocks++
			s.DataBytes += uint64(len(db.Data))
		}
	}
	return s
}

// Chips returns the chip names in s sorted by descending write count.
func (s Stats) Chips() []string {
	chips := make([]string, 0, len(s.ByChip))
	for chip := range s.ByChip {
		chips = append(chips, chip)
	}
	sort.Slice(chips, func(i, j int) bool {
		if s.ByChip[chips[i]] != s.ByChip[chips[j]] {
			return s.ByChip[chips[i]] > s.ByChip[chips[j]]
		}
		return chips[i] < chips[j]
	})
	return chips
}

// Format renders c as a single line, for example
// "YM2612Port0Write Register=0x28 Value=0xf0". Data block payloads are
// summarised by length.
func Format(c Command) string {
	if c == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(Name(c))

	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Struct {
		return b.String()
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := v.Field(i)
		b.WriteByte(' ')
		b.WriteString(t.Field(i).Name)
		b.WriteByte('=')
		switch f.Kind() {
		case reflect.Slice:
			fmt.Fprintf(&b, "[%d bytes]", f.Len())
		default:
			fmt.Fprintf(&b, "0x%x", f.Uint())
		}
	}
	return b.String()
}
