package vgmfile

import (
	"bytes"
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/vgm/errors"
)

// GD3Ident is the magic at the start of a GD3 tag.
const GD3Ident = "Gd3 "

// GD3Version is the only tag version in use.
const GD3Version = 0x100

const gd3HeaderSize = 12

// GD3 is the track metadata tag stored after the command stream. Every field
// is stored as a NUL-terminated UTF-16LE string, in declaration order.
type GD3 struct {
	TrackEN     string
	TrackJP     string
	GameEN      string
	GameJP      string
	SystemEN    string
	SystemJP    string
	AuthorEN    string
	AuthorJP    string
	ReleaseDate string
	Converter   string
	Notes       string
	Version     uint32
}

// Field is a named GD3 string.
type Field struct {
	Name  string
	Value string
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func (g *GD3) fields() []*string {
	return []*string{
		&g.TrackEN, &g.TrackJP, &g.GameEN, &g.GameJP, &g.SystemEN, &g.SystemJP,
		&g.AuthorEN, &g.AuthorJP, &g.ReleaseDate, &g.Converter, &g.Notes,
	}
}

var fieldNames = []string{
	"Track", "Track (JP)", "Game", "Game (JP)", "System", "System (JP)",
	"Author", "Author (JP)", "Release date", "Converter", "Notes",
}

// Fields returns the tag strings with display names, in tag order.
func (g *GD3) Fields() []Field {
	out := make([]Field, 0, len(fieldNames))
	for i, p := range g.fields() {
		out = append(out, Field{Name: fieldNames[i], Value: *p})
	}
	return out
}

// ParseGD3 reads a GD3 tag at the start of data and reports the bytes it
// occupied. base is the absolute offset of data, used in errors.
func ParseGD3(data []byte, base int) (*GD3, int, error) {
	if len(data) < gd3HeaderSize {
		return nil, 0, errors.Truncated(errors.PhaseParse, []string{"GD3"}, base, nil)
	}
	if !bytes.Equal(data[:4], []byte(GD3Ident)) {
		return nil, 0, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Path("GD3", "Ident").
			Offset(base).
			Value(string(data[:4])).
			Detail("bad identifier %q", data[:4]).
			Build()
	}

	g := &GD3{Version: binary.LittleEndian.Uint32(data[4:])}
	size := binary.LittleEndian.Uint32(data[8:])
	if uint64(size) > uint64(len(data)-gd3HeaderSize) {
		return nil, 0, errors.Truncated(errors.PhaseParse, []string{"GD3", "Length"}, base+8, nil)
	}
	body := data[gd3HeaderSize : gd3HeaderSize+int(size)]

	dec := utf16le.NewDecoder()
	pos := 0
	for i, p := range g.fields() {
		end := findNUL16(body[pos:])
		if end < 0 {
			return nil, 0, errors.New(errors.PhaseParse, errors.KindTruncated).
				Path("GD3", fieldNames[i]).
				Offset(base + gd3HeaderSize + pos).
				Detail("string is not terminated").
				Build()
		}
		s, err := dec.Bytes(body[pos : pos+end])
		if err != nil {
			return nil, 0, errors.ParseFailed("GD3 "+fieldNames[i], base+gd3HeaderSize+pos, err)
		}
		*p = string(s)
		pos += end + 2
	}
	if pos != len(body) {
		Logger().Debug("GD3 tag has trailing bytes")
	}

	return g, gd3HeaderSize + int(size), nil
}

// findNUL16 returns the byte index of the first aligned 16-bit zero, or -1.
func findNUL16(b []byte) int {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}
	return -1
}

// Bytes encodes the tag. A zero Version is written as GD3Version.
func (g *GD3) Bytes() ([]byte, error) {
	enc := utf16le.NewEncoder()
	var body bytes.Buffer
	for i, p := range g.fields() {
		if strings.ContainsRune(*p, 0) {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Path("GD3", fieldNames[i]).
				Detail("string contains NUL").
				Build()
		}
		s, err := enc.Bytes([]byte(*p))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, "GD3 "+fieldNames[i])
		}
		body.Write(s)
		body.Write([]byte{0, 0})
	}

	version := g.Version
	if version == 0 {
		version = GD3Version
	}
	out := make([]byte, gd3HeaderSize, gd3HeaderSize+body.Len())
	copy(out, GD3Ident)
	binary.LittleEndian.PutUint32(out[4:], version)
	binary.LittleEndian.PutUint32(out[8:], uint32(body.Len()))
	return append(out, body.Bytes()...), nil
}
