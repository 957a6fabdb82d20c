package vgmfile

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/vgm/errors"
)

func sampleGD3() *GD3 {
	return &GD3{
		TrackEN:     "Green Hill Zone",
		TrackJP:     "グリーンヒルゾーン",
		GameEN:      "Sonic the Hedgehog",
		GameJP:      "ソニック・ザ・ヘッジホッグ",
		SystemEN:    "Sega Mega Drive",
		SystemJP:    "セガメガドライブ",
		AuthorEN:    "Masato Nakamura",
		ReleaseDate: "1991/06/23",
		Converter:   "vgmtool",
		Notes:       "",
		Version:     GD3Version,
	}
}

func TestGD3RoundTrip(t *testing.T) {
	g := sampleGD3()
	data, err := g.Bytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(data, []byte(GD3Ident)) {
		t.Fatalf("missing ident: % x", data[:4])
	}

	got, n, err := ParseGD3(append(data, 0xEE, 0xEE), 0x100)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n != len(data) {
		t.Errorf("consumed %d, want %d", n, len(data))
	}
	if diff := cmp.Diff(g, got); diff != "" {
		t.Errorf("GD3 mismatch (-want +got):\n%s", diff)
	}
}

func TestGD3EmptyStrings(t *testing.T) {
	data, err := (&GD3{}).Bytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// header plus eleven 16-bit terminators
	if len(data) != gd3HeaderSize+22 {
		t.Errorf("len = %d, want %d", len(data), gd3HeaderSize+22)
	}
	got, _, err := ParseGD3(data, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Version != GD3Version {
		t.Errorf("Version = 0x%x", got.Version)
	}
}

func TestGD3Fields(t *testing.T) {
	fields := sampleGD3().Fields()
	if len(fields) != 11 {
		t.Fatalf("got %d fields", len(fields))
	}
	if fields[0].Name != "Track" || fields[0].Value != "Green Hill Zone" {
		t.Errorf("first field = %+v", fields[0])
	}
	if fields[8].Name != "Release date" {
		t.Errorf("ninth field = %+v", fields[8])
	}
}

func TestGD3Errors(t *testing.T) {
	good, err := sampleGD3().Bytes()
	if err != nil {
		t.Fatal(err)
	}

	badIdent := bytes.Clone(good)
	copy(badIdent, "Gd4 ")

	unterminated := bytes.Clone(good[:gd3HeaderSize])
	unterminated[8] = 4
	unterminated = append(unterminated, 'A', 0, 'B', 0)

	tests := []struct {
		name string
		data []byte
		kind errors.Kind
	}{
		{"short", good[:8], errors.KindTruncated},
		{"bad ident", badIdent, errors.KindInvalidData},
		{"length past end", good[:len(good)-2], errors.KindTruncated},
		{"unterminated", unterminated, errors.KindTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseGD3(tt.data, 0)
			var verr *errors.Error
			if !stderrors.As(err, &verr) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if verr.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", verr.Kind, tt.kind)
			}
		})
	}
}

func TestGD3RejectsNUL(t *testing.T) {
	_, err := (&GD3{Notes: "a\x00b"}).Bytes()
	if err == nil {
		t.Fatal("expected error")
	}
}
