// Package vgmfile reads and writes complete VGM files: the header, the
// command stream decoded by package command, and the optional GD3 tag.
//
// Files may be gzip compressed (.vgz); Load and ReadFile detect this from the
// magic bytes. Serialization recomputes the header's EOF, GD3 and loop
// offsets, so commands can be edited freely between Parse and Bytes:
//
//	f, err := vgmfile.ReadFile("song.vgz")
//	if err != nil {
//		return err
//	}
//	f.Header.Rate = 60
//	return f.WriteFile("song.vgm", false)
//
// Header fields this package does not model are kept in Header.Raw and
// written back unchanged.
package vgmfile
