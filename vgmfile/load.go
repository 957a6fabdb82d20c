package vgmfile

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/wippyai/vgm/errors"
)

var gzipMagic = []byte{0x1F, 0x8B}

// IsCompressed reports whether data starts with the gzip magic used by .vgz files.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// Load reads a VGM file from r, decompressing it when it is gzip wrapped.
func Load(r io.Reader) (*File, error) {
	return LoadWithOptions(r, DefaultOptions())
}

// LoadWithOptions is Load with explicit options.
func LoadWithOptions(r io.Reader, opts Options) (*File, error) {
	data, err := readAll(r, opts.MaxFileSize)
	if err != nil {
		return nil, err
	}
	return ParseWithOptions(data, opts)
}

// ReadFile loads the VGM or VGZ file at path.
func ReadFile(path string) (*File, error) {
	return ReadFileWithOptions(path, DefaultOptions())
}

// ReadFileWithOptions is ReadFile with explicit options.
func ReadFileWithOptions(path string, opts Options) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Detail("file %q not found", path).
				Cause(err).
				Build()
		}
		return nil, errors.Load("open "+path, err)
	}
	defer fh.Close()

	f, err := LoadWithOptions(fh, opts)
	if err != nil {
		return nil, err
	}
	Logger().Debug("file loaded",
		zap.String("path", path),
		zap.Int("commands", len(f.Commands)))
	return f, nil
}

// Decompress returns the contents of a .vgz file, or data unchanged when it
// is not gzip wrapped. Output is bounded by DefaultMaxFileSize.
func Decompress(data []byte) ([]byte, error) {
	return DecompressWithLimit(data, DefaultMaxFileSize)
}

// DecompressWithLimit is Decompress refusing more than limit decompressed
// bytes. A limit of 0 disables the check.
func DecompressWithLimit(data []byte, limit int64) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}
	return readAll(bytes.NewReader(data), limit)
}

// readAll returns the decompressed contents of r, refusing more than limit
// bytes when limit is positive.
func readAll(r io.Reader, limit int64) ([]byte, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Load("read", err)
	}

	var src io.Reader = br
	if IsCompressed(magic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Load("gzip header", err)
		}
		defer zr.Close()
		src = zr
		Logger().Debug("reading gzip compressed file")
	}

	if limit > 0 {
		src = io.LimitReader(src, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Load("read", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, errors.New(errors.PhaseLoad, errors.KindOverflow).
			Path("File").
			Detail("file exceeds %d bytes", limit).
			Build()
	}
	return data, nil
}

// WriteFile serializes f to path, gzip compressed when compress is set.
func (f *File) WriteFile(path string, compress bool) error {
	data, err := f.Bytes()
	if err != nil {
		return err
	}
	if compress {
		data, err = Compress(data)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "write "+path)
	}
	return nil
}

// Compress wraps data in a gzip stream, producing .vgz contents.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "gzip writer")
	}
	if _, err := zw.Write(data); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "gzip write")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "gzip close")
	}
	return buf.Bytes(), nil
}
