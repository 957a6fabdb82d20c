package vgm

import (
	"go.uber.org/zap"

	"github.com/wippyai/vgm/command"
	"github.com/wippyai/vgm/vgmfile"
)

// ReadFile loads a .vgm or gzip-compressed .vgz file.
func ReadFile(path string) (*vgmfile.File, error) {
	return vgmfile.ReadFile(path)
}

// Parse parses a file held in memory, compressed or not.
func Parse(data []byte) (*vgmfile.File, error) {
	data, err := vgmfile.Decompress(data)
	if err != nil {
		return nil, err
	}
	return vgmfile.Parse(data)
}

// DecodeCommands decodes a command stream up to its end-of-stream marker. The
// marker is not returned; the byte count includes it.
func DecodeCommands(data []byte) ([]command.Command, int, error) {
	return command.ParseCommands(data)
}

// EncodeCommands encodes commands without appending an end-of-stream marker.
func EncodeCommands(cmds []command.Command) ([]byte, error) {
	return command.Encode(cmds)
}

// SetLogger installs l in every package that logs.
// A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	command.SetLogger(l.Named("command"))
	vgmfile.SetLogger(l.Named("vgmfile"))
}
