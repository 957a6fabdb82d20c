package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/vgm/command"
	"github.com/wippyai/vgm/errors"
)

// Config is the tool configuration. It can be loaded from a YAML file with
// --config; command-line flags override file values.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	ExportFormat string `yaml:"export_format"`
	Color        string `yaml:"color"` // auto, always or never
	MaxCommands  int    `yaml:"max_commands"`
	MaxDataBlock uint32 `yaml:"max_data_block"`
}

// DefaultConfig returns the configuration used without a file or flags.
func DefaultConfig() Config {
	return Config{
		LogLevel:     "warn",
		ExportFormat: "json",
		Color:        "auto",
		MaxDataBlock: command.DefaultMaxDataBlockSize,
	}
}

// LoadConfig reads a YAML config file over the defaults. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read config "+path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config "+path)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, ok := exporters[c.ExportFormat]; !ok {
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("export_format %q, want one of %s", c.ExportFormat, strings.Join(exportFormats(), ", ")))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("color %q, want auto, always or never", c.Color))
	}
	if c.MaxCommands < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "max_commands must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	configPath   string
	logLevel     string
	color        string
	maxCommands  int
	maxDataBlock uint32
}

func (c *commonFlags) addFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVar(&c.logLevel, "log-level", def.LogLevel, "log level: debug, info, warn, error or off")
	fs.StringVar(&c.color, "color", def.Color, "colour output: auto, always or never")
	fs.IntVar(&c.maxCommands, "max-commands", def.MaxCommands, "reject streams with more commands (0 = no limit)")
	fs.Uint32Var(&c.maxDataBlock, "max-data-block", def.MaxDataBlock, "reject larger data blocks (0 = no limit)")
	fs.BoolP("help", "h", false, "show help")
}

// resolve merges defaults, the config file and explicitly set flags.
func (c *commonFlags) resolve(fs *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()
	if c.configPath != "" {
		var err error
		if cfg, err = LoadConfig(c.configPath); err != nil {
			return cfg, err
		}
	}

	if fs.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if fs.Changed("color") {
		cfg.Color = c.color
	}
	if fs.Changed("max-commands") {
		cfg.MaxCommands = c.maxCommands
	}
	if fs.Changed("max-data-block") {
		cfg.MaxDataBlock = c.maxDataBlock
	}
	if fs.Changed("format") {
		cfg.ExportFormat, _ = fs.GetString("format")
	}
	return cfg, cfg.Validate()
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" || s == "off" {
		return zapcore.FatalLevel + 1, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return lvl, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}
	return lvl, nil
}

// newLogger builds a stderr logger; debug gets the development encoder.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	if lvl > zapcore.FatalLevel {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
