package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/setanarut/satisimg"
)

const (
	defaultBlueprintPath = "output.cbp"
	defaultDecodedPath   = "input.json"
)

// Config is everything one invocation needs. File values are applied
// first, then any flag given on the command line.
type Config struct {
	satisimg.Options `yaml:",inline"`

	InputPath   string `yaml:"-"`
	DecodeInput bool   `yaml:"-"`

	OutPath     string `yaml:"out_path"`
	PreviewPath string `yaml:"preview_path"`
	PalettePath string `yaml:"palette_path"`
	Verbose     bool   `yaml:"verbose"`
}

func DefaultConfig() Config {
	return Config{Options: satisimg.DefaultOptions()}
}

// Output returns the output path, falling back to the mode's default.
func (c *Config) Output() string {
	if c.OutPath != "" {
		return c.OutPath
	}
	if c.DecodeInput {
		return defaultDecodedPath
	}
	return defaultBlueprintPath
}

// LoadConfig merges a YAML file into cfg.
func LoadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &satisimg.IOError{Op: "read", Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// parseArgs reads "<path> [flags]". Flags follow the input path, so a
// leading dash means the path is missing; use ./-name for such files.
func parseArgs(args []string) (Config, error) {
	cfg := DefaultConfig()
	if len(args) == 0 || args[0] == "" {
		return cfg, satisimg.ErrUsage
	}
	if strings.HasPrefix(args[0], "-") {
		return cfg, fmt.Errorf("%w: input path required before %s", satisimg.ErrUsage, args[0])
	}
	cfg.InputPath = args[0]

	fs := flag.NewFlagSet("satisimg", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		flags      Config
	)
	fs.StringVar(&configPath, "config", "", "")
	fs.BoolVar(&flags.DecodeInput, "decode-input", false, "")
	fs.StringVar(&flags.OutPath, "out-path", "", "")
	fs.IntVar(&flags.Colors, "colors", 0, "")
	fs.StringVar(&flags.PaletteMethod, "palette-method", "", "")
	fs.StringVar(&flags.PreviewPath, "preview", "", "")
	fs.StringVar(&flags.PalettePath, "palette-out", "", "")
	fs.BoolVar(&flags.Verbose, "verbose", false, "")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, satisimg.ErrUsage
		}
		return cfg, fmt.Errorf("%w: %v", satisimg.ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected argument %q", satisimg.ErrUsage, fs.Arg(0))
	}

	if configPath != "" {
		if err := LoadConfig(configPath, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.DecodeInput = flags.DecodeInput
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out-path":
			cfg.OutPath = flags.OutPath
		case "colors":
			cfg.Colors = flags.Colors
		case "palette-method":
			cfg.PaletteMethod = flags.PaletteMethod
		case "preview":
			cfg.PreviewPath = flags.PreviewPath
		case "palette-out":
			cfg.PalettePath = flags.PalettePath
		case "verbose":
			cfg.Verbose = flags.Verbose
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %v", satisimg.ErrUsage, err)
	}
	return cfg, nil
}

const usage = `Usage: satisimg <path-to-file> [--decode-input] [--out-path=<name>] [options]
	<path-to-file>: image to convert, or a .cbp file with --decode-input
	--decode-input: write the decoded JSON of a .cbp file (default out: input.json)
	--out-path=<name>: output file (default: output.cbp)
	--colors=<n>: reduce the image to n paint colors first (default: 0, off)
	--palette-method=<dominantcolor|kmeans>: palette extraction method
	--preview=<file.png>: also render the blueprint back to a PNG
	--palette-out=<file.png>: also save the reduced palette as a PNG strip
	--config=<file.yaml>: read defaults from a YAML file
	--verbose: debug logging
`
