// Command satisimg converts an image into a Satisfactory Calculator
// blueprint of painted beams, or decodes a blueprint into readable JSON.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/setanarut/satisimg"
	"github.com/setanarut/satisimg/blueprint"
	"github.com/setanarut/satisimg/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	setupLogger(stderr, false)

	cfg, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, satisimg.ErrUsage) {
			if err != satisimg.ErrUsage {
				fmt.Fprintln(stderr, err)
			}
			fmt.Fprint(stderr, usage)
			return 1
		}
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}
	setupLogger(stderr, cfg.Verbose)

	var summary string
	if cfg.DecodeInput {
		summary, err = decodeBlueprint(&cfg)
	} else {
		summary, err = encodeImage(&cfg)
	}
	if err != nil {
		log.Error().Err(err).Str("input", cfg.InputPath).Msg("conversion failed")
		return 1
	}
	fmt.Fprintln(stdout, summary)
	return 0
}

func setupLogger(w io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

func encodeImage(cfg *Config) (string, error) {
	img, err := satisimg.LoadImage(cfg.InputPath)
	if err != nil {
		return "", err
	}
	size := img.Bounds().Size()
	log.Debug().Str("path", cfg.InputPath).Int("width", size.X).Int("height", size.Y).Msg("image loaded")

	b := satisimg.NewBuilder(img, cfg.Options)
	doc := b.Build()
	data, err := blueprint.Encode(doc)
	if err != nil {
		return "", err
	}

	out := cfg.Output()
	if err := satisimg.WriteFile(out, data); err != nil {
		return "", err
	}

	if cfg.PreviewPath != "" {
		if err := utils.SaveImage(blueprint.Render(doc), cfg.PreviewPath); err != nil {
			return "", &satisimg.IOError{Op: "write", Path: cfg.PreviewPath, Err: err}
		}
	}
	if cfg.PalettePath != "" {
		if len(b.Palette) == 0 {
			log.Warn().Str("path", cfg.PalettePath).Msg("no palette to save, set colors > 0")
		} else if err := utils.SavePalette(b.Palette, 64, cfg.PalettePath); err != nil {
			return "", &satisimg.IOError{Op: "write", Path: cfg.PalettePath, Err: err}
		}
	}

	return fmt.Sprintf("Wrote %d beams from a %dx%d image to %s", len(doc.Objects), size.X, size.Y, out), nil
}

func decodeBlueprint(cfg *Config) (string, error) {
	data, err := satisimg.ReadFile(cfg.InputPath)
	if err != nil {
		return "", err
	}
	payload, err := blueprint.Inflate(data)
	if err != nil {
		return "", err
	}
	pretty, err := blueprint.DumpRaw(payload)
	if err != nil {
		return "", err
	}

	out := cfg.Output()
	if err := satisimg.WriteFile(out, pretty); err != nil {
		return "", err
	}
	return fmt.Sprintf("Decoded %s to %s (%d bytes of JSON)", cfg.InputPath, out, len(pretty)), nil
}
