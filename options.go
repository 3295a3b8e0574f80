package satisimg

import (
	"fmt"

	"github.com/setanarut/satisimg/utils"
)

type Options struct {
	// Number of paint colors to reduce the image to before mapping.
	// 0 keeps every pixel's exact color.
	// Large blueprints with hundreds of distinct colors are tedious to
	// repaint in game; 8-16 is usually enough for pixel art.
	Colors int `yaml:"colors"`
	// Palette extraction method used when Colors > 0:
	// "dominantcolor" (default) or "kmeans".
	PaletteMethod string `yaml:"palette_method"`
	// Identity of the first emitted beam. Each following beam gets the
	// previous identity minus one.
	FirstID int `yaml:"first_id"`
}

func DefaultOptions() Options {
	return Options{
		Colors:        0,
		PaletteMethod: utils.PaletteMethodDominantColor.String(),
		FirstID:       FirstID,
	}
}

func (o Options) Validate() error {
	if o.Colors < 0 {
		return fmt.Errorf("colors must be >= 0, got %d", o.Colors)
	}
	if _, err := utils.ParsePaletteMethod(o.PaletteMethod); err != nil {
		return err
	}
	if o.FirstID <= 0 {
		return fmt.Errorf("first_id must be positive, got %d", o.FirstID)
	}
	return nil
}
