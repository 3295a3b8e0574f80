// Package satisimg turns raster images into Satisfactory Calculator
// blueprints made of painted beams, one beam per visible pixel.
package satisimg

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"

	"github.com/setanarut/satisimg/blueprint"
	"github.com/setanarut/satisimg/utils"
)

// FirstID is the default identity of the first beam.
const FirstID = 2147483647

// IDAllocator hands out unique, strictly decreasing beam identities.
// One allocator serves a single conversion.
type IDAllocator struct {
	next int
}

func NewIDAllocator(start int) *IDAllocator {
	return &IDAllocator{next: start}
}

func (a *IDAllocator) Next() int {
	id := a.next
	a.next--
	return id
}

// Sample returns the non-premultiplied color at (x, y), counted from the
// top-left corner of img's bounds. Pixels the image cannot supply read as
// transparent black.
func Sample(img image.Image, x, y int) color.NRGBA {
	b := img.Bounds()
	p := image.Point{X: b.Min.X + x, Y: b.Min.Y + y}
	if !p.In(b) {
		return color.NRGBA{}
	}
	c := img.At(p.X, p.Y)
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// Normalize maps 8-bit channels to [0,1] as v/255.
func Normalize(c color.NRGBA) blueprint.LinearColor {
	return blueprint.LinearColor{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// MapPixel converts one pixel to a painted beam. Fully transparent pixels
// produce nothing; every other alpha value counts as visible.
func MapPixel(x, y int, c color.NRGBA, ids *IDAllocator) (blueprint.Object, bool) {
	if c.A == 0 {
		return blueprint.Object{}, false
	}
	translation := [3]float64{0, float64(x * blueprint.UnitSize), float64(y * blueprint.UnitSize)}
	return blueprint.NewPaintedBeam(ids.Next(), translation, Normalize(c)), true
}

// SetExtents sets the document bounds to cover an image of the given size.
func SetExtents(doc *blueprint.Document, size image.Point) {
	doc.MinX = 0
	doc.MinY = 0
	doc.MaxX = float64(size.X * blueprint.UnitSize)
	doc.MaxY = float64(size.Y * blueprint.UnitSize)
}

type Builder struct {
	InputImage image.Image
	Options    Options
	// Reduced palette, empty unless Options.Colors > 0.
	Palette []colorful.Color
}

func NewBuilder(input image.Image, opt Options) *Builder {
	return &Builder{InputImage: input, Options: opt}
}

// Build scans the image row by row, top to bottom and left to right, and
// returns the resulting blueprint.
func (b *Builder) Build() *blueprint.Document {
	size := b.InputImage.Bounds().Size()
	b.Palette = nil
	if b.Options.Colors > 0 {
		method, err := utils.ParsePaletteMethod(b.Options.PaletteMethod)
		if err != nil {
			log.Warn().Err(err).Str("using", method.String()).Msg("palette method ignored")
		}
		b.Palette = utils.ExtractPalette(b.InputImage, b.Options.Colors, method)
		log.Debug().
			Int("requested", b.Options.Colors).
			Strs("palette", utils.PaletteHex(b.Palette)).
			Str("method", method.String()).
			Msg("palette extracted")
	}

	ids := NewIDAllocator(b.Options.FirstID)
	doc := blueprint.NewDocument()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			c := b.recolor(Sample(b.InputImage, x, y))
			if obj, ok := MapPixel(x, y, c, ids); ok {
				doc.Objects = append(doc.Objects, obj)
			}
		}
	}
	SetExtents(doc, size)

	log.Debug().
		Int("width", size.X).
		Int("height", size.Y).
		Int("objects", len(doc.Objects)).
		Msg("image mapped")
	return doc
}

// recolor snaps visible pixels to the reduced palette, keeping alpha.
func (b *Builder) recolor(c color.NRGBA) color.NRGBA {
	if len(b.Palette) == 0 || c.A == 0 {
		return c
	}
	src := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	r, g, bl := utils.NearestColor(b.Palette, src).RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: c.A}
}
