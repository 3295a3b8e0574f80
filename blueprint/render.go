package blueprint

import (
	"image"
	"image/color"
	"math"
)

// Render rasterizes doc back to one pixel per painted beam, using the
// document extents for the image size. Objects without a color override or
// outside the extents are skipped.
func Render(doc *Document) *image.NRGBA {
	w := int(math.Ceil((doc.MaxX - doc.MinX) / UnitSize))
	h := int(math.Ceil((doc.MaxY - doc.MinY) / UnitSize))
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))

	for i := range doc.Objects {
		obj := &doc.Objects[i]
		c, ok := obj.PrimaryColor()
		if !ok {
			continue
		}
		x := int(math.Floor((obj.Transform.Translation[1] - doc.MinX) / UnitSize))
		y := int(math.Floor((obj.Transform.Translation[2] - doc.MinY) / UnitSize))
		if !(image.Point{X: x, Y: y}.In(img.Rect)) {
			continue
		}
		img.SetNRGBA(x, y, color.NRGBA{
			R: channel8(c.R),
			G: channel8(c.G),
			B: channel8(c.B),
			A: channel8(c.A),
		})
	}
	return img
}

func channel8(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}
