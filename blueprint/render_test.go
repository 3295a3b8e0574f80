package blueprint

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	doc := sampleDocument()
	doc.Objects = append(doc.Objects,
		// outside the extents
		NewPaintedBeam(1, [3]float64{0, 900, 0}, LinearColor{G: 1, A: 1}),
	)

	img := Render(doc)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 128, G: 51, A: 255}, img.NRGBAAt(1, 0))
}

func TestRenderEmpty(t *testing.T) {
	doc := NewDocument()
	doc.MaxX, doc.MaxY = 300, 200

	img := Render(doc)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(2, 1))
}
