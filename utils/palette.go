package utils

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/rs/zerolog/log"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the String form of a method. An empty name
// selects the dominant-color method.
func ParsePaletteMethod(name string) (PaletteMethod, error) {
	switch name {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	default:
		return 0, fmt.Errorf("unknown palette method %q (want dominantcolor or kmeans)", name)
	}
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// NearestColor returns the palette entry closest to c in CIE Lab.
// palette must not be empty.
func NearestColor(palette []colorful.Color, c colorful.Color) colorful.Color {
	return palette[nearestIndex(palette, c)]
}

func nearestIndex(palette []colorful.Color, c colorful.Color) int {
	best, bestD := 0, c.DistanceLab(palette[0])
	for i := 1; i < len(palette); i++ {
		if d := c.DistanceLab(palette[i]); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// maxSamples caps how many pixels palette extraction looks at.
const maxSamples = 12000

// sampleStep is the stride that keeps a w×h scan under maxSamples.
func sampleStep(w, h int) int {
	if w*h <= maxSamples {
		return 1
	}
	return int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
}

// visibleColors returns the sampled colors of pixels that will become beams.
func visibleColors(img image.Image) []colorful.Color {
	b := img.Bounds()
	step := sampleStep(b.Dx(), b.Dy())
	var out []colorful.Color
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			out = append(out, colorful.Color{
				R: float64(c.R) / 255,
				G: float64(c.G) / 255,
				B: float64(c.B) / 255,
			})
		}
	}
	return out
}

// visibleShare reweights candidates by the fraction of visible pixels that
// would be painted with each of them. Candidates no visible pixel snaps to,
// such as the black of a transparent background, are dropped.
func visibleShare(cands []weightedColor, visible []colorful.Color) []weightedColor {
	if len(cands) == 0 || len(visible) == 0 {
		return nil
	}
	palette := make([]colorful.Color, len(cands))
	for i, c := range cands {
		palette[i] = c.Col
	}
	counts := make([]int, len(cands))
	for _, c := range visible {
		counts[nearestIndex(palette, c)]++
	}

	out := make([]weightedColor, 0, len(cands))
	for i, n := range counts {
		if n == 0 {
			continue
		}
		out = append(out, weightedColor{Col: cands[i].Col, Weight: float64(n) / float64(len(visible))})
	}
	return out
}

// PaletteHex formats colors as #rrggbb for logging.
func PaletteHex(palette []colorful.Color) []string {
	out := make([]string, len(palette))
	for i, c := range palette {
		out[i] = c.Clamped().Hex()
	}
	return out
}

// ExtractDominantPalette asks dominantcolor for candidates, then weighs
// them by the visible pixels they cover rather than by raw pixel count.
func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	visible := visibleColors(img)
	if len(visible) == 0 {
		return nil
	}

	found := dominantcolor.FindWeight(img, max(24, k*8))
	cands := make([]weightedColor, 0, len(found)+1)
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		cands = append(cands, weightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	if len(cands) == 0 {
		cands = append(cands, weightedColor{Col: visible[0], Weight: 1})
	}
	return SelectDiverseWeightedColors(visibleShare(cands, visible), k)
}

// SelectDiverseWeightedColors greedily picks k colors, starting from the
// heaviest candidate and then favoring candidates far (in Lab) from the
// ones already picked, scaled by their weight.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := max(c.Weight, 1e-6)
		maxW = max(maxW, w)
		items = append(items, item{col: col, lab: [3]float64{l, a, b}, w: w})
	}
	k = min(k, len(items))

	selected := make([]bool, len(items))
	selectedIdx := make([]int, 0, k)

	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}
	selected[seed] = true
	selectedIdx = append(selectedIdx, seed)

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(items[i].w/maxW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

// ExtractKMeansPalette clusters the visible pixels of img. Transparent
// pixels never become beams, so they do not vote.
func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}

	dataset := make(clusters.Observations, 0, maxSamples)
	for _, c := range visibleColors(img) {
		dataset = append(dataset, clusters.Coordinates{c.R, c.G, c.B})
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Most populated clusters first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// ExtractPalette returns up to k colors sorted dark to bright. kmeans falls
// back to dominantcolor when clustering yields nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	var p []colorful.Color
	switch method {
	case PaletteMethodKMeans:
		p = ExtractKMeansPalette(img, k)
		if len(p) == 0 {
			log.Warn().Int("colors", k).Msg("kmeans returned empty palette, falling back to dominantcolor")
			p = ExtractDominantPalette(img, k)
		}
	default:
		p = ExtractDominantPalette(img, k)
	}
	SortPaletteByBrightness(p)
	return p
}
