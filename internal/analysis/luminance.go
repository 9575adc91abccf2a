package analysis

import (
	"image"
	"math"

	"skincare-advisor/internal/models"
)

// sampleGrid bounds the number of pixels read per axis; larger photos are
// sampled on a regular grid.
const sampleGrid = 224

// imageStats are brightness statistics in [0, 1].
type imageStats struct {
	meanLuma float64
	contrast float64 // standard deviation of luma
	redness  float64 // mean excess of red over the green/blue average
	shine    float64 // share of near-white samples
	dark     float64 // share of near-black samples
}

func measure(img image.Image) imageStats {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return imageStats{}
	}

	stepX := max(1, w/sampleGrid)
	stepY := max(1, h/sampleGrid)

	var n, sum, sumSq, red, shine, dark float64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r, g, bl := float64(r16)/0xffff, float64(g16)/0xffff, float64(b16)/0xffff

			luma := 0.2126*r + 0.7152*g + 0.0722*bl
			sum += luma
			sumSq += luma * luma
			red += math.Max(0, r-(g+bl)/2)
			if luma > 0.85 {
				shine++
			}
			if luma < 0.25 {
				dark++
			}
			n++
		}
	}

	mean := sum / n
	return imageStats{
		meanLuma: mean,
		contrast: math.Sqrt(math.Max(0, sumSq/n-mean*mean)),
		redness:  red / n,
		shine:    shine / n,
		dark:     dark / n,
	}
}

// LuminanceModel is a deterministic stand-in for a trained model. It reads
// brightness statistics only, so equal photos always yield equal results.
type LuminanceModel struct{}

func (LuminanceModel) Classify(img image.Image) string {
	s := measure(img)
	switch {
	case s.redness > 0.15:
		return models.SkinTypeSensitive
	case s.shine > 0.25:
		return models.SkinTypeOily
	case s.shine > 0.1:
		return models.SkinTypeCombination
	case s.contrast > 0.2:
		return models.SkinTypeDry
	default:
		return models.SkinTypeNormal
	}
}

func (LuminanceModel) Detect(img image.Image) []Detection {
	s := measure(img)
	return []Detection{
		{"acne", clamp(s.redness*2 + s.contrast)},
		{"wrinkles", clamp(s.contrast * 2)},
		{"dark_spots", clamp(s.dark * 1.5)},
		{"redness", clamp(s.redness * 3)},
		{"dryness", clamp(s.contrast * 2.5)},
		{"oiliness", clamp(s.shine * 2)},
		{"large_pores", clamp(s.shine + s.contrast)},
		{"dullness", clamp((0.6 - s.meanLuma) * 2)},
		{"dark_circles", clamp(s.dark * 1.2)},
		{"sensitivity", clamp(s.redness * 2.5)},
	}
}

func clamp(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
