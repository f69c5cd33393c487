package trace

import (
	"context"
	"image"
	"math"

	"github.com/KaiserWu/NutritionKit/internal/transform"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// EstimateSkew derives the dominant text rotation, in whole degrees,
// from the given character boxes. The second return value is false
// when no angle clears the evidence and magnitude thresholds, meaning
// the image should be left as is.
func EstimateSkew(chars []vision.CharacterBox, p Params) (int, bool) {
	histogram := make(map[int]float64)
	consumed := make(ConsumedSet)

	for _, box := range chars {
		if consumed.Has(box.Center()) {
			continue
		}
		line, ok := TraceLine(box, chars, consumed, p)
		if !ok {
			continue
		}
		if line.Displacement().Magnitude() < p.MinLineSpan {
			continue
		}
		deg := int(math.Round(line.Angle() * 180 / math.Pi))
		histogram[deg]++
	}

	return dominantAngle(histogram, p)
}

// dominantAngle smooths the per-degree histogram with a sliding
// window and returns the angle with the highest windowed average.
// Only buckets that exist contribute to a window's average, so sparse
// histograms are not diluted by empty degrees.
func dominantAngle(histogram map[int]float64, p Params) (int, bool) {
	if len(histogram) == 0 {
		return 0, false
	}

	minDeg := math.MaxInt
	maxDeg := math.MinInt
	for deg := range histogram {
		if deg < minDeg {
			minDeg = deg
		}
		if deg > maxDeg {
			maxDeg = deg
		}
	}

	bestDeg := 0
	bestAvg := 0.0
	for deg := minDeg; deg <= maxDeg; deg++ {
		sum := 0.0
		buckets := 0
		for w := deg - p.SmoothingRadius; w <= deg+p.SmoothingRadius; w++ {
			if count, ok := histogram[w]; ok {
				sum += count
				buckets++
			}
		}
		if buckets == 0 {
			continue
		}
		avg := sum / float64(buckets)
		if avg > bestAvg {
			bestAvg = avg
			bestDeg = deg
		}
	}

	if bestAvg <= p.MinWindowAverage {
		return 0, false
	}
	if math.Abs(float64(bestDeg)) <= p.MinCorrectionDeg {
		return 0, false
	}
	return bestDeg, true
}

// Deskew returns img rotated so its text reads horizontally, or img
// itself when no reliable skew is found. Character detection failures
// propagate; rotation failures fall back to the original image.
func Deskew(ctx context.Context, img image.Image, engine vision.CharacterEngine, p Params) (image.Image, error) {
	chars, err := engine.DetectCharacters(ctx, img, vision.OrientationUp)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deg, ok := EstimateSkew(chars, p)
	if !ok {
		return img, nil
	}

	rotated, err := transform.Rotate(img, -float64(deg)*math.Pi/180)
	if err != nil {
		return img, nil
	}
	return rotated, nil
}
