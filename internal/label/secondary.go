package label

import (
	"context"
	"fmt"

	"github.com/KaiserWu/NutritionKit/internal/geometry"
	"github.com/KaiserWu/NutritionKit/internal/lang"
	"github.com/KaiserWu/NutritionKit/internal/trace"
	"github.com/KaiserWu/NutritionKit/internal/transform"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// locateSecondary is the fallback when no rectangle candidate scores.
// It deskews the full image using character-line tracing, runs a fast
// text pass over the corrected image, and merges every text box that
// contains a panel keyword into one bounding region. The region,
// grown by the margin factor, becomes the panel crop. Returns nil
// when no box carries a keyword.
func (d *Detector) locateSecondary(ctx context.Context) (*locatorResult, error) {
	corrected, err := trace.Deskew(ctx, d.img, d.engines.Characters, d.opts.Trace)
	if err != nil {
		return nil, fmt.Errorf("label: skew correction failed: %w", err)
	}

	boxes, err := d.engines.Text.DetectText(ctx, corrected, vision.OrientationUp, vision.AccuracyFast)
	if err != nil {
		return nil, fmt.Errorf("label: full-image text pass failed: %w", err)
	}

	texts := make([]string, len(boxes))
	for i, b := range boxes {
		texts[i] = b.Text
	}
	language := lang.Detect(texts)

	var region geometry.Rect
	matched := false
	for _, b := range boxes {
		if !language.Matches(b.Text) {
			continue
		}
		if !matched {
			region = geometry.RectAround(b.TopLeft, b.BottomRight)
			matched = true
			continue
		}
		region = region.Include(b.TopLeft).Include(b.BottomRight)
	}
	if !matched {
		return nil, nil
	}

	bounds := corrected.Bounds()
	cropRect := region.
		ScaleCentered(d.opts.MarginFactor).
		Clamp().
		Pixels(bounds.Dx(), bounds.Dy()).
		Add(bounds.Min)

	cropped, err := transform.Crop(corrected, cropRect)
	if err != nil {
		return nil, nil
	}

	return &locatorResult{
		result: &DetectionResult{
			Image: cropped,
			// The stored rectangle reflects the accumulated keyword
			// box before margin scaling.
			Candidate: vision.RectangleCandidate{
				TopLeft:     region.TopLeft,
				TopRight:    geometry.Point{X: region.BottomRight.X, Y: region.TopLeft.Y},
				BottomLeft:  geometry.Point{X: region.TopLeft.X, Y: region.BottomRight.Y},
				BottomRight: region.BottomRight,
			},
		},
		language: language,
	}, nil
}
