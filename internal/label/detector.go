package label

import (
	"context"
	"fmt"
	"image"

	"github.com/KaiserWu/NutritionKit/internal/lang"
	"github.com/KaiserWu/NutritionKit/internal/trace"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// Options tunes a detection session.
type Options struct {
	// Trace holds the skew estimation thresholds.
	Trace trace.Params

	// MarginFactor scales the secondary locator's accumulated
	// keyword box before cropping, to include a little context
	// around the panel.
	MarginFactor float64
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		Trace:        trace.DefaultParams(),
		MarginFactor: 1.1,
	}
}

// Detector is a single-use localization session over one source
// image. It is not safe for concurrent use; each image gets its own
// Detector.
type Detector struct {
	img     image.Image
	engines Engines
	opts    Options

	// Session state, set exactly once by a successful find.
	located    bool
	language   lang.Language
	labelImage image.Image
}

// NewDetector creates a detection session for the given image. The
// image is fixed for the lifetime of the session.
func NewDetector(img image.Image, engines Engines, opts Options) *Detector {
	if opts.MarginFactor == 0 {
		opts = DefaultOptions()
	}
	return &Detector{img: img, engines: engines, opts: opts}
}

// Language returns the label language determined by a successful
// find. Meaningful only after FindNutritionLabel returned a result.
func (d *Detector) Language() lang.Language {
	return d.language
}

// locatorResult is what a strategy yields on success: the detection
// outcome plus the language that scored it.
type locatorResult struct {
	result   *DetectionResult
	language lang.Language
}

// FindNutritionLabel tries each localization strategy in order and
// returns the first hit, or (nil, nil) when no strategy finds a
// panel. On success the session records the cropped panel and its
// language for a later scan. A canceled context discards any
// strategy result without mutating session state.
func (d *Detector) FindNutritionLabel(ctx context.Context) (*DetectionResult, error) {
	strategies := []func(context.Context) (*locatorResult, error){
		d.locatePrimary,
		d.locateSecondary,
	}

	for _, locate := range strategies {
		hit, err := locate(ctx)
		if err != nil {
			return nil, err
		}
		if hit == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.located = true
		d.language = hit.language
		d.labelImage = hit.result.Image
		return hit.result, nil
	}

	return nil, nil
}

// ScanNutritionLabel runs an accurate-mode text pass over the located
// panel and delegates structured parsing to the given parser. It
// requires a prior successful FindNutritionLabel on this session and
// fails with ErrNoLabelFound otherwise.
func (d *Detector) ScanNutritionLabel(ctx context.Context, parser Parser) (*ParsedLabel, error) {
	if !d.located {
		return nil, ErrNoLabelFound
	}

	boxes, err := d.engines.Text.DetectText(ctx, d.labelImage, vision.OrientationUp, vision.AccuracyAccurate)
	if err != nil {
		return nil, fmt.Errorf("label: accurate text pass failed: %w", err)
	}

	parsed, err := parser.Parse(ctx, boxes, d.language)
	if err != nil {
		return nil, fmt.Errorf("label: parsing failed: %w", err)
	}
	return parsed, nil
}
