// Package config holds the tunable parameters of the scanner and
// their defaults, with optional overrides from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KaiserWu/NutritionKit/internal/detection"
	"github.com/KaiserWu/NutritionKit/internal/label"
	"github.com/KaiserWu/NutritionKit/internal/ocr"
	"github.com/KaiserWu/NutritionKit/internal/trace"
)

// Config collects every tuning knob of the localization pipeline.
type Config struct {
	// OCRLanguages are the Tesseract language codes to recognize.
	OCRLanguages []string `yaml:"ocr_languages"`

	// FastMaxWidth caps the pixel width of fast-mode OCR inputs.
	FastMaxWidth int `yaml:"fast_max_width"`

	// MinCandidateArea is the minimum rectangle-candidate area in
	// square pixels.
	MinCandidateArea int `yaml:"min_candidate_area"`

	// MinRectScore is the minimum candidate rectangularity.
	MinRectScore float64 `yaml:"min_rect_score"`

	// MinContrast is the minimum fill/border Lab distance of a
	// candidate.
	MinContrast float64 `yaml:"min_contrast"`

	// MarginFactor scales the secondary locator's keyword box before
	// cropping.
	MarginFactor float64 `yaml:"margin_factor"`

	// Skew holds the skew estimation thresholds.
	Skew SkewConfig `yaml:"skew"`
}

// SkewConfig mirrors trace.Params for YAML overriding.
type SkewConfig struct {
	MinLineSpan       float64 `yaml:"min_line_span"`
	MaxStepDistanceSq float64 `yaml:"max_step_distance_sq"`
	MaxAngleDeviation float64 `yaml:"max_angle_deviation"`
	SmoothingRadius   int     `yaml:"smoothing_radius"`
	MinWindowAverage  float64 `yaml:"min_window_average"`
	MinCorrectionDeg  float64 `yaml:"min_correction_deg"`
}

// Default returns the standard configuration.
func Default() Config {
	tp := trace.DefaultParams()
	de := detection.NewEngine()
	oe := ocr.NewEngine()
	return Config{
		OCRLanguages:     oe.Languages,
		FastMaxWidth:     oe.FastMaxWidth,
		MinCandidateArea: de.MinArea,
		MinRectScore:     de.MinRectScore,
		MinContrast:      de.MinContrast,
		MarginFactor:     label.DefaultOptions().MarginFactor,
		Skew: SkewConfig{
			MinLineSpan:       tp.MinLineSpan,
			MaxStepDistanceSq: tp.MaxStepDistanceSq,
			MaxAngleDeviation: tp.MaxAngleDeviation,
			SmoothingRadius:   tp.SmoothingRadius,
			MinWindowAverage:  tp.MinWindowAverage,
			MinCorrectionDeg:  tp.MinCorrectionDeg,
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// TraceParams converts the skew section to trace.Params.
func (c Config) TraceParams() trace.Params {
	return trace.Params{
		MinLineSpan:       c.Skew.MinLineSpan,
		MaxStepDistanceSq: c.Skew.MaxStepDistanceSq,
		MaxAngleDeviation: c.Skew.MaxAngleDeviation,
		SmoothingRadius:   c.Skew.SmoothingRadius,
		MinWindowAverage:  c.Skew.MinWindowAverage,
		MinCorrectionDeg:  c.Skew.MinCorrectionDeg,
	}
}

// DetectionEngine builds the rectangle engine described by c.
func (c Config) DetectionEngine() *detection.Engine {
	e := detection.NewEngine()
	e.MinArea = c.MinCandidateArea
	e.MinRectScore = c.MinRectScore
	e.MinContrast = c.MinContrast
	return e
}

// OCREngine builds the Tesseract engine described by c.
func (c Config) OCREngine() *ocr.Engine {
	e := ocr.NewEngine(c.OCRLanguages...)
	e.FastMaxWidth = c.FastMaxWidth
	return e
}

// DetectorOptions builds the label detector options described by c.
func (c Config) DetectorOptions() label.Options {
	return label.Options{
		Trace:        c.TraceParams(),
		MarginFactor: c.MarginFactor,
	}
}
