package label

import (
	"context"
	"errors"
	"image"

	"github.com/KaiserWu/NutritionKit/internal/lang"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// ErrNoLabelFound is returned by ScanNutritionLabel when no prior
// FindNutritionLabel call succeeded on the session.
var ErrNoLabelFound = errors.New("no nutrition label found")

// DetectionResult is a located panel: the cropped, upright image
// region and the rectangle that produced it.
type DetectionResult struct {
	// Image is the perspective-corrected (primary) or deskewed and
	// cropped (secondary) panel region.
	Image image.Image

	// Candidate is the originating rectangle in normalized
	// coordinates. For the secondary locator it is synthesized from
	// the accumulated keyword bounding box before margin scaling.
	Candidate vision.RectangleCandidate
}

// ParsedLabel is the structured output of the external tabular
// parser.
type ParsedLabel struct {
	// Language the panel was parsed in.
	Language lang.Language `json:"language"`

	// Fields maps recognized nutrient names to their raw values.
	Fields map[string]string `json:"fields,omitempty"`

	// Raw preserves the recognized text runs in detection order for
	// callers that post-process themselves.
	Raw []string `json:"raw,omitempty"`
}

// Parser turns accurate-mode text boxes from a located panel into a
// structured label. Implementations are external to this package.
type Parser interface {
	Parse(ctx context.Context, boxes []vision.TextBox, language lang.Language) (*ParsedLabel, error)
}

// Engines bundles the detection primitives a Detector needs.
type Engines struct {
	Rectangles vision.RectangleEngine
	Text       vision.TextEngine
	Characters vision.CharacterEngine
}
