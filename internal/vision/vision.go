// Package vision defines the detection primitives the localization
// pipeline consumes.
//
// The core treats rectangle, text and character detection as black
// boxes behind the engine interfaces below. Default implementations
// live in internal/detection (contour-based rectangle candidates) and
// internal/ocr (Tesseract-backed text and character boxes), but any
// engine satisfying these interfaces can be wired into a detector.
//
// All box coordinates are normalized to [0, 1] relative to the
// dimensions of the image handed to the engine, never pixel-absolute.
package vision

import (
	"context"
	"image"

	"github.com/KaiserWu/NutritionKit/internal/geometry"
)

// Orientation describes how an image should be interpreted before
// detection runs.
type Orientation int

const (
	// OrientationUp is the image's default, upright orientation.
	OrientationUp Orientation = iota
	// OrientationRight means the image is rotated 90° clockwise.
	OrientationRight
	// OrientationDown means the image is upside down.
	OrientationDown
	// OrientationLeft means the image is rotated 90° counterclockwise.
	OrientationLeft
)

// Accuracy selects the speed/quality trade-off of a text detection
// pass. Fast passes are used while scoring candidate regions;
// accurate passes run once on the final located label.
type Accuracy int

const (
	AccuracyFast Accuracy = iota
	AccuracyAccurate
)

// RectangleCandidate is a quadrilateral region that may contain a
// nutrition panel. Corner order is fixed by the producing engine and
// never re-sorted by the pipeline.
type RectangleCandidate struct {
	TopLeft     geometry.Point `json:"top_left"`
	TopRight    geometry.Point `json:"top_right"`
	BottomLeft  geometry.Point `json:"bottom_left"`
	BottomRight geometry.Point `json:"bottom_right"`
}

// TextBox is a recognized run of text and its bounding box.
type TextBox struct {
	TopLeft     geometry.Point `json:"top_left"`
	BottomRight geometry.Point `json:"bottom_right"`
	Text        string         `json:"text"`
}

// CharacterBox is the bounding box of a single recognized glyph.
type CharacterBox struct {
	TopLeft     geometry.Point `json:"top_left"`
	BottomRight geometry.Point `json:"bottom_right"`
}

// Center returns the midpoint of the character's bounding box.
func (b CharacterBox) Center() geometry.Point {
	return geometry.Point{
		X: (b.TopLeft.X + b.BottomRight.X) / 2,
		Y: (b.TopLeft.Y + b.BottomRight.Y) / 2,
	}
}

// RectangleEngine detects quadrilateral panel candidates.
type RectangleEngine interface {
	DetectRectangles(ctx context.Context, img image.Image, o Orientation) ([]RectangleCandidate, error)
}

// TextEngine detects text runs with recognized content.
type TextEngine interface {
	DetectText(ctx context.Context, img image.Image, o Orientation, acc Accuracy) ([]TextBox, error)
}

// CharacterEngine detects individual glyph bounding boxes.
type CharacterEngine interface {
	DetectCharacters(ctx context.Context, img image.Image, o Orientation) ([]CharacterBox, error)
}
