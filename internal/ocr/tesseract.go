// Package ocr provides the default Tesseract-backed text and
// character engines, via github.com/otiai10/gosseract.
//
// Tesseract operates on files, so every pass saves its input to a
// temporary PNG which is removed when the pass completes. Fast-mode
// text passes downsample large images first; recognition quality
// drops a little but candidate scoring only needs keyword hits, not
// clean transcription. Character detection uses Tesseract's symbol
// iterator level, which yields one box per recognized glyph.
package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/KaiserWu/NutritionKit/internal/geometry"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// Engine runs Tesseract for text and character detection. A zero
// value is not usable; construct with NewEngine.
type Engine struct {
	// Languages are the Tesseract language codes to recognize, e.g.
	// "eng", "deu". The corresponding traineddata must be installed.
	Languages []string

	// FastMaxWidth caps the pixel width of fast-mode inputs. Wider
	// images are downsampled before recognition. Zero disables
	// downsampling.
	FastMaxWidth int
}

// NewEngine returns an engine recognizing the given Tesseract
// languages, defaulting to English.
func NewEngine(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Engine{
		Languages:    languages,
		FastMaxWidth: 1000,
	}
}

var (
	_ vision.TextEngine      = (*Engine)(nil)
	_ vision.CharacterEngine = (*Engine)(nil)
)

// DetectText recognizes word-level text boxes in img. Fast mode
// trades recognition quality for speed by downsampling large inputs;
// box coordinates are normalized, so they are comparable across
// accuracy modes.
func (e *Engine) DetectText(ctx context.Context, img image.Image, o vision.Orientation, acc vision.Accuracy) ([]vision.TextBox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	work := vision.Upright(img, o)
	if acc == vision.AccuracyFast && e.FastMaxWidth > 0 && work.Bounds().Dx() > e.FastMaxWidth {
		work = imaging.Resize(work, e.FastMaxWidth, 0, imaging.Linear)
	}

	boxes, err := e.boundingBoxes(work, gosseract.RIL_WORD)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := float64(work.Bounds().Dx())
	h := float64(work.Bounds().Dy())
	out := make([]vision.TextBox, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		out = append(out, vision.TextBox{
			TopLeft:     geometry.Point{X: float64(b.Box.Min.X) / w, Y: float64(b.Box.Min.Y) / h},
			BottomRight: geometry.Point{X: float64(b.Box.Max.X) / w, Y: float64(b.Box.Max.Y) / h},
			Text:        b.Word,
		})
	}
	return out, nil
}

// DetectCharacters recognizes single-glyph bounding boxes in img
// using Tesseract's symbol iterator level.
func (e *Engine) DetectCharacters(ctx context.Context, img image.Image, o vision.Orientation) ([]vision.CharacterBox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	work := vision.Upright(img, o)
	boxes, err := e.boundingBoxes(work, gosseract.RIL_SYMBOL)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := float64(work.Bounds().Dx())
	h := float64(work.Bounds().Dy())
	out := make([]vision.CharacterBox, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, vision.CharacterBox{
			TopLeft:     geometry.Point{X: float64(b.Box.Min.X) / w, Y: float64(b.Box.Min.Y) / h},
			BottomRight: geometry.Point{X: float64(b.Box.Max.X) / w, Y: float64(b.Box.Max.Y) / h},
		})
	}
	return out, nil
}

// boundingBoxes runs one Tesseract pass over img at the given
// iterator level.
func (e *Engine) boundingBoxes(img image.Image, level gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error) {
	path, err := saveTemp(img)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Languages...); err != nil {
		return nil, fmt.Errorf("ocr: failed to set languages %v: %w", e.Languages, err)
	}
	if err := client.SetImage(path); err != nil {
		return nil, fmt.Errorf("ocr: failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(level)
	if err != nil {
		return nil, fmt.Errorf("ocr: recognition failed: %w", err)
	}
	return boxes, nil
}

// saveTemp writes img to a temporary PNG and returns its path. The
// caller removes the file.
func saveTemp(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "nutriscan-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("ocr: failed to create temp file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("ocr: failed to encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
