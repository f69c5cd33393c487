package label

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/KaiserWu/NutritionKit/internal/lang"
	"github.com/KaiserWu/NutritionKit/internal/transform"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// candidateScore is the evaluation of one rectangle candidate.
type candidateScore struct {
	deskewed image.Image
	language lang.Language
	keywords int
	area     int
	viable   bool
}

// locatePrimary scores every rectangle candidate from the rectangle
// engine and picks the one whose deskewed region contains the most
// distinct panel keywords, breaking ties toward the smallest region.
// Candidates are evaluated concurrently; selection runs as a
// deterministic pass over the collected scores, so the outcome never
// depends on completion order. Returns nil when no candidate matches
// a single keyword.
func (d *Detector) locatePrimary(ctx context.Context) (*locatorResult, error) {
	candidates, err := d.engines.Rectangles.DetectRectangles(ctx, d.img, vision.OrientationUp)
	if err != nil {
		return nil, fmt.Errorf("label: rectangle detection failed: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	scores := make([]candidateScore, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			score, err := d.scoreCandidate(gctx, cand)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bestIdx := -1
	for i, s := range scores {
		if !s.viable || s.keywords < 1 {
			continue
		}
		if bestIdx < 0 ||
			s.keywords > scores[bestIdx].keywords ||
			(s.keywords == scores[bestIdx].keywords && s.area < scores[bestIdx].area) {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil, nil
	}

	return &locatorResult{
		result: &DetectionResult{
			Image:     scores[bestIdx].deskewed,
			Candidate: candidates[bestIdx],
		},
		language: scores[bestIdx].language,
	}, nil
}

// scoreCandidate perspective-corrects one candidate and counts the
// distinct panel keywords in its fast-pass text. The language is
// determined per candidate and stays local until the winner is
// chosen. A failed perspective correction marks the candidate
// non-viable rather than failing the whole pass.
func (d *Detector) scoreCandidate(ctx context.Context, cand vision.RectangleCandidate) (candidateScore, error) {
	bounds := d.img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	tlX, tlY := cand.TopLeft.Pixel(w, h)
	trX, trY := cand.TopRight.Pixel(w, h)
	blX, blY := cand.BottomLeft.Pixel(w, h)
	brX, brY := cand.BottomRight.Pixel(w, h)

	deskewed, err := transform.Perspective(d.img,
		image.Pt(tlX, tlY), image.Pt(trX, trY),
		image.Pt(blX, blY), image.Pt(brX, brY))
	if err != nil {
		return candidateScore{}, nil
	}

	boxes, err := d.engines.Text.DetectText(ctx, deskewed, vision.OrientationUp, vision.AccuracyFast)
	if err != nil {
		return candidateScore{}, fmt.Errorf("label: candidate text pass failed: %w", err)
	}

	texts := make([]string, len(boxes))
	for i, b := range boxes {
		texts[i] = b.Text
	}
	language := lang.Detect(texts)

	db := deskewed.Bounds()
	return candidateScore{
		deskewed: deskewed,
		language: language,
		keywords: language.CountDistinct(texts),
		area:     db.Dx() * db.Dy(),
		viable:   true,
	}, nil
}
