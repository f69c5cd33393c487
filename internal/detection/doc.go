// Package detection implements the default rectangle-candidate
// engine used by the panel locator.
//
// Candidates are found by edge and contour analysis:
//
//  1. Grayscale the image (github.com/anthonynsimon/bild).
//  2. Mark edge pixels with a simple gradient threshold. Sharp input
//     gradients keep the edge band one pixel thick, which the
//     rectangularity filter in step 5 depends on.
//  3. Group connected edge pixels into contours with an iterative
//     flood fill (8-connected).
//  4. Take each contour's corner extremes as a quadrilateral: the
//     points minimizing/maximizing x+y and x-y. Unlike a plain
//     bounding box this preserves the perspective slant of a panel
//     photographed at an angle.
//  5. Filter by area, by rectangularity (contour length against the
//     expected perimeter) and by fill/border contrast, since a
//     nutrition panel is printed high-contrast.
//
// Output coordinates are normalized to [0, 1]; candidates are sorted
// by bounding-box area, largest first.
//
// Photographs with weak edges or busy backgrounds may yield nothing
// here; the locator's secondary strategy covers that case.
package detection
