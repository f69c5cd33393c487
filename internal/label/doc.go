// Package label locates a nutrition-facts panel in a photographed
// product image and prepares it for text parsing.
//
// A Detector is a single-use session over one source image. Finding
// the panel tries an ordered sequence of strategies:
//
//  1. Primary: perspective-correct every rectangle candidate supplied
//     by the rectangle engine, score each by the number of distinct
//     panel keywords its text contains, and keep the best.
//  2. Secondary: deskew the full image via character-line tracing,
//     then merge every keyword-bearing text box into one bounding
//     region and crop it with a small margin.
//
// A successful find records the panel crop and its language on the
// session; ScanNutritionLabel then runs an accurate text pass over
// the crop and hands the boxes to the caller's Parser. Scanning
// before a successful find fails with ErrNoLabelFound.
//
// Engine failures always propagate to the caller unretried; locator
// strategies that simply find nothing are not errors.
package label
