// Package trace estimates the rotation skew of photographed text from
// single-character bounding boxes.
//
// The approach is purely geometric and needs no recognized text:
//
//  1. Chain character centers into approximate text lines by greedy
//     nearest-neighbor search, always extending rightward
//     (TraceLine). A shared consumed set keeps each character in at
//     most one line.
//  2. Drop chains too short to carry a reliable direction.
//  3. Bucket the signed angle of every surviving line into a
//     whole-degree histogram, smooth it with a sliding window, and
//     take the strongest angle (EstimateSkew).
//  4. Rotate the image to cancel that angle when the evidence is
//     strong enough and the angle large enough to matter (Deskew).
//
// Long chains are smoothed with a least-squares fit so a single
// misplaced character box does not bend the line; two-character
// chains use the raw centers.
package trace
