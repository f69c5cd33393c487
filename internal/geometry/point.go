// Package geometry provides point, vector and rectangle math in
// normalized image coordinates.
//
// All coordinates are expressed relative to the image dimensions:
// (0, 0) is the top-left corner and (1, 1) the bottom-right, with X
// increasing rightward and Y increasing downward. Conversion to
// absolute pixel coordinates happens only at the boundary to image
// operations, via Pixel and Rect.Pixels.
package geometry

import "math"

// Point is a 2D coordinate or displacement vector in normalized
// image space. Both components are expected to lie in [0, 1] when the
// point denotes a position; displacement vectors may be negative.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the displacement vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p with both components multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Magnitude returns the Euclidean length of p treated as a vector.
func (p Point) Magnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Angle returns the signed angle in radians between p (treated as a
// vector) and the positive horizontal axis. Positive angles point
// downward in image space, matching math.Atan2 on image coordinates.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Magnitude()
}

// SquaredDistance returns the squared Euclidean distance between p
// and q. Cheaper than Distance when only comparisons are needed.
func (p Point) SquaredDistance(q Point) float64 {
	d := p.Sub(q)
	return d.X*d.X + d.Y*d.Y
}

// Pixel converts the normalized point to absolute pixel coordinates
// for an image of the given dimensions.
func (p Point) Pixel(width, height int) (int, int) {
	return int(p.X * float64(width)), int(p.Y * float64(height))
}

// AngleDiff returns the absolute difference between two angles in
// radians, normalized to [0, π].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < -math.Pi {
		d += 2 * math.Pi
	} else if d > math.Pi {
		d -= 2 * math.Pi
	}
	return math.Abs(d)
}
