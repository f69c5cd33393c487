package geometry

import "image"

// Rect is an axis-aligned rectangle in normalized image space,
// described by its top-left and bottom-right corners.
type Rect struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

// Width returns the normalized horizontal extent of r.
func (r Rect) Width() float64 {
	return r.BottomRight.X - r.TopLeft.X
}

// Height returns the normalized vertical extent of r.
func (r Rect) Height() float64 {
	return r.BottomRight.Y - r.TopLeft.Y
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{
		X: (r.TopLeft.X + r.BottomRight.X) / 2,
		Y: (r.TopLeft.Y + r.BottomRight.Y) / 2,
	}
}

// Include returns r expanded to contain p. The zero Rect should not
// be used as a starting accumulator; initialize with RectAround.
func (r Rect) Include(p Point) Rect {
	if p.X < r.TopLeft.X {
		r.TopLeft.X = p.X
	}
	if p.Y < r.TopLeft.Y {
		r.TopLeft.Y = p.Y
	}
	if p.X > r.BottomRight.X {
		r.BottomRight.X = p.X
	}
	if p.Y > r.BottomRight.Y {
		r.BottomRight.Y = p.Y
	}
	return r
}

// RectAround returns the degenerate rectangle covering exactly the
// two given corners, suitable as the seed of an accumulated bound.
func RectAround(topLeft, bottomRight Point) Rect {
	r := Rect{TopLeft: topLeft, BottomRight: topLeft}
	return r.Include(bottomRight)
}

// ScaleCentered grows (or shrinks) r by the given factor while
// keeping its center fixed. A factor of 1.1 adds a 5% margin on each
// side.
func (r Rect) ScaleCentered(factor float64) Rect {
	c := r.Center()
	halfW := r.Width() / 2 * factor
	halfH := r.Height() / 2 * factor
	return Rect{
		TopLeft:     Point{X: c.X - halfW, Y: c.Y - halfH},
		BottomRight: Point{X: c.X + halfW, Y: c.Y + halfH},
	}
}

// Clamp restricts r to the valid normalized range [0, 1] on both
// axes.
func (r Rect) Clamp() Rect {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	r.TopLeft.X = clamp(r.TopLeft.X)
	r.TopLeft.Y = clamp(r.TopLeft.Y)
	r.BottomRight.X = clamp(r.BottomRight.X)
	r.BottomRight.Y = clamp(r.BottomRight.Y)
	return r
}

// Pixels converts r to an image.Rectangle in absolute pixel
// coordinates for an image of the given dimensions.
func (r Rect) Pixels(width, height int) image.Rectangle {
	x1, y1 := r.TopLeft.Pixel(width, height)
	x2, y2 := r.BottomRight.Pixel(width, height)
	return image.Rect(x1, y1, x2, y2)
}
