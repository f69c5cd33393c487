// Package transform applies the geometric image operations the
// localization pipeline needs: perspective correction of a
// quadrilateral region, rotation by an arbitrary angle, and cropping.
//
// Rotation and cropping delegate to github.com/disintegration/imaging.
// Perspective correction computes a homography from the upright
// output rectangle to the source quadrilateral and inverse-maps every
// output pixel with bilinear sampling; no library in use here
// provides non-affine warps.
package transform

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Perspective extracts the quadrilateral with the given corner points
// (absolute pixel coordinates) from img and warps it into an upright
// rectangle. The output width is the longer of the top and bottom
// edges, the height the longer of the left and right edges.
func Perspective(img image.Image, topLeft, topRight, bottomLeft, bottomRight image.Point) (image.Image, error) {
	width := int(math.Round(math.Max(pixelDist(topLeft, topRight), pixelDist(bottomLeft, bottomRight))))
	height := int(math.Round(math.Max(pixelDist(topLeft, bottomLeft), pixelDist(topRight, bottomRight))))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("transform: degenerate quadrilateral (%dx%d output)", width, height)
	}

	h, err := solveHomography(
		[4]image.Point{{0, 0}, {width, 0}, {0, height}, {width, height}},
		[4]image.Point{topLeft, topRight, bottomLeft, bottomRight},
	)
	if err != nil {
		return nil, err
	}

	src := imaging.Clone(img)
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u, v := h.apply(float64(x), float64(y))
			out.SetNRGBA(x, y, bilinear(src, u, v, srcW, srcH))
		}
	}

	return out, nil
}

// Rotate rotates img counterclockwise by the given angle in radians,
// growing the canvas to fit and filling revealed corners with
// transparent pixels.
func Rotate(img image.Image, radians float64) (image.Image, error) {
	if math.IsNaN(radians) || math.IsInf(radians, 0) {
		return nil, fmt.Errorf("transform: invalid rotation angle %v", radians)
	}
	rotated := imaging.Rotate(img, radians*180/math.Pi, color.NRGBA{})
	if rotated.Bounds().Empty() {
		return nil, fmt.Errorf("transform: rotation produced an empty image")
	}
	return rotated, nil
}

// Crop extracts the given pixel region from img. The region must be
// non-empty and lie within the image bounds.
func Crop(img image.Image, r image.Rectangle) (image.Image, error) {
	bounds := img.Bounds()
	if !r.In(bounds) {
		return nil, fmt.Errorf("transform: crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf("transform: empty crop region")
	}
	return imaging.Crop(img, r), nil
}

func pixelDist(a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// homography holds the 8 coefficients of a projective mapping
// (u, v) = ((a·x + b·y + c), (d·x + e·y + f)) / (g·x + h·y + 1).
type homography struct {
	a, b, c, d, e, f, g, h float64
}

func (m homography) apply(x, y float64) (float64, float64) {
	w := m.g*x + m.h*y + 1
	return (m.a*x + m.b*y + m.c) / w, (m.d*x + m.e*y + m.f) / w
}

// solveHomography finds the projective transform mapping each dst
// corner to the corresponding src corner, by Gaussian elimination on
// the standard 8×8 system.
func solveHomography(dst, src [4]image.Point) (homography, error) {
	var m [8][9]float64
	for i := 0; i < 4; i++ {
		x := float64(dst[i].X)
		y := float64(dst[i].Y)
		u := float64(src[i].X)
		v := float64(src[i].Y)
		m[2*i] = [9]float64{x, y, 1, 0, 0, 0, -u * x, -u * y, u}
		m[2*i+1] = [9]float64{0, 0, 0, x, y, 1, -v * x, -v * y, v}
	}

	for col := 0; col < 8; col++ {
		// Partial pivoting
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return homography{}, fmt.Errorf("transform: singular corner configuration")
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := col + 1; row < 8; row++ {
			factor := m[row][col] / m[col][col]
			for k := col; k < 9; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	var coef [8]float64
	for row := 7; row >= 0; row-- {
		sum := m[row][8]
		for k := row + 1; k < 8; k++ {
			sum -= m[row][k] * coef[k]
		}
		coef[row] = sum / m[row][row]
	}

	return homography{
		a: coef[0], b: coef[1], c: coef[2],
		d: coef[3], e: coef[4], f: coef[5],
		g: coef[6], h: coef[7],
	}, nil
}

// bilinear samples src at the fractional position (u, v), clamping to
// the image bounds.
func bilinear(src *image.NRGBA, u, v float64, srcW, srcH int) color.NRGBA {
	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := u - float64(x0)
	fy := v - float64(y0)

	clampX := func(x int) int {
		if x < 0 {
			return 0
		}
		if x >= srcW {
			return srcW - 1
		}
		return x
	}
	clampY := func(y int) int {
		if y < 0 {
			return 0
		}
		if y >= srcH {
			return srcH - 1
		}
		return y
	}

	c00 := src.NRGBAAt(clampX(x0), clampY(y0))
	c10 := src.NRGBAAt(clampX(x0+1), clampY(y0))
	c01 := src.NRGBAAt(clampX(x0), clampY(y0+1))
	c11 := src.NRGBAAt(clampX(x0+1), clampY(y0+1))

	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-fx) + float64(b)*fx
		bot := float64(c)*(1-fx) + float64(d)*fx
		return uint8(math.Round(top*(1-fy) + bot*fy))
	}

	return color.NRGBA{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
		A: mix(c00.A, c10.A, c01.A, c11.A),
	}
}
