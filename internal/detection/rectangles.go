package detection

import (
	"context"
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/KaiserWu/NutritionKit/internal/geometry"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// Engine detects quadrilateral panel candidates by contour analysis.
// The zero value is not usable; construct with NewEngine.
type Engine struct {
	// MinArea is the minimum candidate bounding-box area in square
	// pixels. Smaller contours are treated as noise.
	MinArea int

	// MinRectScore is the minimum rectangularity (0 to 1) comparing
	// contour length to the expected rectangle perimeter.
	MinRectScore float64

	// MinContrast is the minimum CIE Lab distance between the color
	// sampled at the candidate's center and at its top-left corner.
	MinContrast float64

	// EdgeThreshold is the grayscale gradient magnitude above which a
	// pixel counts as an edge.
	EdgeThreshold float64
}

// NewEngine returns an engine with defaults tuned for product photos.
func NewEngine() *Engine {
	return &Engine{
		MinArea:       2500,
		MinRectScore:  0.4,
		MinContrast:   0.1,
		EdgeThreshold: 30,
	}
}

var _ vision.RectangleEngine = (*Engine)(nil)

// DetectRectangles finds quadrilateral candidates in img, sorted by
// bounding-box area descending.
func (e *Engine) DetectRectangles(ctx context.Context, img image.Image, o vision.Orientation) ([]vision.RectangleCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img = vision.Upright(img, o)
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	// No pre-blur: the rectangularity score compares contour length
	// to the expected perimeter, which requires the one-pixel edge
	// band a sharp gradient produces. Blurring widens the band and
	// inflates every contour past the rectangularity cutoff.
	gray := effect.Grayscale(img)

	edges := e.detectEdges(gray, width, height)
	contours := findContours(edges, width, height)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type scored struct {
		cand vision.RectangleCandidate
		area int
	}
	candidates := make([]scored, 0, len(contours))

	for _, contour := range contours {
		if len(contour) < 4 {
			continue
		}

		tl, tr, bl, br := cornerExtremes(contour)

		minX := min(tl.X, bl.X)
		maxX := max(tr.X, br.X)
		minY := min(tl.Y, tr.Y)
		maxY := max(bl.Y, br.Y)
		area := (maxX - minX) * (maxY - minY)
		if area < e.MinArea {
			continue
		}

		expectedPerimeter := 2 * ((maxX - minX) + (maxY - minY))
		rectScore := 1.0 - math.Abs(float64(len(contour)-expectedPerimeter))/float64(expectedPerimeter)
		if rectScore < e.MinRectScore {
			continue
		}

		if e.contrast(img, bounds, minX, minY, maxX, maxY) < e.MinContrast {
			continue
		}

		candidates = append(candidates, scored{
			cand: vision.RectangleCandidate{
				TopLeft:     normalize(tl, width, height),
				TopRight:    normalize(tr, width, height),
				BottomLeft:  normalize(bl, width, height),
				BottomRight: normalize(br, width, height),
			},
			area: area,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].area > candidates[j].area
	})

	out := make([]vision.RectangleCandidate, len(candidates))
	for i, s := range candidates {
		out[i] = s.cand
	}
	return out, nil
}

// detectEdges marks pixels whose grayscale gradient to the right or
// downward neighbor exceeds the threshold. Border pixels are never
// edges.
func (e *Engine) detectEdges(gray *image.RGBA, width, height int) [][]bool {
	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			c := float64(gray.RGBAAt(x, y).R)
			dx := math.Abs(c - float64(gray.RGBAAt(x+1, y).R))
			dy := math.Abs(c - float64(gray.RGBAAt(x, y+1).R))
			if dx > e.EdgeThreshold || dy > e.EdgeThreshold {
				edges[y][x] = true
			}
		}
	}
	return edges
}

// findContours groups connected edge pixels into contours using
// 8-connected flood fill. Contours under 10 pixels are noise.
func findContours(edges [][]bool, width, height int) [][]image.Point {
	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	var contours [][]image.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}
			contour := floodFill(edges, visited, x, y, width, height)
			if len(contour) >= 10 {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// floodFill collects the connected component of edge pixels starting
// at (startX, startY). Iterative with an explicit stack so large
// contours cannot overflow the goroutine stack.
func floodFill(edges, visited [][]bool, startX, startY, width, height int) []image.Point {
	var contour []image.Point
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return contour
}

// cornerExtremes picks the contour points that best approximate the
// four corners of a (possibly perspective-slanted) quadrilateral:
// top-left minimizes x+y, bottom-right maximizes it, top-right
// maximizes x-y and bottom-left minimizes it.
func cornerExtremes(contour []image.Point) (tl, tr, bl, br image.Point) {
	tl, tr, bl, br = contour[0], contour[0], contour[0], contour[0]
	for _, p := range contour {
		if p.X+p.Y < tl.X+tl.Y {
			tl = p
		}
		if p.X+p.Y > br.X+br.Y {
			br = p
		}
		if p.X-p.Y > tr.X-tr.Y {
			tr = p
		}
		if p.X-p.Y < bl.X-bl.Y {
			bl = p
		}
	}
	return tl, tr, bl, br
}

// contrast returns the CIE Lab distance between the colors sampled at
// the candidate's center and its top-left corner. Printed panels are
// high-contrast, so a low value indicates a spurious contour.
func (e *Engine) contrast(img image.Image, bounds image.Rectangle, minX, minY, maxX, maxY int) float64 {
	centerX := (minX + maxX) / 2
	centerY := (minY + maxY) / 2

	fill, okFill := colorful.MakeColor(img.At(centerX+bounds.Min.X, centerY+bounds.Min.Y))
	border, okBorder := colorful.MakeColor(img.At(minX+bounds.Min.X, minY+bounds.Min.Y))
	if !okFill || !okBorder {
		// Fully transparent sample; keep the candidate.
		return 1
	}
	return fill.DistanceLab(border)
}

func normalize(p image.Point, width, height int) geometry.Point {
	return geometry.Point{
		X: float64(p.X) / float64(width),
		Y: float64(p.Y) / float64(height),
	}
}
