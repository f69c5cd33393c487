// Package regression implements a least-squares linear fit used to
// smooth traced character lines.
package regression

import (
	"errors"
	"fmt"

	"github.com/KaiserWu/NutritionKit/internal/geometry"
)

// ErrZeroVariance is returned by Fit when all x values coincide. The
// slope of such a point set is undefined; callers are expected to
// discard the degenerate chain.
var ErrZeroVariance = errors.New("regression: zero variance in x")

// Model is a fitted line y = Slope·(x − XMean) + YMean.
type Model struct {
	Slope float64
	XMean float64
	YMean float64
}

// Fit computes the least-squares fit of y on x over the given points.
// At least two points are required. Returns ErrZeroVariance when the
// x deviations sum to zero.
func Fit(points []geometry.Point) (*Model, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("regression: need at least 2 points, got %d", len(points))
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	xMean := sumX / n
	yMean := sumY / n

	var sumXX, sumXY float64
	for _, p := range points {
		xDev := p.X - xMean
		yDev := p.Y - yMean
		sumXX += xDev * xDev
		sumXY += xDev * yDev
	}
	if sumXX == 0 {
		return nil, ErrZeroVariance
	}

	return &Model{
		Slope: sumXY / sumXX,
		XMean: xMean,
		YMean: yMean,
	}, nil
}

// PredictY returns the fitted y value at the given x.
func (m *Model) PredictY(x float64) float64 {
	return m.Slope*(x-m.XMean) + m.YMean
}

// Intercept returns the y value of the fitted line at x = 0.
func (m *Model) Intercept() float64 {
	return m.YMean - m.Slope*m.XMean
}
