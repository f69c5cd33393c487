package regression

import (
	"errors"
	"math"
	"testing"

	"github.com/KaiserWu/NutritionKit/internal/geometry"
)

func TestFitTwoPoints(t *testing.T) {
	model, err := Fit([]geometry.Point{{X: 0, Y: 1}, {X: 2, Y: 5}})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if math.Abs(model.Slope-2) > 1e-12 {
		t.Errorf("Slope = %v, want 2", model.Slope)
	}
	if got := model.PredictY(0); math.Abs(got-1) > 1e-12 {
		t.Errorf("PredictY(0) = %v, want 1", got)
	}
	if got := model.PredictY(2); math.Abs(got-5) > 1e-12 {
		t.Errorf("PredictY(2) = %v, want 5", got)
	}
}

func TestFitRecoversExactLine(t *testing.T) {
	// Points on y = 0.5x + 0.2 exactly; the fit must recover slope
	// and intercept and predict points on the line.
	slope, intercept := 0.5, 0.2
	var points []geometry.Point
	for _, x := range []float64{0.1, 0.2, 0.3, 0.4, 0.5} {
		points = append(points, geometry.Point{X: x, Y: slope*x + intercept})
	}

	model, err := Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if math.Abs(model.Slope-slope) > 1e-9 {
		t.Errorf("Slope = %v, want %v", model.Slope, slope)
	}
	if got := model.Intercept(); math.Abs(got-intercept) > 1e-9 {
		t.Errorf("Intercept = %v, want %v", got, intercept)
	}
	for _, p := range points {
		if got := model.PredictY(p.X); math.Abs(got-p.Y) > 1e-9 {
			t.Errorf("PredictY(%v) = %v, want %v", p.X, got, p.Y)
		}
	}
}

func TestFitNoisyPointsMeanResidualZero(t *testing.T) {
	points := []geometry.Point{
		{X: 0.1, Y: 0.31}, {X: 0.2, Y: 0.28}, {X: 0.3, Y: 0.33}, {X: 0.4, Y: 0.30},
	}
	model, err := Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Least squares guarantees residuals sum to zero.
	var residuals float64
	for _, p := range points {
		residuals += p.Y - model.PredictY(p.X)
	}
	if math.Abs(residuals) > 1e-9 {
		t.Errorf("residual sum = %v, want 0", residuals)
	}
}

func TestFitTooFewPoints(t *testing.T) {
	if _, err := Fit([]geometry.Point{{X: 1, Y: 1}}); err == nil {
		t.Error("expected error for single point")
	}
	if _, err := Fit(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestFitZeroVariance(t *testing.T) {
	_, err := Fit([]geometry.Point{{X: 0.5, Y: 0.1}, {X: 0.5, Y: 0.2}, {X: 0.5, Y: 0.3}})
	if !errors.Is(err, ErrZeroVariance) {
		t.Errorf("err = %v, want ErrZeroVariance", err)
	}
}
