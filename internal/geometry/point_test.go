package geometry

import (
	"math"
	"testing"
)

func TestPointVectorMath(t *testing.T) {
	p := Point{X: 0.5, Y: 0.5}
	q := Point{X: 0.2, Y: 0.1}

	sum := p.Add(q)
	if sum.X != 0.7 || sum.Y != 0.6 {
		t.Errorf("Add = %+v, want {0.7 0.6}", sum)
	}

	diff := p.Sub(q)
	if math.Abs(diff.X-0.3) > 1e-12 || math.Abs(diff.Y-0.4) > 1e-12 {
		t.Errorf("Sub = %+v, want {0.3 0.4}", diff)
	}

	// 3-4-5 triangle scaled down
	if got := diff.Magnitude(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Magnitude = %v, want 0.5", got)
	}
	if got := p.Distance(q); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Distance = %v, want 0.5", got)
	}
	if got := p.SquaredDistance(q); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("SquaredDistance = %v, want 0.25", got)
	}
}

func TestPointAngle(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"horizontal right", Point{X: 1, Y: 0}, 0},
		{"downward", Point{X: 0, Y: 1}, math.Pi / 2},
		{"diagonal", Point{X: 1, Y: 1}, math.Pi / 4},
		{"upward-right", Point{X: 1, Y: -1}, -math.Pi / 4},
	}
	for _, tt := range tests {
		if got := tt.p.Angle(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: Angle = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAngleDiffWrapsAround(t *testing.T) {
	// Angles just either side of the ±π seam are nearly identical.
	a := math.Pi - 0.01
	b := -math.Pi + 0.01
	if got := AngleDiff(a, b); math.Abs(got-0.02) > 1e-9 {
		t.Errorf("AngleDiff(%v, %v) = %v, want 0.02", a, b, got)
	}

	if got := AngleDiff(0.3, 0.1); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("AngleDiff = %v, want 0.2", got)
	}
}

func TestPointPixel(t *testing.T) {
	p := Point{X: 0.25, Y: 0.5}
	x, y := p.Pixel(400, 200)
	if x != 100 || y != 100 {
		t.Errorf("Pixel = (%d, %d), want (100, 100)", x, y)
	}
}
