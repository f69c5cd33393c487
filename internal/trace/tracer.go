package trace

import (
	"github.com/KaiserWu/NutritionKit/internal/geometry"
	"github.com/KaiserWu/NutritionKit/internal/regression"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// Line is a traced run of character centers reduced to its two
// endpoints, ordered left to right.
type Line struct {
	Start geometry.Point
	End   geometry.Point
}

// Displacement returns the end-to-start vector of the line.
func (l Line) Displacement() geometry.Point {
	return l.End.Sub(l.Start)
}

// Angle returns the signed angle of the line relative to the
// horizontal axis, in radians.
func (l Line) Angle() float64 {
	return l.Displacement().Angle()
}

// ConsumedSet tracks character centers already claimed by a traced
// line, shared across all TraceLine calls of one skew estimation.
type ConsumedSet map[geometry.Point]struct{}

// Has reports whether p has been claimed.
func (s ConsumedSet) Has(p geometry.Point) bool {
	_, ok := s[p]
	return ok
}

// Claim marks p as used.
func (s ConsumedSet) Claim(p geometry.Point) {
	s[p] = struct{}{}
}

// TraceLine chains character boxes into one approximately colinear
// run, starting at start and extending strictly rightward. Every
// chained center is claimed in consumed. The second return value is
// false when the chain stays below two members or its fit is
// degenerate.
//
// Chains of exactly two characters return the raw centers. Longer
// chains are least-squares fitted so the endpoints lie on the fitted
// line at the first and last member's x; chains with zero x variance
// are discarded since they carry no horizontal direction.
func TraceLine(start vision.CharacterBox, boxes []vision.CharacterBox, consumed ConsumedSet, p Params) (Line, bool) {
	chain := []geometry.Point{start.Center()}
	consumed.Claim(start.Center())

	for {
		next, ok := nextInChain(chain, boxes, p)
		if !ok || consumed.Has(next) {
			break
		}
		consumed.Claim(next)
		chain = append(chain, next)
	}

	if len(chain) < 2 {
		return Line{}, false
	}
	if len(chain) == 2 {
		return Line{Start: chain[0], End: chain[1]}, true
	}

	model, err := regression.Fit(chain)
	if err != nil {
		// Zero x variance: a vertical chain has no usable direction.
		return Line{}, false
	}
	first := chain[0].X
	last := chain[len(chain)-1].X
	return Line{
		Start: geometry.Point{X: first, Y: model.PredictY(first)},
		End:   geometry.Point{X: last, Y: model.PredictY(last)},
	}, true
}

// nextInChain finds the nearest character center strictly to the
// right of the chain's tip, within the step distance threshold and,
// once a direction is established, within the angular tolerance of
// it. Consumed status is not considered here; the caller decides
// whether a consumed hit terminates the chain.
func nextInChain(chain []geometry.Point, boxes []vision.CharacterBox, p Params) (geometry.Point, bool) {
	tip := chain[len(chain)-1]

	haveDirection := len(chain) >= 2
	var direction float64
	if haveDirection {
		direction = tip.Sub(chain[len(chain)-2]).Angle()
	}

	var best geometry.Point
	var bestDist float64
	found := false

	for _, box := range boxes {
		c := box.Center()
		if c.X <= tip.X {
			continue
		}
		d := c.SquaredDistance(tip)
		if d > p.MaxStepDistanceSq {
			continue
		}
		if found && d >= bestDist {
			continue
		}
		if haveDirection && geometry.AngleDiff(c.Sub(tip).Angle(), direction) >= p.MaxAngleDeviation {
			continue
		}
		best = c
		bestDist = d
		found = true
	}

	return best, found
}
