package trace

import (
	"math"
	"testing"

	"github.com/KaiserWu/NutritionKit/internal/geometry"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// charAt builds a character box whose center is exactly (x, y).
func charAt(x, y float64) vision.CharacterBox {
	return vision.CharacterBox{
		TopLeft:     geometry.Point{X: x - 0.005, Y: y - 0.005},
		BottomRight: geometry.Point{X: x + 0.005, Y: y + 0.005},
	}
}

// lineOfChars builds n character boxes spaced 0.02 apart along the
// given direction, starting at (x, y).
func lineOfChars(x, y float64, n int, angleDeg float64) []vision.CharacterBox {
	rad := angleDeg * math.Pi / 180
	dx := 0.02 * math.Cos(rad)
	dy := 0.02 * math.Sin(rad)
	boxes := make([]vision.CharacterBox, n)
	for i := 0; i < n; i++ {
		boxes[i] = charAt(x+float64(i)*dx, y+float64(i)*dy)
	}
	return boxes
}

func TestTraceLineSingleCharacter(t *testing.T) {
	boxes := []vision.CharacterBox{charAt(0.5, 0.5)}
	_, ok := TraceLine(boxes[0], boxes, make(ConsumedSet), DefaultParams())
	if ok {
		t.Error("expected no line from a single character")
	}
}

func TestTraceLineIsolatedCharacters(t *testing.T) {
	// Second character is too far to chain (0.1 > sqrt(0.001)).
	boxes := []vision.CharacterBox{charAt(0.1, 0.5), charAt(0.3, 0.5)}
	_, ok := TraceLine(boxes[0], boxes, make(ConsumedSet), DefaultParams())
	if ok {
		t.Error("expected no line when characters are out of chaining range")
	}
}

func TestTraceLineTwoCharactersReturnsRawCenters(t *testing.T) {
	boxes := []vision.CharacterBox{charAt(0.1, 0.5), charAt(0.12, 0.51)}
	line, ok := TraceLine(boxes[0], boxes, make(ConsumedSet), DefaultParams())
	if !ok {
		t.Fatal("expected a line from two chainable characters")
	}
	if line.Start != boxes[0].Center() || line.End != boxes[1].Center() {
		t.Errorf("line = %+v, want raw centers %+v -> %+v",
			line, boxes[0].Center(), boxes[1].Center())
	}
}

func TestTraceLineFitsLongChains(t *testing.T) {
	// Five characters exactly on y = 0.1x + 0.4; the fitted endpoints
	// must lie on that line at the first and last x.
	boxes := lineOfChars(0.1, 0.41, 5, math.Atan(0.1)*180/math.Pi)
	line, ok := TraceLine(boxes[0], boxes, make(ConsumedSet), DefaultParams())
	if !ok {
		t.Fatal("expected a line from five collinear characters")
	}

	first := boxes[0].Center()
	last := boxes[4].Center()
	if math.Abs(line.Start.X-first.X) > 1e-12 || math.Abs(line.End.X-last.X) > 1e-12 {
		t.Errorf("endpoint x = %v..%v, want %v..%v", line.Start.X, line.End.X, first.X, last.X)
	}
	for _, p := range []geometry.Point{line.Start, line.End} {
		want := 0.1*p.X + first.Y - 0.1*first.X
		if math.Abs(p.Y-want) > 1e-9 {
			t.Errorf("endpoint %+v is off the source line (want y = %v)", p, want)
		}
	}
}

func TestTraceLineRejectsBentContinuation(t *testing.T) {
	// Three characters along the horizontal, then one that would bend
	// the chain by far more than the angular tolerance.
	boxes := []vision.CharacterBox{
		charAt(0.10, 0.5),
		charAt(0.12, 0.5),
		charAt(0.14, 0.5),
		charAt(0.16, 0.51),
	}
	line, ok := TraceLine(boxes[0], boxes, make(ConsumedSet), DefaultParams())
	if !ok {
		t.Fatal("expected a line from the straight prefix")
	}
	if math.Abs(line.End.X-0.14) > 1e-9 {
		t.Errorf("chain end x = %v, want 0.14 (bent candidate rejected)", line.End.X)
	}
}

func TestTraceLineStopsAtConsumedCharacter(t *testing.T) {
	boxes := []vision.CharacterBox{
		charAt(0.10, 0.5),
		charAt(0.12, 0.5),
		charAt(0.14, 0.5),
	}
	consumed := make(ConsumedSet)
	consumed.Claim(boxes[2].Center())

	line, ok := TraceLine(boxes[0], boxes, consumed, DefaultParams())
	if !ok {
		t.Fatal("expected a line from the two free characters")
	}
	if line.End != boxes[1].Center() {
		t.Errorf("line end = %+v, want %+v (consumed character not re-added)",
			line.End, boxes[1].Center())
	}
}

func TestTraceLineClaimsChainMembers(t *testing.T) {
	boxes := lineOfChars(0.1, 0.5, 4, 0)
	consumed := make(ConsumedSet)
	if _, ok := TraceLine(boxes[0], boxes, consumed, DefaultParams()); !ok {
		t.Fatal("expected a line")
	}
	for i, b := range boxes {
		if !consumed.Has(b.Center()) {
			t.Errorf("character %d not claimed by the chain", i)
		}
	}

	// A second trace from any member finds nothing new.
	if _, ok := TraceLine(boxes[1], boxes, consumed, DefaultParams()); ok {
		t.Error("expected no line when all characters are consumed")
	}
}

func TestTraceLineExtendsOnlyRightward(t *testing.T) {
	// A character strictly to the left must never join the chain.
	boxes := []vision.CharacterBox{
		charAt(0.12, 0.5),
		charAt(0.10, 0.5),
		charAt(0.14, 0.5),
	}
	line, ok := TraceLine(boxes[0], boxes, make(ConsumedSet), DefaultParams())
	if !ok {
		t.Fatal("expected a line")
	}
	if line.Start != boxes[0].Center() || line.End != boxes[2].Center() {
		t.Errorf("line = %+v, want %+v -> %+v", line, boxes[0].Center(), boxes[2].Center())
	}
}
