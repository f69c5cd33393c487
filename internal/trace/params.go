package trace

// Params holds the tuning thresholds of line tracing and skew
// estimation. All distances are in normalized image units.
type Params struct {
	// MinLineSpan is the minimum end-to-start displacement magnitude
	// for a traced line to count as skew evidence. Shorter chains are
	// discarded as noise.
	MinLineSpan float64

	// MaxStepDistanceSq is the maximum squared distance between
	// consecutive character centers in a chain.
	MaxStepDistanceSq float64

	// MaxAngleDeviation is the maximum deviation, in radians, of a
	// new chain step from the running line direction.
	MaxAngleDeviation float64

	// SmoothingRadius is the half-width, in degrees, of the window
	// used to smooth the angle histogram.
	SmoothingRadius int

	// MinWindowAverage is the smoothed histogram score the dominant
	// angle must exceed for a rotation to be applied.
	MinWindowAverage float64

	// MinCorrectionDeg is the minimum absolute angle, in degrees,
	// worth correcting. Smaller skews are left alone.
	MinCorrectionDeg float64
}

// DefaultParams returns the standard thresholds.
func DefaultParams() Params {
	return Params{
		MinLineSpan:       0.03,
		MaxStepDistanceSq: 0.001,
		MaxAngleDeviation: 0.05,
		SmoothingRadius:   2,
		MinWindowAverage:  5,
		MinCorrectionDeg:  3,
	}
}
