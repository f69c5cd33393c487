package vision

import (
	"image"

	"github.com/disintegration/imaging"
)

// Upright returns the image rotated so that content described by the
// given orientation reads upright. OrientationUp returns the image
// unchanged.
func Upright(img image.Image, o Orientation) image.Image {
	switch o {
	case OrientationRight:
		return imaging.Rotate90(img)
	case OrientationDown:
		return imaging.Rotate180(img)
	case OrientationLeft:
		return imaging.Rotate270(img)
	default:
		return img
	}
}
