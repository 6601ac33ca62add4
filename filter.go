package asciigif

import (
	"image"

	"github.com/disintegration/imaging"
)

// Filter alters a still before it is resampled into a grid.
type Filter interface {
	Filter(image.Image) image.Image
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(image.Image) image.Image

func (f FilterFunc) Filter(img image.Image) image.Image {
	return f(img)
}

// Gamma of 1.0 gives the original image. Less than 1.0 darkens it and greater
// than 1.0 lightens it.
func Gamma(gamma float64) Filter {
	return FilterFunc(func(img image.Image) image.Image {
		return imaging.AdjustGamma(img, gamma)
	})
}

// Brightness ranges from -100 (solid black) to 100 (solid white).
func Brightness(pct float64) Filter {
	return FilterFunc(func(img image.Image) image.Image {
		return imaging.AdjustBrightness(img, pct)
	})
}

// Contrast ranges from -100 (solid grey) to 100 (maximum contrast).
func Contrast(pct float64) Filter {
	return FilterFunc(func(img image.Image) image.Image {
		return imaging.AdjustContrast(img, pct)
	})
}

// Sharpen applies an unsharp mask with the given sigma.
func Sharpen(sigma float64) Filter {
	return FilterFunc(func(img image.Image) image.Image {
		return imaging.Sharpen(img, sigma)
	})
}

// Sigmoid changes contrast along a sigmoidal curve. midpoint is between 0 and
// 1; a positive factor increases contrast and a negative one decreases it.
func Sigmoid(midpoint, factor float64) Filter {
	return FilterFunc(func(img image.Image) image.Image {
		return imaging.AdjustSigmoid(img, midpoint, factor)
	})
}
