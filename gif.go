package asciigif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

// DefaultDelay is how long a frame shows when its source declares no delay.
const DefaultDelay = 100 * time.Millisecond

// Frame is one opaque still of an animation and how long it stays on screen.
type Frame struct {
	Image *image.RGBA
	Delay time.Duration
}

// DecodeGIF reads an animated gif from r and flattens it into frames.
func DecodeGIF(r io.Reader) ([]Frame, error) {
	giff, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	return Frames(giff)
}

/*
Frames flattens every image of giff onto the logical screen, the way a player
would show it, and returns a copy of the screen after each one. Disposal
methods are respected: DisposalBackground clears the frame's area to black
before the next frame is drawn and DisposalPrevious restores the screen to what
it was before the frame. Transparent pixels show whatever is underneath, which
for the first frame is black.

The gif package reports a missing delay as zero, so a delay of zero is
treated as undeclared and becomes DefaultDelay rather than 0ms. Likewise the
decoder drops the color behind the transparent index, so transparent pixels of
the first frame come out black rather than as their palette color.
*/
func Frames(giff *gif.GIF) ([]Frame, error) {
	if len(giff.Image) == 0 {
		return nil, ErrNoFrames
	}

	bounds := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	if bounds.Empty() {
		bounds = image.Rectangle{}
		for _, img := range giff.Image {
			bounds = bounds.Union(img.Bounds())
		}
	}
	screen := image.NewRGBA(bounds)
	draw.Draw(screen, bounds, image.Black, image.Point{}, draw.Src)

	frames := make([]Frame, 0, len(giff.Image))
	for i, img := range giff.Image {
		var disposal byte
		if i < len(giff.Disposal) {
			disposal = giff.Disposal[i]
		}

		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(screen)
		}

		drawFrame(screen, img)
		frames = append(frames, Frame{
			Image: opaque(screen),
			Delay: frameDelay(giff, i),
		})

		switch disposal {
		// Dispose previous essentially means draw then undo
		case gif.DisposalPrevious:
			screen = previous
		// Dispose background replaces everything just drawn with the background
		case gif.DisposalBackground:
			draw.Draw(screen, img.Bounds(), image.Black, image.Point{}, draw.Src)
		}
	}
	return frames, nil
}

// drawFrame paints source over target. Transparent pixels leave target as is.
func drawFrame(target *image.RGBA, source image.Image) {
	draw.Draw(target, source.Bounds(), source, source.Bounds().Min, draw.Over)
}

func frameDelay(giff *gif.GIF, i int) time.Duration {
	if i >= len(giff.Delay) || giff.Delay[i] <= 0 {
		return DefaultDelay
	}
	return time.Duration(giff.Delay[i]) * 10 * time.Millisecond
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// opaque copies img onto a black canvas anchored at (0, 0), which drops any
// transparency and detaches the result from img's pixels.
func opaque(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}
