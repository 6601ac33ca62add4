/*
Package asciigif turns animated images into ASCII art animations.

Each frame of the source is resampled down to a grid of characters, where every
cell's luminance selects a character from DefaultRamp. The grid is then drawn
as white text on a black canvas and the canvases are encoded as a new looping
GIF that keeps the source frame delays.

As an example, a 10x10 solid black frame rendered at 5 columns becomes:
	@@@@@
	@@@@@
	@@@@@
	@@@@@
	@@@@@
*/
package asciigif

import (
	"errors"
	"io"
	"log/slog"
)

// ErrNoFrames is returned when an animation has nothing to render or encode.
var ErrNoFrames = errors.New("asciigif: no frames")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
