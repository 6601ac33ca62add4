package asciigif

// Ramp is an ordered run of characters from densest to sparsest. Dark
// luminance picks from the front, bright luminance from the back.
type Ramp string

// DefaultRamp is the 10 character ramp used for every rendered frame. Its
// last character is a space.
const DefaultRamp Ramp = "@%#*+=-:. "

// Index maps a luminance value to a position in the ramp. The result is
// truncated, never rounded, so 255 lands on the last character and not past it.
func (r Ramp) Index(lum uint8) int {
	return int(lum) * len(r) / 256
}

// Char returns the ramp character for lum.
func (r Ramp) Char(lum uint8) byte {
	return r[r.Index(lum)]
}
