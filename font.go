package asciigif

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace is the bitmap face used when no font file is given. Its glyphs
// are 7x13 pixels.
func DefaultFace() font.Face {
	return basicfont.Face7x13
}

// LoadFace reads a TrueType font file and returns a face at size points.
func LoadFace(path string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	face, err := ParseFace(fontBytes, size)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	return face, nil
}

// ParseFace parses TrueType data into a face at size points and 72 DPI, so
// one point is one pixel.
func ParseFace(fontBytes []byte, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// GlyphSize is the pixel footprint of one character cell: the advance of "A"
// by the face's line height.
func GlyphSize(face font.Face) image.Point {
	return image.Pt(
		font.MeasureString(face, "A").Ceil(),
		face.Metrics().Height.Ceil(),
	)
}
