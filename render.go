package asciigif

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type RenderOpt func(r *Renderer)

// WithColumns sets the width of the character grid. Defaults to 100.
func WithColumns(cols int) RenderOpt {
	return func(r *Renderer) {
		r.cols = cols
	}
}

// WithScale sets the vertical scale of the character grid. Defaults to 1.
func WithScale(scale float64) RenderOpt {
	return func(r *Renderer) {
		r.scale = scale
	}
}

// WithFace sets the face characters are drawn with. Defaults to DefaultFace.
func WithFace(face font.Face) RenderOpt {
	return func(r *Renderer) {
		r.face = face
	}
}

// WithFilters adds filters applied, in order, to every still before resampling.
func WithFilters(filters ...Filter) RenderOpt {
	return func(r *Renderer) {
		r.filters = append(r.filters, filters...)
	}
}

func WithLogger(log *slog.Logger) RenderOpt {
	return func(r *Renderer) {
		r.log = log
	}
}

// grayPalette holds every gray level so antialiased text survives the trip
// into a paletted image. Index 0 is black.
var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// Renderer turns stills into character grids and grids into text rasters.
type Renderer struct {
	cols    int
	scale   float64
	face    font.Face
	ramp    Ramp
	filters []Filter
	glyph   image.Point
	ascent  int
	log     *slog.Logger
}

func NewRenderer(opts ...RenderOpt) (*Renderer, error) {
	r := Renderer{
		cols:  100,
		scale: 1,
		face:  DefaultFace(),
		ramp:  DefaultRamp,
		log:   discardLogger(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.log == nil {
		r.log = discardLogger()
	}
	if r.cols < 1 {
		return nil, fmt.Errorf("columns must be at least 1, got %d", r.cols)
	}
	if !(r.scale > 0) || math.IsInf(r.scale, 0) {
		return nil, fmt.Errorf("scale must be a positive number, got %v", r.scale)
	}
	if r.face == nil {
		return nil, fmt.Errorf("no font face")
	}
	r.glyph = GlyphSize(r.face)
	if r.glyph.X < 1 || r.glyph.Y < 1 {
		return nil, fmt.Errorf("font face has an empty glyph size %v", r.glyph)
	}
	r.ascent = r.face.Metrics().Ascent.Ceil()
	r.log.Debug("renderer ready", "cols", r.cols, "scale", r.scale, "glyph_width", r.glyph.X, "glyph_height", r.glyph.Y)
	return &r, nil
}

// Glyph is the pixel size of one character cell.
func (r *Renderer) Glyph() image.Point {
	return r.glyph
}

// Size returns the pixel bounds of the raster Render would produce for a
// still with the given bounds.
func (r *Renderer) Size(bounds image.Rectangle) image.Rectangle {
	rows := GridRows(r.cols, r.scale, bounds)
	return image.Rect(0, 0, r.cols*r.glyph.X, rows*r.glyph.Y)
}

// Grid resamples img to the character grid and maps each cell's luminance to
// a ramp character.
func (r *Renderer) Grid(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot render empty image %v", bounds)
	}
	for _, f := range r.filters {
		img = f.Filter(img)
	}
	rows := GridRows(r.cols, r.scale, bounds)
	small := resize.Resize(uint(r.cols), uint(rows), img, resize.Bicubic)
	gray := imaging.Grayscale(small)
	if b := gray.Bounds(); b.Dx() != r.cols || b.Dy() != rows {
		return nil, fmt.Errorf("resampled to %dx%d, want %dx%d", b.Dx(), b.Dy(), r.cols, rows)
	}
	return newGrid(gray, r.cols, rows, r.ramp), nil
}

// Draw rasterizes g as white text on a black canvas, one line per row.
func (r *Renderer) Draw(g *Grid) *image.Paletted {
	canvas := image.NewPaletted(image.Rect(0, 0, g.Cols*r.glyph.X, g.Rows*r.glyph.Y), grayPalette)
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: r.face,
	}
	for i := 0; i < g.Rows; i++ {
		// Dot is the baseline, so push each line down by the ascent to put
		// its top at the row's edge.
		d.Dot = fixed.P(0, i*r.glyph.Y+r.ascent)
		d.DrawString(g.Line(i))
	}
	return canvas
}

// Render is Grid followed by Draw.
func (r *Renderer) Render(img image.Image) (*image.Paletted, error) {
	g, err := r.Grid(img)
	if err != nil {
		return nil, err
	}
	return r.Draw(g), nil
}
