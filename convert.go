package asciigif

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"time"
)

type ConvertOpt func(c *Converter)

// WithRenderer sets the renderer used for every frame. Defaults to a
// Renderer built with no options.
func WithRenderer(r *Renderer) ConvertOpt {
	return func(c *Converter) {
		c.renderer = r
	}
}

// WithText also writes the character grid of every frame to w, each grid
// followed by a blank line.
func WithText(w io.Writer) ConvertOpt {
	return func(c *Converter) {
		c.text = w
	}
}

// WithDecodeOpts passes opts on to Decode.
func WithDecodeOpts(opts ...DecodeOpt) ConvertOpt {
	return func(c *Converter) {
		c.decodeOpts = append(c.decodeOpts, opts...)
	}
}

func WithConvertLogger(log *slog.Logger) ConvertOpt {
	return func(c *Converter) {
		c.log = log
	}
}

// Converter runs the whole pipeline: decode, render each frame in order,
// encode.
type Converter struct {
	progress   io.Writer // "Processing frame i/N" lines
	text       io.Writer
	renderer   *Renderer
	decodeOpts []DecodeOpt
	log        *slog.Logger
}

// NewConverter reports progress to w, one line per frame. A nil w reports
// nothing.
func NewConverter(w io.Writer, opts ...ConvertOpt) (*Converter, error) {
	if w == nil {
		w = io.Discard
	}
	c := Converter{
		progress: w,
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.log == nil {
		c.log = discardLogger()
	}
	if c.renderer == nil {
		r, err := NewRenderer(WithLogger(c.log))
		if err != nil {
			return nil, err
		}
		c.renderer = r
	}
	return &c, nil
}

// Render renders frames in order and returns the rasters along with the
// source delays.
func (c *Converter) Render(frames []Frame) ([]*image.Paletted, []time.Duration, error) {
	if len(frames) == 0 {
		return nil, nil, ErrNoFrames
	}
	rendered := make([]*image.Paletted, 0, len(frames))
	delays := make([]time.Duration, 0, len(frames))
	for i, frame := range frames {
		fmt.Fprintf(c.progress, "Processing frame %d/%d\n", i+1, len(frames))
		g, err := c.renderer.Grid(frame.Image)
		if err != nil {
			return nil, nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
		if c.text != nil {
			if _, err := g.WriteTo(c.text); err != nil {
				return nil, nil, err
			}
			if _, err := c.text.Write([]byte{'\n'}); err != nil {
				return nil, nil, err
			}
		}
		rendered = append(rendered, c.renderer.Draw(g))
		delays = append(delays, frame.Delay)
	}
	return rendered, delays, nil
}

// Convert decodes r, renders every frame and writes the result to the gif at
// output. Nothing is written unless every frame rendered.
func (c *Converter) Convert(r io.Reader, output string) error {
	opts := append([]DecodeOpt{WithDecodeLogger(c.log)}, c.decodeOpts...)
	frames, err := Decode(r, opts...)
	if err != nil {
		return err
	}
	rendered, delays, err := c.Render(frames)
	if err != nil {
		return err
	}
	if err := WriteFile(output, rendered, delays); err != nil {
		return err
	}
	c.log.Info("wrote ascii animation", "path", output, "frames", len(rendered),
		"width", rendered[0].Bounds().Dx(), "height", rendered[0].Bounds().Dy())
	return nil
}

// ConvertFile is Convert reading from the file at input.
func (c *Converter) ConvertFile(input, output string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return c.Convert(f, output)
}
