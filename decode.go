package asciigif

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"time"

	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type DecodeOpt func(dec *decoder)

// WithFPS sets the frame rate of motion jpeg input. Defaults to 10.
func WithFPS(fps float64) DecodeOpt {
	return func(dec *decoder) {
		dec.fps = fps
	}
}

func WithDecodeLogger(log *slog.Logger) DecodeOpt {
	return func(dec *decoder) {
		dec.log = log
	}
}

type decoder struct {
	fps float64
	log *slog.Logger
}

/*
Decode reads an animation from r and returns its frames in playback order.

Gifs are flattened with Frames. A stream of concatenated jpegs is treated as
motion jpeg and every image shows for 1/fps seconds. Any other format the
image package can decode (png, jpeg, bmp, webp) becomes a single frame shown
for DefaultDelay.
*/
func Decode(r io.Reader, opts ...DecodeOpt) ([]Frame, error) {
	dec := decoder{
		fps: 10,
		log: discardLogger(),
	}
	for _, opt := range opts {
		opt(&dec)
	}
	if dec.log == nil {
		dec.log = discardLogger()
	}
	if !(dec.fps > 0) {
		return nil, fmt.Errorf("fps must be positive, got %v", dec.fps)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("unsupported input: %w", err)
		}
		return nil, fmt.Errorf("decode input: %w", err)
	}

	var frames []Frame
	switch format {
	case "gif":
		frames, err = DecodeGIF(bytes.NewReader(data))
	case "jpeg":
		frames, err = dec.decodeMJPEG(bytes.NewReader(data))
	default:
		frames, err = decodeStill(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	dec.log.Debug("decoded input", "format", format, "frames", len(frames),
		"width", frames[0].Image.Bounds().Dx(), "height", frames[0].Image.Bounds().Dy())
	return frames, nil
}

// DecodeFile opens path and decodes it with Decode.
func DecodeFile(path string, opts ...DecodeOpt) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Decode(f, opts...)
}

func (dec *decoder) decodeMJPEG(r io.Reader) ([]Frame, error) {
	var frames []Frame
	mjpegs := NewMJPEGReader(r)
	for mjpegs.Scan() {
		frames = append(frames, Frame{Image: opaque(mjpegs.Image())})
	}
	if err := mjpegs.Err(); err != nil {
		return nil, err
	}
	// A lone jpeg is a still, not a one frame video.
	delay := DefaultDelay
	if len(frames) > 1 {
		delay = time.Duration(float64(time.Second) / dec.fps)
	}
	for i := range frames {
		frames[i].Delay = delay
	}
	return frames, nil
}

func decodeStill(r io.Reader) ([]Frame, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return []Frame{{Image: opaque(img), Delay: DefaultDelay}}, nil
}
