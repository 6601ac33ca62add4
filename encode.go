package asciigif

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"time"
)

// EncodeAll writes frames to w as a gif that loops forever. The first frame is
// the base image and frame i shows for delays[i], rounded to the nearest
// hundredth of a second.
func EncodeAll(w io.Writer, frames []*image.Paletted, delays []time.Duration) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if len(frames) != len(delays) {
		return fmt.Errorf("encode gif: %d frames but %d delays", len(frames), len(delays))
	}

	var bounds image.Rectangle
	for _, frame := range frames {
		bounds = bounds.Union(frame.Bounds())
	}
	giff := gif.GIF{
		Image:     frames,
		Delay:     make([]int, len(frames)),
		Disposal:  make([]byte, len(frames)),
		LoopCount: 0,
		Config: image.Config{
			ColorModel: frames[0].Palette,
			Width:      bounds.Max.X,
			Height:     bounds.Max.Y,
		},
	}
	for i, d := range delays {
		giff.Delay[i] = centiseconds(d)
		giff.Disposal[i] = gif.DisposalNone
	}
	if err := gif.EncodeAll(w, &giff); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

func centiseconds(d time.Duration) int {
	cs := int((d + 5*time.Millisecond) / (10 * time.Millisecond))
	if cs == 0 && d > 0 {
		return 1
	}
	return cs
}

// WriteFile encodes frames with EncodeAll into path. The gif is written to a
// temporary file next to path and renamed into place, so on failure path is
// left untouched.
func WriteFile(path string, frames []*image.Paletted, delays []time.Duration) (err error) {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := EncodeAll(w, frames, delays); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
