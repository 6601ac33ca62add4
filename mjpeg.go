package asciigif

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
)

const (
	markerSOI  = 0xd8
	markerEOI  = 0xd9
	markerSOS  = 0xda
	markerTEM  = 0x01
	markerRST0 = 0xd0
	markerRST7 = 0xd7
)

// MJPEGReader scans a stream of concatenated jpegs one image at a time. Eg:
//
//	mjpegs := NewMJPEGReader(r)
//	for mjpegs.Scan() {
//		img := mjpegs.Image()
//	}
//	err := mjpegs.Err()
//
// Images are split by walking their marker segments, so an end of image
// marker inside a segment payload, like the one closing an EXIF thumbnail,
// does not end the image.
type MJPEGReader struct {
	r   *bufio.Reader
	buf bytes.Buffer
	img image.Image
	err error
}

func NewMJPEGReader(r io.Reader) *MJPEGReader {
	return &MJPEGReader{
		r: bufio.NewReader(r),
	}
}

// Scan advances to the next jpeg in the stream. It returns false at the end of
// the stream or on the first error. Bytes after the last image that do not
// start another one are ignored.
func (mjpeg *MJPEGReader) Scan() bool {
	if mjpeg.err != nil {
		return false
	}
	mjpeg.img = nil
	mjpeg.buf.Reset()
	if !mjpeg.seekSOI() {
		return false
	}
	if err := mjpeg.readSegments(); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		mjpeg.err = fmt.Errorf("mjpeg: %w", err)
		return false
	}
	img, err := jpeg.Decode(bytes.NewReader(mjpeg.buf.Bytes()))
	if err != nil {
		mjpeg.err = fmt.Errorf("mjpeg: %w", err)
		return false
	}
	mjpeg.img = img
	return true
}

// Image is the jpeg decoded by the last successful Scan.
func (mjpeg *MJPEGReader) Image() image.Image {
	return mjpeg.img
}

func (mjpeg *MJPEGReader) Err() error {
	return mjpeg.err
}

// seekSOI discards bytes up to and including the next start of image marker.
func (mjpeg *MJPEGReader) seekSOI() bool {
	var prev byte
	for {
		c, err := mjpeg.r.ReadByte()
		if err != nil {
			if err != io.EOF {
				mjpeg.err = err
			}
			return false
		}
		if prev == 0xff && c == markerSOI {
			mjpeg.buf.Write([]byte{0xff, markerSOI})
			return true
		}
		prev = c
	}
}

// readSegments copies segments into buf until the end of image marker.
func (mjpeg *MJPEGReader) readSegments() error {
	marker, err := mjpeg.nextMarker()
	for {
		if err != nil {
			return err
		}
		mjpeg.buf.Write([]byte{0xff, marker})
		switch {
		case marker == markerEOI:
			return nil
		case marker == markerTEM, marker >= markerRST0 && marker <= markerRST7:
			// Standalone markers carry no length.
			marker, err = mjpeg.nextMarker()
			continue
		}
		if err := mjpeg.copySegment(); err != nil {
			return err
		}
		if marker == markerSOS {
			marker, err = mjpeg.copyScan()
		} else {
			marker, err = mjpeg.nextMarker()
		}
	}
}

func (mjpeg *MJPEGReader) nextMarker() (byte, error) {
	c, err := mjpeg.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if c != 0xff {
		return 0, fmt.Errorf("expected a marker, found %#02x", c)
	}
	// Any number of 0xff fill bytes may precede the marker code.
	for c == 0xff {
		if c, err = mjpeg.r.ReadByte(); err != nil {
			return 0, err
		}
	}
	return c, nil
}

// copySegment copies a length prefixed segment payload without looking inside it.
func (mjpeg *MJPEGReader) copySegment() error {
	var size [2]byte
	if _, err := io.ReadFull(mjpeg.r, size[:]); err != nil {
		return err
	}
	length := int(size[0])<<8 | int(size[1])
	if length < 2 {
		return fmt.Errorf("bad segment length %d", length)
	}
	mjpeg.buf.Write(size[:])
	_, err := io.CopyN(&mjpeg.buf, mjpeg.r, int64(length-2))
	return err
}

// copyScan copies entropy coded data and returns the marker that ends it.
// Stuffed zero bytes and restart markers belong to the scan.
func (mjpeg *MJPEGReader) copyScan() (byte, error) {
	for {
		c, err := mjpeg.r.ReadByte()
		if err != nil {
			return 0, err
		}
		if c != 0xff {
			mjpeg.buf.WriteByte(c)
			continue
		}
		next, err := mjpeg.r.ReadByte()
		for err == nil && next == 0xff {
			next, err = mjpeg.r.ReadByte()
		}
		if err != nil {
			return 0, err
		}
		if next == 0x00 || next >= markerRST0 && next <= markerRST7 {
			mjpeg.buf.Write([]byte{0xff, next})
			continue
		}
		return next, nil
	}
}
