// Package pngmeta encodes PNG images carrying a pixel density (pHYs chunk).
//
// image/png never writes ancillary chunks, so Encode produces the regular
// stream and splices a pHYs chunk in right after IHDR. pHYs must precede
// the first IDAT.
package pngmeta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"
)

const (
	metresPerInch = 0.0254
	unitMetre     = 1

	sigLen = 8
	// IHDR is always the first chunk and always 13 bytes of data.
	ihdrEnd = sigLen + 4 + 4 + 13 + 4
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Sentinel errors.
var (
	ErrInvalidDPI = errors.New("dpi must be positive")
	ErrNotPNG     = errors.New("not a PNG stream")
)

// Encoder writes PNGs stamped with a density.
type Encoder struct {
	// CompressionLevel is passed through to image/png.
	CompressionLevel png.CompressionLevel
}

// Encode writes img to w as PNG with the density set to dpi dots per inch.
func (e *Encoder) Encode(w io.Writer, img image.Image, dpi int) error {
	if dpi <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDPI, dpi)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: e.CompressionLevel}
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	raw := buf.Bytes()
	if len(raw) < ihdrEnd || !bytes.Equal(raw[:sigLen], pngSignature) {
		return ErrNotPNG
	}

	if _, err := w.Write(raw[:ihdrEnd]); err != nil {
		return err
	}
	if _, err := w.Write(physChunk(dpi)); err != nil {
		return err
	}
	_, err := w.Write(raw[ihdrEnd:])
	return err
}

// Encode writes img with default compression. See Encoder.Encode.
func Encode(w io.Writer, img image.Image, dpi int) error {
	var e Encoder
	return e.Encode(w, img, dpi)
}

// PixelsPerMetre converts dots per inch to the integer unit pHYs stores.
func PixelsPerMetre(dpi int) uint32 {
	return uint32(math.Round(float64(dpi) / metresPerInch))
}

func physChunk(dpi int) []byte {
	ppm := PixelsPerMetre(dpi)

	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = unitMetre
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}

// ReadDPI scans a PNG stream for a pHYs chunk in metres and returns its
// horizontal density rounded to dots per inch. ok is false when the stream
// carries no such chunk.
func ReadDPI(r io.Reader) (dpi int, ok bool, err error) {
	sig := make([]byte, sigLen)
	if _, err := io.ReadFull(r, sig); err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrNotPNG, err)
	}
	if !bytes.Equal(sig, pngSignature) {
		return 0, false, ErrNotPNG
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return 0, false, nil
			}
			return 0, false, err
		}
		n := binary.BigEndian.Uint32(hdr[0:4])
		typ := string(hdr[4:8])

		switch typ {
		case "pHYs":
			var data [9 + 4]byte
			if n != 9 {
				return 0, false, fmt.Errorf("%w: pHYs length %d", ErrNotPNG, n)
			}
			if _, err := io.ReadFull(r, data[:]); err != nil {
				return 0, false, err
			}
			if data[8] != unitMetre {
				return 0, false, nil
			}
			ppm := binary.BigEndian.Uint32(data[0:4])
			return int(math.Round(float64(ppm) * metresPerInch)), true, nil
		case "IDAT", "IEND":
			// pHYs must precede image data.
			return 0, false, nil
		}

		if _, err := io.CopyN(io.Discard, r, int64(n)+4); err != nil {
			return 0, false, err
		}
	}
}
