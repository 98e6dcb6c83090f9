package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RowWriter receives finished rows strictly in order, top to bottom
type RowWriter interface {
	WriteRow(y int, pixels []core.Vec3) error
}

// linearToGamma applies the gamma 2 transfer curve
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToByte gamma-corrects one linear channel and quantizes it to 0..255
func ToByte(linear float64) uint8 {
	c := core.Clamp(linearToGamma(linear), 0, 0.999)
	return uint8(256 * c)
}

// ToRGBA converts a linear color to a gamma-corrected opaque pixel
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{R: ToByte(c.X), G: ToByte(c.Y), B: ToByte(c.Z), A: 255}
}

// PPMWriter streams a plain-text P3 image, one pixel per line
type PPMWriter struct {
	w           *bufio.Writer
	width       int
	height      int
	rowsWritten int
}

// NewPPMWriter writes the header for a width x height image to w
func NewPPMWriter(w io.Writer, width, height int) (*PPMWriter, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return nil, fmt.Errorf("failed to write PPM header: %w", err)
	}
	return &PPMWriter{w: bw, width: width, height: height}, nil
}

// WriteRow appends row y, which must be the next row in order
func (p *PPMWriter) WriteRow(y int, pixels []core.Vec3) error {
	if y != p.rowsWritten {
		return fmt.Errorf("PPM rows must be written in order: expected row %d, got %d", p.rowsWritten, y)
	}
	if len(pixels) != p.width {
		return fmt.Errorf("PPM row %d has %d pixels, expected %d", y, len(pixels), p.width)
	}
	for _, c := range pixels {
		if _, err := fmt.Fprintf(p.w, "%d %d %d\n", ToByte(c.X), ToByte(c.Y), ToByte(c.Z)); err != nil {
			return fmt.Errorf("failed to write PPM row %d: %w", y, err)
		}
	}
	p.rowsWritten++
	return nil
}

// Close flushes buffered output and reports a short image
func (p *PPMWriter) Close() error {
	if err := p.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	if p.rowsWritten != p.height {
		return fmt.Errorf("PPM image incomplete: %d of %d rows written", p.rowsWritten, p.height)
	}
	return nil
}

// ImageBuffer collects rows into an in-memory RGBA image
type ImageBuffer struct {
	img *image.RGBA
}

// NewImageBuffer creates a buffer for a width x height image
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// WriteRow stores row y
func (b *ImageBuffer) WriteRow(y int, pixels []core.Vec3) error {
	for x, c := range pixels {
		b.img.SetRGBA(x, y, ToRGBA(c))
	}
	return nil
}

// Image returns the collected image
func (b *ImageBuffer) Image() *image.RGBA {
	return b.img
}

// WritePNG encodes the collected image as PNG
func (b *ImageBuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, b.img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
