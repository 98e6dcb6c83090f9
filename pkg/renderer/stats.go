package renderer

import (
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	SamplesPerPixel int           // Samples requested per pixel
	TotalSamples    int           // Camera rays actually traced
	NumWorkers      int           // Parallel workers used
	Duration        time.Duration // Wall-clock render time
}

// TotalPixels returns the number of pixels in the image
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// SamplesPerSecond returns the camera-ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean perceptual luminance of img, in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r)/65535, float64(g)/65535, float64(b)/65535)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
