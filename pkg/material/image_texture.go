package material

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromImage converts a decoded image into linear [0,1] colors
func NewImageTextureFromImage(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*width+x] = core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
		}
	}

	return NewImageTexture(width, height, pixels)
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		// Debug cyan for a missing image
		return core.NewVec3(0, 1, 1)
	}

	u := core.Clamp(uv.X, 0.0, 1.0)
	v := 1.0 - core.Clamp(uv.Y, 0.0, 1.0) // image rows run top to bottom

	x := core.Clamp(int(u*float64(t.Width)), 0, t.Width-1)
	y := core.Clamp(int(v*float64(t.Height)), 0, t.Height-1)

	return t.Pixels[y*t.Width+x]
}
