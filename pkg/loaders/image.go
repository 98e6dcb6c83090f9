package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/material"
)

// LoadImageTexture loads a PNG or JPEG file as an image texture
func LoadImageTexture(filename string) (*material.ImageTexture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return ReadImageTexture(file)
}

// ReadImageTexture decodes a PNG or JPEG stream, detected from its header
func ReadImageTexture(r io.Reader) (*material.ImageTexture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return material.NewImageTextureFromImage(img), nil
}
