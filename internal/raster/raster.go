package raster

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"

	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Raster is the loaded source image in pixel-addressable RGBA form.
// It is immutable after construction; loading a new image produces a new
// Raster rather than mutating an existing one, so in-flight sampling always
// sees a consistent pixel buffer.
type Raster struct {
	img *image.RGBA
}

// Load reads and decodes an image file and normalizes it to RGBA
func Load(path string) (*Raster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	r := FromImage(img)
	log.Printf("[Raster] Loaded %s image %dx%d from %s", format, r.Width(), r.Height(), path)
	return r, nil
}

// FromImage normalizes an already-decoded image to RGBA.
// The source image is copied; callers keep ownership of img.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()

	// Re-origin at (0,0) so pixel coordinates match screen coordinates
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Raster{img: rgba}
}

// Width returns the raster width in pixels
func (r *Raster) Width() int {
	return r.img.Rect.Dx()
}

// Height returns the raster height in pixels
func (r *Raster) Height() int {
	return r.img.Rect.Dy()
}

// Contains reports whether a fractional pixel coordinate lies inside the
// raster. Used to drop path points drawn outside the image.
func (r *Raster) Contains(x, y float64) bool {
	return x >= 0 && x < float64(r.Width()) && y >= 0 && y < float64(r.Height())
}

// RGBA exposes the underlying pixel buffer for read-only sampling.
// Callers must not write through the returned image.
func (r *Raster) RGBA() *image.RGBA {
	return r.img
}
