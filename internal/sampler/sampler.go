package sampler

import (
	"context"
	"image"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"dronepath-viewer/internal/flightpath"
)

// MinFootprintSide is the smallest usable footprint edge in pixels.
// Requests below this are clamped up to avoid degenerate sampling.
const MinFootprintSide = 4.0

// Footprint is the camera's observed rectangle size in source pixels
type Footprint struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewFootprint builds a footprint with both sides clamped to MinFootprintSide
func NewFootprint(width, height float64) Footprint {
	return Footprint{
		Width:  math.Max(MinFootprintSide, width),
		Height: math.Max(MinFootprintSide, height),
	}
}

// Sample renders the oriented camera view: a Width x Height crop of src
// centered at center and rotated by headingDegrees. Each destination pixel is
// mapped back into source coordinates (inverse rotation), rounded to the
// nearest source pixel and copied; coordinates outside src are filled with
// opaque black. No interpolation is performed, so identical inputs always
// produce byte-identical output.
//
// Returns nil when either footprint dimension truncates below 2 pixels; such
// a rectangle is too small to be meaningful and sampling is skipped.
func Sample(src *image.RGBA, center flightpath.Point, headingDegrees float64, fp Footprint) *image.RGBA {
	w := int(fp.Width)
	h := int(fp.Height)
	if w < 2 || h < 2 {
		return nil
	}

	theta := headingDegrees * math.Pi / 180.0
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	// Rows are write-disjoint, so they can be sampled concurrently without
	// affecting determinism. The semaphore keeps the fan-out bounded the same
	// way tile downloads are bounded elsewhere.
	ctx := context.Background()
	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))
	var wg sync.WaitGroup

	for y := 0; y < h; y++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			defer sem.Release(1)
			sampleRow(dst, src, y, center, cosT, sinT)
		}(y)
	}
	wg.Wait()

	return dst
}

// sampleRow fills one destination row with nearest-neighbor source pixels
func sampleRow(dst, src *image.RGBA, y int, center flightpath.Point, cosT, sinT float64) {
	srcBounds := src.Bounds()
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()

	ly := float64(y) - float64(h)/2.0
	rowOff := dst.PixOffset(0, y)

	for x := 0; x < w; x++ {
		lx := float64(x) - float64(w)/2.0

		// local (footprint) -> global (source image) coordinates
		gx := center.X + cosT*lx - sinT*ly
		gy := center.Y + sinT*lx + cosT*ly

		ix := int(math.Round(gx))
		iy := int(math.Round(gy))

		off := rowOff + x*4
		if ix >= srcBounds.Min.X && ix < srcBounds.Max.X && iy >= srcBounds.Min.Y && iy < srcBounds.Max.Y {
			srcOff := src.PixOffset(ix, iy)
			copy(dst.Pix[off:off+4], src.Pix[srcOff:srcOff+4])
		} else {
			// outside the source image: opaque black background
			dst.Pix[off] = 0
			dst.Pix[off+1] = 0
			dst.Pix[off+2] = 0
			dst.Pix[off+3] = 255
		}
	}
}
