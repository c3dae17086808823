package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// FitSize returns the largest dimensions with the same aspect ratio as
// srcW x srcH that fit inside maxW x maxH. Never returns less than 1x1.
func FitSize(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 1, 1
	}

	scaleW := float64(maxW) / float64(srcW)
	scaleH := float64(maxH) / float64(srcH)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	w := int(float64(srcW) * scale)
	h := int(float64(srcH) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ScaleToFit scales a frame into maxW x maxH preserving aspect ratio.
// Smooth selects bilinear filtering for the preview pane; otherwise the
// frame's pixels are kept crisp with nearest-neighbor. A frame already
// within bounds is returned unchanged.
func ScaleToFit(src *image.RGBA, maxW, maxH int, smooth bool) *image.RGBA {
	srcW := src.Rect.Dx()
	srcH := src.Rect.Dy()
	if srcW <= maxW && srcH <= maxH {
		return src
	}

	w, h := FitSize(srcW, srcH, maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	scaler := xdraw.Interpolator(xdraw.NearestNeighbor)
	if smooth {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return dst
}

// EncodeDataURL encodes an image as a base64 PNG data URL for direct use as
// an <img> or canvas source in the frontend.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode preview PNG: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
