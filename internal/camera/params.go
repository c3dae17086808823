package camera

import (
	"fmt"
	"math"
	"time"

	"dronepath-viewer/internal/sampler"
)

// Params are the user-entered camera settings in real-world units.
// The frontend collects these from the numeric inputs and passes them to the
// backend unmodified; Resolve converts them to pixel-space values.
type Params struct {
	AltitudeM   float64 `json:"altitudeM"`   // Drone altitude (m)
	RectWidthM  float64 `json:"rectWidthM"`  // Footprint width (m)
	RectHeightM float64 `json:"rectHeightM"` // Footprint length (m)
	ZoomFactor  float64 `json:"zoomFactor"`  // Multiplies the altitude-derived scale
	FrequencyHz float64 `json:"frequencyHz"` // Camera sampling frequency (Hz)
}

// Validate checks the one hard user error: a non-positive frequency would
// make the tick interval undefined. Altitude and zoom are instead floored
// during Resolve, mirroring the tolerant handling of the rest of the inputs.
func (p Params) Validate() error {
	if p.FrequencyHz <= 0 {
		return fmt.Errorf("camera frequency must be > 0, got %g", p.FrequencyHz)
	}
	return nil
}

// Resolve converts real-world parameters to a pixel footprint and a tick
// interval. Altitude acts as the scale and zoom multiplies it:
// pixels per meter = altitude * zoom, with each floored to 1.0 when
// non-positive. The interval is round(1000/frequency) milliseconds.
func (p Params) Resolve() (sampler.Footprint, time.Duration) {
	altitude := p.AltitudeM
	if altitude <= 0 {
		altitude = 1.0
	}
	zoom := p.ZoomFactor
	if zoom <= 0 {
		zoom = 1.0
	}

	pxPerMeter := altitude * zoom
	fp := sampler.NewFootprint(p.RectWidthM*pxPerMeter, p.RectHeightM*pxPerMeter)

	intervalMs := math.Round(1000.0 / p.FrequencyHz)
	return fp, time.Duration(intervalMs) * time.Millisecond
}
