package animation

import (
	"image"
	"log"
	"sync"
	"time"

	"dronepath-viewer/internal/flightpath"
	"dronepath-viewer/internal/sampler"
)

// FrameCallback receives each sampled camera frame together with the path
// position it was taken at. The frame buffer is newly allocated per tick and
// ownership transfers to the callback.
type FrameCallback func(frame *image.RGBA, index int, center flightpath.Point, headingDegrees float64)

// StoppedCallback fires when playback halts on its own, either because the
// path was exhausted or because it disappeared mid-run. It does not fire for
// an explicit Stop.
type StoppedCallback func()

// Driver advances an index over the flight path at a fixed cadence, sampling
// one camera frame per tick. Reaching the last path index transitions back to
// stopped automatically.
type Driver struct {
	mu        sync.Mutex
	path      *flightpath.Model
	source    *image.RGBA
	footprint sampler.Footprint
	index     int
	playing   bool
	stop      chan struct{}
	onFrame   FrameCallback
	onStopped StoppedCallback
}

// NewDriver creates a stopped driver over the given path model
func NewDriver(path *flightpath.Model) *Driver {
	return &Driver{path: path}
}

// SetCallbacks installs the frame and auto-stop hooks.
// Must be called before Start.
func (d *Driver) SetCallbacks(onFrame FrameCallback, onStopped StoppedCallback) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.onFrame = onFrame
	d.onStopped = onStopped
}

// SetSource replaces the raster being sampled. Any running playback is
// halted and the index reset, matching the load-image reset behavior.
func (d *Driver) SetSource(src *image.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.source = src
	d.index = 0
}

// SetFootprint sets the camera footprint used for subsequent samples
func (d *Driver) SetFootprint(fp sampler.Footprint) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.footprint = fp
}

// Start begins playback at the given tick interval (coerced to at least
// 1ms). It is a no-op returning false when no raster is loaded or the path
// is too short to animate. The index-0 frame is sampled and emitted
// synchronously before the first tick so the preview is never blank while
// waiting for the interval to elapse.
func (d *Driver) Start(interval time.Duration) bool {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}

	d.mu.Lock()
	if d.source == nil || !d.path.HasPath() {
		d.mu.Unlock()
		return false
	}

	d.stopLocked()
	d.index = 0
	d.playing = true
	stop := make(chan struct{})
	d.stop = stop
	src := d.source
	fp := d.footprint
	onFrame := d.onFrame
	d.mu.Unlock()

	log.Printf("[Animation] Starting playback: %d points, interval %s", d.path.Len(), interval)

	center := d.path.PointAt(0)
	heading := d.path.HeadingAt(0)
	if frame := sampler.Sample(src, center, heading, fp); frame != nil && onFrame != nil {
		onFrame(frame, 0, center, heading)
	}

	go d.run(stop, interval)
	return true
}

// Rewind halts playback and resets the index to the start of the path.
// Called when a new path stroke begins.
func (d *Driver) Rewind() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.index = 0
}

// Stop halts playback. Safe to call from any state, any goroutine, and from
// within a frame callback; repeated calls are no-ops.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
}

// stopLocked halts the current run. Caller holds d.mu.
func (d *Driver) stopLocked() {
	d.playing = false
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}

// IsPlaying reports whether playback is active
func (d *Driver) IsPlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.playing
}

// Index returns the current path index
func (d *Driver) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.index
}

// run drives the ticker for one playback session
func (d *Driver) run(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !d.tick(stop) {
				return
			}
		}
	}
}

// tick advances the index by one and emits a frame. Returns false when this
// run is over. The sample and the callbacks execute outside the lock so a
// callback may call Stop without deadlocking.
func (d *Driver) tick(stop chan struct{}) bool {
	d.mu.Lock()

	// A tick raced with Stop or with a newer Start; this run is stale
	if !d.playing || d.stop != stop {
		d.mu.Unlock()
		return false
	}

	if !d.path.HasPath() || d.index >= d.path.Len()-1 {
		// Path exhausted (or gone): transition to stopped
		d.stopLocked()
		onStopped := d.onStopped
		d.mu.Unlock()

		log.Printf("[Animation] Playback finished")
		if onStopped != nil {
			onStopped()
		}
		return false
	}

	d.index++
	idx := d.index
	src := d.source
	fp := d.footprint
	onFrame := d.onFrame
	d.mu.Unlock()

	center := d.path.PointAt(idx)
	heading := d.path.HeadingAt(idx)
	if frame := sampler.Sample(src, center, heading, fp); frame != nil && onFrame != nil {
		onFrame(frame, idx, center, heading)
	}
	return true
}
