package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	goruntime "runtime"
	"sync"

	"github.com/posthog/posthog-go"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"dronepath-viewer/internal/animation"
	"dronepath-viewer/internal/camera"
	"dronepath-viewer/internal/config"
	"dronepath-viewer/internal/flightpath"
	"dronepath-viewer/internal/preview"
	"dronepath-viewer/internal/raster"
)

// Linker flags
var (
	PostHogKey  string
	PostHogHost string
	AppVersion  string = "0.0.0-dev"
)

// App struct
type App struct {
	ctx      context.Context
	mu       sync.Mutex
	settings *config.UserSettings
	source   *raster.Raster
	path     *flightpath.Model
	driver   *animation.Driver
	phClient posthog.Client
	devMode  bool // Enable verbose logging in dev mode only
}

// ImageInfo describes the loaded raster for the frontend canvas
type ImageInfo struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Name    string `json:"name"`
	DataURL string `json:"dataURL"`
}

// CameraFrame is the payload emitted for every sampled camera view
type CameraFrame struct {
	Index          int     `json:"index"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	HeadingDegrees float64 `json:"headingDegrees"`
	FootprintW     int     `json:"footprintW"`
	FootprintH     int     `json:"footprintH"`
	DataURL        string  `json:"dataURL"`
}

// NewApp creates a new App application struct
func NewApp() *App {
	// Load user settings
	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
		settings = config.DefaultSettings()
	}
	log.Printf("Settings loaded from: %s", config.GetSettingsPath())

	// Initialize PostHog
	var phClient posthog.Client
	if PostHogKey != "" {
		phConfig := posthog.Config{
			Endpoint: PostHogHost,
		}
		client, err := posthog.NewWithConfig(PostHogKey, phConfig)
		if err != nil {
			log.Printf("Failed to initialize PostHog: %v", err)
		} else {
			phClient = client
		}
	}

	path := flightpath.NewModel()

	return &App{
		settings: settings,
		path:     path,
		driver:   animation.NewDriver(path),
		phClient: phClient,
	}
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	a.driver.SetCallbacks(a.emitCameraFrame, a.emitPlaybackStopped)

	// Track app start
	a.TrackEvent("app_started", map[string]interface{}{
		"version": a.GetAppVersion(),
		"os":      goruntime.GOOS,
		"arch":    goruntime.GOARCH,
	})
}

// TrackEvent sends an event to PostHog
func (a *App) TrackEvent(event string, props map[string]interface{}) {
	if a.phClient != nil {
		a.phClient.Enqueue(posthog.Capture{
			DistinctId: "backend_user",
			Event:      event,
			Properties: props,
		})
	}
}

// Shutdown cleans up resources
func (a *App) Shutdown(ctx context.Context) {
	a.driver.Stop()
	if a.phClient != nil {
		a.phClient.Close()
	}
}

// GetAppVersion returns the current application version
func (a *App) GetAppVersion() string {
	return AppVersion
}

// ===================
// Image Loading
// ===================

// OpenImageDialog shows the native file picker and loads the chosen image.
// Returns nil without error when the user cancels.
func (a *App) OpenImageDialog() (*ImageInfo, error) {
	a.mu.Lock()
	defaultDir := a.settings.LastImageDir
	a.mu.Unlock()

	selection, err := wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title:            "Select satellite image",
		DefaultDirectory: defaultDir,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Images", Pattern: "*.png;*.jpg;*.jpeg;*.bmp;*.gif;*.tif;*.tiff;*.webp"},
			{DisplayName: "All files", Pattern: "*.*"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("file dialog failed: %w", err)
	}
	if selection == "" {
		return nil, nil // user cancelled
	}

	return a.LoadImage(selection)
}

// LoadImage decodes an image file and makes it the active raster.
// The path, drawing state and any running animation are reset.
func (a *App) LoadImage(path string) (*ImageInfo, error) {
	r, err := raster.Load(path)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.source = r
	a.driver.SetSource(r.RGBA()) // also stops playback and resets the index
	a.path.Reset()
	a.settings.LastImageDir = filepath.Dir(path)
	settings := *a.settings
	a.mu.Unlock()

	// Best effort; a failed save never blocks loading
	if err := config.SaveSettings(&settings); err != nil {
		log.Printf("[App] Failed to persist last image directory: %v", err)
	}

	dataURL, err := preview.EncodeDataURL(r.RGBA())
	if err != nil {
		return nil, err
	}

	a.TrackEvent("image_loaded", map[string]interface{}{
		"width":  r.Width(),
		"height": r.Height(),
	})

	return &ImageInfo{
		Width:   r.Width(),
		Height:  r.Height(),
		Name:    filepath.Base(path),
		DataURL: dataURL,
	}, nil
}

// HasImage reports whether a raster is loaded
func (a *App) HasImage() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.source != nil
}

// ===================
// Path Drawing
// ===================

// BeginPath starts a new flight path at a mouse-press position.
// Ignored without a loaded image or outside its bounds; starting a new
// stroke also halts any running animation, like the original press handler.
func (a *App) BeginPath(x, y float64) {
	a.mu.Lock()
	src := a.source
	a.mu.Unlock()

	if src == nil || !src.Contains(x, y) {
		return
	}

	a.driver.Rewind()
	a.path.Begin(flightpath.Point{X: x, Y: y})
}

// ExtendPath appends a point while the mouse moves with the button held.
// Points outside the image are silently dropped.
func (a *App) ExtendPath(x, y float64) {
	a.mu.Lock()
	src := a.source
	a.mu.Unlock()

	if src == nil || !src.Contains(x, y) {
		return
	}

	a.path.Extend(flightpath.Point{X: x, Y: y})
}

// EndPath finishes the current stroke on mouse release
func (a *App) EndPath() {
	a.path.End()
}

// PathSnapshot returns a read-only copy of the drawn path for redrawing
func (a *App) PathSnapshot() []flightpath.Point {
	return a.path.Points()
}

// HasPath reports whether the drawn path is long enough to animate
func (a *App) HasPath() bool {
	return a.path.HasPath()
}

// ===================
// Playback
// ===================

// Play validates the camera parameters, converts them to pixel space and
// starts the animation. Errors are surfaced by the frontend as message boxes.
func (a *App) Play(params camera.Params) error {
	if !a.HasImage() {
		return fmt.Errorf("please load an image first")
	}
	if !a.path.HasPath() {
		return fmt.Errorf("draw a flight path on the image with the mouse")
	}
	if err := params.Validate(); err != nil {
		return err
	}

	fp, interval := params.Resolve()
	a.driver.SetFootprint(fp)

	log.Printf("[App] Play: footprint %.0fx%.0f px, interval %s", fp.Width, fp.Height, interval)

	if !a.driver.Start(interval) {
		return fmt.Errorf("animation could not start")
	}

	// Remember the entered values as the new defaults
	a.mu.Lock()
	a.settings.Camera = config.CameraDefaults{
		AltitudeM:   params.AltitudeM,
		RectWidthM:  params.RectWidthM,
		RectHeightM: params.RectHeightM,
		ZoomFactor:  params.ZoomFactor,
		FrequencyHz: params.FrequencyHz,
	}
	settings := *a.settings
	a.mu.Unlock()

	if err := config.SaveSettings(&settings); err != nil {
		log.Printf("[App] Failed to persist camera defaults: %v", err)
	}

	a.TrackEvent("animation_started", map[string]interface{}{
		"points":      a.path.Len(),
		"frequencyHz": params.FrequencyHz,
	})

	return nil
}

// StopPlayback halts the animation; safe to call in any state
func (a *App) StopPlayback() {
	a.driver.Stop()
}

// IsPlaying reports whether the animation is running
func (a *App) IsPlaying() bool {
	return a.driver.IsPlaying()
}

// ===================
// Frame Emission
// ===================

// emitCameraFrame scales a sampled frame for the preview pane and pushes it
// to the frontend together with the drone's position and heading.
func (a *App) emitCameraFrame(frame *image.RGBA, index int, center flightpath.Point, headingDegrees float64) {
	a.mu.Lock()
	maxSize := a.settings.PreviewMaxSize
	smooth := a.settings.PreviewSmoothing
	a.mu.Unlock()

	scaled := preview.ScaleToFit(frame, maxSize, maxSize, smooth)
	dataURL, err := preview.EncodeDataURL(scaled)
	if err != nil {
		log.Printf("[App] Failed to encode camera frame %d: %v", index, err)
		return
	}

	if a.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(a.ctx, "camera-frame", CameraFrame{
		Index:          index,
		X:              center.X,
		Y:              center.Y,
		HeadingDegrees: headingDegrees,
		FootprintW:     frame.Rect.Dx(),
		FootprintH:     frame.Rect.Dy(),
		DataURL:        dataURL,
	})
}

// emitPlaybackStopped notifies the frontend that the path was exhausted
func (a *App) emitPlaybackStopped() {
	if a.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(a.ctx, "playback-stopped")
}
