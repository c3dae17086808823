package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CameraDefaults are the last-used values for the numeric camera inputs.
// They pre-fill the controls on startup; the drawn path and the loaded image
// are deliberately not persisted.
type CameraDefaults struct {
	AltitudeM   float64 `json:"altitudeM"`
	RectWidthM  float64 `json:"rectWidthM"`
	RectHeightM float64 `json:"rectHeightM"`
	ZoomFactor  float64 `json:"zoomFactor"`
	FrequencyHz float64 `json:"frequencyHz"`
}

// UserSettings represents persistent user preferences
type UserSettings struct {
	// Camera input defaults
	Camera CameraDefaults `json:"camera"`

	// Last directory used in the image picker
	LastImageDir string `json:"lastImageDir"`

	// UI preferences
	Theme            string `json:"theme"`            // "light", "dark", "system"
	PreviewSmoothing bool   `json:"previewSmoothing"` // bilinear preview scaling
	PreviewMaxSize   int    `json:"previewMaxSize"`   // preview pane edge in px
}

// DefaultSettings returns default user settings, matching the original
// control values (100m altitude, 20x20m rectangle, zoom 1.0, 2Hz camera).
func DefaultSettings() *UserSettings {
	return &UserSettings{
		Camera: CameraDefaults{
			AltitudeM:   100,
			RectWidthM:  20,
			RectHeightM: 20,
			ZoomFactor:  1.0,
			FrequencyHz: 2.0,
		},
		LastImageDir:     "",
		Theme:            "system",
		PreviewSmoothing: true,
		PreviewMaxSize:   300,
	}
}

// GetSettingsPath returns the OS-specific settings file path
func GetSettingsPath() string {
	homeDir, _ := os.UserHomeDir()

	baseDir := filepath.Join(homeDir, ".dronepath", "viewer", "settings")

	// Ensure directory exists
	os.MkdirAll(baseDir, 0755)

	return filepath.Join(baseDir, "settings.json")
}

// LoadSettings loads user settings from disk
func LoadSettings() (*UserSettings, error) {
	return loadSettingsFrom(GetSettingsPath())
}

func loadSettingsFrom(settingsPath string) (*UserSettings, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	// Merge with defaults for any missing fields
	defaults := DefaultSettings()
	if settings.Camera.AltitudeM == 0 {
		settings.Camera.AltitudeM = defaults.Camera.AltitudeM
	}
	if settings.Camera.RectWidthM == 0 {
		settings.Camera.RectWidthM = defaults.Camera.RectWidthM
	}
	if settings.Camera.RectHeightM == 0 {
		settings.Camera.RectHeightM = defaults.Camera.RectHeightM
	}
	if settings.Camera.ZoomFactor == 0 {
		settings.Camera.ZoomFactor = defaults.Camera.ZoomFactor
	}
	if settings.Camera.FrequencyHz == 0 {
		settings.Camera.FrequencyHz = defaults.Camera.FrequencyHz
	}
	if settings.Theme == "" {
		settings.Theme = defaults.Theme
	}
	if settings.PreviewMaxSize == 0 {
		settings.PreviewMaxSize = defaults.PreviewMaxSize
	}

	return &settings, nil
}

// SaveSettings saves user settings to disk
func SaveSettings(settings *UserSettings) error {
	return saveSettingsTo(GetSettingsPath(), settings)
}

func saveSettingsTo(settingsPath string, settings *UserSettings) error {
	// Ensure directory exists
	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(settingsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// ValidateSettings checks user-editable settings before saving
func ValidateSettings(settings *UserSettings) error {
	if settings.Camera.FrequencyHz <= 0 {
		return fmt.Errorf("camera frequency must be positive")
	}
	if settings.PreviewMaxSize < 50 {
		return fmt.Errorf("preview size must be at least 50 px")
	}
	switch settings.Theme {
	case "light", "dark", "system":
	default:
		return fmt.Errorf("invalid theme: %s (must be light, dark, or system)", settings.Theme)
	}
	return nil
}
