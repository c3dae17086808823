package main

import (
	"log"

	"dronepath-viewer/internal/config"
)

// ===================
// Settings Management
// ===================

// GetSettings returns current user settings
func (a *App) GetSettings() (*config.UserSettings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Return a copy to prevent external modifications
	settingsCopy := *a.settings
	return &settingsCopy, nil
}

// SaveSettings saves user settings to disk and updates app state
func (a *App) SaveSettings(settings *config.UserSettings) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := config.ValidateSettings(settings); err != nil {
		return err
	}

	// Save to disk
	if err := config.SaveSettings(settings); err != nil {
		return err
	}

	// Update app state
	a.settings = settings

	log.Printf("Settings saved")
	return nil
}

// GetSettingsPath returns the OS-specific settings file path
func (a *App) GetSettingsPath() string {
	return config.GetSettingsPath()
}
