package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := loadSettingsFrom(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := DefaultSettings()
	s.Camera.AltitudeM = 42
	s.Camera.FrequencyHz = 5.5
	s.Theme = "dark"
	s.PreviewSmoothing = false
	s.LastImageDir = "/tmp/images"

	require.NoError(t, saveSettingsTo(path, s))

	loaded, err := loadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadMergesDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0644))

	s, err := loadSettingsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, 100.0, s.Camera.AltitudeM)
	assert.Equal(t, 2.0, s.Camera.FrequencyHz)
	assert.Equal(t, 300, s.PreviewMaxSize)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := loadSettingsFrom(path)
	assert.Error(t, err)
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UserSettings)
		wantErr bool
	}{
		{"defaults are valid", func(s *UserSettings) {}, false},
		{"zero frequency", func(s *UserSettings) { s.Camera.FrequencyHz = 0 }, true},
		{"negative frequency", func(s *UserSettings) { s.Camera.FrequencyHz = -2 }, true},
		{"preview too small", func(s *UserSettings) { s.PreviewMaxSize = 10 }, true},
		{"bad theme", func(s *UserSettings) { s.Theme = "solarized" }, true},
		{"light theme ok", func(s *UserSettings) { s.Theme = "light" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := ValidateSettings(s)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
